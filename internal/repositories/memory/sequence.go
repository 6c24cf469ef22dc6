package memory

import "fmt"

// sequence issues zero-padded sequential identifiers such as CR001, TXN001.
// Counters grow past the pad width naturally (CR999 -> CR1000).
type sequence struct {
	prefix string
	next   int
}

func newSequence(prefix string) *sequence {
	return &sequence{prefix: prefix, next: 1}
}

// Next returns the current identifier and advances the counter.
func (s *sequence) Next() string {
	id := fmt.Sprintf("%s%03d", s.prefix, s.next)
	s.next++
	return id
}
