package domain

import "fmt"

// Profile selects which of the two parallel in-memory ledger sets an
// operation works on. It is a demo device, not a real user partition.
type Profile string

const (
	ProfileFresh  Profile = "fresh"
	ProfileActive Profile = "active"
)

// Profiles lists every known profile, in a stable order.
func Profiles() []Profile {
	return []Profile{ProfileFresh, ProfileActive}
}

// ParseProfile validates a raw profile identifier.
func ParseProfile(raw string) (Profile, error) {
	switch Profile(raw) {
	case ProfileFresh:
		return ProfileFresh, nil
	case ProfileActive:
		return ProfileActive, nil
	default:
		return "", fmt.Errorf("unknown profile %q", raw)
	}
}
