package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nairafund/pledge_lending_app/internal/core/domain"
)

// ActivityResponse mirrors domain.PledgerActivity.
type ActivityResponse struct {
	ActivityID      string              `json:"activityID"`
	Type            domain.ActivityType `json:"type"`
	Description     string              `json:"description"`
	CreditID        string              `json:"creditID,omitempty"`
	AmountUSD       decimal.Decimal     `json:"amountUSD"`
	BalanceAfterUSD decimal.Decimal     `json:"balanceAfterUSD"`
	OccurredAt      time.Time           `json:"occurredAt"`
}

// ToActivityResponse converts a domain.PledgerActivity.
func ToActivityResponse(a *domain.PledgerActivity) ActivityResponse {
	return ActivityResponse{
		ActivityID:      a.ActivityID,
		Type:            a.Type,
		Description:     a.Description,
		CreditID:        a.CreditID,
		AmountUSD:       a.AmountUSD,
		BalanceAfterUSD: a.BalanceAfterUSD,
		OccurredAt:      a.OccurredAt,
	}
}

// ToActivityResponses converts a slice of domain.PledgerActivity.
func ToActivityResponses(activities []domain.PledgerActivity) []ActivityResponse {
	res := make([]ActivityResponse, len(activities))
	for i := range activities {
		res[i] = ToActivityResponse(&activities[i])
	}
	return res
}
