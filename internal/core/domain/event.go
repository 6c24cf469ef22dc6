package domain

import "github.com/shopspring/decimal"

// EventKind identifies the secondary bookkeeping an event asks for.
type EventKind string

const (
	// EventLockCollateral asks the wallet ledger to reserve collateral.
	EventLockCollateral EventKind = "lock_collateral"
	// EventReleaseCollateral asks the wallet ledger to drop a reservation.
	EventReleaseCollateral EventKind = "release_collateral"
	// EventRecordDisbursement asks the borrower ledger to credit a payout.
	EventRecordDisbursement EventKind = "record_disbursement"
	// EventAppendActivity asks the pledger log for a mirror entry.
	EventAppendActivity EventKind = "append_activity"
)

// Event is a unit of cross-ledger bookkeeping produced by a primary
// operation. The dispatcher applies events best-effort after the primary
// operation has already succeeded; a failed event can never roll it back.
type Event struct {
	Kind EventKind

	CreditID  string
	AmountNGN decimal.Decimal
	AmountUSD decimal.Decimal

	// ActivityType and Description are set for EventAppendActivity.
	ActivityType ActivityType
	Description  string
}
