package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           int       `db:"id"`
	Login        string    `db:"login"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

type Wallet struct {
	ID             int   `db:"id"`
	UserID         int   `db:"user_id"`
	CurrentBalance int64 `db:"current_balance"`
	WithdrawnTotal int64 `db:"withdrawn_total"`
}

type Withdrawal struct {
	ID          int       `db:"id"`
	UserID      int       `db:"user_id"`
	CardNumber  string    `db:"card_number"`
	Sum         int64     `db:"sum"`
	ProcessedAt time.Time `db:"processed_at"`
}

// Ledger is the stored header of a PaymentLedger.
type Ledger struct {
	ID             int       `db:"id"`
	OwnerID        int       `db:"owner_id"`
	EmployeeID     int       `db:"employee_id"`
	DepositedTotal int64     `db:"deposited_total"`
	ClaimedTotal   int64     `db:"claimed_total"`
	CreatedAt      time.Time `db:"created_at"`
}

// Payment is a scheduled disbursement. AvailableAt is in seconds since epoch.
type Payment struct {
	ID          int64     `db:"id"`
	LedgerID    int       `db:"ledger_id"`
	AvailableAt int64     `db:"available_at"`
	Amount      int64     `db:"amount"`
	CreatedAt   time.Time `db:"created_at"`
}

type LedgerSummary struct {
	Ledger
	PaymentsLength int
	Balance        int64
}

type Claim struct {
	ID         int       `db:"id"`
	LedgerID   int       `db:"ledger_id"`
	OwnerID    int       `db:"owner_id"`
	EmployeeID int       `db:"employee_id"`
	Amount     int64     `db:"amount"`
	Payments   int       `db:"payments"`
	ClaimedAt  time.Time `db:"claimed_at"`
}

const (
	OutboxStatusPending = "PENDING"
	OutboxStatusSent    = "SENT"
	OutboxStatusFailed  = "FAILED"
)

type OutboxEvent struct {
	ID        uuid.UUID `db:"id"`
	Topic     string    `db:"topic"`
	Key       string    `db:"event_key"`
	Payload   []byte    `db:"payload"`
	Status    string    `db:"status"`
	Attempts  int       `db:"attempts"`
	CreatedAt time.Time `db:"created_at"`
}

const EventPaymentClaimed = "payment.claimed"

type PaymentClaimed struct {
	EventID   uuid.UUID `json:"event_id"`
	LedgerID  int       `json:"ledger_id"`
	Owner     int       `json:"owner"`
	Employee  int       `json:"employee"`
	Amount    int64     `json:"amount"`
	Payments  int       `json:"payments"`
	ClaimedAt time.Time `json:"claimed_at"`
}
