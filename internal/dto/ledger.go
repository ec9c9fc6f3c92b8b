package dto

import (
	"time"

	"github.com/GlebRadaev/payroll/internal/domain"
)

type CreateLedgerRequestDTO struct {
	Employee int `json:"employee" example:"2"`
}

type LedgerResponseDTO struct {
	ID             int       `json:"id" example:"10"`
	Owner          int       `json:"owner" example:"1"`
	Employee       int       `json:"employee" example:"2"`
	DepositedTotal int64     `json:"deposited_total" example:"32000"`
	ClaimedTotal   int64     `json:"claimed_total" example:"14000"`
	CreatedAt      time.Time `json:"created_at" example:"2020-12-09T16:09:57+03:00"`
}

type LedgerSummaryResponseDTO struct {
	LedgerResponseDTO
	PaymentsLength int   `json:"payments_length" example:"2"`
	Balance        int64 `json:"balance" example:"18000"`
}

type SchedulePaymentRequestDTO struct {
	AvailableAt int64 `json:"available_at" example:"1735689600"`
	Amount      int64 `json:"amount" example:"6500"`
}

type PaymentResponseDTO struct {
	ID          int64     `json:"id" example:"5"`
	AvailableAt int64     `json:"available_at" example:"1735689600"`
	Amount      int64     `json:"amount" example:"6500"`
	CreatedAt   time.Time `json:"created_at" example:"2020-12-09T16:09:57+03:00"`
}

type PaymentsLengthResponseDTO struct {
	Length int `json:"length" example:"3"`
}

type ClaimResponseDTO struct {
	ID        int       `json:"id" example:"1"`
	LedgerID  int       `json:"ledger_id" example:"10"`
	Employee  int       `json:"employee" example:"2"`
	Amount    int64     `json:"amount" example:"14000"`
	Payments  int       `json:"payments" example:"2"`
	ClaimedAt time.Time `json:"claimed_at" example:"2020-12-09T16:09:57+03:00"`
}

func NewLedgerResponse(l domain.Ledger) LedgerResponseDTO {
	return LedgerResponseDTO{
		ID:             l.ID,
		Owner:          l.OwnerID,
		Employee:       l.EmployeeID,
		DepositedTotal: l.DepositedTotal,
		ClaimedTotal:   l.ClaimedTotal,
		CreatedAt:      l.CreatedAt,
	}
}

func NewPaymentResponse(p domain.Payment) PaymentResponseDTO {
	return PaymentResponseDTO{
		ID:          p.ID,
		AvailableAt: p.AvailableAt,
		Amount:      p.Amount,
		CreatedAt:   p.CreatedAt,
	}
}

func NewClaimResponse(c domain.Claim) ClaimResponseDTO {
	return ClaimResponseDTO{
		ID:        c.ID,
		LedgerID:  c.LedgerID,
		Employee:  c.EmployeeID,
		Amount:    c.Amount,
		Payments:  c.Payments,
		ClaimedAt: c.ClaimedAt,
	}
}
