package dto

import "time"

type WalletResponseDTO struct {
	Current   int64 `json:"current" example:"50000"`
	Withdrawn int64 `json:"withdrawn" example:"4200"`
}

type WalletDepositRequestDTO struct {
	CardNumber string `json:"card_number" example:"4111111111111111"`
	Sum        int64  `json:"sum" example:"50000"`
}

type WalletWithdrawRequestDTO struct {
	CardNumber string `json:"card_number" example:"4111111111111111"`
	Sum        int64  `json:"sum" example:"500"`
}

type GetWithdrawalsResponseDTO struct {
	CardNumber  string    `json:"card_number" example:"4111111111111111"`
	Sum         int64     `json:"sum" example:"500"`
	ProcessedAt time.Time `json:"processed_at" example:"2020-12-09T16:09:57+03:00"`
}
