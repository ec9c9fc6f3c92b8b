package wallet

//go:generate mockgen -source=wallet.go -destination=mock_wallet.go -package=wallet

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/GlebRadaev/payroll/internal/domain"
	"github.com/GlebRadaev/payroll/internal/dto"
	"github.com/GlebRadaev/payroll/internal/service/walletservice"
	"github.com/GlebRadaev/payroll/pkg/auth"
	"github.com/GlebRadaev/payroll/pkg/utils"
	"github.com/GlebRadaev/payroll/pkg/validate"
)

type Service interface {
	CreateWallet(ctx context.Context, userID int) (*domain.Wallet, error)
	GetWallet(ctx context.Context, userID int) (*domain.Wallet, error)
	Deposit(ctx context.Context, userID int, cardNumber string, sum int64) (*domain.Wallet, error)
	Withdraw(ctx context.Context, userID int, cardNumber string, sum int64) error
	GetWithdrawals(ctx context.Context, userID int) ([]domain.Withdrawal, error)
}

type WalletHandler struct {
	walletService Service
}

func New(walletService Service) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
	}
}

// GetBalance godoc
//
//	@Summary		Get current user balance
//	@Description	Retrieve the spendable wallet balance and the total amount withdrawn for the authenticated user.
//	@Tags			Wallet
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.WalletResponseDTO	"Current balance and withdrawn total"
//	@Failure		401	{object}	utils.Response			"User not authorized"
//	@Failure		404	{object}	utils.Response			"Wallet not found"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/user/balance [get]
func (h *WalletHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	wallet, err := h.walletService.GetWallet(r.Context(), userID)
	if err != nil {
		if errors.Is(err, walletservice.ErrWalletNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.WalletResponseDTO{
		Current:   wallet.CurrentBalance,
		Withdrawn: wallet.WithdrawnTotal,
	})
}

// Deposit godoc
//
//	@Summary		Top up wallet
//	@Description	Credit the wallet of the authenticated user from a payment card.
//	@Tags			Wallet
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.WalletDepositRequestDTO	true	"Deposit request payload"
//	@Success		200		{object}	dto.WalletResponseDTO		"Balance after the deposit"
//	@Failure		400		{object}	utils.Response				"Invalid request body"
//	@Failure		401		{object}	utils.Response				"User not authorized"
//	@Failure		422		{object}	utils.Response				"Invalid card number or sum"
//	@Failure		500		{object}	utils.Response				"Internal server error"
//	@Router			/api/user/balance/deposit [post]
func (h *WalletHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req dto.WalletDepositRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !validate.IsCardNumber(req.CardNumber) {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, "Invalid card number")
		return
	}

	wallet, err := h.walletService.Deposit(r.Context(), userID, req.CardNumber, req.Sum)
	if err != nil {
		switch {
		case errors.Is(err, walletservice.ErrInvalidSum):
			utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, walletservice.ErrWalletNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.WalletResponseDTO{
		Current:   wallet.CurrentBalance,
		Withdrawn: wallet.WithdrawnTotal,
	})
}

// Withdraw godoc
//
//	@Summary		Request funds withdrawal
//	@Description	Withdraw funds from the wallet of the authenticated user to a payment card.
//	@Tags			Wallet
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.WalletWithdrawRequestDTO	true	"Withdrawal request payload"
//	@Success		200		{string}	string							"Withdrawal successful"
//	@Failure		400		{object}	utils.Response					"Invalid request body"
//	@Failure		401		{object}	utils.Response					"User not authorized"
//	@Failure		402		{object}	utils.Response					"Insufficient balance"
//	@Failure		422		{object}	utils.Response					"Invalid card number or sum"
//	@Failure		500		{object}	utils.Response					"Internal server error"
//	@Router			/api/user/balance/withdraw [post]
func (h *WalletHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req dto.WalletWithdrawRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !validate.IsCardNumber(req.CardNumber) {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, "Invalid card number")
		return
	}

	err := h.walletService.Withdraw(r.Context(), userID, req.CardNumber, req.Sum)
	if err != nil {
		switch {
		case errors.Is(err, walletservice.ErrInsufficientBalance):
			utils.RespondWithError(w, http.StatusPaymentRequired, err.Error())
		case errors.Is(err, walletservice.ErrInvalidSum):
			utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, "withdrawal successful")
}

// GetWithdrawals godoc
//
//	@Summary		Get withdrawals history
//	@Description	Get withdrawals history for the authenticated user, newest first
//	@Tags			Wallet
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.GetWithdrawalsResponseDTO	"Withdrawals history"
//	@Success		204	{object}	utils.Response					"Withdrawals not found"
//	@Failure		401	{object}	utils.Response					"User not authorized"
//	@Failure		500	{object}	utils.Response					"Internal server error"
//	@Router			/api/user/withdrawals [get]
func (h *WalletHandler) GetWithdrawals(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	withdrawals, err := h.walletService.GetWithdrawals(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch withdrawals")
		return
	}

	if len(withdrawals) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "Withdrawals not found")
		return
	}

	response := make([]dto.GetWithdrawalsResponseDTO, len(withdrawals))
	for i, wd := range withdrawals {
		response[i] = dto.GetWithdrawalsResponseDTO{
			CardNumber:  wd.CardNumber,
			Sum:         wd.Sum,
			ProcessedAt: wd.ProcessedAt,
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, response)
}
