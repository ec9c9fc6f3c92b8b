package ledger

//go:generate mockgen -source=ledger.go -destination=mock_ledger.go -package=ledger

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/payroll/internal/domain"
	"github.com/GlebRadaev/payroll/internal/dto"
	"github.com/GlebRadaev/payroll/internal/service/ledgerservice"
	"github.com/GlebRadaev/payroll/pkg/auth"
	"github.com/GlebRadaev/payroll/pkg/utils"
)

type Service interface {
	CreateLedger(ctx context.Context, owner, employee int) (*domain.Ledger, error)
	ListLedgers(ctx context.Context, userID int) ([]domain.Ledger, error)
	GetLedger(ctx context.Context, ledgerID int) (*domain.LedgerSummary, error)
	SchedulePayment(ctx context.Context, ledgerID, caller int, availableAt, amount int64) (*domain.Payment, error)
	RequestPayment(ctx context.Context, ledgerID, caller int) (*domain.Claim, error)
	ListPayments(ctx context.Context, ledgerID int) ([]domain.Payment, error)
	GetPayment(ctx context.Context, ledgerID, index int) (*domain.Payment, error)
	GetPaymentsLength(ctx context.Context, ledgerID int) (int, error)
	ListClaims(ctx context.Context, ledgerID int) ([]domain.Claim, error)
}

type LedgerHandler struct {
	ledgerService Service
}

func New(ledgerService Service) *LedgerHandler {
	return &LedgerHandler{
		ledgerService: ledgerService,
	}
}

func urlInt(r *http.Request, key string) (int, bool) {
	v, err := strconv.Atoi(chi.URLParam(r, key))
	if err != nil {
		return 0, false
	}
	return v, true
}

// respondWithServiceError maps ledger errors onto HTTP statuses.
func respondWithServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		utils.RespondWithError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrInvalidAmount):
		utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, ledgerservice.ErrInsufficientFunds):
		utils.RespondWithError(w, http.StatusPaymentRequired, err.Error())
	case errors.Is(err, ledgerservice.ErrLedgerNotFound), errors.Is(err, domain.ErrPaymentNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrNoPaymentsDue), errors.Is(err, ledgerservice.ErrWalletNotFound):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	default:
		zap.L().Error("ledger request failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// CreateLedger godoc
//
//	@Summary		Create a payment ledger
//	@Description	Open an empty ledger owned by the authenticated user for the given employee.
//	@Tags			Ledgers
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreateLedgerRequestDTO	true	"Employee of the new ledger"
//	@Success		201		{object}	dto.LedgerResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/ledgers [post]
func (h *LedgerHandler) CreateLedger(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req dto.CreateLedgerRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	ledger, err := h.ledgerService.CreateLedger(r.Context(), userID, req.Employee)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.NewLedgerResponse(*ledger))
}

// ListLedgers godoc
//
//	@Summary		List ledgers of the current user
//	@Description	Ledgers the authenticated user owns or is the employee of.
//	@Tags			Ledgers
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.LedgerResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/ledgers [get]
func (h *LedgerHandler) ListLedgers(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	ledgers, err := h.ledgerService.ListLedgers(r.Context(), userID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	response := make([]dto.LedgerResponseDTO, len(ledgers))
	for i, l := range ledgers {
		response[i] = dto.NewLedgerResponse(l)
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// GetLedger godoc
//
//	@Summary		Get ledger summary
//	@Tags			Ledgers
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Ledger ID"
//	@Success		200	{object}	dto.LedgerSummaryResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid ledger id"
//	@Failure		404	{object}	utils.Response	"Ledger not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/ledgers/{id} [get]
func (h *LedgerHandler) GetLedger(w http.ResponseWriter, r *http.Request) {
	ledgerID, ok := urlInt(r, "id")
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid ledger id")
		return
	}
	summary, err := h.ledgerService.GetLedger(r.Context(), ledgerID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.LedgerSummaryResponseDTO{
		LedgerResponseDTO: dto.NewLedgerResponse(summary.Ledger),
		PaymentsLength:    summary.PaymentsLength,
		Balance:           summary.Balance,
	})
}

// SchedulePayment godoc
//
//	@Summary		Schedule a payment
//	@Description	Move funds from the owner wallet into the ledger, payable to the employee from available_at (unix seconds).
//	@Tags			Ledgers
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int								true	"Ledger ID"
//	@Param			request	body		dto.SchedulePaymentRequestDTO	true	"Payment to schedule"
//	@Success		201		{object}	dto.PaymentResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		402		{object}	utils.Response	"Insufficient funds"
//	@Failure		403		{object}	utils.Response	"Caller is not the owner"
//	@Failure		404		{object}	utils.Response	"Ledger not found"
//	@Failure		422		{object}	utils.Response	"Invalid amount"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/ledgers/{id}/payments [post]
func (h *LedgerHandler) SchedulePayment(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	ledgerID, ok := urlInt(r, "id")
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid ledger id")
		return
	}
	var req dto.SchedulePaymentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	payment, err := h.ledgerService.SchedulePayment(r.Context(), ledgerID, userID, req.AvailableAt, req.Amount)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.NewPaymentResponse(*payment))
}

// RequestPayment godoc
//
//	@Summary		Claim due payments
//	@Description	Pay every due payment out to the employee wallet in a single transfer.
//	@Tags			Ledgers
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Ledger ID"
//	@Success		200	{object}	dto.ClaimResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid ledger id"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"Caller is not the employee"
//	@Failure		404	{object}	utils.Response	"Ledger not found"
//	@Failure		409	{object}	utils.Response	"No payments are due"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/ledgers/{id}/claim [post]
func (h *LedgerHandler) RequestPayment(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	ledgerID, ok := urlInt(r, "id")
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid ledger id")
		return
	}
	claim, err := h.ledgerService.RequestPayment(r.Context(), ledgerID, userID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewClaimResponse(*claim))
}

// ListPayments godoc
//
//	@Summary		List pending payments
//	@Description	Pending payments in scheduling order. Positions shift after every claim.
//	@Tags			Ledgers
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Ledger ID"
//	@Success		200	{array}		dto.PaymentResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid ledger id"
//	@Failure		404	{object}	utils.Response	"Ledger not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/ledgers/{id}/payments [get]
func (h *LedgerHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	ledgerID, ok := urlInt(r, "id")
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid ledger id")
		return
	}
	payments, err := h.ledgerService.ListPayments(r.Context(), ledgerID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	response := make([]dto.PaymentResponseDTO, len(payments))
	for i, p := range payments {
		response[i] = dto.NewPaymentResponse(p)
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// GetPaymentsLength godoc
//
//	@Summary		Count pending payments
//	@Tags			Ledgers
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Ledger ID"
//	@Success		200	{object}	dto.PaymentsLengthResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid ledger id"
//	@Failure		404	{object}	utils.Response	"Ledger not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/ledgers/{id}/payments/length [get]
func (h *LedgerHandler) GetPaymentsLength(w http.ResponseWriter, r *http.Request) {
	ledgerID, ok := urlInt(r, "id")
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid ledger id")
		return
	}
	length, err := h.ledgerService.GetPaymentsLength(r.Context(), ledgerID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.PaymentsLengthResponseDTO{Length: length})
}

// GetPayment godoc
//
//	@Summary		Get pending payment by position
//	@Tags			Ledgers
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id		path		int	true	"Ledger ID"
//	@Param			index	path		int	true	"Zero based position in the queue"
//	@Success		200		{object}	dto.PaymentResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid ledger id or index"
//	@Failure		404		{object}	utils.Response	"No matching payment"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/ledgers/{id}/payments/{index} [get]
func (h *LedgerHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	ledgerID, ok := urlInt(r, "id")
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid ledger id")
		return
	}
	index, ok := urlInt(r, "index")
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payment index")
		return
	}
	payment, err := h.ledgerService.GetPayment(r.Context(), ledgerID, index)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewPaymentResponse(*payment))
}

// ListClaims godoc
//
//	@Summary		Claim history
//	@Description	Completed claims of the ledger, newest first.
//	@Tags			Ledgers
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Ledger ID"
//	@Success		200	{array}		dto.ClaimResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid ledger id"
//	@Failure		404	{object}	utils.Response	"Ledger not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/ledgers/{id}/claims [get]
func (h *LedgerHandler) ListClaims(w http.ResponseWriter, r *http.Request) {
	ledgerID, ok := urlInt(r, "id")
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid ledger id")
		return
	}
	claims, err := h.ledgerService.ListClaims(r.Context(), ledgerID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	response := make([]dto.ClaimResponseDTO, len(claims))
	for i, c := range claims {
		response[i] = dto.NewClaimResponse(c)
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}
