package handlers

//go:generate mockgen -source=handlers.go -destination=mock_handlers.go -package=handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/GlebRadaev/payroll/docs"
	authhandlers "github.com/GlebRadaev/payroll/internal/handlers/auth"
	ledgerhandlers "github.com/GlebRadaev/payroll/internal/handlers/ledger"
	wallethandlers "github.com/GlebRadaev/payroll/internal/handlers/wallet"
	"github.com/GlebRadaev/payroll/internal/service"
	"github.com/GlebRadaev/payroll/pkg/auth"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
}

type WalletHandler interface {
	GetBalance(w http.ResponseWriter, r *http.Request)
	Deposit(w http.ResponseWriter, r *http.Request)
	Withdraw(w http.ResponseWriter, r *http.Request)
	GetWithdrawals(w http.ResponseWriter, r *http.Request)
}

type LedgerHandler interface {
	CreateLedger(w http.ResponseWriter, r *http.Request)
	ListLedgers(w http.ResponseWriter, r *http.Request)
	GetLedger(w http.ResponseWriter, r *http.Request)
	SchedulePayment(w http.ResponseWriter, r *http.Request)
	ListPayments(w http.ResponseWriter, r *http.Request)
	GetPaymentsLength(w http.ResponseWriter, r *http.Request)
	GetPayment(w http.ResponseWriter, r *http.Request)
	RequestPayment(w http.ResponseWriter, r *http.Request)
	ListClaims(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler   AuthHandler
	WalletHandler WalletHandler
	LedgerHandler LedgerHandler
	tokens        auth.TokenValidator
}

func New(s *service.Services) *Handlers {
	return &Handlers{
		AuthHandler:   authhandlers.New(s.AuthService),
		WalletHandler: wallethandlers.New(s.WalletService),
		LedgerHandler: ledgerhandlers.New(s.LedgerService),
		tokens:        s.Tokens,
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Route("/api/user", func(r chi.Router) {
		r.Post("/register", h.AuthHandler.Register)
		r.Post("/login", h.AuthHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(h.tokens))
			r.Route("/balance", func(r chi.Router) {
				r.Get("/", h.WalletHandler.GetBalance)
				r.Post("/deposit", h.WalletHandler.Deposit)
				r.Post("/withdraw", h.WalletHandler.Withdraw)
			})
			r.Get("/withdrawals", h.WalletHandler.GetWithdrawals)
		})
	})
	r.Route("/api/ledgers", func(r chi.Router) {
		r.Use(auth.Middleware(h.tokens))
		r.Post("/", h.LedgerHandler.CreateLedger)
		r.Get("/", h.LedgerHandler.ListLedgers)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.LedgerHandler.GetLedger)
			r.Post("/payments", h.LedgerHandler.SchedulePayment)
			r.Get("/payments", h.LedgerHandler.ListPayments)
			r.Get("/payments/length", h.LedgerHandler.GetPaymentsLength)
			r.Get("/payments/{index}", h.LedgerHandler.GetPayment)
			r.Post("/claim", h.LedgerHandler.RequestPayment)
			r.Get("/claims", h.LedgerHandler.ListClaims)
		})
	})

	return r
}
