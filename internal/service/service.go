package service

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/GlebRadaev/payroll/internal/config"
	"github.com/GlebRadaev/payroll/internal/handlers/auth"
	"github.com/GlebRadaev/payroll/internal/handlers/ledger"
	"github.com/GlebRadaev/payroll/internal/handlers/wallet"
	"github.com/GlebRadaev/payroll/internal/repo"
	"github.com/GlebRadaev/payroll/internal/service/authservice"
	"github.com/GlebRadaev/payroll/internal/service/ledgerservice"
	"github.com/GlebRadaev/payroll/internal/service/walletservice"
	pkgauth "github.com/GlebRadaev/payroll/pkg/auth"
)

type Services struct {
	AuthService   auth.Service
	WalletService wallet.Service
	LedgerService ledger.Service
	Tokens        pkgauth.TokenValidator
}

func New(repo *repo.Repositories, cfg *config.Config) *Services {
	tokens := pkgauth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL)
	walletService := walletservice.New(repo.WalletRepo, repo.Withdrawal, repo.TxManager)
	ledgerService := ledgerservice.New(repo.LedgerRepo, repo.WalletRepo, repo.Outbox, repo.TxManager, cfg.KafkaTopic)
	authService := authservice.New(repo.UserRepo, walletService, pkgauth.NewHashService(bcrypt.DefaultCost), tokens, repo.TxManager)

	return &Services{
		AuthService:   authService,
		WalletService: walletService,
		LedgerService: ledgerService,
		Tokens:        tokens,
	}
}
