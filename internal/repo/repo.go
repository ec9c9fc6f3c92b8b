package repo

import (
	"github.com/GlebRadaev/payroll/internal/pg"
	"github.com/GlebRadaev/payroll/internal/relay"
	ledgerrepo "github.com/GlebRadaev/payroll/internal/repo/ledger-repo"
	outboxrepo "github.com/GlebRadaev/payroll/internal/repo/outbox-repo"
	userrepo "github.com/GlebRadaev/payroll/internal/repo/user-repo"
	walletrepo "github.com/GlebRadaev/payroll/internal/repo/wallet-repo"
	withdrawalrepo "github.com/GlebRadaev/payroll/internal/repo/withdrawal-repo"
	"github.com/GlebRadaev/payroll/internal/service/authservice"
	"github.com/GlebRadaev/payroll/internal/service/ledgerservice"
	"github.com/GlebRadaev/payroll/internal/service/walletservice"
)

// OutboxRepo is written by the ledger service and drained by the relay.
type OutboxRepo interface {
	ledgerservice.OutboxRepo
	relay.OutboxRepo
}

type Repositories struct {
	UserRepo   authservice.Repo
	WalletRepo walletservice.WalletRepo
	Withdrawal walletservice.WithdrawalRepo
	LedgerRepo ledgerservice.LedgerRepo
	Outbox     OutboxRepo
	TxManager  pg.TXManager
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	return &Repositories{
		UserRepo:   userrepo.New(conn),
		WalletRepo: walletrepo.New(conn, txManager),
		Withdrawal: withdrawalrepo.New(conn),
		LedgerRepo: ledgerrepo.New(conn),
		Outbox:     outboxrepo.New(conn),
		TxManager:  txManager,
	}
}
