package service

import (
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/payroll/internal/config"
	"github.com/GlebRadaev/payroll/internal/pg"
	"github.com/GlebRadaev/payroll/internal/repo"
	outboxrepo "github.com/GlebRadaev/payroll/internal/repo/outbox-repo"
	"github.com/GlebRadaev/payroll/internal/service/authservice"
	"github.com/GlebRadaev/payroll/internal/service/ledgerservice"
	"github.com/GlebRadaev/payroll/internal/service/walletservice"
	pkgauth "github.com/GlebRadaev/payroll/pkg/auth"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockDB.Close)

	repos := &repo.Repositories{
		UserRepo:   authservice.NewMockRepo(ctrl),
		WalletRepo: walletservice.NewMockWalletRepo(ctrl),
		Withdrawal: walletservice.NewMockWithdrawalRepo(ctrl),
		LedgerRepo: ledgerservice.NewMockLedgerRepo(ctrl),
		Outbox:     outboxrepo.New(mockDB),
		TxManager:  pg.NewMockTXManager(ctrl),
	}
	cfg := &config.Config{JWTSecret: "secret", TokenTTL: time.Minute, KafkaTopic: "payroll.payment-claimed"}

	services := New(repos, cfg)

	assert.IsType(t, &authservice.Service{}, services.AuthService)
	assert.IsType(t, &walletservice.Service{}, services.WalletService)
	assert.IsType(t, &ledgerservice.Service{}, services.LedgerService)
	assert.IsType(t, &pkgauth.JWTService{}, services.Tokens)
}
