package walletservice

//go:generate mockgen -source=walletservice.go -destination=mock_walletservice.go -package=walletservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/GlebRadaev/payroll/internal/domain"
	"github.com/GlebRadaev/payroll/internal/pg"
)

type WalletRepo interface {
	GetUserWallet(ctx context.Context, userID int) (*domain.Wallet, error)
	CreateUserWallet(ctx context.Context, userID int) (*domain.Wallet, error)
	AdjustUserWallet(ctx context.Context, userID int, delta, withdrawn int64) (*domain.Wallet, error)
}

type WithdrawalRepo interface {
	CreateWithdrawal(ctx context.Context, withdrawal *domain.Withdrawal) (*domain.Withdrawal, error)
	GetWithdrawalsByUserID(ctx context.Context, userID int) ([]domain.Withdrawal, error)
}

var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidSum          = errors.New("sum must be greater than zero")
	ErrWalletNotFound      = errors.New("wallet not found")
)

type Service struct {
	walletRepo     WalletRepo
	withdrawalRepo WithdrawalRepo
	txManager      pg.TXManager
	now            func() time.Time
}

func New(walletRepo WalletRepo, withdrawalRepo WithdrawalRepo, txManager pg.TXManager) *Service {
	return &Service{
		walletRepo:     walletRepo,
		withdrawalRepo: withdrawalRepo,
		txManager:      txManager,
		now:            time.Now,
	}
}

func (s *Service) GetWallet(ctx context.Context, userID int) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.GetUserWallet(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get wallet", zap.Int("user_id", userID), zap.Error(err))
		return nil, err
	}
	if wallet == nil {
		return nil, ErrWalletNotFound
	}
	return wallet, nil
}

func (s *Service) CreateWallet(ctx context.Context, userID int) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.CreateUserWallet(ctx, userID)
	if err != nil {
		zap.L().Error("failed to create wallet", zap.Int("user_id", userID), zap.Error(err))
		return nil, err
	}
	return wallet, nil
}

// Deposit tops up the wallet from an external card. The card number is
// validated by the caller.
func (s *Service) Deposit(ctx context.Context, userID int, cardNumber string, sum int64) (*domain.Wallet, error) {
	if sum <= 0 {
		return nil, ErrInvalidSum
	}
	wallet, err := s.walletRepo.AdjustUserWallet(ctx, userID, sum, 0)
	if err != nil {
		return nil, fmt.Errorf("deposit: %w", err)
	}
	if wallet == nil {
		return nil, ErrWalletNotFound
	}
	zap.L().Info("wallet topped up", zap.Int("user_id", userID), zap.Int64("sum", sum), zap.String("card", maskCard(cardNumber)))
	return wallet, nil
}

// Withdraw moves sum out of the wallet to a card and records the withdrawal.
// Both happen in one transaction.
func (s *Service) Withdraw(ctx context.Context, userID int, cardNumber string, sum int64) error {
	if sum <= 0 {
		return ErrInvalidSum
	}

	return s.txManager.Begin(ctx, func(ctx context.Context) error {
		wallet, err := s.walletRepo.AdjustUserWallet(ctx, userID, -sum, sum)
		if err != nil {
			return fmt.Errorf("withdraw: %w", err)
		}
		if wallet == nil {
			return ErrInsufficientBalance
		}

		withdrawal := &domain.Withdrawal{
			UserID:      userID,
			CardNumber:  cardNumber,
			Sum:         sum,
			ProcessedAt: s.now(),
		}
		if _, err := s.withdrawalRepo.CreateWithdrawal(ctx, withdrawal); err != nil {
			return fmt.Errorf("record withdrawal: %w", err)
		}
		return nil
	})
}

func (s *Service) GetWithdrawals(ctx context.Context, userID int) ([]domain.Withdrawal, error) {
	withdrawals, err := s.withdrawalRepo.GetWithdrawalsByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to fetch withdrawals", zap.Error(err))
		return nil, err
	}
	return withdrawals, nil
}

func maskCard(number string) string {
	if len(number) <= 4 {
		return number
	}
	return "****" + number[len(number)-4:]
}
