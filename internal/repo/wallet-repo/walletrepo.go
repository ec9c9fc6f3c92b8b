package walletrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/payroll/internal/domain"
	"github.com/GlebRadaev/payroll/internal/pg"
)

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

func (r *Repository) GetUserWallet(ctx context.Context, userID int) (*domain.Wallet, error) {
	query := `
        SELECT id, user_id, current_balance, withdrawn_total
        FROM wallets
        WHERE user_id = $1
    `
	var wallet domain.Wallet
	err := r.db.QueryRow(ctx, query, userID).Scan(&wallet.ID, &wallet.UserID, &wallet.CurrentBalance, &wallet.WithdrawnTotal)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("failed to get user wallet", zap.Int("user_id", userID), zap.Error(err))
		return nil, err
	}
	return &wallet, nil
}

func (r *Repository) CreateUserWallet(ctx context.Context, userID int) (*domain.Wallet, error) {
	query := `
        INSERT INTO wallets (user_id, current_balance, withdrawn_total)
        VALUES ($1, 0, 0)
        RETURNING id, user_id, current_balance, withdrawn_total
    `
	var wallet domain.Wallet
	err := r.db.QueryRow(ctx, query, userID).Scan(&wallet.ID, &wallet.UserID, &wallet.CurrentBalance, &wallet.WithdrawnTotal)
	if err != nil {
		zap.L().Error("failed to create user wallet", zap.Int("user_id", userID), zap.Error(err))
		return nil, err
	}
	return &wallet, nil
}

// AdjustUserWallet adds delta to the current balance and withdrawn to the
// withdrawn total in a single statement. The update is skipped when it would
// take the balance below zero; in that case, or when the user has no wallet,
// it returns (nil, nil).
func (r *Repository) AdjustUserWallet(ctx context.Context, userID int, delta, withdrawn int64) (*domain.Wallet, error) {
	query := `
		UPDATE wallets
		SET current_balance = current_balance + $1,
			withdrawn_total = withdrawn_total + $2
		WHERE user_id = $3 AND current_balance + $1 >= 0
		RETURNING id, user_id, current_balance, withdrawn_total
	`
	var wallet *domain.Wallet
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		var updated domain.Wallet
		err := r.db.QueryRow(ctx, query, delta, withdrawn, userID).
			Scan(&updated.ID, &updated.UserID, &updated.CurrentBalance, &updated.WithdrawnTotal)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		if err != nil {
			zap.L().Error("failed to adjust user wallet", zap.Int("user_id", userID), zap.Int64("delta", delta), zap.Error(err))
			return err
		}
		wallet = &updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	return wallet, nil
}
