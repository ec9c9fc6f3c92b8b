package walletrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/GlebRadaev/payroll/internal/domain"
	"github.com/GlebRadaev/payroll/internal/pg"
)

var walletColumns = []string{"id", "user_id", "current_balance", "withdrawn_total"}

const (
	selectWallet = `SELECT id, user_id, current_balance, withdrawn_total FROM wallets WHERE user_id = $1`
	insertWallet = `
		INSERT INTO wallets (user_id, current_balance, withdrawn_total)
		VALUES ($1, 0, 0)
		RETURNING id, user_id, current_balance, withdrawn_total`
	adjustWallet = `
		UPDATE wallets
		SET current_balance = current_balance + $1,
			withdrawn_total = withdrawn_total + $2
		WHERE user_id = $3 AND current_balance + $1 >= 0
		RETURNING id, user_id, current_balance, withdrawn_total`
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface, *pg.MockTXManager) {
	ctrl := gomock.NewController(t)
	mockTxManager := pg.NewMockTXManager(ctrl)

	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	t.Cleanup(mockDB.Close)

	return New(mockDB, mockTxManager), mockDB, mockTxManager
}

func TestRepository_GetUserWallet(t *testing.T) {
	repo, mock, _ := NewMock(t)

	tests := []struct {
		name      string
		userID    int
		mockSetup func()
		expectErr bool
		result    *domain.Wallet
	}{
		{
			name:   "Valid userID returns wallet",
			userID: 1,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(selectWallet)).
					WithArgs(1).
					WillReturnRows(pgxmock.NewRows(walletColumns).AddRow(1, 1, int64(10000), int64(500)))
			},
			result: &domain.Wallet{ID: 1, UserID: 1, CurrentBalance: 10000, WithdrawnTotal: 500},
		},
		{
			name:   "Non-existing userID returns nil",
			userID: 99,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(selectWallet)).
					WithArgs(99).
					WillReturnError(pgx.ErrNoRows)
			},
		},
		{
			name:   "Database error",
			userID: 1,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(selectWallet)).
					WithArgs(1).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.GetUserWallet(context.Background(), tt.userID)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.result, result)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_CreateUserWallet(t *testing.T) {
	repo, mock, _ := NewMock(t)

	tests := []struct {
		name      string
		userID    int
		mockSetup func()
		expectErr bool
		result    *domain.Wallet
	}{
		{
			name:   "Successfully creates wallet",
			userID: 1,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(insertWallet)).
					WithArgs(1).
					WillReturnRows(pgxmock.NewRows(walletColumns).AddRow(1, 1, int64(0), int64(0)))
			},
			result: &domain.Wallet{ID: 1, UserID: 1},
		},
		{
			name:   "Database error",
			userID: 1,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(insertWallet)).
					WithArgs(1).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.CreateUserWallet(context.Background(), tt.userID)

			if tt.expectErr {
				assert.Error(t, err)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.result, result)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_AdjustUserWallet(t *testing.T) {
	repo, mock, tx := NewMock(t)

	tests := []struct {
		name      string
		userID    int
		delta     int64
		withdrawn int64
		mockSetup func()
		expectErr bool
		expected  *domain.Wallet
	}{
		{
			name:   "Credit",
			userID: 2,
			delta:  6500,
			mockSetup: func() {
				tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
					mock.ExpectQuery(regexp.QuoteMeta(adjustWallet)).
						WithArgs(int64(6500), int64(0), 2).
						WillReturnRows(pgxmock.NewRows(walletColumns).AddRow(2, 2, int64(6500), int64(0)))
					return fn(ctx)
				})
			},
			expected: &domain.Wallet{ID: 2, UserID: 2, CurrentBalance: 6500},
		},
		{
			name:      "Withdrawal moves value to withdrawn total",
			userID:    1,
			delta:     -300,
			withdrawn: 300,
			mockSetup: func() {
				tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
					mock.ExpectQuery(regexp.QuoteMeta(adjustWallet)).
						WithArgs(int64(-300), int64(300), 1).
						WillReturnRows(pgxmock.NewRows(walletColumns).AddRow(1, 1, int64(700), int64(300)))
					return fn(ctx)
				})
			},
			expected: &domain.Wallet{ID: 1, UserID: 1, CurrentBalance: 700, WithdrawnTotal: 300},
		},
		{
			name:   "Guard rejects overdraft",
			userID: 1,
			delta:  -5000,
			mockSetup: func() {
				tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
					mock.ExpectQuery(regexp.QuoteMeta(adjustWallet)).
						WithArgs(int64(-5000), int64(0), 1).
						WillReturnError(pgx.ErrNoRows)
					return fn(ctx)
				})
			},
		},
		{
			name:   "Database error",
			userID: 1,
			delta:  100,
			mockSetup: func() {
				tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
					mock.ExpectQuery(regexp.QuoteMeta(adjustWallet)).
						WithArgs(int64(100), int64(0), 1).
						WillReturnError(errors.New("database error"))
					return fn(ctx)
				})
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.AdjustUserWallet(context.Background(), tt.userID, tt.delta, tt.withdrawn)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expected, result)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
