package pg

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTxManager_Begin(t *testing.T) {
	tests := []struct {
		name        string
		mockSetup   func(mock pgxmock.PgxPoolIface)
		fn          func(db *DB) TransactionalFn
		expectedErr string
	}{
		{
			name: "Commits when fn succeeds",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO ledgers").
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
				mock.ExpectCommit()
			},
			fn: func(db *DB) TransactionalFn {
				return func(ctx context.Context) error {
					_, err := db.Exec(ctx, "INSERT INTO ledgers (owner_id, employee_id) VALUES (1, 2)")
					return err
				}
			},
		},
		{
			name: "Rolls back when fn fails",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectRollback()
			},
			fn: func(db *DB) TransactionalFn {
				return func(ctx context.Context) error {
					return errors.New("settle failed")
				}
			},
			expectedErr: "settle failed",
		},
		{
			name: "Begin error",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin().WillReturnError(errors.New("connection refused"))
			},
			fn: func(db *DB) TransactionalFn {
				return func(ctx context.Context) error {
					t.Error("fn must not run without a transaction")
					return nil
				}
			},
			expectedErr: "begin transaction: connection refused",
		},
		{
			name: "Commit error",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectCommit().WillReturnError(errors.New("serialization failure"))
			},
			fn: func(db *DB) TransactionalFn {
				return func(ctx context.Context) error { return nil }
			},
			expectedErr: "commit transaction: serialization failure",
		},
		{
			name: "Nested Begin joins the outer transaction",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectExec("UPDATE wallets").
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
				mock.ExpectCommit()
			},
			fn: func(db *DB) TransactionalFn {
				return func(ctx context.Context) error {
					inner := NewTXManager(nil)
					return inner.Begin(ctx, func(ctx context.Context) error {
						_, err := db.Exec(ctx, "UPDATE wallets SET current_balance = 0")
						return err
					})
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.mockSetup(mock)
			manager := NewTXManager(mock)

			err = manager.Begin(context.Background(), tt.fn(New(mock)))
			if tt.expectedErr != "" {
				assert.EqualError(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDB_UsesPoolOutsideTransaction(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT count").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(3))

	var count int
	err = New(mock).QueryRow(context.Background(), "SELECT count(*) FROM payments").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
