package ledgerservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/payroll/internal/domain"
	"github.com/GlebRadaev/payroll/internal/pg"
)

const (
	owner    = 1
	employee = 2
	ledgerID = 10
	topic    = "payroll.payment-claimed"
)

var (
	now     = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	past    = now.Add(-time.Hour).Unix()
	future  = now.Add(24 * time.Hour).Unix()
	eventID = uuid.MustParse("1b4e28ba-2fa1-11d2-883f-0016d3cca427")
)

type mocks struct {
	ledgers *MockLedgerRepo
	wallets *MockWalletRepo
	outbox  *MockOutboxRepo
	tx      *pg.MockTXManager
}

func NewMock(t *testing.T) (*Service, mocks) {
	ctrl := gomock.NewController(t)
	m := mocks{
		ledgers: NewMockLedgerRepo(ctrl),
		wallets: NewMockWalletRepo(ctrl),
		outbox:  NewMockOutboxRepo(ctrl),
		tx:      pg.NewMockTXManager(ctrl),
	}
	service := New(m.ledgers, m.wallets, m.outbox, m.tx, topic)
	service.now = func() time.Time { return now }
	service.newID = func() uuid.UUID { return eventID }
	return service, m
}

func (m mocks) inTx() {
	m.tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
		return fn(ctx)
	})
}

func (m mocks) stored(forUpdate bool, header domain.Ledger, payments ...domain.Payment) {
	m.ledgers.EXPECT().GetLedger(gomock.Any(), header.ID, forUpdate).Return(&header, nil)
	m.ledgers.EXPECT().ListPayments(gomock.Any(), header.ID).Return(payments, nil)
}

func header(deposited, claimed int64) domain.Ledger {
	return domain.Ledger{ID: ledgerID, OwnerID: owner, EmployeeID: employee, DepositedTotal: deposited, ClaimedTotal: claimed}
}

func TestCreateLedger(t *testing.T) {
	service, m := NewMock(t)

	m.ledgers.EXPECT().CreateLedger(gomock.Any(), &domain.Ledger{OwnerID: owner, EmployeeID: employee}).
		Return(&domain.Ledger{ID: ledgerID, OwnerID: owner, EmployeeID: employee}, nil)

	ledger, err := service.CreateLedger(context.Background(), owner, employee)
	require.NoError(t, err)
	assert.Equal(t, ledgerID, ledger.ID)
	assert.Equal(t, owner, ledger.OwnerID)

	m.ledgers.EXPECT().CreateLedger(gomock.Any(), gomock.Any()).Return(nil, errors.New("db error"))
	_, err = service.CreateLedger(context.Background(), owner, employee)
	assert.EqualError(t, err, "create ledger: db error")
}

func TestSchedulePayment(t *testing.T) {
	tests := []struct {
		name        string
		caller      int
		amount      int64
		prepareMock func(m mocks)
		expected    *domain.Payment
		expectedErr error
	}{
		{
			name:   "Owner schedules",
			caller: owner,
			amount: 6500,
			prepareMock: func(m mocks) {
				m.inTx()
				m.stored(true, header(1000, 0), domain.Payment{ID: 1, LedgerID: ledgerID, AvailableAt: past, Amount: 1000})
				m.wallets.EXPECT().AdjustUserWallet(gomock.Any(), owner, int64(-6500), int64(0)).
					Return(&domain.Wallet{UserID: owner, CurrentBalance: 3500}, nil)
				m.ledgers.EXPECT().AddPayment(gomock.Any(), &domain.Payment{LedgerID: ledgerID, AvailableAt: future, Amount: 6500}).
					Return(&domain.Payment{ID: 2, LedgerID: ledgerID, AvailableAt: future, Amount: 6500}, nil)
				m.ledgers.EXPECT().UpdateTotals(gomock.Any(), &domain.Ledger{
					ID: ledgerID, OwnerID: owner, EmployeeID: employee, DepositedTotal: 7500,
				}).Return(nil)
			},
			expected: &domain.Payment{ID: 2, LedgerID: ledgerID, AvailableAt: future, Amount: 6500},
		},
		{
			name:   "Employee cannot schedule",
			caller: employee,
			amount: 6500,
			prepareMock: func(m mocks) {
				m.inTx()
				m.stored(true, header(0, 0))
			},
			expectedErr: domain.ErrUnauthorized,
		},
		{
			name:   "Zero amount",
			caller: owner,
			amount: 0,
			prepareMock: func(m mocks) {
				m.inTx()
				m.stored(true, header(0, 0))
			},
			expectedErr: domain.ErrInvalidAmount,
		},
		{
			name:   "Owner wallet cannot cover",
			caller: owner,
			amount: 6500,
			prepareMock: func(m mocks) {
				m.inTx()
				m.stored(true, header(0, 0))
				m.wallets.EXPECT().AdjustUserWallet(gomock.Any(), owner, int64(-6500), int64(0)).Return(nil, nil)
			},
			expectedErr: ErrInsufficientFunds,
		},
		{
			name:   "Ledger missing",
			caller: owner,
			amount: 6500,
			prepareMock: func(m mocks) {
				m.inTx()
				m.ledgers.EXPECT().GetLedger(gomock.Any(), ledgerID, true).Return(nil, nil)
			},
			expectedErr: ErrLedgerNotFound,
		},
		{
			name:   "Payment insert fails",
			caller: owner,
			amount: 6500,
			prepareMock: func(m mocks) {
				m.inTx()
				m.stored(true, header(0, 0))
				m.wallets.EXPECT().AdjustUserWallet(gomock.Any(), owner, int64(-6500), int64(0)).
					Return(&domain.Wallet{UserID: owner}, nil)
				m.ledgers.EXPECT().AddPayment(gomock.Any(), gomock.Any()).Return(nil, errors.New("insert failed"))
			},
			expectedErr: errors.New("add payment: insert failed"),
		},
		{
			name:   "Totals update fails",
			caller: owner,
			amount: 6500,
			prepareMock: func(m mocks) {
				m.inTx()
				m.stored(true, header(0, 0))
				m.wallets.EXPECT().AdjustUserWallet(gomock.Any(), owner, int64(-6500), int64(0)).
					Return(&domain.Wallet{UserID: owner}, nil)
				m.ledgers.EXPECT().AddPayment(gomock.Any(), gomock.Any()).
					Return(&domain.Payment{ID: 1, LedgerID: ledgerID, AvailableAt: future, Amount: 6500}, nil)
				m.ledgers.EXPECT().UpdateTotals(gomock.Any(), gomock.Any()).Return(errors.New("update failed"))
			},
			expectedErr: errors.New("update ledger totals: update failed"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := NewMock(t)
			tt.prepareMock(m)

			payment, err := service.SchedulePayment(context.Background(), ledgerID, tt.caller, future, tt.amount)
			if tt.expectedErr != nil {
				assert.Nil(t, payment)
				if !errors.Is(err, tt.expectedErr) {
					assert.EqualError(t, err, tt.expectedErr.Error())
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, payment)
		})
	}
}

func TestRequestPayment(t *testing.T) {
	pending := []domain.Payment{
		{ID: 1, LedgerID: ledgerID, AvailableAt: past, Amount: 6500},
		{ID: 2, LedgerID: ledgerID, AvailableAt: future, Amount: 7500},
		{ID: 3, LedgerID: ledgerID, AvailableAt: now.Unix(), Amount: 8500},
	}

	t.Run("Employee claims every due payment", func(t *testing.T) {
		service, m := NewMock(t)
		m.inTx()
		m.stored(true, header(22500, 0), pending...)
		m.ledgers.EXPECT().DeletePayments(gomock.Any(), ledgerID, []int64{1, 3}).Return(int64(2), nil)
		m.wallets.EXPECT().AdjustUserWallet(gomock.Any(), employee, int64(15000), int64(0)).
			Return(&domain.Wallet{UserID: employee, CurrentBalance: 15000}, nil)
		m.ledgers.EXPECT().CreateClaim(gomock.Any(), &domain.Claim{
			LedgerID: ledgerID, OwnerID: owner, EmployeeID: employee, Amount: 15000, Payments: 2, ClaimedAt: now,
		}).DoAndReturn(func(_ context.Context, c *domain.Claim) (*domain.Claim, error) {
			c.ID = 5
			return c, nil
		})
		m.outbox.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e *domain.OutboxEvent) error {
			assert.Equal(t, eventID, e.ID)
			assert.Equal(t, topic, e.Topic)
			assert.Equal(t, "10", e.Key)
			assert.JSONEq(t, `{
				"event_id": "1b4e28ba-2fa1-11d2-883f-0016d3cca427",
				"ledger_id": 10,
				"owner": 1,
				"employee": 2,
				"amount": 15000,
				"payments": 2,
				"claimed_at": "2024-06-01T12:00:00Z"
			}`, string(e.Payload))
			return nil
		})
		m.ledgers.EXPECT().UpdateTotals(gomock.Any(), &domain.Ledger{
			ID: ledgerID, OwnerID: owner, EmployeeID: employee, DepositedTotal: 22500, ClaimedTotal: 15000,
		}).Return(nil)

		claim, err := service.RequestPayment(context.Background(), ledgerID, employee)
		require.NoError(t, err)
		assert.Equal(t, &domain.Claim{
			ID: 5, LedgerID: ledgerID, OwnerID: owner, EmployeeID: employee, Amount: 15000, Payments: 2, ClaimedAt: now,
		}, claim)
	})

	t.Run("Owner cannot claim", func(t *testing.T) {
		service, m := NewMock(t)
		m.inTx()
		m.stored(true, header(22500, 0), pending...)

		_, err := service.RequestPayment(context.Background(), ledgerID, owner)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("Nothing due", func(t *testing.T) {
		service, m := NewMock(t)
		m.inTx()
		m.stored(true, header(7500, 0), pending[1])

		_, err := service.RequestPayment(context.Background(), ledgerID, employee)
		assert.ErrorIs(t, err, domain.ErrNoPaymentsDue)
	})

	t.Run("Stale payment rows abort the claim", func(t *testing.T) {
		service, m := NewMock(t)
		m.inTx()
		m.stored(true, header(22500, 0), pending...)
		m.ledgers.EXPECT().DeletePayments(gomock.Any(), ledgerID, []int64{1, 3}).Return(int64(1), nil)

		_, err := service.RequestPayment(context.Background(), ledgerID, employee)
		assert.EqualError(t, err, "delete claimed payments: removed 1 of 2 rows")
	})

	t.Run("Employee without wallet", func(t *testing.T) {
		service, m := NewMock(t)
		m.inTx()
		m.stored(true, header(22500, 0), pending...)
		m.ledgers.EXPECT().DeletePayments(gomock.Any(), ledgerID, []int64{1, 3}).Return(int64(2), nil)
		m.wallets.EXPECT().AdjustUserWallet(gomock.Any(), employee, int64(15000), int64(0)).Return(nil, nil)

		_, err := service.RequestPayment(context.Background(), ledgerID, employee)
		assert.ErrorIs(t, err, ErrWalletNotFound)
	})

	t.Run("Outbox failure aborts the claim", func(t *testing.T) {
		service, m := NewMock(t)
		m.inTx()
		m.stored(true, header(22500, 0), pending...)
		m.ledgers.EXPECT().DeletePayments(gomock.Any(), ledgerID, []int64{1, 3}).Return(int64(2), nil)
		m.wallets.EXPECT().AdjustUserWallet(gomock.Any(), employee, int64(15000), int64(0)).
			Return(&domain.Wallet{UserID: employee}, nil)
		m.ledgers.EXPECT().CreateClaim(gomock.Any(), gomock.Any()).Return(&domain.Claim{ID: 1}, nil)
		m.outbox.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("outbox down"))

		claim, err := service.RequestPayment(context.Background(), ledgerID, employee)
		assert.Nil(t, claim)
		assert.EqualError(t, err, "save claim event: outbox down")
	})

	t.Run("Ledger lookup error", func(t *testing.T) {
		service, m := NewMock(t)
		m.inTx()
		m.ledgers.EXPECT().GetLedger(gomock.Any(), ledgerID, true).Return(nil, errors.New("db error"))

		_, err := service.RequestPayment(context.Background(), ledgerID, employee)
		assert.EqualError(t, err, "get ledger 10: db error")
	})
}

func TestReads(t *testing.T) {
	pending := []domain.Payment{
		{ID: 4, LedgerID: ledgerID, AvailableAt: future, Amount: 7500},
		{ID: 6, LedgerID: ledgerID, AvailableAt: future, Amount: 9500},
	}

	t.Run("GetLedger summarises the queue", func(t *testing.T) {
		service, m := NewMock(t)
		m.stored(false, header(32000, 15000), pending...)

		summary, err := service.GetLedger(context.Background(), ledgerID)
		require.NoError(t, err)
		assert.Equal(t, 2, summary.PaymentsLength)
		assert.Equal(t, int64(17000), summary.Balance)
		assert.Equal(t, int64(32000), summary.DepositedTotal)
		assert.Equal(t, int64(15000), summary.ClaimedTotal)
	})

	t.Run("GetPayment by position", func(t *testing.T) {
		service, m := NewMock(t)
		m.stored(false, header(32000, 15000), pending...)

		payment, err := service.GetPayment(context.Background(), ledgerID, 1)
		require.NoError(t, err)
		assert.Equal(t, &pending[1], payment)
	})

	t.Run("GetPayment out of range", func(t *testing.T) {
		service, m := NewMock(t)
		m.stored(false, header(32000, 15000), pending...)

		_, err := service.GetPayment(context.Background(), ledgerID, 2)
		assert.ErrorIs(t, err, domain.ErrPaymentNotFound)
	})

	t.Run("GetPaymentsLength", func(t *testing.T) {
		service, m := NewMock(t)
		m.stored(false, header(32000, 15000), pending...)

		length, err := service.GetPaymentsLength(context.Background(), ledgerID)
		require.NoError(t, err)
		assert.Equal(t, 2, length)
	})

	t.Run("ListPayments keeps order", func(t *testing.T) {
		service, m := NewMock(t)
		m.stored(false, header(32000, 15000), pending...)

		payments, err := service.ListPayments(context.Background(), ledgerID)
		require.NoError(t, err)
		assert.Equal(t, pending, payments)
	})

	t.Run("Missing ledger", func(t *testing.T) {
		service, m := NewMock(t)
		m.ledgers.EXPECT().GetLedger(gomock.Any(), 99, false).Return(nil, nil).Times(2)

		_, err := service.GetPaymentsLength(context.Background(), 99)
		assert.ErrorIs(t, err, ErrLedgerNotFound)
		_, err = service.ListClaims(context.Background(), 99)
		assert.ErrorIs(t, err, ErrLedgerNotFound)
	})

	t.Run("ListClaims", func(t *testing.T) {
		service, m := NewMock(t)
		h := header(32000, 15000)
		claims := []domain.Claim{{ID: 5, LedgerID: ledgerID, Amount: 15000, Payments: 2, ClaimedAt: now}}
		m.ledgers.EXPECT().GetLedger(gomock.Any(), ledgerID, false).Return(&h, nil)
		m.ledgers.EXPECT().ListClaims(gomock.Any(), ledgerID).Return(claims, nil)

		result, err := service.ListClaims(context.Background(), ledgerID)
		require.NoError(t, err)
		assert.Equal(t, claims, result)
	})

	t.Run("ListLedgers", func(t *testing.T) {
		service, m := NewMock(t)
		m.ledgers.EXPECT().ListLedgersByUser(gomock.Any(), employee).Return([]domain.Ledger{header(0, 0)}, nil)

		ledgers, err := service.ListLedgers(context.Background(), employee)
		require.NoError(t, err)
		assert.Len(t, ledgers, 1)

		m.ledgers.EXPECT().ListLedgersByUser(gomock.Any(), employee).Return(nil, errors.New("db error"))
		_, err = service.ListLedgers(context.Background(), employee)
		assert.EqualError(t, err, "list ledgers: db error")
	})
}
