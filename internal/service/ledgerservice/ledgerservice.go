package ledgerservice

//go:generate mockgen -source=ledgerservice.go -destination=mock_ledgerservice.go -package=ledgerservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/GlebRadaev/payroll/internal/domain"
	"github.com/GlebRadaev/payroll/internal/pg"
)

type LedgerRepo interface {
	CreateLedger(ctx context.Context, ledger *domain.Ledger) (*domain.Ledger, error)
	GetLedger(ctx context.Context, ledgerID int, forUpdate bool) (*domain.Ledger, error)
	ListLedgersByUser(ctx context.Context, userID int) ([]domain.Ledger, error)
	UpdateTotals(ctx context.Context, ledger *domain.Ledger) error
	ListPayments(ctx context.Context, ledgerID int) ([]domain.Payment, error)
	AddPayment(ctx context.Context, payment *domain.Payment) (*domain.Payment, error)
	DeletePayments(ctx context.Context, ledgerID int, ids []int64) (int64, error)
	CreateClaim(ctx context.Context, claim *domain.Claim) (*domain.Claim, error)
	ListClaims(ctx context.Context, ledgerID int) ([]domain.Claim, error)
}

type WalletRepo interface {
	AdjustUserWallet(ctx context.Context, userID int, delta, withdrawn int64) (*domain.Wallet, error)
}

type OutboxRepo interface {
	Save(ctx context.Context, event *domain.OutboxEvent) error
}

var (
	ErrLedgerNotFound    = errors.New("ledger not found")
	ErrInsufficientFunds = errors.New("insufficient funds to schedule payment")
	ErrWalletNotFound    = errors.New("employee wallet not found")
)

type Service struct {
	ledgerRepo LedgerRepo
	walletRepo WalletRepo
	outbox     OutboxRepo
	txManager  pg.TXManager
	topic      string
	now        func() time.Time
	newID      func() uuid.UUID
}

func New(ledgerRepo LedgerRepo, walletRepo WalletRepo, outbox OutboxRepo, txManager pg.TXManager, topic string) *Service {
	return &Service{
		ledgerRepo: ledgerRepo,
		walletRepo: walletRepo,
		outbox:     outbox,
		txManager:  txManager,
		topic:      topic,
		now:        time.Now,
		newID:      uuid.New,
	}
}

// CreateLedger opens an empty ledger owned by owner for the given employee.
func (s *Service) CreateLedger(ctx context.Context, owner, employee int) (*domain.Ledger, error) {
	record := domain.NewPaymentLedger(owner, employee).Ledger()
	ledger, err := s.ledgerRepo.CreateLedger(ctx, &record)
	if err != nil {
		return nil, fmt.Errorf("create ledger: %w", err)
	}
	zap.L().Info("ledger created", zap.Int("ledger_id", ledger.ID), zap.Int("owner", owner), zap.Int("employee", employee))
	return ledger, nil
}

func (s *Service) load(ctx context.Context, ledgerID int, forUpdate bool) (*domain.PaymentLedger, error) {
	ledger, err := s.ledgerRepo.GetLedger(ctx, ledgerID, forUpdate)
	if err != nil {
		return nil, fmt.Errorf("get ledger %d: %w", ledgerID, err)
	}
	if ledger == nil {
		return nil, ErrLedgerNotFound
	}
	payments, err := s.ledgerRepo.ListPayments(ctx, ledgerID)
	if err != nil {
		return nil, fmt.Errorf("list payments of ledger %d: %w", ledgerID, err)
	}
	return domain.RestorePaymentLedger(*ledger, payments), nil
}

// SchedulePayment debits the owner's wallet and queues a payment that becomes
// claimable at availableAt (seconds since epoch).
func (s *Service) SchedulePayment(ctx context.Context, ledgerID, caller int, availableAt, amount int64) (*domain.Payment, error) {
	var scheduled domain.Payment
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		pl, err := s.load(ctx, ledgerID, true)
		if err != nil {
			return err
		}

		scheduled, err = pl.SchedulePayment(caller, availableAt, amount, func(p domain.Payment) (domain.Payment, error) {
			return s.receive(ctx, caller, p)
		})
		if err != nil {
			return err
		}

		ledger := pl.Ledger()
		if err := s.ledgerRepo.UpdateTotals(ctx, &ledger); err != nil {
			return fmt.Errorf("update ledger totals: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("payment scheduled",
		zap.Int("ledger_id", ledgerID),
		zap.Int64("payment_id", scheduled.ID),
		zap.Int64("amount", scheduled.Amount),
		zap.Int64("available_at", scheduled.AvailableAt),
	)
	return &scheduled, nil
}

func (s *Service) receive(ctx context.Context, owner int, p domain.Payment) (domain.Payment, error) {
	wallet, err := s.walletRepo.AdjustUserWallet(ctx, owner, -p.Amount, 0)
	if err != nil {
		return domain.Payment{}, fmt.Errorf("debit owner wallet: %w", err)
	}
	if wallet == nil {
		return domain.Payment{}, ErrInsufficientFunds
	}
	recorded, err := s.ledgerRepo.AddPayment(ctx, &p)
	if err != nil {
		return domain.Payment{}, fmt.Errorf("add payment: %w", err)
	}
	return *recorded, nil
}

// RequestPayment pays every due payment of the ledger out to the employee in
// one transfer and returns the resulting claim.
func (s *Service) RequestPayment(ctx context.Context, ledgerID, caller int) (*domain.Claim, error) {
	var claim *domain.Claim
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		pl, err := s.load(ctx, ledgerID, true)
		if err != nil {
			return err
		}

		_, err = pl.RequestPayment(caller, s.now(), func(st domain.Settlement) error {
			recorded, settleErr := s.settle(ctx, st)
			if settleErr != nil {
				return settleErr
			}
			claim = recorded
			return nil
		})
		if err != nil {
			return err
		}

		ledger := pl.Ledger()
		if err := s.ledgerRepo.UpdateTotals(ctx, &ledger); err != nil {
			return fmt.Errorf("update ledger totals: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("payments claimed",
		zap.Int("ledger_id", ledgerID),
		zap.Int("employee", claim.EmployeeID),
		zap.Int64("amount", claim.Amount),
		zap.Int("payments", claim.Payments),
	)
	return claim, nil
}

func (s *Service) settle(ctx context.Context, st domain.Settlement) (*domain.Claim, error) {
	ids := make([]int64, len(st.Payments))
	for i, p := range st.Payments {
		ids[i] = p.ID
	}
	deleted, err := s.ledgerRepo.DeletePayments(ctx, st.LedgerID, ids)
	if err != nil {
		return nil, fmt.Errorf("delete claimed payments: %w", err)
	}
	if deleted != int64(len(ids)) {
		return nil, fmt.Errorf("delete claimed payments: removed %d of %d rows", deleted, len(ids))
	}

	wallet, err := s.walletRepo.AdjustUserWallet(ctx, st.EmployeeID, st.Amount, 0)
	if err != nil {
		return nil, fmt.Errorf("credit employee wallet: %w", err)
	}
	if wallet == nil {
		return nil, ErrWalletNotFound
	}

	claim, err := s.ledgerRepo.CreateClaim(ctx, &domain.Claim{
		LedgerID:   st.LedgerID,
		OwnerID:    st.OwnerID,
		EmployeeID: st.EmployeeID,
		Amount:     st.Amount,
		Payments:   len(st.Payments),
		ClaimedAt:  st.ClaimedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("record claim: %w", err)
	}

	eventID := s.newID()
	payload, err := json.Marshal(domain.PaymentClaimed{
		EventID:   eventID,
		LedgerID:  st.LedgerID,
		Owner:     st.OwnerID,
		Employee:  st.EmployeeID,
		Amount:    st.Amount,
		Payments:  len(st.Payments),
		ClaimedAt: st.ClaimedAt.UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("encode claim event: %w", err)
	}
	event := &domain.OutboxEvent{
		ID:      eventID,
		Topic:   s.topic,
		Key:     strconv.Itoa(st.LedgerID),
		Payload: payload,
	}
	if err := s.outbox.Save(ctx, event); err != nil {
		return nil, fmt.Errorf("save claim event: %w", err)
	}
	return claim, nil
}

func (s *Service) GetLedger(ctx context.Context, ledgerID int) (*domain.LedgerSummary, error) {
	pl, err := s.load(ctx, ledgerID, false)
	if err != nil {
		return nil, err
	}
	summary := pl.Summary()
	return &summary, nil
}

// ListLedgers returns the ledgers userID owns or is the employee of.
func (s *Service) ListLedgers(ctx context.Context, userID int) ([]domain.Ledger, error) {
	ledgers, err := s.ledgerRepo.ListLedgersByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list ledgers: %w", err)
	}
	return ledgers, nil
}

func (s *Service) ListPayments(ctx context.Context, ledgerID int) ([]domain.Payment, error) {
	pl, err := s.load(ctx, ledgerID, false)
	if err != nil {
		return nil, err
	}
	return pl.Payments(), nil
}

// GetPayment returns the pending payment at position index.
func (s *Service) GetPayment(ctx context.Context, ledgerID, index int) (*domain.Payment, error) {
	pl, err := s.load(ctx, ledgerID, false)
	if err != nil {
		return nil, err
	}
	payment, err := pl.Payment(index)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (s *Service) GetPaymentsLength(ctx context.Context, ledgerID int) (int, error) {
	pl, err := s.load(ctx, ledgerID, false)
	if err != nil {
		return 0, err
	}
	return pl.Len(), nil
}

func (s *Service) ListClaims(ctx context.Context, ledgerID int) ([]domain.Claim, error) {
	ledger, err := s.ledgerRepo.GetLedger(ctx, ledgerID, false)
	if err != nil {
		return nil, fmt.Errorf("get ledger %d: %w", ledgerID, err)
	}
	if ledger == nil {
		return nil, ErrLedgerNotFound
	}
	claims, err := s.ledgerRepo.ListClaims(ctx, ledgerID)
	if err != nil {
		return nil, fmt.Errorf("list claims: %w", err)
	}
	return claims, nil
}
