package ledgerrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/payroll/internal/domain"
	"github.com/GlebRadaev/payroll/internal/pg"
)

const ledgerColumns = "id, owner_id, employee_id, deposited_total, claimed_total, created_at"

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) CreateLedger(ctx context.Context, ledger *domain.Ledger) (*domain.Ledger, error) {
	query := `
		INSERT INTO ledgers (owner_id, employee_id)
		VALUES ($1, $2)
		RETURNING id, deposited_total, claimed_total, created_at
	`
	err := r.db.QueryRow(ctx, query, ledger.OwnerID, ledger.EmployeeID).
		Scan(&ledger.ID, &ledger.DepositedTotal, &ledger.ClaimedTotal, &ledger.CreatedAt)
	if err != nil {
		zap.L().Error("can't create ledger", zap.Int("owner_id", ledger.OwnerID), zap.Error(err))
		return nil, err
	}
	return ledger, nil
}

// GetLedger returns (nil, nil) when the ledger does not exist. With forUpdate
// the row stays locked until the surrounding transaction ends.
func (r *Repository) GetLedger(ctx context.Context, ledgerID int, forUpdate bool) (*domain.Ledger, error) {
	query := "SELECT " + ledgerColumns + " FROM ledgers WHERE id = $1"
	if forUpdate {
		query += " FOR UPDATE"
	}

	var ledger domain.Ledger
	err := r.db.QueryRow(ctx, query, ledgerID).
		Scan(&ledger.ID, &ledger.OwnerID, &ledger.EmployeeID, &ledger.DepositedTotal, &ledger.ClaimedTotal, &ledger.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't get ledger", zap.Int("ledger_id", ledgerID), zap.Error(err))
		return nil, err
	}
	return &ledger, nil
}

func (r *Repository) ListLedgersByUser(ctx context.Context, userID int) ([]domain.Ledger, error) {
	query := "SELECT " + ledgerColumns + " FROM ledgers WHERE owner_id = $1 OR employee_id = $1 ORDER BY id"
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		zap.L().Error("can't list ledgers", zap.Int("user_id", userID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var ledgers []domain.Ledger
	for rows.Next() {
		var ledger domain.Ledger
		err := rows.Scan(&ledger.ID, &ledger.OwnerID, &ledger.EmployeeID, &ledger.DepositedTotal, &ledger.ClaimedTotal, &ledger.CreatedAt)
		if err != nil {
			zap.L().Error("can't scan ledger row", zap.Error(err))
			return nil, err
		}
		ledgers = append(ledgers, ledger)
	}
	return ledgers, rows.Err()
}

func (r *Repository) UpdateTotals(ctx context.Context, ledger *domain.Ledger) error {
	query := `
		UPDATE ledgers
		SET deposited_total = $1, claimed_total = $2
		WHERE id = $3
	`
	_, err := r.db.Exec(ctx, query, ledger.DepositedTotal, ledger.ClaimedTotal, ledger.ID)
	if err != nil {
		zap.L().Error("can't update ledger totals", zap.Int("ledger_id", ledger.ID), zap.Error(err))
		return err
	}
	return nil
}

// ListPayments returns the pending payments of a ledger in scheduling order.
func (r *Repository) ListPayments(ctx context.Context, ledgerID int) ([]domain.Payment, error) {
	query := `
		SELECT id, ledger_id, available_at, amount, created_at
		FROM payments
		WHERE ledger_id = $1
		ORDER BY id
	`
	rows, err := r.db.Query(ctx, query, ledgerID)
	if err != nil {
		zap.L().Error("can't list payments", zap.Int("ledger_id", ledgerID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.LedgerID, &p.AvailableAt, &p.Amount, &p.CreatedAt); err != nil {
			zap.L().Error("can't scan payment row", zap.Error(err))
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (r *Repository) AddPayment(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	query := `
		INSERT INTO payments (ledger_id, available_at, amount)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, payment.LedgerID, payment.AvailableAt, payment.Amount).
		Scan(&payment.ID, &payment.CreatedAt)
	if err != nil {
		zap.L().Error("can't add payment", zap.Int("ledger_id", payment.LedgerID), zap.Error(err))
		return nil, err
	}
	return payment, nil
}

// DeletePayments removes the given payments of a ledger and reports how many
// rows were deleted.
func (r *Repository) DeletePayments(ctx context.Context, ledgerID int, ids []int64) (int64, error) {
	query := `DELETE FROM payments WHERE ledger_id = $1 AND id = ANY($2)`
	tag, err := r.db.Exec(ctx, query, ledgerID, ids)
	if err != nil {
		zap.L().Error("can't delete payments", zap.Int("ledger_id", ledgerID), zap.Error(err))
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *Repository) CreateClaim(ctx context.Context, claim *domain.Claim) (*domain.Claim, error) {
	query := `
		INSERT INTO claims (ledger_id, owner_id, employee_id, amount, payments, claimed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query, claim.LedgerID, claim.OwnerID, claim.EmployeeID, claim.Amount, claim.Payments, claim.ClaimedAt).
		Scan(&claim.ID)
	if err != nil {
		zap.L().Error("can't save claim", zap.Int("ledger_id", claim.LedgerID), zap.Error(err))
		return nil, err
	}
	return claim, nil
}

func (r *Repository) ListClaims(ctx context.Context, ledgerID int) ([]domain.Claim, error) {
	query := `
		SELECT id, ledger_id, owner_id, employee_id, amount, payments, claimed_at
		FROM claims
		WHERE ledger_id = $1
		ORDER BY claimed_at DESC, id DESC
	`
	rows, err := r.db.Query(ctx, query, ledgerID)
	if err != nil {
		zap.L().Error("can't list claims", zap.Int("ledger_id", ledgerID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var claims []domain.Claim
	for rows.Next() {
		var c domain.Claim
		if err := rows.Scan(&c.ID, &c.LedgerID, &c.OwnerID, &c.EmployeeID, &c.Amount, &c.Payments, &c.ClaimedAt); err != nil {
			zap.L().Error("can't scan claim row", zap.Error(err))
			return nil, err
		}
		claims = append(claims, c)
	}
	return claims, rows.Err()
}
