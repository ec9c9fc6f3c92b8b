package domain

import (
	"errors"
	"math"
	"sync"
	"time"
)

var (
	ErrUnauthorized    = errors.New("unauthorized")
	ErrInvalidAmount   = errors.New("an amount greater than zero must be sent with this payment")
	ErrPaymentNotFound = errors.New("there are no matching payments")
	ErrNoPaymentsDue   = errors.New("no payments are due")
)

// ReceiveFn moves the value of a payment into the ledger. It returns the
// payment as recorded by the store; an error aborts scheduling.
type ReceiveFn func(p Payment) (Payment, error)

// SettleFn pays a settlement out to the employee. An error aborts the claim
// and leaves the queue untouched.
type SettleFn func(s Settlement) error

// Settlement is the claim record produced by a successful RequestPayment.
type Settlement struct {
	LedgerID   int
	OwnerID    int
	EmployeeID int
	Amount     int64
	Payments   []Payment
	ClaimedAt  time.Time
}

// PaymentLedger is a queue of scheduled payments between one owner and one
// employee. Payments keep scheduling order; claiming removes every due payment
// and compacts the rest, so positional lookups are stable only between claims.
//
// The balance held by the ledger is always the sum of pending amounts, and
// DepositedTotal == ClaimedTotal + Balance() holds after every operation.
type PaymentLedger struct {
	mu       sync.Mutex
	ledger   Ledger
	payments []Payment
}

// NewPaymentLedger creates an empty ledger. The caller becomes the owner.
// The employee is not validated and may equal the owner.
func NewPaymentLedger(owner, employee int) *PaymentLedger {
	return &PaymentLedger{
		ledger: Ledger{OwnerID: owner, EmployeeID: employee},
	}
}

// RestorePaymentLedger rebuilds a ledger from its stored header and its
// pending payments in scheduling order.
func RestorePaymentLedger(ledger Ledger, payments []Payment) *PaymentLedger {
	restored := make([]Payment, len(payments))
	copy(restored, payments)
	return &PaymentLedger{ledger: ledger, payments: restored}
}

func (l *PaymentLedger) Owner() int {
	return l.ledger.OwnerID
}

func (l *PaymentLedger) Employee() int {
	return l.ledger.EmployeeID
}

// Ledger returns the header with current running totals.
func (l *PaymentLedger) Ledger() Ledger {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ledger
}

func (l *PaymentLedger) Summary() LedgerSummary {
	l.mu.Lock()
	defer l.mu.Unlock()
	return LedgerSummary{
		Ledger:         l.ledger,
		PaymentsLength: len(l.payments),
		Balance:        l.balance(),
	}
}

// Len returns the number of pending payments.
func (l *PaymentLedger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.payments)
}

// Payment returns the pending payment at index, or ErrPaymentNotFound when
// index is outside [0, Len()).
func (l *PaymentLedger) Payment(index int) (Payment, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if index < 0 || index >= len(l.payments) {
		return Payment{}, ErrPaymentNotFound
	}
	return l.payments[index], nil
}

// Payments returns a copy of the pending payments in scheduling order.
func (l *PaymentLedger) Payments() []Payment {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Payment, len(l.payments))
	copy(out, l.payments)
	return out
}

// Balance returns the value currently held by the ledger.
func (l *PaymentLedger) Balance() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balance()
}

func (l *PaymentLedger) balance() int64 {
	var total int64
	for _, p := range l.payments {
		total += p.Amount
	}
	return total
}

// SchedulePayment appends a payment of amount that becomes due at availableAt.
// Only the owner may schedule and amount must be positive; availableAt is not
// checked against the clock, so a past date is due immediately. receive is
// called before the payment is appended; if it fails nothing is recorded.
func (l *PaymentLedger) SchedulePayment(caller int, availableAt, amount int64, receive ReceiveFn) (Payment, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if caller != l.ledger.OwnerID {
		return Payment{}, ErrUnauthorized
	}
	if amount <= 0 || l.ledger.DepositedTotal > math.MaxInt64-amount {
		return Payment{}, ErrInvalidAmount
	}

	payment := Payment{
		LedgerID:    l.ledger.ID,
		AvailableAt: availableAt,
		Amount:      amount,
	}
	if receive != nil {
		recorded, err := receive(payment)
		if err != nil {
			return Payment{}, err
		}
		payment = recorded
	}

	l.payments = append(l.payments, payment)
	l.ledger.DepositedTotal += amount
	return payment, nil
}

// RequestPayment claims every payment with AvailableAt <= now. Only the
// employee may claim. The summed amount goes through settle exactly once;
// due payments are removed only after settle succeeds, preserving the order
// of the payments left behind. With nothing due it fails with
// ErrNoPaymentsDue and changes nothing.
func (l *PaymentLedger) RequestPayment(caller int, now time.Time, settle SettleFn) (Settlement, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if caller != l.ledger.EmployeeID {
		return Settlement{}, ErrUnauthorized
	}

	cutoff := now.Unix()
	var due []Payment
	var total int64
	for _, p := range l.payments {
		if p.AvailableAt <= cutoff {
			due = append(due, p)
			total += p.Amount
		}
	}
	if len(due) == 0 {
		return Settlement{}, ErrNoPaymentsDue
	}

	settlement := Settlement{
		LedgerID:   l.ledger.ID,
		OwnerID:    l.ledger.OwnerID,
		EmployeeID: l.ledger.EmployeeID,
		Amount:     total,
		Payments:   due,
		ClaimedAt:  now,
	}
	if settle != nil {
		if err := settle(settlement); err != nil {
			return Settlement{}, err
		}
	}

	remaining := l.payments[:0]
	for _, p := range l.payments {
		if p.AvailableAt > cutoff {
			remaining = append(remaining, p)
		}
	}
	clear(l.payments[len(remaining):])
	l.payments = remaining
	l.ledger.ClaimedTotal += total

	return settlement, nil
}
