// Package ledger holds the financial core of the gold-loan system: interest
// accrual, collateral valuation and payment allocation, all in integer paise.
// Functions here are pure; persistence and atomicity are the caller's job.
package ledger

import (
	"errors"
	"time"
)

var (
	ErrNonPositiveAmount     = errors.New("payment amount must be positive")
	ErrAmountExceedsBalance  = errors.New("payment amount exceeds outstanding balance")
	ErrPrincipalExceedsValue = errors.New("loan amount cannot exceed gold value")
	ErrInvalidNetWeight      = errors.New("net weight must be positive")
)

// LoanState is the snapshot of a loan's balances a payment is applied against
type LoanState struct {
	OutstandingPrincipalPaise int64
	OutstandingInterestPaise  int64
	InterestRatePercent       float64
	StartDate                 time.Time
}

// Allocation is the result of applying a payment: the interest/principal
// split and the balances the loan must carry afterwards
type Allocation struct {
	AccruedInterestPaise         int64
	InterestPaidPaise            int64
	PrincipalPaidPaise           int64
	NewOutstandingPrincipalPaise int64
	NewOutstandingInterestPaise  int64
	ClosesLoan                   bool
}

// ApplyPayment computes the state transition for one payment against a loan.
// Interest accrued up to the payment date is satisfied first, principal with
// the remainder. The outstanding interest afterwards is the unpaid part of
// the fresh accrual; it replaces the previous figure rather than adding to
// it, since interest is recomputed from the principal on every payment.
func ApplyPayment(state LoanState, amountPaise int64, paymentDate time.Time) (Allocation, error) {
	if amountPaise <= 0 {
		return Allocation{}, ErrNonPositiveAmount
	}

	accrued := AccruedInterest(state.OutstandingPrincipalPaise, state.InterestRatePercent, state.StartDate, paymentDate)

	if amountPaise > state.OutstandingPrincipalPaise+accrued {
		return Allocation{}, ErrAmountExceedsBalance
	}

	remaining := amountPaise
	var interestPaid, principalPaid int64

	if accrued > 0 {
		interestPaid = min64(remaining, accrued)
		remaining -= interestPaid
	}
	if remaining > 0 {
		principalPaid = min64(remaining, state.OutstandingPrincipalPaise)
	}

	alloc := Allocation{
		AccruedInterestPaise:         accrued,
		InterestPaidPaise:            interestPaid,
		PrincipalPaidPaise:           principalPaid,
		NewOutstandingPrincipalPaise: state.OutstandingPrincipalPaise - principalPaid,
		NewOutstandingInterestPaise:  accrued - interestPaid,
	}
	alloc.ClosesLoan = alloc.NewOutstandingPrincipalPaise == 0 && alloc.NewOutstandingInterestPaise == 0

	return alloc, nil
}

// Collateral describes the pledged ornament as submitted at loan creation
type Collateral struct {
	GrossWeightGrams float64
	StoneWeightGrams float64
	GoldRatePerGram  float64
}

// ValueCollateral computes the net weight and gold value for a pledge and
// checks the requested principal against it
func ValueCollateral(c Collateral, principalPaise int64) (netWeightGrams float64, goldValuePaise int64, err error) {
	netWeightGrams = NetWeight(c.GrossWeightGrams, c.StoneWeightGrams)
	if netWeightGrams <= 0 {
		return 0, 0, ErrInvalidNetWeight
	}
	goldValuePaise = GoldValuePaise(netWeightGrams, c.GoldRatePerGram)
	if principalPaise > goldValuePaise {
		return netWeightGrams, goldValuePaise, ErrPrincipalExceedsValue
	}
	return netWeightGrams, goldValuePaise, nil
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
