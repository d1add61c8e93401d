package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRupeesToPaise(t *testing.T) {
	tests := []struct {
		rupees float64
		paise  int64
	}{
		{0, 0},
		{1, 100},
		{10000, 1000000},
		{99.99, 9999},
		{0.005, 1},  // rounds half away from zero
		{0.004, 0},
		{123.456, 12346},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.paise, RupeesToPaise(tt.rupees), "rupees=%v", tt.rupees)
	}
}

func TestNetWeight(t *testing.T) {
	assert.Equal(t, 8.5, NetWeight(10.0, 1.5))
	assert.Equal(t, 10.0, NetWeight(10.0, 0))
	assert.Equal(t, 0.0, NetWeight(2.0, 3.0), "floored at zero when stone exceeds gross")
}

func TestGoldValuePaise(t *testing.T) {
	// 10g at 6000/gram = 60,000 rupees = 6,000,000 paise
	assert.Equal(t, int64(6000000), GoldValuePaise(10, 6000))
	// fractional weights round at the boundary only: 33,215.535 rupees
	assert.Equal(t, int64(3321554), GoldValuePaise(5.535, 6001.0))
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, int64(30), DaysBetween(date(2024, 1, 1), date(2024, 1, 31)))
	assert.Equal(t, int64(0), DaysBetween(date(2024, 1, 1), date(2024, 1, 1)))
	assert.Equal(t, int64(-5), DaysBetween(date(2024, 1, 10), date(2024, 1, 5)))

	// day boundaries come from calendar dates, not elapsed hours
	late := time.Date(2024, 1, 1, 23, 59, 0, 0, time.UTC)
	early := time.Date(2024, 1, 2, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, int64(1), DaysBetween(late, early))
}

func TestCalculateInterest(t *testing.T) {
	tests := []struct {
		name      string
		principal int64
		rate      float64
		days      int64
		want      int64
	}{
		{"thirty days at two percent", 1000000, 2.0, 30, 1644}, // 60,000,000 / 36,500 = 1643.84 -> 1644
		{"one year at two percent", 1000000, 2.0, 365, 20000},
		{"zero days", 1000000, 2.0, 0, 0},
		{"negative days floored", 1000000, 2.0, -10, 0},
		{"zero principal", 0, 2.0, 30, 0},
		{"rounds half away from zero", 18250, 1.0, 1, 1}, // exactly 0.5 -> 1
		{"small principal", 100, 2.0, 30, 2},               // 1.64 -> 2
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateInterest(tt.principal, tt.rate, tt.days))
		})
	}
}

func TestAccruedInterest(t *testing.T) {
	start := date(2024, 1, 1)

	got := AccruedInterest(1000000, 2.0, start, date(2024, 1, 31))
	assert.Equal(t, int64(1644), got)

	// payment dated before the loan start yields zero interest
	assert.Equal(t, int64(0), AccruedInterest(1000000, 2.0, start, date(2023, 12, 25)))

	// reads are idempotent for the same snapshot and date
	again := AccruedInterest(1000000, 2.0, start, date(2024, 1, 31))
	assert.Equal(t, got, again)
}

func TestDueDate(t *testing.T) {
	assert.Equal(t, date(2025, 1, 15), DueDate(date(2024, 1, 15), 12))
	assert.Equal(t, date(2024, 4, 10), DueDate(date(2024, 1, 10), 3))
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)
	assert.True(t, IsOverdue(date(2024, 6, 14), now))
	assert.False(t, IsOverdue(date(2024, 6, 15), now), "due today is not overdue")
	assert.False(t, IsOverdue(date(2024, 7, 1), now))
}

func TestNumberGeneration(t *testing.T) {
	ln := NewLoanNumber()
	py := NewPaymentNumber()
	assert.Regexp(t, `^LN-\d{8}-\d{5}$`, ln)
	assert.Regexp(t, `^PY-\d{8}-\d{5}$`, py)
}

func TestApplyPayment(t *testing.T) {
	start := date(2024, 1, 1)
	state := LoanState{
		OutstandingPrincipalPaise: 1000000,
		OutstandingInterestPaise:  0,
		InterestRatePercent:       2.0,
		StartDate:                 start,
	}

	t.Run("interest first then principal", func(t *testing.T) {
		alloc, err := ApplyPayment(state, 50000, date(2024, 1, 31))
		require.NoError(t, err)
		assert.Equal(t, int64(1644), alloc.AccruedInterestPaise)
		assert.Equal(t, int64(1644), alloc.InterestPaidPaise)
		assert.Equal(t, int64(48356), alloc.PrincipalPaidPaise)
		assert.Equal(t, int64(951644), alloc.NewOutstandingPrincipalPaise)
		assert.Equal(t, int64(0), alloc.NewOutstandingInterestPaise)
		assert.False(t, alloc.ClosesLoan)
	})

	t.Run("payment smaller than accrued interest", func(t *testing.T) {
		alloc, err := ApplyPayment(state, 1000, date(2024, 1, 31))
		require.NoError(t, err)
		assert.Equal(t, int64(1000), alloc.InterestPaidPaise)
		assert.Equal(t, int64(0), alloc.PrincipalPaidPaise)
		assert.Equal(t, int64(1000000), alloc.NewOutstandingPrincipalPaise)
		assert.Equal(t, int64(644), alloc.NewOutstandingInterestPaise, "unpaid accrual replaces outstanding interest")
	})

	t.Run("exact payoff closes the loan", func(t *testing.T) {
		alloc, err := ApplyPayment(state, 1001644, date(2024, 1, 31))
		require.NoError(t, err)
		assert.Equal(t, int64(1644), alloc.InterestPaidPaise)
		assert.Equal(t, int64(1000000), alloc.PrincipalPaidPaise)
		assert.Equal(t, int64(0), alloc.NewOutstandingPrincipalPaise)
		assert.Equal(t, int64(0), alloc.NewOutstandingInterestPaise)
		assert.True(t, alloc.ClosesLoan)
	})

	t.Run("overpayment rejected", func(t *testing.T) {
		_, err := ApplyPayment(state, 1001645, date(2024, 1, 31))
		assert.ErrorIs(t, err, ErrAmountExceedsBalance)
	})

	t.Run("non-positive amount rejected", func(t *testing.T) {
		_, err := ApplyPayment(state, 0, date(2024, 1, 31))
		assert.ErrorIs(t, err, ErrNonPositiveAmount)
		_, err = ApplyPayment(state, -500, date(2024, 1, 31))
		assert.ErrorIs(t, err, ErrNonPositiveAmount)
	})

	t.Run("payment dated before start pays principal only", func(t *testing.T) {
		alloc, err := ApplyPayment(state, 5000, date(2023, 12, 20))
		require.NoError(t, err)
		assert.Equal(t, int64(0), alloc.InterestPaidPaise)
		assert.Equal(t, int64(5000), alloc.PrincipalPaidPaise)
	})

	t.Run("balances never go negative over a payment sequence", func(t *testing.T) {
		s := state
		dates := []time.Time{date(2024, 1, 15), date(2024, 2, 15), date(2024, 3, 15)}
		var totalInterest, totalPrincipal int64
		for _, d := range dates {
			alloc, err := ApplyPayment(s, 30000, d)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, alloc.NewOutstandingPrincipalPaise, int64(0))
			assert.GreaterOrEqual(t, alloc.NewOutstandingInterestPaise, int64(0))

			newTotalInterest := totalInterest + alloc.InterestPaidPaise
			newTotalPrincipal := totalPrincipal + alloc.PrincipalPaidPaise
			assert.GreaterOrEqual(t, newTotalInterest, totalInterest)
			assert.GreaterOrEqual(t, newTotalPrincipal, totalPrincipal)
			totalInterest, totalPrincipal = newTotalInterest, newTotalPrincipal

			s.OutstandingPrincipalPaise = alloc.NewOutstandingPrincipalPaise
			s.OutstandingInterestPaise = alloc.NewOutstandingInterestPaise
		}
	})
}

func TestValueCollateral(t *testing.T) {
	c := Collateral{GrossWeightGrams: 10, StoneWeightGrams: 1, GoldRatePerGram: 6000}

	net, value, err := ValueCollateral(c, 5000000)
	require.NoError(t, err)
	assert.Equal(t, 9.0, net)
	assert.Equal(t, int64(5400000), value)

	t.Run("principal above gold value rejected", func(t *testing.T) {
		_, _, err := ValueCollateral(c, 5400001)
		assert.ErrorIs(t, err, ErrPrincipalExceedsValue)
	})

	t.Run("stone weight swallowing gross rejected", func(t *testing.T) {
		bad := Collateral{GrossWeightGrams: 1, StoneWeightGrams: 2, GoldRatePerGram: 6000}
		_, _, err := ValueCollateral(bad, 100)
		assert.ErrorIs(t, err, ErrInvalidNetWeight)
	})
}
