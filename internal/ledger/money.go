package ledger

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
)

// interestDivisor is 365 days x 100 for the percentage. The interest rate
// is treated as an annualized per-day percentage over a 365-day year:
// interest = principal * rate * days / 36500. This is the single day-count
// convention used everywhere in the system.
const interestDivisor = 36500

var paisePerRupee = decimal.NewFromInt(100)

// RupeesToPaise converts a rupee amount to integer paise, rounding half
// away from zero. Conversion happens only at the request boundary so the
// accrual math never touches floats.
func RupeesToPaise(rupees float64) int64 {
	return decimal.NewFromFloat(rupees).Mul(paisePerRupee).Round(0).IntPart()
}

// PaiseToRupees converts paise to rupees for display
func PaiseToRupees(paise int64) float64 {
	rupees, _ := decimal.NewFromInt(paise).Div(paisePerRupee).Float64()
	return rupees
}

// NetWeight returns gross minus stone weight in grams, floored at zero
func NetWeight(grossGrams, stoneGrams float64) float64 {
	net := grossGrams - stoneGrams
	if net < 0 {
		return 0
	}
	return net
}

// GoldValuePaise values the pledged gold: net weight times the agreed rate
// per gram, in integer paise
func GoldValuePaise(netWeightGrams, ratePerGram float64) int64 {
	return decimal.NewFromFloat(netWeightGrams).
		Mul(decimal.NewFromFloat(ratePerGram)).
		Mul(paisePerRupee).
		Round(0).
		IntPart()
}

// DaysBetween returns the number of whole calendar days from start to end.
// Day boundaries are taken from each time's own calendar date, so elapsed
// wall-clock hours within a day never count.
func DaysBetween(start, end time.Time) int64 {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int64(e.Sub(s).Hours() / 24)
}

// CalculateInterest computes simple (non-compounding) interest in paise on
// the given principal for the given number of days, rounding half away from
// zero. Non-positive day counts yield zero.
func CalculateInterest(principalPaise int64, ratePercent float64, days int64) int64 {
	if days <= 0 || principalPaise <= 0 {
		return 0
	}
	return decimal.NewFromInt(principalPaise).
		Mul(decimal.NewFromFloat(ratePercent)).
		Mul(decimal.NewFromInt(days)).
		Div(decimal.NewFromInt(interestDivisor)).
		Round(0).
		IntPart()
}

// AccruedInterest computes interest accrued on the outstanding principal
// from the loan start date up to asOf. Dates before the start yield zero.
func AccruedInterest(principalPaise int64, ratePercent float64, start, asOf time.Time) int64 {
	return CalculateInterest(principalPaise, ratePercent, DaysBetween(start, asOf))
}

// DueDate returns the loan due date: start date plus the tenure in months
func DueDate(start time.Time, tenureMonths int) time.Time {
	return start.AddDate(0, tenureMonths, 0)
}

// IsOverdue reports whether an active loan is past due as of now.
// Overdue is a derived view, never a stored status.
func IsOverdue(dueDate, now time.Time) bool {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dueDate.Before(today)
}

// NewLoanNumber generates a human-readable loan number, LN-YYYYMMDD-XXXXX.
// Uniqueness is enforced by the caller against the store with a bounded retry.
func NewLoanNumber() string {
	return numberWithPrefix("LN")
}

// NewPaymentNumber generates a payment number, PY-YYYYMMDD-XXXXX
func NewPaymentNumber() string {
	return numberWithPrefix("PY")
}

func numberWithPrefix(prefix string) string {
	now := time.Now()
	return fmt.Sprintf("%s-%s-%05d", prefix, now.Format("20060102"), rand.Intn(100000))
}
