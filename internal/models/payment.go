package models

// PaymentMode represents how a payment was received
type PaymentMode string

const (
	PaymentModeCash         PaymentMode = "cash"
	PaymentModeUPI          PaymentMode = "upi"
	PaymentModeBankTransfer PaymentMode = "bank_transfer"
	PaymentModeCheque       PaymentMode = "cheque"
)

// ValidPaymentMode reports whether m is one of the accepted payment modes
func ValidPaymentMode(m PaymentMode) bool {
	switch m {
	case PaymentModeCash, PaymentModeUPI, PaymentModeBankTransfer, PaymentModeCheque:
		return true
	}
	return false
}

// Payment represents one money receipt against a loan. Payments are
// immutable once created; the outstanding balances are snapshotted at
// creation time.
type Payment struct {
	ID            int64  `json:"id" db:"id"`
	ShopID        int64  `json:"shopId" db:"shop_id"`
	LoanID        int64  `json:"loanId" db:"loan_id"`
	PaymentNumber string `json:"paymentNumber" db:"payment_number"`

	AmountPaise        int64       `json:"amountPaise" db:"amount_paise"`
	InterestPaidPaise  int64       `json:"interestPaidPaise" db:"interest_paid_paise"`
	PrincipalPaidPaise int64       `json:"principalPaidPaise" db:"principal_paid_paise"`
	PaymentMode        PaymentMode `json:"paymentMode" db:"payment_mode"`
	PaymentReference   *string     `json:"paymentReference,omitempty" db:"payment_reference"`
	PaymentDate        int64       `json:"paymentDate" db:"payment_date"`

	// Balances after this payment (paise)
	OutstandingPrincipalAfterPaise int64 `json:"outstandingPrincipalAfterPaise" db:"outstanding_principal_after_paise"`
	OutstandingInterestAfterPaise  int64 `json:"outstandingInterestAfterPaise" db:"outstanding_interest_after_paise"`

	Notes     *string `json:"notes,omitempty" db:"notes"`
	CreatedAt int64   `json:"createdAt" db:"created_at"`
}

// CreatePaymentRequest represents a payment creation request.
// Amount is in rupees and converted to paise by the service.
type CreatePaymentRequest struct {
	LoanID           int64       `json:"loanId" binding:"required"`
	Amount           float64     `json:"amount" binding:"required,gt=0"`
	PaymentMode      PaymentMode `json:"paymentMode" binding:"required"`
	PaymentReference *string     `json:"paymentReference"`
	PaymentDate      string      `json:"paymentDate" binding:"required"` // ISO date (YYYY-MM-DD or RFC3339)
	Notes            *string     `json:"notes"`
}
