package models

// LoanStatus represents loan status
type LoanStatus string

const (
	LoanStatusActive LoanStatus = "active"
	LoanStatusClosed LoanStatus = "closed"
)

// ValidPurities lists the purity grades accepted for pledged ornaments
var ValidPurities = []string{"18K", "22K", "24K", "916", "750"}

// Loan represents a collateral-backed gold loan.
// All monetary amounts are integer paise.
type Loan struct {
	ID         int64  `json:"id" db:"id"`
	ShopID     int64  `json:"shopId" db:"shop_id"`
	CustomerID int64  `json:"customerId" db:"customer_id"`
	LoanNumber string `json:"loanNumber" db:"loan_number"`

	// Gold details
	OrnamentType     string  `json:"ornamentType" db:"ornament_type"`
	GrossWeightGrams float64 `json:"grossWeightGrams" db:"gross_weight_grams"`
	StoneWeightGrams float64 `json:"stoneWeightGrams" db:"stone_weight_grams"`
	NetWeightGrams   float64 `json:"netWeightGrams" db:"net_weight_grams"`
	Purity           string  `json:"purity" db:"purity"`
	GoldRatePerGram  float64 `json:"goldRatePerGram" db:"gold_rate_per_gram"`
	GoldValuePaise   int64   `json:"goldValuePaise" db:"gold_value_paise"`

	// Loan terms
	PrincipalAmountPaise int64   `json:"principalAmountPaise" db:"principal_amount_paise"`
	InterestRatePercent  float64 `json:"interestRatePercent" db:"interest_rate_percent"`
	TenureMonths         int     `json:"tenureMonths" db:"tenure_months"`
	StartDate            int64   `json:"startDate" db:"start_date"`
	DueDate              int64   `json:"dueDate" db:"due_date"`

	// Running balances (paise)
	OutstandingPrincipalPaise int64 `json:"outstandingPrincipalPaise" db:"outstanding_principal_paise"`
	OutstandingInterestPaise  int64 `json:"outstandingInterestPaise" db:"outstanding_interest_paise"`
	TotalInterestPaidPaise    int64 `json:"totalInterestPaidPaise" db:"total_interest_paid_paise"`
	TotalPrincipalPaidPaise   int64 `json:"totalPrincipalPaidPaise" db:"total_principal_paid_paise"`

	Status   LoanStatus `json:"status" db:"status"`
	ClosedAt *int64     `json:"closedAt,omitempty" db:"closed_at"`

	CreatedAt int64 `json:"createdAt" db:"created_at"`
	UpdatedAt int64 `json:"updatedAt" db:"updated_at"`

	// Joined data
	Customer *Customer `json:"customer,omitempty"`
}

// CreateLoanRequest represents a loan creation request.
// PrincipalAmount is in rupees and converted to paise by the service.
type CreateLoanRequest struct {
	CustomerID          int64   `json:"customerId" binding:"required"`
	OrnamentType        string  `json:"ornamentType" binding:"required"`
	GrossWeightGrams    float64 `json:"grossWeightGrams" binding:"required,gt=0"`
	StoneWeightGrams    float64 `json:"stoneWeightGrams" binding:"gte=0"`
	Purity              string  `json:"purity" binding:"required"`
	GoldRatePerGram     float64 `json:"goldRatePerGram" binding:"required,gt=0"`
	PrincipalAmount     float64 `json:"principalAmount" binding:"required,gt=0"`
	InterestRatePercent float64 `json:"interestRatePercent" binding:"required,gt=0"`
	TenureMonths        int     `json:"tenureMonths" binding:"required,gt=0"`
	StartDate           string  `json:"startDate" binding:"required"` // ISO date (YYYY-MM-DD or RFC3339)
}
