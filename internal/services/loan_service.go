package services

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"goldloan-backend/internal/ledger"
	"goldloan-backend/internal/models"
)

// numberRetries bounds how many times a loan or payment number is
// regenerated on a uniqueness collision.
const numberRetries = 10

// LoanService handles loan issuance and lifecycle
type LoanService struct {
	db    *sql.DB
	audit *AuditService
}

// NewLoanService creates a new loan service
func NewLoanService(db *sql.DB) *LoanService {
	return &LoanService{db: db, audit: NewAuditService(db)}
}

// Create issues a new loan against pledged gold. The principal is checked
// against the gold value and the full principal becomes outstanding.
func (s *LoanService) Create(shopID int64, req *models.CreateLoanRequest) (*models.Loan, error) {
	customer, err := NewCustomerService(s.db).GetByID(shopID, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if !customer.IsActive {
		return nil, ErrCustomerInactive
	}

	if !validPurity(req.Purity) {
		return nil, fmt.Errorf("invalid purity %q", req.Purity)
	}

	startDate, err := ParseDate(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date: %w", err)
	}

	principalPaise := ledger.RupeesToPaise(req.PrincipalAmount)
	collateral := ledger.Collateral{
		GrossWeightGrams: req.GrossWeightGrams,
		StoneWeightGrams: req.StoneWeightGrams,
		GoldRatePerGram:  req.GoldRatePerGram,
	}
	netWeight, goldValue, err := ledger.ValueCollateral(collateral, principalPaise)
	if err != nil {
		return nil, err
	}

	dueDate := ledger.DueDate(startDate, req.TenureMonths)
	now := time.Now().Unix()

	var id int64
	for attempt := 0; attempt < numberRetries; attempt++ {
		loanNumber := ledger.NewLoanNumber()
		res, err := s.db.Exec(`
			INSERT INTO loans (shop_id, customer_id, loan_number, ornament_type,
				gross_weight_grams, stone_weight_grams, net_weight_grams, purity,
				gold_rate_per_gram, gold_value_paise, principal_amount_paise,
				interest_rate_percent, tenure_months, start_date, due_date,
				outstanding_principal_paise, outstanding_interest_paise,
				total_interest_paid_paise, total_principal_paid_paise,
				status, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, 0, 0, 'active', ?, ?)`,
			shopID, req.CustomerID, loanNumber, req.OrnamentType,
			req.GrossWeightGrams, req.StoneWeightGrams, netWeight, req.Purity,
			req.GoldRatePerGram, goldValue, principalPaise,
			req.InterestRatePercent, req.TenureMonths, startDate.Unix(), dueDate.Unix(),
			principalPaise, now, now)
		if err != nil {
			if isUniqueViolation(err) {
				continue
			}
			return nil, fmt.Errorf("failed to create loan: %w", err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return nil, err
		}
		break
	}
	if id == 0 {
		return nil, ErrNumberExhausted
	}

	s.audit.Record(shopID, models.AuditLoanCreated, "loan", id, map[string]interface{}{
		"customerId":     req.CustomerID,
		"principalPaise": principalPaise,
	})

	loan, err := s.GetByID(shopID, id)
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"loanNumber": loan.LoanNumber,
		"shopId":     shopID,
	}).Info("loan created")
	return loan, nil
}

// GetByID returns a loan with its customer, scoped to the shop
func (s *LoanService) GetByID(shopID, id int64) (*models.Loan, error) {
	row := s.db.QueryRow(loanSelect+` WHERE l.shop_id = ? AND l.id = ?`, shopID, id)
	return scanLoan(row)
}

// List returns loans for a shop, optionally filtered by status or customer
func (s *LoanService) List(shopID int64, status models.LoanStatus, customerID int64) ([]models.Loan, error) {
	query := loanSelect + ` WHERE l.shop_id = ?`
	args := []interface{}{shopID}

	if status != "" {
		query += ` AND l.status = ?`
		args = append(args, string(status))
	}
	if customerID > 0 {
		query += ` AND l.customer_id = ?`
		args = append(args, customerID)
	}
	query += ` ORDER BY l.created_at DESC`

	return s.queryLoans(query, args...)
}

// ListOverdue returns active loans whose due date has passed.
// Overdue is derived from the due date, never stored as a status.
func (s *LoanService) ListOverdue(shopID int64) ([]models.Loan, error) {
	today := time.Now()
	midnight := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	return s.queryLoans(loanSelect+`
		WHERE l.shop_id = ? AND l.status = 'active' AND l.due_date < ?
		ORDER BY l.due_date ASC`, shopID, midnight.Unix())
}

// Close marks a fully repaid loan closed. Loans with any outstanding
// principal or interest are refused.
func (s *LoanService) Close(shopID, id int64) (*models.Loan, error) {
	loan, err := s.GetByID(shopID, id)
	if err != nil {
		return nil, err
	}
	if loan.Status == models.LoanStatusClosed {
		return nil, ErrLoanClosed
	}
	if loan.OutstandingPrincipalPaise > 0 || loan.OutstandingInterestPaise > 0 {
		return nil, ErrOutstandingBalance
	}

	now := time.Now().Unix()
	_, err = s.db.Exec(`
		UPDATE loans SET status = 'closed', closed_at = ?, updated_at = ?
		WHERE shop_id = ? AND id = ? AND status = 'active'`,
		now, now, shopID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to close loan: %w", err)
	}

	s.audit.Record(shopID, models.AuditLoanClosed, "loan", id, nil)
	return s.GetByID(shopID, id)
}

// AccruedInterest returns the interest accrued on a loan as of now, in paise
func (s *LoanService) AccruedInterest(loan *models.Loan) int64 {
	return ledger.AccruedInterest(loan.OutstandingPrincipalPaise, loan.InterestRatePercent,
		time.Unix(loan.StartDate, 0).UTC(), time.Now().UTC())
}

// ParseDate parses an ISO date, either plain YYYY-MM-DD or full RFC3339
func ParseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

func validPurity(purity string) bool {
	for _, p := range models.ValidPurities {
		if p == purity {
			return true
		}
	}
	return false
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

const loanSelect = `
	SELECT l.id, l.shop_id, l.customer_id, l.loan_number, l.ornament_type,
	       l.gross_weight_grams, l.stone_weight_grams, l.net_weight_grams, l.purity,
	       l.gold_rate_per_gram, l.gold_value_paise, l.principal_amount_paise,
	       l.interest_rate_percent, l.tenure_months, l.start_date, l.due_date,
	       l.outstanding_principal_paise, l.outstanding_interest_paise,
	       l.total_interest_paid_paise, l.total_principal_paid_paise,
	       l.status, l.closed_at, l.created_at, l.updated_at,
	       c.name, c.mobile
	FROM loans l
	JOIN customers c ON c.id = l.customer_id`

func scanLoan(row rowScanner) (*models.Loan, error) {
	var l models.Loan
	var customerName, customerMobile string
	err := row.Scan(&l.ID, &l.ShopID, &l.CustomerID, &l.LoanNumber, &l.OrnamentType,
		&l.GrossWeightGrams, &l.StoneWeightGrams, &l.NetWeightGrams, &l.Purity,
		&l.GoldRatePerGram, &l.GoldValuePaise, &l.PrincipalAmountPaise,
		&l.InterestRatePercent, &l.TenureMonths, &l.StartDate, &l.DueDate,
		&l.OutstandingPrincipalPaise, &l.OutstandingInterestPaise,
		&l.TotalInterestPaidPaise, &l.TotalPrincipalPaidPaise,
		&l.Status, &l.ClosedAt, &l.CreatedAt, &l.UpdatedAt,
		&customerName, &customerMobile)
	if err == sql.ErrNoRows {
		return nil, ErrLoanNotFound
	}
	if err != nil {
		return nil, err
	}
	l.Customer = &models.Customer{ID: l.CustomerID, ShopID: l.ShopID, Name: customerName, Mobile: customerMobile}
	return &l, nil
}

func (s *LoanService) queryLoans(query string, args ...interface{}) ([]models.Loan, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var loans []models.Loan
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, err
		}
		loans = append(loans, *l)
	}
	return loans, rows.Err()
}
