package services

import (
	"database/sql"
	"time"

	"goldloan-backend/internal/ledger"
	"goldloan-backend/internal/models"
)

// DashboardService aggregates the headline numbers for a shop
type DashboardService struct {
	db *sql.DB
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *sql.DB) *DashboardService {
	return &DashboardService{db: db}
}

// Stats computes the dashboard summary for a shop. Sums come back in paise
// and are converted to rupees for display here, at the boundary.
func (s *DashboardService) Stats(shopID int64) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}

	var outstandingPaise, interestPaise int64
	err := s.db.QueryRow(`
		SELECT COUNT(1),
		       COALESCE(SUM(outstanding_principal_paise), 0),
		       COALESCE(SUM(net_weight_grams), 0)
		FROM loans WHERE shop_id = ? AND status = 'active'`, shopID).
		Scan(&stats.TotalActiveLoans, &outstandingPaise, &stats.TotalGoldWeight)
	if err != nil {
		return nil, err
	}
	stats.TotalLoanAmount = ledger.PaiseToRupees(outstandingPaise)

	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	err = s.db.QueryRow(`
		SELECT COUNT(1) FROM loans
		WHERE shop_id = ? AND status = 'active' AND due_date < ?`,
		shopID, midnight.Unix()).Scan(&stats.OverdueLoans)
	if err != nil {
		return nil, err
	}

	var todayPaise int64
	err = s.db.QueryRow(`
		SELECT COALESCE(SUM(amount_paise), 0) FROM payments
		WHERE shop_id = ? AND payment_date >= ?`,
		shopID, midnight.Unix()).Scan(&todayPaise)
	if err != nil {
		return nil, err
	}
	stats.TodayCollections = ledger.PaiseToRupees(todayPaise)

	err = s.db.QueryRow(`
		SELECT COUNT(1) FROM customers WHERE shop_id = ? AND is_active = 1`,
		shopID).Scan(&stats.TotalCustomers)
	if err != nil {
		return nil, err
	}

	err = s.db.QueryRow(`
		SELECT COALESCE(SUM(total_interest_paid_paise), 0) FROM loans WHERE shop_id = ?`,
		shopID).Scan(&interestPaise)
	if err != nil {
		return nil, err
	}
	stats.TotalInterestEarned = ledger.PaiseToRupees(interestPaise)

	return stats, nil
}

// RecentLoans returns the latest loans with customer identity for the
// dashboard activity list
func (s *DashboardService) RecentLoans(shopID int64, limit int) ([]models.RecentLoan, error) {
	if limit <= 0 || limit > 50 {
		limit = 5
	}
	rows, err := s.db.Query(loanSelect+`
		WHERE l.shop_id = ?
		ORDER BY l.created_at DESC LIMIT ?`, shopID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recent []models.RecentLoan
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, err
		}
		recent = append(recent, models.RecentLoan{
			Loan:           *l,
			CustomerName:   l.Customer.Name,
			CustomerMobile: l.Customer.Mobile,
		})
	}
	return recent, rows.Err()
}

// RecentPayments returns the latest payments with loan and customer identity
func (s *DashboardService) RecentPayments(shopID int64, limit int) ([]models.RecentPayment, error) {
	if limit <= 0 || limit > 50 {
		limit = 5
	}
	rows, err := s.db.Query(`
		SELECT p.id, p.shop_id, p.loan_id, p.payment_number, p.amount_paise,
		       p.interest_paid_paise, p.principal_paid_paise, p.payment_mode,
		       p.payment_reference, p.payment_date,
		       p.outstanding_principal_after_paise, p.outstanding_interest_after_paise,
		       p.notes, p.created_at,
		       l.loan_number, c.name
		FROM payments p
		JOIN loans l ON l.id = p.loan_id
		JOIN customers c ON c.id = l.customer_id
		WHERE p.shop_id = ?
		ORDER BY p.created_at DESC LIMIT ?`, shopID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recent []models.RecentPayment
	for rows.Next() {
		var rp models.RecentPayment
		p := &rp.Payment
		err := rows.Scan(&p.ID, &p.ShopID, &p.LoanID, &p.PaymentNumber, &p.AmountPaise,
			&p.InterestPaidPaise, &p.PrincipalPaidPaise, &p.PaymentMode,
			&p.PaymentReference, &p.PaymentDate,
			&p.OutstandingPrincipalAfterPaise, &p.OutstandingInterestAfterPaise,
			&p.Notes, &p.CreatedAt,
			&rp.LoanNumber, &rp.CustomerName)
		if err != nil {
			return nil, err
		}
		recent = append(recent, rp)
	}
	return recent, rows.Err()
}
