package services

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"goldloan-backend/internal/ledger"
	"goldloan-backend/internal/models"
)

// PaymentService records payments against loans. A payment and the loan
// balance update commit in a single transaction; partial writes are
// impossible.
type PaymentService struct {
	db    *sql.DB
	audit *AuditService
}

// NewPaymentService creates a new payment service
func NewPaymentService(db *sql.DB) *PaymentService {
	return &PaymentService{db: db, audit: NewAuditService(db)}
}

// Create applies a payment to a loan. The loan balances are re-read inside
// the transaction and the balance update asserts they are unchanged, so two
// concurrent payments can never both apply against the same snapshot.
func (s *PaymentService) Create(shopID int64, req *models.CreatePaymentRequest) (*models.Payment, error) {
	if !models.ValidPaymentMode(req.PaymentMode) {
		return nil, fmt.Errorf("invalid payment mode %q", req.PaymentMode)
	}
	paymentDate, err := ParseDate(req.PaymentDate)
	if err != nil {
		return nil, fmt.Errorf("invalid payment date: %w", err)
	}
	amountPaise := ledger.RupeesToPaise(req.Amount)

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var loan models.Loan
	err = tx.QueryRow(`
		SELECT id, loan_number, interest_rate_percent, start_date,
		       outstanding_principal_paise, outstanding_interest_paise,
		       total_interest_paid_paise, total_principal_paid_paise, status
		FROM loans WHERE shop_id = ? AND id = ?`, shopID, req.LoanID).
		Scan(&loan.ID, &loan.LoanNumber, &loan.InterestRatePercent, &loan.StartDate,
			&loan.OutstandingPrincipalPaise, &loan.OutstandingInterestPaise,
			&loan.TotalInterestPaidPaise, &loan.TotalPrincipalPaidPaise, &loan.Status)
	if err == sql.ErrNoRows {
		return nil, ErrLoanNotFound
	}
	if err != nil {
		return nil, err
	}
	if loan.Status == models.LoanStatusClosed {
		return nil, ErrLoanClosed
	}

	state := ledger.LoanState{
		OutstandingPrincipalPaise: loan.OutstandingPrincipalPaise,
		OutstandingInterestPaise:  loan.OutstandingInterestPaise,
		InterestRatePercent:       loan.InterestRatePercent,
		StartDate:                 time.Unix(loan.StartDate, 0).UTC(),
	}
	alloc, err := ledger.ApplyPayment(state, amountPaise, paymentDate)
	if err != nil {
		return nil, err
	}

	now := time.Now().Unix()
	var paymentID int64
	for attempt := 0; attempt < numberRetries; attempt++ {
		paymentNumber := ledger.NewPaymentNumber()
		res, err := tx.Exec(`
			INSERT INTO payments (shop_id, loan_id, payment_number, amount_paise,
				interest_paid_paise, principal_paid_paise, payment_mode, payment_reference,
				payment_date, outstanding_principal_after_paise, outstanding_interest_after_paise,
				notes, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			shopID, req.LoanID, paymentNumber, amountPaise,
			alloc.InterestPaidPaise, alloc.PrincipalPaidPaise, string(req.PaymentMode), req.PaymentReference,
			paymentDate.Unix(), alloc.NewOutstandingPrincipalPaise, alloc.NewOutstandingInterestPaise,
			req.Notes, now)
		if err != nil {
			if isUniqueViolation(err) {
				continue
			}
			return nil, fmt.Errorf("failed to insert payment: %w", err)
		}
		paymentID, err = res.LastInsertId()
		if err != nil {
			return nil, err
		}
		break
	}
	if paymentID == 0 {
		return nil, ErrNumberExhausted
	}

	// The WHERE clause asserts the balances we allocated against. A
	// concurrent writer makes this update a no-op and we roll back.
	update := `
		UPDATE loans SET
			outstanding_principal_paise = ?,
			outstanding_interest_paise = ?,
			total_interest_paid_paise = total_interest_paid_paise + ?,
			total_principal_paid_paise = total_principal_paid_paise + ?,
			updated_at = ?`
	args := []interface{}{
		alloc.NewOutstandingPrincipalPaise, alloc.NewOutstandingInterestPaise,
		alloc.InterestPaidPaise, alloc.PrincipalPaidPaise, now,
	}
	if alloc.ClosesLoan {
		update += `, status = 'closed', closed_at = ?`
		args = append(args, now)
	}
	update += `
		WHERE id = ? AND status = 'active'
		AND outstanding_principal_paise = ? AND outstanding_interest_paise = ?`
	args = append(args, req.LoanID, loan.OutstandingPrincipalPaise, loan.OutstandingInterestPaise)

	res, err := tx.Exec(update, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update loan balances: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrConcurrentUpdate
	}

	if err := s.audit.RecordTx(tx, shopID, models.AuditPaymentRecorded, "payment", paymentID, map[string]interface{}{
		"loanId":      req.LoanID,
		"amountPaise": amountPaise,
	}); err != nil {
		return nil, fmt.Errorf("failed to write audit log: %w", err)
	}
	if alloc.ClosesLoan {
		if err := s.audit.RecordTx(tx, shopID, models.AuditLoanClosed, "loan", req.LoanID, nil); err != nil {
			return nil, fmt.Errorf("failed to write audit log: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit payment: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"loanNumber":  loan.LoanNumber,
		"amountPaise": amountPaise,
		"closed":      alloc.ClosesLoan,
	}).Info("payment recorded")

	return s.GetByID(shopID, paymentID)
}

// GetByID returns a payment scoped to the shop
func (s *PaymentService) GetByID(shopID, id int64) (*models.Payment, error) {
	row := s.db.QueryRow(paymentSelect+` WHERE shop_id = ? AND id = ?`, shopID, id)
	return scanPayment(row)
}

// ListByLoan returns payments against one loan, newest first
func (s *PaymentService) ListByLoan(shopID, loanID int64) ([]models.Payment, error) {
	return s.queryPayments(paymentSelect+`
		WHERE shop_id = ? AND loan_id = ?
		ORDER BY payment_date DESC, id DESC`, shopID, loanID)
}

// List returns payments for a shop in an optional date window.
// from and to are unix seconds; zero means unbounded.
func (s *PaymentService) List(shopID, from, to int64) ([]models.Payment, error) {
	query := paymentSelect + ` WHERE shop_id = ?`
	args := []interface{}{shopID}
	if from > 0 {
		query += ` AND payment_date >= ?`
		args = append(args, from)
	}
	if to > 0 {
		query += ` AND payment_date <= ?`
		args = append(args, to)
	}
	query += ` ORDER BY payment_date DESC, id DESC`
	return s.queryPayments(query, args...)
}

const paymentSelect = `
	SELECT id, shop_id, loan_id, payment_number, amount_paise, interest_paid_paise,
	       principal_paid_paise, payment_mode, payment_reference, payment_date,
	       outstanding_principal_after_paise, outstanding_interest_after_paise,
	       notes, created_at
	FROM payments`

func scanPayment(row rowScanner) (*models.Payment, error) {
	var p models.Payment
	err := row.Scan(&p.ID, &p.ShopID, &p.LoanID, &p.PaymentNumber, &p.AmountPaise,
		&p.InterestPaidPaise, &p.PrincipalPaidPaise, &p.PaymentMode, &p.PaymentReference,
		&p.PaymentDate, &p.OutstandingPrincipalAfterPaise, &p.OutstandingInterestAfterPaise,
		&p.Notes, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PaymentService) queryPayments(query string, args ...interface{}) ([]models.Payment, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, *p)
	}
	return payments, rows.Err()
}
