package services

import (
	"bytes"
	"database/sql"
	"encoding/csv"
	"fmt"

	"goldloan-backend/internal/models"
	"goldloan-backend/internal/utils"
)

// ExportService renders shop data as CSV for download
type ExportService struct {
	db *sql.DB
}

// NewExportService creates a new export service
func NewExportService(db *sql.DB) *ExportService {
	return &ExportService{db: db}
}

// LoansCSV exports loans for a shop, optionally filtered by status
func (s *ExportService) LoansCSV(shopID int64, status models.LoanStatus) ([]byte, error) {
	loans, err := NewLoanService(s.db).List(shopID, status, 0)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"Loan Number", "Customer", "Mobile", "Ornament", "Purity",
		"Gross Weight (g)", "Net Weight (g)", "Gold Rate/g", "Gold Value",
		"Principal", "Interest Rate %", "Start Date", "Due Date",
		"Outstanding Principal", "Outstanding Interest", "Interest Paid", "Status",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, l := range loans {
		row := []string{
			l.LoanNumber,
			l.Customer.Name,
			l.Customer.Mobile,
			l.OrnamentType,
			l.Purity,
			fmt.Sprintf("%.3f", l.GrossWeightGrams),
			fmt.Sprintf("%.3f", l.NetWeightGrams),
			fmt.Sprintf("%.2f", l.GoldRatePerGram),
			utils.FormatCurrency(l.GoldValuePaise),
			utils.FormatCurrency(l.PrincipalAmountPaise),
			fmt.Sprintf("%.2f", l.InterestRatePercent),
			utils.FormatDateIndian(l.StartDate),
			utils.FormatDateIndian(l.DueDate),
			utils.FormatCurrency(l.OutstandingPrincipalPaise),
			utils.FormatCurrency(l.OutstandingInterestPaise),
			utils.FormatCurrency(l.TotalInterestPaidPaise),
			string(l.Status),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

// PaymentsCSV exports payments for a shop in an optional date window
func (s *ExportService) PaymentsCSV(shopID, from, to int64) ([]byte, error) {
	rows, err := s.db.Query(`
		SELECT p.payment_number, l.loan_number, c.name, p.amount_paise,
		       p.interest_paid_paise, p.principal_paid_paise, p.payment_mode,
		       p.payment_date,
		       p.outstanding_principal_after_paise, p.outstanding_interest_after_paise
		FROM payments p
		JOIN loans l ON l.id = p.loan_id
		JOIN customers c ON c.id = l.customer_id
		WHERE p.shop_id = ?
		  AND (? = 0 OR p.payment_date >= ?)
		  AND (? = 0 OR p.payment_date <= ?)
		ORDER BY p.payment_date DESC, p.id DESC`,
		shopID, from, from, to, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"Payment Number", "Loan Number", "Customer", "Amount",
		"Interest Paid", "Principal Paid", "Mode", "Date",
		"Principal After", "Interest After",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for rows.Next() {
		var paymentNumber, loanNumber, customerName, mode string
		var amount, interestPaid, principalPaid, principalAfter, interestAfter, date int64
		err := rows.Scan(&paymentNumber, &loanNumber, &customerName, &amount,
			&interestPaid, &principalPaid, &mode, &date, &principalAfter, &interestAfter)
		if err != nil {
			return nil, err
		}
		row := []string{
			paymentNumber, loanNumber, customerName,
			utils.FormatCurrency(amount),
			utils.FormatCurrency(interestPaid),
			utils.FormatCurrency(principalPaid),
			mode,
			utils.FormatDateIndian(date),
			utils.FormatCurrency(principalAfter),
			utils.FormatCurrency(interestAfter),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

// CustomersCSV exports active customers for a shop
func (s *ExportService) CustomersCSV(shopID int64) ([]byte, error) {
	customers, err := NewCustomerService(s.db).List(shopID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"Name", "Mobile", "City", "ID Proof", "Active Loans", "Total Loans", "Since"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, c := range customers {
		city, idProof := "", ""
		if c.City != nil {
			city = *c.City
		}
		if c.IDProofType != nil {
			idProof = *c.IDProofType
			if c.IDProofNumber != nil {
				idProof += " " + *c.IDProofNumber
			}
		}
		row := []string{
			c.Name, c.Mobile, city, idProof,
			fmt.Sprintf("%d", c.ActiveLoans),
			fmt.Sprintf("%d", c.TotalLoans),
			utils.FormatDateIndian(c.CreatedAt),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}
