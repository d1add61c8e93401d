package services

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goldloan-backend/internal/models"
)

func TestExportCSVs(t *testing.T) {
	db := newTestDB(t)
	shopID := registerTestShop(t, db).ID
	customerID := createTestCustomer(t, db, shopID).ID

	start := time.Now().UTC().Format("2006-01-02")
	loan, err := NewLoanService(db).Create(shopID, &models.CreateLoanRequest{
		CustomerID:          customerID,
		OrnamentType:        "chain",
		GrossWeightGrams:    10,
		Purity:              "22K",
		GoldRatePerGram:     6000,
		PrincipalAmount:     5000,
		InterestRatePercent: 2,
		TenureMonths:        12,
		StartDate:           start,
	})
	require.NoError(t, err)

	_, err = NewPaymentService(db).Create(shopID, &models.CreatePaymentRequest{
		LoanID:      loan.ID,
		Amount:      500,
		PaymentMode: models.PaymentModeCash,
		PaymentDate: start,
	})
	require.NoError(t, err)

	service := NewExportService(db)

	t.Run("loans", func(t *testing.T) {
		data, err := service.LoansCSV(shopID, "")
		require.NoError(t, err)

		records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 2, "header plus one loan")
		assert.Equal(t, "Loan Number", records[0][0])
		assert.Equal(t, loan.LoanNumber, records[1][0])
		assert.Equal(t, "Sita Devi", records[1][1])
	})

	t.Run("payments", func(t *testing.T) {
		data, err := service.PaymentsCSV(shopID, 0, 0)
		require.NoError(t, err)

		records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "Payment Number", records[0][0])
		assert.Equal(t, loan.LoanNumber, records[1][1])
		assert.Equal(t, "500.00", records[1][3])
	})

	t.Run("customers", func(t *testing.T) {
		data, err := service.CustomersCSV(shopID)
		require.NoError(t, err)

		records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "Sita Devi", records[1][0])
		assert.Equal(t, "1", records[1][4], "one active loan")
	})
}

func TestPDFDocuments(t *testing.T) {
	db := newTestDB(t)
	shopID := registerTestShop(t, db).ID
	customerID := createTestCustomer(t, db, shopID).ID

	start := time.Now().UTC().Format("2006-01-02")
	loan, err := NewLoanService(db).Create(shopID, &models.CreateLoanRequest{
		CustomerID:          customerID,
		OrnamentType:        "chain",
		GrossWeightGrams:    10,
		Purity:              "22K",
		GoldRatePerGram:     6000,
		PrincipalAmount:     5000,
		InterestRatePercent: 2,
		TenureMonths:        12,
		StartDate:           start,
	})
	require.NoError(t, err)

	payment, err := NewPaymentService(db).Create(shopID, &models.CreatePaymentRequest{
		LoanID:      loan.ID,
		Amount:      500,
		PaymentMode: models.PaymentModeCash,
		PaymentDate: start,
	})
	require.NoError(t, err)

	service := NewPDFService(db)

	doc, err := service.LoanDocument(shopID, loan.ID)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")), "output is a PDF")

	receipt, err := service.PaymentReceipt(shopID, payment.ID)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(receipt, []byte("%PDF")))

	_, err = service.LoanDocument(shopID, 99999)
	assert.ErrorIs(t, err, ErrLoanNotFound)
}
