package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goldloan-backend/internal/models"
)

func TestDashboardStats(t *testing.T) {
	db := newTestDB(t)
	shopID := registerTestShop(t, db).ID
	customerID := createTestCustomer(t, db, shopID).ID

	service := NewDashboardService(db)

	empty, err := service.Stats(shopID)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.TotalActiveLoans)
	assert.Equal(t, 1, empty.TotalCustomers)

	start := time.Now().UTC().AddDate(0, 0, -30)
	loan, err := NewLoanService(db).Create(shopID, &models.CreateLoanRequest{
		CustomerID:          customerID,
		OrnamentType:        "chain",
		GrossWeightGrams:    15,
		Purity:              "916",
		GoldRatePerGram:     6000,
		PrincipalAmount:     10000,
		InterestRatePercent: 2,
		TenureMonths:        12,
		StartDate:           start.Format("2006-01-02"),
	})
	require.NoError(t, err)

	// Payment dated today counts toward today's collections
	_, err = NewPaymentService(db).Create(shopID, &models.CreatePaymentRequest{
		LoanID:      loan.ID,
		Amount:      500,
		PaymentMode: models.PaymentModeUPI,
		PaymentDate: time.Now().UTC().Format("2006-01-02"),
	})
	require.NoError(t, err)

	stats, err := service.Stats(shopID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalActiveLoans)
	assert.Equal(t, 15.0, stats.TotalGoldWeight)
	assert.InDelta(t, 9516.44, stats.TotalLoanAmount, 0.01)
	assert.InDelta(t, 16.44, stats.TotalInterestEarned, 0.01)
	assert.Equal(t, 0, stats.OverdueLoans)
}

func TestDashboardRecentActivity(t *testing.T) {
	db := newTestDB(t)
	shopID := registerTestShop(t, db).ID
	customerID := createTestCustomer(t, db, shopID).ID

	start := time.Now().UTC().Format("2006-01-02")
	loan, err := NewLoanService(db).Create(shopID, &models.CreateLoanRequest{
		CustomerID:          customerID,
		OrnamentType:        "ring",
		GrossWeightGrams:    5,
		Purity:              "22K",
		GoldRatePerGram:     6000,
		PrincipalAmount:     2000,
		InterestRatePercent: 2,
		TenureMonths:        6,
		StartDate:           start,
	})
	require.NoError(t, err)

	_, err = NewPaymentService(db).Create(shopID, &models.CreatePaymentRequest{
		LoanID:      loan.ID,
		Amount:      100,
		PaymentMode: models.PaymentModeCash,
		PaymentDate: start,
	})
	require.NoError(t, err)

	service := NewDashboardService(db)

	loans, err := service.RecentLoans(shopID, 5)
	require.NoError(t, err)
	require.Len(t, loans, 1)
	assert.Equal(t, "Sita Devi", loans[0].CustomerName)

	payments, err := service.RecentPayments(shopID, 5)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, loan.LoanNumber, payments[0].LoanNumber)
	assert.Equal(t, "Sita Devi", payments[0].CustomerName)
}
