package services

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"goldloan-backend/internal/models"
)

type PaymentServiceTestSuite struct {
	suite.Suite
	db      *sql.DB
	service *PaymentService
	loans   *LoanService
	shopID  int64
	loanID  int64
	start   time.Time
}

func (s *PaymentServiceTestSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.service = NewPaymentService(s.db)
	s.loans = NewLoanService(s.db)
	s.shopID = registerTestShop(s.T(), s.db).ID
	customerID := createTestCustomer(s.T(), s.db, s.shopID).ID

	s.start = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	loan, err := s.loans.Create(s.shopID, &models.CreateLoanRequest{
		CustomerID:          customerID,
		OrnamentType:        "bangle",
		GrossWeightGrams:    20,
		Purity:              "22K",
		GoldRatePerGram:     6000,
		PrincipalAmount:     10000, // 1,000,000 paise
		InterestRatePercent: 2,
		TenureMonths:        12,
		StartDate:           s.start.Format("2006-01-02"),
	})
	s.Require().NoError(err)
	s.loanID = loan.ID
}

func (s *PaymentServiceTestSuite) pay(amount float64, date time.Time) (*models.Payment, error) {
	return s.service.Create(s.shopID, &models.CreatePaymentRequest{
		LoanID:      s.loanID,
		Amount:      amount,
		PaymentMode: models.PaymentModeCash,
		PaymentDate: date.Format("2006-01-02"),
	})
}

func (s *PaymentServiceTestSuite) TestInterestFirstAllocation() {
	// 30 days at 2% on 1,000,000 paise accrues 1644 paise
	payment, err := s.pay(500, s.start.AddDate(0, 0, 30))
	s.Require().NoError(err)

	s.Regexp(`^PY-\d{8}-\d{5}$`, payment.PaymentNumber)
	s.Equal(int64(50000), payment.AmountPaise)
	s.Equal(int64(1644), payment.InterestPaidPaise)
	s.Equal(int64(48356), payment.PrincipalPaidPaise)
	s.Equal(int64(951644), payment.OutstandingPrincipalAfterPaise)
	s.Equal(int64(0), payment.OutstandingInterestAfterPaise)

	// The loan carries the same balances as the payment snapshot
	loan, err := s.loans.GetByID(s.shopID, s.loanID)
	s.Require().NoError(err)
	s.Equal(int64(951644), loan.OutstandingPrincipalPaise)
	s.Equal(int64(1644), loan.TotalInterestPaidPaise)
	s.Equal(int64(48356), loan.TotalPrincipalPaidPaise)
	s.Equal(models.LoanStatusActive, loan.Status)
}

func (s *PaymentServiceTestSuite) TestSmallPaymentLeavesUnpaidInterest() {
	payment, err := s.pay(10, s.start.AddDate(0, 0, 30)) // 1000 paise < 1644 accrued
	s.Require().NoError(err)

	s.Equal(int64(1000), payment.InterestPaidPaise)
	s.Equal(int64(0), payment.PrincipalPaidPaise)
	s.Equal(int64(644), payment.OutstandingInterestAfterPaise)
	s.Equal(int64(1000000), payment.OutstandingPrincipalAfterPaise)
}

func (s *PaymentServiceTestSuite) TestExactPayoffClosesLoan() {
	payment, err := s.pay(10016.44, s.start.AddDate(0, 0, 30))
	s.Require().NoError(err)

	s.Equal(int64(0), payment.OutstandingPrincipalAfterPaise)
	s.Equal(int64(0), payment.OutstandingInterestAfterPaise)

	loan, err := s.loans.GetByID(s.shopID, s.loanID)
	s.Require().NoError(err)
	s.Equal(models.LoanStatusClosed, loan.Status)
	s.Require().NotNil(loan.ClosedAt)
	s.Greater(*loan.ClosedAt, int64(0))
}

func (s *PaymentServiceTestSuite) TestOverpaymentRejected() {
	_, err := s.pay(10016.45, s.start.AddDate(0, 0, 30))
	s.Error(err)

	// Nothing was written
	payments, listErr := s.service.ListByLoan(s.shopID, s.loanID)
	s.Require().NoError(listErr)
	s.Empty(payments)
}

func (s *PaymentServiceTestSuite) TestPaymentOnClosedLoanRejected() {
	_, err := s.pay(10016.44, s.start.AddDate(0, 0, 30))
	s.Require().NoError(err)

	_, err = s.pay(100, s.start.AddDate(0, 0, 31))
	s.ErrorIs(err, ErrLoanClosed)
}

func (s *PaymentServiceTestSuite) TestInvalidInputs() {
	_, err := s.service.Create(s.shopID, &models.CreatePaymentRequest{
		LoanID:      s.loanID,
		Amount:      100,
		PaymentMode: "barter",
		PaymentDate: "2024-01-31",
	})
	s.Error(err)

	_, err = s.service.Create(s.shopID, &models.CreatePaymentRequest{
		LoanID:      s.loanID,
		Amount:      100,
		PaymentMode: models.PaymentModeCash,
		PaymentDate: "31-01-2024",
	})
	s.Error(err)

	_, err = s.service.Create(s.shopID, &models.CreatePaymentRequest{
		LoanID:      99999,
		Amount:      100,
		PaymentMode: models.PaymentModeCash,
		PaymentDate: "2024-01-31",
	})
	s.ErrorIs(err, ErrLoanNotFound)
}

func (s *PaymentServiceTestSuite) TestSequentialPaymentsAccumulate() {
	first, err := s.pay(2000, s.start.AddDate(0, 0, 30))
	s.Require().NoError(err)
	second, err := s.pay(3000, s.start.AddDate(0, 0, 60))
	s.Require().NoError(err)

	loan, err := s.loans.GetByID(s.shopID, s.loanID)
	s.Require().NoError(err)

	s.Equal(first.InterestPaidPaise+second.InterestPaidPaise, loan.TotalInterestPaidPaise)
	s.Equal(first.PrincipalPaidPaise+second.PrincipalPaidPaise, loan.TotalPrincipalPaidPaise)
	s.Equal(second.OutstandingPrincipalAfterPaise, loan.OutstandingPrincipalPaise)

	payments, err := s.service.ListByLoan(s.shopID, s.loanID)
	s.Require().NoError(err)
	s.Len(payments, 2)
}

func (s *PaymentServiceTestSuite) TestListByDateWindow() {
	_, err := s.pay(1000, s.start.AddDate(0, 0, 10))
	s.Require().NoError(err)
	_, err = s.pay(1000, s.start.AddDate(0, 0, 40))
	s.Require().NoError(err)

	from := s.start.AddDate(0, 0, 20).Unix()
	windowed, err := s.service.List(s.shopID, from, 0)
	s.Require().NoError(err)
	s.Len(windowed, 1)

	all, err := s.service.List(s.shopID, 0, 0)
	s.Require().NoError(err)
	s.Len(all, 2)
}

func TestPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}
