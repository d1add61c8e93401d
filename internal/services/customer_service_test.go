package services

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"goldloan-backend/internal/models"
)

type CustomerServiceTestSuite struct {
	suite.Suite
	db      *sql.DB
	service *CustomerService
	shopID  int64
}

func (s *CustomerServiceTestSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.service = NewCustomerService(s.db)
	s.shopID = registerTestShop(s.T(), s.db).ID
}

func (s *CustomerServiceTestSuite) TestCreateAndGet() {
	created := createTestCustomer(s.T(), s.db, s.shopID)
	s.True(created.IsActive)

	got, err := s.service.GetByID(s.shopID, created.ID)
	s.Require().NoError(err)
	s.Equal("Sita Devi", got.Name)
	s.Equal(0, got.ActiveLoans)
}

func (s *CustomerServiceTestSuite) TestShopScoping() {
	created := createTestCustomer(s.T(), s.db, s.shopID)

	other, err := NewShopService(s.db).Register(&models.RegisterRequest{
		Name:      "Other Shop",
		OwnerName: "Other Owner",
		Email:     "other@example.com",
		Password:  "other-pass-1",
		Mobile:    "9876543219",
	})
	s.Require().NoError(err)

	_, err = s.service.GetByID(other.ID, created.ID)
	s.ErrorIs(err, ErrCustomerNotFound, "customers are invisible across shops")
}

func (s *CustomerServiceTestSuite) TestSearch() {
	createTestCustomer(s.T(), s.db, s.shopID)

	byName, err := s.service.Search(s.shopID, "sita")
	s.Require().NoError(err)
	s.Len(byName, 1)

	byMobile, err := s.service.Search(s.shopID, "912345")
	s.Require().NoError(err)
	s.Len(byMobile, 1)

	none, err := s.service.Search(s.shopID, "nonexistent")
	s.Require().NoError(err)
	s.Empty(none)
}

func (s *CustomerServiceTestSuite) TestUpdate() {
	created := createTestCustomer(s.T(), s.db, s.shopID)

	city := "Madurai"
	updated, err := s.service.Update(s.shopID, created.ID, &models.UpdateCustomerRequest{City: &city})
	s.Require().NoError(err)
	s.Equal("Madurai", *updated.City)
	s.Equal(created.Name, updated.Name)

	_, err = s.service.Update(s.shopID, created.ID, &models.UpdateCustomerRequest{})
	s.ErrorIs(err, ErrNoFields)
}

func (s *CustomerServiceTestSuite) TestDeleteIsSoft() {
	created := createTestCustomer(s.T(), s.db, s.shopID)

	s.Require().NoError(s.service.Delete(s.shopID, created.ID))

	// The row stays, only is_active flips
	got, err := s.service.GetByID(s.shopID, created.ID)
	s.Require().NoError(err)
	s.False(got.IsActive)

	list, err := s.service.List(s.shopID)
	s.Require().NoError(err)
	s.Empty(list)
}

func (s *CustomerServiceTestSuite) TestDeleteRefusedWithLoans() {
	created := createTestCustomer(s.T(), s.db, s.shopID)

	_, err := NewLoanService(s.db).Create(s.shopID, &models.CreateLoanRequest{
		CustomerID:          created.ID,
		OrnamentType:        "chain",
		GrossWeightGrams:    10,
		Purity:              "22K",
		GoldRatePerGram:     6000,
		PrincipalAmount:     10000,
		InterestRatePercent: 2,
		TenureMonths:        12,
		StartDate:           time.Now().UTC().Format("2006-01-02"),
	})
	s.Require().NoError(err)

	s.ErrorIs(s.service.Delete(s.shopID, created.ID), ErrCustomerHasLoans)
}

func TestCustomerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CustomerServiceTestSuite))
}
