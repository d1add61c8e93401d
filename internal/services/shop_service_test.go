package services

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"goldloan-backend/internal/models"
)

type ShopServiceTestSuite struct {
	suite.Suite
	service *ShopService
}

func (s *ShopServiceTestSuite) SetupTest() {
	s.service = NewShopService(newTestDB(s.T()))
}

func (s *ShopServiceTestSuite) register() *models.Shop {
	shop, err := s.service.Register(&models.RegisterRequest{
		Name:      "Lakshmi Jewellers",
		OwnerName: "Ravi Kumar",
		Email:     "Ravi@Example.com",
		Password:  "s3cret-pass",
		Mobile:    "9876543210",
	})
	s.Require().NoError(err)
	return shop
}

func (s *ShopServiceTestSuite) TestRegisterNormalizesEmail() {
	shop := s.register()
	s.Equal("ravi@example.com", shop.Email)
	s.NotEmpty(shop.PasswordHash)
	s.NotEqual("s3cret-pass", shop.PasswordHash)
}

func (s *ShopServiceTestSuite) TestRegisterDuplicateEmail() {
	s.register()
	_, err := s.service.Register(&models.RegisterRequest{
		Name:      "Other Shop",
		OwnerName: "Someone",
		Email:     "ravi@example.com",
		Password:  "another-pass",
		Mobile:    "9876543211",
	})
	s.ErrorIs(err, ErrEmailTaken)
}

func (s *ShopServiceTestSuite) TestLogin() {
	s.register()

	shop, err := s.service.Login(&models.LoginRequest{Email: "ravi@example.com", Password: "s3cret-pass"})
	s.Require().NoError(err)
	s.Equal("Lakshmi Jewellers", shop.Name)

	_, err = s.service.Login(&models.LoginRequest{Email: "ravi@example.com", Password: "wrong"})
	s.ErrorIs(err, ErrInvalidCredentials)

	_, err = s.service.Login(&models.LoginRequest{Email: "nobody@example.com", Password: "s3cret-pass"})
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ShopServiceTestSuite) TestUpdateProfile() {
	shop := s.register()

	city := "Chennai"
	gst := "33AAAAA0000A1Z5"
	updated, err := s.service.Update(shop.ID, &models.UpdateShopRequest{City: &city, GSTNumber: &gst})
	s.Require().NoError(err)
	s.Equal("Chennai", *updated.City)
	s.Equal(gst, *updated.GSTNumber)
	s.Equal(shop.Email, updated.Email, "email is not part of the profile update")

	_, err = s.service.Update(shop.ID, &models.UpdateShopRequest{})
	s.ErrorIs(err, ErrNoFields)
}

func (s *ShopServiceTestSuite) TestChangePassword() {
	shop := s.register()

	err := s.service.ChangePassword(shop.ID, &models.ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "new-pass-123",
	})
	s.ErrorIs(err, ErrInvalidCredentials)

	err = s.service.ChangePassword(shop.ID, &models.ChangePasswordRequest{
		CurrentPassword: "s3cret-pass",
		NewPassword:     "new-pass-123",
	})
	s.Require().NoError(err)

	_, err = s.service.Login(&models.LoginRequest{Email: "ravi@example.com", Password: "new-pass-123"})
	s.NoError(err)
}

func TestShopServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ShopServiceTestSuite))
}
