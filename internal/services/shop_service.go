package services

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"goldloan-backend/internal/models"
)

// ShopService handles shop registration, login and profile management
type ShopService struct {
	db    *sql.DB
	audit *AuditService
}

// NewShopService creates a new shop service
func NewShopService(db *sql.DB) *ShopService {
	return &ShopService{db: db, audit: NewAuditService(db)}
}

// Register creates a new shop account with a bcrypt-hashed password
func (s *ShopService) Register(req *models.RegisterRequest) (*models.Shop, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var exists int
	if err := s.db.QueryRow(`SELECT COUNT(1) FROM shops WHERE email = ?`, email).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().Unix()
	res, err := s.db.Exec(`
		INSERT INTO shops (name, owner_name, email, password_hash, mobile, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		req.Name, req.OwnerName, email, string(hash), req.Mobile, now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create shop: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

// Login verifies credentials and returns the shop
func (s *ShopService) Login(req *models.LoginRequest) (*models.Shop, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	shop, err := s.getByEmail(email)
	if err != nil {
		if err == ErrShopNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(shop.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return shop, nil
}

// GetByID returns a shop by its ID
func (s *ShopService) GetByID(id int64) (*models.Shop, error) {
	return s.scanShop(s.db.QueryRow(shopSelect+` WHERE id = ?`, id))
}

func (s *ShopService) getByEmail(email string) (*models.Shop, error) {
	return s.scanShop(s.db.QueryRow(shopSelect+` WHERE email = ?`, email))
}

// Update applies a partial profile update. Only the allow-listed fields in
// the request can change; email and password have dedicated flows.
func (s *ShopService) Update(shopID int64, req *models.UpdateShopRequest) (*models.Shop, error) {
	sets := []string{}
	args := []interface{}{}

	add := func(column string, v *string) {
		if v != nil {
			sets = append(sets, column+" = ?")
			args = append(args, *v)
		}
	}
	add("name", req.Name)
	add("owner_name", req.OwnerName)
	add("mobile", req.Mobile)
	add("address", req.Address)
	add("city", req.City)
	add("state", req.State)
	add("pincode", req.Pincode)
	add("gst_number", req.GSTNumber)
	add("license_number", req.LicenseNumber)

	if len(sets) == 0 {
		return nil, ErrNoFields
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now().Unix(), shopID)

	res, err := s.db.Exec(`UPDATE shops SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update shop: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrShopNotFound
	}

	s.audit.Record(shopID, models.AuditShopUpdated, "shop", shopID, nil)
	return s.GetByID(shopID)
}

// ChangePassword verifies the current password and stores a new hash
func (s *ShopService) ChangePassword(shopID int64, req *models.ChangePasswordRequest) error {
	shop, err := s.GetByID(shopID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(shop.PasswordHash), []byte(req.CurrentPassword)) != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	_, err = s.db.Exec(`UPDATE shops SET password_hash = ?, updated_at = ? WHERE id = ?`,
		string(hash), time.Now().Unix(), shopID)
	return err
}

const shopSelect = `
	SELECT id, name, owner_name, email, password_hash, mobile, address, city,
	       state, pincode, gst_number, license_number, created_at, updated_at
	FROM shops`

func (s *ShopService) scanShop(row *sql.Row) (*models.Shop, error) {
	var shop models.Shop
	err := row.Scan(&shop.ID, &shop.Name, &shop.OwnerName, &shop.Email, &shop.PasswordHash,
		&shop.Mobile, &shop.Address, &shop.City, &shop.State, &shop.Pincode,
		&shop.GSTNumber, &shop.LicenseNumber, &shop.CreatedAt, &shop.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrShopNotFound
	}
	if err != nil {
		return nil, err
	}
	return &shop, nil
}
