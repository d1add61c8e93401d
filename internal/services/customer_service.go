package services

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"goldloan-backend/internal/models"
)

// CustomerService handles borrower records for a shop
type CustomerService struct {
	db    *sql.DB
	audit *AuditService
}

// NewCustomerService creates a new customer service
func NewCustomerService(db *sql.DB) *CustomerService {
	return &CustomerService{db: db, audit: NewAuditService(db)}
}

// Create registers a new customer under the shop
func (s *CustomerService) Create(shopID int64, req *models.CreateCustomerRequest) (*models.Customer, error) {
	now := time.Now().Unix()
	res, err := s.db.Exec(`
		INSERT INTO customers (shop_id, name, mobile, alternate_phone, address, city,
			pincode, id_proof_type, id_proof_number, photo, notes, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1, ?, ?)`,
		shopID, req.Name, req.Mobile, req.AlternatePhone, req.Address, req.City,
		req.Pincode, req.IDProofType, req.IDProofNumber, req.Photo, req.Notes, now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	s.audit.Record(shopID, models.AuditCustomerCreated, "customer", id, map[string]string{"name": req.Name})
	return s.GetByID(shopID, id)
}

// GetByID returns a customer scoped to the shop
func (s *CustomerService) GetByID(shopID, id int64) (*models.Customer, error) {
	row := s.db.QueryRow(customerSelect+` WHERE c.shop_id = ? AND c.id = ?`, shopID, id)
	return scanCustomer(row)
}

// List returns active customers for a shop, newest first
func (s *CustomerService) List(shopID int64) ([]models.Customer, error) {
	return s.queryCustomers(customerSelect+`
		WHERE c.shop_id = ? AND c.is_active = 1
		ORDER BY c.created_at DESC`, shopID)
}

// Search finds active customers by name or mobile prefix, capped at 50 rows
func (s *CustomerService) Search(shopID int64, query string) ([]models.Customer, error) {
	like := "%" + strings.TrimSpace(query) + "%"
	return s.queryCustomers(customerSelect+`
		WHERE c.shop_id = ? AND c.is_active = 1 AND (c.name LIKE ? OR c.mobile LIKE ?)
		ORDER BY c.name LIMIT 50`, shopID, like, like)
}

// Update applies a partial update to a customer
func (s *CustomerService) Update(shopID, id int64, req *models.UpdateCustomerRequest) (*models.Customer, error) {
	sets := []string{}
	args := []interface{}{}

	add := func(column string, v *string) {
		if v != nil {
			sets = append(sets, column+" = ?")
			args = append(args, *v)
		}
	}
	add("name", req.Name)
	add("mobile", req.Mobile)
	add("alternate_phone", req.AlternatePhone)
	add("address", req.Address)
	add("city", req.City)
	add("pincode", req.Pincode)
	add("id_proof_type", req.IDProofType)
	add("id_proof_number", req.IDProofNumber)
	add("photo", req.Photo)
	add("notes", req.Notes)

	if len(sets) == 0 {
		return nil, ErrNoFields
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now().Unix(), shopID, id)

	res, err := s.db.Exec(`UPDATE customers SET `+strings.Join(sets, ", ")+
		` WHERE shop_id = ? AND id = ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrCustomerNotFound
	}

	s.audit.Record(shopID, models.AuditCustomerUpdated, "customer", id, nil)
	return s.GetByID(shopID, id)
}

// Delete soft-deletes a customer. Customers with any loans, active or
// closed, are kept for the financial history and cannot be removed.
func (s *CustomerService) Delete(shopID, id int64) error {
	var loanCount int
	err := s.db.QueryRow(`SELECT COUNT(1) FROM loans WHERE shop_id = ? AND customer_id = ?`,
		shopID, id).Scan(&loanCount)
	if err != nil {
		return err
	}
	if loanCount > 0 {
		return ErrCustomerHasLoans
	}

	res, err := s.db.Exec(`UPDATE customers SET is_active = 0, updated_at = ? WHERE shop_id = ? AND id = ?`,
		time.Now().Unix(), shopID, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCustomerNotFound
	}

	s.audit.Record(shopID, models.AuditCustomerDeleted, "customer", id, nil)
	return nil
}

const customerSelect = `
	SELECT c.id, c.shop_id, c.name, c.mobile, c.alternate_phone, c.address, c.city,
	       c.pincode, c.id_proof_type, c.id_proof_number, c.photo, c.notes,
	       c.is_active, c.created_at, c.updated_at,
	       (SELECT COUNT(1) FROM loans l WHERE l.customer_id = c.id AND l.status = 'active') AS active_loans,
	       (SELECT COUNT(1) FROM loans l WHERE l.customer_id = c.id) AS total_loans
	FROM customers c`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCustomer(row rowScanner) (*models.Customer, error) {
	var c models.Customer
	err := row.Scan(&c.ID, &c.ShopID, &c.Name, &c.Mobile, &c.AlternatePhone, &c.Address,
		&c.City, &c.Pincode, &c.IDProofType, &c.IDProofNumber, &c.Photo, &c.Notes,
		&c.IsActive, &c.CreatedAt, &c.UpdatedAt, &c.ActiveLoans, &c.TotalLoans)
	if err == sql.ErrNoRows {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *CustomerService) queryCustomers(query string, args ...interface{}) ([]models.Customer, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []models.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, *c)
	}
	return customers, rows.Err()
}
