package models

// Customer represents a borrower registered under a shop.
// Customers are soft-deleted: IsActive turns false, the rows stay.
type Customer struct {
	ID             int64   `json:"id" db:"id"`
	ShopID         int64   `json:"shopId" db:"shop_id"`
	Name           string  `json:"name" db:"name"`
	Mobile         string  `json:"mobile" db:"mobile"`
	AlternatePhone *string `json:"alternatePhone,omitempty" db:"alternate_phone"`
	Address        *string `json:"address,omitempty" db:"address"`
	City           *string `json:"city,omitempty" db:"city"`
	Pincode        *string `json:"pincode,omitempty" db:"pincode"`
	IDProofType    *string `json:"idProofType,omitempty" db:"id_proof_type"`
	IDProofNumber  *string `json:"idProofNumber,omitempty" db:"id_proof_number"`
	Photo          *string `json:"photo,omitempty" db:"photo"`
	Notes          *string `json:"notes,omitempty" db:"notes"`
	IsActive       bool    `json:"isActive" db:"is_active"`
	CreatedAt      int64   `json:"createdAt" db:"created_at"`
	UpdatedAt      int64   `json:"updatedAt" db:"updated_at"`

	// Derived counts for list views
	ActiveLoans int `json:"activeLoans,omitempty"`
	TotalLoans  int `json:"totalLoans,omitempty"`
}

// CreateCustomerRequest represents a customer creation request
type CreateCustomerRequest struct {
	Name           string  `json:"name" binding:"required"`
	Mobile         string  `json:"mobile" binding:"required"`
	AlternatePhone *string `json:"alternatePhone"`
	Address        *string `json:"address"`
	City           *string `json:"city"`
	Pincode        *string `json:"pincode"`
	IDProofType    *string `json:"idProofType"`
	IDProofNumber  *string `json:"idProofNumber"`
	Photo          *string `json:"photo"`
	Notes          *string `json:"notes"`
}

// UpdateCustomerRequest represents a partial customer update.
// Nil fields are left untouched.
type UpdateCustomerRequest struct {
	Name           *string `json:"name"`
	Mobile         *string `json:"mobile"`
	AlternatePhone *string `json:"alternatePhone"`
	Address        *string `json:"address"`
	City           *string `json:"city"`
	Pincode        *string `json:"pincode"`
	IDProofType    *string `json:"idProofType"`
	IDProofNumber  *string `json:"idProofNumber"`
	Photo          *string `json:"photo"`
	Notes          *string `json:"notes"`
}
