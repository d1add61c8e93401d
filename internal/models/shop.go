package models

// Shop represents a registered pawn shop. Each shop is an isolated tenant;
// every customer, loan and payment belongs to exactly one shop.
type Shop struct {
	ID            int64   `json:"id" db:"id"`
	Name          string  `json:"name" db:"name"`
	OwnerName     string  `json:"ownerName" db:"owner_name"`
	Email         string  `json:"email" db:"email"`
	PasswordHash  string  `json:"-" db:"password_hash"`
	Mobile        string  `json:"mobile" db:"mobile"`
	Address       *string `json:"address,omitempty" db:"address"`
	City          *string `json:"city,omitempty" db:"city"`
	State         *string `json:"state,omitempty" db:"state"`
	Pincode       *string `json:"pincode,omitempty" db:"pincode"`
	GSTNumber     *string `json:"gstNumber,omitempty" db:"gst_number"`
	LicenseNumber *string `json:"licenseNumber,omitempty" db:"license_number"`
	CreatedAt     int64   `json:"createdAt" db:"created_at"`
	UpdatedAt     int64   `json:"updatedAt" db:"updated_at"`
}

// RegisterRequest represents a shop registration request
type RegisterRequest struct {
	Name      string `json:"name" binding:"required"`
	OwnerName string `json:"ownerName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	Mobile    string `json:"mobile" binding:"required"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned on successful registration or login
type AuthResponse struct {
	Token string `json:"token"`
	Shop  *Shop  `json:"shop"`
}

// ChangePasswordRequest represents a password change request
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// UpdateShopRequest represents a partial shop profile update.
// Nil fields are left untouched.
type UpdateShopRequest struct {
	Name          *string `json:"name"`
	OwnerName     *string `json:"ownerName"`
	Mobile        *string `json:"mobile"`
	Address       *string `json:"address"`
	City          *string `json:"city"`
	State         *string `json:"state"`
	Pincode       *string `json:"pincode"`
	GSTNumber     *string `json:"gstNumber"`
	LicenseNumber *string `json:"licenseNumber"`
}
