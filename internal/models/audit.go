package models

// Audit actions recorded by the services
const (
	AuditLoanCreated     = "loan_created"
	AuditLoanClosed      = "loan_closed"
	AuditPaymentRecorded = "payment_recorded"
	AuditCustomerCreated = "customer_created"
	AuditCustomerUpdated = "customer_updated"
	AuditCustomerDeleted = "customer_deleted"
	AuditShopUpdated     = "shop_updated"
)

// AuditLog is an append-only record of a state-changing action in a shop
type AuditLog struct {
	ID         int64   `json:"id" db:"id"`
	ShopID     int64   `json:"shopId" db:"shop_id"`
	Action     string  `json:"action" db:"action"`
	EntityType string  `json:"entityType" db:"entity_type"`
	EntityID   int64   `json:"entityId" db:"entity_id"`
	Details    *string `json:"details,omitempty" db:"details"`
	CreatedAt  int64   `json:"createdAt" db:"created_at"`
}
