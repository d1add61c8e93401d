package services

import (
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"goldloan-backend/database"
	"goldloan-backend/internal/models"
)

// newTestDB opens a uniquely named in-memory database with the full schema.
// The shared cache keeps all pooled connections on the same database.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())

	db, err := database.Initialize(dsn)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() { db.Close() })
	return db
}

func registerTestShop(t *testing.T, db *sql.DB) *models.Shop {
	t.Helper()

	shop, err := NewShopService(db).Register(&models.RegisterRequest{
		Name:      "Lakshmi Jewellers",
		OwnerName: "Ravi Kumar",
		Email:     "ravi@example.com",
		Password:  "s3cret-pass",
		Mobile:    "9876543210",
	})
	require.NoError(t, err)
	return shop
}

func createTestCustomer(t *testing.T, db *sql.DB, shopID int64) *models.Customer {
	t.Helper()

	customer, err := NewCustomerService(db).Create(shopID, &models.CreateCustomerRequest{
		Name:   "Sita Devi",
		Mobile: "9123456780",
	})
	require.NoError(t, err)
	return customer
}
