package queries

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)

	return db, mock
}

var orderSummaryHeader = []string{
	"id", "user_id", "total_price", "status", "payment_method", "payment_status",
	"ship_full_name", "ship_phone", "ship_address", "ship_city", "ship_district", "ship_ward",
	"notes", "code_order", "cancel_at", "cancel_reason", "delivered_at", "created_at",
}
