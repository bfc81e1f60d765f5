package postgres

import (
	"fmt"

	"evashoes/internal/adapters/out/postgres/cartrepo"
	"evashoes/internal/adapters/out/postgres/ledgerrepo"
	"evashoes/internal/adapters/out/postgres/orderrepo"
	"evashoes/internal/adapters/out/postgres/outboxrepo"
	"evashoes/internal/adapters/out/postgres/productrepo"

	"gorm.io/gorm"
)

// Models lists every persisted row type in dependency order.
func Models() []any {
	return []any{
		&productrepo.ProductDTO{},
		&productrepo.ProductSizeDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&ledgerrepo.FinancialRecordDTO{},
		&cartrepo.CartLineDTO{},
		&outboxrepo.OutboxMessageDTO{},
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}
