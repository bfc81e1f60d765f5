package ports

import (
	"context"

	"evashoes/internal/core/domain/model/ledger"
)

type LedgerRepository interface {
	Add(ctx context.Context, record *ledger.FinancialRecord) error
}
