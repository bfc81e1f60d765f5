package ledger

import (
	"errors"
	"time"

	"evashoes/internal/core/domain/model/kernel"
)

var ErrFinancialRecordIsNotConstructed = errors.New(
	"FinancialRecord must be created via NewFinancialRecord constructor",
)

// FinancialRecord is one ledger entry of a delivered order.
type FinancialRecord struct {
	id          kernel.UUID
	orderID     kernel.UUID
	totalAmount kernel.Money
	cost        kernel.Money
	date        time.Time

	isConstructed bool
}

func NewFinancialRecord(
	id kernel.UUID,
	orderID kernel.UUID,
	totalAmount kernel.Money,
	cost kernel.Money,
	date time.Time,
) (*FinancialRecord, error) {
	if err := errors.Join(id.Validate(), orderID.Validate()); err != nil {
		return nil, err
	}

	return &FinancialRecord{
		id:            id,
		orderID:       orderID,
		totalAmount:   totalAmount,
		cost:          cost,
		date:          date,
		isConstructed: true,
	}, nil
}

func (r *FinancialRecord) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrFinancialRecordIsNotConstructed
	}
	return nil
}

func (r *FinancialRecord) ID() kernel.UUID { return r.id }

func (r *FinancialRecord) OrderID() kernel.UUID { return r.orderID }

func (r *FinancialRecord) TotalAmount() kernel.Money { return r.totalAmount }

func (r *FinancialRecord) Cost() kernel.Money { return r.cost }

func (r *FinancialRecord) Date() time.Time { return r.date }
