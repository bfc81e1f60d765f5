package services

import (
	"errors"
	"time"

	"evashoes/internal/core/domain/model/kernel"
	"evashoes/internal/core/domain/model/ledger"
	"evashoes/internal/core/domain/model/order"
	"evashoes/internal/pkg/errs"
)

// ErrOrderIsNotDelivered is returned when a plan is requested for an order that has not
// been moved to Delivered.
var ErrOrderIsNotDelivered = errs.NewConflictError("order", "fulfillment is planned only for delivered orders")

// InventoryAdjustment is the counter change of one line item: stock of (ProductID, Size)
// goes down by Quantity and the product's sold counter goes up by Quantity. Lines without
// a size only bump sold.
type InventoryAdjustment struct {
	ProductID kernel.UUID
	Size      int
	HasSize   bool
	Quantity  int
}

// Fulfillment is everything a delivery writes besides the order itself.
type Fulfillment struct {
	Adjustments []InventoryAdjustment
	Records     []*ledger.FinancialRecord
}

// FulfillmentPlanner turns a delivered order into inventory adjustments and ledger
// records according to the configured ledger mode.
//
// Example:
//
//	change, err := o.ChangeStatus(order.Delivered, nil, now)
//	...
//	plan, err := services.FulfillmentPlanner{}.Plan(o, ledger.PerOrder, now)
//	for _, adj := range plan.Adjustments {
//	    err = productRepo.ConsumeStock(ctx, adj.ProductID, adj.Size, adj.Quantity)
//	}
type FulfillmentPlanner struct{}

// Plan returns one adjustment per line item in line order and the ledger records of
// mode. Record dates are now.
func (FulfillmentPlanner) Plan(o *order.Order, mode ledger.Mode, now time.Time) (Fulfillment, error) {
	if err := o.Validate(); err != nil {
		return Fulfillment{}, err
	}
	if err := mode.Validate(); err != nil {
		return Fulfillment{}, err
	}
	if o.Status() != order.Delivered {
		return Fulfillment{}, ErrOrderIsNotDelivered
	}

	items := o.Items()
	plan := Fulfillment{
		Adjustments: make([]InventoryAdjustment, 0, len(items)),
	}
	for _, item := range items {
		size, hasSize := item.Size()
		plan.Adjustments = append(plan.Adjustments, InventoryAdjustment{
			ProductID: item.ProductID(),
			Size:      size,
			HasSize:   hasSize,
			Quantity:  item.Quantity(),
		})
	}

	records, err := planRecords(o, items, mode, now)
	if err != nil {
		return Fulfillment{}, err
	}
	plan.Records = records
	return plan, nil
}

func planRecords(o *order.Order, items []order.LineItem, mode ledger.Mode, now time.Time) ([]*ledger.FinancialRecord, error) {
	switch mode {
	case ledger.PerLineItem:
		records := make([]*ledger.FinancialRecord, 0, len(items))
		running := kernel.Zero()
		for _, item := range items {
			running = running.Add(item.Subtotal())
			record, err := ledger.NewFinancialRecord(kernel.NewUUID(), o.ID(), o.TotalPrice(), running, now)
			if err != nil {
				return nil, err
			}
			records = append(records, record)
		}
		return records, nil
	case ledger.PerOrder:
		record, err := ledger.NewFinancialRecord(kernel.NewUUID(), o.ID(), o.TotalPrice(), o.ItemsSubtotal(), now)
		if err != nil {
			return nil, err
		}
		return []*ledger.FinancialRecord{record}, nil
	case ledger.UnknownMode:
	}
	return nil, errors.New("unreachable: ledger mode was validated")
}
