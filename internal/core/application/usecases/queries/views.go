package queries

import (
	"database/sql"
	"time"

	"evashoes/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShippingAddressView is the delivery address of an order.
type ShippingAddressView struct {
	FullName string
	Phone    string
	Address  string
	City     string
	District string
	Ward     string
}

// OrderSummary is an order without its line items.
type OrderSummary struct {
	ID              kernel.UUID
	UserID          kernel.UUID
	TotalPrice      kernel.Money
	Status          string
	PaymentMethod   string
	PaymentStatus   string
	ShippingAddress ShippingAddressView
	Notes           string
	CodeOrder       string
	CancelAt        *time.Time
	CancelReason    *string
	DeliveredAt     *time.Time
	CreatedAt       time.Time
}

// OrderItemView is a line item populated with the product's name and first image.
// ProductName is empty when the product was removed from the catalog.
type OrderItemView struct {
	ProductID   kernel.UUID
	ProductName string
	ImageURL    string
	Quantity    int
	Price       kernel.Money
	Color       string
	Size        *int
}

// OrderView is an order with populated line items.
type OrderView struct {
	OrderSummary
	Items []OrderItemView
}

const orderSummaryColumns = `
	o.id,
	o.user_id,
	o.total_price,
	o.status,
	o.payment_method,
	o.payment_status,
	o.ship_full_name,
	o.ship_phone,
	o.ship_address,
	o.ship_city,
	o.ship_district,
	o.ship_ward,
	o.notes,
	o.code_order,
	o.cancel_at,
	o.cancel_reason,
	o.delivered_at,
	o.created_at`

func scanOrderSummary(rows *sql.Rows) (OrderSummary, error) {
	var (
		s            OrderSummary
		id, userID   uuid.UUID
		total        decimal.Decimal
		cancelReason sql.NullString
	)

	err := rows.Scan(
		&id,
		&userID,
		&total,
		&s.Status,
		&s.PaymentMethod,
		&s.PaymentStatus,
		&s.ShippingAddress.FullName,
		&s.ShippingAddress.Phone,
		&s.ShippingAddress.Address,
		&s.ShippingAddress.City,
		&s.ShippingAddress.District,
		&s.ShippingAddress.Ward,
		&s.Notes,
		&s.CodeOrder,
		&s.CancelAt,
		&cancelReason,
		&s.DeliveredAt,
		&s.CreatedAt,
	)
	if err != nil {
		return OrderSummary{}, err
	}

	if s.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return OrderSummary{}, err
	}
	if s.UserID, err = kernel.UUIDFromBytes(userID[:]); err != nil {
		return OrderSummary{}, err
	}
	if s.TotalPrice, err = kernel.NewMoney(total); err != nil {
		return OrderSummary{}, err
	}
	if cancelReason.Valid {
		s.CancelReason = &cancelReason.String
	}
	return s, nil
}

func collectOrderSummaries(rows *sql.Rows) ([]OrderSummary, error) {
	defer rows.Close()

	orders := make([]OrderSummary, 0)
	for rows.Next() {
		s, err := scanOrderSummary(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

// likePattern wraps s for a substring ILIKE match, escaping the LIKE wildcards.
func likePattern(s string) string {
	escaped := make([]rune, 0, len(s)+2)
	escaped = append(escaped, '%')
	for _, r := range s {
		if r == '%' || r == '_' || r == '\\' {
			escaped = append(escaped, '\\')
		}
		escaped = append(escaped, r)
	}
	return string(append(escaped, '%'))
}
