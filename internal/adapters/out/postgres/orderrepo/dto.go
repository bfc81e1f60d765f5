// Package orderrepo persists order aggregates: the order header in "orders" and its
// line items in "order_items". Enumerations are stored by their wire names so the
// read side can return them without mapping.
package orderrepo

import (
	"database/sql"
	"time"

	"evashoes/internal/core/domain/model/kernel"
	"evashoes/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the "orders" row.
type OrderDTO struct {
	ID              uuid.UUID          `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID          `gorm:"type:uuid;index;not null"`
	TotalPrice      decimal.Decimal    `gorm:"type:numeric(12,2);not null"`
	Status          string             `gorm:"type:varchar(16);index;not null"`
	PaymentMethod   string             `gorm:"type:varchar(16);not null"`
	PaymentStatus   string             `gorm:"type:varchar(16);not null"`
	ShippingAddress ShippingAddressDTO `gorm:"embedded;embeddedPrefix:ship_"`
	Notes           string             `gorm:"not null;default:''"`
	CodeOrder       string             `gorm:"index;not null;default:''"`
	CancelAt        *time.Time
	CancelReason    sql.NullString
	DeliveredAt     *time.Time
	CreatedAt       time.Time      `gorm:"index;not null"`
	UpdatedAt       time.Time      `gorm:"not null"`
	Items           []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// ShippingAddressDTO is embedded into the order row with the "ship_" prefix.
type ShippingAddressDTO struct {
	FullName string `gorm:"not null"`
	Phone    string `gorm:"not null"`
	Address  string `gorm:"not null"`
	City     string `gorm:"not null;default:''"`
	District string `gorm:"not null;default:''"`
	Ward     string `gorm:"not null;default:''"`
}

// OrderItemDTO is the "order_items" row. Position keeps the checkout order of lines.
type OrderItemDTO struct {
	ID        uint            `gorm:"primaryKey"`
	OrderID   uuid.UUID       `gorm:"type:uuid;index;not null"`
	Position  int             `gorm:"not null"`
	ProductID uuid.UUID       `gorm:"type:uuid;index;not null"`
	Quantity  int             `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Color     string          `gorm:"not null;default:''"`
	Size      sql.NullInt32
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain maps the aggregate to its rows. Items get no surrogate ids so Create
// inserts them alongside the order.
func fromDomain(aggregate *order.Order) OrderDTO {
	address := aggregate.ShippingAddress()

	var cancelReason sql.NullString
	if reason := aggregate.CancelReason(); reason != nil {
		cancelReason = sql.NullString{String: *reason, Valid: true}
	}

	items := aggregate.Items()
	itemDTOs := make([]OrderItemDTO, 0, len(items))
	for i, item := range items {
		var size sql.NullInt32
		if s, ok := item.Size(); ok {
			size = sql.NullInt32{Int32: int32(s), Valid: true} //nolint:gosec // sizes are small positive numbers
		}
		itemDTOs = append(itemDTOs, OrderItemDTO{
			OrderID:   aggregate.ID().Bytes(),
			Position:  i,
			ProductID: item.ProductID().Bytes(),
			Quantity:  item.Quantity(),
			Price:     item.Price().Decimal(),
			Color:     item.Color(),
			Size:      size,
		})
	}

	return OrderDTO{
		ID:            aggregate.ID().Bytes(),
		UserID:        aggregate.UserID().Bytes(),
		TotalPrice:    aggregate.TotalPrice().Decimal(),
		Status:        aggregate.Status().String(),
		PaymentMethod: aggregate.PaymentMethod().String(),
		PaymentStatus: aggregate.PaymentStatus().String(),
		ShippingAddress: ShippingAddressDTO{
			FullName: address.FullName,
			Phone:    address.Phone,
			Address:  address.Address,
			City:     address.City,
			District: address.District,
			Ward:     address.Ward,
		},
		Notes:        aggregate.Notes(),
		CodeOrder:    aggregate.CodeOrder(),
		CancelAt:     aggregate.CancelAt(),
		CancelReason: cancelReason,
		DeliveredAt:  aggregate.DeliveredAt(),
		CreatedAt:    aggregate.CreatedAt(),
		Items:        itemDTOs,
	}
}

// toDomain rebuilds the aggregate with RestoreOrder. Items must be sorted by Position.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}
	totalPrice, err := kernel.NewMoney(dto.TotalPrice)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	paymentMethod, err := order.ParsePaymentMethod(dto.PaymentMethod)
	if err != nil {
		return nil, err
	}
	paymentStatus, err := order.ParsePaymentStatus(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	var cancelReason *string
	if dto.CancelReason.Valid {
		reason := dto.CancelReason.String
		cancelReason = &reason
	}

	return order.RestoreOrder(order.State{
		ID:            id,
		UserID:        userID,
		Items:         items,
		TotalPrice:    totalPrice,
		Status:        status,
		PaymentMethod: paymentMethod,
		PaymentStatus: paymentStatus,
		ShippingAddress: order.ShippingAddress{
			FullName: dto.ShippingAddress.FullName,
			Phone:    dto.ShippingAddress.Phone,
			Address:  dto.ShippingAddress.Address,
			City:     dto.ShippingAddress.City,
			District: dto.ShippingAddress.District,
			Ward:     dto.ShippingAddress.Ward,
		},
		Notes:        dto.Notes,
		CodeOrder:    dto.CodeOrder,
		CancelAt:     dto.CancelAt,
		CancelReason: cancelReason,
		DeliveredAt:  dto.DeliveredAt,
		CreatedAt:    dto.CreatedAt,
	})
}

func itemToDomain(dto OrderItemDTO) (order.LineItem, error) {
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return order.LineItem{}, err
	}
	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return order.LineItem{}, err
	}

	var size *int
	if dto.Size.Valid {
		s := int(dto.Size.Int32)
		size = &s
	}
	return order.NewLineItem(productID, dto.Quantity, price, dto.Color, size)
}
