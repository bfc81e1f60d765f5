package api

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Order statuses as they travel on the wire.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// Error is the body of every non-2xx response.
type Error struct {
	Message string `json:"message"`
}

type ShippingAddress struct {
	FullName string `json:"fullName" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Address  string `json:"address" validate:"required"`
	City     string `json:"city,omitempty"`
	District string `json:"district,omitempty"`
	Ward     string `json:"ward,omitempty"`
}

// NewOrderItem is one line of a checkout or of a cart add request.
type NewOrderItem struct {
	ProductID openapi_types.UUID `json:"productId" validate:"required"`
	Quantity  int                `json:"quantity" validate:"required,min=1,max=1000"`
	Price     float64            `json:"price" validate:"gte=0"`
	Color     string             `json:"color,omitempty"`
	Size      *int               `json:"size,omitempty" validate:"omitempty,min=1"`
}

type NewOrder struct {
	Items           []NewOrderItem  `json:"items" validate:"required,min=1,dive"`
	TotalPrice      float64         `json:"totalPrice" validate:"gte=0"`
	PaymentMethod   *string         `json:"paymentMethod,omitempty" validate:"omitempty,oneof=COD card banking"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	Notes           string          `json:"notes,omitempty"`
	CodeOrder       string          `json:"codeOrder,omitempty"`
}

type OrderItem struct {
	ProductID   openapi_types.UUID `json:"productId"`
	ProductName string             `json:"productName"`
	ImageURL    string             `json:"imageUrl"`
	Quantity    int                `json:"quantity"`
	Price       float64            `json:"price"`
	Color       string             `json:"color"`
	Size        *int               `json:"size,omitempty"`
}

// Order is returned with Items for single-order reads and without them in lists.
type Order struct {
	ID              openapi_types.UUID `json:"id"`
	UserID          openapi_types.UUID `json:"userId"`
	Items           []OrderItem        `json:"items,omitempty"`
	TotalPrice      float64            `json:"totalPrice"`
	Status          string             `json:"status"`
	PaymentMethod   string             `json:"paymentMethod"`
	PaymentStatus   string             `json:"paymentStatus"`
	ShippingAddress ShippingAddress    `json:"shippingAddress"`
	Notes           string             `json:"notes"`
	CodeOrder       string             `json:"codeOrder"`
	CancelAt        *time.Time         `json:"cancelAt,omitempty"`
	CancelReason    *string            `json:"cancelReason,omitempty"`
	DeliveredAt     *time.Time         `json:"deliveredAt,omitempty"`
	CreatedAt       time.Time          `json:"createdAt"`
}

type OrderPage struct {
	Orders     []Order `json:"orders"`
	Total      int64   `json:"total"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
	TotalPages int     `json:"totalPages"`
}

// UpdateOrder is the generic order update. Absent fields are left unchanged.
type UpdateOrder struct {
	Notes           *string          `json:"notes,omitempty"`
	ShippingAddress *ShippingAddress `json:"shippingAddress,omitempty"`
	PaymentMethod   *string          `json:"paymentMethod,omitempty" validate:"omitempty,oneof=COD card banking"`
	CodeOrder       *string          `json:"codeOrder,omitempty"`
}

type UpdateOrderStatus struct {
	Status       string  `json:"status" validate:"required,oneof=pending confirmed shipped delivered cancelled"`
	CancelReason *string `json:"cancelReason,omitempty"`
}

type CartLine struct {
	ProductID   openapi_types.UUID `json:"productId"`
	ProductName string             `json:"productName"`
	ImageURL    string             `json:"imageUrl"`
	Color       string             `json:"color"`
	Size        *int               `json:"size,omitempty"`
	Quantity    int                `json:"quantity"`
	Price       float64            `json:"price"`
}

type Cart struct {
	Items      []CartLine `json:"items"`
	TotalPrice float64    `json:"totalPrice"`
}

// AddToCart mirrors the storefront payload. TotalPrice is accepted but the cart total
// is always recomputed from the stored lines.
type AddToCart struct {
	Items      []NewOrderItem `json:"items" validate:"required,min=1,dive"`
	TotalPrice *float64       `json:"totalPrice,omitempty"`
}

type RemoveFromCart struct {
	ProductID openapi_types.UUID `json:"productId" validate:"required"`
}

type SizeStock struct {
	Size  int `json:"size" validate:"min=1"`
	Stock int `json:"stock" validate:"gte=0"`
}

type Product struct {
	ID          openapi_types.UUID `json:"id"`
	Name        string             `json:"name"`
	Price       float64            `json:"price"`
	SellPrice   *float64           `json:"sellPrice,omitempty"`
	Description string             `json:"description"`
	Details     string             `json:"details"`
	ImageURLs   []string           `json:"imageUrls"`
	Sizes       []SizeStock        `json:"sizes"`
	Sold        int                `json:"sold"`
	IsSale      bool               `json:"isSale"`
	CreatedAt   time.Time          `json:"createdAt"`
}

type NewProduct struct {
	Name        string      `json:"name" validate:"required"`
	Price       float64     `json:"price" validate:"gte=0"`
	SellPrice   *float64    `json:"sellPrice,omitempty" validate:"omitempty,gte=0"`
	Description string      `json:"description,omitempty"`
	Details     string      `json:"details,omitempty"`
	ImageURLs   []string    `json:"imageUrls,omitempty"`
	Sizes       []SizeStock `json:"sizes,omitempty" validate:"dive"`
	IsSale      bool        `json:"isSale,omitempty"`
}

type FinancialRecord struct {
	ID          openapi_types.UUID `json:"id"`
	OrderID     openapi_types.UUID `json:"orderId"`
	CodeOrder   string             `json:"codeOrder"`
	TotalAmount float64            `json:"totalAmount"`
	Cost        float64            `json:"cost"`
	Date        time.Time          `json:"date"`
}

type AdminStats struct {
	TotalProducts   int64   `json:"totalProducts"`
	TotalCustomers  int64   `json:"totalCustomers"`
	DeliveredOrders int64   `json:"deliveredOrders"`
	PendingOrders   int64   `json:"pendingOrders"`
	Revenue         float64 `json:"revenue"`
}

// ListOrdersParams defines parameters for ListOrders.
type ListOrdersParams struct {
	Page   *int    `form:"page,omitempty" json:"page,omitempty"`
	Limit  *int    `form:"limit,omitempty" json:"limit,omitempty"`
	Status *string `form:"status,omitempty" json:"status,omitempty"`
}

// ListProductsParams defines parameters for ListProducts.
type ListProductsParams struct {
	Name *string `form:"name,omitempty" json:"name,omitempty"`
}
