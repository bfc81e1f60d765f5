package http

import (
	"math"

	"evashoes/internal/adapters/in/http/api"
	"evashoes/internal/core/application/usecases/queries"
	"evashoes/internal/core/domain/model/cart"
	"evashoes/internal/core/domain/model/kernel"
	"evashoes/internal/core/domain/model/order"
	"evashoes/internal/core/domain/model/product"
	"evashoes/internal/pkg/errs"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

func toKernelUUID(id openapi_types.UUID, name string) (kernel.UUID, error) {
	u, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsRequiredErrorWithCause(name, err)
	}
	return u, nil
}

func toMoney(amount float64, name string) (kernel.Money, error) {
	m, err := kernel.MoneyFromFloat(amount)
	if err != nil {
		return kernel.Money{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return m, nil
}

func toShippingAddress(a api.ShippingAddress) (order.ShippingAddress, error) {
	return order.NewShippingAddress(a.FullName, a.Phone, a.Address, a.City, a.District, a.Ward)
}

func toLineItems(items []api.NewOrderItem) ([]order.LineItem, error) {
	lineItems := make([]order.LineItem, 0, len(items))
	for _, item := range items {
		productID, err := toKernelUUID(item.ProductID, "items.productId")
		if err != nil {
			return nil, err
		}
		price, err := toMoney(item.Price, "items.price")
		if err != nil {
			return nil, err
		}
		lineItem, err := order.NewLineItem(productID, item.Quantity, price, item.Color, item.Size)
		if err != nil {
			return nil, err
		}
		lineItems = append(lineItems, lineItem)
	}
	return lineItems, nil
}

func toCartLines(items []api.NewOrderItem) ([]cart.Line, error) {
	lines := make([]cart.Line, 0, len(items))
	for _, item := range items {
		productID, err := toKernelUUID(item.ProductID, "items.productId")
		if err != nil {
			return nil, err
		}
		price, err := toMoney(item.Price, "items.price")
		if err != nil {
			return nil, err
		}
		line, err := cart.NewLine(productID, item.Color, item.Size, item.Quantity, price)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func toSizeStocks(sizes []api.SizeStock) []product.SizeStock {
	out := make([]product.SizeStock, len(sizes))
	for i, s := range sizes {
		out[i] = product.SizeStock{Size: s.Size, Stock: s.Stock}
	}
	return out
}

func fromShippingAddress(a queries.ShippingAddressView) api.ShippingAddress {
	return api.ShippingAddress{
		FullName: a.FullName,
		Phone:    a.Phone,
		Address:  a.Address,
		City:     a.City,
		District: a.District,
		Ward:     a.Ward,
	}
}

func fromOrderSummary(s queries.OrderSummary) api.Order {
	return api.Order{
		ID:              s.ID.Bytes(),
		UserID:          s.UserID.Bytes(),
		TotalPrice:      s.TotalPrice.Float64(),
		Status:          s.Status,
		PaymentMethod:   s.PaymentMethod,
		PaymentStatus:   s.PaymentStatus,
		ShippingAddress: fromShippingAddress(s.ShippingAddress),
		Notes:           s.Notes,
		CodeOrder:       s.CodeOrder,
		CancelAt:        s.CancelAt,
		CancelReason:    s.CancelReason,
		DeliveredAt:     s.DeliveredAt,
		CreatedAt:       s.CreatedAt,
	}
}

func fromOrderSummaries(summaries []queries.OrderSummary) []api.Order {
	out := make([]api.Order, len(summaries))
	for i, s := range summaries {
		out[i] = fromOrderSummary(s)
	}
	return out
}

func fromOrderView(v queries.OrderView) api.Order {
	o := fromOrderSummary(v.OrderSummary)
	o.Items = make([]api.OrderItem, len(v.Items))
	for i, item := range v.Items {
		o.Items[i] = api.OrderItem{
			ProductID:   item.ProductID.Bytes(),
			ProductName: item.ProductName,
			ImageURL:    item.ImageURL,
			Quantity:    item.Quantity,
			Price:       item.Price.Float64(),
			Color:       item.Color,
			Size:        item.Size,
		}
	}
	return o
}

func fromOrderPage(p queries.OrderPage) api.OrderPage {
	totalPages := 0
	if p.Limit > 0 {
		totalPages = int(math.Ceil(float64(p.Total) / float64(p.Limit)))
	}
	return api.OrderPage{
		Orders:     fromOrderSummaries(p.Orders),
		Total:      p.Total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: totalPages,
	}
}

func fromCartView(v queries.CartView) api.Cart {
	items := make([]api.CartLine, len(v.Lines))
	for i, line := range v.Lines {
		items[i] = api.CartLine{
			ProductID:   line.ProductID.Bytes(),
			ProductName: line.ProductName,
			ImageURL:    line.ImageURL,
			Color:       line.Color,
			Size:        line.Size,
			Quantity:    line.Quantity,
			Price:       line.Price.Float64(),
		}
	}
	return api.Cart{Items: items, TotalPrice: v.Total.Float64()}
}

func fromProductView(v queries.ProductView) api.Product {
	p := api.Product{
		ID:          v.ID.Bytes(),
		Name:        v.Name,
		Price:       v.Price.Float64(),
		Description: v.Description,
		Details:     v.Details,
		ImageURLs:   v.ImageURLs,
		Sizes:       make([]api.SizeStock, len(v.Sizes)),
		Sold:        v.Sold,
		IsSale:      v.IsSale,
		CreatedAt:   v.CreatedAt,
	}
	if p.ImageURLs == nil {
		p.ImageURLs = []string{}
	}
	if v.SellPrice != nil {
		sellPrice := v.SellPrice.Float64()
		p.SellPrice = &sellPrice
	}
	for i, s := range v.Sizes {
		p.Sizes[i] = api.SizeStock{Size: s.Size, Stock: s.Stock}
	}
	return p
}

func fromProductViews(views []queries.ProductView) []api.Product {
	out := make([]api.Product, len(views))
	for i, v := range views {
		out[i] = fromProductView(v)
	}
	return out
}

func fromFinancialRecords(records []queries.FinancialRecordView) []api.FinancialRecord {
	out := make([]api.FinancialRecord, len(records))
	for i, r := range records {
		out[i] = api.FinancialRecord{
			ID:          r.ID.Bytes(),
			OrderID:     r.OrderID.Bytes(),
			CodeOrder:   r.CodeOrder,
			TotalAmount: r.TotalAmount.Float64(),
			Cost:        r.Cost.Float64(),
			Date:        r.Date,
		}
	}
	return out
}

func fromAdminStats(s queries.AdminStats) api.AdminStats {
	return api.AdminStats{
		TotalProducts:   s.TotalProducts,
		TotalCustomers:  s.TotalCustomers,
		DeliveredOrders: s.DeliveredOrders,
		PendingOrders:   s.PendingOrders,
		Revenue:         s.Revenue.Float64(),
	}
}
