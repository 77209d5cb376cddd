package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/taller-pos-api/internal/domain/entity"
)

// OrderLineInput línea a agregar: exactamente uno de ServiceID/ProductID.
// PriceAtTime opcional; si falta se toma el precio vigente del catálogo.
type OrderLineInput struct {
	ServiceID   *string          `json:"serviceId"`
	ProductID   *string          `json:"productId"`
	Quantity    int              `json:"quantity"`
	PriceAtTime *decimal.Decimal `json:"priceAtTime"`
}

// OrderCreateInput datos de intake de una orden.
type OrderCreateInput struct {
	CustomerID   string           `json:"customerId"`
	VehiclePlate *string          `json:"vehiclePlate"`
	VehicleModel string           `json:"vehicleModel"`
	Details      []OrderLineInput `json:"details"`
}

// OrderStatusInput cambio de estado solicitado.
type OrderStatusInput struct {
	Status entity.OrderStatus `json:"status"`
}

// PaymentStatusInput cambio directo del estado de cobro.
type PaymentStatusInput struct {
	PaymentStatus entity.PaymentStatus `json:"paymentStatus"`
}

// OrderListRequest filtros de listado de órdenes.
type OrderListRequest struct {
	PageRequest
	Search   string `query:"search"`
	Status   string `query:"status"`
	FromDate string `query:"fromDate"` // RFC 3339
	ToDate   string `query:"toDate"`
}

// OrderDetailResponse proyección pública de una línea de orden.
type OrderDetailResponse struct {
	ID          string          `json:"id"`
	ServiceID   *string         `json:"serviceId,omitempty"`
	ProductID   *string         `json:"productId,omitempty"`
	Quantity    int             `json:"quantity"`
	PriceAtTime decimal.Decimal `json:"priceAtTime"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// OrderResponse proyección pública de una orden.
type OrderResponse struct {
	ID            string                `json:"id"`
	CustomerID    string                `json:"customerId"`
	CustomerName  string                `json:"customerName,omitempty"`
	VehiclePlate  *string               `json:"vehiclePlate,omitempty"`
	VehicleModel  string                `json:"vehicleModel"`
	Status        entity.OrderStatus    `json:"status"`
	PaymentStatus entity.PaymentStatus  `json:"paymentStatus"`
	DollarRate    decimal.Decimal       `json:"dollarRate"`
	TotalUSD      decimal.Decimal       `json:"totalUsd"`
	TotalVES      decimal.Decimal       `json:"totalVes"`
	TotalPaidUSD  decimal.Decimal       `json:"totalPaidUsd"`
	TotalPaidVES  decimal.Decimal       `json:"totalPaidVes"`
	Details       []OrderDetailResponse `json:"details"`
	StartedAt     *time.Time            `json:"startedAt,omitempty"`
	CompletedAt   *time.Time            `json:"completedAt,omitempty"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}

// FromOrder proyecta la entidad a su representación pública.
func FromOrder(o *entity.Order) OrderResponse {
	details := make([]OrderDetailResponse, 0, len(o.Details))
	for _, d := range o.Details {
		details = append(details, OrderDetailResponse{
			ID:          d.ID,
			ServiceID:   d.Item.ServiceID(),
			ProductID:   d.Item.ProductID(),
			Quantity:    d.Quantity,
			PriceAtTime: d.PriceAtTime,
			Subtotal:    d.Subtotal(),
		})
	}
	resp := OrderResponse{
		ID:            o.ID,
		CustomerID:    o.CustomerID,
		VehiclePlate:  o.VehiclePlate,
		VehicleModel:  o.VehicleModel,
		Status:        o.Status,
		PaymentStatus: o.PaymentStatus,
		DollarRate:    o.DollarRate,
		TotalUSD:      o.TotalUSD,
		TotalVES:      o.TotalVES,
		TotalPaidUSD:  o.TotalPaidUSD,
		TotalPaidVES:  o.TotalPaidVES,
		Details:       details,
		StartedAt:     o.StartedAt,
		CompletedAt:   o.CompletedAt,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
	if o.Customer != nil {
		resp.CustomerName = o.Customer.Name
	}
	return resp
}

// FromOrderList proyecta una lista de órdenes.
func FromOrderList(orders []*entity.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromOrder(o))
	}
	return out
}
