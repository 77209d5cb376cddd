package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/taller-pos-api/internal/domain/entity"
)

// SaleLineInput línea de venta rápida: exactamente uno de ServiceID/ProductID.
type SaleLineInput struct {
	ServiceID *string          `json:"serviceId"`
	ProductID *string          `json:"productId"`
	Quantity  int              `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unitPrice"`
}

// QuickSalePaymentInput pago declarado junto a la venta rápida.
type QuickSalePaymentInput struct {
	PaymentMethodID string           `json:"paymentMethodId"`
	AmountUSD       *decimal.Decimal `json:"amountUsd"`
	AmountVES       *decimal.Decimal `json:"amountVes"`
	Notes           *string          `json:"notes"`
}

// QuickSaleInput venta de mostrador: líneas más pagos que cubren el total.
type QuickSaleInput struct {
	CustomerID string                  `json:"customerId"`
	Details    []SaleLineInput         `json:"details"`
	Payments   []QuickSalePaymentInput `json:"payments"`
}

// SaleStatusInput cambio de estado de una venta.
type SaleStatusInput struct {
	Status entity.SaleStatus `json:"status"`
}

// SaleListRequest filtros de listado de ventas.
type SaleListRequest struct {
	PageRequest
	Status   string `query:"status"`
	FromDate string `query:"fromDate"`
	ToDate   string `query:"toDate"`
}

// SaleDetailResponse proyección pública de una línea de venta.
type SaleDetailResponse struct {
	ID        string          `json:"id"`
	ServiceID *string         `json:"serviceId,omitempty"`
	ProductID *string         `json:"productId,omitempty"`
	ItemName  string          `json:"itemName,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// SaleResponse proyección pública de una venta.
type SaleResponse struct {
	ID            string               `json:"id"`
	OrderID       *string              `json:"orderId,omitempty"`
	CustomerID    string               `json:"customerId"`
	CustomerName  string               `json:"customerName,omitempty"`
	Status        entity.SaleStatus    `json:"status"`
	PaymentStatus entity.PaymentStatus `json:"paymentStatus"`
	DollarRate    decimal.Decimal      `json:"dollarRate"`
	TotalUSD      decimal.Decimal      `json:"totalUsd"`
	TotalVES      decimal.Decimal      `json:"totalVes"`
	TotalPaidUSD  decimal.Decimal      `json:"totalPaidUsd"`
	TotalPaidVES  decimal.Decimal      `json:"totalPaidVes"`
	Details       []SaleDetailResponse `json:"details"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}

// FromSale proyecta la entidad a su representación pública.
func FromSale(s *entity.Sale) SaleResponse {
	details := make([]SaleDetailResponse, 0, len(s.Details))
	for _, d := range s.Details {
		details = append(details, SaleDetailResponse{
			ID:        d.ID,
			ServiceID: d.Item.ServiceID(),
			ProductID: d.Item.ProductID(),
			ItemName:  d.ItemName,
			Quantity:  d.Quantity,
			UnitPrice: d.UnitPrice,
			Subtotal:  d.Subtotal,
		})
	}
	resp := SaleResponse{
		ID:            s.ID,
		OrderID:       s.OrderID,
		CustomerID:    s.CustomerID,
		Status:        s.Status,
		PaymentStatus: s.PaymentStatus,
		DollarRate:    s.DollarRate,
		TotalUSD:      s.TotalUSD,
		TotalVES:      s.TotalVES,
		TotalPaidUSD:  s.TotalPaidUSD,
		TotalPaidVES:  s.TotalPaidVES,
		Details:       details,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
	if s.Customer != nil {
		resp.CustomerName = s.Customer.Name
	}
	return resp
}

// FromSaleList proyecta una lista de ventas.
func FromSaleList(sales []*entity.Sale) []SaleResponse {
	out := make([]SaleResponse, 0, len(sales))
	for _, s := range sales {
		out = append(out, FromSale(s))
	}
	return out
}
