package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/taller-pos-api/internal/domain/entity"
)

// PaymentCreateInput pago contra una orden o una venta. Se declara
// exactamente uno de AmountUSD/AmountVES; la otra moneda se deriva con
// la tasa vigente. Montos negativos registran una reversa y exigen Notes.
type PaymentCreateInput struct {
	PaymentMethodID string           `json:"paymentMethodId"`
	AmountUSD       *decimal.Decimal `json:"amountUsd"`
	AmountVES       *decimal.Decimal `json:"amountVes"`
	Notes           *string          `json:"notes"`
}

// PaymentListRequest filtros de listado de pagos.
type PaymentListRequest struct {
	PageRequest
	OrderID  string `query:"orderId"`
	SaleID   string `query:"saleId"`
	MethodID string `query:"methodId"`
}

// PaymentResponse proyección pública de un pago.
type PaymentResponse struct {
	ID               string          `json:"id"`
	OrderID          *string         `json:"orderId,omitempty"`
	SaleID           *string         `json:"saleId,omitempty"`
	PaymentMethodID  string          `json:"paymentMethodId"`
	PaymentMethod    string          `json:"paymentMethod,omitempty"`
	AmountUSD        decimal.Decimal `json:"amountUsd"`
	ExchangeRate     decimal.Decimal `json:"exchangeRate"`
	AmountVES        decimal.Decimal `json:"amountVes"`
	OriginalCurrency entity.Currency `json:"originalCurrency"`
	PaymentDate      time.Time       `json:"paymentDate"`
	Notes            *string         `json:"notes,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// FromPayment proyecta la entidad a su representación pública.
func FromPayment(p *entity.Payment) PaymentResponse {
	resp := PaymentResponse{
		ID:               p.ID,
		OrderID:          p.Target.OrderID(),
		SaleID:           p.Target.SaleID(),
		PaymentMethodID:  p.PaymentMethodID,
		AmountUSD:        p.AmountUSD,
		ExchangeRate:     p.ExchangeRate,
		AmountVES:        p.AmountVES,
		OriginalCurrency: p.OriginalCurrency,
		PaymentDate:      p.PaymentDate,
		Notes:            p.Notes,
		CreatedAt:        p.CreatedAt,
	}
	if p.PaymentMethod != nil {
		resp.PaymentMethod = p.PaymentMethod.Name
	}
	return resp
}

// FromPaymentList proyecta una lista de pagos.
func FromPaymentList(payments []*entity.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, FromPayment(p))
	}
	return out
}

// PaymentRegisteredResponse resultado de registrar un pago contra una orden:
// el pago creado y, cuando el cobro quedó completo sobre una orden terminada,
// la venta generada en la misma transacción.
type PaymentRegisteredResponse struct {
	Payment   PaymentResponse `json:"payment"`
	FullyPaid bool            `json:"fullyPaid"`
	Sale      *SaleResponse   `json:"sale,omitempty"`
}
