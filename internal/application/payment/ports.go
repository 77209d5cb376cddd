package payment

import (
	"context"

	"github.com/jhoicas/taller-pos-api/internal/application/dto"
	"github.com/jhoicas/taller-pos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD. El pago, la
// actualización del estado de cobro y la eventual derivación de venta se
// persisten o revierten juntos.
type TxRunner interface {
	RunPayment(ctx context.Context, fn func(
		payments repository.PaymentRepository,
		orders repository.OrderRepository,
		sales repository.SaleRepository,
	) error) error
}

// RateResolver resuelve la tasa de cambio efectiva al momento del pago.
type RateResolver interface {
	GetCurrentRate(ctx context.Context) (*dto.CurrentRateResponse, error)
}
