package sale

import (
	"context"

	"github.com/jhoicas/taller-pos-api/internal/application/dto"
	"github.com/jhoicas/taller-pos-api/internal/domain/entity"
	"github.com/jhoicas/taller-pos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD: venta,
// detalles, pagos y stock se persisten o revierten juntos.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		sales repository.SaleRepository,
		products repository.ProductRepository,
		payments repository.PaymentRepository,
		orders repository.OrderRepository,
	) error) error
}

// RateResolver resuelve la tasa de cambio efectiva al momento de la venta.
type RateResolver interface {
	GetCurrentRate(ctx context.Context) (*dto.CurrentRateResponse, error)
}

// ReceiptGenerator arma el comprobante PDF de una venta.
type ReceiptGenerator interface {
	Generate(sale *entity.Sale, store *entity.StoreInfo) ([]byte, error)
}
