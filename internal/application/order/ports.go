package order

import (
	"context"

	"github.com/jhoicas/taller-pos-api/internal/application/dto"
	"github.com/jhoicas/taller-pos-api/internal/domain/entity"
	"github.com/jhoicas/taller-pos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que orden, detalles y descuento de
// stock se persistan o reviertan juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		orders repository.OrderRepository,
		details repository.OrderDetailRepository,
		products repository.ProductRepository,
	) error) error
}

// RateResolver resuelve la tasa de cambio efectiva al momento de crear la orden.
type RateResolver interface {
	GetCurrentRate(ctx context.Context) (*dto.CurrentRateResponse, error)
}

// SaleCreator deriva la venta de una orden completada y pagada. Se inyecta
// vía setter para romper el ciclo orden<->venta en el armado de dependencias.
type SaleCreator interface {
	CreateFromOrder(ctx context.Context, orderID string) (*entity.Sale, error)
}
