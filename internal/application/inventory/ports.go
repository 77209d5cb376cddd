package inventory

import (
	"context"

	"github.com/jhoicas/taller-pos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD: el ajuste y
// la mutación de stock se persisten o revierten juntos.
type TxRunner interface {
	RunAdjustment(ctx context.Context, fn func(
		adjustments repository.InventoryAdjustmentRepository,
		products repository.ProductRepository,
	) error) error
}
