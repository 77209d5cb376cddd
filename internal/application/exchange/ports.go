package exchange

import (
	"context"

	"github.com/shopspring/decimal"
)

// RateProvider fuente externa de tasas BCV. La implementación cachea en
// memoria; Sync fuerza un refresh ignorando el caché.
type RateProvider interface {
	USDRate(ctx context.Context) (decimal.Decimal, error)
	EURRate(ctx context.Context) (decimal.Decimal, error)
	Sync(ctx context.Context) error
}
