package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taller-pos-api/internal/application/dto"
	"github.com/jhoicas/taller-pos-api/internal/application/inventory"
	"github.com/jhoicas/taller-pos-api/internal/domain"
	"github.com/jhoicas/taller-pos-api/internal/domain/entity"
	"github.com/jhoicas/taller-pos-api/internal/domain/repository"
)

type fakeAdjustmentRepo struct {
	adjustments map[string]*entity.InventoryAdjustment
}

func (r *fakeAdjustmentRepo) Create(a *entity.InventoryAdjustment) error {
	r.adjustments[a.ID] = a
	return nil
}
func (r *fakeAdjustmentRepo) GetByID(id string) (*entity.InventoryAdjustment, error) {
	return r.adjustments[id], nil
}
func (r *fakeAdjustmentRepo) List(repository.AdjustmentFilters) ([]*entity.InventoryAdjustment, error) {
	return nil, nil
}
func (r *fakeAdjustmentRepo) Count(repository.AdjustmentFilters) (int, error) { return 0, nil }

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (r *fakeProductRepo) Create(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.products[id], nil
}
func (r *fakeProductRepo) GetByName(string) (*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.products[id], nil
}
func (r *fakeProductRepo) List(repository.ProductFilters) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) Count(repository.ProductFilters) (int, error) { return 0, nil }
func (r *fakeProductRepo) Update(*entity.Product) error                 { return nil }
func (r *fakeProductRepo) UpdateStock(productID string, newStock int) error {
	r.products[productID].Stock = newStock
	return nil
}
func (r *fakeProductRepo) BulkUpdateStock(updates []entity.StockUpdate) error {
	for _, u := range updates {
		r.products[u.ProductID].Stock = u.NewStock
	}
	return nil
}
func (r *fakeProductRepo) SoftDelete(string) error { return nil }
func (r *fakeProductRepo) Restore(string) error    { return nil }

type fakeTxRunner struct {
	adjustments *fakeAdjustmentRepo
	products    *fakeProductRepo
}

func (t *fakeTxRunner) RunAdjustment(ctx context.Context, fn func(
	adjustments repository.InventoryAdjustmentRepository,
	products repository.ProductRepository,
) error) error {
	return fn(t.adjustments, t.products)
}

func newEnv() (*inventory.UseCase, *fakeAdjustmentRepo, *fakeProductRepo) {
	adjustments := &fakeAdjustmentRepo{adjustments: map[string]*entity.InventoryAdjustment{}}
	products := &fakeProductRepo{products: map[string]*entity.Product{
		"filtro": {ID: "filtro", Name: "Filtro de aceite", Stock: 10, CostPrice: decimal.NewFromInt(8)},
	}}
	runner := &fakeTxRunner{adjustments: adjustments, products: products}
	return inventory.NewUseCase(runner, adjustments, products), adjustments, products
}

func TestCreate_EntradaSumaStock(t *testing.T) {
	uc, adjustments, products := newEnv()

	resp, err := uc.Create(context.Background(), dto.AdjustmentInput{
		ProductID:      "filtro",
		AdjustmentType: entity.AdjustmentIn,
		Quantity:       5,
		Reason:         entity.ReasonAuditCorrection,
	})
	require.NoError(t, err)

	assert.Equal(t, 10, resp.StockBefore)
	assert.Equal(t, 15, resp.StockAfter)
	assert.Equal(t, 15, products.products["filtro"].Stock)
	assert.Equal(t, "Filtro de aceite", resp.ProductName)
	assert.Len(t, adjustments.adjustments, 1)
}

func TestCreate_SalidaRestaStock(t *testing.T) {
	uc, _, products := newEnv()

	resp, err := uc.Create(context.Background(), dto.AdjustmentInput{
		ProductID:      "filtro",
		AdjustmentType: entity.AdjustmentOut,
		Quantity:       4,
		Reason:         entity.ReasonDamaged,
	})
	require.NoError(t, err)

	assert.Equal(t, 10, resp.StockBefore)
	assert.Equal(t, 6, resp.StockAfter)
	assert.Equal(t, 6, products.products["filtro"].Stock)
}

func TestCreate_SalidaQueDejaNegativoSeRechaza(t *testing.T) {
	uc, adjustments, products := newEnv()

	_, err := uc.Create(context.Background(), dto.AdjustmentInput{
		ProductID:      "filtro",
		AdjustmentType: entity.AdjustmentOut,
		Quantity:       11,
		Reason:         entity.ReasonTheft,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientAdjustmentStock)
	assert.Equal(t, 10, products.products["filtro"].Stock, "el stock no debe moverse")
	assert.Empty(t, adjustments.adjustments, "el ajuste rechazado no se registra")
}

func TestCreate_ValidaEntrada(t *testing.T) {
	uc, _, _ := newEnv()

	casos := []dto.AdjustmentInput{
		{ProductID: "filtro", AdjustmentType: entity.AdjustmentIn, Quantity: 0, Reason: entity.ReasonOther},
		{ProductID: "filtro", AdjustmentType: entity.AdjustmentIn, Quantity: -2, Reason: entity.ReasonOther},
		{ProductID: "filtro", AdjustmentType: "TRANSFER", Quantity: 1, Reason: entity.ReasonOther},
		{ProductID: "filtro", AdjustmentType: entity.AdjustmentIn, Quantity: 1, Reason: "MOJADO"},
	}
	for _, in := range casos {
		_, err := uc.Create(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidAdjustment, "entrada: %+v", in)
	}
}

func TestCreate_ProductoInexistente(t *testing.T) {
	uc, _, _ := newEnv()

	_, err := uc.Create(context.Background(), dto.AdjustmentInput{
		ProductID:      "nada",
		AdjustmentType: entity.AdjustmentIn,
		Quantity:       1,
		Reason:         entity.ReasonOther,
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestGetByID_Inexistente(t *testing.T) {
	uc, _, _ := newEnv()

	_, err := uc.GetByID(context.Background(), "nada")
	assert.ErrorIs(t, err, domain.ErrAdjustmentNotFound)
}
