package stock_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taller-pos-api/internal/application/stock"
	"github.com/jhoicas/taller-pos-api/internal/domain"
	"github.com/jhoicas/taller-pos-api/internal/domain/entity"
	"github.com/jhoicas/taller-pos-api/internal/domain/repository"
)

// ─────────────────────────────────────────────────────────────────────────────
// Fakes
// ─────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[string]*entity.Product
	locked   []string              // IDs en el orden en que se pidió el bloqueo
	bulk     [][]entity.StockUpdate // cada llamada a BulkUpdateStock
	singles  int                    // llamadas a UpdateStock individual
}

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

func newFakeProductRepo(seed ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: map[string]*entity.Product{}}
	for _, p := range seed {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.products[id], nil
}
func (r *fakeProductRepo) GetByName(string) (*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	r.locked = append(r.locked, id)
	return r.products[id], nil
}
func (r *fakeProductRepo) List(repository.ProductFilters) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) Count(repository.ProductFilters) (int, error) { return 0, nil }
func (r *fakeProductRepo) Update(*entity.Product) error                 { return nil }
func (r *fakeProductRepo) UpdateStock(id string, newStock int) error {
	r.singles++
	r.products[id].Stock = newStock
	return nil
}
func (r *fakeProductRepo) BulkUpdateStock(updates []entity.StockUpdate) error {
	r.bulk = append(r.bulk, updates)
	for _, u := range updates {
		r.products[u.ProductID].Stock = u.NewStock
	}
	return nil
}
func (r *fakeProductRepo) SoftDelete(string) error { return nil }
func (r *fakeProductRepo) Restore(string) error    { return nil }

func product(id string, stockQty int) *entity.Product {
	return &entity.Product{ID: id, Name: id, Stock: stockQty}
}

// ─────────────────────────────────────────────────────────────────────────────
// Tests
// ─────────────────────────────────────────────────────────────────────────────

func TestDeductMany_DescuentaEnUnSoloLote(t *testing.T) {
	repo := newFakeProductRepo(product("filtro", 10), product("bujia", 4))

	err := stock.DeductMany(repo, []stock.Deduction{
		{ProductID: "filtro", Quantity: 3},
		{ProductID: "bujia", Quantity: 1},
	})

	require.NoError(t, err)
	assert.Equal(t, 7, repo.products["filtro"].Stock)
	assert.Equal(t, 3, repo.products["bujia"].Stock)
	require.Len(t, repo.bulk, 1, "las escrituras deben ir en una sola llamada en lote")
	assert.Zero(t, repo.singles, "no debe haber escrituras individuales")
}

func TestDeductMany_AgrupaLineasDelMismoProducto(t *testing.T) {
	repo := newFakeProductRepo(product("filtro", 10))

	err := stock.DeductMany(repo, []stock.Deduction{
		{ProductID: "filtro", Quantity: 4},
		{ProductID: "filtro", Quantity: 4},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, repo.products["filtro"].Stock)
	require.Len(t, repo.locked, 1, "el producto repetido se bloquea una sola vez")
}

func TestDeductMany_RechazaLoteQueExcedeElStockCombinado(t *testing.T) {
	repo := newFakeProductRepo(product("filtro", 5))

	err := stock.DeductMany(repo, []stock.Deduction{
		{ProductID: "filtro", Quantity: 3},
		{ProductID: "filtro", Quantity: 3},
	})

	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 5, repo.products["filtro"].Stock, "un lote rechazado no toca el stock")
	assert.Empty(t, repo.bulk)
}

func TestDeductMany_BloqueaEnOrdenDeID(t *testing.T) {
	repo := newFakeProductRepo(product("zeta", 5), product("alfa", 5), product("media", 5))

	err := stock.DeductMany(repo, []stock.Deduction{
		{ProductID: "zeta", Quantity: 1},
		{ProductID: "alfa", Quantity: 1},
		{ProductID: "media", Quantity: 1},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"alfa", "media", "zeta"}, repo.locked)
}

func TestDeductMany_ProductoInexistente(t *testing.T) {
	repo := newFakeProductRepo(product("filtro", 5))

	err := stock.DeductMany(repo, []stock.Deduction{
		{ProductID: "fantasma", Quantity: 1},
	})

	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestDeductMany_LoteVacioNoEscribe(t *testing.T) {
	repo := newFakeProductRepo()

	require.NoError(t, stock.DeductMany(repo, nil))
	assert.Empty(t, repo.bulk)
}
