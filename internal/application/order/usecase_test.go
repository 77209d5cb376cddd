package order_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taller-pos-api/internal/application/dto"
	"github.com/jhoicas/taller-pos-api/internal/application/order"
	"github.com/jhoicas/taller-pos-api/internal/domain"
	"github.com/jhoicas/taller-pos-api/internal/domain/entity"
	"github.com/jhoicas/taller-pos-api/internal/domain/repository"
	"github.com/jhoicas/taller-pos-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeOrderRepo struct {
	orders map[string]*entity.Order
}

func (r *fakeOrderRepo) Create(o *entity.Order) error { r.orders[o.ID] = o; return nil }
func (r *fakeOrderRepo) GetByID(id string) (*entity.Order, error) {
	return r.orders[id], nil
}
func (r *fakeOrderRepo) GetByIDForUpdate(id string) (*entity.Order, error) {
	return r.orders[id], nil
}
func (r *fakeOrderRepo) List(repository.OrderFilters) ([]*entity.Order, error) { return nil, nil }
func (r *fakeOrderRepo) Count(repository.OrderFilters) (int, error)            { return 0, nil }
func (r *fakeOrderRepo) UpdateStatus(id string, st entity.OrderStatus, startedAt, completedAt *time.Time) error {
	o := r.orders[id]
	o.Status = st
	o.StartedAt = startedAt
	o.CompletedAt = completedAt
	return nil
}
func (r *fakeOrderRepo) UpdatePaymentStatus(id string, st entity.PaymentStatus) error {
	r.orders[id].PaymentStatus = st
	return nil
}
func (r *fakeOrderRepo) UpdateTotals(id string, usd, ves decimal.Decimal) error {
	r.orders[id].TotalUSD = usd
	r.orders[id].TotalVES = ves
	return nil
}
func (r *fakeOrderRepo) SoftDelete(id string) error { delete(r.orders, id); return nil }

type fakeDetailRepo struct {
	details map[string]*entity.OrderDetail
}

func (r *fakeDetailRepo) Create(d *entity.OrderDetail) error { r.details[d.ID] = d; return nil }
func (r *fakeDetailRepo) CreateMany(ds []*entity.OrderDetail) error {
	for _, d := range ds {
		r.details[d.ID] = d
	}
	return nil
}
func (r *fakeDetailRepo) GetByID(id string) (*entity.OrderDetail, error) {
	return r.details[id], nil
}
func (r *fakeDetailRepo) ListByOrderID(orderID string) ([]*entity.OrderDetail, error) {
	var out []*entity.OrderDetail
	for _, d := range r.details {
		if d.OrderID == orderID && d.DeletedAt == nil {
			out = append(out, d)
		}
	}
	return out, nil
}
func (r *fakeDetailRepo) SoftDelete(id string) error {
	now := time.Now()
	r.details[id].DeletedAt = &now
	return nil
}
func (r *fakeDetailRepo) SoftDeleteByOrderID(orderID string) error {
	now := time.Now()
	for _, d := range r.details {
		if d.OrderID == orderID {
			d.DeletedAt = &now
		}
	}
	return nil
}

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

type fakeCustomerRepo struct {
	customers map[string]*entity.Customer
}

func (r *fakeCustomerRepo) Create(c *entity.Customer) error { r.customers[c.ID] = c; return nil }
func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return r.customers[id], nil
}
func (r *fakeCustomerRepo) GetByPhone(string) (*entity.Customer, error) { return nil, nil }
func (r *fakeCustomerRepo) List(repository.ListFilters) ([]*entity.Customer, error) {
	return nil, nil
}
func (r *fakeCustomerRepo) Count(repository.ListFilters) (int, error) { return 0, nil }
func (r *fakeCustomerRepo) Update(*entity.Customer) error             { return nil }
func (r *fakeCustomerRepo) SoftDelete(string) error                   { return nil }

type fakeServiceRepo struct {
	services map[string]*entity.Service
}

func (r *fakeServiceRepo) Create(s *entity.Service) error { r.services[s.ID] = s; return nil }
func (r *fakeServiceRepo) GetByID(id string) (*entity.Service, error) {
	return r.services[id], nil
}
func (r *fakeServiceRepo) GetByName(string) (*entity.Service, error) { return nil, nil }
func (r *fakeServiceRepo) List(repository.ListFilters) ([]*entity.Service, error) {
	return nil, nil
}
func (r *fakeServiceRepo) Count(repository.ListFilters) (int, error) { return 0, nil }
func (r *fakeServiceRepo) Update(*entity.Service) error              { return nil }
func (r *fakeServiceRepo) SoftDelete(string) error                   { return nil }
func (r *fakeServiceRepo) Restore(string) error                      { return nil }

type fakeTxRunner struct {
	orders   *fakeOrderRepo
	details  *fakeDetailRepo
	products *fakeProductRepo
}

func (t *fakeTxRunner) Run(ctx context.Context, fn func(
	orders repository.OrderRepository,
	details repository.OrderDetailRepository,
	products repository.ProductRepository,
) error) error {
	return fn(t.orders, t.details, t.products)
}

type fixedRate struct {
	rate decimal.Decimal
}

func (f fixedRate) GetCurrentRate(context.Context) (*dto.CurrentRateResponse, error) {
	return &dto.CurrentRateResponse{Rate: f.rate, Source: entity.SourceBCVUSD}, nil
}

// saleCreatorSpy registra las derivaciones de venta disparadas.
type saleCreatorSpy struct {
	calls []string
	err   error
}

func (s *saleCreatorSpy) CreateFromOrder(ctx context.Context, orderID string) (*entity.Sale, error) {
	s.calls = append(s.calls, orderID)
	if s.err != nil {
		return nil, s.err
	}
	return &entity.Sale{ID: "venta-" + orderID, OrderID: &orderID}, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func ptr[T any](v T) *T { return &v }

type testEnv struct {
	uc        *order.UseCase
	orders    *fakeOrderRepo
	details   *fakeDetailRepo
	products  *fakeProductRepo
	customers *fakeCustomerRepo
	services  *fakeServiceRepo
	sales     *saleCreatorSpy
}

func newEnv() *testEnv {
	orders := &fakeOrderRepo{orders: map[string]*entity.Order{}}
	details := &fakeDetailRepo{details: map[string]*entity.OrderDetail{}}
	products := &fakeProductRepo{products: map[string]*entity.Product{
		"filtro": {ID: "filtro", Name: "Filtro de aceite", Stock: 10, MinStock: 2, CostPrice: d("8.50")},
		"bujia":  {ID: "bujia", Name: "Bujía NGK", Stock: 1, MinStock: 4, CostPrice: d("4")},
	}}
	customers := &fakeCustomerRepo{customers: map[string]*entity.Customer{
		"c1": {ID: "c1", Name: "Pedro Pérez", Phone: "0414-5551234"},
	}}
	services := &fakeServiceRepo{services: map[string]*entity.Service{
		"cambio-aceite": {ID: "cambio-aceite", Name: "Cambio de aceite", Price: d("25"), Status: true},
		"retirado":      {ID: "retirado", Name: "Servicio retirado", Price: d("10"), Status: false},
	}}
	sales := &saleCreatorSpy{}
	runner := &fakeTxRunner{orders: orders, details: details, products: products}

	uc := order.NewUseCase(runner, orders, details, customers, services, products, fixedRate{rate: d("40")}, logger.Nop())
	uc.SetSaleCreator(sales)
	return &testEnv{
		uc: uc, orders: orders, details: details, products: products,
		customers: customers, services: services, sales: sales,
	}
}

func (e *testEnv) createOrder(t *testing.T, details ...dto.OrderLineInput) *dto.OrderResponse {
	t.Helper()
	resp, err := e.uc.Create(context.Background(), dto.OrderCreateInput{
		CustomerID:   "c1",
		VehicleModel: "Corolla 2012",
		Details:      details,
	})
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_CapturaTasaYTotales(t *testing.T) {
	e := newEnv()

	resp := e.createOrder(t,
		dto.OrderLineInput{ServiceID: ptr("cambio-aceite"), Quantity: 1},
		dto.OrderLineInput{ProductID: ptr("filtro"), Quantity: 2},
	)

	o := e.orders.orders[resp.ID]
	require.NotNil(t, o)
	assert.Equal(t, entity.OrderStatusPending, o.Status)
	assert.Equal(t, entity.PaymentStatusPending, o.PaymentStatus)
	// 25 + 2*8.50 = 42 USD a tasa 40 => 1680 Bs
	assert.True(t, o.TotalUSD.Equal(d("42")), "total USD: %s", o.TotalUSD)
	assert.True(t, o.TotalVES.Equal(d("1680")), "total VES: %s", o.TotalVES)
	assert.True(t, o.DollarRate.Equal(d("40")))
}

func TestCreate_DescuentaStockDeProductos(t *testing.T) {
	e := newEnv()

	e.createOrder(t, dto.OrderLineInput{ProductID: ptr("filtro"), Quantity: 3})

	assert.Equal(t, 7, e.products.products["filtro"].Stock)
}

func TestCreate_StockInsuficiente(t *testing.T) {
	e := newEnv()

	_, err := e.uc.Create(context.Background(), dto.OrderCreateInput{
		CustomerID:   "c1",
		VehicleModel: "Corolla 2012",
		Details:      []dto.OrderLineInput{{ProductID: ptr("bujia"), Quantity: 4}},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestCreate_ClienteInexistente(t *testing.T) {
	e := newEnv()

	_, err := e.uc.Create(context.Background(), dto.OrderCreateInput{
		CustomerID:   "nadie",
		VehicleModel: "Corolla 2012",
		Details:      []dto.OrderLineInput{{ServiceID: ptr("cambio-aceite"), Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestCreate_SinLineas(t *testing.T) {
	e := newEnv()

	_, err := e.uc.Create(context.Background(), dto.OrderCreateInput{
		CustomerID:   "c1",
		VehicleModel: "Corolla 2012",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidOrderDetail)
}

func TestCreate_LineaConAmbasReferencias(t *testing.T) {
	e := newEnv()

	_, err := e.uc.Create(context.Background(), dto.OrderCreateInput{
		CustomerID:   "c1",
		VehicleModel: "Corolla 2012",
		Details: []dto.OrderLineInput{
			{ServiceID: ptr("cambio-aceite"), ProductID: ptr("filtro"), Quantity: 1},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidOrderDetail)
}

func TestCreate_ServicioInactivo(t *testing.T) {
	e := newEnv()

	_, err := e.uc.Create(context.Background(), dto.OrderCreateInput{
		CustomerID:   "c1",
		VehicleModel: "Corolla 2012",
		Details:      []dto.OrderLineInput{{ServiceID: ptr("retirado"), Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrServiceInactive)
}

func TestCreate_PrecioExplicitoPesaMasQueElCatalogo(t *testing.T) {
	e := newEnv()

	resp := e.createOrder(t, dto.OrderLineInput{
		ServiceID:   ptr("cambio-aceite"),
		Quantity:    2,
		PriceAtTime: ptr(d("30")),
	})

	assert.True(t, e.orders.orders[resp.ID].TotalUSD.Equal(d("60")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Transiciones de estado
// ──────────────────────────────────────────────────────────────────────────────

func TestChangeStatus_FlujoCompleto(t *testing.T) {
	e := newEnv()
	resp := e.createOrder(t, dto.OrderLineInput{ServiceID: ptr("cambio-aceite"), Quantity: 1})

	_, err := e.uc.ChangeStatus(context.Background(), resp.ID, entity.OrderStatusInProgress)
	require.NoError(t, err)
	o := e.orders.orders[resp.ID]
	assert.Equal(t, entity.OrderStatusInProgress, o.Status)
	assert.NotNil(t, o.StartedAt, "pasar a IN_PROGRESS debe marcar startedAt")

	_, err = e.uc.ChangeStatus(context.Background(), resp.ID, entity.OrderStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCompleted, o.Status)
	assert.NotNil(t, o.CompletedAt, "pasar a COMPLETED debe marcar completedAt")
}

func TestChangeStatus_RechazaSaltos(t *testing.T) {
	e := newEnv()
	resp := e.createOrder(t, dto.OrderLineInput{ServiceID: ptr("cambio-aceite"), Quantity: 1})

	// PENDING -> COMPLETED no está en la tabla de transiciones.
	_, err := e.uc.ChangeStatus(context.Background(), resp.ID, entity.OrderStatusCompleted)
	assert.ErrorIs(t, err, domain.ErrInvalidOrderStatusTransition)
}

func TestChangeStatus_CancelledEsTerminal(t *testing.T) {
	e := newEnv()
	resp := e.createOrder(t, dto.OrderLineInput{ServiceID: ptr("cambio-aceite"), Quantity: 1})

	_, err := e.uc.ChangeStatus(context.Background(), resp.ID, entity.OrderStatusCancelled)
	require.NoError(t, err)

	_, err = e.uc.ChangeStatus(context.Background(), resp.ID, entity.OrderStatusInProgress)
	assert.ErrorIs(t, err, domain.ErrInvalidOrderStatusTransition)
}

func TestChangeStatus_CompletarOrdenPagadaDerivaVenta(t *testing.T) {
	e := newEnv()
	resp := e.createOrder(t, dto.OrderLineInput{ServiceID: ptr("cambio-aceite"), Quantity: 1})
	e.orders.orders[resp.ID].PaymentStatus = entity.PaymentStatusPaid

	_, err := e.uc.ChangeStatus(context.Background(), resp.ID, entity.OrderStatusInProgress)
	require.NoError(t, err)
	assert.Empty(t, e.sales.calls)

	_, err = e.uc.ChangeStatus(context.Background(), resp.ID, entity.OrderStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, []string{resp.ID}, e.sales.calls)
}

func TestUpdatePaymentStatus_PagarOrdenCompletadaDerivaVenta(t *testing.T) {
	e := newEnv()
	resp := e.createOrder(t, dto.OrderLineInput{ServiceID: ptr("cambio-aceite"), Quantity: 1})
	e.orders.orders[resp.ID].Status = entity.OrderStatusCompleted

	_, err := e.uc.UpdatePaymentStatus(context.Background(), resp.ID, entity.PaymentStatusPaid)
	require.NoError(t, err)
	assert.Equal(t, []string{resp.ID}, e.sales.calls)
}

func TestUpdatePaymentStatus_EstadoDesconocido(t *testing.T) {
	e := newEnv()
	resp := e.createOrder(t, dto.OrderLineInput{ServiceID: ptr("cambio-aceite"), Quantity: 1})

	_, err := e.uc.UpdatePaymentStatus(context.Background(), resp.ID, entity.PaymentStatus("PARTIAL"))
	assert.ErrorIs(t, err, domain.ErrInvalidPaymentStatus)
}

// ──────────────────────────────────────────────────────────────────────────────
// Líneas
// ──────────────────────────────────────────────────────────────────────────────

func TestAddDetail_RecalculaTotalesYDescuentaStock(t *testing.T) {
	e := newEnv()
	resp := e.createOrder(t, dto.OrderLineInput{ServiceID: ptr("cambio-aceite"), Quantity: 1})

	_, err := e.uc.AddDetail(context.Background(), resp.ID, dto.OrderLineInput{
		ProductID: ptr("filtro"),
		Quantity:  2,
	})
	require.NoError(t, err)

	o := e.orders.orders[resp.ID]
	assert.True(t, o.TotalUSD.Equal(d("42")), "total USD: %s", o.TotalUSD)
	assert.True(t, o.TotalVES.Equal(d("1680")), "el recálculo usa la tasa fijada de la orden")
	assert.Equal(t, 8, e.products.products["filtro"].Stock)
}

func TestAddDetail_OrdenCompletadaNoAdmiteLineas(t *testing.T) {
	e := newEnv()
	resp := e.createOrder(t, dto.OrderLineInput{ServiceID: ptr("cambio-aceite"), Quantity: 1})
	e.orders.orders[resp.ID].Status = entity.OrderStatusCompleted

	_, err := e.uc.AddDetail(context.Background(), resp.ID, dto.OrderLineInput{
		ServiceID: ptr("cambio-aceite"),
		Quantity:  1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidOrderDetail)
}

func TestRemoveDetail_RestauraStockYRecalcula(t *testing.T) {
	e := newEnv()
	resp := e.createOrder(t,
		dto.OrderLineInput{ServiceID: ptr("cambio-aceite"), Quantity: 1},
		dto.OrderLineInput{ProductID: ptr("filtro"), Quantity: 2},
	)
	require.Equal(t, 8, e.products.products["filtro"].Stock)

	var productLine string
	for id, detail := range e.details.details {
		if detail.Item.IsProduct() {
			productLine = id
		}
	}
	require.NotEmpty(t, productLine)

	_, err := e.uc.RemoveDetail(context.Background(), resp.ID, productLine)
	require.NoError(t, err)

	assert.Equal(t, 10, e.products.products["filtro"].Stock)
	assert.True(t, e.orders.orders[resp.ID].TotalUSD.Equal(d("25")))
}

func TestRemoveDetail_LineaDeOtraOrden(t *testing.T) {
	e := newEnv()
	a := e.createOrder(t, dto.OrderLineInput{ServiceID: ptr("cambio-aceite"), Quantity: 1})
	b := e.createOrder(t, dto.OrderLineInput{ServiceID: ptr("cambio-aceite"), Quantity: 1})

	var lineOfB string
	for id, detail := range e.details.details {
		if detail.OrderID == b.ID {
			lineOfB = id
		}
	}
	require.NotEmpty(t, lineOfB)

	_, err := e.uc.RemoveDetail(context.Background(), a.ID, lineOfB)
	assert.ErrorIs(t, err, domain.ErrOrderDetailNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Borrado
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_ArchivaSinRestaurarStock(t *testing.T) {
	e := newEnv()
	resp := e.createOrder(t, dto.OrderLineInput{ProductID: ptr("filtro"), Quantity: 3})
	require.Equal(t, 7, e.products.products["filtro"].Stock)

	err := e.uc.Delete(context.Background(), resp.ID)
	require.NoError(t, err)

	assert.Nil(t, e.orders.orders[resp.ID])
	// El consumo del trabajo ya salió del inventario: borrar la orden no lo devuelve.
	assert.Equal(t, 7, e.products.products["filtro"].Stock)

	lines, _ := e.details.ListByOrderID(resp.ID)
	assert.Empty(t, lines, "las líneas quedan archivadas junto con la orden")
}
