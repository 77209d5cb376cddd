package sale_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taller-pos-api/internal/application/dto"
	"github.com/jhoicas/taller-pos-api/internal/application/sale"
	"github.com/jhoicas/taller-pos-api/internal/domain"
	"github.com/jhoicas/taller-pos-api/internal/domain/entity"
	"github.com/jhoicas/taller-pos-api/internal/domain/repository"
	"github.com/jhoicas/taller-pos-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeSaleRepo struct {
	sales map[string]*entity.Sale
}

func (r *fakeSaleRepo) Create(s *entity.Sale) error {
	for _, existing := range r.sales {
		if existing.OrderID != nil && s.OrderID != nil && *existing.OrderID == *s.OrderID {
			return domain.ErrOrderAlreadyHasSale
		}
	}
	r.sales[s.ID] = s
	return nil
}
func (r *fakeSaleRepo) GetByID(id string) (*entity.Sale, error)          { return r.sales[id], nil }
func (r *fakeSaleRepo) GetByIDForUpdate(id string) (*entity.Sale, error) { return r.sales[id], nil }
func (r *fakeSaleRepo) GetByOrderID(orderID string) (*entity.Sale, error) {
	for _, s := range r.sales {
		if s.OrderID != nil && *s.OrderID == orderID {
			return s, nil
		}
	}
	return nil, nil
}
func (r *fakeSaleRepo) List(repository.SaleFilters) ([]*entity.Sale, error) { return nil, nil }
func (r *fakeSaleRepo) Count(repository.SaleFilters) (int, error)           { return 0, nil }
func (r *fakeSaleRepo) UpdateStatus(id string, st entity.SaleStatus) error {
	r.sales[id].Status = st
	return nil
}
func (r *fakeSaleRepo) UpdatePaymentStatus(id string, st entity.PaymentStatus) error {
	r.sales[id].PaymentStatus = st
	return nil
}

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
	r.orders[id].Status = st
	return nil
}
func (r *fakeOrderRepo) UpdatePaymentStatus(id string, st entity.PaymentStatus) error {
	r.orders[id].PaymentStatus = st
	return nil
}
func (r *fakeOrderRepo) UpdateTotals(id string, usd, ves decimal.Decimal) error { return nil }
func (r *fakeOrderRepo) SoftDelete(id string) error                             { return nil }

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

type fakePaymentRepo struct {
	payments []*entity.Payment
}

func (r *fakePaymentRepo) Create(p *entity.Payment) error {
	r.payments = append(r.payments, p)
	return nil
}
func (r *fakePaymentRepo) CreateMany(ps []*entity.Payment) error {
	r.payments = append(r.payments, ps...)
	return nil
}
func (r *fakePaymentRepo) GetByID(string) (*entity.Payment, error) { return nil, nil }
func (r *fakePaymentRepo) ListByTarget(repository.PaymentFilters) ([]*entity.Payment, error) {
	return nil, nil
}
func (r *fakePaymentRepo) CountByTarget(repository.PaymentFilters) (int, error) { return 0, nil }
func (r *fakePaymentRepo) SumByOrderID(string) (decimal.Decimal, error) {
	return decimal.Zero, nil
}
func (r *fakePaymentRepo) SumBySaleID(string) (decimal.Decimal, error) {
	return decimal.Zero, nil
}
func (r *fakePaymentRepo) LinkToSale(orderID, saleID string) error {
	for _, p := range r.payments {
		if p.Target.Kind == entity.PaymentTargetOrder && p.Target.ID == orderID {
			p.Target = entity.SaleTarget(saleID)
		}
	}
	return nil
}

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

type fakeMethodRepo struct {
	methods map[string]*entity.PaymentMethod
}

func (r *fakeMethodRepo) Create(m *entity.PaymentMethod) error { r.methods[m.ID] = m; return nil }
func (r *fakeMethodRepo) GetByID(id string) (*entity.PaymentMethod, error) {
	return r.methods[id], nil
}
func (r *fakeMethodRepo) GetByName(string) (*entity.PaymentMethod, error) { return nil, nil }
func (r *fakeMethodRepo) GetBulkByIDs(ids []string) ([]*entity.PaymentMethod, error) {
	var out []*entity.PaymentMethod
	for _, id := range ids {
		if m, ok := r.methods[id]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}
func (r *fakeMethodRepo) List(repository.ListFilters) ([]*entity.PaymentMethod, error) {
	return nil, nil
}
func (r *fakeMethodRepo) Count(repository.ListFilters) (int, error) { return 0, nil }
func (r *fakeMethodRepo) Update(*entity.PaymentMethod) error        { return nil }
func (r *fakeMethodRepo) SoftDelete(string) error                   { return nil }
func (r *fakeMethodRepo) Restore(string) error                      { return nil }

type fakeStoreRepo struct{}

func (fakeStoreRepo) Get() (*entity.StoreInfo, error) {
	return &entity.StoreInfo{ID: "store", Name: "Taller El Rápido", RIF: "J-12345678-9"}, nil
}
func (fakeStoreRepo) Update(info *entity.StoreInfo) (*entity.StoreInfo, error) {
	return info, nil
}

type fakeTxRunner struct {
	sales    *fakeSaleRepo
	products *fakeProductRepo
	payments *fakePaymentRepo
	orders   *fakeOrderRepo
}

func (t *fakeTxRunner) RunSale(ctx context.Context, fn func(
	sales repository.SaleRepository,
	products repository.ProductRepository,
	payments repository.PaymentRepository,
	orders repository.OrderRepository,
) error) error {
	return fn(t.sales, t.products, t.payments, t.orders)
}

type fixedRate struct {
	rate decimal.Decimal
}

func (f fixedRate) GetCurrentRate(context.Context) (*dto.CurrentRateResponse, error) {
	return &dto.CurrentRateResponse{Rate: f.rate, Source: entity.SourceBCVUSD}, nil
}

// receiptSpy devuelve un PDF fijo y registra la venta solicitada.
type receiptSpy struct {
	lastSale *entity.Sale
}

func (g *receiptSpy) Generate(s *entity.Sale, store *entity.StoreInfo) ([]byte, error) {
	g.lastSale = s
	return []byte("%PDF-1.7"), nil
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
	uc       *sale.UseCase
	sales    *fakeSaleRepo
	orders   *fakeOrderRepo
	products *fakeProductRepo
	payments *fakePaymentRepo
	receipts *receiptSpy
}

func newEnv() *testEnv {
	sales := &fakeSaleRepo{sales: map[string]*entity.Sale{}}
	orders := &fakeOrderRepo{orders: map[string]*entity.Order{}}
	products := &fakeProductRepo{products: map[string]*entity.Product{
		"filtro": {ID: "filtro", Name: "Filtro de aceite", Stock: 10, CostPrice: d("8.50")},
	}}
	payments := &fakePaymentRepo{}
	customers := &fakeCustomerRepo{customers: map[string]*entity.Customer{
		"c1": {ID: "c1", Name: "Pedro Pérez", Phone: "0414-5551234"},
	}}
	services := &fakeServiceRepo{services: map[string]*entity.Service{
		"lavado": {ID: "lavado", Name: "Lavado completo", Price: d("15"), Status: true},
	}}
	methods := &fakeMethodRepo{methods: map[string]*entity.PaymentMethod{
		"efectivo": {ID: "efectivo", Name: "Efectivo USD", Currency: entity.CurrencyUSD, IsActive: true},
		"pago-movil": {
			ID: "pago-movil", Name: "Pago Móvil", Currency: entity.CurrencyVES, IsActive: true,
		},
	}}
	receipts := &receiptSpy{}
	runner := &fakeTxRunner{sales: sales, products: products, payments: payments, orders: orders}

	uc := sale.NewUseCase(
		runner, sales, orders, customers, services, products, methods,
		fakeStoreRepo{}, fixedRate{rate: d("40")}, receipts, logger.Nop(),
	)
	return &testEnv{uc: uc, sales: sales, orders: orders, products: products, payments: payments, receipts: receipts}
}

// orden completada y pagada con una línea de servicio y una de producto.
func (e *testEnv) seedPaidOrder(id string) *entity.Order {
	o := &entity.Order{
		ID:            id,
		CustomerID:    "c1",
		Customer:      &entity.Customer{ID: "c1", Name: "Pedro Pérez", Phone: "0414-5551234"},
		Status:        entity.OrderStatusCompleted,
		PaymentStatus: entity.PaymentStatusPaid,
		DollarRate:    d("40"),
		TotalUSD:      d("32"),
		TotalVES:      d("1280"),
		Details: []*entity.OrderDetail{
			{ID: "d1", OrderID: id, Item: entity.ServiceRef("lavado"), Quantity: 1, PriceAtTime: d("15")},
			{ID: "d2", OrderID: id, Item: entity.ProductRef("filtro"), Quantity: 2, PriceAtTime: d("8.50")},
		},
	}
	e.orders.orders[id] = o
	return o
}

// ──────────────────────────────────────────────────────────────────────────────
// Derivación desde órdenes
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateFromOrder_Deriva(t *testing.T) {
	e := newEnv()
	e.seedPaidOrder("o1")
	e.payments.payments = append(e.payments.payments, &entity.Payment{
		ID: "p1", Target: entity.OrderTarget("o1"), AmountUSD: d("32"),
	})

	s, err := e.uc.CreateFromOrder(context.Background(), "o1")
	require.NoError(t, err)

	require.NotNil(t, s.OrderID)
	assert.Equal(t, "o1", *s.OrderID)
	assert.True(t, s.TotalUSD.Equal(d("32")), "total USD: %s", s.TotalUSD)
	assert.Equal(t, entity.SaleStatusCompleted, s.Status)
	assert.Equal(t, entity.PaymentStatusPaid, s.PaymentStatus)
	assert.Len(t, s.Details, 2)

	// El pago de la orden quedó re-enlazado a la venta.
	assert.Equal(t, entity.PaymentTargetSale, e.payments.payments[0].Target.Kind)
	assert.Equal(t, s.ID, e.payments.payments[0].Target.ID)
}

func TestCreateFromOrder_OrdenNoLista(t *testing.T) {
	e := newEnv()
	o := e.seedPaidOrder("o1")
	o.Status = entity.OrderStatusInProgress

	_, err := e.uc.CreateFromOrder(context.Background(), "o1")
	assert.ErrorIs(t, err, domain.ErrInvalidOrderForSale)

	o.Status = entity.OrderStatusCompleted
	o.PaymentStatus = entity.PaymentStatusPending
	_, err = e.uc.CreateFromOrder(context.Background(), "o1")
	assert.ErrorIs(t, err, domain.ErrInvalidOrderForSale)
}

func TestCreateFromOrder_UnaVentaPorOrden(t *testing.T) {
	e := newEnv()
	e.seedPaidOrder("o1")

	_, err := e.uc.CreateFromOrder(context.Background(), "o1")
	require.NoError(t, err)

	_, err = e.uc.CreateFromOrder(context.Background(), "o1")
	assert.ErrorIs(t, err, domain.ErrOrderAlreadyHasSale)
}

// ──────────────────────────────────────────────────────────────────────────────
// Venta rápida
// ──────────────────────────────────────────────────────────────────────────────

func TestQuickSale_NaceCompletadaYPagada(t *testing.T) {
	e := newEnv()

	// 15 + 2*8.50 = 32 USD; pago mixto: 20 USD + 480 Bs (12 USD a tasa 40).
	resp, err := e.uc.QuickSale(context.Background(), dto.QuickSaleInput{
		CustomerID: "c1",
		Details: []dto.SaleLineInput{
			{ServiceID: ptr("lavado"), Quantity: 1},
			{ProductID: ptr("filtro"), Quantity: 2},
		},
		Payments: []dto.QuickSalePaymentInput{
			{PaymentMethodID: "efectivo", AmountUSD: ptr(d("20"))},
			{PaymentMethodID: "pago-movil", AmountVES: ptr(d("480"))},
		},
	})
	require.NoError(t, err)

	s := e.sales.sales[resp.ID]
	require.NotNil(t, s)
	assert.Equal(t, entity.SaleStatusCompleted, s.Status)
	assert.Equal(t, entity.PaymentStatusPaid, s.PaymentStatus)
	assert.True(t, s.TotalUSD.Equal(d("32")))
	assert.Nil(t, s.OrderID, "una venta rápida no apunta a ninguna orden")
	assert.Equal(t, 8, e.products.products["filtro"].Stock)
	assert.Len(t, e.payments.payments, 2)
}

func TestQuickSale_PagosQueNoCuadran(t *testing.T) {
	e := newEnv()

	_, err := e.uc.QuickSale(context.Background(), dto.QuickSaleInput{
		CustomerID: "c1",
		Details:    []dto.SaleLineInput{{ServiceID: ptr("lavado"), Quantity: 1}},
		Payments: []dto.QuickSalePaymentInput{
			{PaymentMethodID: "efectivo", AmountUSD: ptr(d("10"))},
		},
	})
	assert.ErrorIs(t, err, domain.ErrSalePaymentsTotalMismatch)

	// Nada debe haberse persistido.
	assert.Empty(t, e.sales.sales)
	assert.Empty(t, e.payments.payments)
}

func TestQuickSale_ToleranciaDeUnCentavo(t *testing.T) {
	e := newEnv()

	_, err := e.uc.QuickSale(context.Background(), dto.QuickSaleInput{
		CustomerID: "c1",
		Details:    []dto.SaleLineInput{{ServiceID: ptr("lavado"), Quantity: 1}},
		Payments: []dto.QuickSalePaymentInput{
			{PaymentMethodID: "efectivo", AmountUSD: ptr(d("14.99"))},
		},
	})
	assert.NoError(t, err, "14.99 contra 15.00 queda dentro de la tolerancia")
}

func TestQuickSale_RechazaPagoNegativo(t *testing.T) {
	e := newEnv()

	_, err := e.uc.QuickSale(context.Background(), dto.QuickSaleInput{
		CustomerID: "c1",
		Details:    []dto.SaleLineInput{{ServiceID: ptr("lavado"), Quantity: 1}},
		Payments: []dto.QuickSalePaymentInput{
			{PaymentMethodID: "efectivo", AmountUSD: ptr(d("-15"))},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPaymentAmount)
}

func TestQuickSale_MetodoDesconocido(t *testing.T) {
	e := newEnv()

	_, err := e.uc.QuickSale(context.Background(), dto.QuickSaleInput{
		CustomerID: "c1",
		Details:    []dto.SaleLineInput{{ServiceID: ptr("lavado"), Quantity: 1}},
		Payments: []dto.QuickSalePaymentInput{
			{PaymentMethodID: "cripto", AmountUSD: ptr(d("15"))},
		},
	})
	assert.ErrorIs(t, err, domain.ErrPaymentMethodNotFound)
}

func TestQuickSale_StockInsuficienteRevierteTodo(t *testing.T) {
	e := newEnv()
	e.products.products["filtro"].Stock = 1

	_, err := e.uc.QuickSale(context.Background(), dto.QuickSaleInput{
		CustomerID: "c1",
		Details:    []dto.SaleLineInput{{ProductID: ptr("filtro"), Quantity: 2}},
		Payments: []dto.QuickSalePaymentInput{
			{PaymentMethodID: "efectivo", AmountUSD: ptr(d("17"))},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Empty(t, e.sales.sales)
}

func TestQuickSale_LineasRepetidasSeEvaluanEnConjunto(t *testing.T) {
	e := newEnv()

	// Dos líneas del mismo producto: 6+6 supera el stock de 10 aunque cada
	// línea por separado quepa.
	_, err := e.uc.QuickSale(context.Background(), dto.QuickSaleInput{
		CustomerID: "c1",
		Details: []dto.SaleLineInput{
			{ProductID: ptr("filtro"), Quantity: 6},
			{ProductID: ptr("filtro"), Quantity: 6},
		},
		Payments: []dto.QuickSalePaymentInput{
			{PaymentMethodID: "efectivo", AmountUSD: ptr(d("102"))},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 10, e.products.products["filtro"].Stock, "un lote rechazado no toca el stock")
	assert.Empty(t, e.sales.sales)
	assert.Empty(t, e.payments.payments)
}

// ──────────────────────────────────────────────────────────────────────────────
// Transiciones y reembolsos
// ──────────────────────────────────────────────────────────────────────────────

func TestChangeStatus_ReembolsoRestauraStock(t *testing.T) {
	e := newEnv()
	e.sales.sales["s1"] = &entity.Sale{
		ID:         "s1",
		CustomerID: "c1",
		Status:     entity.SaleStatusCompleted,
		Details: []*entity.SaleDetail{
			{ID: "d1", SaleID: "s1", Item: entity.ProductRef("filtro"), Quantity: 3, UnitPrice: d("8.50")},
			{ID: "d2", SaleID: "s1", Item: entity.ServiceRef("lavado"), Quantity: 1, UnitPrice: d("15")},
		},
	}

	_, err := e.uc.ChangeStatus(context.Background(), "s1", entity.SaleStatusRefunded)
	require.NoError(t, err)

	assert.Equal(t, entity.SaleStatusRefunded, e.sales.sales["s1"].Status)
	// Solo las líneas de producto devuelven stock.
	assert.Equal(t, 13, e.products.products["filtro"].Stock)
}

func TestChangeStatus_RechazaTransicionInvalida(t *testing.T) {
	e := newEnv()
	e.sales.sales["s1"] = &entity.Sale{ID: "s1", CustomerID: "c1", Status: entity.SaleStatusCompleted}

	// COMPLETED -> CANCELLED exige pasar antes por REFUNDED.
	_, err := e.uc.ChangeStatus(context.Background(), "s1", entity.SaleStatusCancelled)
	assert.ErrorIs(t, err, domain.ErrInvalidSaleStatusTransition)
}

func TestChangeStatus_ProductoBorradoNoBloqueaReembolso(t *testing.T) {
	e := newEnv()
	e.sales.sales["s1"] = &entity.Sale{
		ID:         "s1",
		CustomerID: "c1",
		Status:     entity.SaleStatusCompleted,
		Details: []*entity.SaleDetail{
			{ID: "d1", SaleID: "s1", Item: entity.ProductRef("ya-no-existe"), Quantity: 2, UnitPrice: d("5")},
		},
	}

	_, err := e.uc.ChangeStatus(context.Background(), "s1", entity.SaleStatusRefunded)
	assert.NoError(t, err, "si el producto ya no existe la restauración se omite en silencio")
	assert.Equal(t, entity.SaleStatusRefunded, e.sales.sales["s1"].Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Comprobante
// ──────────────────────────────────────────────────────────────────────────────

func TestReceipt_GeneraPDF(t *testing.T) {
	e := newEnv()
	e.sales.sales["s1"] = &entity.Sale{ID: "s1", CustomerID: "c1", Status: entity.SaleStatusCompleted}

	pdf, err := e.uc.Receipt(context.Background(), "s1")
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	require.NotNil(t, e.receipts.lastSale)
	assert.Equal(t, "s1", e.receipts.lastSale.ID)
}

func TestReceipt_VentaInexistente(t *testing.T) {
	e := newEnv()

	_, err := e.uc.Receipt(context.Background(), "nada")
	assert.ErrorIs(t, err, domain.ErrSaleNotFound)
}
