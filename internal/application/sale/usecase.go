// Package sale implementa las ventas del punto de venta: derivación desde
// órdenes completadas y pagadas, venta rápida de mostrador con pagos que
// cubren el total, reembolsos con restauración de stock y comprobante PDF.
package sale

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/taller-pos-api/internal/application/dto"
	"github.com/jhoicas/taller-pos-api/internal/application/stock"
	"github.com/jhoicas/taller-pos-api/internal/domain"
	"github.com/jhoicas/taller-pos-api/internal/domain/entity"
	"github.com/jhoicas/taller-pos-api/internal/domain/repository"
	"github.com/jhoicas/taller-pos-api/pkg/logger"
)

// paymentsTolerance margen de 1 centavo USD al cuadrar los pagos declarados
// de una venta rápida contra su total.
var paymentsTolerance = decimal.NewFromFloat(0.01)

// UseCase casos de uso de ventas.
type UseCase struct {
	txRunner  TxRunner
	sales     repository.SaleRepository
	orders    repository.OrderRepository
	customers repository.CustomerRepository
	services  repository.ServiceRepository
	products  repository.ProductRepository
	methods   repository.PaymentMethodRepository
	storeInfo repository.StoreInfoRepository
	rates     RateResolver
	receipts  ReceiptGenerator
	log       *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	sales repository.SaleRepository,
	orders repository.OrderRepository,
	customers repository.CustomerRepository,
	services repository.ServiceRepository,
	products repository.ProductRepository,
	methods repository.PaymentMethodRepository,
	storeInfo repository.StoreInfoRepository,
	rates RateResolver,
	receipts ReceiptGenerator,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:  txRunner,
		sales:     sales,
		orders:    orders,
		customers: customers,
		services:  services,
		products:  products,
		methods:   methods,
		storeInfo: storeInfo,
		rates:     rates,
		receipts:  receipts,
		log:       log,
	}
}

// CreateFromOrder deriva la venta de una orden completada y pagada. El lock
// sobre la fila de la orden y el índice único sobre sales.order_id cierran la
// carrera de dos derivaciones simultáneas. Los pagos de la orden se
// re-enlazan a la venta.
func (uc *UseCase) CreateFromOrder(ctx context.Context, orderID string) (*entity.Sale, error) {
	rate, err := uc.rates.GetCurrentRate(ctx)
	if err != nil {
		return nil, err
	}

	var created *entity.Sale
	err = uc.txRunner.RunSale(ctx, func(
		sales repository.SaleRepository,
		products repository.ProductRepository,
		payments repository.PaymentRepository,
		orders repository.OrderRepository,
	) error {
		o, err := orders.GetByIDForUpdate(orderID)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.OrderNotFound(orderID)
		}
		if o.Status != entity.OrderStatusCompleted || o.PaymentStatus != entity.PaymentStatusPaid {
			return domain.ErrInvalidOrderForSale
		}
		existing, err := sales.GetByOrderID(orderID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrOrderAlreadyHasSale
		}

		now := time.Now()
		saleID := uuid.New().String()
		oid := o.ID
		totalUSD := decimal.Zero
		details := make([]*entity.SaleDetail, 0, len(o.Details))
		for _, d := range o.Details {
			sub := d.Subtotal().Round(2)
			totalUSD = totalUSD.Add(sub)
			details = append(details, &entity.SaleDetail{
				ID:        uuid.New().String(),
				SaleID:    saleID,
				Item:      d.Item,
				Quantity:  d.Quantity,
				UnitPrice: d.PriceAtTime,
				Subtotal:  sub,
				CreatedAt: now,
			})
		}
		totalUSD = totalUSD.Round(2)

		created = &entity.Sale{
			ID:            saleID,
			CustomerID:    o.CustomerID,
			Customer:      o.Customer,
			OrderID:       &oid,
			Details:       details,
			DollarRate:    rate.Rate,
			TotalUSD:      totalUSD,
			TotalVES:      totalUSD.Mul(rate.Rate).Round(2),
			Status:        entity.SaleStatusCompleted,
			PaymentStatus: entity.PaymentStatusPaid,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := sales.Create(created); err != nil {
			return err
		}
		return payments.LinkToSale(o.ID, saleID)
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// DeriveFromOrder versión para el boundary HTTP de CreateFromOrder.
func (uc *UseCase) DeriveFromOrder(ctx context.Context, orderID string) (*dto.SaleResponse, error) {
	s, err := uc.CreateFromOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	resp := dto.FromSale(s)
	return &resp, nil
}

// quickLine línea de venta rápida validada contra el catálogo.
type quickLine struct {
	item  entity.ItemRef
	name  string
	qty   int
	price decimal.Decimal
}

func (uc *UseCase) resolveQuickLine(in dto.SaleLineInput) (quickLine, error) {
	if (in.ServiceID == nil) == (in.ProductID == nil) {
		return quickLine{}, domain.ErrInvalidOrderDetail
	}
	if in.Quantity <= 0 {
		return quickLine{}, domain.ErrInvalidOrderDetail
	}
	if in.UnitPrice != nil && in.UnitPrice.IsNegative() {
		return quickLine{}, domain.ErrInvalidOrderDetail
	}

	if in.ServiceID != nil {
		svc, err := uc.services.GetByID(*in.ServiceID)
		if err != nil {
			return quickLine{}, err
		}
		if svc == nil {
			return quickLine{}, domain.ServiceNotFound(*in.ServiceID)
		}
		if !svc.Status {
			return quickLine{}, domain.ServiceInactive(svc.Name)
		}
		price := svc.Price
		if in.UnitPrice != nil {
			price = *in.UnitPrice
		}
		return quickLine{item: entity.ServiceRef(svc.ID), name: svc.Name, qty: in.Quantity, price: price}, nil
	}

	product, err := uc.products.GetByID(*in.ProductID)
	if err != nil {
		return quickLine{}, err
	}
	if product == nil {
		return quickLine{}, domain.ProductNotFound(*in.ProductID)
	}
	price := product.CostPrice
	if in.UnitPrice != nil {
		price = *in.UnitPrice
	}
	return quickLine{item: entity.ProductRef(product.ID), name: product.Name, qty: in.Quantity, price: price}, nil
}

// QuickSale registra una venta de mostrador: líneas más pagos que deben
// cuadrar con el total dentro de la tolerancia. Stock, venta y pagos se
// persisten en una sola transacción; la venta nace COMPLETED y PAID.
func (uc *UseCase) QuickSale(ctx context.Context, in dto.QuickSaleInput) (*dto.SaleResponse, error) {
	customer, err := uc.customers.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.CustomerNotFound(in.CustomerID)
	}
	if len(in.Details) == 0 {
		return nil, domain.ErrInvalidOrderDetail
	}

	lines := make([]quickLine, 0, len(in.Details))
	for _, d := range in.Details {
		line, err := uc.resolveQuickLine(d)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	// Validar métodos de pago en bloque.
	methodIDs := make([]string, 0, len(in.Payments))
	for _, p := range in.Payments {
		methodIDs = append(methodIDs, p.PaymentMethodID)
	}
	methods, err := uc.methods.GetBulkByIDs(methodIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.PaymentMethod, len(methods))
	for _, m := range methods {
		byID[m.ID] = m
	}
	for _, p := range in.Payments {
		m, ok := byID[p.PaymentMethodID]
		if !ok {
			return nil, domain.PaymentMethodNotFound(p.PaymentMethodID)
		}
		if !m.IsActive {
			return nil, domain.ErrPaymentMethodInactive
		}
	}

	rate, err := uc.rates.GetCurrentRate(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	saleID := uuid.New().String()
	totalUSD := decimal.Zero
	details := make([]*entity.SaleDetail, 0, len(lines))
	for _, line := range lines {
		sub := line.price.Mul(decimal.NewFromInt(int64(line.qty))).Round(2)
		totalUSD = totalUSD.Add(sub)
		details = append(details, &entity.SaleDetail{
			ID:        uuid.New().String(),
			SaleID:    saleID,
			Item:      line.item,
			ItemName:  line.name,
			Quantity:  line.qty,
			UnitPrice: line.price,
			Subtotal:  sub,
			CreatedAt: now,
		})
	}
	totalUSD = totalUSD.Round(2)

	// Normalizar pagos y cuadrarlos contra el total.
	paymentsTotal := decimal.Zero
	salePayments := make([]*entity.Payment, 0, len(in.Payments))
	for _, p := range in.Payments {
		if (p.AmountUSD == nil) == (p.AmountVES == nil) {
			return nil, domain.ErrInvalidPaymentAmount
		}
		var amountUSD, amountVES decimal.Decimal
		var original entity.Currency
		if p.AmountUSD != nil {
			original = entity.CurrencyUSD
			amountUSD = p.AmountUSD.Round(2)
			amountVES = amountUSD.Mul(rate.Rate).Round(2)
		} else {
			original = entity.CurrencyVES
			amountVES = p.AmountVES.Round(2)
			amountUSD = amountVES.Div(rate.Rate).Round(2)
		}
		if !amountUSD.IsPositive() {
			return nil, domain.ErrInvalidPaymentAmount
		}
		paymentsTotal = paymentsTotal.Add(amountUSD)
		salePayments = append(salePayments, &entity.Payment{
			ID:               uuid.New().String(),
			Target:           entity.SaleTarget(saleID),
			PaymentMethodID:  p.PaymentMethodID,
			AmountUSD:        amountUSD,
			ExchangeRate:     rate.Rate,
			AmountVES:        amountVES,
			OriginalCurrency: original,
			PaymentDate:      now,
			Notes:            p.Notes,
			CreatedAt:        now,
			UpdatedAt:        now,
		})
	}
	if paymentsTotal.Sub(totalUSD).Abs().GreaterThan(paymentsTolerance) {
		return nil, domain.ErrSalePaymentsTotalMismatch
	}

	newSale := &entity.Sale{
		ID:            saleID,
		CustomerID:    in.CustomerID,
		Customer:      customer,
		Details:       details,
		DollarRate:    rate.Rate,
		TotalUSD:      totalUSD,
		TotalVES:      totalUSD.Mul(rate.Rate).Round(2),
		Status:        entity.SaleStatusCompleted,
		PaymentStatus: entity.PaymentStatusPaid,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = uc.txRunner.RunSale(ctx, func(
		sales repository.SaleRepository,
		products repository.ProductRepository,
		payments repository.PaymentRepository,
		orders repository.OrderRepository,
	) error {
		var deductions []stock.Deduction
		for _, line := range lines {
			if line.item.IsProduct() {
				deductions = append(deductions, stock.Deduction{ProductID: line.item.ID, Quantity: line.qty})
			}
		}
		if err := stock.DeductMany(products, deductions); err != nil {
			return err
		}
		if err := sales.Create(newSale); err != nil {
			return err
		}
		return payments.CreateMany(salePayments)
	})
	if err != nil {
		return nil, err
	}

	return uc.GetByID(ctx, saleID)
}

// GetByID devuelve la venta con sus detalles y totales pagados.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.SaleResponse, error) {
	s, err := uc.sales.GetByID(id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.SaleNotFound(id)
	}
	resp := dto.FromSale(s)
	return &resp, nil
}

// List lista ventas con filtros y paginación.
func (uc *UseCase) List(ctx context.Context, req dto.SaleListRequest) ([]dto.SaleResponse, *dto.PageMeta, error) {
	page := req.DefaultPage()
	f := repository.SaleFilters{
		Limit:  page.Limit,
		Offset: page.Offset(),
	}
	if req.Status != "" {
		st := entity.SaleStatus(req.Status)
		f.Status = &st
	}
	if t, err := time.Parse(time.RFC3339, req.FromDate); err == nil {
		f.FromDate = &t
	}
	if t, err := time.Parse(time.RFC3339, req.ToDate); err == nil {
		f.ToDate = &t
	}

	list, err := uc.sales.List(f)
	if err != nil {
		return nil, nil, err
	}
	total, err := uc.sales.Count(f)
	if err != nil {
		return nil, nil, err
	}
	meta := dto.NewPageMeta(total, page)
	return dto.FromSaleList(list), &meta, nil
}

// ChangeStatus aplica una transición del ciclo de vida de la venta. Pasar a
// REFUNDED devuelve al inventario el stock de las líneas de producto.
func (uc *UseCase) ChangeStatus(ctx context.Context, id string, target entity.SaleStatus) (*dto.SaleResponse, error) {
	s, err := uc.sales.GetByID(id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.SaleNotFound(id)
	}
	if !s.CanTransitionTo(target) {
		return nil, domain.InvalidSaleStatusTransition(string(s.Status), string(target))
	}

	err = uc.txRunner.RunSale(ctx, func(
		sales repository.SaleRepository,
		products repository.ProductRepository,
		payments repository.PaymentRepository,
		orders repository.OrderRepository,
	) error {
		if target == entity.SaleStatusRefunded {
			for _, d := range s.Details {
				if d.Item.IsProduct() {
					if err := stock.Restore(products, d.Item.ID, d.Quantity); err != nil {
						return err
					}
				}
			}
		}
		return sales.UpdateStatus(id, target)
	})
	if err != nil {
		return nil, err
	}

	return uc.GetByID(ctx, id)
}

// Receipt genera el comprobante PDF de una venta.
func (uc *UseCase) Receipt(ctx context.Context, id string) ([]byte, error) {
	s, err := uc.sales.GetByID(id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.SaleNotFound(id)
	}
	store, err := uc.storeInfo.Get()
	if err != nil {
		return nil, err
	}
	return uc.receipts.Generate(s, store)
}
