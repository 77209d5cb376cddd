// Package payment implementa el libro de pagos multi-moneda contra órdenes y
// ventas: conversión USD/VES a la tasa del momento, tope con tolerancia de
// redondeo, reversos y la derivación de la venta cuando un pago completa el
// cobro de una orden terminada.
package payment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/taller-pos-api/internal/application/dto"
	"github.com/jhoicas/taller-pos-api/internal/domain"
	"github.com/jhoicas/taller-pos-api/internal/domain/entity"
	"github.com/jhoicas/taller-pos-api/internal/domain/repository"
	"github.com/jhoicas/taller-pos-api/pkg/logger"
)

// roundingTolerance margen de 1 centavo USD para comparar sumas de pagos
// contra totales: absorbe el residuo de convertir VES->USD con redondeo.
var roundingTolerance = decimal.NewFromFloat(0.01)

// UseCase casos de uso de pagos.
type UseCase struct {
	txRunner TxRunner
	payments repository.PaymentRepository
	methods  repository.PaymentMethodRepository
	rates    RateResolver
	log      *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	payments repository.PaymentRepository,
	methods repository.PaymentMethodRepository,
	rates RateResolver,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner: txRunner,
		payments: payments,
		methods:  methods,
		rates:    rates,
		log:      log,
	}
}

// conversion montos del pago ya normalizados a ambas monedas.
type conversion struct {
	amountUSD decimal.Decimal
	amountVES decimal.Decimal
	rate      decimal.Decimal
	original  entity.Currency
}

// convert normaliza el monto declarado a ambas monedas a la tasa dada.
// Exactamente uno de los montos debe venir, distinto de cero. Un monto
// negativo es un reverso y exige notas.
func convert(in dto.PaymentCreateInput, rate decimal.Decimal) (conversion, error) {
	if (in.AmountUSD == nil) == (in.AmountVES == nil) {
		return conversion{}, domain.ErrInvalidPaymentAmount
	}

	var c conversion
	c.rate = rate
	if in.AmountUSD != nil {
		c.original = entity.CurrencyUSD
		c.amountUSD = in.AmountUSD.Round(2)
		c.amountVES = c.amountUSD.Mul(rate).Round(2)
	} else {
		c.original = entity.CurrencyVES
		c.amountVES = in.AmountVES.Round(2)
		c.amountUSD = c.amountVES.Div(rate).Round(2)
	}

	if c.amountUSD.IsZero() {
		return conversion{}, domain.ErrInvalidPaymentAmount
	}
	if c.amountUSD.IsNegative() && (in.Notes == nil || *in.Notes == "") {
		return conversion{}, domain.ErrReversalRequiresNotes
	}
	return c, nil
}

// fullyPaid indica si la suma de pagos cubre el total dentro de la tolerancia.
func fullyPaid(paid, total decimal.Decimal) bool {
	return paid.IsPositive() && paid.GreaterThanOrEqual(total.Sub(roundingTolerance))
}

// CreateForOrder registra un pago contra una orden. Todo el check-then-act
// corre bajo el lock de la fila de la orden; si el pago completa el cobro de
// una orden ya terminada, la venta se deriva dentro de la misma transacción y
// los pagos de la orden se re-enlazan a ella.
func (uc *UseCase) CreateForOrder(ctx context.Context, orderID string, in dto.PaymentCreateInput) (*dto.PaymentRegisteredResponse, error) {
	method, err := uc.methods.GetByID(in.PaymentMethodID)
	if err != nil {
		return nil, err
	}
	if method == nil {
		return nil, domain.PaymentMethodNotFound(in.PaymentMethodID)
	}
	if !method.IsActive {
		return nil, domain.ErrPaymentMethodInactive
	}

	rate, err := uc.rates.GetCurrentRate(ctx)
	if err != nil {
		return nil, err
	}
	conv, err := convert(in, rate.Rate)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	p := &entity.Payment{
		ID:               uuid.New().String(),
		Target:           entity.OrderTarget(orderID),
		PaymentMethodID:  method.ID,
		PaymentMethod:    method,
		AmountUSD:        conv.amountUSD,
		ExchangeRate:     conv.rate,
		AmountVES:        conv.amountVES,
		OriginalCurrency: conv.original,
		PaymentDate:      now,
		Notes:            in.Notes,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	var result dto.PaymentRegisteredResponse
	err = uc.txRunner.RunPayment(ctx, func(
		payments repository.PaymentRepository,
		orders repository.OrderRepository,
		sales repository.SaleRepository,
	) error {
		o, err := orders.GetByIDForUpdate(orderID)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.OrderNotFound(orderID)
		}
		if o.PaymentStatus == entity.PaymentStatusPaid && !p.IsReversal() {
			return domain.ErrOrderAlreadyPaid
		}

		paid, err := payments.SumByOrderID(orderID)
		if err != nil {
			return err
		}
		newTotal := paid.Add(conv.amountUSD)

		// Los reversos quedan exentos del tope: corrigen hacia abajo.
		if !p.IsReversal() && newTotal.GreaterThan(o.TotalUSD.Add(roundingTolerance)) {
			return domain.ErrPaymentExceedsOrderTotal
		}

		if err := payments.Create(p); err != nil {
			return err
		}

		covered := fullyPaid(newTotal, o.TotalUSD)
		result.FullyPaid = covered

		switch {
		case covered:
			if err := orders.UpdatePaymentStatus(orderID, entity.PaymentStatusPaid); err != nil {
				return err
			}
			if o.Status == entity.OrderStatusCompleted {
				sale, err := uc.deriveSale(payments, sales, o, conv.rate, now)
				if err != nil {
					return err
				}
				if sale != nil {
					p.Target = entity.SaleTarget(sale.ID)
					sr := dto.FromSale(sale)
					result.Sale = &sr
				}
			}
		case o.PaymentStatus == entity.PaymentStatusPaid:
			// Un reverso dejó la orden por debajo del total cubierto.
			if err := orders.UpdatePaymentStatus(orderID, entity.PaymentStatusPending); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Payment = dto.FromPayment(p)
	return &result, nil
}

// deriveSale materializa la venta de una orden completada y pagada dentro de
// la transacción del pago. Si la venta ya existe solo re-enlaza los pagos.
// El índice único sobre sales.order_id respalda contra la carrera de dos
// pagos simultáneos.
func (uc *UseCase) deriveSale(
	payments repository.PaymentRepository,
	sales repository.SaleRepository,
	o *entity.Order,
	rate decimal.Decimal,
	now time.Time,
) (*entity.Sale, error) {
	existing, err := sales.GetByOrderID(o.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, payments.LinkToSale(o.ID, existing.ID)
	}

	saleID := uuid.New().String()
	orderID := o.ID
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

	sale := &entity.Sale{
		ID:            saleID,
		CustomerID:    o.CustomerID,
		Customer:      o.Customer,
		OrderID:       &orderID,
		Details:       details,
		DollarRate:    rate,
		TotalUSD:      totalUSD,
		TotalVES:      totalUSD.Mul(rate).Round(2),
		Status:        entity.SaleStatusCompleted,
		PaymentStatus: entity.PaymentStatusPaid,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := sales.Create(sale); err != nil {
		return nil, err
	}
	return sale, payments.LinkToSale(o.ID, saleID)
}

// CreateForSale registra un pago directo contra una venta, bajo el lock de la
// fila de la venta.
func (uc *UseCase) CreateForSale(ctx context.Context, saleID string, in dto.PaymentCreateInput) (*dto.PaymentRegisteredResponse, error) {
	method, err := uc.methods.GetByID(in.PaymentMethodID)
	if err != nil {
		return nil, err
	}
	if method == nil {
		return nil, domain.PaymentMethodNotFound(in.PaymentMethodID)
	}
	if !method.IsActive {
		return nil, domain.ErrPaymentMethodInactive
	}

	rate, err := uc.rates.GetCurrentRate(ctx)
	if err != nil {
		return nil, err
	}
	conv, err := convert(in, rate.Rate)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	p := &entity.Payment{
		ID:               uuid.New().String(),
		Target:           entity.SaleTarget(saleID),
		PaymentMethodID:  method.ID,
		PaymentMethod:    method,
		AmountUSD:        conv.amountUSD,
		ExchangeRate:     conv.rate,
		AmountVES:        conv.amountVES,
		OriginalCurrency: conv.original,
		PaymentDate:      now,
		Notes:            in.Notes,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	var result dto.PaymentRegisteredResponse
	err = uc.txRunner.RunPayment(ctx, func(
		payments repository.PaymentRepository,
		orders repository.OrderRepository,
		sales repository.SaleRepository,
	) error {
		s, err := sales.GetByIDForUpdate(saleID)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.SaleNotFound(saleID)
		}
		if !s.AcceptsPayments() {
			return domain.ErrSaleNotPayable
		}
		if s.PaymentStatus == entity.PaymentStatusPaid && !p.IsReversal() {
			return domain.ErrSaleAlreadyPaid
		}

		paid, err := payments.SumBySaleID(saleID)
		if err != nil {
			return err
		}
		newTotal := paid.Add(conv.amountUSD)

		if !p.IsReversal() && newTotal.GreaterThan(s.TotalUSD.Add(roundingTolerance)) {
			return domain.ErrPaymentExceedsSaleTotal
		}

		if err := payments.Create(p); err != nil {
			return err
		}

		covered := fullyPaid(newTotal, s.TotalUSD)
		result.FullyPaid = covered
		switch {
		case covered && s.PaymentStatus != entity.PaymentStatusPaid:
			return sales.UpdatePaymentStatus(saleID, entity.PaymentStatusPaid)
		case !covered && s.PaymentStatus == entity.PaymentStatusPaid:
			return sales.UpdatePaymentStatus(saleID, entity.PaymentStatusPending)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Payment = dto.FromPayment(p)
	return &result, nil
}

// GetByID devuelve un pago.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.PaymentResponse, error) {
	p, err := uc.payments.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.PaymentNotFound(id)
	}
	resp := dto.FromPayment(p)
	return &resp, nil
}

// List lista los pagos de una orden o de una venta (exactamente una).
func (uc *UseCase) List(ctx context.Context, req dto.PaymentListRequest) ([]dto.PaymentResponse, *dto.PageMeta, error) {
	if (req.OrderID == "") == (req.SaleID == "") {
		return nil, nil, domain.ErrInvalidPaymentTarget
	}
	page := req.DefaultPage()
	f := repository.PaymentFilters{
		OrderID:         req.OrderID,
		SaleID:          req.SaleID,
		PaymentMethodID: req.MethodID,
		Limit:           page.Limit,
		Offset:          page.Offset(),
	}
	list, err := uc.payments.ListByTarget(f)
	if err != nil {
		return nil, nil, err
	}
	total, err := uc.payments.CountByTarget(f)
	if err != nil {
		return nil, nil, err
	}
	meta := dto.NewPageMeta(total, page)
	return dto.FromPaymentList(list), &meta, nil
}
