// Package order implementa el ciclo de vida de las órdenes de trabajo del
// taller: intake, líneas de servicio/producto, transiciones de estado y
// disparo de la venta cuando la orden queda completada y pagada.
package order

import (
	"context"
	"errors"
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

// UseCase casos de uso de órdenes de trabajo.
type UseCase struct {
	txRunner    TxRunner
	orders      repository.OrderRepository
	details     repository.OrderDetailRepository
	customers   repository.CustomerRepository
	services    repository.ServiceRepository
	products    repository.ProductRepository
	rates       RateResolver
	saleCreator SaleCreator
	log         *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	orders repository.OrderRepository,
	details repository.OrderDetailRepository,
	customers repository.CustomerRepository,
	services repository.ServiceRepository,
	products repository.ProductRepository,
	rates RateResolver,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:  txRunner,
		orders:    orders,
		details:   details,
		customers: customers,
		services:  services,
		products:  products,
		rates:     rates,
		log:       log,
	}
}

// SetSaleCreator inyecta el derivador de ventas. Setter y no argumento del
// constructor porque ventas también depende de órdenes.
func (uc *UseCase) SetSaleCreator(sc SaleCreator) {
	uc.saleCreator = sc
}

// resolvedLine línea validada contra el catálogo, con el precio capturado.
type resolvedLine struct {
	item  entity.ItemRef
	qty   int
	price decimal.Decimal
}

// resolveLine valida una línea entrante: exactamente una referencia, cantidad
// positiva, el servicio activo o el producto existente. Si no viene precio se
// toma el vigente del catálogo.
func (uc *UseCase) resolveLine(in dto.OrderLineInput) (resolvedLine, error) {
	if (in.ServiceID == nil) == (in.ProductID == nil) {
		return resolvedLine{}, domain.ErrInvalidOrderDetail
	}
	if in.Quantity <= 0 {
		return resolvedLine{}, domain.ErrInvalidOrderDetail
	}
	if in.PriceAtTime != nil && in.PriceAtTime.IsNegative() {
		return resolvedLine{}, domain.ErrInvalidOrderDetail
	}

	if in.ServiceID != nil {
		svc, err := uc.services.GetByID(*in.ServiceID)
		if err != nil {
			return resolvedLine{}, err
		}
		if svc == nil {
			return resolvedLine{}, domain.ServiceNotFound(*in.ServiceID)
		}
		if !svc.Status {
			return resolvedLine{}, domain.ServiceInactive(svc.Name)
		}
		price := svc.Price
		if in.PriceAtTime != nil {
			price = *in.PriceAtTime
		}
		return resolvedLine{item: entity.ServiceRef(svc.ID), qty: in.Quantity, price: price}, nil
	}

	product, err := uc.products.GetByID(*in.ProductID)
	if err != nil {
		return resolvedLine{}, err
	}
	if product == nil {
		return resolvedLine{}, domain.ProductNotFound(*in.ProductID)
	}
	price := product.CostPrice
	if in.PriceAtTime != nil {
		price = *in.PriceAtTime
	}
	return resolvedLine{item: entity.ProductRef(product.ID), qty: in.Quantity, price: price}, nil
}

// Create registra una orden con sus líneas. La tasa se captura al crear y
// queda fija para la vida de la orden; el stock de las líneas de producto se
// descuenta en la misma transacción.
func (uc *UseCase) Create(ctx context.Context, in dto.OrderCreateInput) (*dto.OrderResponse, error) {
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

	lines := make([]resolvedLine, 0, len(in.Details))
	for _, d := range in.Details {
		line, err := uc.resolveLine(d)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	rate, err := uc.rates.GetCurrentRate(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	orderID := uuid.New().String()
	totalUSD := decimal.Zero
	details := make([]*entity.OrderDetail, 0, len(lines))
	for _, line := range lines {
		d := &entity.OrderDetail{
			ID:          uuid.New().String(),
			OrderID:     orderID,
			Item:        line.item,
			Quantity:    line.qty,
			PriceAtTime: line.price,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		totalUSD = totalUSD.Add(d.Subtotal())
		details = append(details, d)
	}
	totalUSD = totalUSD.Round(2)

	newOrder := &entity.Order{
		ID:            orderID,
		CustomerID:    in.CustomerID,
		VehiclePlate:  in.VehiclePlate,
		VehicleModel:  in.VehicleModel,
		Status:        entity.OrderStatusPending,
		PaymentStatus: entity.PaymentStatusPending,
		DollarRate:    rate.Rate,
		TotalUSD:      totalUSD,
		TotalVES:      totalUSD.Mul(rate.Rate).Round(2),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = uc.txRunner.Run(ctx, func(
		orders repository.OrderRepository,
		detailRepo repository.OrderDetailRepository,
		products repository.ProductRepository,
	) error {
		if err := orders.Create(newOrder); err != nil {
			return err
		}
		if err := detailRepo.CreateMany(details); err != nil {
			return err
		}
		for _, line := range lines {
			if line.item.IsProduct() {
				if err := stock.DeductOne(products, line.item.ID, line.qty); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return uc.GetByID(ctx, orderID)
}

// GetByID devuelve la orden con sus detalles y totales pagados.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.OrderResponse, error) {
	o, err := uc.orders.GetByID(id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.OrderNotFound(id)
	}
	resp := dto.FromOrder(o)
	return &resp, nil
}

// List lista órdenes con filtros y paginación.
func (uc *UseCase) List(ctx context.Context, req dto.OrderListRequest) ([]dto.OrderResponse, *dto.PageMeta, error) {
	page := req.DefaultPage()
	f := repository.OrderFilters{
		Search: req.Search,
		Limit:  page.Limit,
		Offset: page.Offset(),
	}
	if req.Status != "" {
		st := entity.OrderStatus(req.Status)
		f.Status = &st
	}
	if t, err := time.Parse(time.RFC3339, req.FromDate); err == nil {
		f.FromDate = &t
	}
	if t, err := time.Parse(time.RFC3339, req.ToDate); err == nil {
		f.ToDate = &t
	}

	orders, err := uc.orders.List(f)
	if err != nil {
		return nil, nil, err
	}
	total, err := uc.orders.Count(f)
	if err != nil {
		return nil, nil, err
	}
	meta := dto.NewPageMeta(total, page)
	return dto.FromOrderList(orders), &meta, nil
}

// ChangeStatus aplica una transición del ciclo de vida. Marca startedAt al
// pasar a IN_PROGRESS y completedAt al pasar a COMPLETED. Si la orden queda
// completada y ya estaba pagada, dispara la derivación de venta.
func (uc *UseCase) ChangeStatus(ctx context.Context, id string, target entity.OrderStatus) (*dto.OrderResponse, error) {
	o, err := uc.orders.GetByID(id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.OrderNotFound(id)
	}
	if !o.CanTransitionTo(target) {
		return nil, domain.InvalidOrderStatusTransition(string(o.Status), string(target))
	}

	now := time.Now()
	startedAt := o.StartedAt
	completedAt := o.CompletedAt
	switch target {
	case entity.OrderStatusInProgress:
		startedAt = &now
	case entity.OrderStatusCompleted:
		completedAt = &now
	}

	if err := uc.orders.UpdateStatus(id, target, startedAt, completedAt); err != nil {
		return nil, err
	}

	if target == entity.OrderStatusCompleted && o.PaymentStatus == entity.PaymentStatusPaid {
		uc.triggerSale(ctx, id)
	}

	return uc.GetByID(ctx, id)
}

// UpdatePaymentStatus cambia el estado de cobro sin registrar un pago (p.ej.
// corrección manual). Si la orden queda PAID y ya estaba completada, dispara
// la derivación de venta.
func (uc *UseCase) UpdatePaymentStatus(ctx context.Context, id string, status entity.PaymentStatus) (*dto.OrderResponse, error) {
	if status != entity.PaymentStatusPending && status != entity.PaymentStatusPaid {
		return nil, domain.ErrInvalidPaymentStatus
	}
	o, err := uc.orders.GetByID(id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.OrderNotFound(id)
	}
	if err := uc.orders.UpdatePaymentStatus(id, status); err != nil {
		return nil, err
	}

	if status == entity.PaymentStatusPaid && o.Status == entity.OrderStatusCompleted {
		uc.triggerSale(ctx, id)
	}

	return uc.GetByID(ctx, id)
}

// AddDetail agrega una línea a una orden aún en curso, descuenta stock si es
// producto y recalcula los totales a la tasa fijada de la orden.
func (uc *UseCase) AddDetail(ctx context.Context, orderID string, in dto.OrderLineInput) (*dto.OrderResponse, error) {
	o, err := uc.orders.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.OrderNotFound(orderID)
	}
	if o.Status == entity.OrderStatusCompleted || o.Status == entity.OrderStatusCancelled {
		return nil, domain.ErrInvalidOrderDetail
	}

	line, err := uc.resolveLine(in)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	detail := &entity.OrderDetail{
		ID:          uuid.New().String(),
		OrderID:     orderID,
		Item:        line.item,
		Quantity:    line.qty,
		PriceAtTime: line.price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = uc.txRunner.Run(ctx, func(
		orders repository.OrderRepository,
		detailRepo repository.OrderDetailRepository,
		products repository.ProductRepository,
	) error {
		if err := detailRepo.Create(detail); err != nil {
			return err
		}
		if line.item.IsProduct() {
			if err := stock.DeductOne(products, line.item.ID, line.qty); err != nil {
				return err
			}
		}
		return uc.recalcTotals(orders, detailRepo, o)
	})
	if err != nil {
		return nil, err
	}

	return uc.GetByID(ctx, orderID)
}

// RemoveDetail quita una línea de una orden aún en curso, restaura stock si
// era producto y recalcula los totales.
func (uc *UseCase) RemoveDetail(ctx context.Context, orderID, detailID string) (*dto.OrderResponse, error) {
	o, err := uc.orders.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.OrderNotFound(orderID)
	}
	if o.Status == entity.OrderStatusCompleted || o.Status == entity.OrderStatusCancelled {
		return nil, domain.ErrInvalidOrderDetail
	}

	detail, err := uc.details.GetByID(detailID)
	if err != nil {
		return nil, err
	}
	if detail == nil || detail.OrderID != orderID || detail.DeletedAt != nil {
		return nil, domain.OrderDetailNotFound(detailID)
	}

	err = uc.txRunner.Run(ctx, func(
		orders repository.OrderRepository,
		detailRepo repository.OrderDetailRepository,
		products repository.ProductRepository,
	) error {
		if err := detailRepo.SoftDelete(detailID); err != nil {
			return err
		}
		if detail.Item.IsProduct() {
			if err := stock.Restore(products, detail.Item.ID, detail.Quantity); err != nil {
				return err
			}
		}
		return uc.recalcTotals(orders, detailRepo, o)
	})
	if err != nil {
		return nil, err
	}

	return uc.GetByID(ctx, orderID)
}

// Delete archiva la orden y sus líneas (soft delete). No restaura stock: los
// productos consumidos por el trabajo ya salieron del inventario.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	o, err := uc.orders.GetByID(id)
	if err != nil {
		return err
	}
	if o == nil {
		return domain.OrderNotFound(id)
	}

	return uc.txRunner.Run(ctx, func(
		orders repository.OrderRepository,
		detailRepo repository.OrderDetailRepository,
		products repository.ProductRepository,
	) error {
		if err := detailRepo.SoftDeleteByOrderID(id); err != nil {
			return err
		}
		return orders.SoftDelete(id)
	})
}

// recalcTotals recalcula los totales de la orden desde sus líneas vigentes a
// la tasa fijada al crearla.
func (uc *UseCase) recalcTotals(
	orders repository.OrderRepository,
	details repository.OrderDetailRepository,
	o *entity.Order,
) error {
	current, err := details.ListByOrderID(o.ID)
	if err != nil {
		return err
	}
	totalUSD := decimal.Zero
	for _, d := range current {
		totalUSD = totalUSD.Add(d.Subtotal())
	}
	totalUSD = totalUSD.Round(2)
	return orders.UpdateTotals(o.ID, totalUSD, totalUSD.Mul(o.DollarRate).Round(2))
}

// triggerSale deriva la venta de una orden completada y pagada. Best effort:
// la venta también se deriva al registrar el pago que completa el cobro, así
// que un fallo aquí solo se registra.
func (uc *UseCase) triggerSale(ctx context.Context, orderID string) {
	if uc.saleCreator == nil {
		return
	}
	if _, err := uc.saleCreator.CreateFromOrder(ctx, orderID); err != nil {
		if errors.Is(err, domain.ErrOrderAlreadyHasSale) {
			return
		}
		uc.log.Warn().Err(err).Str("order_id", orderID).Msg("no se pudo derivar la venta de la orden")
	}
}
