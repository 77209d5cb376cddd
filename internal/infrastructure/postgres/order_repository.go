package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/taller-pos-api/internal/domain/entity"
	"github.com/jhoicas/taller-pos-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste una nueva orden.
func (r *OrderRepo) Create(o *entity.Order) error {
	query := `
		INSERT INTO orders (id, customer_id, vehicle_plate, vehicle_model, status, payment_status,
			dollar_rate, total_usd, total_ves, started_at, completed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		o.ID, o.CustomerID, o.VehiclePlate, o.VehicleModel, o.Status, o.PaymentStatus,
		o.DollarRate, o.TotalUSD, o.TotalVES, o.StartedAt, o.CompletedAt, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// orderSelect columnas de la orden más el cliente y los totales pagados,
// calculados en el momento desde los pagos vigentes. Los pagos re-enlazados a
// la venta derivada siguen contando para la orden de origen.
const orderSelect = `
	SELECT o.id, o.customer_id, o.vehicle_plate, o.vehicle_model, o.status, o.payment_status,
		o.dollar_rate, o.total_usd, o.total_ves,
		COALESCE((SELECT SUM(p.amount_usd) FROM payments p
			WHERE (p.order_id = o.id OR p.sale_id IN (SELECT s.id FROM sales s WHERE s.order_id = o.id))
			AND p.deleted_at IS NULL), 0),
		COALESCE((SELECT SUM(p.amount_ves) FROM payments p
			WHERE (p.order_id = o.id OR p.sale_id IN (SELECT s.id FROM sales s WHERE s.order_id = o.id))
			AND p.deleted_at IS NULL), 0),
		o.started_at, o.completed_at, o.created_at, o.updated_at,
		c.id, c.name, c.phone, c.email, c.address
	FROM orders o
	JOIN customers c ON c.id = o.customer_id`

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	var c entity.Customer
	err := row.Scan(
		&o.ID, &o.CustomerID, &o.VehiclePlate, &o.VehicleModel, &o.Status, &o.PaymentStatus,
		&o.DollarRate, &o.TotalUSD, &o.TotalVES, &o.TotalPaidUSD, &o.TotalPaidVES,
		&o.StartedAt, &o.CompletedAt, &o.CreatedAt, &o.UpdatedAt,
		&c.ID, &c.Name, &c.Phone, &c.Email, &c.Address,
	)
	if err != nil {
		return nil, err
	}
	o.Customer = &c
	return &o, nil
}

// GetByID obtiene una orden con sus detalles vigentes y totales pagados.
// Devuelve nil, nil si no existe o está archivada.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(context.Background(),
		orderSelect+` WHERE o.id = $1 AND o.deleted_at IS NULL`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if err := r.loadDetails(o); err != nil {
		return nil, err
	}
	return o, nil
}

// GetByIDForUpdate bloquea la fila de la orden (SELECT FOR UPDATE) y luego
// carga cliente, detalles y totales pagados. El lock serializa el
// check-then-act de pagos y derivación de venta.
func (r *OrderRepo) GetByIDForUpdate(id string) (*entity.Order, error) {
	var locked string
	err := r.q.QueryRow(context.Background(),
		`SELECT id FROM orders WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`, id,
	).Scan(&locked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock order: %w", err)
	}
	return r.GetByID(id)
}

func (r *OrderRepo) loadDetails(o *entity.Order) error {
	query := `
		SELECT id, order_id, service_id, product_id, quantity, price_at_time, created_at, updated_at
		FROM order_details
		WHERE order_id = $1 AND deleted_at IS NULL
		ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, o.ID)
	if err != nil {
		return fmt.Errorf("list order details: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var d entity.OrderDetail
		var serviceID, productID *string
		if err := rows.Scan(&d.ID, &d.OrderID, &serviceID, &productID, &d.Quantity,
			&d.PriceAtTime, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return fmt.Errorf("scan order detail: %w", err)
		}
		d.Item = entity.ItemRefFromColumns(serviceID, productID)
		o.Details = append(o.Details, &d)
	}
	return rows.Err()
}

func orderWhere(f repository.OrderFilters, args *[]any) string {
	where := ` WHERE o.deleted_at IS NULL`
	if f.Search != "" {
		*args = append(*args, "%"+f.Search+"%")
		n := len(*args)
		where += fmt.Sprintf(` AND (o.vehicle_plate ILIKE $%d OR o.vehicle_model ILIKE $%d OR c.name ILIKE $%d)`, n, n, n)
	}
	if f.Status != nil {
		*args = append(*args, *f.Status)
		where += fmt.Sprintf(` AND o.status = $%d`, len(*args))
	}
	if f.FromDate != nil {
		*args = append(*args, *f.FromDate)
		where += fmt.Sprintf(` AND o.created_at >= $%d`, len(*args))
	}
	if f.ToDate != nil {
		*args = append(*args, *f.ToDate)
		where += fmt.Sprintf(` AND o.created_at <= $%d`, len(*args))
	}
	return where
}

// List lista órdenes con filtros y paginación, sin cargar detalles.
func (r *OrderRepo) List(f repository.OrderFilters) ([]*entity.Order, error) {
	var args []any
	query := orderSelect + orderWhere(f, &args)
	args = append(args, f.Limit, f.Offset)
	query += fmt.Sprintf(` ORDER BY o.created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// Count cuenta órdenes que cumplen los filtros.
func (r *OrderRepo) Count(f repository.OrderFilters) (int, error) {
	var args []any
	query := `SELECT COUNT(*) FROM orders o JOIN customers c ON c.id = o.customer_id` + orderWhere(f, &args)
	var total int
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return total, nil
}

// UpdateStatus actualiza el estado del ciclo de vida y sus marcas temporales.
func (r *OrderRepo) UpdateStatus(id string, status entity.OrderStatus, startedAt, completedAt *time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE orders SET status = $2, started_at = $3, completed_at = $4, updated_at = now() WHERE id = $1`,
		id, status, startedAt, completedAt,
	)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return nil
}

// UpdatePaymentStatus actualiza el estado de cobro.
func (r *OrderRepo) UpdatePaymentStatus(id string, status entity.PaymentStatus) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE orders SET payment_status = $2, updated_at = now() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("update order payment status: %w", err)
	}
	return nil
}

// UpdateTotals actualiza los totales de la orden.
func (r *OrderRepo) UpdateTotals(id string, totalUSD, totalVES decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE orders SET total_usd = $2, total_ves = $3, updated_at = now() WHERE id = $1`,
		id, totalUSD, totalVES,
	)
	if err != nil {
		return fmt.Errorf("update order totals: %w", err)
	}
	return nil
}

// SoftDelete archiva la orden.
func (r *OrderRepo) SoftDelete(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE orders SET deleted_at = now(), updated_at = now() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("soft delete order: %w", err)
	}
	return nil
}

var _ repository.OrderDetailRepository = (*OrderDetailRepo)(nil)

// OrderDetailRepo implementación del puerto OrderDetailRepository sobre PostgreSQL.
type OrderDetailRepo struct {
	q Querier
}

// NewOrderDetailRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderDetailRepository(q Querier) *OrderDetailRepo {
	return &OrderDetailRepo{q: q}
}

// Create persiste una línea de orden.
func (r *OrderDetailRepo) Create(d *entity.OrderDetail) error {
	query := `
		INSERT INTO order_details (id, order_id, service_id, product_id, quantity, price_at_time, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		d.ID, d.OrderID, d.Item.ServiceID(), d.Item.ProductID(), d.Quantity,
		d.PriceAtTime, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order detail: %w", err)
	}
	return nil
}

// CreateMany persiste varias líneas en la misma unidad de trabajo.
func (r *OrderDetailRepo) CreateMany(details []*entity.OrderDetail) error {
	for _, d := range details {
		if err := r.Create(d); err != nil {
			return err
		}
	}
	return nil
}

// GetByID obtiene una línea (incluye archivadas, el caso de uso decide).
func (r *OrderDetailRepo) GetByID(id string) (*entity.OrderDetail, error) {
	query := `
		SELECT id, order_id, service_id, product_id, quantity, price_at_time, created_at, updated_at, deleted_at
		FROM order_details WHERE id = $1`
	var d entity.OrderDetail
	var serviceID, productID *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&d.ID, &d.OrderID, &serviceID, &productID, &d.Quantity,
		&d.PriceAtTime, &d.CreatedAt, &d.UpdatedAt, &d.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order detail: %w", err)
	}
	d.Item = entity.ItemRefFromColumns(serviceID, productID)
	return &d, nil
}

// ListByOrderID devuelve las líneas vigentes de una orden.
func (r *OrderDetailRepo) ListByOrderID(orderID string) ([]*entity.OrderDetail, error) {
	query := `
		SELECT id, order_id, service_id, product_id, quantity, price_at_time, created_at, updated_at
		FROM order_details WHERE order_id = $1 AND deleted_at IS NULL ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order details: %w", err)
	}
	defer rows.Close()
	var list []*entity.OrderDetail
	for rows.Next() {
		var d entity.OrderDetail
		var serviceID, productID *string
		if err := rows.Scan(&d.ID, &d.OrderID, &serviceID, &productID, &d.Quantity,
			&d.PriceAtTime, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan order detail: %w", err)
		}
		d.Item = entity.ItemRefFromColumns(serviceID, productID)
		list = append(list, &d)
	}
	return list, rows.Err()
}

// SoftDelete archiva una línea.
func (r *OrderDetailRepo) SoftDelete(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE order_details SET deleted_at = now(), updated_at = now() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("soft delete order detail: %w", err)
	}
	return nil
}

// SoftDeleteByOrderID archiva todas las líneas vigentes de una orden.
func (r *OrderDetailRepo) SoftDeleteByOrderID(orderID string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE order_details SET deleted_at = now(), updated_at = now() WHERE order_id = $1 AND deleted_at IS NULL`, orderID)
	if err != nil {
		return fmt.Errorf("soft delete order details: %w", err)
	}
	return nil
}
