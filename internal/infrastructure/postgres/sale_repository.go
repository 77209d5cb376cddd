package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/taller-pos-api/internal/domain"
	"github.com/jhoicas/taller-pos-api/internal/domain/entity"
	"github.com/jhoicas/taller-pos-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la venta y sus detalles en la misma unidad de trabajo.
// La violación del índice único sobre order_id se traduce al error de negocio
// correspondiente: es el respaldo contra dos derivaciones simultáneas.
func (r *SaleRepo) Create(s *entity.Sale) error {
	query := `
		INSERT INTO sales (id, customer_id, order_id, dollar_rate, total_usd, total_ves,
			status, payment_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.CustomerID, s.OrderID, s.DollarRate, s.TotalUSD, s.TotalVES,
		s.Status, s.PaymentStatus, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrOrderAlreadyHasSale
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	for _, d := range s.Details {
		if err := r.createDetail(d); err != nil {
			return err
		}
	}
	return nil
}

func (r *SaleRepo) createDetail(d *entity.SaleDetail) error {
	query := `
		INSERT INTO sale_details (id, sale_id, service_id, product_id, quantity, unit_price, subtotal, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		d.ID, d.SaleID, d.Item.ServiceID(), d.Item.ProductID(), d.Quantity,
		d.UnitPrice, d.Subtotal, d.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale detail: %w", err)
	}
	return nil
}

const saleSelect = `
	SELECT s.id, s.customer_id, s.order_id, s.dollar_rate, s.total_usd, s.total_ves,
		COALESCE((SELECT SUM(p.amount_usd) FROM payments p WHERE p.sale_id = s.id AND p.deleted_at IS NULL), 0),
		COALESCE((SELECT SUM(p.amount_ves) FROM payments p WHERE p.sale_id = s.id AND p.deleted_at IS NULL), 0),
		s.status, s.payment_status, s.created_at, s.updated_at,
		c.id, c.name, c.phone, c.email, c.address
	FROM sales s
	JOIN customers c ON c.id = s.customer_id`

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	var c entity.Customer
	err := row.Scan(
		&s.ID, &s.CustomerID, &s.OrderID, &s.DollarRate, &s.TotalUSD, &s.TotalVES,
		&s.TotalPaidUSD, &s.TotalPaidVES, &s.Status, &s.PaymentStatus, &s.CreatedAt, &s.UpdatedAt,
		&c.ID, &c.Name, &c.Phone, &c.Email, &c.Address,
	)
	if err != nil {
		return nil, err
	}
	s.Customer = &c
	return &s, nil
}

// GetByID obtiene una venta con sus detalles y totales pagados.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(context.Background(),
		saleSelect+` WHERE s.id = $1 AND s.deleted_at IS NULL`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	if err := r.loadDetails(s); err != nil {
		return nil, err
	}
	return s, nil
}

// GetByIDForUpdate bloquea la fila de la venta (SELECT FOR UPDATE) y luego la
// carga completa. Serializa pagos concurrentes contra la misma venta.
func (r *SaleRepo) GetByIDForUpdate(id string) (*entity.Sale, error) {
	var locked string
	err := r.q.QueryRow(context.Background(),
		`SELECT id FROM sales WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`, id,
	).Scan(&locked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock sale: %w", err)
	}
	return r.GetByID(id)
}

// GetByOrderID devuelve la venta derivada de una orden, nil si no hay.
func (r *SaleRepo) GetByOrderID(orderID string) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(context.Background(),
		saleSelect+` WHERE s.order_id = $1 AND s.deleted_at IS NULL`, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale by order: %w", err)
	}
	if err := r.loadDetails(s); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SaleRepo) loadDetails(s *entity.Sale) error {
	query := `
		SELECT d.id, d.sale_id, d.service_id, d.product_id, COALESCE(sv.name, p.name, ''),
			d.quantity, d.unit_price, d.subtotal, d.created_at
		FROM sale_details d
		LEFT JOIN services sv ON sv.id = d.service_id
		LEFT JOIN products p ON p.id = d.product_id
		WHERE d.sale_id = $1 AND d.deleted_at IS NULL ORDER BY d.created_at`
	rows, err := r.q.Query(context.Background(), query, s.ID)
	if err != nil {
		return fmt.Errorf("list sale details: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var d entity.SaleDetail
		var serviceID, productID *string
		if err := rows.Scan(&d.ID, &d.SaleID, &serviceID, &productID, &d.ItemName, &d.Quantity,
			&d.UnitPrice, &d.Subtotal, &d.CreatedAt); err != nil {
			return fmt.Errorf("scan sale detail: %w", err)
		}
		d.Item = entity.ItemRefFromColumns(serviceID, productID)
		s.Details = append(s.Details, &d)
	}
	return rows.Err()
}

func saleWhere(f repository.SaleFilters, args *[]any) string {
	where := ` WHERE s.deleted_at IS NULL`
	if f.Search != "" {
		*args = append(*args, "%"+f.Search+"%")
		where += fmt.Sprintf(` AND c.name ILIKE $%d`, len(*args))
	}
	if f.Status != nil {
		*args = append(*args, *f.Status)
		where += fmt.Sprintf(` AND s.status = $%d`, len(*args))
	}
	if f.OrderID != "" {
		*args = append(*args, f.OrderID)
		where += fmt.Sprintf(` AND s.order_id = $%d`, len(*args))
	}
	if f.FromDate != nil {
		*args = append(*args, *f.FromDate)
		where += fmt.Sprintf(` AND s.created_at >= $%d`, len(*args))
	}
	if f.ToDate != nil {
		*args = append(*args, *f.ToDate)
		where += fmt.Sprintf(` AND s.created_at <= $%d`, len(*args))
	}
	return where
}

// List lista ventas con filtros y paginación, sin cargar detalles.
func (r *SaleRepo) List(f repository.SaleFilters) ([]*entity.Sale, error) {
	var args []any
	query := saleSelect + saleWhere(f, &args)
	args = append(args, f.Limit, f.Offset)
	query += fmt.Sprintf(` ORDER BY s.created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Count cuenta ventas que cumplen los filtros.
func (r *SaleRepo) Count(f repository.SaleFilters) (int, error) {
	var args []any
	query := `SELECT COUNT(*) FROM sales s JOIN customers c ON c.id = s.customer_id` + saleWhere(f, &args)
	var total int
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count sales: %w", err)
	}
	return total, nil
}

// UpdateStatus actualiza el estado del ciclo de vida de la venta.
func (r *SaleRepo) UpdateStatus(id string, status entity.SaleStatus) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE sales SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update sale status: %w", err)
	}
	return nil
}

// UpdatePaymentStatus actualiza el estado de cobro de la venta.
func (r *SaleRepo) UpdatePaymentStatus(id string, status entity.PaymentStatus) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE sales SET payment_status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update sale payment status: %w", err)
	}
	return nil
}
