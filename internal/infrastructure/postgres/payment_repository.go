package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/taller-pos-api/internal/domain/entity"
	"github.com/jhoicas/taller-pos-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo implementación del puerto PaymentRepository sobre PostgreSQL (usable con pool o tx).
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

// Create persiste un pago.
func (r *PaymentRepo) Create(p *entity.Payment) error {
	query := `
		INSERT INTO payments (id, order_id, sale_id, payment_method_id, amount_usd, exchange_rate,
			amount_ves, original_currency, payment_date, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Target.OrderID(), p.Target.SaleID(), p.PaymentMethodID, p.AmountUSD, p.ExchangeRate,
		p.AmountVES, p.OriginalCurrency, p.PaymentDate, p.Notes, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// CreateMany persiste varios pagos en la misma unidad de trabajo.
func (r *PaymentRepo) CreateMany(payments []*entity.Payment) error {
	for _, p := range payments {
		if err := r.Create(p); err != nil {
			return err
		}
	}
	return nil
}

const paymentSelect = `
	SELECT p.id, p.order_id, p.sale_id, p.payment_method_id, p.amount_usd, p.exchange_rate,
		p.amount_ves, p.original_currency, p.payment_date, p.notes, p.created_at, p.updated_at,
		m.id, m.name, m.currency, m.is_active
	FROM payments p
	JOIN payment_methods m ON m.id = p.payment_method_id`

func scanPayment(row pgx.Row) (*entity.Payment, error) {
	var p entity.Payment
	var m entity.PaymentMethod
	var orderID, saleID *string
	err := row.Scan(
		&p.ID, &orderID, &saleID, &p.PaymentMethodID, &p.AmountUSD, &p.ExchangeRate,
		&p.AmountVES, &p.OriginalCurrency, &p.PaymentDate, &p.Notes, &p.CreatedAt, &p.UpdatedAt,
		&m.ID, &m.Name, &m.Currency, &m.IsActive,
	)
	if err != nil {
		return nil, err
	}
	p.Target = entity.PaymentTargetFromColumns(orderID, saleID)
	p.PaymentMethod = &m
	return &p, nil
}

// GetByID obtiene un pago.
func (r *PaymentRepo) GetByID(id string) (*entity.Payment, error) {
	p, err := scanPayment(r.q.QueryRow(context.Background(),
		paymentSelect+` WHERE p.id = $1 AND p.deleted_at IS NULL`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return p, nil
}

func paymentWhere(f repository.PaymentFilters, args *[]any) string {
	where := ` WHERE p.deleted_at IS NULL`
	if f.OrderID != "" {
		*args = append(*args, f.OrderID)
		where += fmt.Sprintf(` AND p.order_id = $%d`, len(*args))
	}
	if f.SaleID != "" {
		*args = append(*args, f.SaleID)
		where += fmt.Sprintf(` AND p.sale_id = $%d`, len(*args))
	}
	if f.PaymentMethodID != "" {
		*args = append(*args, f.PaymentMethodID)
		where += fmt.Sprintf(` AND p.payment_method_id = $%d`, len(*args))
	}
	if f.FromDate != nil {
		*args = append(*args, *f.FromDate)
		where += fmt.Sprintf(` AND p.payment_date >= $%d`, len(*args))
	}
	if f.ToDate != nil {
		*args = append(*args, *f.ToDate)
		where += fmt.Sprintf(` AND p.payment_date <= $%d`, len(*args))
	}
	return where
}

// ListByTarget lista los pagos de una orden o venta.
func (r *PaymentRepo) ListByTarget(f repository.PaymentFilters) ([]*entity.Payment, error) {
	var args []any
	query := paymentSelect + paymentWhere(f, &args)
	args = append(args, f.Limit, f.Offset)
	query += fmt.Sprintf(` ORDER BY p.payment_date DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// CountByTarget cuenta los pagos de una orden o venta.
func (r *PaymentRepo) CountByTarget(f repository.PaymentFilters) (int, error) {
	var args []any
	query := `SELECT COUNT(*) FROM payments p` + paymentWhere(f, &args)
	var total int
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count payments: %w", err)
	}
	return total, nil
}

// SumByOrderID suma en USD los pagos vigentes de una orden.
func (r *PaymentRepo) SumByOrderID(orderID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(amount_usd), 0) FROM payments WHERE order_id = $1 AND deleted_at IS NULL`,
		orderID,
	).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum payments by order: %w", err)
	}
	return sum, nil
}

// SumBySaleID suma en USD los pagos vigentes de una venta.
func (r *PaymentRepo) SumBySaleID(saleID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(amount_usd), 0) FROM payments WHERE sale_id = $1 AND deleted_at IS NULL`,
		saleID,
	).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum payments by sale: %w", err)
	}
	return sum, nil
}

// LinkToSale re-enlaza los pagos de una orden hacia la venta derivada. Los
// pagos dejan de apuntar a la orden: el destino es uno solo.
func (r *PaymentRepo) LinkToSale(orderID, saleID string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE payments SET sale_id = $2, order_id = NULL, updated_at = now()
		 WHERE order_id = $1 AND deleted_at IS NULL`,
		orderID, saleID,
	)
	if err != nil {
		return fmt.Errorf("link payments to sale: %w", err)
	}
	return nil
}
