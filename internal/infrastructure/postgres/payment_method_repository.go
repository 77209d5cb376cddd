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

var _ repository.PaymentMethodRepository = (*PaymentMethodRepo)(nil)

// PaymentMethodRepo implementación del puerto PaymentMethodRepository sobre PostgreSQL (usable con pool o tx).
type PaymentMethodRepo struct {
	q Querier
}

// NewPaymentMethodRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentMethodRepository(q Querier) *PaymentMethodRepo {
	return &PaymentMethodRepo{q: q}
}

// Create persiste un método de pago.
func (r *PaymentMethodRepo) Create(m *entity.PaymentMethod) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO payment_methods (id, name, currency, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		m.ID, m.Name, m.Currency, m.IsActive, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrPaymentMethodAlreadyExists
		}
		return fmt.Errorf("insert payment method: %w", err)
	}
	return nil
}

// GetByID obtiene un método de pago vigente.
func (r *PaymentMethodRepo) GetByID(id string) (*entity.PaymentMethod, error) {
	var m entity.PaymentMethod
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, currency, is_active, created_at, updated_at
		 FROM payment_methods WHERE id = $1 AND deleted_at IS NULL`, id,
	).Scan(&m.ID, &m.Name, &m.Currency, &m.IsActive, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment method: %w", err)
	}
	return &m, nil
}

// GetByName obtiene un método por nombre, incluidos los archivados, para la
// política de revive.
func (r *PaymentMethodRepo) GetByName(name string) (*entity.PaymentMethod, error) {
	var m entity.PaymentMethod
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, currency, is_active, created_at, updated_at, deleted_at
		 FROM payment_methods WHERE name = $1`, name,
	).Scan(&m.ID, &m.Name, &m.Currency, &m.IsActive, &m.CreatedAt, &m.UpdatedAt, &m.DeletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment method by name: %w", err)
	}
	return &m, nil
}

// GetBulkByIDs obtiene varios métodos vigentes de una vez (para venta rápida).
func (r *PaymentMethodRepo) GetBulkByIDs(ids []string) ([]*entity.PaymentMethod, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.q.Query(context.Background(),
		`SELECT id, name, currency, is_active, created_at, updated_at
		 FROM payment_methods WHERE id = ANY($1) AND deleted_at IS NULL`, ids)
	if err != nil {
		return nil, fmt.Errorf("bulk get payment methods: %w", err)
	}
	defer rows.Close()
	var list []*entity.PaymentMethod
	for rows.Next() {
		var m entity.PaymentMethod
		if err := rows.Scan(&m.ID, &m.Name, &m.Currency, &m.IsActive, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan payment method: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// List lista métodos de pago vigentes.
func (r *PaymentMethodRepo) List(f repository.ListFilters) ([]*entity.PaymentMethod, error) {
	var args []any
	query := `SELECT id, name, currency, is_active, created_at, updated_at FROM payment_methods WHERE deleted_at IS NULL`
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		query += fmt.Sprintf(` AND name ILIKE $%d`, len(args))
	}
	args = append(args, f.Limit, f.Offset)
	query += fmt.Sprintf(` ORDER BY name LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list payment methods: %w", err)
	}
	defer rows.Close()
	var list []*entity.PaymentMethod
	for rows.Next() {
		var m entity.PaymentMethod
		if err := rows.Scan(&m.ID, &m.Name, &m.Currency, &m.IsActive, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan payment method: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// Count cuenta métodos de pago vigentes.
func (r *PaymentMethodRepo) Count(f repository.ListFilters) (int, error) {
	var args []any
	query := `SELECT COUNT(*) FROM payment_methods WHERE deleted_at IS NULL`
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		query += fmt.Sprintf(` AND name ILIKE $%d`, len(args))
	}
	var total int
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count payment methods: %w", err)
	}
	return total, nil
}

// Update actualiza un método de pago.
func (r *PaymentMethodRepo) Update(m *entity.PaymentMethod) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE payment_methods SET name = $2, currency = $3, is_active = $4, updated_at = $5 WHERE id = $1`,
		m.ID, m.Name, m.Currency, m.IsActive, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrPaymentMethodAlreadyExists
		}
		return fmt.Errorf("update payment method: %w", err)
	}
	return nil
}

// SoftDelete archiva un método de pago.
func (r *PaymentMethodRepo) SoftDelete(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE payment_methods SET deleted_at = now(), updated_at = now() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("soft delete payment method: %w", err)
	}
	return nil
}

// Restore revive un método de pago archivado.
func (r *PaymentMethodRepo) Restore(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE payment_methods SET deleted_at = NULL, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("restore payment method: %w", err)
	}
	return nil
}
