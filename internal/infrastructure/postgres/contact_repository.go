package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/taller-pos-api/internal/domain/entity"
	"github.com/jhoicas/taller-pos-api/internal/domain/repository"
)

var _ repository.NotificationContactRepository = (*ContactRepo)(nil)

// ContactRepo implementación del puerto NotificationContactRepository sobre PostgreSQL.
type ContactRepo struct {
	q Querier
}

// NewContactRepository construye el adaptador.
func NewContactRepository(q Querier) *ContactRepo {
	return &ContactRepo{q: q}
}

// Create persiste un contacto de aviso.
func (r *ContactRepo) Create(c *entity.NotificationContact) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO notification_contacts (id, name, phone, email, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.Name, c.Phone, c.Email, c.IsActive, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert contact: %w", err)
	}
	return nil
}

// GetByID obtiene un contacto vigente.
func (r *ContactRepo) GetByID(id string) (*entity.NotificationContact, error) {
	var c entity.NotificationContact
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, phone, email, is_active, created_at, updated_at
		 FROM notification_contacts WHERE id = $1 AND deleted_at IS NULL`, id,
	).Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get contact: %w", err)
	}
	return &c, nil
}

// GetByPhone busca por teléfono INCLUYENDO archivados, para poder
// revivir el registro al recrearlo con la misma clave natural.
func (r *ContactRepo) GetByPhone(phone string) (*entity.NotificationContact, error) {
	var c entity.NotificationContact
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, phone, email, is_active, created_at, updated_at, deleted_at
		 FROM notification_contacts WHERE phone = $1`, phone,
	).Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.IsActive, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get contact by phone: %w", err)
	}
	return &c, nil
}

// List lista contactos vigentes.
func (r *ContactRepo) List(f repository.ListFilters) ([]*entity.NotificationContact, error) {
	var args []any
	query := `SELECT id, name, phone, email, is_active, created_at, updated_at FROM notification_contacts WHERE deleted_at IS NULL`
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		query += fmt.Sprintf(` AND (name ILIKE $%d OR phone ILIKE $%d)`, n, n)
	}
	args = append(args, f.Limit, f.Offset)
	query += fmt.Sprintf(` ORDER BY name LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()
	var list []*entity.NotificationContact
	for rows.Next() {
		var c entity.NotificationContact
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Count cuenta contactos vigentes.
func (r *ContactRepo) Count(f repository.ListFilters) (int, error) {
	var args []any
	query := `SELECT COUNT(*) FROM notification_contacts WHERE deleted_at IS NULL`
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		query += fmt.Sprintf(` AND (name ILIKE $%d OR phone ILIKE $%d)`, n, n)
	}
	var total int
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count contacts: %w", err)
	}
	return total, nil
}

// Update actualiza un contacto.
func (r *ContactRepo) Update(c *entity.NotificationContact) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE notification_contacts SET name = $2, phone = $3, email = $4, is_active = $5, updated_at = $6 WHERE id = $1`,
		c.ID, c.Name, c.Phone, c.Email, c.IsActive, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update contact: %w", err)
	}
	return nil
}

// SoftDelete archiva un contacto.
func (r *ContactRepo) SoftDelete(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE notification_contacts SET deleted_at = now(), updated_at = now() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("soft delete contact: %w", err)
	}
	return nil
}

// Restore revive un contacto archivado.
func (r *ContactRepo) Restore(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE notification_contacts SET deleted_at = NULL, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("restore contact: %w", err)
	}
	return nil
}
