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

var _ repository.ServiceRepository = (*ServiceRepo)(nil)

// ServiceRepo implementación del puerto ServiceRepository sobre PostgreSQL (usable con pool o tx).
type ServiceRepo struct {
	q Querier
}

// NewServiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewServiceRepository(q Querier) *ServiceRepo {
	return &ServiceRepo{q: q}
}

// Create persiste un servicio.
func (r *ServiceRepo) Create(s *entity.Service) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO services (id, name, description, price, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.ID, s.Name, s.Description, s.Price, s.Status, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrServiceAlreadyExists
		}
		return fmt.Errorf("insert service: %w", err)
	}
	return nil
}

// GetByID obtiene un servicio vigente.
func (r *ServiceRepo) GetByID(id string) (*entity.Service, error) {
	var s entity.Service
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, description, price, status, created_at, updated_at
		 FROM services WHERE id = $1 AND deleted_at IS NULL`, id,
	).Scan(&s.ID, &s.Name, &s.Description, &s.Price, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get service: %w", err)
	}
	return &s, nil
}

// GetByName obtiene un servicio por nombre, incluidos los archivados, para la
// política de revive.
func (r *ServiceRepo) GetByName(name string) (*entity.Service, error) {
	var s entity.Service
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, description, price, status, created_at, updated_at, deleted_at
		 FROM services WHERE name = $1`, name,
	).Scan(&s.ID, &s.Name, &s.Description, &s.Price, &s.Status, &s.CreatedAt, &s.UpdatedAt, &s.DeletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get service by name: %w", err)
	}
	return &s, nil
}

// List lista servicios vigentes.
func (r *ServiceRepo) List(f repository.ListFilters) ([]*entity.Service, error) {
	var args []any
	query := `SELECT id, name, description, price, status, created_at, updated_at FROM services WHERE deleted_at IS NULL`
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		query += fmt.Sprintf(` AND name ILIKE $%d`, len(args))
	}
	args = append(args, f.Limit, f.Offset)
	query += fmt.Sprintf(` ORDER BY name LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()
	var list []*entity.Service
	for rows.Next() {
		var s entity.Service
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.Price, &s.Status, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Count cuenta servicios vigentes.
func (r *ServiceRepo) Count(f repository.ListFilters) (int, error) {
	var args []any
	query := `SELECT COUNT(*) FROM services WHERE deleted_at IS NULL`
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		query += fmt.Sprintf(` AND name ILIKE $%d`, len(args))
	}
	var total int
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count services: %w", err)
	}
	return total, nil
}

// Update actualiza un servicio.
func (r *ServiceRepo) Update(s *entity.Service) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE services SET name = $2, description = $3, price = $4, status = $5, updated_at = $6 WHERE id = $1`,
		s.ID, s.Name, s.Description, s.Price, s.Status, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrServiceAlreadyExists
		}
		return fmt.Errorf("update service: %w", err)
	}
	return nil
}

// SoftDelete archiva un servicio.
func (r *ServiceRepo) SoftDelete(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE services SET deleted_at = now(), updated_at = now() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("soft delete service: %w", err)
	}
	return nil
}

// Restore revive un servicio archivado.
func (r *ServiceRepo) Restore(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE services SET deleted_at = NULL, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("restore service: %w", err)
	}
	return nil
}
