package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/taller-pos-api/internal/domain/entity"
	"github.com/jhoicas/taller-pos-api/internal/domain/repository"
)

var _ repository.StoreInfoRepository = (*StoreInfoRepo)(nil)

// StoreInfoRepo implementación del puerto StoreInfoRepository.
// La tabla store_info guarda una sola fila (singleton).
type StoreInfoRepo struct {
	q Querier
}

// NewStoreInfoRepository construye el adaptador.
func NewStoreInfoRepository(q Querier) *StoreInfoRepo {
	return &StoreInfoRepo{q: q}
}

// Get obtiene los datos del comercio, creando la fila con defaults si no existe.
func (r *StoreInfoRepo) Get() (*entity.StoreInfo, error) {
	var s entity.StoreInfo
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, rif, address, phone, logo_url, updated_at FROM store_info LIMIT 1`,
	).Scan(&s.ID, &s.Name, &s.RIF, &s.Address, &s.Phone, &s.LogoURL, &s.UpdatedAt)
	if err == nil {
		return &s, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("get store info: %w", err)
	}

	seed := &entity.StoreInfo{
		ID:        uuid.NewString(),
		Name:      "Mi Taller",
		RIF:       "",
		Address:   "",
		Phone:     "",
		UpdatedAt: time.Now(),
	}
	_, err = r.q.Exec(context.Background(),
		`INSERT INTO store_info (id, name, rif, address, phone, logo_url, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		seed.ID, seed.Name, seed.RIF, seed.Address, seed.Phone, seed.LogoURL, seed.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("seed store info: %w", err)
	}
	return seed, nil
}

// Update persiste los datos del comercio y devuelve el estado resultante.
func (r *StoreInfoRepo) Update(info *entity.StoreInfo) (*entity.StoreInfo, error) {
	info.UpdatedAt = time.Now()
	_, err := r.q.Exec(context.Background(),
		`UPDATE store_info SET name = $2, rif = $3, address = $4, phone = $5, logo_url = $6, updated_at = $7 WHERE id = $1`,
		info.ID, info.Name, info.RIF, info.Address, info.Phone, info.LogoURL, info.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("update store info: %w", err)
	}
	return info, nil
}
