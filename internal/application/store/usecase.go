// Package store implementa los datos del comercio (fila única).
package store

import (
	"context"
	"time"

	"github.com/jhoicas/taller-pos-api/internal/application/dto"
	"github.com/jhoicas/taller-pos-api/internal/domain/repository"
)

// UseCase casos de uso de los datos del comercio.
type UseCase struct {
	repo repository.StoreInfoRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.StoreInfoRepository) *UseCase {
	return &UseCase{repo: repo}
}

// Get devuelve los datos del comercio (se crean con defaults la primera vez).
func (uc *UseCase) Get(ctx context.Context) (*dto.StoreInfoResponse, error) {
	info, err := uc.repo.Get()
	if err != nil {
		return nil, err
	}
	resp := dto.FromStoreInfo(info)
	return &resp, nil
}

// Update edita los datos del comercio.
func (uc *UseCase) Update(ctx context.Context, in dto.StoreInfoInput) (*dto.StoreInfoResponse, error) {
	info, err := uc.repo.Get()
	if err != nil {
		return nil, err
	}
	if in.Name != "" {
		info.Name = in.Name
	}
	if in.RIF != "" {
		info.RIF = in.RIF
	}
	if in.Address != "" {
		info.Address = in.Address
	}
	if in.Phone != "" {
		info.Phone = in.Phone
	}
	if in.LogoURL != nil {
		info.LogoURL = in.LogoURL
	}
	info.UpdatedAt = time.Now()

	updated, err := uc.repo.Update(info)
	if err != nil {
		return nil, err
	}
	resp := dto.FromStoreInfo(updated)
	return &resp, nil
}
