// Package catalog implementa el CRUD del catálogo del taller: categorías,
// servicios, productos y métodos de pago. Los borrados son lógicos y crear de
// nuevo con el mismo nombre revive la fila archivada, preservando el
// histórico que la referencia.
package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/taller-pos-api/internal/application/dto"
	"github.com/jhoicas/taller-pos-api/internal/domain"
	"github.com/jhoicas/taller-pos-api/internal/domain/entity"
	"github.com/jhoicas/taller-pos-api/internal/domain/repository"
)

// CategoryUseCase casos de uso de categorías.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// Create crea una categoría. Si existe una archivada con el mismo nombre la
// revive con los datos nuevos.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CategoryInput) (*dto.CategoryResponse, error) {
	existing, err := uc.repo.GetByName(in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.DeletedAt == nil {
			return nil, domain.ErrCategoryAlreadyExists
		}
		if err := uc.repo.Restore(existing.ID); err != nil {
			return nil, err
		}
		existing.Description = in.Description
		existing.DeletedAt = nil
		existing.UpdatedAt = time.Now()
		if err := uc.repo.Update(existing); err != nil {
			return nil, err
		}
		resp := dto.FromCategory(existing)
		return &resp, nil
	}

	now := time.Now()
	cat := &entity.Category{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(cat); err != nil {
		return nil, err
	}
	resp := dto.FromCategory(cat)
	return &resp, nil
}

// GetByID devuelve una categoría.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	cat, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, domain.ErrCategoryNotFound
	}
	resp := dto.FromCategory(cat)
	return &resp, nil
}

// List lista categorías con búsqueda y paginación.
func (uc *CategoryUseCase) List(ctx context.Context, search string, page dto.PageRequest) ([]dto.CategoryResponse, *dto.PageMeta, error) {
	page = page.DefaultPage()
	f := repository.ListFilters{Search: search, Limit: page.Limit, Offset: page.Offset()}
	list, err := uc.repo.List(f)
	if err != nil {
		return nil, nil, err
	}
	total, err := uc.repo.Count(f)
	if err != nil {
		return nil, nil, err
	}
	meta := dto.NewPageMeta(total, page)
	return dto.FromCategoryList(list), &meta, nil
}

// Update edita una categoría.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.CategoryInput) (*dto.CategoryResponse, error) {
	cat, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, domain.ErrCategoryNotFound
	}
	if in.Name != "" && in.Name != cat.Name {
		dup, err := uc.repo.GetByName(in.Name)
		if err != nil {
			return nil, err
		}
		if dup != nil && dup.ID != id && dup.DeletedAt == nil {
			return nil, domain.ErrCategoryAlreadyExists
		}
		cat.Name = in.Name
	}
	if in.Description != nil {
		cat.Description = in.Description
	}
	cat.UpdatedAt = time.Now()
	if err := uc.repo.Update(cat); err != nil {
		return nil, err
	}
	resp := dto.FromCategory(cat)
	return &resp, nil
}

// Delete archiva una categoría (soft delete).
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	cat, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if cat == nil {
		return domain.ErrCategoryNotFound
	}
	return uc.repo.SoftDelete(id)
}
