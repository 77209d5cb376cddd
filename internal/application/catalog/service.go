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

// ServiceUseCase casos de uso de servicios del taller.
type ServiceUseCase struct {
	repo repository.ServiceRepository
}

// NewServiceUseCase construye el caso de uso.
func NewServiceUseCase(repo repository.ServiceRepository) *ServiceUseCase {
	return &ServiceUseCase{repo: repo}
}

// Create crea un servicio. Si existe uno archivado con el mismo nombre lo
// revive con los datos nuevos.
func (uc *ServiceUseCase) Create(ctx context.Context, in dto.ServiceInput) (*dto.ServiceResponse, error) {
	if in.Price.IsNegative() {
		return nil, domain.ErrInvalidOrderDetail
	}
	existing, err := uc.repo.GetByName(in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.DeletedAt == nil {
			return nil, domain.ErrServiceAlreadyExists
		}
		if err := uc.repo.Restore(existing.ID); err != nil {
			return nil, err
		}
		existing.Description = in.Description
		existing.Price = in.Price
		existing.Status = in.Status == nil || *in.Status
		existing.DeletedAt = nil
		existing.UpdatedAt = time.Now()
		if err := uc.repo.Update(existing); err != nil {
			return nil, err
		}
		resp := dto.FromService(existing)
		return &resp, nil
	}

	now := time.Now()
	svc := &entity.Service{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Status:      in.Status == nil || *in.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(svc); err != nil {
		return nil, err
	}
	resp := dto.FromService(svc)
	return &resp, nil
}

// GetByID devuelve un servicio.
func (uc *ServiceUseCase) GetByID(ctx context.Context, id string) (*dto.ServiceResponse, error) {
	svc, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, domain.ServiceNotFound(id)
	}
	resp := dto.FromService(svc)
	return &resp, nil
}

// List lista servicios con búsqueda y paginación.
func (uc *ServiceUseCase) List(ctx context.Context, search string, page dto.PageRequest) ([]dto.ServiceResponse, *dto.PageMeta, error) {
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
	return dto.FromServiceList(list), &meta, nil
}

// Update edita un servicio. Desactivarlo impide agregarlo a órdenes nuevas
// sin tocar el histórico.
func (uc *ServiceUseCase) Update(ctx context.Context, id string, in dto.ServiceInput) (*dto.ServiceResponse, error) {
	svc, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, domain.ServiceNotFound(id)
	}
	if in.Name != "" && in.Name != svc.Name {
		dup, err := uc.repo.GetByName(in.Name)
		if err != nil {
			return nil, err
		}
		if dup != nil && dup.ID != id && dup.DeletedAt == nil {
			return nil, domain.ErrServiceAlreadyExists
		}
		svc.Name = in.Name
	}
	if in.Description != nil {
		svc.Description = in.Description
	}
	if !in.Price.IsZero() || in.Price.IsNegative() {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidOrderDetail
		}
		svc.Price = in.Price
	}
	if in.Status != nil {
		svc.Status = *in.Status
	}
	svc.UpdatedAt = time.Now()
	if err := uc.repo.Update(svc); err != nil {
		return nil, err
	}
	resp := dto.FromService(svc)
	return &resp, nil
}

// Delete archiva un servicio (soft delete). Las líneas históricas que lo
// referencian quedan intactas.
func (uc *ServiceUseCase) Delete(ctx context.Context, id string) error {
	svc, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if svc == nil {
		return domain.ServiceNotFound(id)
	}
	return uc.repo.SoftDelete(id)
}
