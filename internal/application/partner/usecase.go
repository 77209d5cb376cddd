// Package partner implementa clientes y contactos de notificación.
package partner

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/taller-pos-api/internal/application/dto"
	"github.com/jhoicas/taller-pos-api/internal/domain"
	"github.com/jhoicas/taller-pos-api/internal/domain/entity"
	"github.com/jhoicas/taller-pos-api/internal/domain/repository"
)

// CustomerUseCase casos de uso de clientes.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create crea un cliente. El teléfono funciona como clave natural.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CustomerInput) (*dto.CustomerResponse, error) {
	if in.Phone != "" {
		existing, err := uc.repo.GetByPhone(in.Phone)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			resp := dto.FromCustomer(existing)
			return &resp, nil
		}
	}

	now := time.Now()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Phone:     in.Phone,
		Email:     in.Email,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(customer); err != nil {
		return nil, err
	}
	resp := dto.FromCustomer(customer)
	return &resp, nil
}

// GetByID devuelve un cliente.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.CustomerNotFound(id)
	}
	resp := dto.FromCustomer(customer)
	return &resp, nil
}

// List lista clientes con búsqueda y paginación.
func (uc *CustomerUseCase) List(ctx context.Context, search string, page dto.PageRequest) ([]dto.CustomerResponse, *dto.PageMeta, error) {
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
	return dto.FromCustomerList(list), &meta, nil
}

// Update edita un cliente.
func (uc *CustomerUseCase) Update(ctx context.Context, id string, in dto.CustomerInput) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.CustomerNotFound(id)
	}
	if in.Name != "" {
		customer.Name = in.Name
	}
	if in.Phone != "" {
		customer.Phone = in.Phone
	}
	if in.Email != nil {
		customer.Email = in.Email
	}
	if in.Address != nil {
		customer.Address = in.Address
	}
	customer.UpdatedAt = time.Now()
	if err := uc.repo.Update(customer); err != nil {
		return nil, err
	}
	resp := dto.FromCustomer(customer)
	return &resp, nil
}

// Delete archiva un cliente (soft delete). Sus órdenes y ventas quedan.
func (uc *CustomerUseCase) Delete(ctx context.Context, id string) error {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if customer == nil {
		return domain.CustomerNotFound(id)
	}
	return uc.repo.SoftDelete(id)
}

// ContactUseCase casos de uso de contactos de notificación.
type ContactUseCase struct {
	repo repository.NotificationContactRepository
}

// NewContactUseCase construye el caso de uso.
func NewContactUseCase(repo repository.NotificationContactRepository) *ContactUseCase {
	return &ContactUseCase{repo: repo}
}

// Create crea un contacto. Si existe uno archivado con el mismo teléfono lo
// revive con los datos nuevos.
func (uc *ContactUseCase) Create(ctx context.Context, in dto.ContactInput) (*dto.ContactResponse, error) {
	existing, err := uc.repo.GetByPhone(in.Phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.DeletedAt == nil {
			return nil, domain.ErrContactAlreadyExists
		}
		if err := uc.repo.Restore(existing.ID); err != nil {
			return nil, err
		}
		existing.Name = in.Name
		existing.Email = in.Email
		existing.IsActive = in.IsActive == nil || *in.IsActive
		existing.DeletedAt = nil
		existing.UpdatedAt = time.Now()
		if err := uc.repo.Update(existing); err != nil {
			return nil, err
		}
		resp := dto.FromContact(existing)
		return &resp, nil
	}

	now := time.Now()
	contact := &entity.NotificationContact{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Phone:     in.Phone,
		Email:     in.Email,
		IsActive:  in.IsActive == nil || *in.IsActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(contact); err != nil {
		return nil, err
	}
	resp := dto.FromContact(contact)
	return &resp, nil
}

// GetByID devuelve un contacto.
func (uc *ContactUseCase) GetByID(ctx context.Context, id string) (*dto.ContactResponse, error) {
	contact, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, domain.ErrContactNotFound
	}
	resp := dto.FromContact(contact)
	return &resp, nil
}

// List lista contactos.
func (uc *ContactUseCase) List(ctx context.Context, search string, page dto.PageRequest) ([]dto.ContactResponse, *dto.PageMeta, error) {
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
	return dto.FromContactList(list), &meta, nil
}

// Update edita un contacto.
func (uc *ContactUseCase) Update(ctx context.Context, id string, in dto.ContactInput) (*dto.ContactResponse, error) {
	contact, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, domain.ErrContactNotFound
	}
	if in.Name != "" {
		contact.Name = in.Name
	}
	if in.Phone != "" {
		contact.Phone = in.Phone
	}
	if in.Email != nil {
		contact.Email = in.Email
	}
	if in.IsActive != nil {
		contact.IsActive = *in.IsActive
	}
	contact.UpdatedAt = time.Now()
	if err := uc.repo.Update(contact); err != nil {
		return nil, err
	}
	resp := dto.FromContact(contact)
	return &resp, nil
}

// Delete archiva un contacto (soft delete).
func (uc *ContactUseCase) Delete(ctx context.Context, id string) error {
	contact, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if contact == nil {
		return domain.ErrContactNotFound
	}
	return uc.repo.SoftDelete(id)
}
