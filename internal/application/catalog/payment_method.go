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

// PaymentMethodUseCase casos de uso de métodos de pago.
type PaymentMethodUseCase struct {
	repo repository.PaymentMethodRepository
}

// NewPaymentMethodUseCase construye el caso de uso.
func NewPaymentMethodUseCase(repo repository.PaymentMethodRepository) *PaymentMethodUseCase {
	return &PaymentMethodUseCase{repo: repo}
}

// Create crea un método de pago. Si existe uno archivado con el mismo nombre
// lo revive; los pagos históricos siguen apuntando a la misma fila.
func (uc *PaymentMethodUseCase) Create(ctx context.Context, in dto.PaymentMethodInput) (*dto.PaymentMethodResponse, error) {
	if in.Currency != entity.CurrencyUSD && in.Currency != entity.CurrencyVES {
		return nil, domain.ErrInvalidPaymentAmount
	}
	existing, err := uc.repo.GetByName(in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.DeletedAt == nil {
			return nil, domain.ErrPaymentMethodAlreadyExists
		}
		if err := uc.repo.Restore(existing.ID); err != nil {
			return nil, err
		}
		existing.Currency = in.Currency
		existing.IsActive = in.IsActive == nil || *in.IsActive
		existing.DeletedAt = nil
		existing.UpdatedAt = time.Now()
		if err := uc.repo.Update(existing); err != nil {
			return nil, err
		}
		resp := dto.FromPaymentMethod(existing)
		return &resp, nil
	}

	now := time.Now()
	method := &entity.PaymentMethod{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Currency:  in.Currency,
		IsActive:  in.IsActive == nil || *in.IsActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(method); err != nil {
		return nil, err
	}
	resp := dto.FromPaymentMethod(method)
	return &resp, nil
}

// GetByID devuelve un método de pago.
func (uc *PaymentMethodUseCase) GetByID(ctx context.Context, id string) (*dto.PaymentMethodResponse, error) {
	method, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if method == nil {
		return nil, domain.PaymentMethodNotFound(id)
	}
	resp := dto.FromPaymentMethod(method)
	return &resp, nil
}

// List lista métodos de pago.
func (uc *PaymentMethodUseCase) List(ctx context.Context, search string, page dto.PageRequest) ([]dto.PaymentMethodResponse, *dto.PageMeta, error) {
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
	return dto.FromPaymentMethodList(list), &meta, nil
}

// Update edita un método de pago. Desactivarlo rechaza pagos nuevos sin
// afectar los ya registrados.
func (uc *PaymentMethodUseCase) Update(ctx context.Context, id string, in dto.PaymentMethodInput) (*dto.PaymentMethodResponse, error) {
	method, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if method == nil {
		return nil, domain.PaymentMethodNotFound(id)
	}
	if in.Name != "" && in.Name != method.Name {
		dup, err := uc.repo.GetByName(in.Name)
		if err != nil {
			return nil, err
		}
		if dup != nil && dup.ID != id && dup.DeletedAt == nil {
			return nil, domain.ErrPaymentMethodAlreadyExists
		}
		method.Name = in.Name
	}
	if in.Currency != "" {
		if in.Currency != entity.CurrencyUSD && in.Currency != entity.CurrencyVES {
			return nil, domain.ErrInvalidPaymentAmount
		}
		method.Currency = in.Currency
	}
	if in.IsActive != nil {
		method.IsActive = *in.IsActive
	}
	method.UpdatedAt = time.Now()
	if err := uc.repo.Update(method); err != nil {
		return nil, err
	}
	resp := dto.FromPaymentMethod(method)
	return &resp, nil
}

// Delete archiva un método de pago (soft delete).
func (uc *PaymentMethodUseCase) Delete(ctx context.Context, id string) error {
	method, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if method == nil {
		return domain.PaymentMethodNotFound(id)
	}
	return uc.repo.SoftDelete(id)
}
