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

// ProductUseCase casos de uso CRUD de productos. El stock solo se muta vía
// consumo en líneas de orden/venta o ajustes de inventario; Update no lo toca.
type ProductUseCase struct {
	repo       repository.ProductRepository
	categories repository.CategoryRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categories repository.CategoryRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, categories: categories}
}

func validUnit(u entity.UnitType) bool {
	switch u {
	case entity.UnitLiters, entity.UnitMilliliters, entity.UnitKilograms,
		entity.UnitGrams, entity.UnitUnits, entity.UnitBoxes, entity.UnitBottles:
		return true
	}
	return false
}

// Create crea un producto. Si existe uno archivado con el mismo nombre lo
// revive con los datos nuevos (incluido el stock inicial declarado).
func (uc *ProductUseCase) Create(ctx context.Context, in dto.ProductInput) (*dto.ProductResponse, error) {
	if !validUnit(in.Unit) || in.Stock < 0 || in.MinStock < 0 || in.CostPrice.IsNegative() {
		return nil, domain.ErrInvalidOrderDetail
	}
	cat, err := uc.categories.GetByID(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, domain.ErrCategoryNotFound
	}

	existing, err := uc.repo.GetByName(in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.DeletedAt == nil {
			return nil, domain.ErrProductAlreadyExists
		}
		if err := uc.repo.Restore(existing.ID); err != nil {
			return nil, err
		}
		existing.CategoryID = in.CategoryID
		existing.Description = in.Description
		existing.Unit = in.Unit
		existing.Stock = in.Stock
		existing.MinStock = in.MinStock
		existing.CostPrice = in.CostPrice
		existing.DeletedAt = nil
		existing.UpdatedAt = time.Now()
		if err := uc.repo.Update(existing); err != nil {
			return nil, err
		}
		if err := uc.repo.UpdateStock(existing.ID, in.Stock); err != nil {
			return nil, err
		}
		resp := dto.FromProduct(existing)
		return &resp, nil
	}

	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		CategoryID:  in.CategoryID,
		Name:        in.Name,
		Description: in.Description,
		Unit:        in.Unit,
		Stock:       in.Stock,
		MinStock:    in.MinStock,
		CostPrice:   in.CostPrice,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	resp := dto.FromProduct(product)
	return &resp, nil
}

// GetByID devuelve un producto.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ProductNotFound(id)
	}
	resp := dto.FromProduct(product)
	return &resp, nil
}

// List lista productos con filtros y paginación.
func (uc *ProductUseCase) List(ctx context.Context, req dto.ProductListRequest) ([]dto.ProductResponse, *dto.PageMeta, error) {
	page := req.DefaultPage()
	f := repository.ProductFilters{
		Search:     req.Search,
		CategoryID: req.CategoryID,
		LowStock:   req.LowStock,
		Limit:      page.Limit,
		Offset:     page.Offset(),
	}
	list, err := uc.repo.List(f)
	if err != nil {
		return nil, nil, err
	}
	total, err := uc.repo.Count(f)
	if err != nil {
		return nil, nil, err
	}
	meta := dto.NewPageMeta(total, page)
	return dto.FromProductList(list), &meta, nil
}

// Update edita un producto sin tocar su stock.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.ProductInput) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ProductNotFound(id)
	}
	if in.Name != "" && in.Name != product.Name {
		dup, err := uc.repo.GetByName(in.Name)
		if err != nil {
			return nil, err
		}
		if dup != nil && dup.ID != id && dup.DeletedAt == nil {
			return nil, domain.ErrProductAlreadyExists
		}
		product.Name = in.Name
	}
	if in.CategoryID != "" && in.CategoryID != product.CategoryID {
		cat, err := uc.categories.GetByID(in.CategoryID)
		if err != nil {
			return nil, err
		}
		if cat == nil {
			return nil, domain.ErrCategoryNotFound
		}
		product.CategoryID = in.CategoryID
	}
	if in.Description != nil {
		product.Description = in.Description
	}
	if in.Unit != "" {
		if !validUnit(in.Unit) {
			return nil, domain.ErrInvalidOrderDetail
		}
		product.Unit = in.Unit
	}
	if in.MinStock >= 0 {
		product.MinStock = in.MinStock
	}
	if !in.CostPrice.IsNegative() {
		product.CostPrice = in.CostPrice
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	resp := dto.FromProduct(product)
	return &resp, nil
}

// Delete archiva un producto (soft delete).
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ProductNotFound(id)
	}
	return uc.repo.SoftDelete(id)
}
