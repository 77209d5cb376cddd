// Package inventory implementa los ajustes manuales de stock con registro de
// auditoría (stock antes/después, motivo, notas).
package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/taller-pos-api/internal/application/dto"
	"github.com/jhoicas/taller-pos-api/internal/application/stock"
	"github.com/jhoicas/taller-pos-api/internal/domain"
	"github.com/jhoicas/taller-pos-api/internal/domain/entity"
	"github.com/jhoicas/taller-pos-api/internal/domain/repository"
)

// UseCase casos de uso de ajustes de inventario.
type UseCase struct {
	txRunner    TxRunner
	adjustments repository.InventoryAdjustmentRepository
	products    repository.ProductRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	adjustments repository.InventoryAdjustmentRepository,
	products repository.ProductRepository,
) *UseCase {
	return &UseCase{txRunner: txRunner, adjustments: adjustments, products: products}
}

func validReason(r entity.AdjustmentReason) bool {
	switch r {
	case entity.ReasonDamaged, entity.ReasonExpired, entity.ReasonTheft,
		entity.ReasonAuditCorrection, entity.ReasonSpilled, entity.ReasonOther:
		return true
	}
	return false
}

// Create registra un ajuste. El stock se muta bajo lock de fila y el ajuste
// guarda la foto antes/después; un OUT que dejaría stock negativo se rechaza.
func (uc *UseCase) Create(ctx context.Context, in dto.AdjustmentInput) (*dto.AdjustmentResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidAdjustment
	}
	if in.AdjustmentType != entity.AdjustmentIn && in.AdjustmentType != entity.AdjustmentOut {
		return nil, domain.ErrInvalidAdjustment
	}
	if !validReason(in.Reason) {
		return nil, domain.ErrInvalidAdjustment
	}

	product, err := uc.products.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ProductNotFound(in.ProductID)
	}

	adj := &entity.InventoryAdjustment{
		ID:             uuid.New().String(),
		ProductID:      in.ProductID,
		ProductName:    product.Name,
		AdjustmentType: in.AdjustmentType,
		Quantity:       in.Quantity,
		Reason:         in.Reason,
		Notes:          in.Notes,
		CreatedAt:      time.Now(),
	}

	err = uc.txRunner.RunAdjustment(ctx, func(
		adjustments repository.InventoryAdjustmentRepository,
		products repository.ProductRepository,
	) error {
		before, after, err := stock.Apply(products, in.ProductID, in.AdjustmentType, in.Quantity)
		if err != nil {
			return err
		}
		adj.StockBefore = before
		adj.StockAfter = after
		return adjustments.Create(adj)
	})
	if err != nil {
		return nil, err
	}

	resp := dto.FromAdjustment(adj)
	return &resp, nil
}

// GetByID devuelve un ajuste.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.AdjustmentResponse, error) {
	adj, err := uc.adjustments.GetByID(id)
	if err != nil {
		return nil, err
	}
	if adj == nil {
		return nil, domain.ErrAdjustmentNotFound
	}
	resp := dto.FromAdjustment(adj)
	return &resp, nil
}

// List lista ajustes con filtros y paginación.
func (uc *UseCase) List(ctx context.Context, req dto.AdjustmentListRequest) ([]dto.AdjustmentResponse, *dto.PageMeta, error) {
	page := req.DefaultPage()
	f := repository.AdjustmentFilters{
		ProductID: req.ProductID,
		Limit:     page.Limit,
		Offset:    page.Offset(),
	}
	if req.Reason != "" {
		r := entity.AdjustmentReason(req.Reason)
		f.Reason = &r
	}
	if t, err := time.Parse(time.RFC3339, req.FromDate); err == nil {
		f.FromDate = &t
	}
	if t, err := time.Parse(time.RFC3339, req.ToDate); err == nil {
		f.ToDate = &t
	}

	list, err := uc.adjustments.List(f)
	if err != nil {
		return nil, nil, err
	}
	total, err := uc.adjustments.Count(f)
	if err != nil {
		return nil, nil, err
	}
	meta := dto.NewPageMeta(total, page)
	return dto.FromAdjustmentList(list), &meta, nil
}
