package repository

import (
	"time"

	"github.com/jhoicas/taller-pos-api/internal/domain/entity"
)

// AdjustmentFilters filtros de listado de ajustes de inventario.
type AdjustmentFilters struct {
	Search    string
	ProductID string
	Type      *entity.AdjustmentType
	Reason    *entity.AdjustmentReason
	FromDate  *time.Time
	ToDate    *time.Time
	Limit     int
	Offset    int
}

// InventoryAdjustmentRepository puerto de persistencia de ajustes manuales.
type InventoryAdjustmentRepository interface {
	Create(adjustment *entity.InventoryAdjustment) error
	GetByID(id string) (*entity.InventoryAdjustment, error)
	List(f AdjustmentFilters) ([]*entity.InventoryAdjustment, error)
	Count(f AdjustmentFilters) (int, error)
}
