package dto

import (
	"time"

	"github.com/jhoicas/taller-pos-api/internal/domain/entity"
)

// AdjustmentInput registro de un ajuste manual de stock.
type AdjustmentInput struct {
	ProductID      string                  `json:"productId"`
	AdjustmentType entity.AdjustmentType   `json:"adjustmentType"`
	Quantity       int                     `json:"quantity"`
	Reason         entity.AdjustmentReason `json:"reason"`
	Notes          *string                 `json:"notes"`
}

// AdjustmentListRequest filtros de listado de ajustes.
type AdjustmentListRequest struct {
	PageRequest
	ProductID string `query:"productId"`
	Reason    string `query:"reason"`
	FromDate  string `query:"fromDate"`
	ToDate    string `query:"toDate"`
}

// AdjustmentResponse proyección pública de un ajuste de inventario.
type AdjustmentResponse struct {
	ID             string                  `json:"id"`
	ProductID      string                  `json:"productId"`
	ProductName    string                  `json:"productName"`
	AdjustmentType entity.AdjustmentType   `json:"adjustmentType"`
	Quantity       int                     `json:"quantity"`
	StockBefore    int                     `json:"stockBefore"`
	StockAfter     int                     `json:"stockAfter"`
	Reason         entity.AdjustmentReason `json:"reason"`
	Notes          *string                 `json:"notes,omitempty"`
	CreatedAt      time.Time               `json:"createdAt"`
}

// FromAdjustment proyecta la entidad a su representación pública.
func FromAdjustment(a *entity.InventoryAdjustment) AdjustmentResponse {
	return AdjustmentResponse{
		ID:             a.ID,
		ProductID:      a.ProductID,
		ProductName:    a.ProductName,
		AdjustmentType: a.AdjustmentType,
		Quantity:       a.Quantity,
		StockBefore:    a.StockBefore,
		StockAfter:     a.StockAfter,
		Reason:         a.Reason,
		Notes:          a.Notes,
		CreatedAt:      a.CreatedAt,
	}
}

// FromAdjustmentList proyecta una lista de ajustes.
func FromAdjustmentList(adjs []*entity.InventoryAdjustment) []AdjustmentResponse {
	out := make([]AdjustmentResponse, 0, len(adjs))
	for _, a := range adjs {
		out = append(out, FromAdjustment(a))
	}
	return out
}
