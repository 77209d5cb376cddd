package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/taller-pos-api/internal/domain/entity"
)

// CategoryInput alta o edición de categoría.
type CategoryInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// CategoryResponse proyección pública de una categoría.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// FromCategory proyecta la entidad a su representación pública.
func FromCategory(c *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// FromCategoryList proyecta una lista de categorías.
func FromCategoryList(cats []*entity.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(cats))
	for _, c := range cats {
		out = append(out, FromCategory(c))
	}
	return out
}

// ServiceInput alta o edición de servicio del taller.
type ServiceInput struct {
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Status      *bool           `json:"status"`
}

// ServiceResponse proyección pública de un servicio.
type ServiceResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Status      bool            `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// FromService proyecta la entidad a su representación pública.
func FromService(s *entity.Service) ServiceResponse {
	return ServiceResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Price:       s.Price,
		Status:      s.Status,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// FromServiceList proyecta una lista de servicios.
func FromServiceList(svcs []*entity.Service) []ServiceResponse {
	out := make([]ServiceResponse, 0, len(svcs))
	for _, s := range svcs {
		out = append(out, FromService(s))
	}
	return out
}

// ProductInput alta o edición de producto de inventario.
type ProductInput struct {
	CategoryID  string          `json:"categoryId"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Unit        entity.UnitType `json:"unit"`
	Stock       int             `json:"stock"`
	MinStock    int             `json:"minStock"`
	CostPrice   decimal.Decimal `json:"costPrice"`
}

// ProductListRequest filtros de listado de productos.
type ProductListRequest struct {
	PageRequest
	Search     string `query:"search"`
	CategoryID string `query:"categoryId"`
	LowStock   bool   `query:"lowStock"`
}

// ProductResponse proyección pública de un producto.
type ProductResponse struct {
	ID           string          `json:"id"`
	CategoryID   string          `json:"categoryId"`
	CategoryName string          `json:"categoryName,omitempty"`
	Name         string          `json:"name"`
	Description  *string         `json:"description,omitempty"`
	Unit         entity.UnitType `json:"unit"`
	Stock        int             `json:"stock"`
	MinStock     int             `json:"minStock"`
	CostPrice    decimal.Decimal `json:"costPrice"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// FromProduct proyecta la entidad a su representación pública.
func FromProduct(p *entity.Product) ProductResponse {
	resp := ProductResponse{
		ID:          p.ID,
		CategoryID:  p.CategoryID,
		Name:        p.Name,
		Description: p.Description,
		Unit:        p.Unit,
		Stock:       p.Stock,
		MinStock:    p.MinStock,
		CostPrice:   p.CostPrice,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.Category != nil {
		resp.CategoryName = p.Category.Name
	}
	return resp
}

// FromProductList proyecta una lista de productos.
func FromProductList(products []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, FromProduct(p))
	}
	return out
}

// PaymentMethodInput alta o edición de método de pago.
type PaymentMethodInput struct {
	Name     string          `json:"name"`
	Currency entity.Currency `json:"currency"`
	IsActive *bool           `json:"isActive"`
}

// PaymentMethodResponse proyección pública de un método de pago.
type PaymentMethodResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Currency  entity.Currency `json:"currency"`
	IsActive  bool            `json:"isActive"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// FromPaymentMethod proyecta la entidad a su representación pública.
func FromPaymentMethod(m *entity.PaymentMethod) PaymentMethodResponse {
	return PaymentMethodResponse{
		ID:        m.ID,
		Name:      m.Name,
		Currency:  m.Currency,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromPaymentMethodList proyecta una lista de métodos de pago.
func FromPaymentMethodList(methods []*entity.PaymentMethod) []PaymentMethodResponse {
	out := make([]PaymentMethodResponse, 0, len(methods))
	for _, m := range methods {
		out = append(out, FromPaymentMethod(m))
	}
	return out
}
