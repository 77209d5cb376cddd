package repository

import (
	"github.com/jhoicas/taller-pos-api/internal/domain/entity"
)

// ListFilters filtros genéricos de catálogo.
type ListFilters struct {
	Search string
	Limit  int
	Offset int
}

// CategoryRepository puerto de persistencia de categorías.
// GetByName incluye filas soft-deleted para soportar la política de revive.
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	GetByName(name string) (*entity.Category, error)
	List(f ListFilters) ([]*entity.Category, error)
	Count(f ListFilters) (int, error)
	Update(category *entity.Category) error
	SoftDelete(id string) error
	Restore(id string) error
}

// ServiceRepository puerto de persistencia de servicios.
type ServiceRepository interface {
	Create(service *entity.Service) error
	GetByID(id string) (*entity.Service, error)
	GetByName(name string) (*entity.Service, error)
	List(f ListFilters) ([]*entity.Service, error)
	Count(f ListFilters) (int, error)
	Update(service *entity.Service) error
	SoftDelete(id string) error
	Restore(id string) error
}

// ProductFilters filtros de listado de productos.
type ProductFilters struct {
	Search     string
	CategoryID string
	LowStock   bool // solo productos con stock <= min_stock
	Limit      int
	Offset     int
}

// ProductRepository puerto de persistencia de productos, incluido el stock.
// GetForUpdate bloquea la fila (SELECT FOR UPDATE) para que el patrón
// leer-verificar-descontar sea serializable dentro de una tx.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByName(name string) (*entity.Product, error)
	GetForUpdate(id string) (*entity.Product, error)
	List(f ProductFilters) ([]*entity.Product, error)
	Count(f ProductFilters) (int, error)
	Update(product *entity.Product) error
	UpdateStock(productID string, newStock int) error
	BulkUpdateStock(updates []entity.StockUpdate) error
	SoftDelete(id string) error
	Restore(id string) error
}

// PaymentMethodRepository puerto de persistencia de métodos de pago.
type PaymentMethodRepository interface {
	Create(method *entity.PaymentMethod) error
	GetByID(id string) (*entity.PaymentMethod, error)
	GetByName(name string) (*entity.PaymentMethod, error)
	GetBulkByIDs(ids []string) ([]*entity.PaymentMethod, error)
	List(f ListFilters) ([]*entity.PaymentMethod, error)
	Count(f ListFilters) (int, error)
	Update(method *entity.PaymentMethod) error
	SoftDelete(id string) error
	Restore(id string) error
}
