package repository

import (
	"github.com/jhoicas/taller-pos-api/internal/domain/entity"
)

// CustomerRepository puerto de persistencia de clientes.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	GetByPhone(phone string) (*entity.Customer, error)
	List(f ListFilters) ([]*entity.Customer, error)
	Count(f ListFilters) (int, error)
	Update(customer *entity.Customer) error
	SoftDelete(id string) error
}

// NotificationContactRepository puerto de persistencia de contactos de aviso.
type NotificationContactRepository interface {
	Create(contact *entity.NotificationContact) error
	GetByID(id string) (*entity.NotificationContact, error)
	GetByPhone(phone string) (*entity.NotificationContact, error)
	List(f ListFilters) ([]*entity.NotificationContact, error)
	Count(f ListFilters) (int, error)
	Update(contact *entity.NotificationContact) error
	SoftDelete(id string) error
	Restore(id string) error
}
