package partner_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taller-pos-api/internal/application/dto"
	"github.com/jhoicas/taller-pos-api/internal/application/partner"
	"github.com/jhoicas/taller-pos-api/internal/domain"
	"github.com/jhoicas/taller-pos-api/internal/domain/entity"
	"github.com/jhoicas/taller-pos-api/internal/domain/repository"
)

type fakeCustomerRepo struct {
	customers map[string]*entity.Customer
}

func (r *fakeCustomerRepo) Create(c *entity.Customer) error { r.customers[c.ID] = c; return nil }
func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return r.customers[id], nil
}
func (r *fakeCustomerRepo) GetByPhone(phone string) (*entity.Customer, error) {
	for _, c := range r.customers {
		if c.Phone == phone {
			return c, nil
		}
	}
	return nil, nil
}
func (r *fakeCustomerRepo) List(repository.ListFilters) ([]*entity.Customer, error) {
	return nil, nil
}
func (r *fakeCustomerRepo) Count(repository.ListFilters) (int, error) { return 0, nil }
func (r *fakeCustomerRepo) Update(c *entity.Customer) error {
	r.customers[c.ID] = c
	return nil
}
func (r *fakeCustomerRepo) SoftDelete(id string) error {
	delete(r.customers, id)
	return nil
}

func newCustomerUC() (*partner.CustomerUseCase, *fakeCustomerRepo) {
	repo := &fakeCustomerRepo{customers: map[string]*entity.Customer{}}
	return partner.NewCustomerUseCase(repo), repo
}

func TestCustomerCreate_IdempotentePorTelefono(t *testing.T) {
	uc, repo := newCustomerUC()

	first, err := uc.Create(context.Background(), dto.CustomerInput{
		Name:  "Pedro Pérez",
		Phone: "0414-5551234",
	})
	require.NoError(t, err)

	// Crear de nuevo con el mismo teléfono devuelve el cliente existente.
	second, err := uc.Create(context.Background(), dto.CustomerInput{
		Name:  "Pedro P.",
		Phone: "0414-5551234",
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Pedro Pérez", second.Name, "los datos del registro existente no se pisan")
	assert.Len(t, repo.customers, 1)
}

func TestCustomerCreate_SinTelefonoSiempreCrea(t *testing.T) {
	uc, repo := newCustomerUC()

	_, err := uc.Create(context.Background(), dto.CustomerInput{Name: "Anónimo 1"})
	require.NoError(t, err)
	_, err = uc.Create(context.Background(), dto.CustomerInput{Name: "Anónimo 2"})
	require.NoError(t, err)

	assert.Len(t, repo.customers, 2)
}

func TestCustomerGetByID_Inexistente(t *testing.T) {
	uc, _ := newCustomerUC()

	_, err := uc.GetByID(context.Background(), "nada")
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}
