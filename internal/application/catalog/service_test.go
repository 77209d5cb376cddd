package catalog_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taller-pos-api/internal/application/catalog"
	"github.com/jhoicas/taller-pos-api/internal/application/dto"
	"github.com/jhoicas/taller-pos-api/internal/domain"
	"github.com/jhoicas/taller-pos-api/internal/domain/entity"
	"github.com/jhoicas/taller-pos-api/internal/domain/repository"
)

// fakeServiceRepo repo en memoria con soporte de soft delete, igual que el
// repo real: GetByName incluye archivados (para la política de revivir),
// GetByID solo vigentes.
type fakeServiceRepo struct {
	services map[string]*entity.Service
}

func (r *fakeServiceRepo) Create(s *entity.Service) error { r.services[s.ID] = s; return nil }
func (r *fakeServiceRepo) GetByID(id string) (*entity.Service, error) {
	s := r.services[id]
	if s == nil || s.DeletedAt != nil {
		return nil, nil
	}
	return s, nil
}
func (r *fakeServiceRepo) GetByName(name string) (*entity.Service, error) {
	for _, s := range r.services {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, nil
}
func (r *fakeServiceRepo) List(repository.ListFilters) ([]*entity.Service, error) {
	return nil, nil
}
func (r *fakeServiceRepo) Count(repository.ListFilters) (int, error) { return 0, nil }
func (r *fakeServiceRepo) Update(s *entity.Service) error            { r.services[s.ID] = s; return nil }
func (r *fakeServiceRepo) SoftDelete(id string) error {
	now := time.Now()
	r.services[id].DeletedAt = &now
	return nil
}
func (r *fakeServiceRepo) Restore(id string) error {
	r.services[id].DeletedAt = nil
	return nil
}

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func newServiceUC() (*catalog.ServiceUseCase, *fakeServiceRepo) {
	repo := &fakeServiceRepo{services: map[string]*entity.Service{}}
	return catalog.NewServiceUseCase(repo), repo
}

func TestServiceCreate(t *testing.T) {
	uc, repo := newServiceUC()

	resp, err := uc.Create(context.Background(), dto.ServiceInput{
		Name:  "Cambio de aceite",
		Price: d("25"),
	})
	require.NoError(t, err)
	assert.True(t, resp.Status, "sin status explícito el servicio nace activo")
	assert.Len(t, repo.services, 1)
}

func TestServiceCreate_NombreDuplicado(t *testing.T) {
	uc, _ := newServiceUC()

	_, err := uc.Create(context.Background(), dto.ServiceInput{Name: "Lavado", Price: d("10")})
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), dto.ServiceInput{Name: "Lavado", Price: d("12")})
	assert.ErrorIs(t, err, domain.ErrServiceAlreadyExists)
}

func TestServiceCreate_ReviveArchivado(t *testing.T) {
	uc, repo := newServiceUC()

	created, err := uc.Create(context.Background(), dto.ServiceInput{Name: "Lavado", Price: d("10")})
	require.NoError(t, err)
	require.NoError(t, uc.Delete(context.Background(), created.ID))

	// Recrear con el mismo nombre revive el registro archivado con los datos nuevos.
	revived, err := uc.Create(context.Background(), dto.ServiceInput{Name: "Lavado", Price: d("14")})
	require.NoError(t, err)
	assert.Equal(t, created.ID, revived.ID, "debe conservarse la identidad original")
	assert.True(t, revived.Price.Equal(d("14")))
	assert.Nil(t, repo.services[created.ID].DeletedAt)
	assert.Len(t, repo.services, 1)
}

func TestServiceCreate_PrecioNegativo(t *testing.T) {
	uc, _ := newServiceUC()

	_, err := uc.Create(context.Background(), dto.ServiceInput{Name: "Lavado", Price: d("-1")})
	assert.Error(t, err)
}

func TestServiceUpdate_Desactivar(t *testing.T) {
	uc, repo := newServiceUC()
	created, err := uc.Create(context.Background(), dto.ServiceInput{Name: "Lavado", Price: d("10")})
	require.NoError(t, err)

	inactive := false
	_, err = uc.Update(context.Background(), created.ID, dto.ServiceInput{Status: &inactive})
	require.NoError(t, err)
	assert.False(t, repo.services[created.ID].Status)
}

func TestServiceDelete_Inexistente(t *testing.T) {
	uc, _ := newServiceUC()

	err := uc.Delete(context.Background(), "nada")
	assert.ErrorIs(t, err, domain.ErrServiceNotFound)
}
