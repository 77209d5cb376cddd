package repository

import (
	"github.com/jhoicas/taller-pos-api/internal/domain/entity"
)

// StoreInfoRepository puerto de los datos del comercio (fila única).
// Get crea la fila con defaults si no existe.
type StoreInfoRepository interface {
	Get() (*entity.StoreInfo, error)
	Update(info *entity.StoreInfo) (*entity.StoreInfo, error)
}
