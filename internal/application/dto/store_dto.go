package dto

import (
	"time"

	"github.com/jhoicas/taller-pos-api/internal/domain/entity"
)

// StoreInfoInput edición de los datos del comercio.
type StoreInfoInput struct {
	Name    string  `json:"name"`
	RIF     string  `json:"rif"`
	Address string  `json:"address"`
	Phone   string  `json:"phone"`
	LogoURL *string `json:"logoUrl"`
}

// StoreInfoResponse datos del comercio.
type StoreInfoResponse struct {
	Name      string    `json:"name"`
	RIF       string    `json:"rif"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	LogoURL   *string   `json:"logoUrl,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromStoreInfo proyecta la entidad a su representación pública.
func FromStoreInfo(s *entity.StoreInfo) StoreInfoResponse {
	return StoreInfoResponse{
		Name:      s.Name,
		RIF:       s.RIF,
		Address:   s.Address,
		Phone:     s.Phone,
		LogoURL:   s.LogoURL,
		UpdatedAt: s.UpdatedAt,
	}
}
