package entity

import "time"

// StoreInfo datos del comercio (fila única, get-or-create con defaults).
type StoreInfo struct {
	ID        string
	Name      string
	RIF       string
	Address   string
	Phone     string
	LogoURL   *string
	UpdatedAt time.Time
}
