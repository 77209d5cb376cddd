package entity

import "time"

// NotificationContact destinatario de avisos operativos (stock bajo, cierres).
type NotificationContact struct {
	ID        string
	Name      string
	Phone     string
	Email     *string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}
