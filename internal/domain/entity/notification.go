package entity

import "time"

// Notification representa una alerta de stock mínimo persistida para un usuario.
// Guarda un snapshot de saldo y umbral al momento del disparo; después solo
// cambia su estado de lectura.
type Notification struct {
	ID           string
	UserID       string // destinatario (usuario que disparó el ajuste)
	ProductID    string
	ProductName  string
	CurrentStock int64
	MinimumStock int64
	Message      string
	ReadAt       *time.Time // nil = no leída
	CreatedAt    time.Time
}

// IsRead indica si la notificación ya fue leída.
func (n *Notification) IsRead() bool {
	return n.ReadAt != nil
}
