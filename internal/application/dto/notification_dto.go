package dto

import "time"

// NotificationResponse representación HTTP de una alerta de stock mínimo.
type NotificationResponse struct {
	ID           string     `json:"id"`
	ProductID    string     `json:"product_id"`
	ProductName  string     `json:"product_name"`
	CurrentStock int64      `json:"current_stock"`
	MinimumStock int64      `json:"minimum_stock"`
	Message      string     `json:"message"`
	Read         bool       `json:"read"`
	ReadAt       *time.Time `json:"read_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// NotificationListResponse listado paginado de alertas del usuario.
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Unread        int                    `json:"unread"`
	Meta          PageResponse           `json:"meta"`
}

// MarkAllReadResponse cuántas alertas se marcaron como leídas.
type MarkAllReadResponse struct {
	Marked int64 `json:"marked"`
}
