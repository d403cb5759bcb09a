package models

import "time"

// Tipe penerima notifikasi
const (
	RecipientUser  = "user"
	RecipientChef  = "chef"
	RecipientAdmin = "admin"
)

type Notification struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	RecipientID   uint      `gorm:"not null;index" json:"recipient_id"`
	RecipientType string    `gorm:"type:varchar(10);not null;index" json:"recipient_type"`
	Title         *string   `gorm:"type:varchar(100)" json:"title,omitempty"`
	Message       string    `gorm:"type:text;not null" json:"message"`
	Type          string    `gorm:"type:varchar(30)" json:"type"`
	IsRead        bool      `gorm:"not null;default:false" json:"is_read"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
}
