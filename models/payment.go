package models

import "time"

// Payment represents a payment record for an order. Integrasi ke
// payment gateway (stripe/razorpay) dilakukan di sisi client; backend
// hanya mencatat transaction id dan memverifikasi statusnya.
type Payment struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	OrderID       uint       `gorm:"not null;index" json:"order_id"`
	Order         Order      `gorm:"foreignKey:OrderID" json:"order"`
	UserID        uint       `gorm:"not null;index" json:"user_id"`
	Amount        float64    `gorm:"type:decimal(10,2);not null" json:"amount"`
	Method        string     `gorm:"type:varchar(20);not null;default:'cod'" json:"method"` // stripe, razorpay, cod
	Status        string     `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	TransactionID string     `gorm:"type:varchar(100)" json:"transaction_id"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	VerifiedBy    *uint      `json:"verified_by,omitempty"` // admin yang verifikasi
	ExpiredAt     *time.Time `json:"expired_at,omitempty"`
	CreatedAt     time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"not null" json:"updated_at"`
}
