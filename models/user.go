package models

import "time"

type User struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	Name          string  `gorm:"type:varchar(255);not null" json:"name"`
	Email         string  `gorm:"type:varchar(255);unique;not null" json:"email"`
	Password      string  `gorm:"type:varchar(255);not null" json:"-"`
	Phone         string  `gorm:"type:varchar(20)" json:"phone"`
	Street        string  `gorm:"type:varchar(255)" json:"street"`
	City          string  `gorm:"type:varchar(100)" json:"city"`
	State         string  `gorm:"type:varchar(100)" json:"state"`
	Pincode       string  `gorm:"type:varchar(10)" json:"pincode"`
	HouseholdSize int     `gorm:"not null;default:1" json:"household_size"`
	AccountStatus string  `gorm:"type:varchar(20);not null;default:'active'" json:"account_status"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null" json:"updated_at"`
}

// HasAddress -> cek apakah user sudah mengisi alamat pengiriman
func (u *User) HasAddress() bool {
	return u.Street != "" || u.City != ""
}
