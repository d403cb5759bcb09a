package models

import (
	"time"

	"gorm.io/datatypes"
)

type Chef struct {
	ID               uint                        `gorm:"primaryKey" json:"id"`
	Name             string                      `gorm:"type:varchar(255);not null" json:"name"`
	Email            string                      `gorm:"type:varchar(255);unique;not null" json:"email"`
	Password         string                      `gorm:"type:varchar(255);not null" json:"-"`
	Phone            string                      `gorm:"type:varchar(20)" json:"phone"`
	CuisineSpecialty datatypes.JSONSlice[string] `json:"cuisine_specialty"`
	IsAvailable      bool                        `gorm:"not null;default:true" json:"is_available"`
	AccountStatus    string                      `gorm:"type:varchar(20);not null;default:'active'" json:"account_status"`
	Rating           float64                     `gorm:"type:decimal(3,2);not null;default:0" json:"rating"`
	RatingCount      int64                       `gorm:"not null;default:0" json:"rating_count"`
	CreatedAt        time.Time                   `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time                   `gorm:"not null" json:"updated_at"`
}
