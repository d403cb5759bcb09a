package models

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Tipe assignment
const (
	AssignmentTypeIndividual   = "individual"
	AssignmentTypeSubscription = "subscription"
)

// Status assignment
const (
	AssignmentStatusActive    = "active"
	AssignmentStatusInactive  = "inactive"
	AssignmentStatusSuspended = "suspended"
	AssignmentStatusCompleted = "completed"
)

// Plan type untuk subscription
const (
	PlanTypeWeekly  = "weekly"
	PlanTypeMonthly = "monthly"
)

// Assignment adalah relasi tetap antara satu user dan satu chef.
// Untuk tipe subscription, detail plan (plan_type, meals_per_week,
// delivery_days, preferensi) disimpan langsung di kolom-kolom ini.
type Assignment struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	UserID         uint   `gorm:"not null;index" json:"user_id"`
	User           User   `gorm:"foreignKey:UserID" json:"user"`
	ChefID         uint   `gorm:"not null;index" json:"chef_id"`
	Chef           Chef   `gorm:"foreignKey:ChefID" json:"chef"`
	AssignmentType string `gorm:"type:varchar(20);not null;default:'individual'" json:"assignment_type"`
	Status         string `gorm:"type:varchar(20);not null;default:'active'" json:"status"`

	// Subscription details (hanya terisi jika assignment_type = subscription)
	PlanType            *string                     `gorm:"type:varchar(20)" json:"plan_type,omitempty"`
	MealsPerWeek        int                         `gorm:"not null;default:0" json:"meals_per_week"`
	DeliveryDays        datatypes.JSONSlice[string] `json:"delivery_days"`
	Cuisines            datatypes.JSONSlice[string] `json:"cuisines"`
	DietaryRestrictions datatypes.JSONSlice[string] `json:"dietary_restrictions"`
	Allergies           datatypes.JSONSlice[string] `json:"allergies"`

	// Running aggregates, diupdate setiap ada order untuk assignment ini
	TotalOrders   int64      `gorm:"not null;default:0" json:"total_orders"`
	TotalAmount   float64    `gorm:"type:decimal(10,2);not null;default:0.00" json:"total_amount"`
	LastOrderDate *time.Time `json:"last_order_date,omitempty"`

	Notes     string    `gorm:"type:text" json:"notes"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// IsSubscription -> cek tipe assignment
func (a *Assignment) IsSubscription() bool {
	return a.AssignmentType == AssignmentTypeSubscription
}

// HasSubscriptionDetails memastikan plan_type dan meals_per_week terisi
// untuk generate order. delivery_days boleh kosong (pakai default).
func (a *Assignment) HasSubscriptionDetails() bool {
	return a.PlanType != nil && *a.PlanType != "" && a.MealsPerWeek > 0
}

// AppendNote menambahkan catatan dengan timestamp ke log notes.
func (a *Assignment) AppendNote(note string) {
	line := fmt.Sprintf("[%s] %s", time.Now().Format("2006-01-02 15:04:05"), note)
	if a.Notes == "" {
		a.Notes = line
	} else {
		a.Notes = a.Notes + "\n" + line
	}
}

// BeforeSave menjaga invariant: assignment subscription wajib punya plan_type.
func (a *Assignment) BeforeSave(tx *gorm.DB) error {
	if a.AssignmentType == AssignmentTypeSubscription {
		if a.PlanType == nil || *a.PlanType == "" {
			return fmt.Errorf("subscription assignment requires a plan_type")
		}
	}
	return nil
}
