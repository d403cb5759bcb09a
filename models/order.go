package models

import "time"

// Status order
const (
	OrderStatusNew       = "new"
	OrderStatusConfirmed = "confirmed"
	OrderStatusPreparing = "preparing"
	OrderStatusOnTheWay  = "on_the_way"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// Order adalah satu instance pengiriman makanan.
// Untuk order hasil generate subscription, unique index di
// (assignment_id, scheduled_date) membuat proses generate idempotent:
// retry untuk range yang sama tidak bisa membuat duplikat.
type Order struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	UserID        uint       `gorm:"not null;index" json:"user_id"`
	User          User       `gorm:"foreignKey:UserID" json:"user"`
	ChefID        uint       `gorm:"not null;index" json:"chef_id"`
	Chef          Chef       `gorm:"foreignKey:ChefID" json:"chef"`
	AssignmentID  *uint      `gorm:"uniqueIndex:idx_assignment_scheduled" json:"assignment_id,omitempty"`
	FoodName      string     `gorm:"type:varchar(255);not null" json:"food_name"`
	ScheduledDate *time.Time `gorm:"uniqueIndex:idx_assignment_scheduled" json:"scheduled_date,omitempty"`
	Status        string     `gorm:"type:varchar(20);not null;default:'new'" json:"status"`
	Amount        float64    `gorm:"type:decimal(10,2);not null;default:0.00" json:"amount"`

	NumberOfPersons int    `gorm:"not null;default:1" json:"number_of_persons"`
	DeliveryStreet  string `gorm:"type:varchar(255)" json:"delivery_street"`
	DeliveryCity    string `gorm:"type:varchar(100)" json:"delivery_city"`
	DeliveryState   string `gorm:"type:varchar(100)" json:"delivery_state"`
	DeliveryPincode string `gorm:"type:varchar(10)" json:"delivery_pincode"`

	// Metadata subscription order
	IsSubscriptionOrder bool   `gorm:"not null;default:false" json:"is_subscription_order"`
	SubscriptionID      *uint  `gorm:"index" json:"subscription_id,omitempty"`
	DeliveryDay         string `gorm:"type:varchar(10)" json:"delivery_day,omitempty"`
	WeekNumber          int    `gorm:"not null;default:0" json:"week_number,omitempty"`

	CancelReason  string     `gorm:"type:varchar(255)" json:"cancel_reason,omitempty"`
	CancelledBy   string     `gorm:"type:varchar(20)" json:"cancelled_by,omitempty"`
	Rating        *int       `json:"rating,omitempty"`
	RatingComment string     `gorm:"type:text" json:"rating_comment,omitempty"`
	DeliveredAt   *time.Time `json:"delivered_at,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// IsCancellable -> order hanya bisa dibatalkan sebelum chef mulai masak
func (o *Order) IsCancellable() bool {
	return o.Status == OrderStatusNew || o.Status == OrderStatusConfirmed
}
