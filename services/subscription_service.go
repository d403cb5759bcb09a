package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/homechefhq/homechef-api/models"
	"github.com/homechefhq/homechef-api/utils"
)

// Error taxonomy untuk subscription lifecycle. Controller yang
// menerjemahkan ini ke status HTTP.
var (
	ErrInvalidAssignment          = errors.New("assignment not found or not a subscription assignment")
	ErrMissingSubscriptionDetails = errors.New("subscription details (plan_type, meals_per_week) are incomplete")
	ErrInvalidDateRange           = errors.New("end date must be on or after start date")
	ErrNoOrdersGenerated          = errors.New("no orders could be generated for the given date range")
	ErrOrderCreationFailed        = errors.New("all generated orders failed to persist")
	ErrNotPaused                  = errors.New("subscription is not paused")
	ErrPreferencesRejected        = errors.New("preferences can only be updated on an active subscription")
)

// OrderError memasangkan kandidat order yang gagal disimpan dengan
// pesan errornya.
type OrderError struct {
	Order models.Order `json:"order"`
	Error string       `json:"error"`
}

// GenerationResult adalah hasil satu kali proses generate.
// Errors bisa terisi walaupun proses dianggap sukses, selama minimal
// satu order berhasil dibuat.
type GenerationResult struct {
	OrdersCreated int            `json:"orders_created"`
	Orders        []models.Order `json:"orders"`
	Errors        []OrderError   `json:"errors,omitempty"`
}

// SubscriptionStatus adalah agregasi untuk endpoint status.
type SubscriptionStatus struct {
	Assignment     models.Assignment `json:"assignment"`
	OrderStats     map[string]int64  `json:"order_stats"`
	UpcomingOrders []models.Order    `json:"upcoming_orders"`
	TotalOrders    int64             `json:"total_orders"`
}

// MealPreferences adalah preferensi makanan di satu subscription.
type MealPreferences struct {
	Cuisines            []string `json:"cuisines"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
	Allergies           []string `json:"allergies"`
}

// PreferencesInput -> field nil artinya tidak diubah (merge per field).
type PreferencesInput struct {
	Cuisines            *[]string `json:"cuisines"`
	DietaryRestrictions *[]string `json:"dietary_restrictions"`
	Allergies           *[]string `json:"allergies"`
}

// SubscriptionService menangani generate order subscription dan
// lifecycle-nya (pause/resume/status/preferences).
type SubscriptionService struct {
	db     *gorm.DB
	pricer Pricer
}

// NewSubscriptionService membuat instance baru SubscriptionService
// dengan flat pricer default.
func NewSubscriptionService(db *gorm.DB) *SubscriptionService {
	return &SubscriptionService{
		db:     db,
		pricer: FlatPricer{Amount: DefaultOrderUnitPrice},
	}
}

// NewSubscriptionServiceWithPricer dipakai saat pricing engine lain
// dipasang (mis. di test).
func NewSubscriptionServiceWithPricer(db *gorm.DB, pricer Pricer) *SubscriptionService {
	return &SubscriptionService{db: db, pricer: pricer}
}

// loadSubscription mengambil assignment dan memastikan tipenya subscription.
func (s *SubscriptionService) loadSubscription(assignmentID uint) (*models.Assignment, error) {
	var assignment models.Assignment
	if err := s.db.Preload("User").Preload("Chef").First(&assignment, assignmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidAssignment
		}
		return nil, err
	}
	if !assignment.IsSubscription() {
		return nil, ErrInvalidAssignment
	}
	return &assignment, nil
}

// GenerateSubscriptionOrders meng-expand aturan recurrence subscription
// menjadi order konkret untuk range [startDate, endDate].
//
// Order disimpan satu per satu: kandidat yang gagal masuk ke
// result.Errors tanpa membatalkan sisanya. Assignment stats diupdate
// sekali di akhir dengan increment atomik di level SQL, jadi dua proses
// generate yang berjalan bersamaan tidak saling menimpa counter.
func (s *SubscriptionService) GenerateSubscriptionOrders(assignmentID uint, startDate, endDate time.Time) (*GenerationResult, error) {
	assignment, err := s.loadSubscription(assignmentID)
	if err != nil {
		return nil, err
	}
	if !assignment.HasSubscriptionDetails() {
		return nil, ErrMissingSubscriptionDetails
	}
	if endDate.Before(startDate) {
		return nil, ErrInvalidDateRange
	}

	deliveryDays := []string(assignment.DeliveryDays)
	if len(deliveryDays) == 0 {
		deliveryDays = DefaultDeliveryDays
	}
	if err := ValidateDeliveryDays(deliveryDays); err != nil {
		return nil, err
	}

	mealsPerWeek := assignment.MealsPerWeek
	if mealsPerWeek > len(deliveryDays) {
		mealsPerWeek = len(deliveryDays)
	}

	numberOfPersons := assignment.User.HouseholdSize
	if numberOfPersons < 1 {
		numberOfPersons = 1
	}

	// Bangun semua kandidat dulu, urut minggu lalu hari
	var candidates []models.Order
	weekNumber := 0
	for weekStart := startDate; !weekStart.After(endDate); weekStart = weekStart.AddDate(0, 0, 7) {
		weekNumber++
		for i := 0; i < mealsPerWeek; i++ {
			deliveryDate, dayErr := NextDeliveryDate(weekStart, deliveryDays[i])
			if dayErr != nil {
				return nil, dayErr
			}
			if deliveryDate.After(endDate) {
				// Clip: sisa hari di minggu terakhir yang jatuh
				// melewati endDate dibuang
				continue
			}

			scheduled := deliveryDate
			candidates = append(candidates, models.Order{
				UserID:              assignment.UserID,
				ChefID:              assignment.ChefID,
				AssignmentID:        &assignment.ID,
				FoodName:            fmt.Sprintf("Subscription Meal - Week %d", weekNumber),
				ScheduledDate:       &scheduled,
				Status:              models.OrderStatusConfirmed,
				NumberOfPersons:     numberOfPersons,
				DeliveryStreet:      assignment.User.Street,
				DeliveryCity:        assignment.User.City,
				DeliveryState:       assignment.User.State,
				DeliveryPincode:     assignment.User.Pincode,
				IsSubscriptionOrder: true,
				SubscriptionID:      &assignment.ID,
				DeliveryDay:         deliveryDays[i],
				WeekNumber:          weekNumber,
			})
		}
	}

	if len(candidates) == 0 {
		return nil, ErrNoOrdersGenerated
	}

	result := &GenerationResult{}
	for i := range candidates {
		if err := s.db.Create(&candidates[i]).Error; err != nil {
			result.Errors = append(result.Errors, OrderError{
				Order: candidates[i],
				Error: err.Error(),
			})
			continue
		}
		result.Orders = append(result.Orders, candidates[i])
	}
	result.OrdersCreated = len(result.Orders)

	if result.OrdersCreated == 0 {
		return result, ErrOrderCreationFailed
	}

	// Update running aggregates dengan increment atomik
	created := int64(result.OrdersCreated)
	amount := float64(created) * s.pricer.UnitPrice(assignment)
	now := time.Now()
	if err := s.db.Model(&models.Assignment{}).
		Where("id = ?", assignment.ID).
		UpdateColumns(map[string]interface{}{
			"total_orders":    gorm.Expr("total_orders + ?", created),
			"total_amount":    gorm.Expr("total_amount + ?", amount),
			"last_order_date": now,
			"updated_at":      now,
		}).Error; err != nil {
		utils.ErrorLogger.Printf("failed to update assignment %d stats: %v", assignment.ID, err)
	}

	utils.InfoLogger.Printf("Generated %d subscription orders for assignment %d (%d failed)",
		result.OrdersCreated, assignment.ID, len(result.Errors))

	return result, nil
}

// PauseSubscription menangguhkan subscription dan membatalkan semua
// order yang belum berjalan. Order yang sudah dimasak atau dikirim
// (preparing/on_the_way/delivered) tidak disentuh.
func (s *SubscriptionService) PauseSubscription(assignmentID uint, reason string) error {
	assignment, err := s.loadSubscription(assignmentID)
	if err != nil {
		return err
	}

	assignment.Status = models.AssignmentStatusSuspended
	assignment.AppendNote("Subscription paused: " + reason)
	if err := s.db.Save(assignment).Error; err != nil {
		return err
	}

	res := s.db.Model(&models.Order{}).
		Where("assignment_id = ? AND status IN ?", assignment.ID,
			[]string{models.OrderStatusNew, models.OrderStatusConfirmed}).
		Updates(map[string]interface{}{
			"status":        models.OrderStatusCancelled,
			"cancel_reason": "Subscription paused: " + reason,
			"cancelled_by":  "admin",
			"updated_at":    time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}

	utils.InfoLogger.Printf("Subscription %d paused, %d pending orders cancelled", assignment.ID, res.RowsAffected)
	return nil
}

// ResumeSubscription mengaktifkan kembali subscription yang suspended
// dan meng-generate ulang order untuk satu bulan ke depan. Kegagalan
// parsial saat generate tidak menggagalkan resume.
func (s *SubscriptionService) ResumeSubscription(assignmentID uint) (int, error) {
	assignment, err := s.loadSubscription(assignmentID)
	if err != nil {
		return 0, err
	}
	if assignment.Status != models.AssignmentStatusSuspended {
		return 0, ErrNotPaused
	}

	assignment.Status = models.AssignmentStatusActive
	assignment.AppendNote("Subscription resumed")
	if err := s.db.Save(assignment).Error; err != nil {
		return 0, err
	}

	today := time.Now()
	result, genErr := s.GenerateSubscriptionOrders(assignmentID, today, today.AddDate(0, 1, 0))
	if genErr != nil {
		utils.ErrorLogger.Printf("Resume of subscription %d: order generation reported: %v", assignment.ID, genErr)
		if result == nil {
			return 0, nil
		}
	}

	utils.InfoLogger.Printf("Subscription %d resumed, %d orders generated", assignment.ID, result.OrdersCreated)
	return result.OrdersCreated, nil
}

// GetSubscriptionStatus mengembalikan assignment, jumlah order per
// status, dan maksimal 5 order terdekat yang akan datang.
func (s *SubscriptionService) GetSubscriptionStatus(assignmentID uint) (*SubscriptionStatus, error) {
	assignment, err := s.loadSubscription(assignmentID)
	if err != nil {
		return nil, err
	}

	var rows []struct {
		Status string
		Count  int64
	}
	if err := s.db.Model(&models.Order{}).
		Select("status, COUNT(*) as count").
		Where("assignment_id = ?", assignment.ID).
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	stats := make(map[string]int64, len(rows))
	var total int64
	for _, row := range rows {
		stats[row.Status] = row.Count
		total += row.Count
	}

	var upcoming []models.Order
	if err := s.db.
		Where("assignment_id = ? AND status IN ? AND scheduled_date >= ?", assignment.ID,
			[]string{models.OrderStatusNew, models.OrderStatusConfirmed}, time.Now()).
		Order("scheduled_date ASC").
		Limit(5).
		Find(&upcoming).Error; err != nil {
		return nil, err
	}

	return &SubscriptionStatus{
		Assignment:     *assignment,
		OrderStats:     stats,
		UpcomingOrders: upcoming,
		TotalOrders:    total,
	}, nil
}

// UpdateSubscriptionPreferences merge preferensi makanan per field.
// Field yang nil di input tetap memakai nilai lama, tidak pernah
// di-null-kan diam-diam.
func (s *SubscriptionService) UpdateSubscriptionPreferences(assignmentID uint, input PreferencesInput) (*MealPreferences, error) {
	assignment, err := s.loadSubscription(assignmentID)
	if err != nil {
		return nil, err
	}
	if assignment.Status != models.AssignmentStatusActive {
		return nil, ErrPreferencesRejected
	}

	if input.Cuisines != nil {
		assignment.Cuisines = *input.Cuisines
	}
	if input.DietaryRestrictions != nil {
		assignment.DietaryRestrictions = *input.DietaryRestrictions
	}
	if input.Allergies != nil {
		assignment.Allergies = *input.Allergies
	}

	if err := s.db.Save(assignment).Error; err != nil {
		return nil, err
	}

	return &MealPreferences{
		Cuisines:            assignment.Cuisines,
		DietaryRestrictions: assignment.DietaryRestrictions,
		Allergies:           assignment.Allergies,
	}, nil
}
