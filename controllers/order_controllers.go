package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/homechefhq/homechef-api/events"
	"github.com/homechefhq/homechef-api/models"
	"github.com/homechefhq/homechef-api/services"
	"github.com/homechefhq/homechef-api/utils"
)

// Transisi status order yang diizinkan untuk chef
var allowedTransitions = map[string][]string{
	models.OrderStatusNew:       {models.OrderStatusConfirmed},
	models.OrderStatusConfirmed: {models.OrderStatusPreparing},
	models.OrderStatusPreparing: {models.OrderStatusOnTheWay},
	models.OrderStatusOnTheWay:  {models.OrderStatusDelivered},
}

type OrderController struct {
	DB       *gorm.DB
	Payments *services.PaymentService
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{
		DB:       db,
		Payments: services.NewPaymentService(db),
	}
}

// CreateOrder -> user membuat order satuan ke chef yang di-assign
func (oc *OrderController) CreateOrder(c *gin.Context) {
	actorID := c.GetUint("actor_id")
	if c.GetString("role") != models.RecipientUser {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	type reqBody struct {
		ChefID          uint       `json:"chef_id" binding:"required"`
		FoodName        string     `json:"food_name" binding:"required"`
		Amount          float64    `json:"amount"`
		NumberOfPersons int        `json:"number_of_persons"`
		ScheduledDate   *time.Time `json:"scheduled_date"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var user models.User
	if err := oc.DB.First(&user, actorID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var chef models.Chef
	if err := oc.DB.First(&chef, body.ChefID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("chef not found"))
		return
	}
	if !chef.IsAvailable || chef.AccountStatus != "active" {
		utils.RespondError(c, http.StatusUnprocessableEntity, errors.New("chef is not available"))
		return
	}

	persons := body.NumberOfPersons
	if persons < 1 {
		persons = user.HouseholdSize
	}

	order := models.Order{
		UserID:          user.ID,
		ChefID:          chef.ID,
		FoodName:        body.FoodName,
		Amount:          body.Amount,
		Status:          models.OrderStatusNew,
		NumberOfPersons: persons,
		ScheduledDate:   body.ScheduledDate,
		DeliveryStreet:  user.Street,
		DeliveryCity:    user.City,
		DeliveryState:   user.State,
		DeliveryPincode: user.Pincode,
	}

	// Kalau user-chef ini punya assignment aktif, order tercatat di sana
	var assignment models.Assignment
	err := oc.DB.Where("user_id = ? AND chef_id = ? AND status = ?",
		user.ID, chef.ID, models.AssignmentStatusActive).First(&assignment).Error
	if err == nil {
		order.AssignmentID = &assignment.ID
	}

	if err := oc.DB.Create(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	// Update running aggregates assignment secara atomik
	if order.AssignmentID != nil {
		now := time.Now()
		oc.DB.Model(&models.Assignment{}).
			Where("id = ?", *order.AssignmentID).
			UpdateColumns(map[string]interface{}{
				"total_orders":    gorm.Expr("total_orders + ?", 1),
				"total_amount":    gorm.Expr("total_amount + ?", order.Amount),
				"last_order_date": now,
				"updated_at":      now,
			})
	}

	events.BroadcastOrderUpdate(order)

	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// GetMyOrders -> daftar order milik actor (user atau chef)
func (oc *OrderController) GetMyOrders(c *gin.Context) {
	actorID := c.GetUint("actor_id")
	role := c.GetString("role")

	query := oc.DB.Order("created_at DESC")
	switch role {
	case models.RecipientUser:
		query = query.Where("user_id = ?", actorID)
	case models.RecipientChef:
		query = query.Where("chef_id = ?", actorID)
	case models.RecipientAdmin:
		// admin melihat semua
	default:
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetOrderByID -> detail 1 order
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	var order models.Order
	if err := oc.DB.Preload("User").Preload("Chef").First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	// User/chef hanya boleh melihat order miliknya
	actorID := c.GetUint("actor_id")
	role := c.GetString("role")
	if role == models.RecipientUser && order.UserID != actorID {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}
	if role == models.RecipientChef && order.ChefID != actorID {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// UpdateOrderStatus -> chef menggerakkan order di pipeline masak/antar
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	actorID := c.GetUint("actor_id")
	role := c.GetString("role")

	orderID := c.Param("order_id")
	var order models.Order
	if err := oc.DB.First(&order, orderID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if role == models.RecipientChef && order.ChefID != actorID {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	valid := false
	for _, next := range allowedTransitions[order.Status] {
		if next == input.Status {
			valid = true
			break
		}
	}
	if !valid {
		utils.RespondError(c, http.StatusUnprocessableEntity,
			fmt.Errorf("cannot transition order from %s to %s", order.Status, input.Status))
		return
	}

	order.Status = input.Status
	if input.Status == models.OrderStatusDelivered {
		now := time.Now()
		order.DeliveredAt = &now
	}

	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	// COD dibayar saat makanan diterima
	if order.Status == models.OrderStatusDelivered {
		if err := oc.Payments.SettleCODPayment(order.ID); err != nil {
			utils.ErrorLogger.Printf("Failed to settle COD payment for order %d: %v", order.ID, err)
		}
	}

	events.BroadcastOrderUpdate(order)

	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}

// CancelOrder -> pembatalan oleh user/admin, hanya sebelum masak
func (oc *OrderController) CancelOrder(c *gin.Context) {
	actorID := c.GetUint("actor_id")
	role := c.GetString("role")

	orderID := c.Param("order_id")
	var order models.Order
	if err := oc.DB.First(&order, orderID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if role == models.RecipientUser && order.UserID != actorID {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}
	if role == models.RecipientChef {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	if !order.IsCancellable() {
		utils.RespondError(c, http.StatusUnprocessableEntity,
			fmt.Errorf("order in status %s can no longer be cancelled", order.Status))
		return
	}

	var input struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&input)

	order.Status = models.OrderStatusCancelled
	order.CancelReason = input.Reason
	order.CancelledBy = role
	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastOrderUpdate(order)

	utils.RespondJSON(c, http.StatusOK, "Order cancelled", order)
}

// RateOrder -> user memberi rating 1..5 setelah delivered
func (oc *OrderController) RateOrder(c *gin.Context) {
	actorID := c.GetUint("actor_id")
	if c.GetString("role") != models.RecipientUser {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	orderID := c.Param("order_id")
	var order models.Order
	if err := oc.DB.First(&order, orderID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if order.UserID != actorID {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}
	if order.Status != models.OrderStatusDelivered {
		utils.RespondError(c, http.StatusUnprocessableEntity, errors.New("only delivered orders can be rated"))
		return
	}

	var input struct {
		Rating  int    `json:"rating" binding:"required,min=1,max=5"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	alreadyRated := order.Rating != nil

	order.Rating = &input.Rating
	order.RatingComment = input.Comment
	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	// Update rating rata-rata chef secara atomik (sekali per order)
	if !alreadyRated {
		oc.DB.Model(&models.Chef{}).
			Where("id = ?", order.ChefID).
			UpdateColumns(map[string]interface{}{
				"rating":       gorm.Expr("(rating * rating_count + ?) / (rating_count + 1)", input.Rating),
				"rating_count": gorm.Expr("rating_count + 1"),
			})
	}

	utils.RespondJSON(c, http.StatusOK, "Order rated", order)
}
