package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/homechefhq/homechef-api/events"
	"github.com/homechefhq/homechef-api/models"
	"github.com/homechefhq/homechef-api/services"
	"github.com/homechefhq/homechef-api/utils"
)

type PaymentController struct {
	DB      *gorm.DB
	Service *services.PaymentService
}

func NewPaymentController(db *gorm.DB) *PaymentController {
	return &PaymentController{
		DB:      db,
		Service: services.NewPaymentService(db),
	}
}

// CreatePayment -> user mencatat pembayaran untuk ordernya
func (pc *PaymentController) CreatePayment(c *gin.Context) {
	actorID := c.GetUint("actor_id")
	if c.GetString("role") != models.RecipientUser {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	type reqBody struct {
		OrderID       uint   `json:"order_id" binding:"required"`
		Method        string `json:"method" binding:"required,oneof=stripe razorpay cod"`
		TransactionID string `json:"transaction_id"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var order models.Order
	if err := pc.DB.First(&order, body.OrderID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if order.UserID != actorID {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	// Pembayaran online wajib membawa transaction id dari gateway
	if body.Method != services.PaymentMethodCOD && body.TransactionID == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("transaction_id is required for online payments"))
		return
	}

	payment, err := pc.Service.CreatePayment(order.ID, actorID, body.Method, body.TransactionID)
	if err != nil {
		if errors.Is(err, services.ErrUnknownPaymentMethod) {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastPaymentUpdate(*payment)

	utils.RespondJSON(c, http.StatusCreated, "Payment recorded", payment)
}

// GetPayments -> admin melihat semua payment
func (pc *PaymentController) GetPayments(c *gin.Context) {
	query := pc.DB.Preload("Order").Order("created_at DESC")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if method := c.Query("method"); method != "" {
		query = query.Where("method = ?", method)
	}

	var payments []models.Payment
	if err := query.Find(&payments).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of payments", payments)
}

// GetPaymentByID -> detail 1 payment
func (pc *PaymentController) GetPaymentByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("payment_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid payment id"))
		return
	}

	var payment models.Payment
	if err := pc.DB.Preload("Order").First(&payment, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Payment detail", payment)
}

// VerifyPayment -> admin memverifikasi payment pending
func (pc *PaymentController) VerifyPayment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("payment_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid payment id"))
		return
	}

	adminID := c.GetUint("actor_id")

	payment, err := pc.Service.VerifyPayment(uint(id), adminID)
	if err != nil {
		if errors.Is(err, services.ErrPaymentNotPending) {
			utils.RespondError(c, http.StatusUnprocessableEntity, err)
			return
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastPaymentUpdate(*payment)

	utils.RespondJSON(c, http.StatusOK, "Payment verified", payment)
}
