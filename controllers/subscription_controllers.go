package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/homechefhq/homechef-api/events"
	"github.com/homechefhq/homechef-api/services"
	"github.com/homechefhq/homechef-api/utils"
)

// SubscriptionController membungkus SubscriptionService untuk layer HTTP.
type SubscriptionController struct {
	Service *services.SubscriptionService
}

func NewSubscriptionController(db *gorm.DB) *SubscriptionController {
	return &SubscriptionController{
		Service: services.NewSubscriptionService(db),
	}
}

// respondServiceError menerjemahkan error taxonomy service ke status HTTP.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidAssignment):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.Is(err, services.ErrMissingSubscriptionDetails),
		errors.Is(err, services.ErrInvalidDateRange),
		errors.Is(err, services.ErrInvalidDeliveryDay),
		errors.Is(err, services.ErrNotPaused),
		errors.Is(err, services.ErrPreferencesRejected):
		utils.RespondError(c, http.StatusBadRequest, err)
	case errors.Is(err, services.ErrNoOrdersGenerated):
		// Bukan input salah: range valid tapi tidak menghasilkan apa-apa
		utils.RespondError(c, http.StatusUnprocessableEntity, err)
	default:
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}

func parseAssignmentID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("assignment_id"))
	if err != nil || id < 1 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid assignment id"))
		return 0, false
	}
	return uint(id), true
}

// GenerateOrders -> expand recurrence subscription menjadi order konkret
func (sc *SubscriptionController) GenerateOrders(c *gin.Context) {
	assignmentID, ok := parseAssignmentID(c)
	if !ok {
		return
	}

	var body struct {
		StartDate string `json:"start_date" binding:"required"`
		EndDate   string `json:"end_date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	startDate, err := time.Parse("2006-01-02", body.StartDate)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("start_date must be an ISO-8601 date (YYYY-MM-DD)"))
		return
	}
	endDate, err := time.Parse("2006-01-02", body.EndDate)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("end_date must be an ISO-8601 date (YYYY-MM-DD)"))
		return
	}

	result, err := sc.Service.GenerateSubscriptionOrders(assignmentID, startDate, endDate)
	if err != nil {
		if errors.Is(err, services.ErrOrderCreationFailed) && result != nil {
			// Semua kandidat gagal disimpan; sertakan detail per item
			c.JSON(http.StatusInternalServerError, utils.JSONResponse{
				Status:  false,
				Message: err.Error(),
				Data:    result,
			})
			return
		}
		respondServiceError(c, err)
		return
	}

	events.BroadcastOrdersGenerated(assignmentID, result.OrdersCreated)

	utils.RespondJSON(c, http.StatusCreated, "Subscription orders generated", result)
}

// PauseSubscription -> suspend + batalkan order yang belum jalan
func (sc *SubscriptionController) PauseSubscription(c *gin.Context) {
	assignmentID, ok := parseAssignmentID(c)
	if !ok {
		return
	}

	var body struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := sc.Service.PauseSubscription(assignmentID, body.Reason); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Subscription paused", gin.H{
		"assignment_id": assignmentID,
	})
}

// ResumeSubscription -> aktifkan lagi + generate 1 bulan ke depan
func (sc *SubscriptionController) ResumeSubscription(c *gin.Context) {
	assignmentID, ok := parseAssignmentID(c)
	if !ok {
		return
	}

	generated, err := sc.Service.ResumeSubscription(assignmentID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Subscription resumed", gin.H{
		"assignment_id":    assignmentID,
		"orders_generated": generated,
	})
}

// GetSubscriptionStatus -> agregasi status order + order terdekat
func (sc *SubscriptionController) GetSubscriptionStatus(c *gin.Context) {
	assignmentID, ok := parseAssignmentID(c)
	if !ok {
		return
	}

	status, err := sc.Service.GetSubscriptionStatus(assignmentID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Subscription status", status)
}

// UpdatePreferences -> merge preferensi makanan per field
func (sc *SubscriptionController) UpdatePreferences(c *gin.Context) {
	assignmentID, ok := parseAssignmentID(c)
	if !ok {
		return
	}

	var input services.PreferencesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	prefs, err := sc.Service.UpdateSubscriptionPreferences(assignmentID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Preferences updated", prefs)
}
