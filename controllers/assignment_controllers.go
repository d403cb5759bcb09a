package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/homechefhq/homechef-api/events"
	"github.com/homechefhq/homechef-api/models"
	"github.com/homechefhq/homechef-api/utils"
)

type AssignmentController struct {
	DB *gorm.DB
}

func NewAssignmentController(db *gorm.DB) *AssignmentController {
	return &AssignmentController{DB: db}
}

// CreateAssignment -> admin memasangkan user dengan chef
func (ac *AssignmentController) CreateAssignment(c *gin.Context) {
	type reqBody struct {
		UserID              uint     `json:"user_id" binding:"required"`
		ChefID              uint     `json:"chef_id" binding:"required"`
		AssignmentType      string   `json:"assignment_type" binding:"required,oneof=individual subscription"`
		PlanType            *string  `json:"plan_type" binding:"omitempty,oneof=weekly monthly"`
		MealsPerWeek        int      `json:"meals_per_week" binding:"omitempty,min=1,max=21"`
		DeliveryDays        []string `json:"delivery_days"`
		Cuisines            []string `json:"cuisines"`
		DietaryRestrictions []string `json:"dietary_restrictions"`
		Allergies           []string `json:"allergies"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var user models.User
	if err := ac.DB.First(&user, body.UserID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("user not found"))
		return
	}
	var chef models.Chef
	if err := ac.DB.First(&chef, body.ChefID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("chef not found"))
		return
	}

	// Satu pasangan user-chef hanya boleh punya satu assignment yang
	// masih hidup (active/suspended)
	var existing int64
	ac.DB.Model(&models.Assignment{}).
		Where("user_id = ? AND chef_id = ? AND status IN ?", body.UserID, body.ChefID,
			[]string{models.AssignmentStatusActive, models.AssignmentStatusSuspended}).
		Count(&existing)
	if existing > 0 {
		utils.RespondError(c, http.StatusConflict, errors.New("an active assignment already exists for this user and chef"))
		return
	}

	if body.AssignmentType == models.AssignmentTypeSubscription {
		if body.PlanType == nil || *body.PlanType == "" {
			utils.RespondError(c, http.StatusBadRequest, errors.New("subscription assignment requires plan_type"))
			return
		}
		if body.MealsPerWeek < 1 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("subscription assignment requires meals_per_week"))
			return
		}
	}

	assignment := models.Assignment{
		UserID:              body.UserID,
		ChefID:              body.ChefID,
		AssignmentType:      body.AssignmentType,
		Status:              models.AssignmentStatusActive,
		PlanType:            body.PlanType,
		MealsPerWeek:        body.MealsPerWeek,
		DeliveryDays:        datatypes.NewJSONSlice(body.DeliveryDays),
		Cuisines:            datatypes.NewJSONSlice(body.Cuisines),
		DietaryRestrictions: datatypes.NewJSONSlice(body.DietaryRestrictions),
		Allergies:           datatypes.NewJSONSlice(body.Allergies),
	}

	if err := ac.DB.Create(&assignment).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	// Kabari kedua belah pihak
	ac.notify(models.RecipientUser, user.ID, "New chef assigned",
		fmt.Sprintf("Chef %s has been assigned to you", chef.Name))
	ac.notify(models.RecipientChef, chef.ID, "New customer assigned",
		fmt.Sprintf("Customer %s has been assigned to you", user.Name))

	events.BroadcastAssignmentUpdate(events.EventAssignmentUpdate, assignment)

	utils.InfoLogger.Printf("Assignment %d created (user=%d chef=%d type=%s)",
		assignment.ID, user.ID, chef.ID, assignment.AssignmentType)

	utils.RespondJSON(c, http.StatusCreated, "Assignment created", assignment)
}

// GetAllAssignments -> daftar assignment, bisa difilter status/tipe
func (ac *AssignmentController) GetAllAssignments(c *gin.Context) {
	query := ac.DB.Preload("User").Preload("Chef").Order("created_at DESC")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if atype := c.Query("type"); atype != "" {
		query = query.Where("assignment_type = ?", atype)
	}

	var assignments []models.Assignment
	if err := query.Find(&assignments).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of assignments", assignments)
}

// GetAssignmentByID -> detail 1 assignment
func (ac *AssignmentController) GetAssignmentByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("assignment_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid assignment id"))
		return
	}

	var assignment models.Assignment
	if err := ac.DB.Preload("User").Preload("Chef").First(&assignment, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Assignment detail", assignment)
}

// DeleteAssignment -> hanya boleh jika tidak ada order yang masih jalan
func (ac *AssignmentController) DeleteAssignment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("assignment_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid assignment id"))
		return
	}

	var assignment models.Assignment
	if err := ac.DB.First(&assignment, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var activeOrders int64
	ac.DB.Model(&models.Order{}).
		Where("assignment_id = ? AND status IN ?", assignment.ID,
			[]string{models.OrderStatusNew, models.OrderStatusConfirmed,
				models.OrderStatusPreparing, models.OrderStatusOnTheWay}).
		Count(&activeOrders)
	if activeOrders > 0 {
		utils.RespondError(c, http.StatusConflict,
			fmt.Errorf("assignment still has %d active orders", activeOrders))
		return
	}

	if err := ac.DB.Delete(&assignment).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Assignment deleted", gin.H{"assignment_id": assignment.ID})
}

func (ac *AssignmentController) notify(recipientType string, recipientID uint, title, message string) {
	notif := models.Notification{
		RecipientID:   recipientID,
		RecipientType: recipientType,
		Title:         &title,
		Message:       message,
		Type:          "assignment",
	}
	if err := ac.DB.Create(&notif).Error; err != nil {
		utils.ErrorLogger.Printf("Failed to create notification: %v", err)
		return
	}
	events.BroadcastNotification(notif)
}
