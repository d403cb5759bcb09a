package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/homechefhq/homechef-api/events"
	"github.com/homechefhq/homechef-api/models"
	"github.com/homechefhq/homechef-api/utils"
)

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

// GetMyNotifications -> notifikasi milik actor yang login
func (nc *NotificationController) GetMyNotifications(c *gin.Context) {
	actorID := c.GetUint("actor_id")
	role := c.GetString("role")

	query := nc.DB.Where("recipient_id = ? AND recipient_type = ?", actorID, role).
		Order("created_at DESC")

	if c.Query("unread") == "true" {
		query = query.Where("is_read = ?", false)
	}

	var notifs []models.Notification
	if err := query.Find(&notifs).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of notifications", notifs)
}

// CreateNotification -> admin mengirim notifikasi ke user/chef
func (nc *NotificationController) CreateNotification(c *gin.Context) {
	type reqBody struct {
		RecipientID   uint    `json:"recipient_id" binding:"required"`
		RecipientType string  `json:"recipient_type" binding:"required,oneof=user chef admin"`
		Title         *string `json:"title"`
		Message       string  `json:"message" binding:"required"`
		Type          string  `json:"type"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	notif := models.Notification{
		RecipientID:   body.RecipientID,
		RecipientType: body.RecipientType,
		Title:         body.Title,
		Message:       body.Message,
		Type:          body.Type,
	}

	if err := nc.DB.Create(&notif).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastNotification(notif)

	utils.InfoLogger.Printf("Notification created for %s %d", notif.RecipientType, notif.RecipientID)

	utils.RespondJSON(c, http.StatusCreated, "Notification created", notif)
}

// MarkAsRead -> tandai notifikasi sudah dibaca
func (nc *NotificationController) MarkAsRead(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("notif_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid notification id"))
		return
	}

	actorID := c.GetUint("actor_id")
	role := c.GetString("role")

	var notif models.Notification
	if err := nc.DB.First(&notif, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if notif.RecipientID != actorID || notif.RecipientType != role {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	notif.IsRead = true
	if err := nc.DB.Save(&notif).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Notification marked as read", notif)
}

// DeleteNotification -> admin menghapus notifikasi
func (nc *NotificationController) DeleteNotification(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("notif_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid notification id"))
		return
	}

	if err := nc.DB.Delete(&models.Notification{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Notification deleted", gin.H{"notif_id": id})
}
