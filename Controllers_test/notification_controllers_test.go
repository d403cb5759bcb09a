package Controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/homechefhq/homechef-api/controllers"
	"github.com/homechefhq/homechef-api/models"
)

func seedNotification(db *gorm.DB, recipientID uint, recipientType, message string) models.Notification {
	notif := models.Notification{
		RecipientID:   recipientID,
		RecipientType: recipientType,
		Message:       message,
		Type:          "general",
	}
	if err := db.Create(&notif).Error; err != nil {
		panic(err)
	}
	return notif
}

func TestGetMyNotifications(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(db, "user@example.com")
	chef := seedChef(db, "chef@example.com")

	seedNotification(db, user.ID, models.RecipientUser, "for the user")
	seedNotification(db, chef.ID, models.RecipientChef, "for the chef")

	router := gin.New()
	notifCtrl := controllers.NewNotificationController(db)
	router.GET("/notifications", authAs(user.ID, models.RecipientUser), notifCtrl.GetMyNotifications)

	// User hanya melihat notifikasi miliknya sendiri
	w := performRequest(router, "GET", "/notifications", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	response := parseResponse(t, w)
	data := response["data"].([]interface{})
	if assert.Len(t, data, 1) {
		first := data[0].(map[string]interface{})
		assert.Equal(t, "for the user", first["message"])
	}
}

func TestGetMyNotificationsUnreadFilter(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(db, "user@example.com")

	unread := seedNotification(db, user.ID, models.RecipientUser, "unread one")
	read := seedNotification(db, user.ID, models.RecipientUser, "read one")
	assert.NoError(t, db.Model(&read).Update("is_read", true).Error)

	router := gin.New()
	notifCtrl := controllers.NewNotificationController(db)
	router.GET("/notifications", authAs(user.ID, models.RecipientUser), notifCtrl.GetMyNotifications)

	w := performRequest(router, "GET", "/notifications?unread=true", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	response := parseResponse(t, w)
	data := response["data"].([]interface{})
	if assert.Len(t, data, 1) {
		first := data[0].(map[string]interface{})
		assert.Equal(t, float64(unread.ID), first["id"])
	}
}

func TestMarkAsReadOwnershipCheck(t *testing.T) {
	db := setupTestDB(t)
	owner := seedUser(db, "owner@example.com")
	intruder := seedUser(db, "intruder@example.com")
	notif := seedNotification(db, owner.ID, models.RecipientUser, "private note")

	notifCtrl := controllers.NewNotificationController(db)

	// Bukan pemilik -> 403
	intruderRouter := gin.New()
	intruderRouter.PATCH("/notifications/:notif_id/read", authAs(intruder.ID, models.RecipientUser), notifCtrl.MarkAsRead)
	w := performRequest(intruderRouter, "PATCH", fmt.Sprintf("/notifications/%d/read", notif.ID), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Pemilik -> ok
	ownerRouter := gin.New()
	ownerRouter.PATCH("/notifications/:notif_id/read", authAs(owner.ID, models.RecipientUser), notifCtrl.MarkAsRead)
	w = performRequest(ownerRouter, "PATCH", fmt.Sprintf("/notifications/%d/read", notif.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.Notification
	assert.NoError(t, db.First(&updated, notif.ID).Error)
	assert.True(t, updated.IsRead)
}

func TestAdminCreateNotification(t *testing.T) {
	db := setupTestDB(t)
	chef := seedChef(db, "chef@example.com")

	router := gin.New()
	notifCtrl := controllers.NewNotificationController(db)
	router.POST("/admin/notifications", authAs(1, models.RecipientAdmin), notifCtrl.CreateNotification)

	w := performRequest(router, "POST", "/admin/notifications", map[string]interface{}{
		"recipient_id":   chef.ID,
		"recipient_type": "chef",
		"title":          "Schedule change",
		"message":        "Please confirm availability for next week",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var notif models.Notification
	assert.NoError(t, db.Where("recipient_id = ? AND recipient_type = ?", chef.ID, models.RecipientChef).
		First(&notif).Error)
	assert.False(t, notif.IsRead)
	if assert.NotNil(t, notif.Title) {
		assert.Equal(t, "Schedule change", *notif.Title)
	}
}
