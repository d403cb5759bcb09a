package Controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/homechefhq/homechef-api/controllers"
	"github.com/homechefhq/homechef-api/models"
	"github.com/homechefhq/homechef-api/services"
)

func TestCreatePaymentEndpoint(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(db, "user@example.com")
	chef := seedChef(db, "chef@example.com")
	order := seedOrder(db, user.ID, chef.ID, models.OrderStatusNew)

	router := gin.New()
	payCtrl := controllers.NewPaymentController(db)
	router.POST("/payments", authAs(user.ID, models.RecipientUser), payCtrl.CreatePayment)

	// Payment online tanpa transaction_id -> 400
	w := performRequest(router, "POST", "/payments", map[string]interface{}{
		"order_id": order.ID,
		"method":   "stripe",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Stripe dengan transaction id dari gateway
	w = performRequest(router, "POST", "/payments", map[string]interface{}{
		"order_id":       order.ID,
		"method":         "stripe",
		"transaction_id": "pi_3OaQb2EZvKYlo2C1",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var payment models.Payment
	assert.NoError(t, db.Where("order_id = ?", order.ID).First(&payment).Error)
	assert.Equal(t, services.PaymentStatusPending, payment.Status)
	assert.Equal(t, order.Amount, payment.Amount)
	assert.NotNil(t, payment.ExpiredAt) // online payment punya deadline
}

func TestCreatePaymentNotOwnOrder(t *testing.T) {
	db := setupTestDB(t)
	owner := seedUser(db, "owner@example.com")
	intruder := seedUser(db, "intruder@example.com")
	chef := seedChef(db, "chef@example.com")
	order := seedOrder(db, owner.ID, chef.ID, models.OrderStatusNew)

	router := gin.New()
	payCtrl := controllers.NewPaymentController(db)
	router.POST("/payments", authAs(intruder.ID, models.RecipientUser), payCtrl.CreatePayment)

	w := performRequest(router, "POST", "/payments", map[string]interface{}{
		"order_id": order.ID,
		"method":   "cod",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestVerifyPaymentEndpoint(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(db, "user@example.com")
	chef := seedChef(db, "chef@example.com")
	order := seedOrder(db, user.ID, chef.ID, models.OrderStatusNew)

	paySvc := services.NewPaymentService(db)
	payment, err := paySvc.CreatePayment(order.ID, user.ID, services.PaymentMethodRazorpay, "pay_NfB1x2y3z4")
	assert.NoError(t, err)

	adminID := uint(7)
	router := gin.New()
	payCtrl := controllers.NewPaymentController(db)
	router.PATCH("/admin/payments/:payment_id/verify", authAs(adminID, models.RecipientAdmin), payCtrl.VerifyPayment)

	w := performRequest(router, "PATCH", fmt.Sprintf("/admin/payments/%d/verify", payment.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var verified models.Payment
	assert.NoError(t, db.First(&verified, payment.ID).Error)
	assert.Equal(t, services.PaymentStatusSuccess, verified.Status)
	assert.NotNil(t, verified.PaidAt)
	if assert.NotNil(t, verified.VerifiedBy) {
		assert.Equal(t, adminID, *verified.VerifiedBy)
	}

	// Order ikut confirmed dalam transaksi yang sama
	var confirmed models.Order
	assert.NoError(t, db.First(&confirmed, order.ID).Error)
	assert.Equal(t, models.OrderStatusConfirmed, confirmed.Status)

	// Verifikasi ulang payment yang sudah sukses -> 422
	w = performRequest(router, "PATCH", fmt.Sprintf("/admin/payments/%d/verify", payment.ID), nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// Payment tidak ada -> 404
	w = performRequest(router, "PATCH", "/admin/payments/999/verify", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
