package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/homechefhq/homechef-api/models"
	"github.com/homechefhq/homechef-api/utils"
)

// Status pembayaran
const (
	PaymentStatusPending  = "pending"
	PaymentStatusSuccess  = "success"
	PaymentStatusFailed   = "failed"
	PaymentStatusExpired  = "expired"
	PaymentStatusRefunded = "refunded"
)

// Metode pembayaran
const (
	PaymentMethodStripe   = "stripe"
	PaymentMethodRazorpay = "razorpay"
	PaymentMethodCOD      = "cod"
)

var (
	ErrUnknownPaymentMethod = errors.New("unknown payment method")
	ErrPaymentNotPending    = errors.New("payment is not in pending status")
)

// onlinePaymentExpiry: payment online yang tidak selesai dalam window
// ini otomatis di-expire oleh timeout checker.
const onlinePaymentExpiry = 30 * time.Minute

// PaymentService mencatat pembayaran order. Charge yang sebenarnya
// terjadi di payment gateway (stripe/razorpay) lewat client; COD
// diselesaikan saat order delivered.
type PaymentService struct {
	db *gorm.DB
}

// NewPaymentService membuat instance baru PaymentService
func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{db: db}
}

// CreatePayment mencatat pembayaran baru untuk satu order.
func (s *PaymentService) CreatePayment(orderID, userID uint, method, transactionID string) (*models.Payment, error) {
	switch method {
	case PaymentMethodStripe, PaymentMethodRazorpay, PaymentMethodCOD:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPaymentMethod, method)
	}

	var order models.Order
	if err := s.db.First(&order, orderID).Error; err != nil {
		return nil, err
	}

	payment := models.Payment{
		OrderID:       order.ID,
		UserID:        userID,
		Amount:        order.Amount,
		Method:        method,
		Status:        PaymentStatusPending,
		TransactionID: transactionID,
	}

	// COD tidak pernah expire; payment online diberi batas waktu
	if method != PaymentMethodCOD {
		expiredAt := time.Now().Add(onlinePaymentExpiry)
		payment.ExpiredAt = &expiredAt
	}

	if err := s.db.Create(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// VerifyPayment menandai payment sukses (oleh admin) dan meng-confirm
// ordernya dalam satu transaksi.
func (s *PaymentService) VerifyPayment(paymentID, adminID uint) (*models.Payment, error) {
	var payment models.Payment

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&payment, paymentID).Error; err != nil {
			return err
		}
		if payment.Status != PaymentStatusPending {
			return ErrPaymentNotPending
		}

		now := time.Now()
		payment.Status = PaymentStatusSuccess
		payment.PaidAt = &now
		payment.VerifiedBy = &adminID
		if err := tx.Save(&payment).Error; err != nil {
			return fmt.Errorf("failed to update payment status: %w", err)
		}

		// Order baru dianggap confirmed setelah pembayarannya diverifikasi
		var order models.Order
		if err := tx.First(&order, payment.OrderID).Error; err != nil {
			return fmt.Errorf("failed to find order: %w", err)
		}
		if order.Status == models.OrderStatusNew {
			order.Status = models.OrderStatusConfirmed
			if err := tx.Save(&order).Error; err != nil {
				return fmt.Errorf("failed to update order status: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// SettleCODPayment menyelesaikan payment COD milik satu order saat
// order tersebut delivered.
func (s *PaymentService) SettleCODPayment(orderID uint) error {
	now := time.Now()
	return s.db.Model(&models.Payment{}).
		Where("order_id = ? AND method = ? AND status = ?", orderID, PaymentMethodCOD, PaymentStatusPending).
		Updates(map[string]interface{}{
			"status":     PaymentStatusSuccess,
			"paid_at":    now,
			"updated_at": now,
		}).Error
}

// StartTimeoutChecker menjalankan goroutine yang meng-expire payment
// online yang lewat batas waktunya.
func (s *PaymentService) StartTimeoutChecker() {
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			s.CheckExpiredPayments()
		}
	}()
}

// CheckExpiredPayments memeriksa payment pending yang sudah lewat
// expired_at dan membatalkan ordernya.
func (s *PaymentService) CheckExpiredPayments() {
	var payments []models.Payment
	now := time.Now()

	if err := s.db.
		Where("status = ? AND expired_at IS NOT NULL AND expired_at < ?", PaymentStatusPending, now).
		Find(&payments).Error; err != nil {
		utils.ErrorLogger.Printf("Error checking expired payments: %v", err)
		return
	}

	for _, payment := range payments {
		payment.Status = PaymentStatusExpired
		if err := s.db.Save(&payment).Error; err != nil {
			utils.ErrorLogger.Printf("Error updating expired payment %d: %v", payment.ID, err)
			continue
		}

		// Order yang pembayarannya expired dibatalkan, kecuali sudah
		// berjalan di dapur
		res := s.db.Model(&models.Order{}).
			Where("id = ? AND status IN ?", payment.OrderID,
				[]string{models.OrderStatusNew, models.OrderStatusConfirmed}).
			Updates(map[string]interface{}{
				"status":        models.OrderStatusCancelled,
				"cancel_reason": "Payment expired",
				"cancelled_by":  "system",
				"updated_at":    now,
			})
		if res.Error != nil {
			utils.ErrorLogger.Printf("Error cancelling order %d for expired payment: %v", payment.OrderID, res.Error)
			continue
		}

		utils.InfoLogger.Printf("Payment %d expired, order %d cancelled", payment.ID, payment.OrderID)
	}
}
