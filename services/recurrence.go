package services

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDeliveryDay -> nama hari tidak dikenali
var ErrInvalidDeliveryDay = errors.New("invalid delivery day name")

// DefaultDeliveryDays dipakai saat subscription tidak menyetel
// delivery_days sendiri.
var DefaultDeliveryDays = []string{"monday", "tuesday", "wednesday", "thursday", "friday"}

var weekdayIndex = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// NextDeliveryDate menghitung tanggal pengiriman berikutnya untuk hari
// target, dihitung dari weekStart. Hasil selalu jatuh SETELAH weekStart:
// jika hari target sama dengan (atau sudah lewat dari) hari weekStart,
// tanggalnya bergeser ke minggu berikutnya.
func NextDeliveryDate(weekStart time.Time, deliveryDay string) (time.Time, error) {
	target, ok := weekdayIndex[strings.ToLower(strings.TrimSpace(deliveryDay))]
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDeliveryDay, deliveryDay)
	}

	diff := int(target) - int(weekStart.Weekday())
	if diff <= 0 {
		diff += 7
	}
	return weekStart.AddDate(0, 0, diff), nil
}

// ValidateDeliveryDays memastikan seluruh nama hari dikenali sebelum
// proses generate menulis apapun.
func ValidateDeliveryDays(days []string) error {
	for _, d := range days {
		if _, ok := weekdayIndex[strings.ToLower(strings.TrimSpace(d))]; !ok {
			return fmt.Errorf("%w: %q", ErrInvalidDeliveryDay, d)
		}
	}
	return nil
}
