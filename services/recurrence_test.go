package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var allDayNames = []string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

// TestNextDeliveryDateAllCombinations menguji seluruh 7x7 kombinasi
// hari anchor vs hari target: hasil harus selalu SETELAH anchor,
// maksimal 7 hari, dan jatuh di hari yang diminta.
func TestNextDeliveryDateAllCombinations(t *testing.T) {
	// 2024-01-07 adalah hari Minggu
	base := time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)

	for offset := 0; offset < 7; offset++ {
		weekStart := base.AddDate(0, 0, offset)
		for targetIdx, dayName := range allDayNames {
			result, err := NextDeliveryDate(weekStart, dayName)
			assert.NoError(t, err)

			assert.True(t, result.After(weekStart),
				"weekStart=%s target=%s: result %s must be after weekStart",
				weekStart.Weekday(), dayName, result.Format("2006-01-02"))

			days := int(result.Sub(weekStart).Hours() / 24)
			assert.GreaterOrEqual(t, days, 1)
			assert.LessOrEqual(t, days, 7)

			assert.Equal(t, time.Weekday(targetIdx), result.Weekday())
		}
	}
}

// TestNextDeliveryDateSameDayRollsForward: anchor Senin + target senin
// harus menghasilkan Senin MINGGU DEPAN, bukan hari yang sama.
func TestNextDeliveryDateSameDayRollsForward(t *testing.T) {
	monday := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) // Senin

	result, err := NextDeliveryDate(monday, "monday")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), result)
}

func TestNextDeliveryDateCaseInsensitive(t *testing.T) {
	monday := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	upper, err := NextDeliveryDate(monday, "THURSDAY")
	assert.NoError(t, err)
	lower, err := NextDeliveryDate(monday, "thursday")
	assert.NoError(t, err)
	assert.Equal(t, lower, upper)

	padded, err := NextDeliveryDate(monday, "  friday ")
	assert.NoError(t, err)
	assert.Equal(t, time.Weekday(5), padded.Weekday())
}

func TestNextDeliveryDateInvalidName(t *testing.T) {
	monday := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := NextDeliveryDate(monday, "funday")
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidDeliveryDay))

	_, err = NextDeliveryDate(monday, "")
	assert.True(t, errors.Is(err, ErrInvalidDeliveryDay))
}

func TestValidateDeliveryDays(t *testing.T) {
	assert.NoError(t, ValidateDeliveryDays([]string{"monday", "Friday", "SUNDAY"}))
	assert.True(t, errors.Is(ValidateDeliveryDays([]string{"monday", "someday"}), ErrInvalidDeliveryDay))
	assert.NoError(t, ValidateDeliveryDays(nil))
}
