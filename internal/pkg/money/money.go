package money

import (
	"math"

	"easybazar-backend/internal/pkg/apperr"
)

// ToCents converts a major-unit amount (e.g. 150.50 PLN) to minor units
// (15050 groszy) by rounding to the nearest integer. Every write path must
// store prices through this conversion.
func ToCents(amount float64) (int64, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return 0, apperr.Validation("Price must be a positive number")
	}
	return int64(math.Round(amount * 100)), nil
}
