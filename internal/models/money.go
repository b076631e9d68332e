package models

import "math"

// Round2 rounds an amount to two decimal places, half away from zero.
// All monetary values in the shop are rounded with this exact rule.
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}
