package utils

import "fmt"

// FormatPrice renders an amount the way the shop prints it everywhere:
// dollar sign, two decimals.
func FormatPrice(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}
