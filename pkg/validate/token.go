package validate

import (
	"github.com/ShiraazMoollatjie/goluhn"
)

// IsTokenNumber reports whether s is a plausible prepaid voucher number.
// Vendor receipts carry a Luhn check digit.
func IsTokenNumber(s string) bool {
	err := goluhn.Validate(s)
	return err == nil
}
