package validate

import (
	"github.com/ShiraazMoollatjie/goluhn"
)

const (
	minCardDigits = 12
	maxCardDigits = 19
)

// IsCardNumber reports whether s is a plausible payment card number: 12 to 19
// digits passing the Luhn check.
func IsCardNumber(s string) bool {
	if len(s) < minCardDigits || len(s) > maxCardDigits {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return goluhn.Validate(s) == nil
}
