package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCardNumber(t *testing.T) {
	tests := []struct {
		name     string
		number   string
		expected bool
	}{
		{name: "Visa test number", number: "4111111111111111", expected: true},
		{name: "Mastercard test number", number: "5555555555554444", expected: true},
		{name: "Luhn failure", number: "4111111111111112", expected: false},
		{name: "Too short", number: "2377225624", expected: false},
		{name: "Too long", number: "41111111111111111111", expected: false},
		{name: "Non digits", number: "4111-1111-1111-1111", expected: false},
		{name: "Empty", number: "", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsCardNumber(tt.number))
		})
	}
}
