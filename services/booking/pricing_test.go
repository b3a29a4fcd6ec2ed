package booking

import (
	"testing"

	"cleanly/models"

	"github.com/stretchr/testify/assert"
)

// TestDiscountFactor verifies the duration discount tiers.
func TestDiscountFactor(t *testing.T) {
	tests := []struct {
		duration int
		want     float64
	}{
		{1, 1.0},
		{3, 1.0},
		{4, 0.95},
		{5, 0.95},
		{6, 0.9},
		{12, 0.9},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DiscountFactor(tt.duration), "duration %d", tt.duration)
	}
}

// TestCalculatePrice verifies rate lookup, discounting and rounding across
// service types.
func TestCalculatePrice(t *testing.T) {
	tests := []struct {
		name        string
		serviceType models.ServiceType
		duration    int
		want        float64
	}{
		{"regular short", models.ServiceTypeRegular, 2, 50.0},
		{"regular below discount", models.ServiceTypeRegular, 3, 75.0},
		{"deep at 5% tier", models.ServiceTypeDeep, 4, 133.0},
		{"regular at 10% tier", models.ServiceTypeRegular, 6, 135.0},
		{"move in long", models.ServiceTypeMoveIn, 8, 288.0},
		{"move out short", models.ServiceTypeMoveOut, 2, 80.0},
		{"one time single hour", models.ServiceTypeOneTime, 1, 30.0},
		{"unknown type falls back to base rate", models.ServiceType("window"), 2, 50.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculatePrice(tt.serviceType, tt.duration))
		})
	}
}
