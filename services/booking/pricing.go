package booking

import (
	"math"

	"cleanly/models"
)

// Base hourly rates in GBP per service type.
var hourlyRates = map[models.ServiceType]float64{
	models.ServiceTypeRegular: 25.0,
	models.ServiceTypeDeep:    35.0,
	models.ServiceTypeMoveIn:  40.0,
	models.ServiceTypeMoveOut: 40.0,
	models.ServiceTypeOneTime: 30.0,
}

const defaultHourlyRate = 25.0

// DiscountFactor returns the duration discount applied to the hourly rate:
// 10% off for 6+ hours, 5% off for 4+ hours, full rate below that.
func DiscountFactor(duration int) float64 {
	switch {
	case duration >= 6:
		return 0.9
	case duration >= 4:
		return 0.95
	default:
		return 1.0
	}
}

// CalculatePrice computes the total price for a service type and duration,
// rounded to 2 decimal places.
func CalculatePrice(serviceType models.ServiceType, duration int) float64 {
	rate, ok := hourlyRates[serviceType]
	if !ok {
		rate = defaultHourlyRate
	}
	rate *= DiscountFactor(duration)
	return math.Round(rate*float64(duration)*100) / 100
}
