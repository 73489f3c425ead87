package utils

import (
	"math"
	"time"
)

var gatewayDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseGatewayDate parses the date formats Asaas is known to send. The
// returned bool reports whether any layout matched.
func ParseGatewayDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range gatewayDateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// RoundHalfEvenCents converts a decimal monetary amount to integer cents,
// breaking ties toward the even cent (banker's rounding) so repeated small
// settlements do not drift in one direction.
func RoundHalfEvenCents(amount float64) int64 {
	return int64(math.RoundToEven(amount * 100))
}
