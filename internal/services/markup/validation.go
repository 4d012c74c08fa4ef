package markup

import (
	"math"
	"regexp"
	"strings"

	"skyfare/internal/models"
)

var (
	airlineCodeRegex = regexp.MustCompile(`^[A-Z0-9]{2}$`)
	airportCodeRegex = regexp.MustCompile(`^[A-Z0-9]{3}$`)
)

// NormalizeCode uppercases and trims an airline or airport code so that
// "ek" and "EK" form the same lookup key.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func validAirlineCode(code string) bool {
	return airlineCodeRegex.MatchString(code)
}

func validAirportCode(code string) bool {
	return code == "" || airportCodeRegex.MatchString(code)
}

// validateRuleInput checks a normalized rule input before any write.
// Airports must be given both or not at all is NOT required: a rule may
// carry a single airport only through the admin form clearing one side,
// so each side is validated independently.
func validateRuleInput(in RuleInput) error {
	if !validAirlineCode(in.AirlineCode) {
		return ErrInvalidAirlineCode
	}
	if !models.ValidRole(in.Role) {
		return ErrInvalidRole
	}
	if !validAirportCode(in.FromAirport) || !validAirportCode(in.ToAirport) {
		return ErrInvalidAirportCode
	}
	if math.IsNaN(in.MarkupPercent) || math.IsInf(in.MarkupPercent, 0) {
		return ErrInvalidPercent
	}
	return nil
}
