package markup

import "errors"

// Service errors
var (
	ErrRuleNotFound       = errors.New("markup rule not found")
	ErrDuplicateRule      = errors.New("a markup rule already exists for this airline, role and route; edit the existing rule instead")
	ErrInvalidAirlineCode = errors.New("airline code must be exactly 2 alphanumeric characters")
	ErrInvalidAirportCode = errors.New("airport code must be empty or exactly 3 alphanumeric characters")
	ErrInvalidRole        = errors.New("unknown requester role")
	ErrInvalidPercent     = errors.New("markup percent must be a finite number")
)
