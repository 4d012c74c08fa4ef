package models

import "gorm.io/gorm"

// MarkupRule maps (airline code, requester role, optional route) to a
// markup percentage of the base fare. Positive percent is a surcharge,
// negative a discount. A rule with empty FromAirport/ToAirport is the
// catch-all for its airline+role.
//
// The composite unique index enforces at most one rule per identity
// tuple; the route-specific tuple and the blank-route tuple are distinct
// keys.
type MarkupRule struct {
	gorm.Model
	AirlineCode   string  `gorm:"size:2;not null;uniqueIndex:idx_markup_rule_key" json:"airline_code"`
	Role          string  `gorm:"size:16;not null;uniqueIndex:idx_markup_rule_key" json:"role"`
	FromAirport   string  `gorm:"size:3;uniqueIndex:idx_markup_rule_key" json:"from_airport"`
	ToAirport     string  `gorm:"size:3;uniqueIndex:idx_markup_rule_key" json:"to_airport"`
	MarkupPercent float64 `gorm:"not null" json:"markup_percent"`
}

// IsCatchAll reports whether the rule applies to all routes of its
// airline+role.
func (r *MarkupRule) IsCatchAll() bool {
	return r.FromAirport == "" && r.ToAirport == ""
}
