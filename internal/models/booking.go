package models

import "gorm.io/gorm"

// Booking order statuses
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusTicketed  = "ticketed"
	OrderStatusCancelled = "cancelled"
)

// BookingOrder is one confirmed flight order. Monetary amounts are whole
// currency units. GrossAmount is the upstream pre-markup total including
// other fees; TotalAmount is the sum of markup-adjusted fare-line
// subtotals and is the amount charged.
type BookingOrder struct {
	gorm.Model
	Reference    string `gorm:"uniqueIndex;size:12;not null" json:"reference"`
	UserID       uint   `gorm:"index;not null" json:"user_id"`
	OfferID      string `gorm:"size:64" json:"offer_id"`
	AirlineCode  string `gorm:"size:2;index" json:"airline_code"`
	FromAirport  string `gorm:"size:3" json:"from_airport"`
	ToAirport    string `gorm:"size:3" json:"to_airport"`
	Status       string `gorm:"default:'pending';index" json:"status"`
	Currency     string `gorm:"size:3" json:"currency"`
	GrossAmount  int64  `json:"gross_amount"`
	Payable      int64  `json:"payable"`
	MarkupAmount int64  `json:"markup_amount"`
	TotalAmount  int64  `json:"total_amount"`
	PaymentRef   string `gorm:"size:64" json:"payment_ref"`
	FareSnapshot JSON   `gorm:"type:jsonb" json:"fare_snapshot"`
}

// RefundRequest tracks a refund raised against a booking order.
type RefundRequest struct {
	gorm.Model
	OrderID   uint   `gorm:"index;not null" json:"order_id"`
	Reference string `gorm:"size:12" json:"reference"`
	Amount    int64  `json:"amount"`
	Currency  string `gorm:"size:3" json:"currency"`
	Status    string `gorm:"default:'requested';index" json:"status"`
	Reason    string `json:"reason"`
}

// AncillaryRequest tracks an ancillary purchase (baggage, meal, seat)
// raised against a booking order.
type AncillaryRequest struct {
	gorm.Model
	OrderID     uint   `gorm:"index;not null" json:"order_id"`
	Type        string `gorm:"size:24;index" json:"type"`
	Description string `json:"description"`
	Amount      int64  `json:"amount"`
	Currency    string `gorm:"size:3" json:"currency"`
	Status      string `gorm:"default:'requested';index" json:"status"`
}
