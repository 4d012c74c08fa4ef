package markup

// FareLine is one passenger-type fare breakdown within an offer.
// Monetary amounts are whole currency units in the offer's currency.
//
// MarkupApplied marks that the markup has already been folded into
// BaseFare/Discount/SubTotal; the engine returns tagged lines unchanged
// so that an offer re-rendered through several passes is never charged
// commission twice.
type FareLine struct {
	PaxType  string `json:"pax_type"`
	PaxCount int    `json:"pax_count"`
	Currency string `json:"currency"`

	BaseFare int64 `json:"base_fare"`
	Tax      int64 `json:"tax"`
	OtherFee int64 `json:"other_fee"`
	VAT      int64 `json:"vat"`
	Discount int64 `json:"discount"`
	SubTotal int64 `json:"sub_total"`

	MarkupApplied bool `json:"markup_applied"`
}

// SummaryQuote is the illustrative total shown on the standalone markup
// calculation screen.
type SummaryQuote struct {
	Payable       int64   `json:"payable"`
	VAT           int64   `json:"vat"`
	MarkupPercent float64 `json:"markup_percent"`
	MarkupAmount  int64   `json:"markup_amount"`
	TotalAmount   int64   `json:"total_amount"`
}

// SellQuote is the offer-sell confirmation total. Discount here is the
// gap between the upstream gross and the post-markup total, not the
// commission.
type SellQuote struct {
	Gross         int64   `json:"gross"`
	Payable       int64   `json:"payable"`
	MarkupPercent float64 `json:"markup_percent"`
	Markup        int64   `json:"markup"`
	Total         int64   `json:"total"`
	Discount      int64   `json:"discount"`
}

// RuleInput carries an admin form submission for creating or editing a
// markup rule. A zero ID means create; a non-zero ID edits that rule in
// place.
type RuleInput struct {
	ID            uint    `json:"id"`
	AirlineCode   string  `json:"airline_code"`
	Role          string  `json:"role"`
	FromAirport   string  `json:"from_airport"`
	ToAirport     string  `json:"to_airport"`
	MarkupPercent float64 `json:"markup_percent"`
}
