package flightapi

import "skyfare/internal/services/markup"

// SearchQuery shapes an offer search against the upstream API.
type SearchQuery struct {
	FromAirport   string `json:"from_airport"`
	ToAirport     string `json:"to_airport"`
	DepartureDate string `json:"departure_date"`
	Adults        int    `json:"adults"`
	Children      int    `json:"children"`
	Infants       int    `json:"infants"`
	CabinClass    string `json:"cabin_class"`
}

// Offer is the decoded upstream offer, reduced to the fields the
// dashboard reads. Fare lines start untagged; markup is applied later by
// the pricing flow.
type Offer struct {
	ID          string            `json:"id"`
	AirlineCode string            `json:"airline_code"`
	AirlineName string            `json:"airline_name"`
	FromAirport string            `json:"from_airport"`
	ToAirport   string            `json:"to_airport"`
	Currency    string            `json:"currency"`
	Gross       int64             `json:"gross"`
	Payable     int64             `json:"payable"`
	FareLines   []markup.FareLine `json:"fare_lines"`
}

// The upstream response is loosely typed and omits zero-value fields, so
// every numeric is a pointer here and resolved through orZero/orOne.

type offerEnvelope struct {
	Offers []offerPayload `json:"offers"`
}

type offerPayload struct {
	OfferID string        `json:"offerId"`
	Carrier *carrierInfo  `json:"carrier"`
	Route   *routeInfo    `json:"route"`
	Price   *priceInfo    `json:"price"`
	Fares   []farePayload `json:"fareDetails"`
}

type carrierInfo struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type routeInfo struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}

type priceInfo struct {
	Currency string `json:"currency"`
	Gross    *int64 `json:"gross"`
	Payable  *int64 `json:"payable"`
}

type farePayload struct {
	PaxType  string `json:"paxType"`
	PaxCount *int   `json:"paxCount"`
	BaseFare *int64 `json:"baseFare"`
	Tax      *int64 `json:"tax"`
	OtherFee *int64 `json:"otherFee"`
	VAT      *int64 `json:"vat"`
}

func orZero(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}

func orOne(v *int) int {
	if v == nil {
		return 1
	}
	return *v
}

func (p offerPayload) toOffer() Offer {
	offer := Offer{
		ID: p.OfferID,
	}
	if p.Carrier != nil {
		offer.AirlineCode = p.Carrier.Code
		offer.AirlineName = p.Carrier.Name
	}
	if p.Route != nil {
		offer.FromAirport = p.Route.Origin
		offer.ToAirport = p.Route.Destination
	}
	if p.Price != nil {
		offer.Currency = p.Price.Currency
		offer.Gross = orZero(p.Price.Gross)
		offer.Payable = orZero(p.Price.Payable)
	}
	for _, fare := range p.Fares {
		offer.FareLines = append(offer.FareLines, markup.FareLine{
			PaxType:  fare.PaxType,
			PaxCount: orOne(fare.PaxCount),
			Currency: offer.Currency,
			BaseFare: orZero(fare.BaseFare),
			Tax:      orZero(fare.Tax),
			OtherFee: orZero(fare.OtherFee),
			VAT:      orZero(fare.VAT),
		})
	}
	return offer
}
