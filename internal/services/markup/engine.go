package markup

import (
	"math"

	"github.com/shopspring/decimal"
)

// The engine is total: a missing or non-numeric percentage and missing
// fare sub-fields are treated as zero, never as an error. All rounding
// is to the nearest whole currency unit, half away from zero.

var oneHundred = decimal.NewFromInt(100)

func finiteOrZero(percent float64) float64 {
	if math.IsNaN(percent) || math.IsInf(percent, 0) {
		return 0
	}
	return percent
}

// roundPercentOf returns round(percent/100 * amount) as a whole currency
// unit, half away from zero.
func roundPercentOf(amount int64, percent float64) int64 {
	return decimal.NewFromInt(amount).
		Mul(decimal.NewFromFloat(percent)).
		Div(oneHundred).
		Round(0).
		IntPart()
}

// Commission returns the unsigned commission for a base fare:
// round(|percent|/100 * baseFare).
func Commission(baseFare int64, percent float64) int64 {
	return roundPercentOf(baseFare, math.Abs(finiteOrZero(percent)))
}

// ApplyToFareLine folds a resolved markup percentage into one fare line.
// The base fare absorbs the signed commission, the discount field
// carries the signed commission, and the subtotal is recomputed as
// baseFare + tax + vat. OtherFee is carried through but is not part of
// the per-line subtotal.
//
// A line already tagged MarkupApplied is returned unchanged, so applying
// twice equals applying once.
func ApplyToFareLine(line FareLine, percent float64) FareLine {
	if line.MarkupApplied {
		return line
	}
	percent = finiteOrZero(percent)

	commission := Commission(line.BaseFare, percent)
	signed := commission
	if percent < 0 {
		signed = -commission
	}

	line.BaseFare += signed
	line.Discount = signed
	line.SubTotal = line.BaseFare + line.Tax + line.VAT
	line.MarkupApplied = true
	return line
}

// ApplyToOffer applies one resolved percentage to every fare line of an
// offer. Fare lines are independent; the order total is the sum of the
// adjusted per-line subtotals.
func ApplyToOffer(lines []FareLine, percent float64) ([]FareLine, int64) {
	adjusted := make([]FareLine, len(lines))
	for i, line := range lines {
		adjusted[i] = ApplyToFareLine(line, percent)
	}
	return adjusted, OrderTotal(adjusted)
}

// OrderTotal sums the per-line subtotals of an offer.
func OrderTotal(lines []FareLine) int64 {
	var total int64
	for _, line := range lines {
		total += line.SubTotal
	}
	return total
}

// SummaryTotal computes the standalone markup calculation display:
// markupAmount = round(percent/100 * payable), added as-is (no sign
// flip), with vat added after markup. Payable excludes vat.
func SummaryTotal(payable, vat int64, percent float64) SummaryQuote {
	percent = finiteOrZero(percent)
	markupAmount := roundPercentOf(payable, percent)
	return SummaryQuote{
		Payable:       payable,
		VAT:           vat,
		MarkupPercent: percent,
		MarkupAmount:  markupAmount,
		TotalAmount:   payable + markupAmount + vat,
	}
}

// SellSummary computes the offer-sell confirmation totals. Discount here
// is redefined as gross minus the post-markup total.
func SellSummary(gross, payable int64, percent float64) SellQuote {
	percent = finiteOrZero(percent)
	markup := roundPercentOf(payable, percent)
	total := payable + markup
	return SellQuote{
		Gross:         gross,
		Payable:       payable,
		MarkupPercent: percent,
		Markup:        markup,
		Total:         total,
		Discount:      gross - total,
	}
}
