package markup

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommission_Rounding(t *testing.T) {
	tests := []struct {
		name     string
		baseFare int64
		percent  float64
		want     int64
	}{
		{name: "five percent of 2828", baseFare: 2828, percent: 5, want: 141},
		{name: "half up at exactly .5", baseFare: 101, percent: 0.5, want: 1},
		{name: "zero percent", baseFare: 2828, percent: 0, want: 0},
		{name: "zero base", baseFare: 0, percent: 5, want: 0},
		{name: "negative percent uses magnitude", baseFare: 1000, percent: -10, want: 100},
		{name: "rounds down below half", baseFare: 100, percent: 0.4, want: 0},
		{name: "nan treated as zero", baseFare: 1000, percent: math.NaN(), want: 0},
		{name: "inf treated as zero", baseFare: 1000, percent: math.Inf(1), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Commission(tt.baseFare, tt.percent))
		})
	}
}

func TestApplyToFareLine(t *testing.T) {
	t.Run("positive markup raises base fare", func(t *testing.T) {
		line := FareLine{
			PaxType:  "ADT",
			PaxCount: 1,
			BaseFare: 2828,
			Tax:      0,
			VAT:      10,
		}

		got := ApplyToFareLine(line, 5)

		assert.Equal(t, int64(2969), got.BaseFare)
		assert.Equal(t, int64(141), got.Discount)
		assert.Equal(t, int64(2979), got.SubTotal)
		assert.True(t, got.MarkupApplied)
	})

	t.Run("negative markup lowers base fare", func(t *testing.T) {
		line := FareLine{
			BaseFare: 1000,
			Tax:      50,
			VAT:      20,
		}

		got := ApplyToFareLine(line, -10)

		assert.Equal(t, int64(900), got.BaseFare)
		assert.Equal(t, int64(-100), got.Discount)
		assert.Equal(t, int64(970), got.SubTotal)
	})

	t.Run("zero percent leaves amounts unchanged but tags the line", func(t *testing.T) {
		line := FareLine{BaseFare: 500, Tax: 25, VAT: 5}

		got := ApplyToFareLine(line, 0)

		assert.Equal(t, int64(500), got.BaseFare)
		assert.Equal(t, int64(0), got.Discount)
		assert.Equal(t, int64(530), got.SubTotal)
		assert.True(t, got.MarkupApplied)
	})

	t.Run("applying twice equals applying once", func(t *testing.T) {
		line := FareLine{BaseFare: 2828, VAT: 10}

		once := ApplyToFareLine(line, 5)
		twice := ApplyToFareLine(once, 5)

		assert.Equal(t, once, twice)
	})

	t.Run("other fee stays out of the line subtotal", func(t *testing.T) {
		line := FareLine{BaseFare: 1000, Tax: 100, OtherFee: 77, VAT: 0}

		got := ApplyToFareLine(line, 0)

		assert.Equal(t, int64(1100), got.SubTotal)
		assert.Equal(t, int64(77), got.OtherFee)
	})

	t.Run("non-finite percent is treated as zero", func(t *testing.T) {
		line := FareLine{BaseFare: 1000, Tax: 10}

		got := ApplyToFareLine(line, math.NaN())

		assert.Equal(t, int64(1000), got.BaseFare)
		assert.Equal(t, int64(1010), got.SubTotal)
	})
}

func TestApplyToOffer(t *testing.T) {
	lines := []FareLine{
		{PaxType: "ADT", BaseFare: 2828, VAT: 10},
		{PaxType: "CHD", BaseFare: 1000, Tax: 50, VAT: 20},
	}

	adjusted, total := ApplyToOffer(lines, 5)

	assert.Len(t, adjusted, 2)
	assert.Equal(t, int64(2979), adjusted[0].SubTotal)
	// round(5% of 1000) = 50
	assert.Equal(t, int64(1120), adjusted[1].SubTotal)
	assert.Equal(t, int64(4099), total)

	// input slice untouched
	assert.False(t, lines[0].MarkupApplied)
	assert.Equal(t, int64(2828), lines[0].BaseFare)
}

func TestSummaryTotal(t *testing.T) {
	t.Run("agrees with the per-line flow on a single line", func(t *testing.T) {
		line := ApplyToFareLine(FareLine{BaseFare: 2828, VAT: 10}, 5)
		quote := SummaryTotal(2828, 10, 5)

		assert.Equal(t, int64(141), quote.MarkupAmount)
		assert.Equal(t, int64(2979), quote.TotalAmount)
		assert.Equal(t, line.SubTotal, quote.TotalAmount)
	})

	t.Run("negative percent subtracts without a sign flip", func(t *testing.T) {
		quote := SummaryTotal(1000, 20, -10)

		assert.Equal(t, int64(-100), quote.MarkupAmount)
		assert.Equal(t, int64(920), quote.TotalAmount)
	})

	t.Run("zero percent", func(t *testing.T) {
		quote := SummaryTotal(2828, 10, 0)

		assert.Equal(t, int64(0), quote.MarkupAmount)
		assert.Equal(t, int64(2838), quote.TotalAmount)
	})
}

func TestSellSummary(t *testing.T) {
	t.Run("discount is gross minus post-markup total", func(t *testing.T) {
		quote := SellSummary(3000, 2828, 5)

		assert.Equal(t, int64(141), quote.Markup)
		assert.Equal(t, int64(2969), quote.Total)
		assert.Equal(t, int64(31), quote.Discount)
	})

	t.Run("negative discount when markup pushes past gross", func(t *testing.T) {
		quote := SellSummary(2900, 2828, 5)

		assert.Equal(t, int64(2969), quote.Total)
		assert.Equal(t, int64(-69), quote.Discount)
	})

	t.Run("zero percent leaves payable as total", func(t *testing.T) {
		quote := SellSummary(3000, 2828, 0)

		assert.Equal(t, int64(0), quote.Markup)
		assert.Equal(t, int64(2828), quote.Total)
		assert.Equal(t, int64(172), quote.Discount)
	})
}

func TestOrderTotal(t *testing.T) {
	lines := []FareLine{
		{SubTotal: 2979},
		{SubTotal: 1120},
	}
	assert.Equal(t, int64(4099), OrderTotal(lines))
	assert.Equal(t, int64(0), OrderTotal(nil))
}
