package flightapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClient_SearchOffers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/offers/search", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "DAC", r.URL.Query().Get("origin"))
		assert.Equal(t, "DXB", r.URL.Query().Get("destination"))
		assert.Equal(t, "2", r.URL.Query().Get("adults"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"offers": [
				{
					"offerId": "OF-1",
					"carrier": {"code": "EK", "name": "Emirates"},
					"route": {"origin": "DAC", "destination": "DXB"},
					"price": {"currency": "BDT", "gross": 3000, "payable": 2828},
					"fareDetails": [
						{"paxType": "ADT", "paxCount": 2, "baseFare": 2828, "vat": 10}
					]
				}
			]
		}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, "test-key")
	offers, err := c.SearchOffers(context.Background(), SearchQuery{
		FromAirport:   "DAC",
		ToAirport:     "DXB",
		DepartureDate: "2026-09-15",
		Adults:        2,
	})

	assert.NoError(t, err)
	assert.Len(t, offers, 1)
	assert.Equal(t, "OF-1", offers[0].ID)
	assert.Equal(t, "EK", offers[0].AirlineCode)
	assert.Equal(t, int64(2828), offers[0].Payable)

	line := offers[0].FareLines[0]
	assert.Equal(t, int64(2828), line.BaseFare)
	assert.Equal(t, int64(10), line.VAT)
	assert.False(t, line.MarkupApplied)
}

func TestClient_PriceOffer(t *testing.T) {
	t.Run("omitted numeric fields default safely", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/offers/OF-2/price", r.URL.Path)

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"offerId": "OF-2",
				"carrier": {"code": "BG"},
				"price": {"currency": "BDT", "payable": 1500},
				"fareDetails": [
					{"paxType": "ADT", "baseFare": 1500}
				]
			}`))
		}))
		defer server.Close()

		c := NewClient(server.URL, "test-key")
		offer, err := c.PriceOffer(context.Background(), "OF-2")

		assert.NoError(t, err)
		assert.Equal(t, int64(0), offer.Gross)
		assert.Equal(t, "", offer.FromAirport)

		line := offer.FareLines[0]
		assert.Equal(t, 1, line.PaxCount)
		assert.Equal(t, int64(0), line.Tax)
		assert.Equal(t, int64(0), line.VAT)
		assert.Equal(t, int64(0), line.OtherFee)
	})

	t.Run("unknown offer", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		c := NewClient(server.URL, "test-key")
		_, err := c.PriceOffer(context.Background(), "missing")

		assert.ErrorIs(t, err, ErrOfferNotFound)
	})

	t.Run("upstream error status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		c := NewClient(server.URL, "test-key")
		_, err := c.PriceOffer(context.Background(), "OF-3")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "502")
	})
}

func TestClient_PriceOffers(t *testing.T) {
	t.Run("prices every offer and keeps request order", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var body string
			switch r.URL.Path {
			case "/offers/A/price":
				body = `{"offerId": "A", "price": {"payable": 100}}`
			case "/offers/B/price":
				body = `{"offerId": "B", "price": {"payable": 200}}`
			default:
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(body))
		}))
		defer server.Close()

		c := NewClient(server.URL, "test-key")
		offers, err := c.PriceOffers(context.Background(), []string{"A", "B"})

		assert.NoError(t, err)
		assert.Len(t, offers, 2)
		assert.Equal(t, "A", offers[0].ID)
		assert.Equal(t, "B", offers[1].ID)
	})

	t.Run("one failure fails the batch", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/offers/bad/price" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"offerId": "A"}`))
		}))
		defer server.Close()

		c := NewClient(server.URL, "test-key")
		_, err := c.PriceOffers(context.Background(), []string{"A", "bad"})

		assert.ErrorIs(t, err, ErrOfferNotFound)
	})

	t.Run("cancelled context discards results", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"offerId": "A"}`))
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		c := NewClient(server.URL, "test-key")
		offers, err := c.PriceOffers(ctx, []string{"A"})

		assert.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, offers)
	})
}
