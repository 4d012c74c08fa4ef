package flightapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"
)

// Service is the upstream flight offer API. The provider is opaque: the
// client only reads carrier, route and fare-detail fields.
type Service interface {
	SearchOffers(ctx context.Context, query SearchQuery) ([]Offer, error)
	PriceOffer(ctx context.Context, offerID string) (*Offer, error)
	PriceOffers(ctx context.Context, offerIDs []string) ([]Offer, error)
}

var ErrOfferNotFound = errors.New("offer not found")

type client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient creates a flight API client for the given provider base URL.
func NewClient(baseURL, apiKey string) Service {
	return &client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *client) SearchOffers(ctx context.Context, query SearchQuery) ([]Offer, error) {
	params := url.Values{}
	params.Set("origin", query.FromAirport)
	params.Set("destination", query.ToAirport)
	params.Set("date", query.DepartureDate)
	params.Set("adults", strconv.Itoa(query.Adults))
	if query.Children > 0 {
		params.Set("children", strconv.Itoa(query.Children))
	}
	if query.Infants > 0 {
		params.Set("infants", strconv.Itoa(query.Infants))
	}
	if query.CabinClass != "" {
		params.Set("cabin", query.CabinClass)
	}

	var envelope offerEnvelope
	if err := c.get(ctx, "/offers/search?"+params.Encode(), &envelope); err != nil {
		return nil, err
	}

	offers := make([]Offer, 0, len(envelope.Offers))
	for _, payload := range envelope.Offers {
		offers = append(offers, payload.toOffer())
	}
	return offers, nil
}

func (c *client) PriceOffer(ctx context.Context, offerID string) (*Offer, error) {
	var payload offerPayload
	if err := c.get(ctx, "/offers/"+url.PathEscape(offerID)+"/price", &payload); err != nil {
		return nil, err
	}
	offer := payload.toOffer()
	return &offer, nil
}

// PriceOffers re-prices a list of offers in parallel. Offers are
// independent, so each one gets its own request; if the caller's context
// is cancelled before the fan-out completes, all results are discarded
// so a stale response never reaches an abandoned view.
func (c *client) PriceOffers(ctx context.Context, offerIDs []string) ([]Offer, error) {
	results := make([]*Offer, len(offerIDs))
	errs := make([]error, len(offerIDs))

	var wg sync.WaitGroup
	for i, id := range offerIDs {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			results[i], errs[i] = c.PriceOffer(ctx, id)
		}(i, id)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	offers := make([]Offer, 0, len(offerIDs))
	for i, result := range results {
		if errs[i] != nil {
			return nil, fmt.Errorf("failed to price offer %s: %w", offerIDs[i], errs[i])
		}
		offers = append(offers, *result)
	}
	return offers, nil
}

func (c *client) get(ctx context.Context, path string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("flight api request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrOfferNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("flight api returned status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(dest)
}
