package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Fetcher retrieves the current rate map from the external rate API.
type Fetcher interface {
	Fetch(ctx context.Context) (map[string]float64, error)
}

// HTTPFetcher fetches conversion rates from an exchangerate-api style
// endpoint: GET <base>/v6/<key>/latest/USD returning a conversion_rates map.
type HTTPFetcher struct {
	url    string
	client *http.Client
}

func NewHTTPFetcher(baseURL, apiKey string) *HTTPFetcher {
	return &HTTPFetcher{
		url:    fmt.Sprintf("%s/v6/%s/latest/USD", baseURL, apiKey),
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context) (map[string]float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build rate request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch exchange rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rate API returned status %d", resp.StatusCode)
	}

	var payload struct {
		ConversionRates map[string]float64 `json:"conversion_rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode rate response: %w", err)
	}
	if len(payload.ConversionRates) == 0 {
		return nil, fmt.Errorf("rate response contained no conversion_rates")
	}

	return payload.ConversionRates, nil
}
