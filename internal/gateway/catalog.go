package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

// CatalogClient searches a hosted product-catalog API. The provider exposes a
// RapidAPI-style search endpoint returning an envelope with a products list.
type CatalogClient struct {
	baseURL    string
	apiKey     string
	apiHost    string
	httpClient *http.Client
	log        zerolog.Logger
}

// CatalogConfig holds the injected catalog provider settings
type CatalogConfig struct {
	BaseURL        string
	APIKey         string
	APIHost        string // value for the X-RapidAPI-Host header
	TimeoutSeconds int    // defaults to DefaultTimeoutSeconds
}

// searchEnvelope is the provider's response wrapper. Pointers distinguish an
// absent products field (invalid shape) from a present-but-empty list.
type searchEnvelope struct {
	Data *struct {
		Products *[]rawProduct `json:"products"`
	} `json:"data"`
}

// NewCatalogClient creates a catalog search client
func NewCatalogClient(cfg CatalogConfig, log zerolog.Logger) *CatalogClient {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if cfg.TimeoutSeconds <= 0 {
		timeout = DefaultTimeoutSeconds * time.Second
	}

	return &CatalogClient{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		apiHost:    cfg.APIHost,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// SearchProducts queries the catalog provider and maps raw records into
// Products with sentinel substitution. An empty result set (including an
// empty query) yields ErrNoResults so callers can branch on error kind alone.
func (c *CatalogClient) SearchProducts(ctx context.Context, query string) ([]Product, error) {
	searchURL := fmt.Sprintf("%s/search?query=%s&page=1", c.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	if c.apiKey != "" {
		req.Header.Set("X-RapidAPI-Key", c.apiKey)
	}
	if c.apiHost != "" {
		req.Header.Set("X-RapidAPI-Host", c.apiHost)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Msg("catalog request failed")
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.log.Warn().Int("status", resp.StatusCode).Msg("catalog returned non-2xx status")
		return nil, fmt.Errorf("%w: catalog returned %d: %s", ErrProviderUnavailable, resp.StatusCode, string(body))
	}

	var envelope searchEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	if envelope.Data == nil || envelope.Data.Products == nil {
		return nil, fmt.Errorf("%w: products field missing from response", ErrInvalidResponse)
	}

	raw := *envelope.Data.Products
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: query %q", ErrNoResults, query)
	}

	products := make([]Product, 0, len(raw))
	for _, r := range raw {
		products = append(products, r.toProduct())
	}

	return products, nil
}
