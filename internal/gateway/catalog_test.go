package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartpick/smartpick/internal/logger"
)

func newTestClient(serverURL string) *CatalogClient {
	return NewCatalogClient(CatalogConfig{
		BaseURL: serverURL,
		APIKey:  "test-key",
		APIHost: "catalog.test",
	}, logger.Nop())
}

func TestCatalogClient_SearchProducts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("X-RapidAPI-Key"))
		assert.Equal(t, "catalog.test", r.Header.Get("X-RapidAPI-Host"))
		assert.Equal(t, "wireless headphones", r.URL.Query().Get("query"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"data": {
				"products": [
					{
						"id": "B001",
						"title": "Noise Cancelling Headphones",
						"price": "$199.99",
						"rating": "4.5",
						"url": "https://example.com/b001",
						"photo": "https://example.com/b001.jpg",
						"description": "Over-ear, 30h battery",
						"reviewsCount": 1284
					},
					{
						"id": "B002",
						"title": "Budget Earbuds",
						"url": "https://example.com/b002"
					}
				]
			}
		}`))
	}))
	defer server.Close()

	products, err := newTestClient(server.URL).SearchProducts(context.Background(), "wireless headphones")
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, "Noise Cancelling Headphones", products[0].Name)
	assert.Equal(t, "$199.99", products[0].Price)
	assert.Equal(t, "4.5", products[0].Rating)
	assert.Equal(t, 1284, products[0].ReviewCount)
	assert.Equal(t, "https://example.com/b001.jpg", products[0].ImageURL)

	// Missing optional fields are sentinel-substituted at ingestion
	assert.Equal(t, "Budget Earbuds", products[1].Name)
	assert.Equal(t, PriceUnavailable, products[1].Price)
	assert.Equal(t, RatingUnavailable, products[1].Rating)
	assert.Equal(t, DescriptionUnavailable, products[1].Description)
	assert.Equal(t, 0, products[1].ReviewCount)
	assert.Empty(t, products[1].ImageURL)
}

func TestCatalogClient_EmptyResultsRaiseNoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": {"products": []}}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).SearchProducts(context.Background(), "unobtainium widget")
	assert.ErrorIs(t, err, ErrNoResults)
}

func TestCatalogClient_MissingProductsFieldIsInvalidShape(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing data envelope", body: `{"status": "OK"}`},
		{name: "missing products list", body: `{"data": {}}`},
		{name: "not json at all", body: `<html>gateway error</html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := newTestClient(server.URL).SearchProducts(context.Background(), "laptop")
			assert.ErrorIs(t, err, ErrInvalidResponse)
		})
	}
}

func TestCatalogClient_HTTPFailuresAreProviderUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).SearchProducts(context.Background(), "laptop")
	assert.ErrorIs(t, err, ErrProviderUnavailable)
}

func TestCatalogClient_NetworkFailureIsProviderUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // closed before use

	_, err := newTestClient(server.URL).SearchProducts(context.Background(), "laptop")
	assert.ErrorIs(t, err, ErrProviderUnavailable)
}

func TestCatalogClient_EmptyQueryStillIssued(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		w.Write([]byte(`{"data": {"products": []}}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).SearchProducts(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoResults)
	assert.Equal(t, "", gotQuery)
}
