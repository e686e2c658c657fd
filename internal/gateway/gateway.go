// Package gateway wraps the two external providers behind narrow interfaces
// and translates provider-specific failures into a small error taxonomy.
// Calls are single-attempt; failures propagate immediately with no retries.
package gateway

import "context"

// Generator produces text from a single prompt
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Searcher looks up catalog products for a query. Ordering is
// provider-defined and preserved; callers take the slice they need.
type Searcher interface {
	SearchProducts(ctx context.Context, query string) ([]Product, error)
}

// DefaultTimeoutSeconds bounds each provider call. A hung provider would
// otherwise hang the whole session; timeouts surface as ErrProviderUnavailable.
const DefaultTimeoutSeconds = 30
