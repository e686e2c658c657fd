// Package classifier routes raw utterances to an execution path.
// The keyword heuristic is deliberately coarse: it has no negation handling
// ("don't show me products" still classifies as a product query) and that is
// contractual behavior, not a bug to fix here.
package classifier

import (
	"regexp"
	"strings"
)

// Kind is the execution path chosen for an utterance
type Kind int

const (
	// General routes to a plain language-generation call
	General Kind = iota
	// ProductQuery routes to the search-and-summarize pipeline
	ProductQuery
)

// Classification is the result of classifying one utterance. For ProductQuery,
// Query holds the cleaned search term; for General it holds the raw input.
type Classification struct {
	Kind  Kind
	Query string
}

// productKeywords trigger the product pipeline on substring match
var productKeywords = []string{"product", "buy", "price", "amazon", "shop", "purchase"}

// stopPhrases are stripped from matched queries before searching.
// Multi-word phrases come first so "can you" is removed as a unit.
var stopPhrases = regexp.MustCompile(`\b(can you|look up|find|show|products|for|about|buy|recommend|search)\b`)

// Classify maps a raw utterance to an execution path. Pure and deterministic.
func Classify(raw string) Classification {
	lowered := strings.ToLower(raw)

	matched := false
	for _, keyword := range productKeywords {
		if strings.Contains(lowered, keyword) {
			matched = true
			break
		}
	}
	if !matched {
		return Classification{Kind: General, Query: raw}
	}

	cleaned := stopPhrases.ReplaceAllString(lowered, " ")
	cleaned = strings.Join(strings.Fields(cleaned), " ")

	// An empty cleaned query is still issued; the gateway reports it as a
	// no-results condition rather than the classifier guarding here.
	return Classification{Kind: ProductQuery, Query: cleaned}
}
