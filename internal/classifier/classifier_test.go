package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantKind  Kind
		wantQuery string
	}{
		{
			name:      "buy keyword routes to product query",
			input:     "buy a laptop",
			wantKind:  ProductQuery,
			wantQuery: "a laptop",
		},
		{
			name:      "general question stays general",
			input:     "what's 2+2",
			wantKind:  General,
			wantQuery: "what's 2+2",
		},
		{
			name:      "case-insensitive keyword match",
			input:     "Can you recommend PRODUCTS for hiking",
			wantKind:  ProductQuery,
			wantQuery: "hiking",
		},
		{
			name:      "shop keyword with stop phrases stripped",
			input:     "shop for wireless headphones",
			wantKind:  ProductQuery,
			wantQuery: "shop wireless headphones",
		},
		{
			name:      "price keyword",
			input:     "what is the price of a kettle",
			wantKind:  ProductQuery,
			wantQuery: "what is the price of a kettle",
		},
		{
			name:      "negation is not handled",
			input:     "don't show me products",
			wantKind:  ProductQuery,
			wantQuery: "don't me",
		},
		{
			name:      "stripping can produce an empty query",
			input:     "find products",
			wantKind:  ProductQuery,
			wantQuery: "",
		},
		{
			name:      "keyword inside a larger word still matches",
			input:     "tell me about amazonian rainforests to purchase",
			wantKind:  ProductQuery,
			wantQuery: "tell me amazonian rainforests to purchase",
		},
		{
			name:      "empty input is general",
			input:     "",
			wantKind:  General,
			wantQuery: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.input)
			assert.Equal(t, tt.wantKind, got.Kind)
			assert.Equal(t, tt.wantQuery, got.Query)
		})
	}
}

func TestClassify_IsDeterministic(t *testing.T) {
	first := Classify("buy a mechanical keyboard")
	second := Classify("buy a mechanical keyboard")
	assert.Equal(t, first, second)
}
