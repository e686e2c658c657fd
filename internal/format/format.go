// Package format composes products and a generated summary into a single
// markdown document. Pure text assembly; product fields arrive already
// sentinel-guarded, so no validation happens here.
package format

import (
	"fmt"
	"strings"

	"github.com/smartpick/smartpick/internal/gateway"
)

// MaxProducts caps how many results the document lists
const MaxProducts = 5

const disclaimer = "_Prices and availability are subject to change. Always verify details on the seller's page._"

// Document renders the product recommendation document. At most the first
// MaxProducts products are included, in the order received. Zero products
// still produce a valid document with the summary intact.
func Document(products []gateway.Product, summary string) string {
	if len(products) > MaxProducts {
		products = products[:MaxProducts]
	}

	var b strings.Builder

	b.WriteString("# 🛍️ Product Recommendations\n\n")
	b.WriteString(summary)
	b.WriteString("\n\n## Top Products Found\n\n")

	for i, p := range products {
		fmt.Fprintf(&b, "### %d. %s\n", i+1, p.Name)
		fmt.Fprintf(&b, "**Price:** %s\n", p.Price)
		fmt.Fprintf(&b, "**Rating:** %s (%d reviews)\n", p.Rating, p.ReviewCount)
		fmt.Fprintf(&b, "[View Product](%s)\n", p.URL)
		if p.ImageURL != "" {
			fmt.Fprintf(&b, "![%s](%s)\n", p.Name, p.ImageURL)
		}
		b.WriteString("\n")
	}

	b.WriteString(disclaimer)

	return b.String()
}

// SummaryPrompt builds the generation prompt for summarizing search results.
// The prompt covers the same product slice the document will show.
func SummaryPrompt(query string, products []gateway.Product) string {
	if len(products) > MaxProducts {
		products = products[:MaxProducts]
	}

	var b strings.Builder

	fmt.Fprintf(&b, "A shopper searched for %q. Summarize these products in a short, helpful paragraph comparing their strengths:\n\n", query)
	for i, p := range products {
		fmt.Fprintf(&b, "%d. %s — %s, rated %s (%d reviews). %s\n",
			i+1, p.Name, p.Price, p.Rating, p.ReviewCount, p.Description)
	}

	return b.String()
}
