package format

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/smartpick/smartpick/internal/gateway"
)

func sampleProducts(n int) []gateway.Product {
	products := make([]gateway.Product, 0, n)
	for i := 1; i <= n; i++ {
		products = append(products, gateway.Product{
			Name:        fmt.Sprintf("Product %d", i),
			Price:       fmt.Sprintf("$%d.99", i*10),
			Rating:      "4.2",
			URL:         fmt.Sprintf("https://example.com/p%d", i),
			Description: "A fine product",
			ReviewCount: i * 100,
		})
	}
	return products
}

func TestDocument_Layout(t *testing.T) {
	products := sampleProducts(3)
	products[0].ImageURL = "https://example.com/p1.jpg"

	doc := Document(products, "Here are some great picks.")

	assert.True(t, strings.HasPrefix(doc, "# 🛍️ Product Recommendations\n"))
	assert.Contains(t, doc, "Here are some great picks.")
	assert.Contains(t, doc, "## Top Products Found")
	assert.Equal(t, 3, strings.Count(doc, "\n### "))
	assert.Contains(t, doc, "### 1. Product 1")
	assert.Contains(t, doc, "**Price:** $10.99")
	assert.Contains(t, doc, "**Rating:** 4.2 (100 reviews)")
	assert.Contains(t, doc, "[View Product](https://example.com/p1)")
	assert.Contains(t, doc, "_Prices and availability are subject to change")

	// Image line only for the product that has one
	assert.Equal(t, 1, strings.Count(doc, "!["))
	assert.Contains(t, doc, "![Product 1](https://example.com/p1.jpg)")
}

func TestDocument_CapsAtFiveProducts(t *testing.T) {
	doc := Document(sampleProducts(8), "summary")

	assert.Equal(t, 5, strings.Count(doc, "\n### "))
	assert.Contains(t, doc, "### 5. Product 5")
	assert.NotContains(t, doc, "Product 6")
}

func TestDocument_EmptyProductList(t *testing.T) {
	doc := Document(nil, "Nothing to compare.")

	assert.Contains(t, doc, "# 🛍️ Product Recommendations")
	assert.Contains(t, doc, "Nothing to compare.")
	assert.Contains(t, doc, "## Top Products Found")
	assert.NotContains(t, doc, "### ")
	assert.Contains(t, doc, "_Prices and availability")
}

func TestDocument_IsDeterministic(t *testing.T) {
	products := sampleProducts(2)
	assert.Equal(t, Document(products, "s"), Document(products, "s"))
}

func TestSummaryPrompt(t *testing.T) {
	prompt := SummaryPrompt("headphones", sampleProducts(7))

	assert.Contains(t, prompt, `searched for "headphones"`)
	assert.Contains(t, prompt, "1. Product 1")
	assert.Contains(t, prompt, "5. Product 5")
	assert.NotContains(t, prompt, "Product 6")
}
