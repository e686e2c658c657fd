package gateway

// Sentinel values substituted at ingestion for missing catalog fields.
// Downstream consumers never see empty fields and perform no validation.
const (
	PriceUnavailable       = "Price not available"
	RatingUnavailable      = "No rating"
	DescriptionUnavailable = "No description available"
)

// Product is one catalog result after sentinel substitution
type Product struct {
	Name        string `json:"name"`
	Price       string `json:"price"`
	Rating      string `json:"rating"`
	URL         string `json:"url"`
	ImageURL    string `json:"image_url,omitempty"`
	Description string `json:"description"`
	ReviewCount int    `json:"review_count"`
}

// rawProduct mirrors a single record of the catalog provider's payload
type rawProduct struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Price        string `json:"price"`
	Rating       string `json:"rating"`
	URL          string `json:"url"`
	Photo        string `json:"photo"`
	Description  string `json:"description"`
	ReviewsCount int    `json:"reviewsCount"`
}

// toProduct maps a raw record into a Product, filling sentinels
func (r rawProduct) toProduct() Product {
	p := Product{
		Name:        r.Title,
		Price:       r.Price,
		Rating:      r.Rating,
		URL:         r.URL,
		ImageURL:    r.Photo,
		Description: r.Description,
		ReviewCount: r.ReviewsCount,
	}

	if p.Price == "" {
		p.Price = PriceUnavailable
	}
	if p.Rating == "" {
		p.Rating = RatingUnavailable
	}
	if p.Description == "" {
		p.Description = DescriptionUnavailable
	}

	return p
}
