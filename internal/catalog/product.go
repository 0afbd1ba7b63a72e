package catalog

import "github.com/shopspring/decimal"

// Product is one catalog entry as reported by the remote source. Fields are
// immutable from the client's perspective; the cart copies what it needs at
// add time instead of linking back here.
type Product struct {
	ID        int64           `json:"id"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Rating    decimal.Decimal `json:"rating"`
	Category  string          `json:"category"`
	Thumbnail string          `json:"thumbnail,omitempty"`
	Images    []string        `json:"images,omitempty"`
}

// ImageURL returns the preferred display image: thumbnail first, then the
// first gallery image, else empty.
func (p Product) ImageURL() string {
	if p.Thumbnail != "" {
		return p.Thumbnail
	}
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return ""
}
