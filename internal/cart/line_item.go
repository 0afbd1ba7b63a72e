package cart

import (
	"github.com/nmoreira/storefront-core/internal/catalog"
	"github.com/shopspring/decimal"
)

// LineItem is one cart entry. Product fields are copied in at add time, so
// the displayed title and price are a snapshot from when the product was
// added, not a live link into the catalog.
type LineItem struct {
	ProductID int64           `json:"productId"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Thumbnail string          `json:"thumbnail,omitempty"`
	Quantity  int             `json:"quantity"`
}

// LineTotal returns price times quantity for this line.
func (li LineItem) LineTotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

func lineItemFromProduct(product catalog.Product, quantity int) LineItem {
	return LineItem{
		ProductID: product.ID,
		Title:     product.Title,
		Price:     product.Price,
		Thumbnail: product.ImageURL(),
		Quantity:  quantity,
	}
}
