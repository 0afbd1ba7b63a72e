package catalog

import (
	"sort"

	"github.com/nmoreira/storefront-core/pkg/enums"
)

// Derive computes the visible subset of products for the given criteria.
// Pure: identical inputs always yield an identical sequence. Filtering keeps
// arrival order; price sorting is stable, so equal prices keep their relative
// arrival order.
func Derive(products []Product, state *FilterSortState) []Product {
	filtered := make([]Product, 0, len(products))

	for _, product := range products {
		if len(state.selectedCategories) > 0 && !state.IsCategorySelected(product.Category) {
			continue
		}
		if state.minRating.IsPositive() && product.Rating.LessThan(state.minRating) {
			continue
		}
		filtered = append(filtered, product)
	}

	switch state.sortOption {
	case enums.SortPriceAsc:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Price.LessThan(filtered[j].Price)
		})
	case enums.SortPriceDesc:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Price.GreaterThan(filtered[j].Price)
		})
	}

	return filtered
}
