package catalog

import (
	"github.com/nmoreira/storefront-core/pkg/enums"
	pkgerrors "github.com/nmoreira/storefront-core/pkg/errors"
	"github.com/shopspring/decimal"
)

// FilterSortState holds the active filter and sort criteria for the derived
// view. It is owned by a single logical writer (the Feed); reads hand out
// copies.
type FilterSortState struct {
	sortOption         enums.SortOption
	selectedCategories []string
	minRating          decimal.Decimal
}

func NewFilterSortState() *FilterSortState {
	return &FilterSortState{sortOption: enums.SortNone}
}

// SetSortOption switches the active ordering.
func (f *FilterSortState) SetSortOption(opt enums.SortOption) error {
	if !opt.IsValid() {
		return errInvalidSortOption(opt)
	}
	f.sortOption = opt
	return nil
}

// SortOption returns the active ordering.
func (f *FilterSortState) SortOption() enums.SortOption {
	return f.sortOption
}

// ToggleCategory adds the category to the selection, or removes it when
// already selected.
func (f *FilterSortState) ToggleCategory(category string) {
	for i, existing := range f.selectedCategories {
		if existing == category {
			f.selectedCategories = append(f.selectedCategories[:i], f.selectedCategories[i+1:]...)
			return
		}
	}
	f.selectedCategories = append(f.selectedCategories, category)
}

// SelectedCategories returns a copy of the active category selection.
func (f *FilterSortState) SelectedCategories() []string {
	out := make([]string, len(f.selectedCategories))
	copy(out, f.selectedCategories)
	return out
}

// IsCategorySelected reports whether the category is part of the selection.
func (f *FilterSortState) IsCategorySelected(category string) bool {
	for _, existing := range f.selectedCategories {
		if existing == category {
			return true
		}
	}
	return false
}

// SetMinRating sets the minimum rating threshold. Zero disables the filter.
func (f *FilterSortState) SetMinRating(min decimal.Decimal) {
	f.minRating = min
}

// MinRating returns the active rating threshold.
func (f *FilterSortState) MinRating() decimal.Decimal {
	return f.minRating
}

// ResetFilters clears categories and rating, leaving the sort untouched.
func (f *FilterSortState) ResetFilters() {
	f.selectedCategories = nil
	f.minRating = decimal.Zero
}

// ResetSorting clears the sort only.
func (f *FilterSortState) ResetSorting() {
	f.sortOption = enums.SortNone
}

// ResetAll clears filters and sorting.
func (f *FilterSortState) ResetAll() {
	f.ResetFilters()
	f.ResetSorting()
}

// HasActiveFilters reports whether any category or rating filter is set.
func (f *FilterSortState) HasActiveFilters() bool {
	return len(f.selectedCategories) > 0 || f.minRating.IsPositive()
}

func errInvalidSortOption(opt enums.SortOption) error {
	return pkgerrors.New(pkgerrors.CodeValidation, "unknown sort option "+string(opt))
}
