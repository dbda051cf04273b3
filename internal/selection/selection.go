package selection

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"CorpMart/internal/catalog"
)

type Sort string

const (
	SortDefault    Sort = "default"
	SortPriceAsc   Sort = "price-asc"
	SortPriceDesc  Sort = "price-desc"
	SortRatingDesc Sort = "rating-desc"
	SortNameAsc    Sort = "name-asc"
)

// ParseSort maps a user-supplied sort value to a known key. Anything
// unrecognized falls back to the default (input order).
func ParseSort(s string) Sort {
	switch Sort(s) {
	case SortPriceAsc, SortPriceDesc, SortRatingDesc, SortNameAsc:
		return Sort(s)
	default:
		return SortDefault
	}
}

// Filter is the ephemeral, page-local selection state. An empty Categories
// slice means all categories; a nil price bound means unset.
type Filter struct {
	Categories []string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Search     string
	Sort       Sort
}

// Select applies the category, price and search passes in order, then the
// sort pass. The input slice is never mutated, and identical inputs always
// produce identical output sequences.
func Select(products []catalog.Product, f Filter) []catalog.Product {
	cats := make(map[string]struct{}, len(f.Categories))
	for _, c := range f.Categories {
		cats[c] = struct{}{}
	}
	term := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if !passesCategory(p, cats) || !passesPrice(p, f) || !passesSearch(p, term) {
			continue
		}
		out = append(out, p)
	}

	sortProducts(out, f.Sort)
	return out
}

func passesCategory(p catalog.Product, cats map[string]struct{}) bool {
	if len(cats) == 0 {
		return true
	}
	_, ok := cats[p.Category]
	return ok
}

func passesPrice(p catalog.Product, f Filter) bool {
	if f.MinPrice != nil && p.Price.Cmp(*f.MinPrice) < 0 {
		return false
	}
	if f.MaxPrice != nil && p.Price.Cmp(*f.MaxPrice) > 0 {
		return false
	}
	return true
}

func passesSearch(p catalog.Product, term string) bool {
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(p.Name), term) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Category), term) {
		return true
	}
	return p.Description != "" && strings.Contains(strings.ToLower(p.Description), term)
}

// sortProducts reorders in place. The sort is stable: products with equal
// keys keep their relative input order.
func sortProducts(products []catalog.Product, key Sort) {
	switch key {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price.Cmp(products[j].Price) < 0
		})
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price.Cmp(products[j].Price) > 0
		})
	case SortRatingDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating.Cmp(products[j].Rating) > 0
		})
	case SortNameAsc:
		// Loose collation ignores case, so "apple" orders before "Banana".
		col := collate.New(language.Und, collate.Loose)
		sort.SliceStable(products, func(i, j int) bool {
			return col.CompareString(products[i].Name, products[j].Name) < 0
		})
	}
}
