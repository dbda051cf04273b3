package selection_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"CorpMart/internal/catalog"
	"CorpMart/internal/selection"
)

func product(id, name, category, price, rating string) catalog.Product {
	return catalog.Product{
		ID:       id,
		Name:     name,
		Category: category,
		Price:    decimal.RequireFromString(price),
		Rating:   decimal.RequireFromString(rating),
	}
}

func ids(products []catalog.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func assertIDs(t *testing.T, got []catalog.Product, want ...string) {
	t.Helper()

	gotIDs := ids(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("got %v, want %v", gotIDs, want)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("got %v, want %v", gotIDs, want)
		}
	}
}

func sampleCatalog() []catalog.Product {
	return []catalog.Product{
		product("1", "Widget", "a", "10", "4.5"),
		product("2", "Gadget", "b", "20", "3.0"),
	}
}

func TestCategoryFilter(t *testing.T) {
	got := selection.Select(sampleCatalog(), selection.Filter{Categories: []string{"a"}})
	assertIDs(t, got, "1")
}

func TestEmptyCategorySelectionReturnsAll(t *testing.T) {
	got := selection.Select(sampleCatalog(), selection.Filter{})
	assertIDs(t, got, "1", "2")
}

func TestPriceBounds(t *testing.T) {
	min := decimal.RequireFromString("15")
	got := selection.Select(sampleCatalog(), selection.Filter{MinPrice: &min})
	assertIDs(t, got, "2")

	max := decimal.RequireFromString("15")
	got = selection.Select(sampleCatalog(), selection.Filter{MaxPrice: &max})
	assertIDs(t, got, "1")

	// Inclusive on both ends.
	exact := decimal.RequireFromString("10")
	got = selection.Select(sampleCatalog(), selection.Filter{MinPrice: &exact, MaxPrice: &exact})
	assertIDs(t, got, "1")
}

func TestSearchMatchesDescriptionCaseInsensitive(t *testing.T) {
	products := []catalog.Product{
		product("1", "Plain Tee", "clothing", "10", "4.0"),
		product("2", "Mug", "kitchen", "5", "4.0"),
	}
	products[0].Description = "A comfortable cotton Shirt for every day."

	got := selection.Select(products, selection.Filter{Search: "shirt"})
	assertIDs(t, got, "1")
}

func TestSearchMatchesNameAndCategory(t *testing.T) {
	products := sampleCatalog()

	got := selection.Select(products, selection.Filter{Search: "WIDGET"})
	assertIDs(t, got, "1")

	got = selection.Select(products, selection.Filter{Search: "b"})
	assertIDs(t, got, "2")
}

func TestEmptyDescriptionDoesNotMatch(t *testing.T) {
	got := selection.Select(sampleCatalog(), selection.Filter{Search: "cotton"})
	assertIDs(t, got)
}

func TestSortPriceAsc(t *testing.T) {
	products := []catalog.Product{
		product("1", "C", "x", "30", "1"),
		product("2", "A", "x", "10", "2"),
		product("3", "B", "x", "20", "3"),
	}

	got := selection.Select(products, selection.Filter{Sort: selection.SortPriceAsc})
	assertIDs(t, got, "2", "3", "1")
}

func TestSortPriceDescAndRatingDesc(t *testing.T) {
	products := []catalog.Product{
		product("1", "C", "x", "30", "1"),
		product("2", "A", "x", "10", "2"),
		product("3", "B", "x", "20", "3"),
	}

	got := selection.Select(products, selection.Filter{Sort: selection.SortPriceDesc})
	assertIDs(t, got, "1", "3", "2")

	got = selection.Select(products, selection.Filter{Sort: selection.SortRatingDesc})
	assertIDs(t, got, "3", "2", "1")
}

func TestSortNameAscLocaleAware(t *testing.T) {
	products := []catalog.Product{
		product("1", "Banana", "x", "1", "1"),
		product("2", "apple", "x", "1", "1"),
	}

	got := selection.Select(products, selection.Filter{Sort: selection.SortNameAsc})
	assertIDs(t, got, "2", "1")
}

func TestSortIsStable(t *testing.T) {
	products := []catalog.Product{
		product("1", "A", "x", "10", "1"),
		product("2", "B", "x", "10", "1"),
		product("3", "C", "x", "10", "1"),
	}

	got := selection.Select(products, selection.Filter{Sort: selection.SortPriceAsc})
	assertIDs(t, got, "1", "2", "3")
}

func TestDefaultSortPreservesInputOrder(t *testing.T) {
	products := []catalog.Product{
		product("1", "Z", "x", "30", "1"),
		product("2", "A", "x", "10", "5"),
	}

	got := selection.Select(products, selection.Filter{Sort: selection.SortDefault})
	assertIDs(t, got, "1", "2")
}

func TestSelectIsDeterministic(t *testing.T) {
	products := sampleCatalog()
	f := selection.Filter{Categories: []string{"a", "b"}, Sort: selection.SortPriceDesc}

	first := selection.Select(products, f)
	second := selection.Select(products, f)

	assertIDs(t, second, ids(first)...)
}

func TestSelectDoesNotMutateInput(t *testing.T) {
	products := []catalog.Product{
		product("1", "Z", "x", "30", "1"),
		product("2", "A", "x", "10", "5"),
	}

	selection.Select(products, selection.Filter{Sort: selection.SortPriceAsc})

	assertIDs(t, products, "1", "2")
}

func TestParseSort(t *testing.T) {
	if got := selection.ParseSort("price-asc"); got != selection.SortPriceAsc {
		t.Fatalf("got %q", got)
	}
	if got := selection.ParseSort("bogus"); got != selection.SortDefault {
		t.Fatalf("got %q", got)
	}
	if got := selection.ParseSort(""); got != selection.SortDefault {
		t.Fatalf("got %q", got)
	}
}
