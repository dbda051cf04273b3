package catalog

// Snapshot holds the products of one completed fetch. It is never mutated;
// a new fetch produces a whole new Snapshot.
type Snapshot struct {
	products   []Product
	byID       map[string]int
	categories []string
}

func NewSnapshot(products []Product) *Snapshot {
	s := &Snapshot{
		products: products,
		byID:     make(map[string]int, len(products)),
	}

	seen := make(map[string]struct{})
	for i, p := range products {
		if _, ok := s.byID[p.ID]; !ok {
			s.byID[p.ID] = i
		}
		if _, ok := seen[p.Category]; !ok {
			seen[p.Category] = struct{}{}
			s.categories = append(s.categories, p.Category)
		}
	}
	return s
}

// Products returns the snapshot contents in fetch order. Callers must not
// mutate the returned slice.
func (s *Snapshot) Products() []Product {
	return s.products
}

func (s *Snapshot) Lookup(id string) (Product, bool) {
	i, ok := s.byID[id]
	if !ok {
		return Product{}, false
	}
	return s.products[i], true
}

// Categories returns the distinct categories in first-seen order.
func (s *Snapshot) Categories() []string {
	return s.categories
}

func (s *Snapshot) Len() int {
	return len(s.products)
}
