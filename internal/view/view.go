package view

import (
	"embed"
	"html/template"
	"io"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"CorpMart/internal/catalog"
	"CorpMart/internal/store"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

type Renderer struct {
	t *template.Template
}

func NewRenderer() (*Renderer, error) {
	t, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, err
	}
	return &Renderer{t: t}, nil
}

func (r *Renderer) CatalogPage(w io.Writer, data CatalogPage) error {
	return r.t.ExecuteTemplate(w, "catalog", data)
}

func (r *Renderer) AccountPage(w io.Writer, data AccountPage) error {
	return r.t.ExecuteTemplate(w, "account", data)
}

// Card is one rendered product tile.
type Card struct {
	ID       string
	Name     string
	Brand    string
	Category string
	Rating   string
	Price    string
	Image    string
	Liked    bool
}

type GridData struct {
	Count int
	Cards []Card
}

// CartLine is one rendered cart row. Only lines whose product id resolves
// against the current snapshot are built.
type CartLine struct {
	ProductID string
	Name      string
	Image     string
	Price     string
	Quantity  int
}

type CartData struct {
	Lines []CartLine
	Count int
	Total string
}

type CategoryOption struct {
	Value   string
	Label   string
	Checked bool
}

type CatalogPage struct {
	Grid       GridData
	Categories []CategoryOption
	MinPrice   string
	MaxPrice   string
	Search     string
	Sort       string
	FetchError string
}

type AccountPage struct {
	Liked      GridData
	Cart       CartData
	FetchError string
}

func buildCard(p catalog.Product, liked bool) Card {
	return Card{
		ID:       p.ID,
		Name:     p.Name,
		Brand:    upperFirst(p.Category) + " Co.",
		Category: upperFirst(p.Category),
		Rating:   p.Rating.StringFixed(1),
		Price:    p.Price.StringFixed(2),
		Image:    p.Image,
		Liked:    liked,
	}
}

func BuildGrid(products []catalog.Product, liked map[string]struct{}) GridData {
	cards := make([]Card, 0, len(products))
	for _, p := range products {
		_, isLiked := liked[p.ID]
		cards = append(cards, buildCard(p, isLiked))
	}
	return GridData{Count: len(cards), Cards: cards}
}

// BuildLiked keeps only the liked subset of products, in catalog order.
func BuildLiked(products []catalog.Product, liked map[string]struct{}) GridData {
	cards := make([]Card, 0, len(liked))
	for _, p := range products {
		if _, ok := liked[p.ID]; ok {
			cards = append(cards, buildCard(p, true))
		}
	}
	return GridData{Count: len(cards), Cards: cards}
}

// BuildCart renders the resolvable cart lines. A stored id with no matching
// product is omitted from the lines, the unit count and the total.
func BuildCart(items []store.CartItem, resolve func(string) (catalog.Product, bool)) CartData {
	lines := make([]CartLine, 0, len(items))
	count := 0
	total := decimal.Zero

	for _, it := range items {
		p, ok := resolve(it.ProductID)
		if !ok {
			continue
		}
		lines = append(lines, CartLine{
			ProductID: p.ID,
			Name:      p.Name,
			Image:     p.Image,
			Price:     p.Price.StringFixed(2),
			Quantity:  it.Quantity,
		})
		count += it.Quantity
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}

	return CartData{Lines: lines, Count: count, Total: total.StringFixed(2)}
}

// BuildCategoryOptions marks each observed category checked when it is
// selected, or all of them when nothing is (the default state).
func BuildCategoryOptions(observed, selected []string) []CategoryOption {
	sel := make(map[string]struct{}, len(selected))
	for _, c := range selected {
		sel[c] = struct{}{}
	}

	out := make([]CategoryOption, 0, len(observed))
	for _, c := range observed {
		_, checked := sel[c]
		out = append(out, CategoryOption{
			Value:   c,
			Label:   upperFirst(c),
			Checked: len(sel) == 0 || checked,
		})
	}
	return out
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size <= 1 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
