package catalog

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Product is one normalized catalog record. Immutable after fetch.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Rating      decimal.Decimal `json:"rating"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
}

// rawProduct mirrors the upstream wire shape.
type rawProduct struct {
	ID          json.RawMessage  `json:"id"`
	Title       string           `json:"title"`
	Category    string           `json:"category"`
	Price       *decimal.Decimal `json:"price"`
	Rating      *rawRating       `json:"rating"`
	Image       string           `json:"image"`
	Description string           `json:"description"`
}

type rawRating struct {
	Rate decimal.Decimal `json:"rate"`
}

var errMissingID = errors.New("missing id")

func (r rawProduct) normalize() (Product, error) {
	id, err := normalizeID(r.ID)
	if err != nil {
		return Product{}, err
	}

	var price decimal.Decimal
	if r.Price != nil {
		price = *r.Price
	}
	if price.IsNegative() {
		return Product{}, fmt.Errorf("negative price %s", price)
	}

	var rating decimal.Decimal
	if r.Rating != nil {
		rating = r.Rating.Rate
	}

	return Product{
		ID:          id,
		Name:        r.Title,
		Category:    r.Category,
		Price:       price,
		Rating:      rating,
		Image:       r.Image,
		Description: r.Description,
	}, nil
}

// normalizeID coerces the upstream id, which may arrive as a JSON number
// or a string, into a non-empty string.
func normalizeID(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", errMissingID
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			return "", errMissingID
		}
		return s, nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), nil
	}

	return "", fmt.Errorf("unusable id %s", raw)
}
