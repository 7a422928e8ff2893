package filter

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"boutique/catalog/internal/domain"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// SortMode selects the ordering applied to the filtered set.
type SortMode string

const (
	SortRelevance SortMode = "relevancia"
	SortAZ        SortMode = "az"
	SortPriceAsc  SortMode = "precio_asc"
	SortPriceDesc SortMode = "precio_desc"
)

// CartReader exposes the only cart fact relevance sorting needs.
type CartReader interface {
	Quantity(id string) int
}

// Engine derives the visible subset of the loaded products. Stateless
// apart from the collator; safe to share across selections.
type Engine struct {
	collator *collate.Collator
}

func New() *Engine {
	return &Engine{collator: collate.New(language.Spanish)}
}

// Apply keeps a product iff it matches the category, the subcategory
// (or the "all" sentinel) and the free-text query, then sorts the
// result. The input slice is never mutated.
func (e *Engine) Apply(all []domain.Product, category, subcategory, query string, mode SortMode, cart CartReader) []domain.Product {
	q := Fold(query)

	view := make([]domain.Product, 0, len(all))
	for _, p := range all {
		if category != "" && p.Category != category {
			continue
		}
		if subcategory != domain.AllSubcategoriesName && subcategory != "" && p.Subcategory != subcategory {
			continue
		}
		if q != "" && !strings.Contains(haystack(p), q) {
			continue
		}
		view = append(view, p)
	}

	e.sortProducts(view, mode, cart)
	return view
}

func haystack(p domain.Product) string {
	parts := []string{p.Name, p.ID, p.Category, p.Subcategory, p.Description}
	parts = append(parts, p.Tags...)
	return Fold(strings.Join(parts, " "))
}

func (e *Engine) sortProducts(arr []domain.Product, mode SortMode, cart CartReader) {
	switch mode {
	case SortAZ:
		sort.SliceStable(arr, func(i, j int) bool {
			return e.collator.CompareString(arr[i].Name, arr[j].Name) < 0
		})

	case SortPriceAsc:
		sort.SliceStable(arr, func(i, j int) bool {
			return numPrice(arr[i]) < numPrice(arr[j])
		})

	case SortPriceDesc:
		sort.SliceStable(arr, func(i, j int) bool {
			return numPrice(arr[i]) > numPrice(arr[j])
		})

	default: // relevance: featured first, then in-cart, then A-Z
		sort.SliceStable(arr, func(i, j int) bool {
			if arr[i].Featured != arr[j].Featured {
				return arr[i].Featured
			}
			ci, cj := inCart(cart, arr[i].ID), inCart(cart, arr[j].ID)
			if ci != cj {
				return ci
			}
			return e.collator.CompareString(arr[i].Name, arr[j].Name) < 0
		})
	}
}

// numPrice treats "inquire" as +Inf so unpriced items sort last
// ascending and first descending.
func numPrice(p domain.Product) float64 {
	if p.Price == nil {
		return math.Inf(1)
	}
	return *p.Price
}

func inCart(cart CartReader, id string) bool {
	return cart != nil && cart.Quantity(id) > 0
}

var foldChain = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold lowercases and strips diacritics so "Bebé" matches "bebe".
func Fold(s string) string {
	out, _, err := transform.String(foldChain, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}
