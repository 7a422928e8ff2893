package domain

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Product is a normalized catalog item. Identity is ID; a Product is
// never mutated after normalization, only superseded by re-fetching
// the same id.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"nombre"`
	Category    string   `json:"categoria"`
	Subcategory string   `json:"subcategoria"`
	Price       *float64 `json:"precio"` // nil = "Consultar"
	Featured    bool     `json:"destacado"`
	Description string   `json:"descripcion"`
	Image       string   `json:"imagen"`
	Tags        []string `json:"tags"`
}

// RawProduct is one item as it appears on the wire. Every field is
// permissive: the source data is hand-maintained JSON.
type RawProduct struct {
	ID               any `json:"id"`
	SKU              any `json:"sku"`
	Name             any `json:"nombre"`
	Category         any `json:"categoria"`
	Subcategory      any `json:"subcategoria"`
	Price            any `json:"precio"`
	Featured         any `json:"destacado"`
	Description      any `json:"descripcion"`
	ShortDescription any `json:"descripcion_corta"`
	Image            any `json:"imagen"`
	ImageURL         any `json:"imagen_url"`
	Tags             any `json:"tags"`
}

// Normalize converts a raw record into a Product. It is total: any
// input, including the zero RawProduct, yields a usable Product.
func Normalize(raw RawProduct) Product {
	id := textField(raw.ID, "")
	if id == "" {
		id = textField(raw.SKU, "")
	}
	if id == "" {
		id = RandomID()
	}

	p := Product{
		ID:          id,
		Name:        textField(raw.Name, "Producto"),
		Category:    textField(raw.Category, "Otros"),
		Subcategory: textField(raw.Subcategory, "General"),
		Featured:    cast.ToBool(raw.Featured),
		Description: textField(raw.Description, textField(raw.ShortDescription, "")),
		Image:       textField(raw.Image, textField(raw.ImageURL, "")),
		Tags:        []string{},
	}

	if raw.Price != nil && strings.TrimSpace(cast.ToString(raw.Price)) != "" {
		if v, err := cast.ToFloat64E(raw.Price); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
			p.Price = &v
		}
	}

	// Only list-typed tags count; anything else means no tags.
	if list, ok := raw.Tags.([]any); ok {
		for _, t := range list {
			p.Tags = append(p.Tags, cast.ToString(t))
		}
	}

	return p
}

// Placeholder synthesizes a renderable product for a cart id that is
// not present in the lookup table (for example a cart saved in an
// earlier session against pages never fetched in this one).
func Placeholder(id string) Product {
	return Product{
		ID:          id,
		Name:        "Producto " + id,
		Category:    "—",
		Subcategory: "—",
		Tags:        []string{},
	}
}

// RandomID generates a fallback product id of the form P + 8 hex digits.
func RandomID() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("P%08X", uint32(time.Now().UnixNano()))
	}
	return fmt.Sprintf("P%08X", binary.BigEndian.Uint32(b))
}

func textField(v any, fallback string) string {
	if v == nil {
		return fallback
	}
	s := strings.TrimSpace(cast.ToString(v))
	if s == "" {
		return fallback
	}
	return s
}
