package domain

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// AllSubcategories is the selection meaning "every subcategory" and the
// slug sentinel the page resource uses for it.
const (
	AllSubcategoriesName = "Todas"
	AllSubcategoriesSlug = "__all__"
)

type SubcategoryInfo struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type CategoryInfo struct {
	Name          string            `json:"name"`
	Slug          string            `json:"slug"`
	Count         int               `json:"count"`
	Subcategories []SubcategoryInfo `json:"subcategories"`
}

// StoreIndex is the top-level catalog directory. Loaded once at
// startup, read-only afterwards.
type StoreIndex struct {
	PageSize   int            `json:"page_size"`
	Categories []CategoryInfo `json:"categories"`
}

// Category looks a category up by display name.
func (i *StoreIndex) Category(name string) *CategoryInfo {
	for n := range i.Categories {
		if i.Categories[n].Name == name {
			return &i.Categories[n]
		}
	}
	return nil
}

// CatalogPage is one fetched batch of normalized products plus the
// pagination metadata the source reported.
type CatalogPage struct {
	Number   int
	Total    int
	PageSize int
	Items    []Product
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// SafeID turns a display name into a resource slug.
func SafeID(s string) string {
	return strings.Trim(nonAlnum.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "_"), "_")
}

// IndexFromProducts builds a StoreIndex from an in-memory product set,
// grouping by category and subcategory with Spanish collation order.
// Used when the index resource is unavailable.
func IndexFromProducts(items []Product, pageSize int) *StoreIndex {
	byCat := map[string][]Product{}
	for _, p := range items {
		byCat[p.Category] = append(byCat[p.Category], p)
	}

	cl := collate.New(language.Spanish)
	cats := make([]string, 0, len(byCat))
	for c := range byCat {
		cats = append(cats, c)
	}
	sort.SliceStable(cats, func(a, b int) bool { return cl.CompareString(cats[a], cats[b]) < 0 })

	idx := &StoreIndex{PageSize: pageSize, Categories: make([]CategoryInfo, 0, len(cats))}
	for _, c := range cats {
		info := CategoryInfo{Name: c, Slug: SafeID(c), Count: len(byCat[c])}
		seen := map[string]bool{}
		for _, p := range byCat[c] {
			if p.Subcategory == "" || seen[p.Subcategory] {
				continue
			}
			seen[p.Subcategory] = true
			info.Subcategories = append(info.Subcategories, SubcategoryInfo{
				Name: p.Subcategory,
				Slug: SafeID(p.Subcategory),
			})
		}
		idx.Categories = append(idx.Categories, info)
	}
	return idx
}
