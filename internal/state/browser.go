package state

import (
	"context"
	"fmt"

	"boutique/catalog/internal/domain"

	log "github.com/sirupsen/logrus"
)

// PageFetcher retrieves one catalog page for a selection key.
type PageFetcher interface {
	FetchPage(ctx context.Context, catSlug, subSlug string, pageNumber int) (*domain.CatalogPage, error)
}

// Browser is the paging state machine: it tracks the current
// category/subcategory selection, the products accumulated across
// loaded pages and whether more pages remain.
//
// A selection change bumps a generation counter before refetching, and
// a completed fetch is applied only while its generation still matches.
// A response from a superseded selection can therefore never clobber
// newer state.
type Browser struct {
	fetcher PageFetcher
	index   *domain.StoreIndex

	paging    domain.Paging
	all       []domain.Product
	activeCat string
	activeSub string
	gen       uint64
}

func NewBrowser(index *domain.StoreIndex, fetcher PageFetcher) *Browser {
	b := &Browser{
		fetcher:   fetcher,
		index:     index,
		activeSub: domain.AllSubcategoriesName,
	}
	b.paging.PageSize = index.PageSize
	if b.paging.PageSize <= 0 {
		b.paging.PageSize = 48
	}
	if len(index.Categories) > 0 {
		b.activeCat = index.Categories[0].Name
	}
	return b
}

// SelectCategory switches to another category and reloads the first
// page. Selecting the current category is a no-op.
func (b *Browser) SelectCategory(ctx context.Context, name string) error {
	if name == b.activeCat {
		return nil
	}
	b.activeCat = name
	b.activeSub = domain.AllSubcategoriesName
	return b.ResetAndLoadFirstPage(ctx)
}

// SelectSubcategory switches to another subcategory within the current
// category and reloads the first page.
func (b *Browser) SelectSubcategory(ctx context.Context, name string) error {
	if name == b.activeSub {
		return nil
	}
	b.activeSub = name
	return b.ResetAndLoadFirstPage(ctx)
}

// ResetAndLoadFirstPage clears the accumulated product list and fetches
// page 1 of the current selection. On failure the list stays empty and
// the error propagates so the caller can report and retry.
func (b *Browser) ResetAndLoadFirstPage(ctx context.Context) error {
	b.gen++
	gen := b.gen

	b.paging = domain.Paging{
		CatSlug:  b.catSlug(),
		SubSlug:  b.subSlug(),
		PageSize: b.paging.PageSize,
	}
	b.all = nil

	page, err := b.fetcher.FetchPage(ctx, b.paging.CatSlug, b.paging.SubSlug, 1)
	if err != nil {
		return fmt.Errorf("failed to load first page for %s/%s: %w", b.paging.CatSlug, b.paging.SubSlug, err)
	}
	if gen != b.gen {
		log.Debugf("Discarding stale first page for %s/%s", b.paging.CatSlug, b.paging.SubSlug)
		return nil
	}

	b.all = page.Items
	b.paging.Page = 1
	b.applyPageMeta(page)
	return nil
}

// LoadMore fetches the next page and appends its items. It is a no-op
// when nothing more remains; on fetch failure paging state is left
// untouched so the caller may retry.
func (b *Browser) LoadMore(ctx context.Context) error {
	if !b.paging.HasMore {
		return nil
	}

	next := b.paging.Page + 1
	gen := b.gen
	page, err := b.fetcher.FetchPage(ctx, b.paging.CatSlug, b.paging.SubSlug, next)
	if err != nil {
		return fmt.Errorf("failed to load page %d for %s/%s: %w", next, b.paging.CatSlug, b.paging.SubSlug, err)
	}
	if gen != b.gen {
		log.Debugf("Discarding stale page %d for %s/%s", next, b.paging.CatSlug, b.paging.SubSlug)
		return nil
	}

	b.all = append(b.all, page.Items...)
	b.paging.Page = next
	b.applyPageMeta(page)
	return nil
}

// SeedOffline replaces the accumulated list with an in-memory set, used
// when even the first page of a fallback catalog cannot be fetched.
func (b *Browser) SeedOffline(items []domain.Product) {
	b.gen++
	b.all = items
	b.paging.Page = 1
	b.paging.Total = len(items)
	b.paging.HasMore = false
}

func (b *Browser) applyPageMeta(page *domain.CatalogPage) {
	if page.Total > 0 {
		b.paging.Total = page.Total
	} else if b.paging.Total == 0 {
		b.paging.Total = len(b.all)
	}
	if page.PageSize > 0 {
		b.paging.PageSize = page.PageSize
	}
	b.paging.HasMore = len(b.all) < b.paging.Total
}

// All returns every product accumulated for the current selection, in
// load order. Duplicate ids across pages are kept as-is.
func (b *Browser) All() []domain.Product {
	return b.all
}

func (b *Browser) Paging() domain.Paging {
	return b.paging
}

func (b *Browser) ActiveCategory() string {
	return b.activeCat
}

func (b *Browser) ActiveSubcategory() string {
	return b.activeSub
}

// Categories lists the category display names from the index.
func (b *Browser) Categories() []string {
	names := make([]string, 0, len(b.index.Categories))
	for _, c := range b.index.Categories {
		names = append(names, c.Name)
	}
	return names
}

// Subcategories lists the selectable subcategories of the active
// category, starting with the "all" sentinel.
func (b *Browser) Subcategories() []string {
	names := []string{domain.AllSubcategoriesName}
	if c := b.index.Category(b.activeCat); c != nil {
		for _, s := range c.Subcategories {
			names = append(names, s.Name)
		}
	}
	return names
}

func (b *Browser) catSlug() string {
	if c := b.index.Category(b.activeCat); c != nil {
		return c.Slug
	}
	return domain.SafeID(b.activeCat)
}

func (b *Browser) subSlug() string {
	if b.activeSub == domain.AllSubcategoriesName {
		return domain.AllSubcategoriesSlug
	}
	if s := domain.SafeID(b.activeSub); s != "" {
		return s
	}
	return "general"
}
