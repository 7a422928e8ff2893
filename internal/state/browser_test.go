package state

import (
	"context"
	"fmt"
	"testing"

	"boutique/catalog/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	pages map[string]*domain.CatalogPage
	fail  bool
	calls int
	hook  func()
}

func (f *fakeFetcher) FetchPage(_ context.Context, catSlug, subSlug string, page int) (*domain.CatalogPage, error) {
	f.calls++
	if f.hook != nil {
		h := f.hook
		f.hook = nil
		h()
	}
	if f.fail {
		return nil, fmt.Errorf("origin down")
	}
	key := fmt.Sprintf("%s/%s/%d", catSlug, subSlug, page)
	p, ok := f.pages[key]
	if !ok {
		return nil, fmt.Errorf("no page %s", key)
	}
	return p, nil
}

func prod(id string) domain.Product {
	return domain.Product{ID: id, Name: id, Category: "Ropa", Subcategory: "General", Tags: []string{}}
}

func ropaIndex() *domain.StoreIndex {
	return &domain.StoreIndex{
		PageSize: 2,
		Categories: []domain.CategoryInfo{
			{Name: "Ropa", Slug: "ropa", Count: 3},
			{Name: "Accesorios", Slug: "accesorios", Count: 1},
		},
	}
}

func ropaFetcher() *fakeFetcher {
	return &fakeFetcher{pages: map[string]*domain.CatalogPage{
		"ropa/__all__/1": {Number: 1, Total: 3, PageSize: 2, Items: []domain.Product{prod("A"), prod("B")}},
		"ropa/__all__/2": {Number: 2, Total: 3, PageSize: 2, Items: []domain.Product{prod("C")}},
	}}
}

func TestFirstPageThenLoadMore(t *testing.T) {
	f := ropaFetcher()
	b := NewBrowser(ropaIndex(), f)

	require.NoError(t, b.ResetAndLoadFirstPage(context.Background()))
	assert.Equal(t, []domain.Product{prod("A"), prod("B")}, b.All())
	assert.True(t, b.Paging().HasMore)
	assert.Equal(t, 1, b.Paging().Page)
	assert.Equal(t, 3, b.Paging().Total)

	require.NoError(t, b.LoadMore(context.Background()))
	assert.Equal(t, []domain.Product{prod("A"), prod("B"), prod("C")}, b.All())
	assert.False(t, b.Paging().HasMore)
	assert.Equal(t, 2, b.Paging().Page)
}

func TestLoadMoreExhaustedIsNoop(t *testing.T) {
	f := ropaFetcher()
	b := NewBrowser(ropaIndex(), f)
	require.NoError(t, b.ResetAndLoadFirstPage(context.Background()))
	require.NoError(t, b.LoadMore(context.Background()))

	before := b.Paging()
	calls := f.calls
	require.NoError(t, b.LoadMore(context.Background()))

	assert.Equal(t, before, b.Paging())
	assert.Equal(t, calls, f.calls, "exhausted LoadMore must not fetch")
	assert.Len(t, b.All(), 3)
}

func TestFirstPageFailureLeavesEmpty(t *testing.T) {
	f := ropaFetcher()
	f.fail = true
	b := NewBrowser(ropaIndex(), f)

	err := b.ResetAndLoadFirstPage(context.Background())
	require.Error(t, err)
	assert.Empty(t, b.All())
	assert.Equal(t, 0, b.Paging().Page)
	assert.False(t, b.Paging().HasMore)
}

func TestLoadMoreFailureLeavesStateUntouched(t *testing.T) {
	f := ropaFetcher()
	b := NewBrowser(ropaIndex(), f)
	require.NoError(t, b.ResetAndLoadFirstPage(context.Background()))

	before := b.Paging()
	f.fail = true
	require.Error(t, b.LoadMore(context.Background()))

	assert.Equal(t, before, b.Paging())
	assert.Len(t, b.All(), 2)

	// caller may retry once the origin recovers
	f.fail = false
	require.NoError(t, b.LoadMore(context.Background()))
	assert.Len(t, b.All(), 3)
}

func TestSelectSameCategoryIsNoop(t *testing.T) {
	f := ropaFetcher()
	b := NewBrowser(ropaIndex(), f)
	require.NoError(t, b.ResetAndLoadFirstPage(context.Background()))

	calls := f.calls
	require.NoError(t, b.SelectCategory(context.Background(), "Ropa"))
	assert.Equal(t, calls, f.calls)
}

func TestSelectCategoryResetsSubcategory(t *testing.T) {
	f := ropaFetcher()
	f.pages["accesorios/__all__/1"] = &domain.CatalogPage{Number: 1, Total: 1, PageSize: 2, Items: []domain.Product{prod("Z")}}
	b := NewBrowser(ropaIndex(), f)
	require.NoError(t, b.ResetAndLoadFirstPage(context.Background()))

	require.NoError(t, b.SelectCategory(context.Background(), "Accesorios"))
	assert.Equal(t, domain.AllSubcategoriesName, b.ActiveSubcategory())
	assert.Equal(t, []domain.Product{prod("Z")}, b.All())
	assert.Equal(t, "accesorios", b.Paging().CatSlug)
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	f := ropaFetcher()
	b := NewBrowser(ropaIndex(), f)

	// the selection changes while page 1 is still in flight; the stale
	// response must not overwrite the newer state
	seeded := []domain.Product{prod("offline")}
	f.hook = func() { b.SeedOffline(seeded) }

	require.NoError(t, b.ResetAndLoadFirstPage(context.Background()))
	assert.Equal(t, seeded, b.All())
	assert.False(t, b.Paging().HasMore)
}

func TestSubcategorySlugSentinel(t *testing.T) {
	f := ropaFetcher()
	f.pages["ropa/remeras/1"] = &domain.CatalogPage{Number: 1, Total: 1, PageSize: 2, Items: []domain.Product{prod("A")}}
	idx := ropaIndex()
	idx.Categories[0].Subcategories = []domain.SubcategoryInfo{{Name: "Remeras", Slug: "remeras"}}
	b := NewBrowser(idx, f)

	require.NoError(t, b.SelectSubcategory(context.Background(), "Remeras"))
	assert.Equal(t, "remeras", b.Paging().SubSlug)

	require.NoError(t, b.SelectSubcategory(context.Background(), domain.AllSubcategoriesName))
	assert.Equal(t, domain.AllSubcategoriesSlug, b.Paging().SubSlug)
}
