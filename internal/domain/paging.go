package domain

// Paging tracks load progress for the current category/subcategory
// selection. Page is 1-based; 0 means nothing loaded yet. Invariant:
// HasMore == (loaded count for the selection < Total).
type Paging struct {
	CatSlug  string
	SubSlug  string
	Page     int
	PageSize int
	Total    int
	HasMore  bool
}
