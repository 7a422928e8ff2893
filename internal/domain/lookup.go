package domain

// Lookup maps product ids to the most recently normalized product with
// that id, accumulated across every page fetched in a session. It lets
// the cart resolve entries whose products are not on any currently
// loaded page. Last write wins; entries are never pruned.
type Lookup struct {
	byID map[string]Product
}

func NewLookup() *Lookup {
	return &Lookup{byID: make(map[string]Product)}
}

func (l *Lookup) Put(p Product) {
	l.byID[p.ID] = p
}

func (l *Lookup) PutAll(items []Product) {
	for _, p := range items {
		l.byID[p.ID] = p
	}
}

func (l *Lookup) Get(id string) (Product, bool) {
	p, ok := l.byID[id]
	return p, ok
}

func (l *Lookup) Len() int {
	return len(l.byID)
}
