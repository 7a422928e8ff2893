package render

import (
	"fmt"
	"io"

	"boutique/catalog/internal/cart"
	"boutique/catalog/internal/domain"
)

// Renderer consumes the derived view after each mutation. Layout is
// deliberately outside the core; the session only pushes state.
type Renderer interface {
	Render(view []domain.Product, items []cart.LineItem, paging domain.Paging)
}

// Noop discards everything. Useful in tests.
type Noop struct{}

func (Noop) Render([]domain.Product, []cart.LineItem, domain.Paging) {}

type consoleRenderer struct {
	out   io.Writer
	money func(*float64) string
}

// NewConsole writes a compact text view to out, formatting prices with
// the supplied money function.
func NewConsole(out io.Writer, money func(*float64) string) Renderer {
	return &consoleRenderer{out: out, money: money}
}

func (r *consoleRenderer) Render(view []domain.Product, items []cart.LineItem, paging domain.Paging) {
	fmt.Fprintf(r.out, "%d producto(s) · total %d\n", len(view), paging.Total)
	for _, p := range view {
		marker := " "
		if p.Featured {
			marker = "★"
		}
		fmt.Fprintf(r.out, " %s [%s] %s · %s · %s\n", marker, p.ID, p.Name, p.Subcategory, r.money(p.Price))
	}
	if paging.HasMore {
		fmt.Fprintln(r.out, "(hay más páginas: usá 'mas')")
	}

	if len(items) == 0 {
		fmt.Fprintln(r.out, "Carrito vacío.")
		return
	}
	count := 0
	total := 0.0
	hasPrice := false
	for _, it := range items {
		count += it.Qty
		if it.Product.Price != nil {
			total += *it.Product.Price * float64(it.Qty)
			hasPrice = true
		}
	}
	fmt.Fprintf(r.out, "Carrito: %d item(s)", count)
	if hasPrice {
		fmt.Fprintf(r.out, " · Total estimado: %s", r.money(&total))
	}
	fmt.Fprintln(r.out)
}
