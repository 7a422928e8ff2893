package message

import (
	"fmt"
	"strings"
	"testing"

	"boutique/catalog/internal/cart"
	"boutique/catalog/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(v float64) *float64 { return &v }

func newTestBuilder() *Builder {
	return NewBuilder("5491112345678", 1400, 24)
}

func sampleItems() []cart.LineItem {
	return []cart.LineItem{
		{Product: domain.Product{ID: "A100", Name: "Remera básica", Price: price(8900)}, Qty: 2},
		{Product: domain.Product{ID: "B201", Name: "Aros dorados", Price: price(4500)}, Qty: 1},
		{Product: domain.Product{ID: "C300", Name: "Pañuelo", Price: nil}, Qty: 1},
	}
}

func TestBuildFullMessage(t *testing.T) {
	b := newTestBuilder()

	got := b.Build(sampleItems(), Contact{Name: "Ana", Zone: "Caballito", Delivery: "Envío", Pay: "Efectivo"})

	total := 8900.0*2 + 4500
	want := strings.Join([]string{
		"Hola! Soy Ana. Quiero hacer un pedido:",
		"Zona: Caballito",
		"Entrega: Envío",
		"Pago: Efectivo",
		"",
		"Pedido:",
		fmt.Sprintf("• Remera básica (A100) x2 — %s", b.Money(price(8900))),
		fmt.Sprintf("• Aros dorados (B201) x1 — %s", b.Money(price(4500))),
		"• Pañuelo (C300) x1 — Consultar",
		"",
		fmt.Sprintf("Total estimado: %s", b.Money(&total)),
		"",
		"¿Me confirmás stock/variantes y envío? Gracias.",
	}, "\n")
	assert.Equal(t, want, got)

	// deterministic for identical inputs
	assert.Equal(t, got, b.Build(sampleItems(), Contact{Name: "Ana", Zone: "Caballito", Delivery: "Envío", Pay: "Efectivo"}))
}

func TestBuildWithoutContactOrPrices(t *testing.T) {
	b := newTestBuilder()
	items := []cart.LineItem{{Product: domain.Product{ID: "X1", Name: "Misterio"}, Qty: 1}}

	got := b.Build(items, Contact{})

	assert.True(t, strings.HasPrefix(got, "Hola! Quiero hacer un pedido:"))
	assert.NotContains(t, got, "Zona:")
	assert.NotContains(t, got, "Total estimado:", "no priced item, no total line")
	assert.Contains(t, got, "• Misterio (X1) x1 — Consultar")
}

func TestMoney(t *testing.T) {
	b := newTestBuilder()

	assert.Equal(t, "Consultar", b.Money(nil))
	assert.Contains(t, b.Money(price(22300)), "22")
	assert.Equal(t, b.Money(price(22300)), b.Money(price(22300)))
}

func TestOutboundUnderLimitIsUntouched(t *testing.T) {
	b := newTestBuilder()
	items := sampleItems()

	assert.Equal(t, b.Build(items, Contact{}), b.Outbound(items, Contact{}))
}

func TestOutboundCompactsOverLimit(t *testing.T) {
	b := newTestBuilder()

	items := make([]cart.LineItem, 0, 30)
	for i := 0; i < 30; i++ {
		items = append(items, cart.LineItem{
			Product: domain.Product{ID: fmt.Sprintf("SKU%03d", i), Name: fmt.Sprintf("Producto de prueba número %d", i), Price: price(9900)},
			Qty:     1,
		})
	}

	got := b.Outbound(items, Contact{Name: "Ana"})
	lines := strings.Split(got, "\n")

	assert.Equal(t, "Hola! Quiero hacer un pedido:", lines[0], "compaction drops the personalized greeting")

	bullets := 0
	for _, l := range lines {
		if strings.HasPrefix(l, "•") {
			bullets++
			assert.NotContains(t, l, "—", "compact bullets carry no price")
		}
	}
	assert.Equal(t, 24, bullets)
	assert.Contains(t, got, "(y 6 item(s) más)")
	assert.NotContains(t, got, "Total estimado:")
	assert.True(t, strings.HasSuffix(got, "¿Me confirmás stock/variantes y envío? Gracias."))
}

func TestLink(t *testing.T) {
	b := newTestBuilder()

	link := b.Link("Hola! Quiero hacer un pedido:")
	require.True(t, strings.HasPrefix(link, "https://wa.me/5491112345678?text="))
	assert.NotContains(t, link, " ", "text must be url-encoded")
}
