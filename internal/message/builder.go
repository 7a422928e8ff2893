package message

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"boutique/catalog/internal/cart"

	"golang.org/x/text/language"
	textmessage "golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	greeting      = "Hola! Quiero hacer un pedido:"
	quickGreeting = "Hola! Quiero consultar por productos del catálogo."
	closing       = "¿Me confirmás stock/variantes y envío? Gracias."
	inquire       = "Consultar"
)

// Contact is the optional lead info attached to an order message.
type Contact struct {
	Name     string
	Zone     string
	Delivery string
	Pay      string
}

// Builder renders cart contents into the outbound order text. Output is
// deterministic for identical inputs.
type Builder struct {
	number       string
	softLimit    int
	compactItems int
	printer      *textmessage.Printer
}

// NewBuilder configures a builder for the given recipient number,
// soft character limit and compaction item cap.
func NewBuilder(number string, softLimit, compactItems int) *Builder {
	return &Builder{
		number:       number,
		softLimit:    softLimit,
		compactItems: compactItems,
		printer:      textmessage.NewPrinter(language.MustParse("es-AR")),
	}
}

// Money formats a price with es-AR digit grouping, or the inquire
// label when the price is unknown.
func (b *Builder) Money(price *float64) string {
	if price == nil {
		return inquire
	}
	return b.printer.Sprintf("$ %v", number.Decimal(*price, number.MaxFractionDigits(0)))
}

// Build produces the full order message: greeting, optional contact
// lines, one line per item and a total when any item is priced.
func (b *Builder) Build(items []cart.LineItem, contact Contact) string {
	var lines []string
	if contact.Name != "" {
		lines = append(lines, fmt.Sprintf("Hola! Soy %s. Quiero hacer un pedido:", contact.Name))
	} else {
		lines = append(lines, greeting)
	}
	if contact.Zone != "" {
		lines = append(lines, "Zona: "+contact.Zone)
	}
	if contact.Delivery != "" {
		lines = append(lines, "Entrega: "+contact.Delivery)
	}
	if contact.Pay != "" {
		lines = append(lines, "Pago: "+contact.Pay)
	}
	lines = append(lines, "", "Pedido:")

	total := 0.0
	hasPrice := false
	for _, it := range items {
		lines = append(lines, fmt.Sprintf("• %s (%s) x%d — %s", it.Product.Name, it.Product.ID, it.Qty, b.Money(it.Product.Price)))
		if it.Product.Price != nil {
			total += *it.Product.Price * float64(it.Qty)
			hasPrice = true
		}
	}

	if hasPrice {
		lines = append(lines, "", "Total estimado: "+b.Money(&total))
	}

	lines = append(lines, "", closing)
	return strings.Join(lines, "\n")
}

// Outbound returns the text to hand to the messaging transport. When
// the full message exceeds the soft limit it is regenerated compacted:
// fixed greeting, the first N items without prices or total, and a note
// counting the omitted ones.
func (b *Builder) Outbound(items []cart.LineItem, contact Contact) string {
	msg := b.Build(items, contact)
	if utf8.RuneCountInString(msg) <= b.softLimit {
		return msg
	}

	compact := []string{greeting}
	for i, it := range items {
		if i >= b.compactItems {
			break
		}
		compact = append(compact, fmt.Sprintf("• %s (%s) x%d", it.Product.Name, it.Product.ID, it.Qty))
	}
	if len(items) > b.compactItems {
		compact = append(compact, fmt.Sprintf("(y %d item(s) más)", len(items)-b.compactItems))
	}
	compact = append(compact, "", closing)
	return strings.Join(compact, "\n")
}

// QuickText is the link text used while the cart is still empty.
func (b *Builder) QuickText() string {
	return quickGreeting
}

// Link builds the wa.me URL that hands text to the messaging transport.
// Opening it is the caller's business.
func (b *Builder) Link(text string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", b.number, url.QueryEscape(text))
}
