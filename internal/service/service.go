package service

import (
	"context"
	"fmt"
	"strings"

	"boutique/catalog/internal/cart"
	"boutique/catalog/internal/domain"
	"boutique/catalog/internal/filter"
	"boutique/catalog/internal/message"
	"boutique/catalog/internal/render"
	"boutique/catalog/internal/state"

	log "github.com/sirupsen/logrus"
)

// Service orchestrates one browse/cart/checkout session. All state
// transitions run to completion before the next command is processed;
// the fetches inside the browser are the only suspension points.
type Service struct {
	browser  *state.Browser
	engine   *filter.Engine
	cart     *cart.Cart
	builder  *message.Builder
	renderer render.Renderer

	query   string
	sortBy  filter.SortMode
	contact message.Contact
}

func NewService(
	browser *state.Browser,
	engine *filter.Engine,
	crt *cart.Cart,
	builder *message.Builder,
	renderer render.Renderer,
) *Service {
	return &Service{
		browser:  browser,
		engine:   engine,
		cart:     crt,
		builder:  builder,
		renderer: renderer,
		sortBy:   filter.SortRelevance,
	}
}

// Start loads the first page of the initial selection. When even that
// fails (offline against a demo index) the session degrades to the
// embedded products rather than an empty screen.
func (s *Service) Start(ctx context.Context) error {
	if err := s.browser.ResetAndLoadFirstPage(ctx); err != nil {
		log.Warnf("⚠️ First page unavailable, browsing embedded catalog: %v", err)
		s.browser.SeedOffline(domain.DemoProducts())
	}
	s.rerender()
	return nil
}

// View derives the currently visible products from everything loaded.
func (s *Service) View() []domain.Product {
	return s.engine.Apply(
		s.browser.All(),
		s.browser.ActiveCategory(),
		s.browser.ActiveSubcategory(),
		s.query,
		s.sortBy,
		s.cart,
	)
}

func (s *Service) SelectCategory(ctx context.Context, name string) error {
	if err := s.browser.SelectCategory(ctx, name); err != nil {
		return err
	}
	s.rerender()
	return nil
}

func (s *Service) SelectSubcategory(ctx context.Context, name string) error {
	if err := s.browser.SelectSubcategory(ctx, name); err != nil {
		return err
	}
	s.rerender()
	return nil
}

func (s *Service) LoadMore(ctx context.Context) error {
	if err := s.browser.LoadMore(ctx); err != nil {
		return err
	}
	s.rerender()
	return nil
}

func (s *Service) Search(query string) {
	s.query = strings.TrimSpace(query)
	s.rerender()
}

func (s *Service) SortBy(mode filter.SortMode) {
	s.sortBy = mode
	s.rerender()
}

func (s *Service) ChangeQuantity(id string, delta int) {
	s.cart.ChangeQuantity(id, delta)
	s.rerender()
}

func (s *Service) RemoveItem(id string) {
	s.cart.Remove(id)
	s.rerender()
}

func (s *Service) ClearCart() {
	s.cart.Clear()
	s.rerender()
}

func (s *Service) SetContact(c message.Contact) {
	s.contact = c
}

func (s *Service) Cart() *cart.Cart {
	return s.cart
}

func (s *Service) Browser() *state.Browser {
	return s.browser
}

// Checkout renders the outbound order text and its transport link.
func (s *Service) Checkout() (text, link string, err error) {
	items := s.cart.LineItems()
	if len(items) == 0 {
		return "", "", fmt.Errorf("cart is empty")
	}
	text = s.builder.Outbound(items, s.contact)
	return text, s.builder.Link(text), nil
}

// QuickLink is the standing contact link, usable even with an empty cart.
func (s *Service) QuickLink() string {
	if s.cart.Len() == 0 {
		return s.builder.Link(s.builder.QuickText())
	}
	return s.builder.Link(s.builder.Outbound(s.cart.LineItems(), s.contact))
}

func (s *Service) rerender() {
	s.renderer.Render(s.View(), s.cart.LineItems(), s.browser.Paging())
}
