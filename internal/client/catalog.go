package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"boutique/catalog/internal/config"
	"boutique/catalog/internal/domain"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

// CatalogClient reads the static catalog origin: the index document and
// the per-selection product pages.
type CatalogClient interface {
	// LoadIndex never fails outward: on any error it builds an index
	// from the embedded demo set and indexes those products so the rest
	// of the system still functions.
	LoadIndex(ctx context.Context) *domain.StoreIndex
	FetchPage(ctx context.Context, catSlug, subSlug string, pageNumber int) (*domain.CatalogPage, error)
}

type catalogClient struct {
	rl         ratelimit.Limiter
	config     config.CatalogConfig
	baseURL    string
	httpClient *resty.Client
	lookup     *domain.Lookup
}

func NewCatalogClient(cfg config.CatalogConfig, lookup *domain.Lookup) CatalogClient {
	client := resty.New().
		SetTimeout(time.Duration(cfg.Timeout)*time.Second).
		SetRetryCount(cfg.MaxRetries).
		SetRetryWaitTime(2*time.Second).
		SetRetryMaxWaitTime(10*time.Second).
		SetHeader("Accept", "application/json").
		SetHeader("Cache-Control", "no-store")

	rps := cfg.MaxRequestsPerSecond
	if rps <= 0 {
		rps = 5
	}

	return &catalogClient{
		rl:         ratelimit.New(rps),
		config:     cfg,
		baseURL:    cfg.BaseURL,
		httpClient: client,
		lookup:     lookup,
	}
}

func (c *catalogClient) LoadIndex(ctx context.Context) *domain.StoreIndex {
	url := c.baseURL + "/index.json"

	body, err := c.fetchJSON(ctx, url)
	if err == nil {
		var idx domain.StoreIndex
		if jsonErr := json.Unmarshal([]byte(body), &idx); jsonErr != nil {
			err = fmt.Errorf("failed to parse index: %w", jsonErr)
		} else if idx.Categories == nil {
			err = fmt.Errorf("index has no categories list")
		} else {
			log.Infof("Loaded catalog index with %d categories", len(idx.Categories))
			return &idx
		}
	}

	log.Warnf("⚠️ Catalog index unavailable, using embedded demo catalog: %v", err)

	demo := domain.DemoProducts()
	c.lookup.PutAll(demo)
	return domain.IndexFromProducts(demo, c.config.PageSize)
}

func (c *catalogClient) FetchPage(ctx context.Context, catSlug, subSlug string, pageNumber int) (*domain.CatalogPage, error) {
	url := fmt.Sprintf("%s/pages/%s/%s/page-%03d.json", c.baseURL, catSlug, subSlug, pageNumber)

	body, err := c.fetchJSON(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog page: %w", err)
	}

	var envelope struct {
		Total    int                 `json:"total"`
		PageSize int                 `json:"page_size"`
		Items    []domain.RawProduct `json:"items"`
	}
	if err := json.Unmarshal([]byte(body), &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse catalog page: %w", err)
	}

	items := make([]domain.Product, 0, len(envelope.Items))
	for _, raw := range envelope.Items {
		p := domain.Normalize(raw)
		c.lookup.Put(p)
		items = append(items, p)
	}

	log.Debugf("Successfully fetched page %d for %s/%s with %d items", pageNumber, catSlug, subSlug, len(items))
	return &domain.CatalogPage{
		Number:   pageNumber,
		Total:    envelope.Total,
		PageSize: envelope.PageSize,
		Items:    items,
	}, nil
}

func (c *catalogClient) fetchJSON(ctx context.Context, url string) (string, error) {
	c.rl.Take()

	resp, err := c.httpClient.R().
		SetContext(ctx).
		Get(url)

	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("request cancelled: %w", ctx.Err())
		}
		return "", fmt.Errorf("failed to fetch URL: %w", err)
	}

	if resp.IsError() {
		return "", fmt.Errorf("HTTP error: %d %s", resp.StatusCode(), resp.Status())
	}

	return resp.String(), nil
}
