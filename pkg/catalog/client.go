package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/atelier-cloud/catalog/internal/db"
	dbRedis "github.com/atelier-cloud/catalog/internal/db/redis"
	"github.com/atelier-cloud/catalog/internal/domain"
	domprod "github.com/atelier-cloud/catalog/internal/domain/product"
	"github.com/atelier-cloud/catalog/internal/domain/product/patch"
	domprom "github.com/atelier-cloud/catalog/internal/domain/promo"
	"github.com/atelier-cloud/catalog/internal/domain/search/filter"
	"github.com/atelier-cloud/catalog/internal/domain/search/query"
	"github.com/atelier-cloud/catalog/internal/domain/search/result"
	"github.com/atelier-cloud/catalog/internal/repository/embcache"
	productrepo "github.com/atelier-cloud/catalog/internal/repository/product"
	promorepo "github.com/atelier-cloud/catalog/internal/repository/promo"
	searchrepo "github.com/atelier-cloud/catalog/internal/repository/search"
	openaiEmb "github.com/atelier-cloud/catalog/internal/transport/openai"
	cataloguc "github.com/atelier-cloud/catalog/internal/usecase/catalog"
	healthuc "github.com/atelier-cloud/catalog/internal/usecase/health"
	promouc "github.com/atelier-cloud/catalog/internal/usecase/promo"
	searchuc "github.com/atelier-cloud/catalog/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces so tests can substitute the use case services.
type productUseCase interface {
	Create(ctx context.Context, attrs domprod.Attrs) (domprod.Product, error)
	Get(ctx context.Context, id string) (domprod.Product, error)
	Update(ctx context.Context, id string, p patch.Patch) (domprod.Product, error)
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, f filter.Filters, offset, limit int) ([]domprod.Product, int, error)
}

type searchUseCase interface {
	Search(ctx context.Context, q *query.Query) ([]result.Result, error)
}

type promoUseCase interface {
	Create(ctx context.Context, code string, t domprom.Type, value float64,
		maxUses int, endDate *time.Time) (domprom.Promo, error)
	Get(ctx context.Context, code string) (domprom.Promo, error)
	List(ctx context.Context) ([]domprom.Promo, error)
	Delete(ctx context.Context, code string) (bool, error)
	Redeem(ctx context.Context, code string, amount float64) (float64, domprom.Promo, error)
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Client is the catalog client entry point.
type Client struct {
	store      db.Store
	productSvc productUseCase
	searchSvc  searchUseCase
	promoSvc   promoUseCase
	healthSvc  healthUseCase
}

// New creates a catalog Client, connects to the database, and ensures the
// product search index exists. The provided context bounds the initial
// readiness check and index creation.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		keyPrefix:        "catalog:",
		hnswM:            32,
		hnswEFConstruct:  400,
		defaultPageSize:  20,
		maxPageSize:      100,
		vectorDimensions: 384,
		embeddingModel:   "text-embedding-3-small",
		logger:           zap.NewNop(),
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("catalog: database address required (use WithRedis)")
	}
	if cfg.embedder == nil && cfg.openaiAPIKey == "" {
		return nil, errors.New("catalog: embedding provider required (use WithOpenAI or WithEmbedder)")
	}

	domain.KeyPrefix = cfg.keyPrefix

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("catalog: create store: %w", err)
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("catalog: database not ready: %w", err)
	}

	return wireClient(ctx, store, cfg)
}

func wireClient(ctx context.Context, store db.Store, cfg *clientConfig) (*Client, error) {
	var embedder domain.Embedder
	if cfg.embedder != nil {
		embedder = &embedderAdapter{inner: cfg.embedder}
	} else {
		embedder = openaiEmb.NewEmbedder(&openaiEmb.Config{
			APIKey:     cfg.openaiAPIKey,
			BaseURL:    cfg.openaiBaseURL,
			Model:      cfg.embeddingModel,
			Dimensions: cfg.vectorDimensions,
			Logger:     cfg.logger,
		})
	}
	embedder = embcache.New(embedder, store, 0, nil, cfg.logger)

	productRepo := productrepo.New(store)
	if err := productRepo.EnsureIndex(ctx, productrepo.IndexOptions{
		Dimensions:  cfg.vectorDimensions,
		HNSWM:       cfg.hnswM,
		EFConstruct: cfg.hnswEFConstruct,
	}); err != nil {
		store.Close()
		return nil, fmt.Errorf("catalog: ensure product index: %w", err)
	}

	searchRepo := searchrepo.New(store)
	promoRepo := promorepo.New(store)

	return &Client{
		store: store,
		productSvc: cataloguc.New(productRepo, embedder).
			WithPagination(cfg.defaultPageSize, cfg.maxPageSize),
		searchSvc: searchuc.New(searchRepo, embedder),
		promoSvc:  promouc.New(promoRepo),
		healthSvc: healthuc.New(store, store, nil),
	}, nil
}

// Products returns the product CRUD service.
func (c *Client) Products() *ProductsService {
	return &ProductsService{svc: c.productSvc}
}

// Search returns the product search service.
func (c *Client) Search() *SearchService {
	return &SearchService{svc: c.searchSvc}
}

// Promos returns the promo code service.
func (c *Client) Promos() *PromosService {
	return &PromosService{svc: c.promoSvc}
}

// HealthStatus represents the aggregated system health.
type HealthStatus struct {
	Status string            // "ok" or "degraded"
	Checks map[string]string // component -> "ok"/"error"
}

// Health checks the health of all system components.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSvc.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status: string(report.Status),
		Checks: checks,
	}
}

// Close releases the database connection.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}
