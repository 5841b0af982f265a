package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/atelier-cloud/catalog/internal/domain"
	domprod "github.com/atelier-cloud/catalog/internal/domain/product"
	"github.com/atelier-cloud/catalog/internal/domain/product/patch"
	domprom "github.com/atelier-cloud/catalog/internal/domain/promo"
	"github.com/atelier-cloud/catalog/internal/domain/search/filter"
	"github.com/atelier-cloud/catalog/internal/domain/search/query"
	"github.com/atelier-cloud/catalog/internal/domain/search/result"
	healthuc "github.com/atelier-cloud/catalog/internal/usecase/health"
)

type mockProductUC struct {
	createFn func(ctx context.Context, attrs domprod.Attrs) (domprod.Product, error)
	getFn    func(ctx context.Context, id string) (domprod.Product, error)
	updateFn func(ctx context.Context, id string, p patch.Patch) (domprod.Product, error)
	deleteFn func(ctx context.Context, id string) (bool, error)
	listFn   func(ctx context.Context, f filter.Filters, offset, limit int) ([]domprod.Product, int, error)
}

func (m *mockProductUC) Create(ctx context.Context, attrs domprod.Attrs) (domprod.Product, error) {
	return m.createFn(ctx, attrs)
}

func (m *mockProductUC) Get(ctx context.Context, id string) (domprod.Product, error) {
	return m.getFn(ctx, id)
}

func (m *mockProductUC) Update(ctx context.Context, id string, p patch.Patch) (domprod.Product, error) {
	return m.updateFn(ctx, id, p)
}

func (m *mockProductUC) Delete(ctx context.Context, id string) (bool, error) {
	return m.deleteFn(ctx, id)
}

func (m *mockProductUC) List(
	ctx context.Context, f filter.Filters, offset, limit int,
) ([]domprod.Product, int, error) {
	return m.listFn(ctx, f, offset, limit)
}

type mockSearchUC struct {
	searchFn func(ctx context.Context, q *query.Query) ([]result.Result, error)
}

func (m *mockSearchUC) Search(ctx context.Context, q *query.Query) ([]result.Result, error) {
	return m.searchFn(ctx, q)
}

type mockPromoUC struct {
	createFn func(ctx context.Context, code string, t domprom.Type, value float64,
		maxUses int, endDate *time.Time) (domprom.Promo, error)
	getFn    func(ctx context.Context, code string) (domprom.Promo, error)
	listFn   func(ctx context.Context) ([]domprom.Promo, error)
	deleteFn func(ctx context.Context, code string) (bool, error)
	redeemFn func(ctx context.Context, code string, amount float64) (float64, domprom.Promo, error)
}

func (m *mockPromoUC) Create(
	ctx context.Context, code string, t domprom.Type, value float64, maxUses int, endDate *time.Time,
) (domprom.Promo, error) {
	return m.createFn(ctx, code, t, value, maxUses, endDate)
}

func (m *mockPromoUC) Get(ctx context.Context, code string) (domprom.Promo, error) {
	return m.getFn(ctx, code)
}

func (m *mockPromoUC) List(ctx context.Context) ([]domprom.Promo, error) {
	return m.listFn(ctx)
}

func (m *mockPromoUC) Delete(ctx context.Context, code string) (bool, error) {
	return m.deleteFn(ctx, code)
}

func (m *mockPromoUC) Redeem(
	ctx context.Context, code string, amount float64,
) (float64, domprom.Promo, error) {
	return m.redeemFn(ctx, code, amount)
}

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(context.Context) healthuc.Report { return m.report }

func domainProduct(id string) domprod.Product {
	return domprod.Reconstruct(
		id,
		domprod.Attrs{
			Name:        "Ceramic Vase",
			Description: "Hand-thrown stoneware vase",
			Category:    "home-decor",
			Price:       49.90,
			Stock:       12,
			Status:      domprod.StatusOnline,
		},
		time.Unix(1700000000, 0).UTC(),
		time.Unix(1700000000, 0).UTC(),
		[]float32{0.1, 0.2},
	)
}

func TestProductsService_Create_ConvertsInput(t *testing.T) {
	var gotAttrs domprod.Attrs
	uc := &mockProductUC{
		createFn: func(_ context.Context, attrs domprod.Attrs) (domprod.Product, error) {
			gotAttrs = attrs
			return domainProduct("prod-1"), nil
		},
	}
	svc := &ProductsService{svc: uc}

	width := 12.5
	p, err := svc.Create(context.Background(), ProductInput{
		Name:        "Ceramic Vase",
		Description: "Hand-thrown stoneware vase",
		Category:    "home-decor",
		Price:       49.90,
		Stock:       12,
		Status:      StatusOnline,
		Width:       &width,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if gotAttrs.Name != "Ceramic Vase" || gotAttrs.Status != domprod.StatusOnline {
		t.Errorf("attrs not converted: %+v", gotAttrs)
	}
	if gotAttrs.Dimensions.Width == nil || *gotAttrs.Dimensions.Width != 12.5 {
		t.Error("width not forwarded")
	}
	if p.ID != "prod-1" || p.Status != StatusOnline {
		t.Errorf("product not converted back: %+v", p)
	}
}

func TestProductsService_Update_ConvertsPatch(t *testing.T) {
	var gotPatch patch.Patch
	uc := &mockProductUC{
		updateFn: func(_ context.Context, _ string, p patch.Patch) (domprod.Product, error) {
			gotPatch = p
			return domainProduct("prod-1"), nil
		},
	}
	svc := &ProductsService{svc: uc}

	price := 59.90
	status := StatusOutOfStock
	if _, err := svc.Update(context.Background(), "prod-1", ProductUpdate{
		Price:  &price,
		Status: &status,
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if gotPatch.Price == nil || *gotPatch.Price != 59.90 {
		t.Error("price not forwarded")
	}
	if gotPatch.Status == nil || *gotPatch.Status != domprod.StatusOutOfStock {
		t.Error("status not converted")
	}
	if gotPatch.Name != nil {
		t.Error("unset field must stay nil")
	}
}

func TestProductsService_Get_NotFound(t *testing.T) {
	uc := &mockProductUC{
		getFn: func(context.Context, string) (domprod.Product, error) {
			return domprod.Product{}, domain.ErrProductNotFound
		},
	}
	svc := &ProductsService{svc: uc}

	_, err := svc.Get(context.Background(), "missing")
	if !errors.Is(err, ErrProductNotFound) {
		t.Errorf("error: got %v, want ErrProductNotFound", err)
	}
}

func TestProductsService_List_ForwardsFilters(t *testing.T) {
	var gotFilters filter.Filters
	uc := &mockProductUC{
		listFn: func(
			_ context.Context, f filter.Filters, offset, limit int,
		) ([]domprod.Product, int, error) {
			gotFilters = f
			return []domprod.Product{domainProduct("prod-1")}, 3, nil
		},
	}
	svc := &ProductsService{svc: uc}

	minPrice := 10.0
	res, err := svc.List(context.Background(), ListOptions{
		Filters: Filters{Category: "home-decor", Status: StatusOnline, MinPrice: &minPrice},
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if gotFilters.Category != "home-decor" || gotFilters.Status != domprod.StatusOnline {
		t.Errorf("filters: %+v", gotFilters)
	}
	if res.Total != 3 || len(res.Products) != 1 {
		t.Errorf("result: total=%d len=%d", res.Total, len(res.Products))
	}
}

func TestSearchService_Semantic_Defaults(t *testing.T) {
	var gotQuery *query.Query
	uc := &mockSearchUC{
		searchFn: func(_ context.Context, q *query.Query) ([]result.Result, error) {
			gotQuery = q
			return []result.Result{result.New(domainProduct("prod-1"), 0.87)}, nil
		},
	}
	svc := &SearchService{svc: uc}

	hits, err := svc.Semantic(context.Background(), "rustic pottery", SearchOptions{})
	if err != nil {
		t.Fatalf("Semantic: %v", err)
	}
	if !gotQuery.Semantic() {
		t.Error("semantic flag not set")
	}
	if gotQuery.TopK() != query.DefaultTopK {
		t.Errorf("topK: got %d, want %d", gotQuery.TopK(), query.DefaultTopK)
	}
	if gotQuery.MinScore() != query.DefaultMinScore {
		t.Errorf("minScore: got %v, want %v", gotQuery.MinScore(), query.DefaultMinScore)
	}
	if len(hits) != 1 || hits[0].Score != 0.87 || hits[0].Product.ID != "prod-1" {
		t.Errorf("hits: %+v", hits)
	}
}

func TestSearchService_Substring_Mode(t *testing.T) {
	uc := &mockSearchUC{
		searchFn: func(_ context.Context, q *query.Query) ([]result.Result, error) {
			if q.Semantic() {
				t.Error("substring search must not set semantic flag")
			}
			return nil, nil
		},
	}
	svc := &SearchService{svc: uc}

	if _, err := svc.Substring(context.Background(), "vase", SearchOptions{}); err != nil {
		t.Fatalf("Substring: %v", err)
	}
}

func TestSearchService_EmptyQuery_Validation(t *testing.T) {
	svc := &SearchService{svc: &mockSearchUC{
		searchFn: func(context.Context, *query.Query) ([]result.Result, error) {
			t.Fatal("use case must not be called for invalid query")
			return nil, nil
		},
	}}

	_, err := svc.Semantic(context.Background(), "", SearchOptions{})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("error: got %v, want ErrValidation", err)
	}
}

func TestPromosService_Redeem(t *testing.T) {
	uc := &mockPromoUC{
		redeemFn: func(_ context.Context, code string, amount float64) (float64, domprom.Promo, error) {
			used := domprom.Reconstruct("promo-1", code, domprom.TypePercentage, 20, 0, 1, nil,
				time.Unix(1700000000, 0).UTC())
			return 40, used, nil
		},
	}
	svc := &PromosService{svc: uc}

	red, err := svc.Redeem(context.Background(), "SUMMER20", 200)
	if err != nil {
		t.Fatalf("Redeem: %v", err)
	}
	if red.Discount != 40 || red.FinalAmount != 160 || red.Uses != 1 {
		t.Errorf("redemption: %+v", red)
	}
}

func TestClient_Health(t *testing.T) {
	c := &Client{healthSvc: &mockHealthUC{report: healthuc.Report{
		Status: healthuc.Degraded,
		Checks: map[string]healthuc.CheckResult{
			"database": healthuc.CheckOK,
			"index":    healthuc.CheckError,
		},
	}}}

	hs := c.Health(context.Background())
	if hs.Status != "degraded" {
		t.Errorf("status: got %q", hs.Status)
	}
	if hs.Checks["index"] != "error" || hs.Checks["database"] != "ok" {
		t.Errorf("checks: %+v", hs.Checks)
	}
}

func TestNew_RequiresAddress(t *testing.T) {
	_, err := New(context.Background(), WithOpenAI("key", "text-embedding-3-small", 384))
	if err == nil {
		t.Fatal("expected error without database address")
	}
}

func TestNew_RequiresEmbedder(t *testing.T) {
	_, err := New(context.Background(), WithRedis("localhost:6379", ""))
	if err == nil {
		t.Fatal("expected error without embedding provider")
	}
}
