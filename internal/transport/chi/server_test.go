package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/antopucung/GodotTeko-sub003/internal/domain"
	"github.com/antopucung/GodotTeko-sub003/internal/domain/product"
	"github.com/antopucung/GodotTeko-sub003/internal/domain/search/request"
	"github.com/antopucung/GodotTeko-sub003/internal/domain/search/result"
	"github.com/antopucung/GodotTeko-sub003/internal/repository/snapshot"
	healthuc "github.com/antopucung/GodotTeko-sub003/internal/usecase/health"
	searchuc "github.com/antopucung/GodotTeko-sub003/internal/usecase/search"
)

// --- Fakes ---

type fakeRemote struct {
	products []product.Product
	total    int
	err      error
	filters  request.Filters
}

func (f *fakeRemote) Find(_ context.Context, flt request.Filters, _, _ int) ([]product.Product, int, error) {
	f.filters = flt
	return f.products, f.total, f.err
}

func (f *fakeRemote) Get(_ context.Context, id string) (product.Product, error) {
	if f.err != nil {
		return product.Product{}, f.err
	}
	for _, p := range f.products {
		if p.ID == id {
			return p, nil
		}
	}
	return product.Product{}, domain.ErrNotFound
}

type failingLocal struct{ err error }

func (f failingLocal) All(context.Context) ([]product.Product, error) { return nil, f.err }

func (f failingLocal) Loaded() bool { return false }

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

func testProducts() []product.Product {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	return []product.Product{
		{ID: "p1", Title: "City Icons", Price: 12, Featured: true, CreatedAt: base,
			Categories: []product.Ref{{Name: "Icons", Slug: "icons"}}, FileTypes: []string{"SVG"}},
		{ID: "p2", Title: "Mono Font", Price: 0, Freebie: true, CreatedAt: base.Add(time.Hour),
			Categories: []product.Ref{{Name: "Fonts", Slug: "fonts"}}, FileTypes: []string{"OTF"}},
		{ID: "p3", Title: "Icon Kit", Price: 30, CreatedAt: base.Add(2 * time.Hour),
			Categories: []product.Ref{{Name: "Icons", Slug: "icons"}}, FileTypes: []string{"svg", "PNG"}},
	}
}

func newTestRouter(remote searchuc.RemoteCatalog, local *snapshot.Catalog, apiKeys ...string) http.Handler {
	var search *searchuc.Service
	var health *healthuc.Service
	if local != nil {
		search = searchuc.New(remote, local)
		health = healthuc.New(nil, local)
	} else {
		search = searchuc.New(remote, failingLocal{err: errors.New("disk gone")})
		health = healthuc.New(fakePinger{err: errors.New("down")}, failingLocal{})
	}
	s := NewServer(search, health, zap.NewNop())
	return NewRouter(s, zap.NewNop(), apiKeys)
}

func get(t *testing.T, h http.Handler, target string, out any) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, http.NoBody)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if out != nil {
		if err := json.NewDecoder(rr.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", target, err)
		}
	}
	return rr
}

// --- /api/products ---

func TestSearchProducts_LocalFallback(t *testing.T) {
	h := newTestRouter(nil, snapshot.FromProducts(testProducts()))

	var env result.Envelope
	rr := get(t, h, "/api/products?categories=icons&sortBy=price_high&limit=1", &env)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if got := rr.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q", got)
	}
	if len(env.Data) != 1 || env.Data[0].ID != "p3" {
		t.Errorf("data = %+v, want [p3]", env.Data)
	}
	if env.Meta.Total != 2 || env.Meta.TotalPages != 2 || !env.Meta.HasNextPage {
		t.Errorf("meta = %+v, want total 2 over 2 pages", env.Meta)
	}
	if !env.Meta.Fallback || env.Meta.Error == "" {
		t.Errorf("fallback = %v, error = %q, want fallback with message", env.Meta.Fallback, env.Meta.Error)
	}
	if env.Meta.Performance == nil || env.Meta.Performance.FilterCount != 1 {
		t.Errorf("performance = %+v, want filterCount 1", env.Meta.Performance)
	}
}

func TestSearchProducts_Remote(t *testing.T) {
	remote := &fakeRemote{products: testProducts()[:1], total: 1}
	h := newTestRouter(remote, snapshot.FromProducts(testProducts()))

	var env result.Envelope
	rr := get(t, h, "/api/products?query=city,+icons&featured=true", &env)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if env.Meta.Fallback {
		t.Error("remote answer must not be flagged as fallback")
	}
	if !env.Meta.SearchPerformed {
		t.Error("searchPerformed = false, want true")
	}
	if remote.filters.Query != "city, icons" {
		t.Errorf("remote query = %q, want commas kept", remote.filters.Query)
	}
	if remote.filters.Featured == nil || !*remote.filters.Featured {
		t.Errorf("remote featured = %v, want true", remote.filters.Featured)
	}
}

func TestSearchProducts_BothSourcesFail_500Envelope(t *testing.T) {
	h := newTestRouter(&fakeRemote{err: errors.New("timeout")}, nil)

	var env result.ErrorEnvelope
	rr := get(t, h, "/api/products?page=4", &env)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
	if env.Error != string(ErrorCodeCatalogUnavailable) || env.Message != searchFailedMessage {
		t.Errorf("envelope = %+v", env)
	}
	if env.Data == nil || len(env.Data) != 0 {
		t.Errorf("data = %v, want empty array", env.Data)
	}
	if env.Meta.Page != 1 || env.Meta.Total != 0 {
		t.Errorf("meta = %+v, want page 1 total 0", env.Meta)
	}
}

func TestSearchProducts_LimitClamped(t *testing.T) {
	h := newTestRouter(nil, snapshot.FromProducts(testProducts()))

	var env result.Envelope
	get(t, h, "/api/products?limit=5000&page=-2", &env)

	if env.Meta.Limit != request.MaxLimit || env.Meta.Page != 1 {
		t.Errorf("page/limit = %d/%d, want 1/%d", env.Meta.Page, env.Meta.Limit, request.MaxLimit)
	}
}

// --- /api/products/suggest and /filters ---

func TestSuggestProducts(t *testing.T) {
	h := newTestRouter(nil, snapshot.FromProducts(testProducts()))

	var body suggestResponse
	rr := get(t, h, "/api/products/suggest?q=icn&limit=5", &body)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if len(body.Data) != 2 {
		t.Fatalf("suggestions = %+v, want 2", body.Data)
	}
	for _, s := range body.Data {
		if s.ID == "p2" {
			t.Errorf("unexpected suggestion %+v", s)
		}
	}
}

func TestSuggestProducts_CatalogError_500(t *testing.T) {
	h := newTestRouter(nil, nil)

	var body ErrorResponse
	rr := get(t, h, "/api/products/suggest?q=icon", &body)
	if rr.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500 for an unclassified catalog error", rr.Code)
	}
	if body.Code != ErrorCodeInternalError {
		t.Errorf("code = %q", body.Code)
	}
}

func TestProductFilters(t *testing.T) {
	h := newTestRouter(nil, snapshot.FromProducts(testProducts()))

	var facets result.Facets
	rr := get(t, h, "/api/products/filters", &facets)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if facets.Total != 3 {
		t.Errorf("total = %d, want 3", facets.Total)
	}
	if len(facets.Categories) == 0 || facets.Categories[0].Value != "icons" || facets.Categories[0].Count != 2 {
		t.Errorf("categories = %+v, want icons first with 2", facets.Categories)
	}
	if facets.PriceRange != [2]float64{0, 30} {
		t.Errorf("priceRange = %v, want [0 30]", facets.PriceRange)
	}
}

func TestProductFilters_NotLoaded_503(t *testing.T) {
	h := newTestRouter(nil, snapshot.New(nil))

	var body ErrorResponse
	rr := get(t, h, "/api/products/filters", &body)
	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rr.Code)
	}
	if body.Code != ErrorCodeCatalogUnavailable {
		t.Errorf("code = %q", body.Code)
	}
}

// --- /api/products/{id} ---

func TestGetProduct(t *testing.T) {
	tests := []struct {
		name     string
		remote   searchuc.RemoteCatalog
		local    *snapshot.Catalog
		target   string
		wantCode int
		wantID   string
	}{
		{"from store", &fakeRemote{products: testProducts()[2:]}, snapshot.New(nil), "/api/products/p3", http.StatusOK, "p3"},
		{"store down uses local", &fakeRemote{err: errors.New("timeout")}, snapshot.FromProducts(testProducts()), "/api/products/p2", http.StatusOK, "p2"},
		{"store miss uses local", &fakeRemote{}, snapshot.FromProducts(testProducts()), "/api/products/p1", http.StatusOK, "p1"},
		{"unknown id", &fakeRemote{}, snapshot.FromProducts(testProducts()), "/api/products/nope", http.StatusNotFound, ""},
		{"store miss, local not loaded", &fakeRemote{}, snapshot.New(nil), "/api/products/p1", http.StatusNotFound, ""},
		{"no source", &fakeRemote{err: errors.New("timeout")}, snapshot.New(nil), "/api/products/p1", http.StatusServiceUnavailable, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestRouter(tt.remote, tt.local)

			req := httptest.NewRequest(http.MethodGet, tt.target, http.NoBody)
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			if rr.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rr.Code, tt.wantCode)
			}
			if tt.wantID == "" {
				var body ErrorResponse
				if err := json.NewDecoder(rr.Body).Decode(&body); err != nil || body.Code == "" {
					t.Errorf("want JSON error body, got %q (%v)", rr.Body.String(), err)
				}
				return
			}
			var body struct {
				Data product.Product `json:"data"`
			}
			if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Data.ID != tt.wantID {
				t.Errorf("id = %q, want %q", body.Data.ID, tt.wantID)
			}
		})
	}
}

// --- /health and routing ---

func TestHealthCheck(t *testing.T) {
	var body healthResponse
	rr := get(t, newTestRouter(nil, snapshot.FromProducts(testProducts())), "/health", &body)
	if rr.Code != http.StatusOK {
		t.Errorf("healthy: status = %d, want 200", rr.Code)
	}
	if body.Status != healthuc.Healthy {
		t.Errorf("status = %q, want ok", body.Status)
	}
	if body.Checks[healthuc.ComponentStore] != healthuc.CheckDisabled {
		t.Errorf("store check = %q, want disabled", body.Checks[healthuc.ComponentStore])
	}

	rr = get(t, newTestRouter(nil, nil), "/health", &body)
	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("unhealthy: status = %d, want 503", rr.Code)
	}
}

func TestRouter_NotFound(t *testing.T) {
	h := newTestRouter(nil, snapshot.FromProducts(testProducts()))

	var body ErrorResponse
	rr := get(t, h, "/api/collections", &body)
	if rr.Code != http.StatusNotFound || body.Code != ErrorCodeNotFound {
		t.Errorf("got %d %q, want 404 not_found", rr.Code, body.Code)
	}
}

func TestRouter_AuthAndRequestID(t *testing.T) {
	h := newTestRouter(nil, snapshot.FromProducts(testProducts()), "secret")

	rr := get(t, h, "/api/products", nil)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", rr.Code)
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header missing")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/products", http.NoBody)
	req.Header.Set("Authorization", "Bearer secret")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("with token: status = %d, want 200", rr.Code)
	}

	if rr := get(t, h, "/health", nil); rr.Code != http.StatusOK {
		t.Errorf("/health must bypass auth, got %d", rr.Code)
	}
}

func TestJSONRecoverer(t *testing.T) {
	h := JSONRecoverer(zap.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	var env result.ErrorEnvelope
	rr := get(t, h, "/api/products", &env)
	if rr.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rr.Code)
	}
	if env.Error != string(ErrorCodeInternalError) {
		t.Errorf("error = %q", env.Error)
	}
}

func TestServer_WithPagination(t *testing.T) {
	local := snapshot.FromProducts(testProducts())
	s := NewServer(searchuc.New(nil, local), healthuc.New(nil, local), zap.NewNop()).
		WithPagination(2, 2).
		WithSuggestLimit(1)
	h := NewRouter(s, zap.NewNop(), nil)

	var env result.Envelope
	get(t, h, "/api/products", &env)
	if env.Meta.Limit != 2 || len(env.Data) != 2 {
		t.Errorf("default limit: meta.limit = %d, data = %d, want 2/2", env.Meta.Limit, len(env.Data))
	}

	get(t, h, "/api/products?limit=50", &env)
	if env.Meta.Limit != 2 {
		t.Errorf("capped limit = %d, want 2", env.Meta.Limit)
	}

	var body suggestResponse
	get(t, h, "/api/products/suggest?q=icon", &body)
	if len(body.Data) != 1 {
		t.Errorf("suggestions = %d, want 1", len(body.Data))
	}
}
