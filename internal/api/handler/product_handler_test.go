package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/marketsquare/marketplace-api/internal/core/domain"
	"github.com/marketsquare/marketplace-api/internal/core/ports"
)

type stubCatalogService struct {
	createFn func(ctx context.Context, identity domain.Identity, input ports.CreateProductInput) (*domain.Product, error)
	updateFn func(ctx context.Context, identity domain.Identity, id int64, patch ports.ProductPatch) (*domain.Product, error)
	deleteFn func(ctx context.Context, identity domain.Identity, id int64) error
	listFn   func(ctx context.Context) ([]domain.Product, error)
}

func (s *stubCatalogService) Create(ctx context.Context, identity domain.Identity, input ports.CreateProductInput) (*domain.Product, error) {
	return s.createFn(ctx, identity, input)
}

func (s *stubCatalogService) Update(ctx context.Context, identity domain.Identity, id int64, patch ports.ProductPatch) (*domain.Product, error) {
	return s.updateFn(ctx, identity, id, patch)
}

func (s *stubCatalogService) Delete(ctx context.Context, identity domain.Identity, id int64) error {
	return s.deleteFn(ctx, identity, id)
}

func (s *stubCatalogService) List(ctx context.Context) ([]domain.Product, error) {
	return s.listFn(ctx)
}

func newProductContext(t *testing.T, e *echo.Echo, method, target, body string, identity *domain.Identity) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if identity != nil {
		c.Set("username", identity.Username)
		c.Set("role", identity.Role)
	}
	return c, rec
}

func TestProductHandler_List(t *testing.T) {
	e := echo.New()
	stub := &stubCatalogService{
		listFn: func(ctx context.Context) ([]domain.Product, error) {
			return []domain.Product{{ID: 1, Name: "Widget", Price: 9.99, Seller: "alice"}}, nil
		},
	}
	handler := NewProductHandler(stub)

	c, rec := newProductContext(t, e, http.MethodGet, "/api/products", "", nil)
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 1 || resp[0]["name"] != "Widget" || resp[0]["seller"] != "alice" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestProductHandler_List_EmptyIsArray(t *testing.T) {
	e := echo.New()
	stub := &stubCatalogService{
		listFn: func(ctx context.Context) ([]domain.Product, error) {
			return nil, nil
		},
	}
	handler := NewProductHandler(stub)

	c, rec := newProductContext(t, e, http.MethodGet, "/api/products", "", nil)
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Fatalf("expected empty JSON array, got %q", got)
	}
}

func TestProductHandler_Create_Success(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubCatalogService{
		createFn: func(ctx context.Context, identity domain.Identity, input ports.CreateProductInput) (*domain.Product, error) {
			if identity.Username != "alice" || identity.Role != domain.RoleSeller {
				t.Fatalf("unexpected identity: %+v", identity)
			}
			if input.Name != "Widget" || input.Price == nil || *input.Price != 9.99 {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.Product{ID: 1, Name: input.Name, Price: *input.Price, Seller: identity.Username}, nil
		},
	}
	handler := NewProductHandler(stub)

	seller := domain.Identity{Username: "alice", Role: domain.RoleSeller}
	c, rec := newProductContext(t, e, http.MethodPost, "/api/products", `{"name":"Widget","price":9.99}`, &seller)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != float64(1) || resp["name"] != "Widget" || resp["price"] != 9.99 || resp["seller"] != "alice" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestProductHandler_Create_MissingFields(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubCatalogService{
		createFn: func(ctx context.Context, identity domain.Identity, input ports.CreateProductInput) (*domain.Product, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	handler := NewProductHandler(stub)
	seller := domain.Identity{Username: "alice", Role: domain.RoleSeller}

	for _, body := range []string{`{"price":9.99}`, `{"name":"Widget"}`, `{"name":"Widget","price":-1}`} {
		c, rec := newProductContext(t, e, http.MethodPost, "/api/products", body, &seller)
		_ = handler.Create(c)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, rec.Code)
		}
	}
}

func TestProductHandler_Create_Forbidden(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubCatalogService{
		createFn: func(ctx context.Context, identity domain.Identity, input ports.CreateProductInput) (*domain.Product, error) {
			return nil, domain.ErrForbidden
		},
	}
	handler := NewProductHandler(stub)
	buyer := domain.Identity{Username: "bob", Role: domain.RoleBuyer}

	c, rec := newProductContext(t, e, http.MethodPost, "/api/products", `{"name":"Widget","price":9.99}`, &buyer)
	_ = handler.Create(c)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestProductHandler_Create_MissingClaims(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubCatalogService{
		createFn: func(ctx context.Context, identity domain.Identity, input ports.CreateProductInput) (*domain.Product, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	handler := NewProductHandler(stub)

	c, rec := newProductContext(t, e, http.MethodPost, "/api/products", `{"name":"Widget","price":9.99}`, nil)
	if err := handler.Create(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestProductHandler_Update_PartialPatch(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubCatalogService{
		updateFn: func(ctx context.Context, identity domain.Identity, id int64, patch ports.ProductPatch) (*domain.Product, error) {
			if id != 1 {
				t.Fatalf("unexpected id: %d", id)
			}
			if patch.Name != nil {
				t.Fatalf("name should be absent from patch")
			}
			if patch.Price == nil || *patch.Price != 12.0 {
				t.Fatalf("unexpected patch: %+v", patch)
			}
			return &domain.Product{ID: 1, Name: "Widget", Price: 12.0, Seller: "alice"}, nil
		},
	}
	handler := NewProductHandler(stub)
	seller := domain.Identity{Username: "alice", Role: domain.RoleSeller}

	c, rec := newProductContext(t, e, http.MethodPut, "/api/products/1", `{"price":12.0}`, &seller)
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["price"] != 12.0 || resp["name"] != "Widget" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestProductHandler_Update_NotFound(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubCatalogService{
		updateFn: func(ctx context.Context, identity domain.Identity, id int64, patch ports.ProductPatch) (*domain.Product, error) {
			return nil, domain.ErrProductNotFound
		},
	}
	handler := NewProductHandler(stub)
	seller := domain.Identity{Username: "alice", Role: domain.RoleSeller}

	c, rec := newProductContext(t, e, http.MethodPut, "/api/products/42", `{"price":1}`, &seller)
	c.SetParamNames("id")
	c.SetParamValues("42")

	_ = handler.Update(c)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestProductHandler_Update_NonNumericID(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubCatalogService{
		updateFn: func(ctx context.Context, identity domain.Identity, id int64, patch ports.ProductPatch) (*domain.Product, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	handler := NewProductHandler(stub)
	seller := domain.Identity{Username: "alice", Role: domain.RoleSeller}

	c, rec := newProductContext(t, e, http.MethodPut, "/api/products/abc", `{"price":1}`, &seller)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	_ = handler.Update(c)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestProductHandler_Delete_Success(t *testing.T) {
	e := echo.New()
	deleted := int64(0)
	stub := &stubCatalogService{
		deleteFn: func(ctx context.Context, identity domain.Identity, id int64) error {
			deleted = id
			return nil
		},
	}
	handler := NewProductHandler(stub)
	seller := domain.Identity{Username: "alice", Role: domain.RoleSeller}

	c, rec := newProductContext(t, e, http.MethodDelete, "/api/products/1", "", &seller)
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if deleted != 1 {
		t.Fatalf("expected delete of id 1, got %d", deleted)
	}
}

func TestProductHandler_Delete_Forbidden(t *testing.T) {
	e := echo.New()
	stub := &stubCatalogService{
		deleteFn: func(ctx context.Context, identity domain.Identity, id int64) error {
			return domain.ErrForbidden
		},
	}
	handler := NewProductHandler(stub)
	buyer := domain.Identity{Username: "bob", Role: domain.RoleBuyer}

	c, rec := newProductContext(t, e, http.MethodDelete, "/api/products/1", "", &buyer)
	c.SetParamNames("id")
	c.SetParamValues("1")

	_ = handler.Delete(c)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}
