// internal/service/product/interfaces/http_handler_test.go
package interfaces

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"catalog/internal/service/product/application"
	"catalog/internal/service/product/domain"
	"catalog/internal/service/product/infrastructure/adapter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

const testSecret = "test-secret"

type stubProductRepo struct {
	products map[int]*domain.Product
}

func (r *stubProductRepo) FindByID(_ context.Context, id int) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, domain.NewProductNotFoundError()
	}
	copied := *p
	return &copied, nil
}

func (r *stubProductRepo) FindAll(context.Context) ([]domain.Product, error) {
	var products []domain.Product
	for _, p := range r.products {
		products = append(products, *p)
	}
	return products, nil
}

func (r *stubProductRepo) FindByName(_ context.Context, name string) ([]domain.Product, error) {
	var products []domain.Product
	for _, p := range r.products {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(name)) {
			products = append(products, *p)
		}
	}
	return products, nil
}

func (r *stubProductRepo) DecrementStockBatch(_ context.Context, _ []domain.ProductQuantity) ([]domain.Product, error) {
	panic("the synchronous API must never mutate stock")
}

type stubPublisher struct{}

func (stubPublisher) Publish(context.Context, domain.SalesConfirmationEvent) {}

type stubGuard struct{}

func (stubGuard) AlreadyProcessed(context.Context, string) (bool, error) { return false, nil }
func (stubGuard) MarkProcessed(context.Context, string) error            { return nil }

type stubSalesClient struct {
	salesIDs []string
}

func (c *stubSalesClient) FindSalesByProductID(context.Context, int) ([]string, error) {
	return c.salesIDs, nil
}

func newTestMux(products ...domain.Product) *http.ServeMux {
	repo := &stubProductRepo{products: map[int]*domain.Product{}}
	for _, p := range products {
		copied := p
		repo.products[p.ID] = &copied
	}

	svc := application.NewStockService(repo, stubPublisher{}, stubGuard{},
		&stubSalesClient{salesIDs: []string{"S10"}}, otel.Tracer("test"))
	handler := NewProductHandler(svc, adapter.NewStaticTokenValidator(testSecret))

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	return mux
}

func doRequest(mux *http.ServeMux, method, target, body string, withHeaders bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if withHeaders {
		req.Header.Set("transactionid", "tx-test")
		req.Header.Set("Authorization", "Bearer "+testSecret)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestCheckStockHandler(t *testing.T) {
	mux := newTestMux(domain.Product{ID: 1, QuantityAvailable: 3})

	t.Run("stock ok", func(t *testing.T) {
		rec := doRequest(mux, http.MethodPost, "/api/product/check-stock",
			`{"products":[{"productId":1,"quantity":3}]}`, true)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp SuccessResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "The stock is ok!", resp.Message)
	})

	t.Run("out of stock returns rejection reason", func(t *testing.T) {
		rec := doRequest(mux, http.MethodPost, "/api/product/check-stock",
			`{"products":[{"productId":1,"quantity":4}]}`, true)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "The product 1 is out of stock.", resp.Message)
	})

	t.Run("unknown product", func(t *testing.T) {
		rec := doRequest(mux, http.MethodPost, "/api/product/check-stock",
			`{"products":[{"productId":99,"quantity":1}]}`, true)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("empty body fails validation", func(t *testing.T) {
		rec := doRequest(mux, http.MethodPost, "/api/product/check-stock", `{}`, true)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "The request data must be informed.", resp.Message)
	})
}

func TestRequestContextMiddleware(t *testing.T) {
	mux := newTestMux(domain.Product{ID: 1, QuantityAvailable: 3})

	t.Run("missing transactionid header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/product/check-stock",
			strings.NewReader(`{"products":[{"productId":1,"quantity":1}]}`))
		req.Header.Set("Authorization", "Bearer "+testSecret)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "The transactionid header is required.", resp.Message)
	})

	t.Run("invalid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/product/check-stock",
			strings.NewReader(`{"products":[{"productId":1,"quantity":1}]}`))
		req.Header.Set("transactionid", "tx-test")
		req.Header.Set("Authorization", "Bearer wrong")
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "The provided token is not valid.", resp.Message)
	})
}

func TestFindByIDHandler(t *testing.T) {
	mux := newTestMux(domain.Product{ID: 7, Name: "monitor", QuantityAvailable: 12})

	t.Run("found", func(t *testing.T) {
		rec := doRequest(mux, http.MethodGet, "/api/product/7", "", true)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp ProductResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 7, resp.ID)
		assert.Equal(t, "monitor", resp.Name)
		assert.Equal(t, 12, resp.QuantityAvailable)
	})

	t.Run("not found", func(t *testing.T) {
		rec := doRequest(mux, http.MethodGet, "/api/product/8", "", true)

		require.Equal(t, http.StatusNotFound, rec.Code)
		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "There's no product for the given ID.", resp.Message)
	})
}

func TestFindAllHandler(t *testing.T) {
	mux := newTestMux(
		domain.Product{ID: 1, Name: "keyboard", QuantityAvailable: 5},
		domain.Product{ID: 2, Name: "mouse", QuantityAvailable: 8},
	)

	rec := doRequest(mux, http.MethodGet, "/api/product", "", true)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp []ProductResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
}

func TestFindByNameHandler(t *testing.T) {
	mux := newTestMux(
		domain.Product{ID: 1, Name: "Gamer Keyboard", QuantityAvailable: 5},
		domain.Product{ID: 2, Name: "mouse", QuantityAvailable: 8},
	)

	t.Run("case-insensitive partial match", func(t *testing.T) {
		rec := doRequest(mux, http.MethodGet, "/api/product/name/keyboard", "", true)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp []ProductResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp, 1)
		assert.Equal(t, "Gamer Keyboard", resp[0].Name)
	})

	t.Run("no match returns empty list", func(t *testing.T) {
		rec := doRequest(mux, http.MethodGet, "/api/product/name/webcam", "", true)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp []ProductResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Empty(t, resp)
	})
}

func TestFindProductSalesHandler(t *testing.T) {
	mux := newTestMux(domain.Product{ID: 7, Name: "monitor", QuantityAvailable: 12})

	rec := doRequest(mux, http.MethodGet, "/api/product/7/sales", "", true)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp ProductSalesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 7, resp.ID)
	assert.Equal(t, []string{"S10"}, resp.SalesIDs)
}
