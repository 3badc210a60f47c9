package cart

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/kicksline/storefront-api/internal/catalog"
)

func newTestServer(t *testing.T) *chi.Mux {
	t.Helper()
	store := catalog.NewStore()
	require.NoError(t, catalog.Seed(store))
	catalogSvc, err := catalog.NewService(catalog.ServiceConfig{Store: store})
	require.NoError(t, err)

	reg := NewRegistry(RegistryConfig{Currency: "USD", Rates: defaultRates()})
	h := NewHandler(HandlerConfig{Registry: reg, Catalog: catalogSvc, Validate: validator.New()})

	r := chi.NewRouter()
	r.Route("/carts", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.Detail)
			r.Get("/summary", h.Summary)
			r.Post("/items", h.AddItem)
			r.Delete("/items", h.Clear)
			r.Patch("/items/{itemId}", h.UpdateQuantity)
			r.Delete("/items/{itemId}", h.RemoveItem)
		})
	})
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Buffer
	if body == "" {
		reader = bytes.NewBuffer(nil)
	} else {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func dataField(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, dst))
}

func createCart(t *testing.T, r http.Handler) string {
	t.Helper()
	rec := doJSON(t, r, http.MethodPost, "/carts", `{"userId":"user-1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var view cartView
	dataField(t, rec, &view)
	require.NotEmpty(t, view.ID)
	return view.ID
}

func TestCartLifecycleOverHTTP(t *testing.T) {
	r := newTestServer(t)
	cartID := createCart(t, r)

	// add a seeded variant
	rec := doJSON(t, r, http.MethodPost, "/carts/"+cartID+"/items",
		`{"productId":"SNK001","variantId":"VAR001","quantity":2}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var item Item
	dataField(t, rec, &item)
	require.Equal(t, "Nike Air Max 90", item.ProductName)
	require.Equal(t, "Black - Size 10", item.VariantName)
	require.Equal(t, 2, item.Quantity)

	// same product and variant merges into the existing line
	rec = doJSON(t, r, http.MethodPost, "/carts/"+cartID+"/items",
		`{"productId":"SNK001","variantId":"VAR001","quantity":1}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/carts/"+cartID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var view cartView
	dataField(t, rec, &view)
	require.Len(t, view.Items, 1)
	require.Equal(t, 3, view.Items[0].Quantity)
	require.Equal(t, 3, view.Summary.ItemCount)
	requireMoney(t, "8999.97", view.Summary.Subtotal)

	// update quantity, then remove
	rec = doJSON(t, r, http.MethodPatch, "/carts/"+cartID+"/items/"+item.ID, `{"quantity":1}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/carts/"+cartID+"/summary", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var summary Summary
	dataField(t, rec, &summary)
	require.Equal(t, 1, summary.ItemCount)
	requireMoney(t, "2999.99", summary.Subtotal)

	rec = doJSON(t, r, http.MethodDelete, "/carts/"+cartID+"/items/"+item.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	dataField(t, rec, &view)
	require.Empty(t, view.Items)
	requireMoney(t, "0", view.Summary.Total)
}

func TestClearCartOverHTTP(t *testing.T) {
	r := newTestServer(t)
	cartID := createCart(t, r)

	rec := doJSON(t, r, http.MethodPost, "/carts/"+cartID+"/items", `{"productId":"SNK002"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, r, http.MethodDelete, "/carts/"+cartID+"/items", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var view cartView
	dataField(t, rec, &view)
	require.Empty(t, view.Items)
	require.Equal(t, 0, view.Summary.ItemCount)
}

func TestCartHandlerErrors(t *testing.T) {
	r := newTestServer(t)
	cartID := createCart(t, r)

	rec := doJSON(t, r, http.MethodGet, "/carts/nope", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, r, http.MethodPost, "/carts/"+cartID+"/items", `{"productId":"NOPE"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, r, http.MethodPost, "/carts/"+cartID+"/items",
		`{"productId":"SNK001","variantId":"VAR404"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, r, http.MethodPost, "/carts/"+cartID+"/items", `{"quantity":1}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "VALIDATION")

	// a zero quantity reads as omitted and falls back to one
	rec = doJSON(t, r, http.MethodPost, "/carts/"+cartID+"/items",
		`{"productId":"SNK001","quantity":0}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var item Item
	dataField(t, rec, &item)
	require.Equal(t, 1, item.Quantity)

	rec = doJSON(t, r, http.MethodPost, "/carts/"+cartID+"/items",
		`{"productId":"SNK001","quantity":-2}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, r, http.MethodPatch, "/carts/"+cartID+"/items/nope", `{"quantity":0}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, r, http.MethodPatch, "/carts/"+cartID+"/items/nope", `{"quantity":2}`)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, r, http.MethodDelete, "/carts/"+cartID+"/items/nope", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}
