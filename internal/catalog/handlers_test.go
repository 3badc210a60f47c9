package catalog

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*chi.Mux, *Store) {
	t.Helper()
	store := NewStore()
	svc, err := NewService(ServiceConfig{Store: store})
	require.NoError(t, err)
	h := NewHandler(HandlerConfig{Service: svc, Validate: validator.New()})

	r := chi.NewRouter()
	r.Get("/products", h.Products)
	r.Post("/products", h.Create)
	r.Get("/products/{id}", h.ProductDetail)
	r.Patch("/products/{id}/stock", h.UpdateStock)
	return r, store
}

func decodeData(t *testing.T, body *bytes.Buffer, dst any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, dst))
}

func TestProductsEndpointFeaturedAndBrand(t *testing.T) {
	r, store := newTestRouter(t)
	require.NoError(t, Seed(store))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var featured []Product
	decodeData(t, rec.Body, &featured)
	require.Len(t, featured, 6)
	require.Equal(t, "SNK001", featured[0].ID)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products?brand=nike", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var nikes []Product
	decodeData(t, rec.Body, &nikes)
	require.Len(t, nikes, 2)
	require.Equal(t, "SNK001", nikes[0].ID)
	require.Equal(t, "SNK005", nikes[1].ID)
}

func TestProductDetailEndpoint(t *testing.T) {
	r, store := newTestRouter(t)
	require.NoError(t, Seed(store))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/SNK003", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var p Product
	decodeData(t, rec.Body, &p)
	require.Equal(t, "Air Jordan 1 Retro High", p.Name)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/NOPE", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "NOT_FOUND")
}

func TestCreateProductEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	body := `{"id":"P1","name":"Test Shoe","brand":"Nike","price":"150.00","featured":true}`
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/products", bytes.NewBufferString(body)))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Contains(t, rec.Body.String(), `"id":"P1"`)

	// duplicate id conflicts
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/products", bytes.NewBufferString(body)))
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Contains(t, rec.Body.String(), "CONFLICT")

	// missing id is rejected
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/products", bytes.NewBufferString(`{"name":"x"}`)))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// malformed JSON is rejected
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/products", bytes.NewBufferString(`{`)))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateStockEndpoint(t *testing.T) {
	r, store := newTestRouter(t)
	require.NoError(t, Seed(store))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/products/SNK001/stock",
		bytes.NewBufferString(`{"variantId":"VAR001","stock":3}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	p, _ := store.Get("SNK001")
	v, ok := p.Variant("VAR001")
	require.True(t, ok)
	require.Equal(t, 3, v.Stock)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/products/SNK001/stock",
		bytes.NewBufferString(`{"stock":-1}`)))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/products/SNK001/stock",
		bytes.NewBufferString(`{"variantId":"VAR404","stock":1}`)))
	require.Equal(t, http.StatusNotFound, rec.Code)
}
