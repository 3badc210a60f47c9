package catalog

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"

	"github.com/kicksline/storefront-api/internal/common"
)

// Handler wires the catalog service to HTTP.
type Handler struct {
	Svc      *Service
	Validate *validator.Validate
}

// HandlerConfig groups Handler dependencies.
type HandlerConfig struct {
	Service  *Service
	Validate *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{Svc: cfg.Service, Validate: cfg.Validate}
}

// Products lists featured products, or all products of a brand when the
// brand query parameter is present.
func (h *Handler) Products(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog service not configured", nil)
		return
	}
	if brand := strings.TrimSpace(r.URL.Query().Get("brand")); brand != "" {
		common.Data(w, http.StatusOK, h.Svc.ByBrand(r.Context(), brand))
		return
	}
	common.Data(w, http.StatusOK, h.Svc.Featured(r.Context()))
}

// ProductDetail returns a single product by id.
func (h *Handler) ProductDetail(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog service not configured", nil)
		return
	}
	id := chi.URLParam(r, "id")
	product, ok := h.Svc.Product(r.Context(), id)
	if !ok {
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "product not found", nil)
		return
	}
	common.Data(w, http.StatusOK, product)
}

// Create adds a product to the catalog.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog service not configured", nil)
		return
	}
	var payload Product
	if err := common.DecodeJSON(r, nil, &payload); err != nil {
		h.writeError(w, err)
		return
	}
	id, err := h.Svc.AddProduct(r.Context(), payload)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.Data(w, http.StatusCreated, map[string]any{"id": id})
}

type updateStockRequest struct {
	VariantID string `json:"variantId"`
	Stock     int    `json:"stock" validate:"gte=0"`
}

// UpdateStock sets the base or variant stock count for a product.
func (h *Handler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog service not configured", nil)
		return
	}
	id := chi.URLParam(r, "id")
	var payload updateStockRequest
	if err := common.DecodeJSON(r, h.Validate, &payload); err != nil {
		h.writeError(w, err)
		return
	}
	if !h.Svc.UpdateStock(r.Context(), id, payload.VariantID, payload.Stock) {
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "product or variant not found", nil)
		return
	}
	common.Data(w, http.StatusOK, map[string]any{
		"productId": id,
		"variantId": payload.VariantID,
		"stock":     payload.Stock,
	})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var appErr *common.AppError
	if errors.As(err, &appErr) {
		status := appErr.HTTPStatus
		if status == 0 {
			status = http.StatusBadRequest
		}
		common.JSONError(w, status, appErr.Code, appErr.Message, appErr.Details)
		return
	}
	switch {
	case errors.Is(err, ErrDuplicateID):
		common.JSONError(w, http.StatusConflict, "CONFLICT", err.Error(), nil)
	case errors.Is(err, ErrInvalidProduct):
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
	default:
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", err.Error(), nil)
	}
}
