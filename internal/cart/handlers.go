package cart

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"

	"github.com/kicksline/storefront-api/internal/catalog"
	"github.com/kicksline/storefront-api/internal/common"
	"github.com/kicksline/storefront-api/internal/obs"
)

// Handler wires cart operations to HTTP. Item additions resolve products
// through the catalog service so snapshots always come from live data.
type Handler struct {
	Reg      *Registry
	Catalog  *catalog.Service
	Validate *validator.Validate
}

// HandlerConfig groups Handler dependencies.
type HandlerConfig struct {
	Registry *Registry
	Catalog  *catalog.Service
	Validate *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{Reg: cfg.Registry, Catalog: cfg.Catalog, Validate: cfg.Validate}
}

type createCartRequest struct {
	UserID string `json:"userId"`
}

// Create opens a new cart.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var payload createCartRequest
	if r.ContentLength > 0 {
		if err := common.DecodeJSON(r, nil, &payload); err != nil {
			h.writeError(w, err)
			return
		}
	}
	c := h.Reg.Create(payload.UserID)
	common.Data(w, http.StatusCreated, h.view(c))
}

// Detail returns the cart's lines and totals.
func (h *Handler) Detail(w http.ResponseWriter, r *http.Request) {
	c, ok := h.cart(w, r)
	if !ok {
		return
	}
	common.Data(w, http.StatusOK, h.view(c))
}

// Summary returns just the cart's totals.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	c, ok := h.cart(w, r)
	if !ok {
		return
	}
	common.Data(w, http.StatusOK, c.Summary())
}

type addItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	VariantID string `json:"variantId"`
	Quantity  int    `json:"quantity" validate:"omitempty,min=1"`
}

// AddItem puts a catalog product into the cart.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	c, ok := h.cart(w, r)
	if !ok {
		return
	}
	var payload addItemRequest
	if err := common.DecodeJSON(r, h.Validate, &payload); err != nil {
		h.writeError(w, err)
		return
	}
	product, found := h.Catalog.Product(r.Context(), payload.ProductID)
	if !found {
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "product not found", nil)
		return
	}
	item, err := c.AddItem(r.Context(), product, payload.VariantID, payload.Quantity)
	if err != nil {
		obs.ObserveCartMutation("add_item", "error")
		h.writeError(w, err)
		return
	}
	obs.ObserveCartMutation("add_item", "ok")
	common.Data(w, http.StatusCreated, item)
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

// UpdateQuantity replaces a line's quantity.
func (h *Handler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	c, ok := h.cart(w, r)
	if !ok {
		return
	}
	var payload updateQuantityRequest
	if err := common.DecodeJSON(r, h.Validate, &payload); err != nil {
		h.writeError(w, err)
		return
	}
	itemID := chi.URLParam(r, "itemId")
	if !c.UpdateQuantity(r.Context(), itemID, payload.Quantity) {
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "cart item not found", nil)
		return
	}
	obs.ObserveCartMutation("update_quantity", "ok")
	common.Data(w, http.StatusOK, h.view(c))
}

// RemoveItem drops a line from the cart.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	c, ok := h.cart(w, r)
	if !ok {
		return
	}
	itemID := chi.URLParam(r, "itemId")
	if !c.RemoveItem(r.Context(), itemID) {
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "cart item not found", nil)
		return
	}
	obs.ObserveCartMutation("remove_item", "ok")
	common.Data(w, http.StatusOK, h.view(c))
}

// Clear empties the cart.
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	c, ok := h.cart(w, r)
	if !ok {
		return
	}
	c.Clear(r.Context())
	obs.ObserveCartMutation("clear", "ok")
	common.Data(w, http.StatusOK, h.view(c))
}

type cartView struct {
	ID       string  `json:"id"`
	UserID   string  `json:"userId,omitempty"`
	Currency string  `json:"currency"`
	Items    []Item  `json:"items"`
	Summary  Summary `json:"summary"`
}

func (h *Handler) view(c *Cart) cartView {
	return cartView{
		ID:       c.ID(),
		UserID:   c.UserID(),
		Currency: c.Currency(),
		Items:    c.Items(),
		Summary:  c.Summary(),
	}
}

func (h *Handler) cart(w http.ResponseWriter, r *http.Request) (*Cart, bool) {
	id := chi.URLParam(r, "id")
	c, ok := h.Reg.Get(id)
	if !ok {
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "cart not found", nil)
		return nil, false
	}
	return c, true
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
	if errors.Is(err, ErrVariantNotFound) {
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
		return
	}
	common.JSONError(w, http.StatusInternalServerError, "INTERNAL", err.Error(), nil)
}
