package cart

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/peakhub/storefront/app/api"
	"github.com/peakhub/storefront/app/catalog"
	"github.com/peakhub/storefront/app/session"
	"github.com/peakhub/storefront/logger"
	"github.com/peakhub/storefront/models"
	"github.com/peakhub/storefront/state"
)

type Line struct {
	Position int             `json:"position"`
	Product  catalog.Product `json:"product"`
	Variant  catalog.Variant `json:"selectedVariant"`
	Quantity int             `json:"quantity"`
	Subtotal float64         `json:"subtotal"`
}

type Shipping struct {
	Threshold float64 `json:"threshold"`
	Percent   float64 `json:"percent"`
	Remaining float64 `json:"remaining"`
	Unlocked  bool    `json:"unlocked"`
}

type Response struct {
	Lines     []Line   `json:"lines"`
	Total     float64  `json:"total"`
	ItemCount int      `json:"itemCount"`
	Shipping  Shipping `json:"shipping"`
	IsOpen    bool     `json:"isOpen"`
}

// NewResponse renders the cart part of a snapshot.
func NewResponse(s state.Snapshot) Response {
	lines := make([]Line, len(s.Cart))
	for i, l := range s.Cart {
		lines[i] = Line{
			Position: i,
			Product:  catalog.NewProduct(l.Product),
			Variant: catalog.Variant{
				Size:    l.SelectedVariant.Size,
				Flavor:  l.SelectedVariant.Flavor,
				Price:   l.SelectedVariant.EffectivePrice(l.Product).InexactFloat64(),
				InStock: l.SelectedVariant.InStock,
			},
			Quantity: l.Quantity,
			Subtotal: l.Subtotal().InexactFloat64(),
		}
	}
	return Response{
		Lines:     lines,
		Total:     s.CartTotal.InexactFloat64(),
		ItemCount: s.ItemCount,
		Shipping: Shipping{
			Threshold: state.FreeGiftThreshold.InexactFloat64(),
			Percent:   s.Shipping.Percent.InexactFloat64(),
			Remaining: s.Shipping.Remaining.InexactFloat64(),
			Unlocked:  s.Shipping.Unlocked,
		},
		IsOpen: s.IsCartOpen,
	}
}

type ProductLookup interface {
	GetByID(id string) (*models.Product, error)
}

type CartHandler struct {
	products ProductLookup
}

func NewCartHandler(products ProductLookup) *CartHandler {
	return &CartHandler{products: products}
}

func (h *CartHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	app, ok := session.Require(w, r)
	if !ok {
		return
	}
	api.JSON(w, r, http.StatusOK, NewResponse(app.Snapshot()))
}

// lookup answers 404 or 500 itself when the product cannot be resolved.
func (h *CartHandler) lookup(w http.ResponseWriter, r *http.Request, id string) (*models.Product, bool) {
	product, err := h.products.GetByID(id)
	if errors.Is(err, models.ErrProductNotFound) {
		api.Error(w, r, http.StatusNotFound, "Product not found")
		return nil, false
	}
	if err != nil {
		logger.WithContext(r.Context()).Error().Err(err).Str("product_id", id).Msg("Failed to retrieve product")
		api.Error(w, r, http.StatusInternalServerError, "Failed to retrieve product")
		return nil, false
	}
	return product, true
}

type addRequest struct {
	ProductID string `json:"productId"`
	Size      string `json:"size"`
	Flavor    string `json:"flavor"`
	Quantity  *int   `json:"quantity"`
}

func (h *CartHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	app, ok := session.Require(w, r)
	if !ok {
		return
	}

	var input addRequest
	if err := api.Decode(r, &input); err != nil {
		api.Error(w, r, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	qty := 1
	if input.Quantity != nil {
		qty = *input.Quantity
	}
	if qty < 1 {
		api.Error(w, r, http.StatusBadRequest, "Quantity must be at least 1")
		return
	}

	product, ok := h.lookup(w, r, input.ProductID)
	if !ok {
		return
	}
	variant, err := product.FindVariant(input.Size, input.Flavor)
	if err != nil {
		api.Error(w, r, http.StatusBadRequest, "Variant not found")
		return
	}

	app.AddToCart(r.Context(), *product, variant, qty)
	api.JSON(w, r, http.StatusCreated, NewResponse(app.Snapshot()))
}

func (h *CartHandler) HandleQuickAdd(w http.ResponseWriter, r *http.Request) {
	app, ok := session.Require(w, r)
	if !ok {
		return
	}

	product, ok := h.lookup(w, r, r.PathValue("id"))
	if !ok {
		return
	}
	if !app.QuickAdd(r.Context(), *product) {
		api.Error(w, r, http.StatusConflict, "Product has no variants")
		return
	}
	api.JSON(w, r, http.StatusCreated, NewResponse(app.Snapshot()))
}

func position(r *http.Request) (int, error) {
	return strconv.Atoi(r.PathValue("position"))
}

type updateRequest struct {
	Delta int `json:"delta"`
}

// HandleUpdate changes a line's quantity by delta. Positions past the end are
// ignored, like the in-process action.
func (h *CartHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	app, ok := session.Require(w, r)
	if !ok {
		return
	}

	pos, err := position(r)
	if err != nil {
		api.Error(w, r, http.StatusBadRequest, "Invalid position")
		return
	}
	var input updateRequest
	if err := api.Decode(r, &input); err != nil {
		api.Error(w, r, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	app.UpdateCartQty(r.Context(), pos, input.Delta)
	api.JSON(w, r, http.StatusOK, NewResponse(app.Snapshot()))
}

func (h *CartHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	app, ok := session.Require(w, r)
	if !ok {
		return
	}

	pos, err := position(r)
	if err != nil {
		api.Error(w, r, http.StatusBadRequest, "Invalid position")
		return
	}

	app.RemoveFromCart(r.Context(), pos)
	api.JSON(w, r, http.StatusOK, NewResponse(app.Snapshot()))
}

type drawerRequest struct {
	Open bool `json:"open"`
}

func (h *CartHandler) HandleSetDrawer(w http.ResponseWriter, r *http.Request) {
	app, ok := session.Require(w, r)
	if !ok {
		return
	}

	var input drawerRequest
	if err := api.Decode(r, &input); err != nil {
		api.Error(w, r, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	app.SetCartOpen(input.Open)
	api.JSON(w, r, http.StatusOK, NewResponse(app.Snapshot()))
}

type pointerDownRequest struct {
	Inside bool `json:"inside"`
}

type PointerDownResponse struct {
	Closed bool `json:"closed"`
	IsOpen bool `json:"isOpen"`
}

func (h *CartHandler) HandlePointerDown(w http.ResponseWriter, r *http.Request) {
	app, ok := session.Require(w, r)
	if !ok {
		return
	}

	var input pointerDownRequest
	if err := api.Decode(r, &input); err != nil {
		api.Error(w, r, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	closed := app.PointerDown(input.Inside)
	api.JSON(w, r, http.StatusOK, PointerDownResponse{
		Closed: closed,
		IsOpen: app.Snapshot().IsCartOpen,
	})
}
