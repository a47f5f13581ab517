// Package navigation exposes the view navigator and renders the payload of
// whichever screen is current.
package navigation

import (
	"errors"
	"net/http"

	"github.com/peakhub/storefront/app/api"
	"github.com/peakhub/storefront/app/cart"
	"github.com/peakhub/storefront/app/catalog"
	"github.com/peakhub/storefront/app/categories"
	"github.com/peakhub/storefront/app/gym"
	"github.com/peakhub/storefront/app/session"
	"github.com/peakhub/storefront/logger"
	"github.com/peakhub/storefront/models"
	"github.com/peakhub/storefront/state"
)

type StateResponse struct {
	CurrentView       string        `json:"currentView"`
	SelectedProductID *string       `json:"selectedProductId"`
	IsCartOpen        bool          `json:"isCartOpen"`
	Cart              cart.Response `json:"cart"`
	Loading           bool          `json:"loading"`
	ScrollEpoch       int           `json:"scrollEpoch"`
}

func NewStateResponse(s state.Snapshot) StateResponse {
	resp := StateResponse{
		CurrentView: string(s.CurrentView),
		IsCartOpen:  s.IsCartOpen,
		Cart:        cart.NewResponse(s),
		Loading:     s.Loading,
		ScrollEpoch: s.ScrollEpoch,
	}
	if s.HasSelection {
		id := s.SelectedProductID
		resp.SelectedProductID = &id
	}
	return resp
}

// ScreenResponse carries the data of the current screen. Only the fields of
// that screen are set.
type ScreenResponse struct {
	View       string                        `json:"view"`
	Categories []categories.CategoryResponse `json:"categories,omitempty"`
	Trending   []catalog.Product             `json:"trending,omitempty"`
	Products   *catalog.Response             `json:"products,omitempty"`
	Product    *catalog.ProductDetail        `json:"product,omitempty"`
	NotFound   bool                          `json:"notFound,omitempty"`
	Message    string                        `json:"message,omitempty"`
	Plans      []gym.Plan                    `json:"plans,omitempty"`
	Cart       *cart.Response                `json:"cart,omitempty"`
}

type Catalog interface {
	catalog.ProductProvider
	categories.CategoryProvider
}

type NavigationHandler struct {
	catalog Catalog
}

func NewNavigationHandler(c Catalog) *NavigationHandler {
	return &NavigationHandler{catalog: c}
}

func (h *NavigationHandler) HandleGetState(w http.ResponseWriter, r *http.Request) {
	app, ok := session.Require(w, r)
	if !ok {
		return
	}
	api.JSON(w, r, http.StatusOK, NewStateResponse(app.Snapshot()))
}

type viewRequest struct {
	View string `json:"view"`
}

func (h *NavigationHandler) HandleSetView(w http.ResponseWriter, r *http.Request) {
	app, ok := session.Require(w, r)
	if !ok {
		return
	}

	var input viewRequest
	if err := api.Decode(r, &input); err != nil {
		api.Error(w, r, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	view, err := state.ParseView(input.View)
	if err != nil {
		api.Error(w, r, http.StatusBadRequest, "Unknown view")
		return
	}

	app.SetCurrentView(view)
	api.JSON(w, r, http.StatusOK, NewStateResponse(app.Snapshot()))
}

// HandleOpenProduct selects a product and shows its detail screen. The id is
// not checked here; the product screen reports unknown ids.
func (h *NavigationHandler) HandleOpenProduct(w http.ResponseWriter, r *http.Request) {
	app, ok := session.Require(w, r)
	if !ok {
		return
	}

	app.OpenProduct(r.PathValue("id"))
	api.JSON(w, r, http.StatusOK, NewStateResponse(app.Snapshot()))
}

func (h *NavigationHandler) HandleGetView(w http.ResponseWriter, r *http.Request) {
	app, ok := session.Require(w, r)
	if !ok {
		return
	}

	snap := app.Snapshot()
	resp := ScreenResponse{View: string(snap.CurrentView)}
	var err error
	switch snap.CurrentView {
	case state.ViewHome:
		err = h.home(&resp)
	case state.ViewShop:
		err = h.shop(r, &resp)
	case state.ViewProduct:
		err = h.product(snap, &resp)
	case state.ViewGym:
		resp.Plans = gym.NewPlans(models.MembershipPlans())
	case state.ViewCart:
		c := cart.NewResponse(snap)
		resp.Cart = &c
	}
	if err != nil {
		logger.WithContext(r.Context()).Error().Err(err).Str("view", resp.View).Msg("Failed to render view")
		api.Error(w, r, http.StatusInternalServerError, "failed to render view")
		return
	}

	api.JSON(w, r, http.StatusOK, resp)
}

// home shows the category tiles above the whole product list.
func (h *NavigationHandler) home(resp *ScreenResponse) error {
	cats, err := h.catalog.GetAllCategories()
	if err != nil {
		return err
	}
	products, _, err := h.catalog.GetFilteredProducts(0, 100, models.ProductFilters{})
	if err != nil {
		return err
	}
	resp.Categories = categories.NewCategoryResponses(cats)
	resp.Trending = make([]catalog.Product, len(products))
	for i, p := range products {
		resp.Trending[i] = catalog.NewProduct(p)
	}
	return nil
}

func (h *NavigationHandler) shop(r *http.Request, resp *ScreenResponse) error {
	offset, limit, filters := catalog.ParseListQuery(r)
	products, total, err := h.catalog.GetFilteredProducts(offset, limit, filters)
	if err != nil {
		return err
	}
	list := catalog.Response{Total: int(total), Products: make([]catalog.Product, len(products))}
	for i, p := range products {
		list.Products[i] = catalog.NewProduct(p)
	}
	resp.Products = &list
	return nil
}

func (h *NavigationHandler) product(snap state.Snapshot, resp *ScreenResponse) error {
	if !snap.HasSelection {
		resp.NotFound = true
		resp.Message = "Product not found"
		return nil
	}
	p, err := h.catalog.GetByID(snap.SelectedProductID)
	if errors.Is(err, models.ErrProductNotFound) {
		resp.NotFound = true
		resp.Message = "Product not found"
		return nil
	}
	if err != nil {
		return err
	}
	detail := catalog.NewProductDetail(*p)
	resp.Product = &detail
	return nil
}
