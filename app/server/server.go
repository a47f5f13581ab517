// Package server assembles the storefront's HTTP routes and middleware.
package server

import (
	"net/http"
	"slices"

	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/peakhub/storefront/app/api"
	"github.com/peakhub/storefront/app/cart"
	"github.com/peakhub/storefront/app/catalog"
	"github.com/peakhub/storefront/app/categories"
	"github.com/peakhub/storefront/app/gym"
	"github.com/peakhub/storefront/app/navigation"
	"github.com/peakhub/storefront/app/session"
	"github.com/peakhub/storefront/metrics"
	"github.com/peakhub/storefront/state"
)

type Deps struct {
	Catalog     navigation.Catalog
	Sessions    *session.Registry
	Metrics     *metrics.Metrics
	Preloader   *state.Preloader
	CORSOrigins []string
}

// NewHandler returns the root handler. Shopper routes run inside the session
// middleware; health and metrics routes do not.
func NewHandler(d Deps) http.Handler {
	catalogHandler := catalog.NewCatalogHandler(d.Catalog)
	categoryHandler := categories.NewCategoryHandler(d.Catalog)
	cartHandler := cart.NewCartHandler(d.Catalog)
	navHandler := navigation.NewNavigationHandler(d.Catalog)

	mux := http.NewServeMux()
	route := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, d.Metrics.Instrument(pattern, h))
	}
	shopper := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, d.Metrics.Instrument(pattern, d.Sessions.Middleware(h)))
	}

	route("GET /catalog", catalogHandler.HandleGet)
	route("GET /catalog/{id}", catalogHandler.HandleGetProduct)
	route("GET /categories", categoryHandler.HandleGetAll)
	route("GET /gym/plans", gym.HandleGetPlans)

	shopper("GET /state", navHandler.HandleGetState)
	shopper("GET /view", navHandler.HandleGetView)
	shopper("PUT /view", navHandler.HandleSetView)
	shopper("POST /view/product/{id}", navHandler.HandleOpenProduct)

	shopper("GET /cart", cartHandler.HandleGet)
	shopper("POST /cart/items", cartHandler.HandleAdd)
	shopper("PATCH /cart/items/{position}", cartHandler.HandleUpdate)
	shopper("DELETE /cart/items/{position}", cartHandler.HandleRemove)
	shopper("POST /cart/quick-add/{id}", cartHandler.HandleQuickAdd)
	shopper("PUT /cart/drawer", cartHandler.HandleSetDrawer)
	shopper("POST /cart/drawer/pointer-down", cartHandler.HandlePointerDown)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		api.JSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if d.Preloader != nil && d.Preloader.Loading() {
			api.Error(w, r, http.StatusServiceUnavailable, "loading")
			return
		}
		api.JSON(w, r, http.StatusOK, map[string]string{"status": "ready"})
	})
	mux.Handle("GET /metrics", d.Metrics.Handler())

	c := cors.New(corsOptions(d.CORSOrigins))
	return otelhttp.NewHandler(c.Handler(mux), "storefront")
}

// corsOptions allows credentialed requests only from an explicit origin list.
// With "*" any site could ride the shopper's session cookie.
func corsOptions(origins []string) cors.Options {
	return cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: len(origins) > 0 && !slices.Contains(origins, "*"),
	}
}
