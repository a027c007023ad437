package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"cr-records/internal/logger"
)

// RouterDeps collects everything the HTTP surface needs.
type RouterDeps struct {
	Cart     *CartHandler
	Checkout *CheckoutHandler
	Admin    *AdminHandler
	Contact  *ContactHandler
	Static   *StaticHandler

	BasicAuthUser string
	BasicAuthPass string
	Logger        *logger.Logger
}

// NewRouter assembles the public storefront API, the admin API and the static
// site into one chi router.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(RequestLogger(deps.Logger))
	r.Use(SecurityHeaders)

	r.Post("/api/contact", deps.Contact.Submit)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", deps.Cart.GetCart)
			r.Post("/items", deps.Cart.AddItem)
			r.Patch("/items/{index}", deps.Cart.UpdateItem)
			r.Delete("/items/{index}", deps.Cart.RemoveItem)
		})
		deps.Logger.Info("ROUTER", "Cart routes registered under /api/v1/cart")

		r.Route("/checkout", func(r chi.Router) {
			r.Get("/summary", deps.Checkout.GetSummary)
			r.Post("/", deps.Checkout.PlaceOrder)
		})
		deps.Logger.Info("ROUTER", "Checkout routes registered under /api/v1/checkout")

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", deps.Admin.Login)

			r.Group(func(r chi.Router) {
				r.Use(deps.Admin.RequireSession)

				r.Post("/logout", deps.Admin.Logout)
				r.Get("/stats", deps.Admin.GetStats)
				r.Get("/orders", deps.Admin.ListOrders)
				r.Get("/orders/{id}", deps.Admin.GetOrder)
				r.Patch("/orders/{id}", deps.Admin.UpdateOrder)
				r.Get("/orders/{id}/invoice", deps.Admin.Invoice)
				r.Get("/export/csv", deps.Admin.ExportCSV)
				r.Get("/export/backup", deps.Admin.DownloadBackup)
				r.Post("/restore", deps.Admin.RestoreBackup)
				r.Get("/settings/tax", deps.Admin.GetTaxSettings)
				r.Put("/settings/tax", deps.Admin.SaveTaxSettings)
			})
		})
		deps.Logger.Info("ROUTER", "Admin routes registered under /api/v1/admin")
	})

	// The admin page and its script sit behind Basic Auth; everything else on
	// the static site is public.
	guard := BasicAuth(deps.BasicAuthUser, deps.BasicAuthPass, deps.Logger)
	r.Group(func(r chi.Router) {
		r.Use(guard)
		r.Get("/admin", deps.Static.ServeHTTP)
		r.Get("/admin.html", deps.Static.ServeHTTP)
		r.Get("/assets/js/admin.js", deps.Static.ServeHTTP)
	})

	r.NotFound(deps.Static.ServeHTTP)

	return r
}
