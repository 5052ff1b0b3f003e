package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/chitranshagrawalstco-ops/streetbite/internal/session"
)

// NewRouter assembles the public storefront surface and the token-gated
// admin surface on a shared chi router.
func NewRouter(storefront *StorefrontHandler, adm *AdminHandler, sessions *session.Manager, adminToken string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(SessionMiddleware(sessions))

			r.Get("/menu", storefront.GetMenu)
			r.Get("/shop", storefront.GetShop)
			r.Get("/basket", storefront.GetBasket)
			r.Post("/basket/items", storefront.AddItem)
			r.Patch("/basket/items/{item_id}", storefront.ChangeQuantity)
			r.Post("/checkout", storefront.Checkout)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(AdminAuthMiddleware(adminToken))

			r.Get("/state", adm.GetState)
			r.Post("/categories", adm.CreateCategory)
			r.Delete("/categories/{category_id}", adm.DeleteCategory)
			r.Post("/items", adm.CreateItem)
			r.Put("/items/{item_id}", adm.UpdateItem)
			r.Delete("/items/{item_id}", adm.DeleteItem)
			r.Put("/settings", adm.SaveSettings)
		})
	})

	return r
}
