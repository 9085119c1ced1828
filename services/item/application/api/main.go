package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/itemtracker/pkg/app"
	"github.com/ghuser/itemtracker/services/item/application/handlers"
	appsvcs "github.com/ghuser/itemtracker/services/item/application/services"
)

// ItemRoutes registers item endpoints on the provided chi router.
func ItemRoutes(r chi.Router, a *app.Application) {
	Routes(r, appsvcs.New(a))
}

// Routes registers item endpoints backed by svcs.
func Routes(r chi.Router, svcs *appsvcs.Services) {
	r.Group(func(r chi.Router) {
		r.Route("/items", func(r chi.Router) {
			r.Post("/", handlers.NewPostItemHandler(svcs).Execute)
			r.Get("/", handlers.NewGetItemsHandler(svcs).Execute)
			r.Post("/bulk-edit", handlers.NewPostBulkEditHandler(svcs).Execute)
			r.Post("/update-tracking", handlers.NewPostUpdateTrackingHandler(svcs).Execute)
			r.Post("/bulk-delete", handlers.NewPostBulkDeleteHandler(svcs).Execute)
			r.Get("/{id}", handlers.NewGetItemHandler(svcs).Execute)
			r.Patch("/{id}", handlers.NewPatchItemHandler(svcs).Execute)
			r.Delete("/{id}", handlers.NewDeleteItemHandler(svcs).Execute)
		})
	})
}
