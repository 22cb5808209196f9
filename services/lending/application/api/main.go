package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/libitemsflow/pkg/app"
	"github.com/ghuser/libitemsflow/services/lending/application/handlers"
	appsvcs "github.com/ghuser/libitemsflow/services/lending/application/services"
)

// LendingRoutes registers the lending endpoints on the provided chi router:
// the REST surface under /api and the action-dispatch surface under /exec.
// health is served at /exec/health and for ?action=health.
func LendingRoutes(r chi.Router, a *app.Application, svcs *appsvcs.Services, health http.HandlerFunc) {
	prod := a.IsProduction
	exec := handlers.NewExecHandler(svcs, health, prod)

	r.Group(func(r chi.Router) {
		r.Route("/api", func(r chi.Router) {
			r.Route("/items", func(r chi.Router) {
				r.Get("/", handlers.NewListItemsHandler(svcs, prod).Execute)
				r.Post("/", handlers.NewCreateItemHandler(svcs, prod).Execute)
				r.Get("/{itemID}", handlers.NewGetItemHandler(svcs, prod).Execute)
			})
			r.Route("/loans", func(r chi.Router) {
				r.Get("/", handlers.NewListLoansHandler(svcs, prod).Execute)
				r.Post("/", handlers.NewCreateLoanHandler(svcs, prod).Execute)
				r.Get("/{loanID}", handlers.NewGetLoanHandler(svcs, prod).Execute)
			})
			r.Post("/returns", handlers.NewReturnLoanHandler(svcs, prod).Execute)
		})

		r.Get("/exec", exec.Execute)
		r.Post("/exec", exec.Execute)
		r.Get("/exec/health", health)
	})
}
