package routers

import (
	"mrchemist-admin-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachCustomerRoutes(router chi.Router, customerController *controllers.CustomerController) {
	router.Post("/customers/{customer_id}/drafts", customerController.EditDraft)

	router.Route("/customers/drafts", func(r chi.Router) {
		r.Post("/", customerController.CreateDraft)
		r.Get("/{draft_id}", customerController.FindDraft)
		r.Patch("/{draft_id}", customerController.UpdateFields)
		r.Delete("/{draft_id}", customerController.DiscardDraft)
		r.Post("/{draft_id}/submit", customerController.Submit)
	})
}
