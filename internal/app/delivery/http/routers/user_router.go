package routers

import (
	"mrchemist-admin-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachUserRoutes(router chi.Router, userController *controllers.UserController) {
	router.Post("/users/{user_id}/drafts", userController.EditDraft)

	router.Route("/users/drafts", func(r chi.Router) {
		r.Post("/", userController.CreateDraft)
		r.Get("/{draft_id}", userController.FindDraft)
		r.Patch("/{draft_id}", userController.UpdateFields)
		r.Delete("/{draft_id}", userController.DiscardDraft)
		r.Post("/{draft_id}/submit", userController.Submit)
	})
}
