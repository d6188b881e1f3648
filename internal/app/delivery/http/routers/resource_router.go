package routers

import (
	"mrchemist-admin-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

// attachResourceRoutes registers the generic list and delete routes. Static routes registered
// elsewhere win over the {resource} pattern.
func attachResourceRoutes(router chi.Router, resourceController *controllers.ResourceController) {
	router.Get("/treatments/options", resourceController.TreatmentOptions)
	router.Get("/notifications", resourceController.Notifications)

	router.Get("/{resource}", resourceController.List)
	router.Post("/{resource}/batch-delete", resourceController.BatchDelete)
	router.Delete("/{resource}/{entity_id}", resourceController.Delete)
}
