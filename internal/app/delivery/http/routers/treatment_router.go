package routers

import (
	"mrchemist-admin-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachTreatmentRoutes(router chi.Router, treatmentController *controllers.TreatmentController) {
	router.Post("/treatments", treatmentController.Create)
	router.Patch("/treatments/{treatment_id}", treatmentController.Update)
}
