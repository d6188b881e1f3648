package routers

import (
	"mrchemist-admin-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachProductRoutes(router chi.Router, productController *controllers.ProductController) {
	router.Post("/products/{product_id}/drafts", productController.EditDraft)

	router.Route("/products/drafts", func(r chi.Router) {
		r.Post("/", productController.CreateDraft)
		r.Get("/{draft_id}", productController.FindDraft)
		r.Patch("/{draft_id}", productController.UpdateFields)
		r.Delete("/{draft_id}", productController.DiscardDraft)
		r.Post("/{draft_id}/submit", productController.Submit)

		r.Post("/{draft_id}/arrays/{field}", productController.AppendElement)
		r.Put("/{draft_id}/arrays/{field}/{index}", productController.ReplaceElement)
		r.Delete("/{draft_id}/arrays/{field}/{index}", productController.RemoveElement)
		r.Post("/{draft_id}/arrays/{field}/{index}/move", productController.MoveElement)
	})
}
