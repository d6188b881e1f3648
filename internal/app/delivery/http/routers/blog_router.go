package routers

import (
	"mrchemist-admin-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachBlogRoutes(router chi.Router, blogController *controllers.BlogController) {
	router.Post("/blogs/{blog_id}/drafts", blogController.EditDraft)

	router.Route("/blogs/drafts", func(r chi.Router) {
		r.Post("/", blogController.CreateDraft)
		r.Get("/{draft_id}", blogController.FindDraft)
		r.Patch("/{draft_id}", blogController.UpdateFields)
		r.Delete("/{draft_id}", blogController.DiscardDraft)
		r.Post("/{draft_id}/submit", blogController.Submit)

		r.Post("/{draft_id}/arrays/{field}", blogController.AppendElement)
		r.Put("/{draft_id}/arrays/{field}/{index}", blogController.ReplaceElement)
		r.Delete("/{draft_id}/arrays/{field}/{index}", blogController.RemoveElement)
		r.Post("/{draft_id}/arrays/{field}/{index}/move", blogController.MoveElement)
	})
}
