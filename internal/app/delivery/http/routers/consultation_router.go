package routers

import (
	"mrchemist-admin-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachConsultationRoutes(router chi.Router, consultationController *controllers.ConsultationController) {
	router.Post("/consultations/{consultation_id}/drafts", consultationController.EditDraft)

	router.Route("/consultations/drafts", func(r chi.Router) {
		r.Post("/", consultationController.CreateDraft)
		r.Get("/{draft_id}", consultationController.FindDraft)
		r.Patch("/{draft_id}", consultationController.UpdateHeader)
		r.Delete("/{draft_id}", consultationController.DiscardDraft)
		r.Post("/{draft_id}/submit", consultationController.Submit)

		r.Route("/{draft_id}/steps", func(r chi.Router) {
			r.Post("/", consultationController.AddStep)
			r.Patch("/{step_index}", consultationController.UpdateStep)
			r.Delete("/{step_index}", consultationController.RemoveStep)
			r.Post("/{step_index}/move", consultationController.MoveStep)

			r.Route("/{step_index}/questions", func(r chi.Router) {
				r.Post("/", consultationController.AddQuestion)
				r.Patch("/{question_index}", consultationController.UpdateQuestion)
				r.Delete("/{question_index}", consultationController.RemoveQuestion)
				r.Post("/{question_index}/move", consultationController.MoveQuestion)
				r.Put("/{question_index}/conditional/{branch}", consultationController.SetConditionalBranch)

				r.Route("/{question_index}/options", func(r chi.Router) {
					r.Post("/", consultationController.AddOption)
					r.Patch("/{option_index}", consultationController.UpdateOption)
					r.Delete("/{option_index}", consultationController.RemoveOption)
					r.Post("/{option_index}/move", consultationController.MoveOption)
				})
			})
		})
	})
}
