package details

import (
	"github.com/gofiber/fiber/v2"

	reviewController "eduhub_backend/internals/features/resources/reviews/controller"
)

func ReviewRoutes(api fiber.Router, ctrl *reviewController.ReviewController) {
	api.Post("/resources/:id/reviews", ctrl.Submit)
	api.Get("/resources/:id/reviews", ctrl.ListByResource)
}
