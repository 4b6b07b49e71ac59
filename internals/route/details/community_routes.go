package details

import (
	"github.com/gofiber/fiber/v2"

	communityController "eduhub_backend/internals/features/community/controller"
)

func CommunityRoutes(api fiber.Router, ctrl *communityController.CommunityController) {
	api.Post("/resources/:id/like", ctrl.ToggleLike)
	api.Get("/resources/:id/likes", ctrl.GetLikes)
	api.Post("/resources/:id/report", ctrl.ReportResource)

	api.Get("/community/trust/:user_id", ctrl.TrustScore)
}
