package details

import (
	"github.com/gofiber/fiber/v2"

	tokenController "eduhub_backend/internals/features/tokens/token/controller"
)

func TokenRoutes(api fiber.Router, ctrl *tokenController.TokenController) {
	tokens := api.Group("/tokens")
	tokens.Get("/me", ctrl.MyTokens)
	tokens.Get("/history", ctrl.History)

	api.Get("/leaderboard", ctrl.Leaderboard)
}
