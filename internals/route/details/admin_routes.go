package details

import (
	"github.com/gofiber/fiber/v2"

	adminController "eduhub_backend/internals/features/users/admin/controller"
)

func AdminRoutes(admin fiber.Router, ctrl *adminController.AdminController) {
	admin.Get("/flagged", ctrl.Flagged)
	admin.Get("/malicious", ctrl.Malicious)
	admin.Get("/users", ctrl.ListUsers)
	admin.Post("/ban/:user_id", ctrl.BanUser)
	admin.Post("/unban/:user_id", ctrl.UnbanUser)
	admin.Delete("/resources/:id", ctrl.ForceDeleteResource)
}
