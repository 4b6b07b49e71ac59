package details

import (
	"github.com/gofiber/fiber/v2"

	resourceController "eduhub_backend/internals/features/resources/resource/controller"
	middlewares "eduhub_backend/internals/middlewares"
)

func ResourceRoutes(api fiber.Router, ctrl *resourceController.ResourceController) {
	resources := api.Group("/resources")

	// upload dibatasi lebih ketat: scan eksternal itu mahal
	resources.Post("/", middlewares.UploadRateLimiter(), ctrl.Create)
	resources.Get("/", ctrl.List)
	resources.Get("/:id", ctrl.GetByID)
	resources.Get("/:id/download", ctrl.Download)
	resources.Put("/:id", ctrl.Update)
	resources.Delete("/:id", ctrl.Delete)
}
