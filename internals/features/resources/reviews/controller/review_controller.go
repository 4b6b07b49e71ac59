package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	reviewDTO "eduhub_backend/internals/features/resources/reviews/dto"
	reviewService "eduhub_backend/internals/features/resources/reviews/service"
	helper "eduhub_backend/internals/helpers"
)

var validate = validator.New()

type ReviewController struct {
	Service *reviewService.ReviewService
}

func NewReviewController(db *gorm.DB) *ReviewController {
	return &ReviewController{Service: reviewService.NewReviewService(db)}
}

// ⭐ Submit: create atau update review milik requester + recompute agregat.
func (ctrl *ReviewController) Submit(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	resourceID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid resource ID")
	}

	var req reviewDTO.SubmitReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input")
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	result, err := ctrl.Service.Submit(resourceID, userID, helper.GetUserName(c), helper.GetUserCollege(c), &req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	msg := "Review added"
	if result.Updated {
		msg = "Review updated"
	}
	return helper.JsonOK(c, msg, result)
}

func (ctrl *ReviewController) ListByResource(c *fiber.Ctx) error {
	resourceID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid resource ID")
	}
	reviews, err := ctrl.Service.ListByResource(resourceID, helper.GetUserCollege(c))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Reviews fetched", reviews)
}
