package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	likeService "eduhub_backend/internals/features/community/likes/service"
	reportService "eduhub_backend/internals/features/community/reports/service"
	trustService "eduhub_backend/internals/features/community/trust/service"
	helper "eduhub_backend/internals/helpers"
)

type CommunityController struct {
	Likes   *likeService.LikeService
	Reports *reportService.ReportService
	Trust   *trustService.TrustService
}

func NewCommunityController(db *gorm.DB) *CommunityController {
	reports := reportService.NewReportService(db)
	return &CommunityController{
		Likes:   likeService.NewLikeService(db),
		Reports: reports,
		Trust:   trustService.NewTrustService(db, reports),
	}
}

// 👍 ToggleLike: like/unlike dengan counter atomik.
func (ctrl *CommunityController) ToggleLike(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	resourceID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid resource ID")
	}

	liked, err := ctrl.Likes.Toggle(resourceID, userID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	count, _, err := ctrl.Likes.Status(resourceID, userID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Like toggled", fiber.Map{
		"liked":       liked,
		"likes_count": count,
	})
}

func (ctrl *CommunityController) GetLikes(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	resourceID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid resource ID")
	}

	count, userLiked, err := ctrl.Likes.Status(resourceID, userID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Like status fetched", fiber.Map{
		"likes_count": count,
		"user_liked":  userLiked,
	})
}

// 🚩 ReportResource: laporkan resource, duplikat ditolak.
func (ctrl *CommunityController) ReportResource(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	resourceID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid resource ID")
	}

	var body struct {
		Reason string `json:"reason"`
	}
	_ = c.BodyParser(&body) // reason opsional, default di service

	if err := ctrl.Reports.Submit(resourceID, userID, helper.GetUserName(c), body.Reason); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Report submitted. Thank you for keeping the community safe.", nil)
}

// 🤝 TrustScore: skor reputasi turunan, dihitung saat diminta.
func (ctrl *CommunityController) TrustScore(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user ID")
	}
	score, err := ctrl.Trust.Score(userID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Trust score computed", score)
}
