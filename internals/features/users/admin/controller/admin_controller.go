package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	reportService "eduhub_backend/internals/features/community/reports/service"
	resourceService "eduhub_backend/internals/features/resources/resource/service"
	scanService "eduhub_backend/internals/features/resources/scan/service"
	userModel "eduhub_backend/internals/features/users/user/model"
	helper "eduhub_backend/internals/helpers"
)

type AdminController struct {
	DB        *gorm.DB
	Resources *resourceService.ResourceService
	Reports   *reportService.ReportService
	Gate      *scanService.ScanGate
}

func NewAdminController(db *gorm.DB, resources *resourceService.ResourceService, gate *scanService.ScanGate) *AdminController {
	return &AdminController{
		DB:        db,
		Resources: resources,
		Reports:   reportService.NewReportService(db),
		Gate:      gate,
	}
}

// 🚩 Flagged: semua laporan komunitas, terbaru dulu.
func (ctrl *AdminController) Flagged(c *fiber.Ctx) error {
	reports, err := ctrl.Reports.Flagged(50)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Flagged resources fetched", reports)
}

// ☣️ Malicious: scan log dengan verdict tidak clean.
func (ctrl *AdminController) Malicious(c *fiber.Ctx) error {
	logs, err := ctrl.Gate.MaliciousLogs(50)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Malicious scan logs fetched", logs)
}

// 🔨 BanUser: blokir user; admin tidak bisa diblokir.
func (ctrl *AdminController) BanUser(c *fiber.Ctx) error {
	return ctrl.setBanned(c, true)
}

func (ctrl *AdminController) UnbanUser(c *fiber.Ctx) error {
	return ctrl.setBanned(c, false)
}

func (ctrl *AdminController) setBanned(c *fiber.Ctx, banned bool) error {
	userID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	var user userModel.UserModel
	if err := ctrl.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load user")
	}
	if banned && user.Role == "admin" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Cannot ban an admin")
	}

	if err := ctrl.DB.Model(&user).Update("is_banned", banned).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update user")
	}

	msg := "User " + user.UserName + " has been banned"
	if !banned {
		msg = "User " + user.UserName + " has been unbanned"
	}
	return helper.JsonOK(c, msg, fiber.Map{"user_id": userID, "is_banned": banned})
}

// 🗑 ForceDeleteResource: hapus resource siapa pun (path administratif),
// cascade review + report + blob.
func (ctrl *AdminController) ForceDeleteResource(c *fiber.Ctx) error {
	adminID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	resourceID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid resource ID")
	}
	if err := ctrl.Resources.Delete(resourceID, adminID, true); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Resource deleted by admin", fiber.Map{"resource_id": resourceID})
}

// 👥 ListUsers: untuk panel admin.
func (ctrl *AdminController) ListUsers(c *fiber.Ctx) error {
	var users []userModel.UserModel
	if err := ctrl.DB.Order("created_at DESC").Limit(100).Find(&users).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load users")
	}
	return helper.JsonOK(c, "Users fetched", users)
}
