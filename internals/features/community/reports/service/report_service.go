package service

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	reportModel "eduhub_backend/internals/features/community/reports/model"
	resourceModel "eduhub_backend/internals/features/resources/resource/model"
)

type ReportService struct {
	DB *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{DB: db}
}

// Submit mencatat laporan atas resource. Duplikat (reporter sama, resource
// sama) ditolak; unique index jadi backstop kalau dua request berpacu.
func (s *ReportService) Submit(resourceID uuid.UUID, reporterID uuid.UUID, reporterName, reason string) error {
	var resource resourceModel.ResourceModel
	if err := s.DB.First(&resource, "resource_id = ?", resourceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Resource not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load resource")
	}

	if reason == "" {
		reason = "Inappropriate content"
	}
	report := reportModel.ReportModel{
		ReportResourceID:    resourceID,
		ReportResourceTitle: resource.ResourceTitle,
		ReportReporterID:    reporterID,
		ReportReporterName:  reporterName,
		ReportReason:        reason,
	}
	if err := s.DB.Create(&report).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fiber.NewError(fiber.StatusConflict, "You already reported this resource")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to save report")
	}
	return nil
}

// Flagged: laporan terbaru untuk panel admin.
func (s *ReportService) Flagged(limit int) ([]reportModel.ReportModel, error) {
	if limit <= 0 {
		limit = 50
	}
	var reports []reportModel.ReportModel
	if err := s.DB.Order("created_at DESC").Limit(limit).Find(&reports).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load reports")
	}
	return reports, nil
}

// CountAgainstUploader menghitung laporan atas SEMUA resource milik satu
// uploader — query read-only yang dikonsumsi trust scorer.
func (s *ReportService) CountAgainstUploader(uploaderID uuid.UUID) (int64, error) {
	var count int64
	err := s.DB.Model(&reportModel.ReportModel{}).
		Joins("JOIN resources ON resources.resource_id = reports.report_resource_id").
		Where("resources.resource_owner_id = ?", uploaderID).
		Count(&count).Error
	if err != nil {
		return 0, fiber.NewError(fiber.StatusInternalServerError, "Failed to count reports")
	}
	return count, nil
}
