package service

import (
	"errors"
	"math"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	reportService "eduhub_backend/internals/features/community/reports/service"
	resourceModel "eduhub_backend/internals/features/resources/resource/model"
	userModel "eduhub_backend/internals/features/users/user/model"
)

// TrustScore: nilai reputasi turunan — dihitung on demand, tidak pernah
// disimpan.
type TrustScore struct {
	UserID         uuid.UUID `json:"user_id"`
	Name           string    `json:"name"`
	TrustScore     float64   `json:"trust_score"`
	TotalUploads   int64     `json:"total_uploads"`
	AvgRating      float64   `json:"avg_rating"`
	ReportsAgainst int64     `json:"reports_against"`
}

type TrustService struct {
	DB      *gorm.DB
	Reports *reportService.ReportService
}

func NewTrustService(db *gorm.DB, reports *reportService.ReportService) *TrustService {
	return &TrustService{DB: db, Reports: reports}
}

// Score menghitung max(0, uploads*2 + meanRating*10 - reports*5), dibulatkan
// satu desimal. meanRating diambil dari resource user yang punya minimal satu
// review; user tanpa resource ter-review menyumbang meanRating = 0.
func (s *TrustService) Score(userID uuid.UUID) (*TrustScore, error) {
	var user userModel.UserModel
	if err := s.DB.Select("id, user_name").First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load user")
	}

	var totalUploads int64
	if err := s.DB.Model(&resourceModel.ResourceModel{}).
		Where("resource_owner_id = ?", userID).
		Count(&totalUploads).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to count uploads")
	}

	var agg struct{ Avg float64 }
	if err := s.DB.Model(&resourceModel.ResourceModel{}).
		Select("COALESCE(AVG(resource_avg_rating), 0) AS avg").
		Where("resource_owner_id = ? AND resource_total_reviews > 0", userID).
		Scan(&agg).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to aggregate ratings")
	}
	avgRating := math.Round(agg.Avg*10) / 10

	reportsAgainst, err := s.Reports.CountAgainstUploader(userID)
	if err != nil {
		return nil, err
	}

	score := float64(totalUploads)*2 + avgRating*10 - float64(reportsAgainst)*5
	if score < 0 {
		score = 0
	}

	return &TrustScore{
		UserID:         userID,
		Name:           user.UserName,
		TrustScore:     math.Round(score*10) / 10,
		TotalUploads:   totalUploads,
		AvgRating:      avgRating,
		ReportsAgainst: reportsAgainst,
	}, nil
}
