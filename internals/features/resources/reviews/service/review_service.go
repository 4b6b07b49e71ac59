package service

import (
	"errors"
	"math"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	resourceModel "eduhub_backend/internals/features/resources/resource/model"
	reviewDTO "eduhub_backend/internals/features/resources/reviews/dto"
	reviewModel "eduhub_backend/internals/features/resources/reviews/model"
)

type ReviewService struct {
	DB *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{DB: db}
}

// Submit meng-upsert review (resource, reviewer) lalu menghitung ulang
// avg_rating & total_reviews resource. Upsert dan recompute berjalan dalam
// SATU transaksi — pembaca tidak pernah melihat count yang tidak cocok
// dengan isi tabel review lebih lama dari satu recompute.
func (s *ReviewService) Submit(resourceID uuid.UUID, reviewerID uuid.UUID, reviewerName, reviewerCollege string, req *reviewDTO.SubmitReviewRequest) (*reviewDTO.SubmitReviewResult, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Rating must be 1-5")
	}

	result := reviewDTO.SubmitReviewResult{}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var resource resourceModel.ResourceModel
		if err := tx.First(&resource, "resource_id = ?", resourceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Resource not found")
			}
			return err
		}
		if resource.ResourcePrivacy == resourceModel.PrivacyPrivate && resource.ResourceCollege != reviewerCollege {
			return fiber.NewError(fiber.StatusForbidden, "Access denied. This resource is private to another college.")
		}

		// upsert by (resource, reviewer): submit kedua mengganti rating lama
		var existing reviewModel.ReviewModel
		err := tx.Where("review_resource_id = ? AND review_user_id = ?", resourceID, reviewerID).First(&existing).Error
		switch {
		case err == nil:
			if err := tx.Model(&existing).Updates(map[string]interface{}{
				"review_rating":  req.Rating,
				"review_comment": req.Comment,
			}).Error; err != nil {
				return err
			}
			result.Updated = true
		case errors.Is(err, gorm.ErrRecordNotFound):
			review := reviewModel.ReviewModel{
				ReviewResourceID: resourceID,
				ReviewUserID:     reviewerID,
				ReviewUserName:   reviewerName,
				ReviewRating:     req.Rating,
				ReviewComment:    req.Comment,
			}
			if err := tx.Create(&review).Error; err != nil {
				// unique index menutup race dua submit pertama dari user sama
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return fiber.NewError(fiber.StatusConflict, "Review already submitted, retry to update it")
				}
				return err
			}
		default:
			return err
		}

		avg, count, err := recomputeAggregate(tx, resourceID)
		if err != nil {
			return err
		}
		if err := tx.Model(&resourceModel.ResourceModel{}).
			Where("resource_id = ?", resourceID).
			Updates(map[string]interface{}{
				"resource_avg_rating":    avg,
				"resource_total_reviews": count,
			}).Error; err != nil {
			return err
		}

		result.AvgRating = avg
		result.TotalReviews = count
		return nil
	})
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return nil, fe
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to save review")
	}
	return &result, nil
}

// ListByResource: review untuk satu resource, terbaru dulu.
func (s *ReviewService) ListByResource(resourceID uuid.UUID, requesterCollege string) ([]reviewModel.ReviewModel, error) {
	var resource resourceModel.ResourceModel
	if err := s.DB.First(&resource, "resource_id = ?", resourceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Resource not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load resource")
	}
	if resource.ResourcePrivacy == resourceModel.PrivacyPrivate && resource.ResourceCollege != requesterCollege {
		return nil, fiber.NewError(fiber.StatusForbidden, "Access denied. This resource is private to another college.")
	}

	var reviews []reviewModel.ReviewModel
	if err := s.DB.
		Where("review_resource_id = ?", resourceID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load reviews")
	}
	return reviews, nil
}

// recomputeAggregate menghitung mean (1 desimal) + count atas SEMUA review
// yang sedang menempel di resource.
func recomputeAggregate(tx *gorm.DB, resourceID uuid.UUID) (float64, int, error) {
	var agg struct {
		Avg   float64
		Count int
	}
	if err := tx.Model(&reviewModel.ReviewModel{}).
		Select("COALESCE(AVG(review_rating), 0) AS avg, COUNT(*) AS count").
		Where("review_resource_id = ?", resourceID).
		Scan(&agg).Error; err != nil {
		return 0, 0, err
	}
	return math.Round(agg.Avg*10) / 10, agg.Count, nil
}
