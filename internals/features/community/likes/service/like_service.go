package service

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	likeModel "eduhub_backend/internals/features/community/likes/model"
	resourceModel "eduhub_backend/internals/features/resources/resource/model"
)

type LikeService struct {
	DB *gorm.DB
}

func NewLikeService(db *gorm.DB) *LikeService {
	return &LikeService{DB: db}
}

// Toggle: like kalau belum, unlike kalau sudah. Counter di resource digeser
// dengan increment/decrement atomik dalam transaksi yang sama dengan baris
// like — tidak ada read-then-write di kode aplikasi.
func (s *LikeService) Toggle(resourceID uuid.UUID, userID uuid.UUID) (liked bool, err error) {
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var resource resourceModel.ResourceModel
		if err := tx.Select("resource_id").First(&resource, "resource_id = ?", resourceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Resource not found")
			}
			return err
		}

		var existing likeModel.LikeModel
		findErr := tx.Where("like_resource_id = ? AND like_user_id = ?", resourceID, userID).First(&existing).Error
		switch {
		case findErr == nil:
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			liked = false
			return tx.Model(&resourceModel.ResourceModel{}).
				Where("resource_id = ?", resourceID).
				UpdateColumn("resource_likes_count", gorm.Expr("resource_likes_count - ?", 1)).Error
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			like := likeModel.LikeModel{LikeResourceID: resourceID, LikeUserID: userID}
			if err := tx.Create(&like).Error; err != nil {
				return err
			}
			liked = true
			return tx.Model(&resourceModel.ResourceModel{}).
				Where("resource_id = ?", resourceID).
				UpdateColumn("resource_likes_count", gorm.Expr("resource_likes_count + ?", 1)).Error
		default:
			return findErr
		}
	})
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return false, fe
		}
		return false, fiber.NewError(fiber.StatusInternalServerError, "Failed to toggle like")
	}
	return liked, nil
}

// Status: jumlah like + apakah user ini sudah like.
func (s *LikeService) Status(resourceID uuid.UUID, userID uuid.UUID) (count int, userLiked bool, err error) {
	var resource resourceModel.ResourceModel
	if err := s.DB.Select("resource_id, resource_likes_count").First(&resource, "resource_id = ?", resourceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, fiber.NewError(fiber.StatusNotFound, "Resource not found")
		}
		return 0, false, fiber.NewError(fiber.StatusInternalServerError, "Failed to load resource")
	}

	var n int64
	if err := s.DB.Model(&likeModel.LikeModel{}).
		Where("like_resource_id = ? AND like_user_id = ?", resourceID, userID).
		Count(&n).Error; err != nil {
		return 0, false, fiber.NewError(fiber.StatusInternalServerError, "Failed to load like status")
	}
	return resource.ResourceLikesCount, n > 0, nil
}
