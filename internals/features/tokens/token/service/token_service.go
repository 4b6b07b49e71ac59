package service

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"eduhub_backend/internals/constants"
	tokenModel "eduhub_backend/internals/features/tokens/token/model"
	userModel "eduhub_backend/internals/features/users/user/model"
)

type TokenService struct {
	DB *gorm.DB
}

func NewTokenService(db *gorm.DB) *TokenService {
	return &TokenService{DB: db}
}

// Award menambahkan EduToken ke user dan mencatat satu entry ledger.
// Amount kosong → resolve dari tabel reward; hasil <= 0 → no-op total
// (tidak ada entry, balance tidak berubah). Increment balance dilakukan
// dengan UPDATE atomik (edutokens = edutokens + ?), BUKAN read-modify-write,
// supaya reward konkuren untuk user yang sama tidak saling menimpa.
func (s *TokenService) Award(userID uuid.UUID, reason string, amountOverride ...int) error {
	amount := constants.RewardAmounts[reason]
	if len(amountOverride) > 0 {
		amount = amountOverride[0]
	}
	if amount <= 0 {
		return nil
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"edutokens": gorm.Expr("edutokens + ?", amount),
		}
		if reason == constants.ReasonExploreView {
			updates["explore_score"] = gorm.Expr("explore_score + ?", 1)
		}

		res := tx.Model(&userModel.UserModel{}).Where("id = ?", userID).Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		entry := tokenModel.TokenLog{
			TokenLogUserID: userID,
			TokenLogReason: reason,
			TokenLogAmount: amount,
		}
		return tx.Create(&entry).Error
	})
}

// AwardQuiet: Award sebagai side effect best-effort. Kegagalan ledger
// dicatat lalu DITELAN — tidak boleh menggagalkan operasi pemicunya
// (upload, review, dsb).
func (s *TokenService) AwardQuiet(userID uuid.UUID, reason string, amountOverride ...int) {
	if err := s.Award(userID, reason, amountOverride...); err != nil {
		log.Printf("[WARNING] award token gagal (reason=%s user=%s): %v", reason, userID, err)
	}
}

// History mengembalikan entry ledger user, terbaru dulu.
func (s *TokenService) History(userID uuid.UUID, offset, limit int) ([]tokenModel.TokenLog, int64, error) {
	var total int64
	base := s.DB.Model(&tokenModel.TokenLog{}).Where("token_log_user_id = ?", userID)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fiber.NewError(fiber.StatusInternalServerError, "Failed to load token history")
	}

	var logs []tokenModel.TokenLog
	if err := base.Order("created_at DESC").Offset(offset).Limit(limit).Find(&logs).Error; err != nil {
		return nil, 0, fiber.NewError(fiber.StatusInternalServerError, "Failed to load token history")
	}
	return logs, total, nil
}

// Balance membaca saldo + explore score user.
func (s *TokenService) Balance(userID uuid.UUID) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := s.DB.First(&user, "id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load user")
	}
	return &user, nil
}

// Leaderboard: top user berdasarkan saldo, user banned dikecualikan.
func (s *TokenService) Leaderboard(limit int) ([]userModel.UserModel, error) {
	if limit <= 0 {
		limit = 20
	}
	var users []userModel.UserModel
	if err := s.DB.
		Where("is_banned = ?", false).
		Order("edutokens DESC").
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load leaderboard")
	}
	return users, nil
}
