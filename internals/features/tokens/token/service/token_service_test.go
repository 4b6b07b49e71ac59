package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"eduhub_backend/internals/constants"
	tokenModel "eduhub_backend/internals/features/tokens/token/model"
	userModel "eduhub_backend/internals/features/users/user/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&userModel.UserModel{}, &tokenModel.TokenLog{}))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name, college string) *userModel.UserModel {
	t.Helper()
	user := userModel.UserModel{
		UserName: name,
		Email:    name + "@example.edu",
		College:  college,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func TestAward_DefaultAmountFromReasonTable(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewTokenService(db)
	user := seedUser(t, db, "budi", "X")

	require.NoError(t, svc.Award(user.ID, constants.ReasonSafeUpload))

	var got userModel.UserModel
	require.NoError(t, db.First(&got, "id = ?", user.ID).Error)
	assert.Equal(t, 10, got.EduTokens)

	var entries []tokenModel.TokenLog
	require.NoError(t, db.Find(&entries, "token_log_user_id = ?", user.ID).Error)
	require.Len(t, entries, 1)
	assert.Equal(t, constants.ReasonSafeUpload, entries[0].TokenLogReason)
	assert.Equal(t, 10, entries[0].TokenLogAmount)
}

func TestAward_OverrideAmount(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewTokenService(db)
	user := seedUser(t, db, "sari", "X")

	require.NoError(t, svc.Award(user.ID, constants.ReasonGroupCreate, 7))

	var got userModel.UserModel
	require.NoError(t, db.First(&got, "id = ?", user.ID).Error)
	assert.Equal(t, 7, got.EduTokens)
}

func TestAward_NonPositiveAmountIsNoOp(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewTokenService(db)
	user := seedUser(t, db, "adi", "X")

	// reason tidak dikenal → resolve 0 → no-op
	require.NoError(t, svc.Award(user.ID, "unknown_reason"))
	// override eksplisit 0 dan negatif → no-op
	require.NoError(t, svc.Award(user.ID, constants.ReasonSafeUpload, 0))
	require.NoError(t, svc.Award(user.ID, constants.ReasonSafeUpload, -5))

	var got userModel.UserModel
	require.NoError(t, db.First(&got, "id = ?", user.ID).Error)
	assert.Equal(t, 0, got.EduTokens)

	var count int64
	require.NoError(t, db.Model(&tokenModel.TokenLog{}).Count(&count).Error)
	assert.Zero(t, count, "no-op award must not create a ledger entry")
}

func TestAward_ExploreViewAlsoBumpsExploreScore(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewTokenService(db)
	user := seedUser(t, db, "nina", "X")

	require.NoError(t, svc.Award(user.ID, constants.ReasonExploreView))
	require.NoError(t, svc.Award(user.ID, constants.ReasonExploreView))
	require.NoError(t, svc.Award(user.ID, constants.ReasonSafeUpload))

	var got userModel.UserModel
	require.NoError(t, db.First(&got, "id = ?", user.ID).Error)
	assert.Equal(t, 12, got.EduTokens)
	assert.Equal(t, 2, got.ExploreScore, "explore_score only moves on explore_view")
}

func TestAward_BalanceReconcilesWithLedger(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewTokenService(db)
	user := seedUser(t, db, "dewi", "X")

	reasons := []string{
		constants.ReasonSafeUpload,
		constants.ReasonMalwareReport,
		constants.ReasonOCRUsage,
		constants.ReasonExploreView,
		constants.ReasonDailyLogin,
		"bogus_reason", // no-op, tidak boleh merusak rekonsiliasi
	}
	for _, r := range reasons {
		require.NoError(t, svc.Award(user.ID, r))
	}

	var got userModel.UserModel
	require.NoError(t, db.First(&got, "id = ?", user.ID).Error)

	var sum int64
	require.NoError(t, db.Model(&tokenModel.TokenLog{}).
		Where("token_log_user_id = ?", user.ID).
		Select("COALESCE(SUM(token_log_amount), 0)").
		Scan(&sum).Error)
	assert.Equal(t, int64(got.EduTokens), sum, "balance must equal sum of ledger amounts")
}

func TestAward_MissingUserFailsWithoutLedgerEntry(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewTokenService(db)

	err := svc.Award(uuid.New(), constants.ReasonSafeUpload)
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&tokenModel.TokenLog{}).Count(&count).Error)
	assert.Zero(t, count)

	// AwardQuiet menelan error yang sama
	svc.AwardQuiet(uuid.New(), constants.ReasonSafeUpload)
}

func TestHistory_ReverseChronological(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewTokenService(db)
	user := seedUser(t, db, "rudi", "X")

	require.NoError(t, svc.Award(user.ID, constants.ReasonSafeUpload))
	require.NoError(t, svc.Award(user.ID, constants.ReasonOCRUsage))
	require.NoError(t, svc.Award(user.ID, constants.ReasonExploreView))

	logs, total, err := svc.History(user.ID, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, logs, 3)
	for i := 1; i < len(logs); i++ {
		assert.False(t, logs[i].CreatedAt.After(logs[i-1].CreatedAt), "history must be newest first")
	}
}

func TestLeaderboard_ExcludesBannedAndOrdersByBalance(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewTokenService(db)

	poor := seedUser(t, db, "poor", "X")
	rich := seedUser(t, db, "rich", "Y")
	banned := seedUser(t, db, "banned", "Z")

	require.NoError(t, svc.Award(poor.ID, constants.ReasonExploreView))
	require.NoError(t, svc.Award(rich.ID, constants.ReasonSafeUpload, 100))
	require.NoError(t, svc.Award(banned.ID, constants.ReasonSafeUpload, 500))
	require.NoError(t, db.Model(&userModel.UserModel{}).Where("id = ?", banned.ID).Update("is_banned", true).Error)

	users, err := svc.Leaderboard(20)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "rich", users[0].UserName)
	assert.Equal(t, "poor", users[1].UserName)
}
