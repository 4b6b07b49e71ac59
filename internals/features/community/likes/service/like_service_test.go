package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	likeModel "eduhub_backend/internals/features/community/likes/model"
	resourceModel "eduhub_backend/internals/features/resources/resource/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&resourceModel.ResourceModel{},
		&likeModel.LikeModel{},
	))
	return db
}

func seedResource(t *testing.T, db *gorm.DB) *resourceModel.ResourceModel {
	t.Helper()
	resource := resourceModel.ResourceModel{
		ResourceTitle:    "Likeable",
		ResourceSubject:  "Subject",
		ResourceSemester: 1,
		ResourceType:     "pdf",
		ResourcePrivacy:  resourceModel.PrivacyPublic,
		ResourceCollege:  "X",
		ResourceFileHash: uuid.NewString(),
		ResourceFileName: "f.pdf",
		ResourceFilePath: "f",
		ResourceFileSize: 1,
		ResourceOwnerID:  uuid.New(),
	}
	require.NoError(t, db.Create(&resource).Error)
	return &resource
}

func TestToggle_LikeThenUnlike(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewLikeService(db)
	resource := seedResource(t, db)
	user := uuid.New()

	liked, err := svc.Toggle(resource.ResourceID, user)
	require.NoError(t, err)
	assert.True(t, liked)

	count, userLiked, err := svc.Status(resource.ResourceID, user)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.True(t, userLiked)

	liked, err = svc.Toggle(resource.ResourceID, user)
	require.NoError(t, err)
	assert.False(t, liked)

	count, userLiked, err = svc.Status(resource.ResourceID, user)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.False(t, userLiked)
}

func TestToggle_CounterTracksDistinctUsers(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewLikeService(db)
	resource := seedResource(t, db)

	users := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	for _, u := range users {
		_, err := svc.Toggle(resource.ResourceID, u)
		require.NoError(t, err)
	}

	// user kedua menarik like-nya
	_, err := svc.Toggle(resource.ResourceID, users[1])
	require.NoError(t, err)

	count, _, err := svc.Status(resource.ResourceID, users[0])
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// counter di resource sama dengan jumlah baris like
	var rows int64
	require.NoError(t, db.Model(&likeModel.LikeModel{}).Count(&rows).Error)
	assert.Equal(t, int64(count), rows)
}

func TestToggle_ResourceNotFound(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewLikeService(db)

	_, err := svc.Toggle(uuid.New(), uuid.New())
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusNotFound, fe.Code)
}
