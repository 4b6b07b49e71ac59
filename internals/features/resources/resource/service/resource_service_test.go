package service

import (
	"bytes"
	"context"
	"errors"
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
	reportModel "eduhub_backend/internals/features/community/reports/model"
	resourceDTO "eduhub_backend/internals/features/resources/resource/dto"
	resourceModel "eduhub_backend/internals/features/resources/resource/model"
	reviewModel "eduhub_backend/internals/features/resources/reviews/model"
	scanModel "eduhub_backend/internals/features/resources/scan/model"
	scanService "eduhub_backend/internals/features/resources/scan/service"
	tokenModel "eduhub_backend/internals/features/tokens/token/model"
	tokenService "eduhub_backend/internals/features/tokens/token/service"
	userModel "eduhub_backend/internals/features/users/user/model"
	"eduhub_backend/internals/helpers/storage"
)

// stubScanner: verdict / error yang bisa diskenariokan per test.
type stubScanner struct {
	clean   bool
	message string
	err     error
}

func (s stubScanner) Scan(_ context.Context, _ []byte, _ string) (bool, string, error) {
	return s.clean, s.message, s.err
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&userModel.UserModel{},
		&resourceModel.ResourceModel{},
		&reviewModel.ReviewModel{},
		&reportModel.ReportModel{},
		&likeModel.LikeModel{},
		&scanModel.ScanLog{},
		&tokenModel.TokenLog{},
	))
	return db
}

func newTestService(t *testing.T, db *gorm.DB, scanner scanService.Scanner) *ResourceService {
	t.Helper()
	blob, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	gate := scanService.NewScanGate(db, scanner)
	tokens := tokenService.NewTokenService(db)
	return NewResourceService(db, blob, gate, tokens)
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

func ownerOf(u *userModel.UserModel) Owner {
	return Owner{ID: u.ID, Name: u.UserName, College: u.College}
}

func draftReq(title string) *resourceDTO.CreateResourceRequest {
	req := &resourceDTO.CreateResourceRequest{
		Title:    title,
		Subject:  "Algorithms",
		Semester: 3,
		Type:     "pdf",
		Tags:     "sorting, graphs",
	}
	req.Normalize()
	return req
}

func balanceOf(t *testing.T, db *gorm.DB, u *userModel.UserModel) int {
	t.Helper()
	var got userModel.UserModel
	require.NoError(t, db.First(&got, "id = ?", u.ID).Error)
	return got.EduTokens
}

func fiberCode(t *testing.T, err error) int {
	t.Helper()
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	return fe.Code
}

/* =======================================================
   INGESTION PIPELINE
   ======================================================= */

func TestCreate_HappyPathAwardsSafeUpload(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db, stubScanner{clean: true, message: "File is clean (simulated scan)"})
	u1 := seedUser(t, db, "u1", "X")

	content := bytes.Repeat([]byte("a"), 2048)
	resource, err := svc.Create(context.Background(), draftReq("Sorting Notes"), content, "notes.pdf", ownerOf(u1))
	require.NoError(t, err)

	assert.Equal(t, Fingerprint(content), resource.ResourceFileHash)
	assert.Equal(t, int64(2048), resource.ResourceFileSize)
	assert.Zero(t, resource.ResourceAvgRating)
	assert.Zero(t, resource.ResourceTotalReviews)
	assert.Zero(t, resource.ResourceLikesCount)

	// blob tersimpan dan bisa dibaca lagi
	blob, err := svc.Storage.Get(resource.ResourceFilePath)
	require.NoError(t, err)
	assert.Equal(t, content, blob)

	// satu scan log verdict clean
	var logs []scanModel.ScanLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.True(t, logs[0].ScanLogIsClean)

	assert.Equal(t, 10, balanceOf(t, db, u1), "safe upload reward")
}

func TestCreate_FileTooLarge(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db, stubScanner{clean: true})
	u1 := seedUser(t, db, "u1", "X")

	content := make([]byte, 10*1024*1024+1)
	_, err := svc.Create(context.Background(), draftReq("Huge"), content, "big.pdf", ownerOf(u1))
	assert.Equal(t, fiber.StatusBadRequest, fiberCode(t, err))

	// tidak ada byte yang dipersist, tidak ada scan, tidak ada reward
	var count int64
	require.NoError(t, db.Model(&scanModel.ScanLog{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Zero(t, balanceOf(t, db, u1))
}

func TestCreate_UnsupportedExtension(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db, stubScanner{clean: true})
	u1 := seedUser(t, db, "u1", "X")

	_, err := svc.Create(context.Background(), draftReq("Binary"), []byte("MZ"), "tool.exe", ownerOf(u1))
	assert.Equal(t, fiber.StatusBadRequest, fiberCode(t, err))
}

func TestCreate_DuplicateContentRejected(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db, stubScanner{clean: true})
	u1 := seedUser(t, db, "u1", "X")
	u2 := seedUser(t, db, "u2", "Y")

	content := bytes.Repeat([]byte("b"), 2048)
	_, err := svc.Create(context.Background(), draftReq("First"), content, "first.pdf", ownerOf(u1))
	require.NoError(t, err)

	// byte sama, nama file beda, user beda → tetap duplikat
	_, err = svc.Create(context.Background(), draftReq("Second"), content, "other-name.pdf", ownerOf(u2))
	assert.Equal(t, fiber.StatusConflict, fiberCode(t, err))

	var count int64
	require.NoError(t, db.Model(&resourceModel.ResourceModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
	assert.Zero(t, balanceOf(t, db, u2), "duplicate upload earns nothing")
}

func TestCreate_UncleanScanRejectsButRewardsDetection(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db, stubScanner{clean: false, message: "Virus detected by 3 security engines"})
	u1 := seedUser(t, db, "u1", "X")

	_, err := svc.Create(context.Background(), draftReq("Nasty"), []byte("evil bytes"), "nasty.pdf", ownerOf(u1))
	assert.Equal(t, fiber.StatusUnprocessableEntity, fiberCode(t, err))

	// tidak ada resource, tapi ada satu scan log unclean
	var rcount int64
	require.NoError(t, db.Model(&resourceModel.ResourceModel{}).Count(&rcount).Error)
	assert.Zero(t, rcount)

	var logs []scanModel.ScanLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.False(t, logs[0].ScanLogIsClean)
	assert.Equal(t, "Virus detected by 3 security engines", logs[0].ScanLogMessage)

	// kebijakan: deteksi tetap dihargai
	assert.Equal(t, 15, balanceOf(t, db, u1))
}

func TestCreate_ScannerFailureIsNotTreatedAsClean(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db, stubScanner{err: errors.New("scan timed out after 12 polls")})
	u1 := seedUser(t, db, "u1", "X")

	_, err := svc.Create(context.Background(), draftReq("Unlucky"), []byte("payload"), "doc.pdf", ownerOf(u1))
	assert.Equal(t, fiber.StatusBadGateway, fiberCode(t, err))

	var rcount int64
	require.NoError(t, db.Model(&resourceModel.ResourceModel{}).Count(&rcount).Error)
	assert.Zero(t, rcount)
	assert.Zero(t, balanceOf(t, db, u1))
}

/* =======================================================
   PRIVACY-SCOPED READS
   ======================================================= */

func createResource(t *testing.T, svc *ResourceService, owner Owner, title, privacy string, content []byte) *resourceModel.ResourceModel {
	t.Helper()
	req := draftReq(title)
	req.Privacy = privacy
	resource, err := svc.Create(context.Background(), req, content, title+".pdf", owner)
	require.NoError(t, err)
	return resource
}

func TestGet_PrivateIsCollegeScoped(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db, stubScanner{clean: true})
	owner := seedUser(t, db, "owner", "X")

	private := createResource(t, svc, ownerOf(owner), "Private Notes", resourceModel.PrivacyPrivate, []byte("private content"))

	// college lain → 403
	_, err := svc.Get(private.ResourceID, "Y")
	assert.Equal(t, fiber.StatusForbidden, fiberCode(t, err))

	// college sama → ok
	got, err := svc.Get(private.ResourceID, "X")
	require.NoError(t, err)
	assert.Equal(t, private.ResourceID, got.ResourceID)

	// download mengikuti aturan yang sama
	_, _, err = svc.Download(private.ResourceID, "Y")
	assert.Equal(t, fiber.StatusForbidden, fiberCode(t, err))
	blob, filename, err := svc.Download(private.ResourceID, "X")
	require.NoError(t, err)
	assert.Equal(t, []byte("private content"), blob)
	assert.Equal(t, "Private Notes.pdf", filename)
}

func TestGet_NotFound(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db, stubScanner{clean: true})
	seedUser(t, db, "owner", "X")

	_, err := svc.Get(uuid.New(), "X")
	assert.Equal(t, fiber.StatusNotFound, fiberCode(t, err))
}

func TestList_ImplicitPrivacyScoping(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db, stubScanner{clean: true})
	ox := seedUser(t, db, "ox", "X")
	oy := seedUser(t, db, "oy", "Y")

	createResource(t, svc, ownerOf(ox), "Public X", resourceModel.PrivacyPublic, []byte("pub-x"))
	createResource(t, svc, ownerOf(ox), "Private X", resourceModel.PrivacyPrivate, []byte("priv-x"))
	createResource(t, svc, ownerOf(oy), "Private Y", resourceModel.PrivacyPrivate, []byte("priv-y"))

	q := resourceDTO.ListResourceQuery{Limit: 20}

	// requester dari X: public + private X, TIDAK pernah private Y
	results, total, err := svc.List(q, "X")
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	for _, r := range results {
		assert.NotEqual(t, "Private Y", r.ResourceTitle)
	}

	// filter privacy=private eksplisit: tetap hanya college sendiri
	q.Privacy = resourceModel.PrivacyPrivate
	results, total, err = svc.List(q, "X")
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Private X", results[0].ResourceTitle)

	// requester tanpa college yang cocok hanya lihat public
	q.Privacy = ""
	_, total, err = svc.List(q, "Z")
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestList_SearchAndFilters(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db, stubScanner{clean: true})
	owner := seedUser(t, db, "owner", "X")

	createResource(t, svc, ownerOf(owner), "Graph Theory", resourceModel.PrivacyPublic, []byte("graphs"))

	req := draftReq("Linear Algebra")
	req.Semester = 5
	req.Tags = "matrices"
	_, err := svc.Create(context.Background(), req, []byte("matrices"), "la.pdf", ownerOf(owner))
	require.NoError(t, err)

	// free-text atas title
	_, total, err := svc.List(resourceDTO.ListResourceQuery{Search: "graph", Limit: 20}, "X")
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	// free-text atas tags
	_, total, err = svc.List(resourceDTO.ListResourceQuery{Search: "matrices", Limit: 20}, "X")
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	// filter exact semester
	_, total, err = svc.List(resourceDTO.ListResourceQuery{Semester: 5, Limit: 20}, "X")
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	// paging
	results, total, err := svc.List(resourceDTO.ListResourceQuery{Limit: 1}, "X")
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, results, 1)
}

/* =======================================================
   OWNERSHIP-SCOPED WRITES
   ======================================================= */

func TestUpdate_OwnerOnlyAndRatingUntouchable(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db, stubScanner{clean: true})
	owner := seedUser(t, db, "owner", "X")
	other := seedUser(t, db, "other", "X")

	resource := createResource(t, svc, ownerOf(owner), "Editable", resourceModel.PrivacyPublic, []byte("v1"))

	// bukan owner → 403
	title := "Hijacked"
	_, err := svc.Update(resource.ResourceID, &resourceDTO.UpdateResourceRequest{Title: &title}, other.ID)
	assert.Equal(t, fiber.StatusForbidden, fiberCode(t, err))

	// owner: hanya field yang dikirim yang berubah
	newTitle := "Edited"
	updated, err := svc.Update(resource.ResourceID, &resourceDTO.UpdateResourceRequest{Title: &newTitle}, owner.ID)
	require.NoError(t, err)

	var got resourceModel.ResourceModel
	require.NoError(t, db.First(&got, "resource_id = ?", resource.ResourceID).Error)
	assert.Equal(t, "Edited", got.ResourceTitle)
	assert.Equal(t, resource.ResourceSubject, got.ResourceSubject)
	assert.Zero(t, updated.ResourceAvgRating, "rating fields are not settable through update")
}

func TestDelete_CascadesReviewsReportsAndBlob(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db, stubScanner{clean: true})
	owner := seedUser(t, db, "owner", "X")
	other := seedUser(t, db, "other", "X")

	resource := createResource(t, svc, ownerOf(owner), "Doomed", resourceModel.PrivacyPublic, []byte("to delete"))

	require.NoError(t, db.Create(&reviewModel.ReviewModel{
		ReviewResourceID: resource.ResourceID,
		ReviewUserID:     other.ID,
		ReviewUserName:   other.UserName,
		ReviewRating:     4,
	}).Error)
	require.NoError(t, db.Create(&reportModel.ReportModel{
		ReportResourceID:    resource.ResourceID,
		ReportResourceTitle: resource.ResourceTitle,
		ReportReporterID:    other.ID,
		ReportReporterName:  other.UserName,
		ReportReason:        "spam",
	}).Error)

	// bukan owner, bukan admin → 403
	err := svc.Delete(resource.ResourceID, other.ID, false)
	assert.Equal(t, fiber.StatusForbidden, fiberCode(t, err))

	require.NoError(t, svc.Delete(resource.ResourceID, owner.ID, false))

	var counts [3]int64
	require.NoError(t, db.Model(&resourceModel.ResourceModel{}).Count(&counts[0]).Error)
	require.NoError(t, db.Model(&reviewModel.ReviewModel{}).Count(&counts[1]).Error)
	require.NoError(t, db.Model(&reportModel.ReportModel{}).Count(&counts[2]).Error)
	assert.Zero(t, counts[0])
	assert.Zero(t, counts[1])
	assert.Zero(t, counts[2])

	_, err = svc.Storage.Get(resource.ResourceFilePath)
	assert.ErrorIs(t, err, storage.ErrBlobNotFound)
}

func TestDelete_AdminPathSkipsOwnershipCheck(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db, stubScanner{clean: true})
	owner := seedUser(t, db, "owner", "X")
	admin := seedUser(t, db, "admin", "HQ")

	resource := createResource(t, svc, ownerOf(owner), "Flagged", resourceModel.PrivacyPublic, []byte("bad"))

	require.NoError(t, svc.Delete(resource.ResourceID, admin.ID, true))

	var count int64
	require.NoError(t, db.Model(&resourceModel.ResourceModel{}).Count(&count).Error)
	assert.Zero(t, count)
}
