package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"eduhub_backend/internals/constants"
	reportModel "eduhub_backend/internals/features/community/reports/model"
	resourceDTO "eduhub_backend/internals/features/resources/resource/dto"
	resourceModel "eduhub_backend/internals/features/resources/resource/model"
	reviewModel "eduhub_backend/internals/features/resources/reviews/model"
	scanService "eduhub_backend/internals/features/resources/scan/service"
	tokenService "eduhub_backend/internals/features/tokens/token/service"
	"eduhub_backend/internals/helpers/storage"
)

// Owner: identitas uploader hasil verifikasi identity provider.
type Owner struct {
	ID      uuid.UUID
	Name    string
	College string
}

type ResourceService struct {
	DB      *gorm.DB
	Storage storage.BlobStorage
	Gate    *scanService.ScanGate
	Tokens  *tokenService.TokenService
}

func NewResourceService(db *gorm.DB, blob storage.BlobStorage, gate *scanService.ScanGate, tokens *tokenService.TokenService) *ResourceService {
	return &ResourceService{DB: db, Storage: blob, Gate: gate, Tokens: tokens}
}

/* =======================================================
   INGESTION PIPELINE
   validator → dedup → scan gate → blob → record → reward
   ======================================================= */

// Create menjalankan pipeline ingestion lengkap. Urutan penting:
// validasi dulu (murah), lalu dedup, lalu scan (mahal), baru persist.
// Blob ditulis sebelum record; kalau insert record gagal, blob dihapus
// lagi supaya tidak ada artefak yatim.
func (s *ResourceService) Create(ctx context.Context, req *resourceDTO.CreateResourceRequest, content []byte, filename string, owner Owner) (*resourceModel.ResourceModel, error) {
	// 1) validasi size & ekstensi — sebelum byte manapun dipersist
	if int64(len(content)) > constants.MaxUploadSize {
		return nil, fiber.NewError(fiber.StatusBadRequest, "File too large (max 10 MB)")
	}
	if !constants.IsAllowedExtension(filename) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "File type not allowed")
	}

	// 2) fingerprint + dedup lookup
	fileHash := Fingerprint(content)
	var existing resourceModel.ResourceModel
	err := s.DB.Select("resource_id").Where("resource_file_hash = ?", fileHash).First(&existing).Error
	if err == nil {
		return nil, fiber.NewError(fiber.StatusConflict, "Duplicate content: this file has already been uploaded")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to check for duplicates")
	}

	// 3) safety gate — setiap evaluasi tercatat di scan log
	clean, scanMessage, err := s.Gate.Evaluate(ctx, content, filename, fileHash, owner.ID, owner.Name)
	if err != nil {
		return nil, err
	}
	if !clean {
		// kebijakan yang dipertahankan dari desain awal: scan yang menangkap
		// sesuatu tetap memberi reward ke pengirim (sinyal deteksi, bukan penalti)
		s.Tokens.AwardQuiet(owner.ID, constants.ReasonMalwareReport)
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity, "File rejected by safety scan: "+scanMessage)
	}

	// 4) blob dulu, baru record
	handle, err := s.Storage.Put(content, constants.FileExt(filename))
	if err != nil {
		log.Printf("[ERROR] gagal simpan blob: %v", err)
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to store file")
	}

	resource := resourceModel.ResourceModel{
		ResourceTitle:       req.Title,
		ResourceSubject:     req.Subject,
		ResourceSemester:    req.Semester,
		ResourceType:        req.Type,
		ResourceYear:        req.Year,
		ResourceDescription: req.Description,
		ResourceTags:        req.TagList(),
		ResourcePrivacy:     req.Privacy,
		ResourceCollege:     owner.College,
		ResourceFileHash:    fileHash,
		ResourceFileName:    filename,
		ResourceFilePath:    handle,
		ResourceFileSize:    int64(len(content)),
		ResourceScanMessage: scanMessage,
		ResourceOwnerID:     owner.ID,
		ResourceOwnerName:   owner.Name,
	}
	if err := s.DB.Create(&resource).Error; err != nil {
		// record gagal → blob ikut dibatalkan
		if delErr := s.Storage.Delete(handle); delErr != nil {
			log.Printf("[WARNING] gagal rollback blob %s: %v", handle, delErr)
		}
		// constraint unik menutup race dua upload identik yang lolos pre-check
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fiber.NewError(fiber.StatusConflict, "Duplicate content: this file has already been uploaded")
		}
		log.Printf("[ERROR] gagal simpan resource: %v", err)
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to save resource")
	}

	// 5) reward upload aman — best effort, tidak menggagalkan upload
	s.Tokens.AwardQuiet(owner.ID, constants.ReasonSafeUpload)

	return &resource, nil
}

// Fingerprint: sha256 hex atas byte upload apa adanya.
func Fingerprint(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

/* =======================================================
   READS (privacy-scoped)
   ======================================================= */

// Get memuat satu resource dengan aturan privacy:
// private hanya terlihat oleh requester dari college yang sama.
func (s *ResourceService) Get(id uuid.UUID, requesterCollege string) (*resourceModel.ResourceModel, error) {
	var resource resourceModel.ResourceModel
	if err := s.DB.First(&resource, "resource_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Resource not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load resource")
	}
	if resource.ResourcePrivacy == resourceModel.PrivacyPrivate && resource.ResourceCollege != requesterCollege {
		return nil, fiber.NewError(fiber.StatusForbidden, "Access denied. This resource is private to another college.")
	}
	return &resource, nil
}

// List mencari resource dengan free-text search + filter exact + paging.
// Tanpa filter privacy eksplisit, hasil otomatis dibatasi ke
// public ∪ private milik college requester — private college lain tidak
// pernah bocor lewat kombinasi filter manapun.
func (s *ResourceService) List(q resourceDTO.ListResourceQuery, requesterCollege string) ([]resourceModel.ResourceModel, int64, error) {
	tx := s.DB.Model(&resourceModel.ResourceModel{})

	if q.Search != "" {
		needle := "%" + q.Search + "%"
		like := s.likeOperator()
		tx = tx.Where(s.DB.
			Where(fmt.Sprintf("resource_title %s ?", like), needle).
			Or(fmt.Sprintf("resource_subject %s ?", like), needle).
			Or(fmt.Sprintf("CAST(resource_tags AS TEXT) %s ?", like), needle))
	}
	if q.Semester > 0 {
		tx = tx.Where("resource_semester = ?", q.Semester)
	}
	if q.Type != "" {
		tx = tx.Where("resource_type = ?", q.Type)
	}

	switch q.Privacy {
	case "":
		// scoping implisit
		tx = tx.Where(s.DB.
			Where("resource_privacy = ?", resourceModel.PrivacyPublic).
			Or("resource_privacy = ? AND resource_college = ?", resourceModel.PrivacyPrivate, requesterCollege))
	case resourceModel.PrivacyPrivate:
		tx = tx.Where("resource_privacy = ? AND resource_college = ?", resourceModel.PrivacyPrivate, requesterCollege)
	default:
		tx = tx.Where("resource_privacy = ?", resourceModel.PrivacyPublic)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, fiber.NewError(fiber.StatusInternalServerError, "Failed to count resources")
	}

	var resources []resourceModel.ResourceModel
	if err := tx.Order("created_at DESC").Offset(q.Offset).Limit(q.Limit).Find(&resources).Error; err != nil {
		return nil, 0, fiber.NewError(fiber.StatusInternalServerError, "Failed to load resources")
	}
	return resources, total, nil
}

// Download mengembalikan isi blob + nama file asli, dengan privacy check
// yang sama seperti Get.
func (s *ResourceService) Download(id uuid.UUID, requesterCollege string) ([]byte, string, error) {
	resource, err := s.Get(id, requesterCollege)
	if err != nil {
		return nil, "", err
	}
	content, err := s.Storage.Get(resource.ResourceFilePath)
	if err != nil {
		if errors.Is(err, storage.ErrBlobNotFound) {
			return nil, "", fiber.NewError(fiber.StatusNotFound, "File not found on server")
		}
		return nil, "", fiber.NewError(fiber.StatusInternalServerError, "Failed to read file")
	}
	return content, resource.ResourceFileName, nil
}

/* =======================================================
   WRITES (ownership-scoped)
   ======================================================= */

// Update mengubah metadata resource. Hanya owner; field rating/review/likes
// tidak pernah bisa disentuh lewat path ini (lihat dto.ToUpdates).
func (s *ResourceService) Update(id uuid.UUID, req *resourceDTO.UpdateResourceRequest, requesterID uuid.UUID) (*resourceModel.ResourceModel, error) {
	var resource resourceModel.ResourceModel
	if err := s.DB.First(&resource, "resource_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Resource not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load resource")
	}
	if resource.ResourceOwnerID != requesterID {
		return nil, fiber.NewError(fiber.StatusForbidden, "You can only edit your own resources")
	}

	updates := req.ToUpdates()
	if len(updates) == 0 {
		return &resource, nil
	}
	if err := s.DB.Model(&resource).Updates(updates).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to update resource")
	}
	return &resource, nil
}

// Delete menghapus resource milik requester (atau siapa pun via path admin),
// cascade ke review & report, dan menghapus artefak blob.
func (s *ResourceService) Delete(id uuid.UUID, requesterID uuid.UUID, asAdmin bool) error {
	var resource resourceModel.ResourceModel
	if err := s.DB.First(&resource, "resource_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Resource not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load resource")
	}
	if !asAdmin && resource.ResourceOwnerID != requesterID {
		return fiber.NewError(fiber.StatusForbidden, "You can only delete your own resources")
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("review_resource_id = ?", id).Delete(&reviewModel.ReviewModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("report_resource_id = ?", id).Delete(&reportModel.ReportModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&resource).Error
	})
	if err != nil {
		log.Printf("[ERROR] gagal hapus resource %s: %v", id, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete resource")
	}

	// blob terakhir; record sudah hilang, sisa blob hanya sampah yang dilog
	if err := s.Storage.Delete(resource.ResourceFilePath); err != nil {
		log.Printf("[WARNING] gagal hapus blob %s: %v", resource.ResourceFilePath, err)
	}
	return nil
}

func (s *ResourceService) likeOperator() string {
	if s.DB.Dialector.Name() == "postgres" {
		return "ILIKE"
	}
	return "LIKE"
}
