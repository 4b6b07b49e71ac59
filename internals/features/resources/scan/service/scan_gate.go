package service

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	scanModel "eduhub_backend/internals/features/resources/scan/model"
)

// ScanGate membungkus Scanner jadi keputusan accept/reject di depan
// persistence. Setiap evaluasi yang menghasilkan verdict (clean maupun
// tidak) dicatat satu baris scan log.
type ScanGate struct {
	DB      *gorm.DB
	Scanner Scanner
}

func NewScanGate(db *gorm.DB, scanner Scanner) *ScanGate {
	return &ScanGate{DB: db, Scanner: scanner}
}

// Evaluate mengembalikan verdict scanner. Error scanner (unreachable,
// timeout) dipropagasi sebagai 502 — TIDAK dianggap clean.
func (g *ScanGate) Evaluate(ctx context.Context, content []byte, filename, fileHash string, userID uuid.UUID, userName string) (bool, string, error) {
	clean, message, err := g.Scanner.Scan(ctx, content, filename)
	if err != nil {
		log.Printf("[ERROR] scan gagal (file=%s): %v", filename, err)
		return false, "", fiber.NewError(fiber.StatusBadGateway, "File scan failed: "+err.Error())
	}

	entry := scanModel.ScanLog{
		ScanLogFileName: filename,
		ScanLogFileHash: fileHash,
		ScanLogIsClean:  clean,
		ScanLogMessage:  message,
		ScanLogUserID:   userID,
		ScanLogUserName: userName,
	}
	if err := g.DB.Create(&entry).Error; err != nil {
		// audit log wajib ada sebelum resource dipersist
		log.Printf("[ERROR] gagal tulis scan log: %v", err)
		return false, "", fiber.NewError(fiber.StatusInternalServerError, "Failed to record scan result")
	}

	return clean, message, nil
}

// MaliciousLogs: scan log dengan verdict tidak clean, terbaru dulu (admin).
func (g *ScanGate) MaliciousLogs(limit int) ([]scanModel.ScanLog, error) {
	if limit <= 0 {
		limit = 50
	}
	var logs []scanModel.ScanLog
	if err := g.DB.
		Where("scan_log_is_clean = ?", false).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load scan logs")
	}
	return logs, nil
}
