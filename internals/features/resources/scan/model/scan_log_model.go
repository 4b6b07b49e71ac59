package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ScanLog: audit trail hasil scan, append-only. Tidak pernah di-update
// atau dihapus oleh flow normal.
type ScanLog struct {
	ScanLogID       uuid.UUID `gorm:"column:scan_log_id;type:uuid;primaryKey" json:"scan_log_id"`
	ScanLogFileName string    `gorm:"column:scan_log_file_name;type:varchar(255);not null" json:"scan_log_file_name"`
	ScanLogFileHash string    `gorm:"column:scan_log_file_hash;type:varchar(64);not null;index" json:"scan_log_file_hash"`
	ScanLogIsClean  bool      `gorm:"column:scan_log_is_clean;not null;index" json:"scan_log_is_clean"`
	ScanLogMessage  string    `gorm:"column:scan_log_message;type:varchar(255);not null" json:"scan_log_message"`
	ScanLogUserID   uuid.UUID `gorm:"column:scan_log_user_id;type:uuid;not null;index" json:"scan_log_user_id"`
	ScanLogUserName string    `gorm:"column:scan_log_user_name;type:varchar(50);not null" json:"scan_log_user_name"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
}

func (ScanLog) TableName() string {
	return "scan_logs"
}

func (m *ScanLog) BeforeCreate(tx *gorm.DB) error {
	if m.ScanLogID == uuid.Nil {
		m.ScanLogID = uuid.New()
	}
	return nil
}
