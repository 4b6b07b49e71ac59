package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReportModel: laporan komunitas atas sebuah resource.
// Satu reporter hanya boleh melaporkan resource yang sama sekali.
type ReportModel struct {
	ReportID            uuid.UUID `gorm:"column:report_id;type:uuid;primaryKey" json:"report_id"`
	ReportResourceID    uuid.UUID `gorm:"column:report_resource_id;type:uuid;not null;uniqueIndex:idx_report_resource_reporter;index" json:"report_resource_id"`
	ReportResourceTitle string    `gorm:"column:report_resource_title;type:varchar(200);not null" json:"report_resource_title"`
	ReportReporterID    uuid.UUID `gorm:"column:report_reporter_id;type:uuid;not null;uniqueIndex:idx_report_resource_reporter" json:"report_reporter_id"`
	ReportReporterName  string    `gorm:"column:report_reporter_name;type:varchar(50);not null" json:"report_reporter_name"`
	ReportReason        string    `gorm:"column:report_reason;type:varchar(255);not null;default:'Inappropriate content'" json:"report_reason"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
}

func (ReportModel) TableName() string {
	return "reports"
}

func (m *ReportModel) BeforeCreate(tx *gorm.DB) error {
	if m.ReportID == uuid.Nil {
		m.ReportID = uuid.New()
	}
	return nil
}
