package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	PrivacyPublic  = "public"
	PrivacyPrivate = "private"
)

// ResourceModel menyimpan metadata resource belajar.
// resource_file_hash unik di level DB — dua upload konten identik yang
// berpacu akan gagal di constraint, bukan last-writer-wins.
type ResourceModel struct {
	ResourceID          uuid.UUID                  `gorm:"column:resource_id;type:uuid;primaryKey" json:"resource_id"`
	ResourceTitle       string                     `gorm:"column:resource_title;type:varchar(200);not null" json:"resource_title"`
	ResourceSubject     string                     `gorm:"column:resource_subject;type:varchar(100);not null" json:"resource_subject"`
	ResourceSemester    int                        `gorm:"column:resource_semester;not null;index" json:"resource_semester"`
	ResourceType        string                     `gorm:"column:resource_type;type:varchar(30);not null;index" json:"resource_type"`
	ResourceYear        *int                       `gorm:"column:resource_year" json:"resource_year,omitempty"`
	ResourceDescription string                     `gorm:"column:resource_description;type:text;not null;default:''" json:"resource_description"`
	ResourceTags        datatypes.JSONSlice[string] `gorm:"column:resource_tags" json:"resource_tags"`
	ResourcePrivacy     string                     `gorm:"column:resource_privacy;type:varchar(10);not null;default:'public';index" json:"resource_privacy"`
	ResourceCollege     string                     `gorm:"column:resource_college;type:varchar(100);not null;default:''" json:"resource_college"`

	ResourceFileHash    string `gorm:"column:resource_file_hash;type:varchar(64);uniqueIndex;not null" json:"resource_file_hash"`
	ResourceFileName    string `gorm:"column:resource_file_name;type:varchar(255);not null" json:"resource_file_name"`
	ResourceFilePath    string `gorm:"column:resource_file_path;type:varchar(255);not null" json:"-"`
	ResourceFileSize    int64  `gorm:"column:resource_file_size;not null" json:"resource_file_size"`
	ResourceScanMessage string `gorm:"column:resource_scan_message;type:varchar(255);not null;default:''" json:"resource_scan_message"`

	ResourceOwnerID   uuid.UUID  `gorm:"column:resource_owner_id;type:uuid;not null;index" json:"resource_owner_id"`
	ResourceOwnerName string     `gorm:"column:resource_owner_name;type:varchar(50);not null" json:"resource_owner_name"`
	ResourceGroupID   *uuid.UUID `gorm:"column:resource_group_id;type:uuid" json:"resource_group_id,omitempty"`

	ResourceAvgRating    float64 `gorm:"column:resource_avg_rating;not null;default:0" json:"avg_rating"`
	ResourceTotalReviews int     `gorm:"column:resource_total_reviews;not null;default:0" json:"total_reviews"`
	ResourceLikesCount   int     `gorm:"column:resource_likes_count;not null;default:0" json:"likes_count"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ResourceModel) TableName() string {
	return "resources"
}

func (m *ResourceModel) BeforeCreate(tx *gorm.DB) error {
	if m.ResourceID == uuid.Nil {
		m.ResourceID = uuid.New()
	}
	return nil
}
