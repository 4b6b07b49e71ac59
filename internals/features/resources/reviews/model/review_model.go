package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReviewModel: satu review per (resource, reviewer) — diikat unique index,
// submit kedua dari user yang sama meng-update baris lama.
type ReviewModel struct {
	ReviewID         uuid.UUID `gorm:"column:review_id;type:uuid;primaryKey" json:"review_id"`
	ReviewResourceID uuid.UUID `gorm:"column:review_resource_id;type:uuid;not null;uniqueIndex:idx_review_resource_user;index" json:"review_resource_id"`
	ReviewUserID     uuid.UUID `gorm:"column:review_user_id;type:uuid;not null;uniqueIndex:idx_review_resource_user" json:"review_user_id"`
	ReviewUserName   string    `gorm:"column:review_user_name;type:varchar(50);not null" json:"review_user_name"`
	ReviewRating     int       `gorm:"column:review_rating;not null" json:"review_rating"`
	ReviewComment    string    `gorm:"column:review_comment;type:text;not null;default:''" json:"review_comment"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ReviewModel) TableName() string {
	return "reviews"
}

func (m *ReviewModel) BeforeCreate(tx *gorm.DB) error {
	if m.ReviewID == uuid.Nil {
		m.ReviewID = uuid.New()
	}
	return nil
}
