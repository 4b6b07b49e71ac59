package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LikeModel struct {
	LikeID         uuid.UUID `gorm:"column:like_id;type:uuid;primaryKey" json:"like_id"`
	LikeResourceID uuid.UUID `gorm:"column:like_resource_id;type:uuid;not null;uniqueIndex:idx_like_resource_user;index" json:"like_resource_id"`
	LikeUserID     uuid.UUID `gorm:"column:like_user_id;type:uuid;not null;uniqueIndex:idx_like_resource_user" json:"like_user_id"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (LikeModel) TableName() string {
	return "likes"
}

func (m *LikeModel) BeforeCreate(tx *gorm.DB) error {
	if m.LikeID == uuid.Nil {
		m.LikeID = uuid.New()
	}
	return nil
}
