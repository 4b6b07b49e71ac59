package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel adalah proyeksi lokal dari identity provider.
// Kolom edutokens & explore_score dimutasi HANYA oleh token ledger,
// selalu lewat atomic increment (lihat token service).
type UserModel struct {
	ID       uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserName string    `gorm:"column:user_name;type:varchar(50);not null" json:"user_name"`
	Email    string    `gorm:"column:email;type:varchar(255);uniqueIndex;not null" json:"email"`
	College  string    `gorm:"column:college;type:varchar(100);not null;default:''" json:"college"`
	Role     string    `gorm:"column:role;type:varchar(20);not null;default:'user'" json:"role"`

	EduTokens    int  `gorm:"column:edutokens;not null;default:0" json:"edutokens"`
	ExploreScore int  `gorm:"column:explore_score;not null;default:0" json:"explore_score"`
	IsBanned     bool `gorm:"column:is_banned;not null;default:false" json:"is_banned"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

func (m *UserModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
