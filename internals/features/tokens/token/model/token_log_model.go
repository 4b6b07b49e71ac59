package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TokenLog: entry ledger EduToken, immutable & append-only.
// Invariant rekonsiliasi: users.edutokens == SUM(token_log_amount) per user.
type TokenLog struct {
	TokenLogID     uuid.UUID `gorm:"column:token_log_id;type:uuid;primaryKey" json:"token_log_id"`
	TokenLogUserID uuid.UUID `gorm:"column:token_log_user_id;type:uuid;not null;index" json:"token_log_user_id"`
	TokenLogReason string    `gorm:"column:token_log_reason;type:varchar(30);not null" json:"token_log_reason"`
	TokenLogAmount int       `gorm:"column:token_log_amount;not null" json:"token_log_amount"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
}

func (TokenLog) TableName() string {
	return "token_logs"
}

func (m *TokenLog) BeforeCreate(tx *gorm.DB) error {
	if m.TokenLogID == uuid.Nil {
		m.TokenLogID = uuid.New()
	}
	return nil
}
