package model

import (
	"time"
)

// EmailVerification: keyed store untuk kode verifikasi email yang pending.
// Menggantikan map global in-memory — expiry & attempt counter eksplisit
// per key sehingga bisa dibersihkan terjadwal dan tahan restart.
type EmailVerification struct {
	EmailVerificationEmail     string    `gorm:"column:email_verification_email;type:varchar(255);primaryKey" json:"email_verification_email"`
	EmailVerificationCodeHash  string    `gorm:"column:email_verification_code_hash;type:varchar(100);not null" json:"-"`
	EmailVerificationExpiresAt time.Time `gorm:"column:email_verification_expires_at;not null;index" json:"email_verification_expires_at"`
	EmailVerificationAttempts  int       `gorm:"column:email_verification_attempts;not null;default:0" json:"email_verification_attempts"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (EmailVerification) TableName() string {
	return "email_verifications"
}
