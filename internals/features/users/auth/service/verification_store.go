package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	verifModel "eduhub_backend/internals/features/users/auth/model"
)

const (
	codeTTL     = 5 * time.Minute
	maxAttempts = 5
)

// VerificationStore: keyed store (email → kode pending) dengan TTL &
// attempt counter eksplisit. Pengiriman email dan penerbitan session
// tetap di collaborator eksternal; di sini hanya state pending-nya.
type VerificationStore struct {
	DB *gorm.DB
}

func NewVerificationStore(db *gorm.DB) *VerificationStore {
	return &VerificationStore{DB: db}
}

// Put membuat kode 6 digit baru untuk email dan menyimpan hash-nya,
// menimpa entry lama untuk email yang sama. Kode plaintext dikembalikan
// ke caller untuk diserahkan ke pengirim email.
func (s *VerificationStore) Put(email string) (code string, err error) {
	code, err = generateCode()
	if err != nil {
		return "", fiber.NewError(fiber.StatusInternalServerError, "Failed to generate verification code")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", fiber.NewError(fiber.StatusInternalServerError, "Failed to store verification code")
	}

	entry := verifModel.EmailVerification{
		EmailVerificationEmail:     email,
		EmailVerificationCodeHash:  string(hash),
		EmailVerificationExpiresAt: time.Now().Add(codeTTL),
		EmailVerificationAttempts:  0,
	}
	// upsert by primary key (email)
	if err := s.DB.Save(&entry).Error; err != nil {
		return "", fiber.NewError(fiber.StatusInternalServerError, "Failed to store verification code")
	}
	return code, nil
}

// Verify mencocokkan kode. Entry kadaluarsa atau attempt habis → dihapus.
// Sukses → entry dihapus (sekali pakai).
func (s *VerificationStore) Verify(email, code string) error {
	var entry verifModel.EmailVerification
	if err := s.DB.First(&entry, "email_verification_email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "No pending verification for this email")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load verification")
	}

	if time.Now().After(entry.EmailVerificationExpiresAt) {
		_ = s.Delete(email)
		return fiber.NewError(fiber.StatusBadRequest, "Verification code expired")
	}
	if entry.EmailVerificationAttempts >= maxAttempts {
		_ = s.Delete(email)
		return fiber.NewError(fiber.StatusBadRequest, "Too many attempts, request a new code")
	}

	if bcrypt.CompareHashAndPassword([]byte(entry.EmailVerificationCodeHash), []byte(code)) != nil {
		// attempt counter naik atomik, bukan read-modify-write
		s.DB.Model(&verifModel.EmailVerification{}).
			Where("email_verification_email = ?", email).
			UpdateColumn("email_verification_attempts", gorm.Expr("email_verification_attempts + ?", 1))
		return fiber.NewError(fiber.StatusBadRequest, "Invalid verification code")
	}

	return s.Delete(email)
}

func (s *VerificationStore) Delete(email string) error {
	return s.DB.Delete(&verifModel.EmailVerification{}, "email_verification_email = ?", email).Error
}

// DeleteExpired dipakai scheduler pembersih.
func (s *VerificationStore) DeleteExpired() (int64, error) {
	res := s.DB.Delete(&verifModel.EmailVerification{}, "email_verification_expires_at < ?", time.Now())
	return res.RowsAffected, res.Error
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
