package scheduler

import (
	"log"
	"os"
	"strconv"
	"time"

	"gorm.io/gorm"

	verifService "eduhub_backend/internals/features/users/auth/service"
)

// StartVerificationCleanupScheduler menghapus kode verifikasi kadaluarsa
// secara berkala supaya tabel pending tidak tumbuh tanpa batas.
func StartVerificationCleanupScheduler(db *gorm.DB) {
	go func() {
		intervalMin := 30
		if val := os.Getenv("VERIFICATION_CLEANUP_INTERVAL_MINUTES"); val != "" {
			if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
				intervalMin = parsed
			}
		}

		store := verifService.NewVerificationStore(db)
		for {
			log.Println("[CLEANUP] Menjalankan pembersihan email_verifications...")
			if deleted, err := store.DeleteExpired(); err != nil {
				log.Printf("[CLEANUP ERROR] Gagal hapus kode kadaluarsa: %v", err)
			} else if deleted > 0 {
				log.Printf("[CLEANUP] %d kode kadaluarsa dihapus", deleted)
			} else {
				log.Println("[CLEANUP] Tidak ada kode yang memenuhi syarat dihapus")
			}

			time.Sleep(time.Duration(intervalMin) * time.Minute)
		}
	}()
}
