package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	likeModel "eduhub_backend/internals/features/community/likes/model"
	reportModel "eduhub_backend/internals/features/community/reports/model"
	resourceModel "eduhub_backend/internals/features/resources/resource/model"
	reviewModel "eduhub_backend/internals/features/resources/reviews/model"
	scanModel "eduhub_backend/internals/features/resources/scan/model"
	tokenModel "eduhub_backend/internals/features/tokens/token/model"
	verifModel "eduhub_backend/internals/features/users/auth/model"
	userModel "eduhub_backend/internals/features/users/user/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("🔌 Koneksi ke PostgreSQL...")

	sslmode := getenv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=eduhub&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // 👍 cocok untuk PgBouncer (transaction pooling)
	}), &gorm.Config{
		TranslateError: true, // unique violation → gorm.ErrDuplicatedKey
	})
	if err != nil {
		log.Fatalf("❌ Gagal konek DB: %v", err)
	}
	DB = db
	log.Println("✅ DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// Migrate menjalankan AutoMigrate untuk semua model inti.
// Constraint unik (file_hash, review per user, report per user) dibuat di sini
// supaya race antar request ditutup oleh database, bukan oleh pengecekan aplikasi.
func Migrate() {
	if err := DB.AutoMigrate(
		&userModel.UserModel{},
		&verifModel.EmailVerification{},
		&resourceModel.ResourceModel{},
		&reviewModel.ReviewModel{},
		&scanModel.ScanLog{},
		&tokenModel.TokenLog{},
		&reportModel.ReportModel{},
		&likeModel.LikeModel{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate gagal: %v", err)
	}
	log.Println("✅ AutoMigrate selesai.")
}

func WarmUpQueries() {
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := ping(); err != nil {
			log.Printf("warmup ping err: %v", err)
			return
		}
		log.Println("✅ DB warm-up selesai.")
	}()
}

func ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
