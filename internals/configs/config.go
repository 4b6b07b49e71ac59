package configs

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

var (
	JWTSecret        string
	ScanProvider     string
	VirusTotalAPIKey string
	UploadDir        string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		} else {
			log.Println("✅ .env file berhasil dimuat!")
		}
	} else {
		log.Println("🚀 Running in Railway, menggunakan ENV dari sistem")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	ScanProvider = strings.ToLower(GetEnv("SCAN_PROVIDER", "simulated"))
	VirusTotalAPIKey = GetEnv("VIRUSTOTAL_API_KEY")
	UploadDir = GetEnv("UPLOAD_DIR", "./uploads")

	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET belum diset!")
	} else {
		log.Println("✅ JWT_SECRET berhasil dimuat.")
	}

	// provider nyata butuh API key; jangan diam-diam fallback ke simulated
	if ScanProvider == "virustotal" && VirusTotalAPIKey == "" {
		log.Println("❌ SCAN_PROVIDER=virustotal tapi VIRUSTOTAL_API_KEY kosong!")
	} else {
		log.Printf("✅ Scan provider: %s", ScanProvider)
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}
