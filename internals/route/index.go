// file: internals/route/index.go
package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"eduhub_backend/internals/configs"
	communityController "eduhub_backend/internals/features/community/controller"
	resourceController "eduhub_backend/internals/features/resources/resource/controller"
	resourceService "eduhub_backend/internals/features/resources/resource/service"
	reviewController "eduhub_backend/internals/features/resources/reviews/controller"
	scanService "eduhub_backend/internals/features/resources/scan/service"
	tokenController "eduhub_backend/internals/features/tokens/token/controller"
	tokenService "eduhub_backend/internals/features/tokens/token/service"
	adminController "eduhub_backend/internals/features/users/admin/controller"
	"eduhub_backend/internals/helpers/storage"
	authMw "eduhub_backend/internals/middlewares/auth"
	routeDetails "eduhub_backend/internals/route/details"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// ===================== SHARED SERVICES =====================
	blob, err := storage.NewLocalStorage(configs.UploadDir)
	if err != nil {
		log.Fatalf("❌ Gagal siapkan upload dir: %v", err)
	}

	// scanner dipilih eksplisit lewat konfigurasi, bukan probing
	var scanner scanService.Scanner
	if configs.ScanProvider == "virustotal" {
		scanner = scanService.NewVirusTotalScanner(configs.VirusTotalAPIKey)
	} else {
		scanner = scanService.SimulatedScanner{}
	}
	gate := scanService.NewScanGate(db, scanner)

	tokens := tokenService.NewTokenService(db)
	resources := resourceService.NewResourceService(db, blob, gate, tokens)

	// ===================== PRIVATE (USER) =====================
	log.Println("[INFO] Setting up PRIVATE group...")
	private := app.Group("/api", authMw.AuthMiddleware(db))

	routeDetails.ResourceRoutes(private, resourceController.NewResourceController(resources, tokens))
	routeDetails.ReviewRoutes(private, reviewController.NewReviewController(db))
	routeDetails.TokenRoutes(private, tokenController.NewTokenController(db))
	routeDetails.CommunityRoutes(private, communityController.NewCommunityController(db))

	// ===================== ADMIN =====================
	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/admin",
		authMw.AuthMiddleware(db),
		authMw.OnlyRoles("", "admin"),
	)
	routeDetails.AdminRoutes(admin, adminController.NewAdminController(db, resources, gate))
}
