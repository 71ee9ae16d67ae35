// file: internals/route/index.go
package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	routeDetails "cyberassess_backend/internals/route/details"
	authMiddleware "cyberassess_backend/internals/middlewares/auth"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	BaseRoutes(app, db)

	// ===================== PUBLIC =====================
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public")
	routeDetails.OrgPublicRoutes(public, db)

	// ===================== PRIVATE (USER) =====================
	log.Println("[INFO] Setting up PRIVATE group (Auth)...")
	private := app.Group("/api/u", authMiddleware.AuthMiddleware())
	routeDetails.UserRoutes(private, db)

	// ===================== ADMIN / WORK SURFACE =====================
	log.Println("[INFO] Setting up WORK group (Auth + role gates per route)...")
	work := app.Group("/api/a", authMiddleware.AuthMiddleware())

	log.Println("[INFO] Mounting Assessment routes...")
	routeDetails.AssessmentAdminRoutes(work, db)

	log.Println("[INFO] Mounting Report & Budget routes...")
	routeDetails.ReportAdminRoutes(work, db)
}
