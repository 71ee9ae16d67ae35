// file: internals/features/assessments/impact/route/impact_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	impactController "cyberassess_backend/internals/features/assessments/impact/controller"
	"cyberassess_backend/internals/constants"
	authMiddleware "cyberassess_backend/internals/middlewares/auth"
)

func ImpactRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := impactController.NewImpactController(db)

	api.Get("/assessments/:id/impact", ctrl.Get)
	api.Put("/assessments/:id/impact",
		authMiddleware.OnlyRoles(
			constants.RoleErrorUnit("recording impact scores"),
			constants.UnitRoles...,
		),
		ctrl.Commit,
	)
}
