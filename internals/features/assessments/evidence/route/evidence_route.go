// file: internals/features/assessments/evidence/route/evidence_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	evidenceController "cyberassess_backend/internals/features/assessments/evidence/controller"
	"cyberassess_backend/internals/constants"
	authMiddleware "cyberassess_backend/internals/middlewares/auth"
)

func EvidenceRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := evidenceController.NewEvidenceController(db)

	onlyUnits := authMiddleware.OnlyRoles(
		constants.RoleErrorUnit("managing evidence files"),
		constants.UnitRoles...,
	)

	api.Post("/assessments/:id/items/:item_id/evidence", onlyUnits, ctrl.Upload)
	api.Post("/assessments/:id/evidence", onlyUnits, ctrl.Upload)
	api.Get("/assessments/:id/evidence", ctrl.List)

	api.Get("/evidence/:file_id/download", ctrl.Download)
	api.Delete("/evidence/:file_id", onlyUnits, ctrl.Delete)
}
