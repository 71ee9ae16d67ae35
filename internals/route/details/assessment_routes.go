// file: internals/route/details/assessment_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	assessmentRoute "cyberassess_backend/internals/features/assessments/assessments/route"
	evidenceRoute "cyberassess_backend/internals/features/assessments/evidence/route"
	impactRoute "cyberassess_backend/internals/features/assessments/impact/route"
)

// AssessmentAdminRoutes mounts the full assessment surface (cycles,
// items, workflow actions, impact scores, evidence files) under the
// authenticated group.
func AssessmentAdminRoutes(api fiber.Router, db *gorm.DB) {
	assessmentRoute.AssessmentRoutes(api, db)
	impactRoute.ImpactRoutes(api, db)
	evidenceRoute.EvidenceRoutes(api, db)
}
