// file: internals/features/assessments/assessments/route/assessment_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	assessmentController "cyberassess_backend/internals/features/assessments/assessments/controller"
	"cyberassess_backend/internals/constants"
	authMiddleware "cyberassess_backend/internals/middlewares/auth"
)

// AssessmentRoutes wires the cycle lifecycle. Reads are open to every
// authenticated role (the policy narrows rows); writes are role-gated at
// the route and policy-checked again inside.
func AssessmentRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := assessmentController.NewAssessmentController(db)

	assessments := api.Group("/assessments")

	assessments.Get("/", ctrl.List)
	assessments.Get("/:id", ctrl.GetByID)
	assessments.Get("/:id/history", ctrl.History)

	assessments.Post("/",
		authMiddleware.OnlyRoles(
			constants.RoleErrorUnit("creating assessments"),
			constants.UnitRoles...,
		),
		ctrl.Create,
	)
	assessments.Put("/:id/items/:item_id",
		authMiddleware.OnlyRoles(
			constants.RoleErrorUnit("scoring assessment items"),
			constants.UnitRoles...,
		),
		ctrl.UpdateItem,
	)
	assessments.Post("/:id/submit",
		authMiddleware.OnlyRoles(
			constants.RoleErrorUnit("submitting assessments"),
			constants.UnitRoles...,
		),
		ctrl.Submit,
	)

	assessments.Post("/:id/approve",
		authMiddleware.OnlyRoles(
			constants.RoleErrorApprover("approving assessments"),
			constants.ApproverRoles...,
		),
		ctrl.Approve,
	)
	assessments.Post("/:id/return",
		authMiddleware.OnlyRoles(
			constants.RoleErrorApprover("returning assessments"),
			constants.ApproverRoles...,
		),
		ctrl.Return,
	)
}
