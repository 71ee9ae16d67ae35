// file: internals/features/budgets/route/budget_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	budgetController "cyberassess_backend/internals/features/budgets/controller"
	"cyberassess_backend/internals/constants"
	authMiddleware "cyberassess_backend/internals/middlewares/auth"
)

func BudgetRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := budgetController.NewBudgetController(db)

	api.Get("/units/:unit_id/budgets/:fiscal_year", ctrl.List)
	api.Put("/units/:unit_id/budgets/:fiscal_year",
		authMiddleware.OnlyRoles(
			constants.RoleErrorUnit("editing budget figures"),
			constants.UnitRoles...,
		),
		ctrl.Replace,
	)
}
