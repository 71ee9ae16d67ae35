// file: internals/route/details/report_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	budgetRoute "cyberassess_backend/internals/features/budgets/route"
	reportRoute "cyberassess_backend/internals/features/reports/route"
)

func ReportAdminRoutes(api fiber.Router, db *gorm.DB) {
	reportRoute.ReportRoutes(api, db)
	budgetRoute.BudgetRoutes(api, db)
}
