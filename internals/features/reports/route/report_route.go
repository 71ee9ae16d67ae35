// file: internals/features/reports/route/report_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	reportController "cyberassess_backend/internals/features/reports/controller"
)

// Every authenticated role may read reports; the policy inside narrows
// the visible buckets and gates each drill step.
func ReportRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := reportController.NewReportController(db)

	reports := api.Group("/reports")
	reports.Get("/summary", ctrl.GetSummary)
	reports.Get("/drill", ctrl.GetDrill)
}
