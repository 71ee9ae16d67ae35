// file: internals/features/organizations/route/org_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	orgController "cyberassess_backend/internals/features/organizations/controller"
)

func OrgPublicRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := orgController.NewOrgController(db)

	orgs := api.Group("/orgs")
	orgs.Get("/regions", ctrl.ListRegions)
	orgs.Get("/provinces", ctrl.ListProvinces)
	orgs.Get("/units", ctrl.ListUnits)
}
