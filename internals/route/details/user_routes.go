// file: internals/route/details/user_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	orgRoute "cyberassess_backend/internals/features/organizations/route"
	profileRoute "cyberassess_backend/internals/features/users/profile/route"
)

func UserRoutes(api fiber.Router, db *gorm.DB) {
	profileRoute.ProfileRoutes(api, db)
}

func OrgPublicRoutes(api fiber.Router, db *gorm.DB) {
	orgRoute.OrgPublicRoutes(api, db)
}
