// file: internals/features/users/profile/route/profile_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	profileController "cyberassess_backend/internals/features/users/profile/controller"
)

func ProfileRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := profileController.NewProfileController(db)
	api.Get("/profile", ctrl.Me)
}
