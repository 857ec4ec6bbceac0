package interviews

import (
	"database/sql"

	"recruitflow/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupInterviewsRoutes sets up interview scheduling and review routes
func SetupInterviewsRoutes(app *fiber.App, db *sql.DB) {
	candidateAPI := app.Group("/api/candidates")
	candidateAPI.Use(auth.AuthMiddleware)
	candidateAPI.Post("/:id/interviews", func(c *fiber.Ctx) error { return ScheduleInterviewAPI(c, db) })
	candidateAPI.Get("/:id/interviews", func(c *fiber.Ctx) error { return GetCandidateInterviewsAPI(c, db) })

	api := app.Group("/api/interviews")
	api.Use(auth.AuthMiddleware)
	api.Get("/upcoming", func(c *fiber.Ctx) error { return GetUpcomingInterviewsAPI(c, db) })
	api.Put("/:id", func(c *fiber.Ctx) error { return UpdateInterviewAPI(c, db) })
	api.Delete("/:id", func(c *fiber.Ctx) error { return DeleteInterviewAPI(c, db) })
}
