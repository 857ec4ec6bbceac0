package scoring

import (
	"database/sql"

	"recruitflow/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupScoringRoutes sets up rubric management and candidate scoring routes
func SetupScoringRoutes(app *fiber.App, db *sql.DB) {
	// Rubric configuration API
	weightsAPI := app.Group("/api/settings/scoring-weights")
	weightsAPI.Use(auth.AuthMiddleware)
	weightsAPI.Get("/", func(c *fiber.Ctx) error { return GetScoringWeightsAPI(c, db) })
	weightsAPI.Put("/", func(c *fiber.Ctx) error { return UpdateScoringWeightsAPI(c, db) })
	weightsAPI.Post("/reset", func(c *fiber.Ctx) error { return ResetScoringWeightsAPI(c, db) })

	// Candidate scoring API
	scoreAPI := app.Group("/api/candidates")
	scoreAPI.Use(auth.AuthMiddleware)
	scoreAPI.Get("/:id/score", func(c *fiber.Ctx) error { return GetCandidateScoreAPI(c, db) })
	scoreAPI.Post("/:id/score", func(c *fiber.Ctx) error { return CalculateCandidateScoreAPI(c, db) })
	scoreAPI.Post("/recalculate-scores", func(c *fiber.Ctx) error { return RecalculateAllScoresAPI(c, db) })

	// Settings page
	app.Get("/settings/scoring", auth.AuthMiddleware, SettingsPageHandler)
}
