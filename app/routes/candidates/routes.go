package candidates

import (
	"database/sql"

	"recruitflow/app/database"
	"recruitflow/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupCandidatesRoutes sets up candidate intake, profile and pipeline routes
func SetupCandidatesRoutes(app *fiber.App, db *sql.DB) {
	api := app.Group("/api/candidates")
	api.Use(auth.AuthMiddleware)

	api.Post("/", func(c *fiber.Ctx) error { return CreateCandidateAPI(c, db) })
	api.Get("/", func(c *fiber.Ctx) error { return GetCandidatesAPI(c, db) })
	api.Get("/by-code/:code", func(c *fiber.Ctx) error { return GetCandidateByAccessCodeAPI(c, db) })
	api.Get("/:id", func(c *fiber.Ctx) error { return GetCandidateAPI(c, db) })
	api.Put("/:id", func(c *fiber.Ctx) error { return UpdateCandidateAPI(c, db) })
	api.Delete("/:id", func(c *fiber.Ctx) error { return DeleteCandidateAPI(c, db) })
	api.Put("/:id/status", func(c *fiber.Ctx) error { return UpdateCandidateStatusAPI(c, db) })
	api.Post("/:id/experiences", func(c *fiber.Ctx) error { return AddExperienceAPI(c, db) })

	app.Get("/candidates", auth.AuthMiddleware, func(c *fiber.Ctx) error {
		return CandidatesPageHandler(c, db)
	})
}

// CandidatesPageHandler renders the candidate pipeline page
func CandidatesPageHandler(c *fiber.Ctx, db *sql.DB) error {
	filters := database.CandidateFilters{
		Search:   c.Query("search"),
		Status:   c.Query("status"),
		Position: c.Query("position"),
		Limit:    100,
	}
	candidateList, err := database.GetCandidates(db, filters)
	if err != nil {
		candidateList = nil
	}
	statusCounts, err := CountCandidatesByStatus(db)
	if err != nil {
		statusCounts = nil
	}

	return c.Render("candidates/index", fiber.Map{
		"Title":        "Candidates",
		"Candidates":   candidateList,
		"StatusCounts": statusCounts,
		"Search":       filters.Search,
		"Status":       filters.Status,
		"Position":     filters.Position,
	})
}
