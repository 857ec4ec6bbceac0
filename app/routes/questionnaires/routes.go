package questionnaires

import (
	"database/sql"

	"recruitflow/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupQuestionnairesRoutes sets up questionnaire submission, grading and
// template administration routes
func SetupQuestionnairesRoutes(app *fiber.App, db *sql.DB) {
	api := app.Group("/api/questionnaires")
	api.Use(auth.AuthMiddleware)

	// Submission and steps
	api.Post("/submit", func(c *fiber.Ctx) error { return SubmitQuestionnaireAPI(c, db) })
	api.Get("/steps", func(c *fiber.Ctx) error { return GetStepsForPositionAPI(c, db) })

	// Template administration
	api.Post("/templates", func(c *fiber.Ctx) error { return CreateTemplateAPI(c, db) })
	api.Get("/templates/:id", func(c *fiber.Ctx) error { return GetTemplateAPI(c, db) })
	api.Post("/templates/:id/activate", func(c *fiber.Ctx) error { return ActivateTemplateAPI(c, db) })
	api.Post("/templates/:id/deactivate", func(c *fiber.Ctx) error { return DeactivateTemplateAPI(c, db) })
	api.Put("/templates/:id/step", func(c *fiber.Ctx) error { return UpdateTemplateStepAPI(c, db) })
	api.Post("/templates/:id/questions", func(c *fiber.Ctx) error { return CreateQuestionAPI(c, db) })

	// Question and option administration
	api.Put("/questions/:id", func(c *fiber.Ctx) error { return UpdateQuestionAPI(c, db) })
	api.Delete("/questions/:id", func(c *fiber.Ctx) error { return DeleteQuestionAPI(c, db) })
	api.Post("/questions/:id/options", func(c *fiber.Ctx) error { return CreateOptionAPI(c, db) })
	api.Put("/options/:id", func(c *fiber.Ctx) error { return UpdateOptionAPI(c, db) })

	// Candidate responses
	responsesAPI := app.Group("/api/candidates")
	responsesAPI.Use(auth.AuthMiddleware)
	responsesAPI.Get("/:id/responses", func(c *fiber.Ctx) error { return GetCandidateResponsesAPI(c, db) })

	// Questionnaires page
	app.Get("/questionnaires", auth.AuthMiddleware, func(c *fiber.Ctx) error {
		return QuestionnairesPageHandler(c, db)
	})
}

// QuestionnairesPageHandler renders the questionnaire templates page
func QuestionnairesPageHandler(c *fiber.Ctx, db *sql.DB) error {
	positionKey := c.Query("position")
	templates, err := GetTemplatesForPosition(db, positionKey, false)
	if err != nil {
		templates = nil
	}
	return c.Render("questionnaires/index", fiber.Map{
		"Title":     "Questionnaires",
		"Position":  positionKey,
		"Templates": templates,
	})
}
