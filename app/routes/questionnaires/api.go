package questionnaires

import (
	"database/sql"
	"errors"
	"log"

	"recruitflow/app/models"

	"github.com/gofiber/fiber/v2"
)

// SubmitQuestionnaireAPI grades and stores a candidate's answers to one
// questionnaire step
func SubmitQuestionnaireAPI(c *fiber.Ctx, db *sql.DB) error {
	var request struct {
		CandidateID string          `json:"candidate_id"`
		TemplateID  string          `json:"template_id"`
		Answers     []models.Answer `json:"answers"`
	}

	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if request.CandidateID == "" || request.TemplateID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "candidate_id and template_id are required",
		})
	}
	for _, answer := range request.Answers {
		if answer.QuestionID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "each answer must have a question_id",
			})
		}
		if answer.SelectedOptionIDs == nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "each answer must have selected_option_ids",
			})
		}
	}

	response, err := SubmitQuestionnaire(db, request.CandidateID, request.TemplateID, request.Answers)
	if err != nil {
		if errors.Is(err, ErrCandidateNotFound) || errors.Is(err, ErrTemplateNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		var refErr *ReferenceError
		if errors.As(err, &refErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": refErr.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to submit questionnaire",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(response)
}

// GetStepsForPositionAPI lists the active questionnaire steps for a position
func GetStepsForPositionAPI(c *fiber.Ctx, db *sql.DB) error {
	positionKey := c.Query("position")
	if positionKey == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "position is required",
		})
	}

	templates, err := GetTemplatesForPosition(db, positionKey, true)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch templates",
		})
	}

	return c.JSON(fiber.Map{
		"position":    positionKey,
		"total_steps": len(templates),
		"steps":       templates,
	})
}

// GetTemplateAPI returns a template with its questions and options
func GetTemplateAPI(c *fiber.Ctx, db *sql.DB) error {
	template, err := GetTemplateWithQuestions(db, c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrTemplateNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Template not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch template",
		})
	}
	return c.JSON(template)
}

// CreateTemplateAPI creates a questionnaire template
func CreateTemplateAPI(c *fiber.Ctx, db *sql.DB) error {
	var request struct {
		PositionKey string `json:"position_key"`
		Title       string `json:"title"`
		Description string `json:"description"`
		StepNumber  int    `json:"step_number"`
		IsActive    bool   `json:"is_active"`
	}
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if request.PositionKey == "" || request.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "position_key and title are required",
		})
	}
	if request.StepNumber <= 0 {
		request.StepNumber = 1
	}

	template := &models.QuestionnaireTemplate{
		PositionKey: request.PositionKey,
		Title:       request.Title,
		Description: request.Description,
		StepNumber:  request.StepNumber,
		IsActive:    request.IsActive,
	}
	if err := CreateTemplate(db, template); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create template",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(template)
}

// ActivateTemplateAPI marks a template as an active step
func ActivateTemplateAPI(c *fiber.Ctx, db *sql.DB) error {
	return setTemplateActive(c, db, true)
}

// DeactivateTemplateAPI removes a template from the active steps
func DeactivateTemplateAPI(c *fiber.Ctx, db *sql.DB) error {
	return setTemplateActive(c, db, false)
}

func setTemplateActive(c *fiber.Ctx, db *sql.DB, active bool) error {
	if err := SetTemplateActive(db, c.Params("id"), active); err != nil {
		if errors.Is(err, ErrTemplateNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Template not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update template",
		})
	}
	status := "deactivated"
	if active {
		status = "activated"
	}
	return c.JSON(fiber.Map{"status": status})
}

// UpdateTemplateStepAPI reorders a template within its position's flow
func UpdateTemplateStepAPI(c *fiber.Ctx, db *sql.DB) error {
	var request struct {
		StepNumber int `json:"step_number"`
	}
	if err := c.BodyParser(&request); err != nil || request.StepNumber < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "step_number must be a positive integer",
		})
	}

	if err := UpdateTemplateStep(db, c.Params("id"), request.StepNumber); err != nil {
		if errors.Is(err, ErrTemplateNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Template not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update step",
		})
	}
	return c.JSON(fiber.Map{"status": "updated", "step_number": request.StepNumber})
}

// CreateQuestionAPI adds a question to a template
func CreateQuestionAPI(c *fiber.Ctx, db *sql.DB) error {
	var question models.Question
	if err := c.BodyParser(&question); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	question.TemplateID = c.Params("id")
	if question.Text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "text is required",
		})
	}
	if question.Type == "" {
		question.Type = models.MultiSelect
	}
	if question.ScoringMode == "" {
		question.ScoringMode = models.AllOrNothing
	}
	if question.Points < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "points cannot be negative",
		})
	}

	if err := CreateQuestion(db, &question); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create question",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(&question)
}

// UpdateQuestionAPI changes a question and triggers regrading of stored
// responses
func UpdateQuestionAPI(c *fiber.Ctx, db *sql.DB) error {
	question, err := GetQuestion(db, c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Question not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch question",
		})
	}

	if err := c.BodyParser(question); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if question.Points < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "points cannot be negative",
		})
	}

	if err := UpdateQuestion(db, question); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update question",
		})
	}

	OnQuestionChanged(question.ID)
	return c.JSON(question)
}

// DeleteQuestionAPI removes a question and regrades the template's responses
func DeleteQuestionAPI(c *fiber.Ctx, db *sql.DB) error {
	templateID, err := DeleteQuestion(db, c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Question not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete question",
		})
	}

	// The question row is gone, so regrade by template directly.
	go func() {
		if _, errs := RecalculateTemplateResponses(db, templateID); len(errs) > 0 {
			for _, err := range errs {
				log.Printf("Recalculation: %v", err)
			}
		}
	}()
	return c.JSON(fiber.Map{"status": "deleted"})
}

// CreateOptionAPI adds an option to a question
func CreateOptionAPI(c *fiber.Ctx, db *sql.DB) error {
	var option models.QuestionOption
	if err := c.BodyParser(&option); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	option.QuestionID = c.Params("id")
	if option.Text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "text is required",
		})
	}
	if option.Points < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "points cannot be negative",
		})
	}

	if err := CreateOption(db, &option); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create option",
		})
	}

	OnQuestionChanged(option.QuestionID)
	return c.Status(fiber.StatusCreated).JSON(&option)
}

// UpdateOptionAPI changes an option and triggers regrading. The stored row is
// loaded first so a partial payload only touches the fields it carries.
func UpdateOptionAPI(c *fiber.Ctx, db *sql.DB) error {
	option, err := GetOption(db, c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Option not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch option",
		})
	}

	if err := c.BodyParser(option); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	option.ID = c.Params("id")
	if option.Points < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "points cannot be negative",
		})
	}

	if err := UpdateOption(db, option); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update option",
		})
	}

	OnQuestionChanged(option.QuestionID)
	return c.JSON(option)
}

// GetCandidateResponsesAPI lists a candidate's graded questionnaire responses
func GetCandidateResponsesAPI(c *fiber.Ctx, db *sql.DB) error {
	responses, err := GetResponsesForCandidate(db, c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch responses",
		})
	}
	return c.JSON(responses)
}
