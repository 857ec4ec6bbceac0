package scoring

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"

	"recruitflow/app/database"
	"recruitflow/app/models"

	"github.com/gofiber/fiber/v2"
)

// GetScoringWeightsAPI returns the active rubric grouped by category
func GetScoringWeightsAPI(c *fiber.Ctx, db *sql.DB) error {
	weights, err := GetWeights(db)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load scoring weights",
		})
	}

	total := weights.Total()
	return c.JSON(fiber.Map{
		"weights":  weights.ToMap(),
		"total":    total,
		"is_valid": total == 100,
	})
}

// UpdateScoringWeightsAPI validates and activates a new rubric version
func UpdateScoringWeightsAPI(c *fiber.Ctx, db *sql.DB) error {
	var payload map[string]map[string]float64
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	var createdBy *string
	if userID, ok := c.Locals("user_id").(string); ok && userID != "" {
		createdBy = &userID
	}

	weights, err := SetWeights(db, payload, createdBy)
	if err != nil {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": vErr.Message,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save scoring weights",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Weights updated successfully",
		"weights": weights.ToMap(),
		"total":   weights.Total(),
	})
}

// ResetScoringWeightsAPI activates a fresh default rubric
func ResetScoringWeightsAPI(c *fiber.Ctx, db *sql.DB) error {
	weights, err := ResetWeights(db)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to reset scoring weights",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Weights reset to defaults",
		"weights": weights.ToMap(),
		"total":   weights.Total(),
	})
}

// GetCandidateScoreAPI returns the stored score for one candidate
func GetCandidateScoreAPI(c *fiber.Ctx, db *sql.DB) error {
	candidate, err := database.GetCandidateByID(db, c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Candidate not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch candidate",
		})
	}

	breakdown := map[string]float64{}
	if candidate.ScoreBreakdown != nil {
		if err := json.Unmarshal([]byte(*candidate.ScoreBreakdown), &breakdown); err != nil {
			log.Printf("Malformed score breakdown for candidate %s: %v", candidate.ID, err)
		}
	}

	return c.JSON(fiber.Map{
		"total":       candidate.Score,
		"breakdown":   breakdown,
		"grade":       GradeFor(candidate.Score),
		"computed_at": candidate.ScoreUpdatedAt,
	})
}

// CalculateCandidateScoreAPI recomputes and stores one candidate's score
func CalculateCandidateScoreAPI(c *fiber.Ctx, db *sql.DB) error {
	result, err := RescoreCandidate(db, c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Candidate not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to calculate score",
		})
	}
	return c.JSON(result)
}

// RecalculateAllScoresAPI recomputes every candidate's score
func RecalculateAllScoresAPI(c *fiber.Ctx, db *sql.DB) error {
	updated, total, errs := RescoreAllCandidates(db)
	for _, err := range errs {
		log.Printf("Bulk rescore: %v", err)
	}
	return c.JSON(fiber.Map{
		"updated_count": updated,
		"total_count":   total,
		"failed_count":  len(errs),
	})
}

// SettingsPageHandler renders the scoring-weights admin page
func SettingsPageHandler(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	return c.Render("settings/scoring", fiber.Map{
		"Title":       "Scoring Weights - RecruitFlow",
		"CurrentPage": "settings",
		"FirstName":   user.FirstName,
		"LastName":    user.LastName,
		"user":        user,
	})
}
