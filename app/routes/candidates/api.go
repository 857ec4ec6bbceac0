package candidates

import (
	"database/sql"
	"errors"
	"log"
	"strings"

	"recruitflow/app/database"
	"recruitflow/app/models"
	"recruitflow/app/routes/scoring"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// CreateCandidateAPI registers a candidate from the intake form, scores the
// profile and hands back an access code for the questionnaire steps
func CreateCandidateAPI(c *fiber.Ctx, db *sql.DB) error {
	var candidate models.Candidate
	if err := c.BodyParser(&candidate); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	candidate.FullName = strings.TrimSpace(candidate.FullName)
	if candidate.FullName == "" || candidate.PositionApplied == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "full_name and position_applied are required",
		})
	}
	if candidate.YearsOfExperience < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "years_of_experience cannot be negative",
		})
	}

	candidate.Status = models.StatusIncomplete
	candidate.AccessCode = uuid.New().String()

	if err := CreateCandidate(db, &candidate); err != nil {
		log.Printf("Failed to create candidate: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create candidate",
		})
	}

	// Score the fresh profile; a failure here is logged, not fatal.
	if result, err := scoring.RescoreCandidate(db, candidate.ID); err != nil {
		log.Printf("Failed to score new candidate %s: %v", candidate.ID, err)
	} else {
		candidate.Score = result.Total
		candidate.ScoreUpdatedAt = &result.ComputedAt
	}

	return c.Status(fiber.StatusCreated).JSON(&candidate)
}

// GetCandidatesAPI lists candidates with optional search, status and
// position filters
func GetCandidatesAPI(c *fiber.Ctx, db *sql.DB) error {
	filters := database.CandidateFilters{
		Search:   c.Query("search"),
		Status:   c.Query("status"),
		Position: c.Query("position"),
		Limit:    c.QueryInt("limit", 50),
		Offset:   c.QueryInt("offset", 0),
	}

	candidates, err := database.GetCandidates(db, filters)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch candidates",
		})
	}
	return c.JSON(fiber.Map{
		"candidates": candidates,
		"count":      len(candidates),
	})
}

// GetCandidateAPI returns one candidate together with their employment
// history
func GetCandidateAPI(c *fiber.Ctx, db *sql.DB) error {
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

	experiences, err := database.GetCandidateExperiences(db, candidate.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch experiences",
		})
	}
	candidate.Experiences = experiences

	return c.JSON(candidate)
}

// UpdateCandidateAPI edits profile fields and rescores the candidate
func UpdateCandidateAPI(c *fiber.Ctx, db *sql.DB) error {
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

	if err := c.BodyParser(candidate); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if candidate.FullName == "" || candidate.PositionApplied == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "full_name and position_applied are required",
		})
	}

	if err := UpdateCandidate(db, candidate); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Candidate not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update candidate",
		})
	}

	if result, err := scoring.RescoreCandidate(db, candidate.ID); err != nil {
		log.Printf("Failed to rescore candidate %s: %v", candidate.ID, err)
	} else {
		candidate.Score = result.Total
		candidate.ScoreUpdatedAt = &result.ComputedAt
	}

	return c.JSON(candidate)
}

// DeleteCandidateAPI soft-deletes a candidate
func DeleteCandidateAPI(c *fiber.Ctx, db *sql.DB) error {
	if err := SoftDeleteCandidate(db, c.Params("id")); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Candidate not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete candidate",
		})
	}
	return c.JSON(fiber.Map{"status": "deleted"})
}

// UpdateCandidateStatusAPI moves a candidate to a new pipeline stage
func UpdateCandidateStatusAPI(c *fiber.Ctx, db *sql.DB) error {
	var request struct {
		Status models.CandidateStatus `json:"status"`
	}
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	switch request.Status {
	case models.StatusIncomplete, models.StatusPending, models.StatusReviewing,
		models.StatusShortlisted, models.StatusInterviewed, models.StatusAccepted, models.StatusRejected:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid status",
		})
	}

	candidateID := c.Params("id")
	if _, err := database.GetCandidateByID(db, candidateID); err != nil {
		if err == sql.ErrNoRows {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Candidate not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch candidate",
		})
	}

	if err := database.UpdateCandidateStatus(db, candidateID, request.Status); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update status",
		})
	}
	return c.JSON(fiber.Map{"status": request.Status})
}

// AddExperienceAPI adds one employment interval and rescores the candidate
func AddExperienceAPI(c *fiber.Ctx, db *sql.DB) error {
	var exp models.ProfessionalExperience
	if err := c.BodyParser(&exp); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	exp.CandidateID = c.Params("id")
	if exp.Company == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "company is required",
		})
	}
	if exp.StartDate != nil && exp.EndDate != nil && exp.EndDate.Before(*exp.StartDate) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "end_date cannot be before start_date",
		})
	}

	if _, err := database.GetCandidateByID(db, exp.CandidateID); err != nil {
		if err == sql.ErrNoRows {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Candidate not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch candidate",
		})
	}

	if err := database.AddCandidateExperience(db, &exp); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to add experience",
		})
	}

	if _, err := scoring.RescoreCandidate(db, exp.CandidateID); err != nil {
		log.Printf("Failed to rescore candidate %s: %v", exp.CandidateID, err)
	}

	return c.Status(fiber.StatusCreated).JSON(&exp)
}

// GetCandidateByAccessCodeAPI resolves an intake access code, used by the
// questionnaire frontend before submitting answers
func GetCandidateByAccessCodeAPI(c *fiber.Ctx, db *sql.DB) error {
	candidate, err := database.GetCandidateByAccessCode(db, c.Params("code"))
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
	return c.JSON(fiber.Map{
		"id":               candidate.ID,
		"full_name":        candidate.FullName,
		"position_applied": candidate.PositionApplied,
		"status":           candidate.Status,
	})
}
