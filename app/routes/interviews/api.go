package interviews

import (
	"database/sql"
	"errors"
	"log"

	"recruitflow/app/database"
	"recruitflow/app/models"
	"recruitflow/app/routes/scoring"

	"github.com/gofiber/fiber/v2"
)

// ScheduleInterviewAPI creates an interview and moves the candidate into the
// shortlisted stage
func ScheduleInterviewAPI(c *fiber.Ctx, db *sql.DB) error {
	var interview models.Interview
	if err := c.BodyParser(&interview); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	interview.CandidateID = c.Params("id")
	if interview.ScheduledAt.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "scheduled_at is required",
		})
	}
	interview.Status = models.InterviewScheduled
	interview.Rating = nil

	candidate, err := database.GetCandidateByID(db, interview.CandidateID)
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

	if err := CreateInterview(db, &interview); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to schedule interview",
		})
	}

	// Scheduling pulls pending and reviewing candidates forward.
	if candidate.Status == models.StatusPending || candidate.Status == models.StatusReviewing {
		if err := database.UpdateCandidateStatus(db, candidate.ID, models.StatusShortlisted); err != nil {
			log.Printf("Failed to shortlist candidate %s: %v", candidate.ID, err)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(&interview)
}

// GetCandidateInterviewsAPI lists a candidate's interviews
func GetCandidateInterviewsAPI(c *fiber.Ctx, db *sql.DB) error {
	interviews, err := GetInterviewsForCandidate(db, c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch interviews",
		})
	}
	return c.JSON(interviews)
}

// GetUpcomingInterviewsAPI lists scheduled interviews across the pipeline
func GetUpcomingInterviewsAPI(c *fiber.Ctx, db *sql.DB) error {
	interviews, err := GetUpcomingInterviews(db, c.QueryInt("limit", 50))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch interviews",
		})
	}
	return c.JSON(interviews)
}

// UpdateInterviewAPI edits an interview; completing one with a rating moves
// the candidate to interviewed and refreshes their score
func UpdateInterviewAPI(c *fiber.Ctx, db *sql.DB) error {
	interview, err := GetInterviewByID(db, c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Interview not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch interview",
		})
	}
	wasCompleted := interview.Status == models.InterviewCompleted

	if err := c.BodyParser(interview); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	switch interview.Status {
	case models.InterviewScheduled, models.InterviewCompleted, models.InterviewCancelled, models.InterviewNoShow:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid status",
		})
	}
	if interview.Rating != nil && (*interview.Rating < 1 || *interview.Rating > 5) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "rating must be between 1 and 5",
		})
	}
	if interview.Status == models.InterviewCompleted && interview.Rating == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "a completed interview requires a rating",
		})
	}

	if err := UpdateInterview(db, interview); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Interview not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update interview",
		})
	}

	if interview.Status == models.InterviewCompleted {
		if !wasCompleted {
			candidate, err := database.GetCandidateByID(db, interview.CandidateID)
			if err == nil && candidate.Status == models.StatusShortlisted {
				if err := database.UpdateCandidateStatus(db, candidate.ID, models.StatusInterviewed); err != nil {
					log.Printf("Failed to advance candidate %s: %v", candidate.ID, err)
				}
			}
		}
		// Ratings feed the interview-performance category.
		if _, err := scoring.RescoreCandidate(db, interview.CandidateID); err != nil {
			log.Printf("Failed to rescore candidate %s: %v", interview.CandidateID, err)
		}
	}

	return c.JSON(interview)
}

// DeleteInterviewAPI removes an interview and refreshes the candidate's
// score when a completed rating is dropped
func DeleteInterviewAPI(c *fiber.Ctx, db *sql.DB) error {
	interview, err := GetInterviewByID(db, c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Interview not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch interview",
		})
	}

	if err := DeleteInterview(db, interview.ID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete interview",
		})
	}

	if interview.Status == models.InterviewCompleted {
		if _, err := scoring.RescoreCandidate(db, interview.CandidateID); err != nil {
			log.Printf("Failed to rescore candidate %s: %v", interview.CandidateID, err)
		}
	}

	return c.JSON(fiber.Map{"status": "deleted"})
}
