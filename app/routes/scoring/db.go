package scoring

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"recruitflow/app/database"
	"recruitflow/app/models"
)

const weightsColumns = `id, years_of_experience, idle_time, worked_here_before,
	has_relatives_in_company, referred_by,
	education_level, courses, skills, certifications,
	immediate_availability, own_transportation, travel_availability, height_work,
	average_rating, is_active, created_at, created_by`

func scanWeights(row *sql.Row) (*models.ScoringWeights, error) {
	w := &models.ScoringWeights{}
	var createdBy sql.NullString
	err := row.Scan(
		&w.ID, &w.YearsOfExperience, &w.IdleTime, &w.WorkedHereBefore,
		&w.HasRelativesInCompany, &w.ReferredBy,
		&w.EducationLevel, &w.Courses, &w.Skills, &w.Certifications,
		&w.ImmediateAvailability, &w.OwnTransportation, &w.TravelAvailability, &w.HeightWork,
		&w.AverageRating, &w.IsActive, &w.CreatedAt, &createdBy,
	)
	if err != nil {
		return nil, err
	}
	if createdBy.Valid {
		w.CreatedBy = &createdBy.String
	}
	return w, nil
}

// loadActiveWeights fetches the active configuration, creating the system
// defaults when none exists yet.
func loadActiveWeights(db *sql.DB) (*models.ScoringWeights, error) {
	query := fmt.Sprintf(`SELECT %s FROM scoring_weights WHERE is_active ORDER BY created_at DESC LIMIT 1`, weightsColumns)
	weights, err := scanWeights(db.QueryRow(query))
	if err == sql.ErrNoRows {
		defaults := models.DefaultScoringWeights()
		if err := insertActiveWeights(db, defaults); err != nil {
			return nil, err
		}
		return defaults, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load scoring weights: %w", err)
	}
	return weights, nil
}

// insertActiveWeights writes a new configuration version and deactivates all
// previous ones in the same transaction, preserving the single-active
// invariant under concurrent writers.
func insertActiveWeights(db *sql.DB, w *models.ScoringWeights) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`UPDATE scoring_weights SET is_active = false WHERE is_active`); err != nil {
		return fmt.Errorf("failed to deactivate previous weights: %w", err)
	}

	query := `
		INSERT INTO scoring_weights (
			years_of_experience, idle_time, worked_here_before,
			has_relatives_in_company, referred_by,
			education_level, courses, skills, certifications,
			immediate_availability, own_transportation, travel_availability, height_work,
			average_rating, is_active, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, true, $15)
		RETURNING id, created_at
	`
	err = tx.QueryRow(query,
		w.YearsOfExperience, w.IdleTime, w.WorkedHereBefore,
		w.HasRelativesInCompany, w.ReferredBy,
		w.EducationLevel, w.Courses, w.Skills, w.Certifications,
		w.ImmediateAvailability, w.OwnTransportation, w.TravelAvailability, w.HeightWork,
		w.AverageRating, w.CreatedBy,
	).Scan(&w.ID, &w.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert scoring weights: %w", err)
	}
	w.IsActive = true

	return tx.Commit()
}

// RescoreCandidate recomputes and persists one candidate's profile score.
func RescoreCandidate(db *sql.DB, candidateID string) (*models.ScoreResult, error) {
	candidate, err := database.GetCandidateByID(db, candidateID)
	if err != nil {
		return nil, err
	}

	experiences, err := database.GetCandidateExperiences(db, candidateID)
	if err != nil {
		return nil, err
	}

	avgRating, err := database.GetCompletedInterviewAverageRating(db, candidateID)
	if err != nil {
		return nil, err
	}

	weights, err := GetWeights(db)
	if err != nil {
		return nil, err
	}

	result := ScoreCandidate(candidate, experiences, avgRating, weights, time.Now())

	breakdownJSON, err := json.Marshal(result.Breakdown)
	if err != nil {
		return nil, fmt.Errorf("failed to encode score breakdown: %w", err)
	}

	if err := database.SaveCandidateScore(db, candidateID, result, string(breakdownJSON)); err != nil {
		return nil, err
	}
	return result, nil
}

// RescoreAllCandidates recomputes every candidate's score. A failure on one
// candidate is logged by the caller and does not stop the rest.
func RescoreAllCandidates(db *sql.DB) (updated int, total int, errs []error) {
	ids, err := database.GetCandidateIDs(db)
	if err != nil {
		return 0, 0, []error{err}
	}

	for _, id := range ids {
		if _, err := RescoreCandidate(db, id); err != nil {
			errs = append(errs, fmt.Errorf("candidate %s: %w", id, err))
			continue
		}
		updated++
	}
	return updated, len(ids), errs
}
