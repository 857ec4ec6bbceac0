package candidates

import (
	"database/sql"
	"fmt"

	"recruitflow/app/models"
)

// CreateCandidate inserts a new candidate row and fills in the generated
// fields
func CreateCandidate(db *sql.DB, c *models.Candidate) error {
	query := `
		INSERT INTO candidates (
			full_name, email, phone, position_applied,
			years_of_experience, worked_here_before, has_relatives_in_company, referred_by,
			highest_education, additional_courses, skills, certifications,
			availability_start, has_own_transportation, travel_availability, height_work,
			status, access_code
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING id, created_at, updated_at
	`
	err := db.QueryRow(query,
		c.FullName, c.Email, c.Phone, c.PositionApplied,
		c.YearsOfExperience, c.WorkedHereBefore, c.HasRelativesInCompany, c.ReferredBy,
		c.HighestEducation, c.AdditionalCourses, c.Skills, c.Certifications,
		c.AvailabilityStart, c.HasOwnTransportation, c.TravelAvailability, c.HeightWork,
		c.Status, c.AccessCode,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert candidate: %w", err)
	}
	return nil
}

// UpdateCandidate saves the editable profile fields of an existing candidate
func UpdateCandidate(db *sql.DB, c *models.Candidate) error {
	query := `
		UPDATE candidates SET
			full_name = $1, email = $2, phone = $3, position_applied = $4,
			years_of_experience = $5, worked_here_before = $6, has_relatives_in_company = $7, referred_by = $8,
			highest_education = $9, additional_courses = $10, skills = $11, certifications = $12,
			availability_start = $13, has_own_transportation = $14, travel_availability = $15, height_work = $16,
			updated_at = NOW()
		WHERE id = $17 AND deleted_at IS NULL
	`
	result, err := db.Exec(query,
		c.FullName, c.Email, c.Phone, c.PositionApplied,
		c.YearsOfExperience, c.WorkedHereBefore, c.HasRelativesInCompany, c.ReferredBy,
		c.HighestEducation, c.AdditionalCourses, c.Skills, c.Certifications,
		c.AvailabilityStart, c.HasOwnTransportation, c.TravelAvailability, c.HeightWork,
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update candidate: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SoftDeleteCandidate marks a candidate as deleted without dropping their
// history
func SoftDeleteCandidate(db *sql.DB, candidateID string) error {
	result, err := db.Exec(
		`UPDATE candidates SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`,
		candidateID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete candidate: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CountCandidatesByStatus returns the number of candidates at each pipeline
// stage, for the dashboard
func CountCandidatesByStatus(db *sql.DB) (map[string]int, error) {
	rows, err := db.Query(`
		SELECT status, COUNT(*)
		FROM candidates
		WHERE deleted_at IS NULL
		GROUP BY status
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to count candidates: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}
