package database

import (
	"database/sql"
	"fmt"

	"recruitflow/app/models"
)

// CandidateFilters represents filtering options for the candidates list
type CandidateFilters struct {
	Search   string
	Status   string
	Position string
	Limit    int
	Offset   int
}

const candidateColumns = `id, full_name, email, phone, position_applied,
	years_of_experience, worked_here_before, has_relatives_in_company, referred_by,
	highest_education, additional_courses, skills, certifications,
	availability_start, has_own_transportation, travel_availability, height_work,
	status, score, score_breakdown, score_updated_at, access_code,
	created_at, updated_at, deleted_at`

func scanCandidate(row interface{ Scan(...interface{}) error }) (*models.Candidate, error) {
	c := &models.Candidate{}
	var breakdown sql.NullString
	var scoreUpdatedAt, deletedAt sql.NullTime
	var accessCode sql.NullString

	err := row.Scan(
		&c.ID, &c.FullName, &c.Email, &c.Phone, &c.PositionApplied,
		&c.YearsOfExperience, &c.WorkedHereBefore, &c.HasRelativesInCompany, &c.ReferredBy,
		&c.HighestEducation, &c.AdditionalCourses, &c.Skills, &c.Certifications,
		&c.AvailabilityStart, &c.HasOwnTransportation, &c.TravelAvailability, &c.HeightWork,
		&c.Status, &c.Score, &breakdown, &scoreUpdatedAt, &accessCode,
		&c.CreatedAt, &c.UpdatedAt, &deletedAt,
	)
	if err != nil {
		return nil, err
	}

	if breakdown.Valid {
		c.ScoreBreakdown = &breakdown.String
	}
	if scoreUpdatedAt.Valid {
		c.ScoreUpdatedAt = &scoreUpdatedAt.Time
	}
	if accessCode.Valid {
		c.AccessCode = accessCode.String
	}
	if deletedAt.Valid {
		c.DeletedAt = &deletedAt.Time
	}
	return c, nil
}

// GetCandidateByID fetches a single candidate
func GetCandidateByID(db *sql.DB, candidateID string) (*models.Candidate, error) {
	query := fmt.Sprintf(`SELECT %s FROM candidates WHERE id = $1 AND deleted_at IS NULL`, candidateColumns)
	return scanCandidate(db.QueryRow(query, candidateID))
}

// GetCandidateByAccessCode looks a candidate up by the code handed out on
// intake, used by the public questionnaire flow
func GetCandidateByAccessCode(db *sql.DB, accessCode string) (*models.Candidate, error) {
	query := fmt.Sprintf(`SELECT %s FROM candidates WHERE access_code = $1 AND deleted_at IS NULL`, candidateColumns)
	return scanCandidate(db.QueryRow(query, accessCode))
}

// GetCandidates fetches candidates matching the filters, newest first
func GetCandidates(db *sql.DB, filters CandidateFilters) ([]*models.Candidate, error) {
	query := fmt.Sprintf(`SELECT %s FROM candidates WHERE deleted_at IS NULL`, candidateColumns)
	args := []interface{}{}

	if filters.Status != "" {
		args = append(args, filters.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filters.Position != "" {
		args = append(args, filters.Position)
		query += fmt.Sprintf(" AND position_applied = $%d", len(args))
	}
	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		query += fmt.Sprintf(" AND (full_name ILIKE $%d OR email ILIKE $%d)", len(args), len(args))
	}

	query += " ORDER BY created_at DESC"
	if filters.Limit > 0 {
		args = append(args, filters.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filters.Offset > 0 {
		args = append(args, filters.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch candidates: %w", err)
	}
	defer rows.Close()

	var candidates []*models.Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

// GetCandidateIDs returns the ids of all non-deleted candidates, for bulk rescoring
func GetCandidateIDs(db *sql.DB) ([]string, error) {
	rows, err := db.Query(`SELECT id FROM candidates WHERE deleted_at IS NULL ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch candidate ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// GetCandidateExperiences fetches a candidate's employment history, most recent first
func GetCandidateExperiences(db *sql.DB, candidateID string) ([]*models.ProfessionalExperience, error) {
	query := `
		SELECT id, candidate_id, company, position, start_date, end_date, created_at
		FROM professional_experiences
		WHERE candidate_id = $1
		ORDER BY end_date DESC NULLS FIRST, start_date DESC
	`
	rows, err := db.Query(query, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch experiences: %w", err)
	}
	defer rows.Close()

	var experiences []*models.ProfessionalExperience
	for rows.Next() {
		exp := &models.ProfessionalExperience{}
		var startDate, endDate sql.NullTime
		if err := rows.Scan(&exp.ID, &exp.CandidateID, &exp.Company, &exp.Position, &startDate, &endDate, &exp.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan experience: %w", err)
		}
		if startDate.Valid {
			exp.StartDate = &startDate.Time
		}
		if endDate.Valid {
			exp.EndDate = &endDate.Time
		}
		experiences = append(experiences, exp)
	}
	return experiences, rows.Err()
}

// AddCandidateExperience inserts one employment interval
func AddCandidateExperience(db *sql.DB, exp *models.ProfessionalExperience) error {
	query := `
		INSERT INTO professional_experiences (candidate_id, company, position, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := db.QueryRow(query, exp.CandidateID, exp.Company, exp.Position, exp.StartDate, exp.EndDate).
		Scan(&exp.ID, &exp.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert experience: %w", err)
	}
	return nil
}

// GetCompletedInterviewAverageRating returns the average rating across the
// candidate's completed interviews, or nil when none have a rating.
func GetCompletedInterviewAverageRating(db *sql.DB, candidateID string) (*float64, error) {
	var avg sql.NullFloat64
	query := `
		SELECT AVG(rating)
		FROM interviews
		WHERE candidate_id = $1 AND status = 'completed' AND rating IS NOT NULL
	`
	if err := db.QueryRow(query, candidateID).Scan(&avg); err != nil {
		return nil, fmt.Errorf("failed to fetch interview ratings: %w", err)
	}
	if !avg.Valid {
		return nil, nil
	}
	return &avg.Float64, nil
}

// SaveCandidateScore persists a computed score, breakdown and timestamp
func SaveCandidateScore(db *sql.DB, candidateID string, result *models.ScoreResult, breakdownJSON string) error {
	query := `
		UPDATE candidates
		SET score = $1, score_breakdown = $2, score_updated_at = $3, updated_at = NOW()
		WHERE id = $4
	`
	if _, err := db.Exec(query, result.Total, breakdownJSON, result.ComputedAt, candidateID); err != nil {
		return fmt.Errorf("failed to save candidate score: %w", err)
	}
	return nil
}

// UpdateCandidateStatus moves a candidate to a new pipeline stage
func UpdateCandidateStatus(db *sql.DB, candidateID string, status models.CandidateStatus) error {
	query := `UPDATE candidates SET status = $1, updated_at = NOW() WHERE id = $2`
	if _, err := db.Exec(query, status, candidateID); err != nil {
		return fmt.Errorf("failed to update candidate status: %w", err)
	}
	return nil
}
