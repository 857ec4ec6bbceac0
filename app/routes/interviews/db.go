package interviews

import (
	"database/sql"
	"fmt"

	"recruitflow/app/models"
)

const interviewColumns = `id, candidate_id, scheduled_at, location, interviewer, status, rating, notes, created_at, updated_at`

func scanInterview(row interface{ Scan(...interface{}) error }) (*models.Interview, error) {
	i := &models.Interview{}
	var rating sql.NullInt64

	err := row.Scan(
		&i.ID, &i.CandidateID, &i.ScheduledAt, &i.Location, &i.Interviewer,
		&i.Status, &rating, &i.Notes, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if rating.Valid {
		r := int(rating.Int64)
		i.Rating = &r
	}
	return i, nil
}

// GetInterviewByID fetches a single interview
func GetInterviewByID(db *sql.DB, interviewID string) (*models.Interview, error) {
	query := fmt.Sprintf(`SELECT %s FROM interviews WHERE id = $1`, interviewColumns)
	return scanInterview(db.QueryRow(query, interviewID))
}

// GetInterviewsForCandidate fetches a candidate's interviews, soonest first
func GetInterviewsForCandidate(db *sql.DB, candidateID string) ([]*models.Interview, error) {
	query := fmt.Sprintf(`SELECT %s FROM interviews WHERE candidate_id = $1 ORDER BY scheduled_at`, interviewColumns)
	rows, err := db.Query(query, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch interviews: %w", err)
	}
	defer rows.Close()

	var interviews []*models.Interview
	for rows.Next() {
		i, err := scanInterview(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan interview: %w", err)
		}
		interviews = append(interviews, i)
	}
	return interviews, rows.Err()
}

// GetUpcomingInterviews fetches scheduled interviews across all candidates,
// soonest first
func GetUpcomingInterviews(db *sql.DB, limit int) ([]*models.Interview, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM interviews
		WHERE status = 'scheduled' AND scheduled_at >= NOW()
		ORDER BY scheduled_at
		LIMIT $1
	`, interviewColumns)
	rows, err := db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch upcoming interviews: %w", err)
	}
	defer rows.Close()

	var interviews []*models.Interview
	for rows.Next() {
		i, err := scanInterview(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan interview: %w", err)
		}
		interviews = append(interviews, i)
	}
	return interviews, rows.Err()
}

// CreateInterview inserts a scheduled interview
func CreateInterview(db *sql.DB, i *models.Interview) error {
	query := `
		INSERT INTO interviews (candidate_id, scheduled_at, location, interviewer, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	err := db.QueryRow(query, i.CandidateID, i.ScheduledAt, i.Location, i.Interviewer, i.Status, i.Notes).
		Scan(&i.ID, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert interview: %w", err)
	}
	return nil
}

// UpdateInterview saves interview details, status and rating
func UpdateInterview(db *sql.DB, i *models.Interview) error {
	query := `
		UPDATE interviews
		SET scheduled_at = $1, location = $2, interviewer = $3, status = $4, rating = $5, notes = $6, updated_at = NOW()
		WHERE id = $7
	`
	var rating interface{}
	if i.Rating != nil {
		rating = *i.Rating
	}
	result, err := db.Exec(query, i.ScheduledAt, i.Location, i.Interviewer, i.Status, rating, i.Notes, i.ID)
	if err != nil {
		return fmt.Errorf("failed to update interview: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteInterview removes an interview
func DeleteInterview(db *sql.DB, interviewID string) error {
	result, err := db.Exec(`DELETE FROM interviews WHERE id = $1`, interviewID)
	if err != nil {
		return fmt.Errorf("failed to delete interview: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
