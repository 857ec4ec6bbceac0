package questionnaires

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"recruitflow/app/database"
	"recruitflow/app/models"
)

var (
	ErrCandidateNotFound = errors.New("candidate not found")
	ErrTemplateNotFound  = errors.New("template not found")
)

// submitLocks serializes concurrent submissions for the same
// (candidate, template) pair so the delete-then-recreate replace never
// interleaves with itself.
var submitLocks sync.Map

func submissionLock(candidateID, templateID string) *sync.Mutex {
	v, _ := submitLocks.LoadOrStore(candidateID+":"+templateID, &sync.Mutex{})
	return v.(*sync.Mutex)
}

// GetTemplateWithQuestions loads a template with its ordered questions and
// options.
func GetTemplateWithQuestions(db *sql.DB, templateID string) (*models.QuestionnaireTemplate, error) {
	t := &models.QuestionnaireTemplate{}
	query := `
		SELECT id, position_key, title, description, step_number, version, is_active, created_at, updated_at
		FROM questionnaire_templates WHERE id = $1
	`
	err := db.QueryRow(query, templateID).Scan(
		&t.ID, &t.PositionKey, &t.Title, &t.Description, &t.StepNumber,
		&t.Version, &t.IsActive, &t.CreatedAt, &t.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrTemplateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch template: %w", err)
	}

	if err := loadQuestions(db, t); err != nil {
		return nil, err
	}
	return t, nil
}

func loadQuestions(db *sql.DB, t *models.QuestionnaireTemplate) error {
	rows, err := db.Query(`
		SELECT id, template_id, text, type, scoring_mode, points, sort_order, created_at, updated_at
		FROM questions WHERE template_id = $1
		ORDER BY sort_order, created_at
	`, t.ID)
	if err != nil {
		return fmt.Errorf("failed to fetch questions: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]*models.Question)
	for rows.Next() {
		q := &models.Question{}
		if err := rows.Scan(&q.ID, &q.TemplateID, &q.Text, &q.Type, &q.ScoringMode, &q.Points, &q.SortOrder, &q.CreatedAt, &q.UpdatedAt); err != nil {
			return fmt.Errorf("failed to scan question: %w", err)
		}
		t.Questions = append(t.Questions, q)
		byID[q.ID] = q
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if len(t.Questions) == 0 {
		return nil
	}

	optionRows, err := db.Query(`
		SELECT o.id, o.question_id, o.text, o.is_correct, o.points, o.sort_order, o.created_at, o.updated_at
		FROM question_options o
		JOIN questions q ON o.question_id = q.id
		WHERE q.template_id = $1
		ORDER BY o.sort_order, o.created_at
	`, t.ID)
	if err != nil {
		return fmt.Errorf("failed to fetch options: %w", err)
	}
	defer optionRows.Close()

	for optionRows.Next() {
		opt := &models.QuestionOption{}
		if err := optionRows.Scan(&opt.ID, &opt.QuestionID, &opt.Text, &opt.IsCorrect, &opt.Points, &opt.SortOrder, &opt.CreatedAt, &opt.UpdatedAt); err != nil {
			return fmt.Errorf("failed to scan option: %w", err)
		}
		if q, ok := byID[opt.QuestionID]; ok {
			q.Options = append(q.Options, opt)
		}
	}
	return optionRows.Err()
}

// GetTemplatesForPosition lists a position's templates ordered by step.
func GetTemplatesForPosition(db *sql.DB, positionKey string, activeOnly bool) ([]*models.QuestionnaireTemplate, error) {
	query := `
		SELECT id, position_key, title, description, step_number, version, is_active, created_at, updated_at
		FROM questionnaire_templates
		WHERE position_key = $1
	`
	if activeOnly {
		query += " AND is_active"
	}
	query += " ORDER BY step_number, created_at"

	rows, err := db.Query(query, positionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch templates: %w", err)
	}
	defer rows.Close()

	var templates []*models.QuestionnaireTemplate
	for rows.Next() {
		t := &models.QuestionnaireTemplate{}
		if err := rows.Scan(&t.ID, &t.PositionKey, &t.Title, &t.Description, &t.StepNumber, &t.Version, &t.IsActive, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

// SubmitQuestionnaire grades and persists one submission atomically. An
// existing response for the same (candidate, template) pair is replaced, so
// resubmission is idempotent. On success the candidate's pipeline stage is
// advanced according to how many active steps they have completed.
func SubmitQuestionnaire(db *sql.DB, candidateID, templateID string, answers []models.Answer) (*models.QuestionnaireResponse, error) {
	lock := submissionLock(candidateID, templateID)
	lock.Lock()
	defer lock.Unlock()

	candidate, err := database.GetCandidateByID(db, candidateID)
	if err == sql.ErrNoRows {
		return nil, ErrCandidateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch candidate: %w", err)
	}

	template, err := GetTemplateWithQuestions(db, templateID)
	if err != nil {
		return nil, err
	}

	// Grade before touching the database; reference errors abort with no
	// partial writes.
	score, maxScore, err := GradeSubmission(template, answers)
	if err != nil {
		return nil, err
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// Idempotent replace: drop the previous response and its selections.
	if _, err := tx.Exec(`
		DELETE FROM selected_options
		WHERE response_id IN (
			SELECT id FROM questionnaire_responses WHERE candidate_id = $1 AND template_id = $2
		)
	`, candidateID, templateID); err != nil {
		return nil, fmt.Errorf("failed to delete previous selections: %w", err)
	}
	if _, err := tx.Exec(`
		DELETE FROM questionnaire_responses WHERE candidate_id = $1 AND template_id = $2
	`, candidateID, templateID); err != nil {
		return nil, fmt.Errorf("failed to delete previous response: %w", err)
	}

	response := &models.QuestionnaireResponse{
		CandidateID: candidateID,
		TemplateID:  templateID,
		PositionKey: template.PositionKey,
		Score:       score,
		MaxScore:    maxScore,
	}
	err = tx.QueryRow(`
		INSERT INTO questionnaire_responses (candidate_id, template_id, position_key, score, max_score)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, submitted_at, updated_at
	`, candidateID, templateID, template.PositionKey, score, maxScore).
		Scan(&response.ID, &response.SubmittedAt, &response.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert response: %w", err)
	}

	for _, answer := range answers {
		for _, optionID := range answer.SelectedOptionIDs {
			sel := &models.SelectedOption{
				ResponseID: response.ID,
				QuestionID: answer.QuestionID,
				OptionID:   optionID,
			}
			err := tx.QueryRow(`
				INSERT INTO selected_options (response_id, question_id, option_id)
				VALUES ($1, $2, $3)
				RETURNING id, created_at
			`, sel.ResponseID, sel.QuestionID, sel.OptionID).Scan(&sel.ID, &sel.CreatedAt)
			if err != nil {
				return nil, fmt.Errorf("failed to insert selected option: %w", err)
			}
			response.SelectedOptions = append(response.SelectedOptions, sel)
		}
	}

	if err := advancePipeline(tx, candidate, template.PositionKey); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return response, nil
}

// advancePipeline moves the candidate to incomplete or pending depending on
// how many active steps for the position they have responded to. Candidates
// at or beyond reviewing are never moved.
func advancePipeline(tx *sql.Tx, candidate *models.Candidate, positionKey string) error {
	if candidate.Status.IsPastReviewing() {
		return nil
	}

	var totalSteps int
	err := tx.QueryRow(`
		SELECT COUNT(*) FROM questionnaire_templates WHERE position_key = $1 AND is_active
	`, positionKey).Scan(&totalSteps)
	if err != nil {
		return fmt.Errorf("failed to count active steps: %w", err)
	}

	var completedSteps int
	err = tx.QueryRow(`
		SELECT COUNT(DISTINCT template_id) FROM questionnaire_responses
		WHERE candidate_id = $1 AND position_key = $2
	`, candidate.ID, positionKey).Scan(&completedSteps)
	if err != nil {
		return fmt.Errorf("failed to count completed steps: %w", err)
	}

	target := models.StatusPending
	if totalSteps > 0 && completedSteps < totalSteps {
		target = models.StatusIncomplete
	}
	if candidate.Status == target {
		return nil
	}

	if _, err := tx.Exec(`UPDATE candidates SET status = $1, updated_at = NOW() WHERE id = $2`, target, candidate.ID); err != nil {
		return fmt.Errorf("failed to update candidate status: %w", err)
	}
	candidate.Status = target
	return nil
}

// GetResponsesForCandidate lists a candidate's graded responses.
func GetResponsesForCandidate(db *sql.DB, candidateID string) ([]*models.QuestionnaireResponse, error) {
	rows, err := db.Query(`
		SELECT id, candidate_id, template_id, position_key, score, max_score, submitted_at, updated_at
		FROM questionnaire_responses
		WHERE candidate_id = $1
		ORDER BY submitted_at DESC
	`, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch responses: %w", err)
	}
	defer rows.Close()

	var responses []*models.QuestionnaireResponse
	for rows.Next() {
		r := &models.QuestionnaireResponse{}
		if err := rows.Scan(&r.ID, &r.CandidateID, &r.TemplateID, &r.PositionKey, &r.Score, &r.MaxScore, &r.SubmittedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan response: %w", err)
		}
		responses = append(responses, r)
	}
	return responses, rows.Err()
}
