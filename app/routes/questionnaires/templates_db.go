package questionnaires

import (
	"database/sql"
	"fmt"

	"recruitflow/app/models"
)

// CreateTemplate inserts a new questionnaire template
func CreateTemplate(db *sql.DB, t *models.QuestionnaireTemplate) error {
	query := `
		INSERT INTO questionnaire_templates (position_key, title, description, step_number, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, version, created_at, updated_at
	`
	err := db.QueryRow(query, t.PositionKey, t.Title, t.Description, t.StepNumber, t.IsActive).
		Scan(&t.ID, &t.Version, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert template: %w", err)
	}
	return nil
}

// SetTemplateActive toggles a template's active flag. Multiple templates may
// be active per position; each active one is a questionnaire step.
func SetTemplateActive(db *sql.DB, templateID string, active bool) error {
	result, err := db.Exec(`
		UPDATE questionnaire_templates
		SET is_active = $1, version = version + 1, updated_at = NOW()
		WHERE id = $2
	`, active, templateID)
	if err != nil {
		return fmt.Errorf("failed to update template: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrTemplateNotFound
	}
	return nil
}

// UpdateTemplateStep changes a template's position in the step ordering
func UpdateTemplateStep(db *sql.DB, templateID string, stepNumber int) error {
	result, err := db.Exec(`
		UPDATE questionnaire_templates SET step_number = $1, updated_at = NOW() WHERE id = $2
	`, stepNumber, templateID)
	if err != nil {
		return fmt.Errorf("failed to update step number: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrTemplateNotFound
	}
	return nil
}

// CreateQuestion inserts a question into a template
func CreateQuestion(db *sql.DB, q *models.Question) error {
	query := `
		INSERT INTO questions (template_id, text, type, scoring_mode, points, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	err := db.QueryRow(query, q.TemplateID, q.Text, q.Type, q.ScoringMode, q.Points, q.SortOrder).
		Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert question: %w", err)
	}
	return nil
}

// UpdateQuestion changes a question's definition. Callers fire
// OnQuestionChanged afterwards so stored responses are regraded.
func UpdateQuestion(db *sql.DB, q *models.Question) error {
	result, err := db.Exec(`
		UPDATE questions
		SET text = $1, type = $2, scoring_mode = $3, points = $4, sort_order = $5, updated_at = NOW()
		WHERE id = $6
	`, q.Text, q.Type, q.ScoringMode, q.Points, q.SortOrder, q.ID)
	if err != nil {
		return fmt.Errorf("failed to update question: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// GetQuestion fetches one question row
func GetQuestion(db *sql.DB, questionID string) (*models.Question, error) {
	q := &models.Question{}
	err := db.QueryRow(`
		SELECT id, template_id, text, type, scoring_mode, points, sort_order, created_at, updated_at
		FROM questions WHERE id = $1
	`, questionID).Scan(&q.ID, &q.TemplateID, &q.Text, &q.Type, &q.ScoringMode, &q.Points, &q.SortOrder, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return q, nil
}

// DeleteQuestion removes a question and its options
func DeleteQuestion(db *sql.DB, questionID string) (templateID string, err error) {
	err = db.QueryRow(`
		DELETE FROM questions WHERE id = $1 RETURNING template_id
	`, questionID).Scan(&templateID)
	if err == sql.ErrNoRows {
		return "", sql.ErrNoRows
	}
	if err != nil {
		return "", fmt.Errorf("failed to delete question: %w", err)
	}
	return templateID, nil
}

// CreateOption inserts an option for a question
func CreateOption(db *sql.DB, opt *models.QuestionOption) error {
	query := `
		INSERT INTO question_options (question_id, text, is_correct, points, sort_order)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	err := db.QueryRow(query, opt.QuestionID, opt.Text, opt.IsCorrect, opt.Points, opt.SortOrder).
		Scan(&opt.ID, &opt.CreatedAt, &opt.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert option: %w", err)
	}
	return nil
}

// UpdateOption changes an option's text, correctness or points. Callers fire
// OnQuestionChanged for the owning question afterwards.
// GetOption fetches one option row
func GetOption(db *sql.DB, optionID string) (*models.QuestionOption, error) {
	opt := &models.QuestionOption{}
	err := db.QueryRow(`
		SELECT id, question_id, text, is_correct, points, sort_order, created_at, updated_at
		FROM question_options WHERE id = $1
	`, optionID).Scan(&opt.ID, &opt.QuestionID, &opt.Text, &opt.IsCorrect, &opt.Points, &opt.SortOrder, &opt.CreatedAt, &opt.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return opt, nil
}

func UpdateOption(db *sql.DB, opt *models.QuestionOption) error {
	err := db.QueryRow(`
		UPDATE question_options
		SET text = $1, is_correct = $2, points = $3, sort_order = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING question_id
	`, opt.Text, opt.IsCorrect, opt.Points, opt.SortOrder, opt.ID).Scan(&opt.QuestionID)
	if err == sql.ErrNoRows {
		return sql.ErrNoRows
	}
	if err != nil {
		return fmt.Errorf("failed to update option: %w", err)
	}
	return nil
}
