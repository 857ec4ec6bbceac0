package questionnaires

import (
	"database/sql"
	"fmt"
	"log"

	"recruitflow/app/models"
)

// questionEvents carries the ids of questions whose definition changed.
// Buffered so admin CRUD handlers never block on the worker.
var questionEvents = make(chan string, 64)

// OnQuestionChanged signals that a question's points, scoring mode or option
// points changed and every response against its template must be regraded.
// Fire-and-forget.
func OnQuestionChanged(questionID string) {
	select {
	case questionEvents <- questionID:
	default:
		log.Printf("Recalculation queue full, dropping question event %s", questionID)
	}
}

// StartRecalcWorker consumes question-changed events and regrades the
// affected templates' responses.
func StartRecalcWorker(db *sql.DB) {
	go func() {
		log.Println("Recalculation worker started...")
		for questionID := range questionEvents {
			var templateID string
			err := db.QueryRow(`SELECT template_id FROM questions WHERE id = $1`, questionID).Scan(&templateID)
			if err == sql.ErrNoRows {
				continue // question was deleted since the event fired
			}
			if err != nil {
				log.Printf("Recalculation: failed to resolve question %s: %v", questionID, err)
				continue
			}

			updated, errs := RecalculateTemplateResponses(db, templateID)
			for _, err := range errs {
				log.Printf("Recalculation: %v", err)
			}
			if updated > 0 || len(errs) > 0 {
				log.Printf("Recalculated %d responses for template %s (%d failed)", updated, templateID, len(errs))
			}
		}
	}()
}

// RecalculateTemplateResponses regrades every stored response against the
// template's current questions and options, from the selections already
// recorded. Each response is updated in its own transaction; one failure
// does not stop the remaining responses. Running this twice with no
// intervening change produces identical scores.
func RecalculateTemplateResponses(db *sql.DB, templateID string) (updated int, errs []error) {
	template, err := GetTemplateWithQuestions(db, templateID)
	if err != nil {
		return 0, []error{err}
	}

	rows, err := db.Query(`SELECT id FROM questionnaire_responses WHERE template_id = $1`, templateID)
	if err != nil {
		return 0, []error{fmt.Errorf("failed to list responses: %w", err)}
	}
	defer rows.Close()

	var responseIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return 0, []error{err}
		}
		responseIDs = append(responseIDs, id)
	}
	if err := rows.Err(); err != nil {
		return 0, []error{err}
	}

	for _, responseID := range responseIDs {
		if err := recalculateResponse(db, template, responseID); err != nil {
			errs = append(errs, fmt.Errorf("response %s: %w", responseID, err))
			continue
		}
		updated++
	}
	return updated, errs
}

// recalculateResponse regrades one response from its stored selections and
// overwrites its score and max score.
func recalculateResponse(db *sql.DB, template *models.QuestionnaireTemplate, responseID string) error {
	rows, err := db.Query(`
		SELECT question_id, option_id FROM selected_options WHERE response_id = $1
	`, responseID)
	if err != nil {
		return fmt.Errorf("failed to fetch selections: %w", err)
	}
	defer rows.Close()

	byQuestion := make(map[string][]string)
	var order []string
	for rows.Next() {
		var questionID, optionID string
		if err := rows.Scan(&questionID, &optionID); err != nil {
			return err
		}
		if _, seen := byQuestion[questionID]; !seen {
			order = append(order, questionID)
		}
		byQuestion[questionID] = append(byQuestion[questionID], optionID)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	answers := make([]models.Answer, 0, len(order))
	for _, questionID := range order {
		answers = append(answers, models.Answer{
			QuestionID:        questionID,
			SelectedOptionIDs: byQuestion[questionID],
		})
	}

	// Selections referencing questions or options that no longer exist on
	// the template would fail reference validation; drop them the same way
	// a deleted question drops its contribution to the score.
	answers = pruneStaleAnswers(template, answers)

	score, maxScore, err := GradeSubmission(template, answers)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		UPDATE questionnaire_responses
		SET score = $1, max_score = $2, updated_at = NOW()
		WHERE id = $3
	`, score, maxScore, responseID)
	if err != nil {
		return fmt.Errorf("failed to update response: %w", err)
	}
	return nil
}

// pruneStaleAnswers removes selections whose question or option was deleted
// from the template after the response was recorded.
func pruneStaleAnswers(template *models.QuestionnaireTemplate, answers []models.Answer) []models.Answer {
	questions := make(map[string]*models.Question, len(template.Questions))
	for _, q := range template.Questions {
		questions[q.ID] = q
	}

	pruned := answers[:0]
	for _, answer := range answers {
		q, ok := questions[answer.QuestionID]
		if !ok {
			continue
		}
		valid := make(map[string]bool, len(q.Options))
		for _, opt := range q.Options {
			valid[opt.ID] = true
		}
		kept := answer.SelectedOptionIDs[:0]
		for _, id := range answer.SelectedOptionIDs {
			if valid[id] {
				kept = append(kept, id)
			}
		}
		if len(kept) == 0 {
			continue
		}
		answer.SelectedOptionIDs = kept
		pruned = append(pruned, answer)
	}
	return pruned
}
