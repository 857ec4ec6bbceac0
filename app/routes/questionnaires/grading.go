package questionnaires

import (
	"fmt"
	"math"

	"recruitflow/app/models"
)

// ReferenceError reports an answer that references a question outside the
// template, or an option outside its question. Both ids may well exist
// elsewhere; the mismatch is what makes the submission invalid.
type ReferenceError struct {
	QuestionID string
	OptionIDs  []string
}

func (e *ReferenceError) Error() string {
	if len(e.OptionIDs) > 0 {
		return fmt.Sprintf("options %v do not belong to question %s", e.OptionIDs, e.QuestionID)
	}
	return fmt.Sprintf("question %s does not belong to the template", e.QuestionID)
}

// round2 rounds half-up to two decimals, the precision of stored
// questionnaire scores. Applied once, after all questions are summed.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// GradeSubmission scores a set of answers against a template and returns the
// achieved score and the maximum possible score. The template must carry its
// questions and options. Every answer is validated before any scoring
// happens, so a reference error never yields a partial result.
func GradeSubmission(template *models.QuestionnaireTemplate, answers []models.Answer) (score float64, maxScore float64, err error) {
	questions := make(map[string]*models.Question, len(template.Questions))
	for _, q := range template.Questions {
		questions[q.ID] = q
	}

	for _, answer := range answers {
		question, ok := questions[answer.QuestionID]
		if !ok {
			return 0, 0, &ReferenceError{QuestionID: answer.QuestionID}
		}
		valid := make(map[string]bool, len(question.Options))
		for _, opt := range question.Options {
			valid[opt.ID] = true
		}
		var invalid []string
		for _, id := range answer.SelectedOptionIDs {
			if !valid[id] {
				invalid = append(invalid, id)
			}
		}
		if len(invalid) > 0 {
			return 0, 0, &ReferenceError{QuestionID: answer.QuestionID, OptionIDs: invalid}
		}
	}

	fullyWeighted := template.IsFullyWeighted()
	maxScore = MaxScore(template)

	total := 0.0
	for _, answer := range answers {
		question := questions[answer.QuestionID]
		selected := make(map[string]bool, len(answer.SelectedOptionIDs))
		for _, id := range answer.SelectedOptionIDs {
			selected[id] = true
		}
		if len(selected) == 0 {
			continue
		}
		total += scoreQuestion(question, selected, fullyWeighted)
	}

	return round2(total), round2(maxScore), nil
}

// MaxScore returns the maximum achievable score for a template. For fully
// weighted templates this is the sum of each question's best option points;
// otherwise it is the sum of the questions' nominal point values.
func MaxScore(template *models.QuestionnaireTemplate) float64 {
	if !template.IsFullyWeighted() {
		return template.NominalPoints()
	}

	total := 0.0
	for _, q := range template.Questions {
		total += maxOptionPoints(q)
	}
	return total
}

// maxOptionPoints is a question's best achievable raw option points: the
// single highest option for single-select, the sum of all options for
// multi-select.
func maxOptionPoints(q *models.Question) float64 {
	if q.Type == models.SingleSelect {
		best := 0.0
		for _, opt := range q.Options {
			if opt.Points > best {
				best = opt.Points
			}
		}
		return best
	}

	sum := 0.0
	for _, opt := range q.Options {
		sum += opt.Points
	}
	return sum
}

func scoreQuestion(q *models.Question, selected map[string]bool, fullyWeighted bool) float64 {
	if fullyWeighted && q.ScoringMode == models.Weighted {
		// Raw option points, no normalization
		sum := 0.0
		for _, opt := range q.Options {
			if selected[opt.ID] {
				sum += opt.Points
				if q.Type == models.SingleSelect {
					break
				}
			}
		}
		return sum
	}

	switch q.ScoringMode {
	case models.AllOrNothing:
		return scoreAllOrNothing(q, selected)
	case models.Partial:
		return scorePartial(q, selected)
	case models.Weighted:
		return scoreWeightedMixed(q, selected)
	}
	return 0
}

// scoreAllOrNothing awards full points only when the selected set exactly
// equals the correct set.
func scoreAllOrNothing(q *models.Question, selected map[string]bool) float64 {
	correct := q.CorrectOptionIDs()
	if len(selected) != len(correct) {
		return 0
	}
	for id := range selected {
		if !correct[id] {
			return 0
		}
	}
	return q.Points
}

// scorePartial awards a fraction of the question's points based on the
// option points of the correct options selected.
func scorePartial(q *models.Question, selected map[string]bool) float64 {
	if q.Type == models.SingleSelect {
		var selectedPoints, maxPoints float64
		found := false
		for _, opt := range q.Options {
			if !opt.IsCorrect {
				continue
			}
			if opt.Points > maxPoints {
				maxPoints = opt.Points
			}
			if selected[opt.ID] {
				selectedPoints = opt.Points
				found = true
			}
		}
		if !found || maxPoints <= 0 {
			return 0
		}
		return clampFraction(selectedPoints/maxPoints) * q.Points
	}

	var selectedPoints, totalPoints float64
	for _, opt := range q.Options {
		if !opt.IsCorrect {
			continue
		}
		totalPoints += opt.Points
		if selected[opt.ID] {
			selectedPoints += opt.Points
		}
	}
	if totalPoints <= 0 {
		return 0
	}
	return clampFraction(selectedPoints/totalPoints) * q.Points
}

// scoreWeightedMixed handles a weighted question inside a template that is
// not fully weighted: selected option points are normalized by the
// question's own maximum and scaled by its nominal points.
func scoreWeightedMixed(q *models.Question, selected map[string]bool) float64 {
	maxPoints := maxOptionPoints(q)
	if maxPoints <= 0 {
		return 0
	}

	selectedPoints := 0.0
	for _, opt := range q.Options {
		if selected[opt.ID] {
			selectedPoints += opt.Points
			if q.Type == models.SingleSelect {
				break
			}
		}
	}
	return clampFraction(selectedPoints/maxPoints) * q.Points
}

func clampFraction(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
