package questionnaires

import (
	"errors"
	"math"
	"testing"

	"recruitflow/app/models"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func opt(id string, correct bool, points float64) *models.QuestionOption {
	return &models.QuestionOption{ID: id, IsCorrect: correct, Points: points}
}

func question(id string, qType models.QuestionType, mode models.ScoringMode, points float64, options ...*models.QuestionOption) *models.Question {
	return &models.Question{
		ID:          id,
		Text:        "q " + id,
		Type:        qType,
		ScoringMode: mode,
		Points:      points,
		Options:     options,
	}
}

func template(questions ...*models.Question) *models.QuestionnaireTemplate {
	return &models.QuestionnaireTemplate{
		ID:        "tpl",
		Title:     "test template",
		Questions: questions,
	}
}

func answer(questionID string, optionIDs ...string) models.Answer {
	if optionIDs == nil {
		optionIDs = []string{}
	}
	return models.Answer{QuestionID: questionID, SelectedOptionIDs: optionIDs}
}

func TestGradeSubmissionAllOrNothing(t *testing.T) {
	tpl := template(
		question("q1", models.MultiSelect, models.AllOrNothing, 5,
			opt("o1", true, 0), opt("o2", true, 0), opt("o3", false, 0)),
	)

	tests := []struct {
		name     string
		selected []string
		want     float64
	}{
		{"exact match", []string{"o1", "o2"}, 5},
		{"subset", []string{"o1"}, 0},
		{"superset", []string{"o1", "o2", "o3"}, 0},
		{"wrong option", []string{"o3"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, maxScore, err := GradeSubmission(tpl, []models.Answer{answer("q1", tt.selected...)})
			if err != nil {
				t.Fatalf("GradeSubmission() error = %v", err)
			}
			if !almostEqual(score, tt.want) {
				t.Errorf("score = %v, want %v", score, tt.want)
			}
			if !almostEqual(maxScore, 5) {
				t.Errorf("maxScore = %v, want 5", maxScore)
			}
		})
	}
}

func TestGradeSubmissionPartialMultiSelect(t *testing.T) {
	tpl := template(
		question("q1", models.MultiSelect, models.Partial, 10,
			opt("o1", true, 2), opt("o2", true, 3), opt("o3", true, 5), opt("o4", false, 1)),
	)

	tests := []struct {
		name     string
		selected []string
		want     float64
	}{
		{"all correct", []string{"o1", "o2", "o3"}, 10},
		{"two of three", []string{"o2", "o3"}, 8}, // (3+5)/10 * 10
		{"one of three", []string{"o1"}, 2},
		{"incorrect options earn nothing", []string{"o2", "o3", "o4"}, 8},
		{"only incorrect", []string{"o4"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, _, err := GradeSubmission(tpl, []models.Answer{answer("q1", tt.selected...)})
			if err != nil {
				t.Fatalf("GradeSubmission() error = %v", err)
			}
			if !almostEqual(score, tt.want) {
				t.Errorf("score = %v, want %v", score, tt.want)
			}
		})
	}
}

func TestGradeSubmissionPartialPerfectAnswer(t *testing.T) {
	// A safety-checklist question: three correct options with points and one
	// distractor. Selecting exactly the correct set must earn full marks.
	tpl := template(
		question("q1", models.MultiSelect, models.Partial, 10,
			opt("o1", true, 4), opt("o2", true, 3), opt("o3", true, 3), opt("o4", false, 0)),
	)

	score, maxScore, err := GradeSubmission(tpl, []models.Answer{answer("q1", "o1", "o2", "o3")})
	if err != nil {
		t.Fatalf("GradeSubmission() error = %v", err)
	}
	if !almostEqual(score, 10) {
		t.Errorf("score = %v, want 10", score)
	}
	if !almostEqual(maxScore, 10) {
		t.Errorf("maxScore = %v, want 10", maxScore)
	}
}

func TestGradeSubmissionPartialSingleSelect(t *testing.T) {
	// Two acceptable answers of different quality
	tpl := template(
		question("q1", models.SingleSelect, models.Partial, 6,
			opt("o1", true, 4), opt("o2", true, 2), opt("o3", false, 0)),
	)

	tests := []struct {
		name     string
		selected []string
		want     float64
	}{
		{"best answer", []string{"o1"}, 6},
		{"weaker answer", []string{"o2"}, 3}, // 2/4 * 6
		{"incorrect answer", []string{"o3"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, _, err := GradeSubmission(tpl, []models.Answer{answer("q1", tt.selected...)})
			if err != nil {
				t.Fatalf("GradeSubmission() error = %v", err)
			}
			if !almostEqual(score, tt.want) {
				t.Errorf("score = %v, want %v", score, tt.want)
			}
		})
	}
}

func TestGradeSubmissionPartialZeroPointOptions(t *testing.T) {
	// Correct options without point values cannot form a denominator
	tpl := template(
		question("q1", models.MultiSelect, models.Partial, 10,
			opt("o1", true, 0), opt("o2", true, 0)),
	)

	score, _, err := GradeSubmission(tpl, []models.Answer{answer("q1", "o1")})
	if err != nil {
		t.Fatalf("GradeSubmission() error = %v", err)
	}
	if score != 0 {
		t.Errorf("score = %v, want 0", score)
	}
}

func TestGradeSubmissionFullyWeighted(t *testing.T) {
	// Every question weighted: raw option points, no normalization
	tpl := template(
		question("q1", models.SingleSelect, models.Weighted, 1,
			opt("o1", false, 1), opt("o2", false, 4), opt("o3", false, 7)),
		question("q2", models.MultiSelect, models.Weighted, 1,
			opt("o4", false, 2), opt("o5", false, 3)),
	)

	// Max: best single option (7) + all multi options (5)
	if got := MaxScore(tpl); !almostEqual(got, 12) {
		t.Errorf("MaxScore() = %v, want 12", got)
	}

	score, maxScore, err := GradeSubmission(tpl, []models.Answer{
		answer("q1", "o2"),
		answer("q2", "o4", "o5"),
	})
	if err != nil {
		t.Fatalf("GradeSubmission() error = %v", err)
	}
	if !almostEqual(score, 9) { // 4 + 2 + 3
		t.Errorf("score = %v, want 9", score)
	}
	if !almostEqual(maxScore, 12) {
		t.Errorf("maxScore = %v, want 12", maxScore)
	}
}

func TestGradeSubmissionMixedWeighted(t *testing.T) {
	// A weighted question alongside a non-weighted one: normalized to its
	// nominal points instead of raw option points
	tpl := template(
		question("q1", models.MultiSelect, models.Weighted, 6,
			opt("o1", false, 2), opt("o2", false, 3), opt("o3", false, 5)),
		question("q2", models.MultiSelect, models.AllOrNothing, 4,
			opt("o4", true, 0)),
	)

	if got := MaxScore(tpl); !almostEqual(got, 10) {
		t.Errorf("MaxScore() = %v, want 10", got)
	}

	score, maxScore, err := GradeSubmission(tpl, []models.Answer{
		answer("q1", "o3"), // 5/10 * 6 = 3
		answer("q2", "o4"), // 4
	})
	if err != nil {
		t.Fatalf("GradeSubmission() error = %v", err)
	}
	if !almostEqual(score, 7) {
		t.Errorf("score = %v, want 7", score)
	}
	if !almostEqual(maxScore, 10) {
		t.Errorf("maxScore = %v, want 10", maxScore)
	}
}

func TestGradeSubmissionReferenceErrors(t *testing.T) {
	tpl := template(
		question("q1", models.MultiSelect, models.AllOrNothing, 5,
			opt("o1", true, 0)),
		question("q2", models.MultiSelect, models.AllOrNothing, 5,
			opt("o2", true, 0)),
	)

	tests := []struct {
		name    string
		answers []models.Answer
	}{
		{"unknown question", []models.Answer{answer("ghost", "o1")}},
		{"option from another question", []models.Answer{answer("q1", "o2")}},
		{"valid answer after invalid one still fails", []models.Answer{
			answer("q1", "o9"),
			answer("q2", "o2"),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, maxScore, err := GradeSubmission(tpl, tt.answers)
			var refErr *ReferenceError
			if !errors.As(err, &refErr) {
				t.Fatalf("GradeSubmission() error = %v, want *ReferenceError", err)
			}
			if score != 0 || maxScore != 0 {
				t.Errorf("got partial result %v/%v on reference error", score, maxScore)
			}
		})
	}
}

func TestGradeSubmissionSkipsEmptySelections(t *testing.T) {
	tpl := template(
		question("q1", models.MultiSelect, models.AllOrNothing, 5,
			opt("o1", true, 0)),
		question("q2", models.MultiSelect, models.AllOrNothing, 3,
			opt("o2", true, 0)),
	)

	score, maxScore, err := GradeSubmission(tpl, []models.Answer{
		answer("q1", "o1"),
		answer("q2"), // left blank
	})
	if err != nil {
		t.Fatalf("GradeSubmission() error = %v", err)
	}
	if !almostEqual(score, 5) {
		t.Errorf("score = %v, want 5", score)
	}
	// Unanswered questions still count toward the maximum
	if !almostEqual(maxScore, 8) {
		t.Errorf("maxScore = %v, want 8", maxScore)
	}
}

func TestGradeSubmissionRoundsToTwoDecimals(t *testing.T) {
	tpl := template(
		question("q1", models.MultiSelect, models.Partial, 10,
			opt("o1", true, 1), opt("o2", true, 1), opt("o3", true, 1)),
	)

	score, _, err := GradeSubmission(tpl, []models.Answer{answer("q1", "o1")})
	if err != nil {
		t.Fatalf("GradeSubmission() error = %v", err)
	}
	if !almostEqual(score, 3.33) {
		t.Errorf("score = %v, want 3.33", score)
	}
}

func TestMaxScoreEmptyTemplate(t *testing.T) {
	if got := MaxScore(template()); got != 0 {
		t.Errorf("MaxScore(empty) = %v, want 0", got)
	}
}

func TestResponsePercentage(t *testing.T) {
	r := &models.QuestionnaireResponse{Score: 8, MaxScore: 10}
	if got := r.Percentage(); !almostEqual(got, 80) {
		t.Errorf("Percentage() = %v, want 80", got)
	}

	empty := &models.QuestionnaireResponse{Score: 0, MaxScore: 0}
	if got := empty.Percentage(); got != 0 {
		t.Errorf("Percentage() with zero max = %v, want 0", got)
	}
}
