package questionnaires

import (
	"testing"

	"recruitflow/app/models"
)

func TestPruneStaleAnswers(t *testing.T) {
	tpl := template(
		question("q1", models.MultiSelect, models.AllOrNothing, 5,
			opt("o1", true, 0), opt("o2", false, 0)),
	)

	answers := []models.Answer{
		{QuestionID: "q1", SelectedOptionIDs: []string{"o1", "deleted-opt"}},
		{QuestionID: "deleted-q", SelectedOptionIDs: []string{"o9"}},
	}

	pruned := pruneStaleAnswers(tpl, answers)
	if len(pruned) != 1 {
		t.Fatalf("pruned length = %d, want 1", len(pruned))
	}
	if pruned[0].QuestionID != "q1" {
		t.Errorf("kept question = %s, want q1", pruned[0].QuestionID)
	}
	if len(pruned[0].SelectedOptionIDs) != 1 || pruned[0].SelectedOptionIDs[0] != "o1" {
		t.Errorf("kept options = %v, want [o1]", pruned[0].SelectedOptionIDs)
	}
}

func TestPruneStaleAnswersKeepsGradeable(t *testing.T) {
	// What survives pruning must pass reference validation
	tpl := template(
		question("q1", models.MultiSelect, models.AllOrNothing, 5,
			opt("o1", true, 0)),
	)

	answers := pruneStaleAnswers(tpl, []models.Answer{
		{QuestionID: "q1", SelectedOptionIDs: []string{"o1", "gone"}},
		{QuestionID: "gone-q", SelectedOptionIDs: []string{"x"}},
	})

	score, maxScore, err := GradeSubmission(tpl, answers)
	if err != nil {
		t.Fatalf("GradeSubmission() after pruning error = %v", err)
	}
	if score != 5 || maxScore != 5 {
		t.Errorf("score/max = %v/%v, want 5/5", score, maxScore)
	}
}
