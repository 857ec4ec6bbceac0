package scoring

import (
	"math"
	"testing"
	"time"

	"recruitflow/app/models"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func datePtr(year, month, day int) *time.Time {
	t := time.Date(year, time.Month(month), day, 12, 0, 0, 0, time.UTC)
	return &t
}

func TestGradeFor(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{100, "A+"},
		{95, "A+"},
		{94.9, "A"},
		{90, "A"},
		{85, "A-"},
		{80, "B+"},
		{75, "B"},
		{70, "B-"},
		{65, "C+"},
		{60, "C"},
		{55, "C-"},
		{50, "D"},
		{49.9, "F"},
		{0, "F"},
	}

	for _, tt := range tests {
		if got := GradeFor(tt.score); got != tt.want {
			t.Errorf("GradeFor(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestTotalExperienceYears(t *testing.T) {
	tests := []struct {
		name        string
		candidate   *models.Candidate
		experiences []*models.ProfessionalExperience
		want        float64
	}{
		{
			name:      "no records falls back to flat field",
			candidate: &models.Candidate{YearsOfExperience: 7},
			want:      7,
		},
		{
			name:      "two closed intervals",
			candidate: &models.Candidate{YearsOfExperience: 99},
			experiences: []*models.ProfessionalExperience{
				{StartDate: datePtr(2020, 1, 1), EndDate: datePtr(2021, 1, 1)},
				{StartDate: datePtr(2022, 1, 1), EndDate: datePtr(2022, 7, 1)},
			},
			want: 1.5,
		},
		{
			name:      "open interval runs up to now",
			candidate: &models.Candidate{},
			experiences: []*models.ProfessionalExperience{
				{StartDate: datePtr(2024, 3, 1)},
			},
			want: 2.0,
		},
		{
			name:      "inverted and undated intervals contribute nothing",
			candidate: &models.Candidate{},
			experiences: []*models.ProfessionalExperience{
				{StartDate: datePtr(2025, 1, 1), EndDate: datePtr(2024, 1, 1)},
				{EndDate: datePtr(2025, 6, 1)},
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TotalExperienceYears(tt.candidate, tt.experiences, testNow)
			if !almostEqual(got, tt.want) {
				t.Errorf("TotalExperienceYears() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScoreIdleTime(t *testing.T) {
	endedDaysAgo := func(days int) []*models.ProfessionalExperience {
		end := testNow.AddDate(0, 0, -days)
		return []*models.ProfessionalExperience{
			{StartDate: datePtr(2020, 1, 1), EndDate: &end},
		}
	}

	tests := []struct {
		name        string
		experiences []*models.ProfessionalExperience
		want        float64
	}{
		{"no history", nil, 1.0},
		{"currently employed", []*models.ProfessionalExperience{{StartDate: datePtr(2024, 1, 1)}}, 5},
		{"30 days idle", endedDaysAgo(30), 5},
		{"31 days idle", endedDaysAgo(31), 4.0},
		{"91 days idle", endedDaysAgo(91), 3.0},
		{"200 days idle", endedDaysAgo(200), 2.0},
		{"400 days idle", endedDaysAgo(400), 1.0},
		{"1000 days idle", endedDaysAgo(1000), 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scoreIdleTime(tt.experiences, 5, testNow)
			if !almostEqual(got, tt.want) {
				t.Errorf("scoreIdleTime() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScoreEducation(t *testing.T) {
	weights := &models.ScoringWeights{
		EducationLevel: 16,
		Courses:        4,
		Skills:         2,
		Certifications: 7,
	}

	tests := []struct {
		name      string
		candidate *models.Candidate
		want      float64
	}{
		{
			name:      "empty profile",
			candidate: &models.Candidate{},
			want:      0,
		},
		{
			name: "postgraduate with full lists",
			candidate: &models.Candidate{
				HighestEducation:  models.Postgraduate,
				AdditionalCourses: "a, b, c",
				Skills:            "a, b, c, d, e",
				Certifications:    "x",
			},
			want: 16 + 1.5 + 2 + 0.43*7,
		},
		{
			name: "courses capped at their weight",
			candidate: &models.Candidate{
				HighestEducation:  models.SecondaryIncomplete,
				AdditionalCourses: "a, b, c, d, e, f, g, h, i, j",
			},
			want: 0.40*16 + 4,
		},
		{
			name: "whitespace-only entries do not count",
			candidate: &models.Candidate{
				HighestEducation: models.TechnicalComplete,
				Skills:           " , ,skill one",
			},
			want: 0.80*16 + 0.5*2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scoreEducation(tt.candidate, weights)
			if !almostEqual(got, tt.want) {
				t.Errorf("scoreEducation() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScoreEducationDisabledCriteria(t *testing.T) {
	// Zero caps disable courses, skills and certifications entirely
	weights := &models.ScoringWeights{EducationLevel: 16}
	candidate := &models.Candidate{
		HighestEducation:  models.HigherComplete,
		AdditionalCourses: "a, b, c",
		Skills:            "a, b, c, d, e",
		Certifications:    "x, y, z",
	}

	if got, want := scoreEducation(candidate, weights), 0.95*16; !almostEqual(got, want) {
		t.Errorf("scoreEducation() = %v, want %v", got, want)
	}
}

func TestScoreAvailabilityLogistics(t *testing.T) {
	weights := &models.ScoringWeights{
		ImmediateAvailability: 8,
		OwnTransportation:     5,
		TravelAvailability:    4,
		HeightWork:            3,
	}

	tests := []struct {
		name      string
		candidate *models.Candidate
		want      float64
	}{
		{"empty profile", &models.Candidate{}, 0},
		{"immediate start", &models.Candidate{AvailabilityStart: models.AvailabilityImmediate}, 8},
		{"15 days", &models.Candidate{AvailabilityStart: models.Availability15Days}, 6},
		{"30 days", &models.Candidate{AvailabilityStart: models.Availability30Days}, 4},
		{"later", &models.Candidate{AvailabilityStart: models.AvailabilityLater}, 2},
		{"own transportation", &models.Candidate{HasOwnTransportation: models.Yes}, 5},
		{"travel yes", &models.Candidate{TravelAvailability: models.TravelYes}, 4},
		{"travel occasionally", &models.Candidate{TravelAvailability: models.TravelOccasionally}, 2},
		{"height work", &models.Candidate{HeightWork: models.Yes}, 3},
		{
			name: "everything",
			candidate: &models.Candidate{
				AvailabilityStart:    models.AvailabilityImmediate,
				HasOwnTransportation: models.Yes,
				TravelAvailability:   models.TravelYes,
				HeightWork:           models.Yes,
			},
			want: 20,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scoreAvailabilityLogistics(tt.candidate, weights)
			if !almostEqual(got, tt.want) {
				t.Errorf("scoreAvailabilityLogistics() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScoreInterviewPerformance(t *testing.T) {
	weights := &models.ScoringWeights{AverageRating: 30}

	if got := scoreInterviewPerformance(nil, weights); got != 0 {
		t.Errorf("scoreInterviewPerformance(nil) = %v, want 0", got)
	}

	rating := 4.5
	if got, want := scoreInterviewPerformance(&rating, weights), 27.0; !almostEqual(got, want) {
		t.Errorf("scoreInterviewPerformance(4.5) = %v, want %v", got, want)
	}
}

func TestScoreCandidate(t *testing.T) {
	weights := models.DefaultScoringWeights()
	rating := 4.5

	candidate := &models.Candidate{
		HighestEducation:     models.HigherComplete,
		Skills:               "wiring, plumbing, welding",
		AvailabilityStart:    models.AvailabilityImmediate,
		HasOwnTransportation: models.Yes,
		TravelAvailability:   models.TravelYes,
		HeightWork:           models.Yes,
	}
	experiences := []*models.ProfessionalExperience{
		{StartDate: datePtr(2018, 3, 1)}, // still employed, 8 years
	}

	result := ScoreCandidate(candidate, experiences, &rating, weights, testNow)

	wantBreakdown := map[string]float64{
		models.CategoryExperienceSkills:      32,   // full years cap + full idle cap
		models.CategoryEducation:             16.7, // 0.95*16 + 0.75*2
		models.CategoryAvailabilityLogistics: 20,
		models.CategoryInterviewPerformance:  27, // 4.5/5 * 30
	}
	for category, want := range wantBreakdown {
		if got := result.Breakdown[category]; !almostEqual(got, want) {
			t.Errorf("Breakdown[%s] = %v, want %v", category, got, want)
		}
	}
	if !almostEqual(result.Total, 95.7) {
		t.Errorf("Total = %v, want 95.7", result.Total)
	}
	if result.Grade != "A+" {
		t.Errorf("Grade = %q, want A+", result.Grade)
	}
	if !result.ComputedAt.Equal(testNow) {
		t.Errorf("ComputedAt = %v, want %v", result.ComputedAt, testNow)
	}
}

func TestScoreCandidateEmptyProfile(t *testing.T) {
	weights := models.DefaultScoringWeights()
	result := ScoreCandidate(&models.Candidate{}, nil, nil, weights, testNow)

	// 0.13 * 27 years cap + 0.2 * 5 idle cap, rounded
	if !almostEqual(result.Total, 4.5) {
		t.Errorf("Total = %v, want 4.5", result.Total)
	}
	if result.Grade != "F" {
		t.Errorf("Grade = %q, want F", result.Grade)
	}
}

func TestScoreCandidateTotalMatchesBreakdown(t *testing.T) {
	weights := models.DefaultScoringWeights()
	rating := 3.0

	candidates := []*models.Candidate{
		{},
		{HighestEducation: models.Postgraduate, Skills: "a, b"},
		{
			YearsOfExperience:    3,
			HighestEducation:     models.SecondaryComplete,
			AvailabilityStart:    models.Availability15Days,
			HasOwnTransportation: models.Yes,
			TravelAvailability:   models.TravelOccasionally,
		},
	}

	for i, candidate := range candidates {
		result := ScoreCandidate(candidate, nil, &rating, weights, testNow)
		sum := 0.0
		for _, v := range result.Breakdown {
			sum += v
		}
		if !almostEqual(result.Total, round1(sum)) {
			t.Errorf("candidate %d: Total %v does not match breakdown sum %v", i, result.Total, sum)
		}
	}
}

func TestCountTokens(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", 0},
		{" ", 0},
		{",,,", 0},
		{"one", 1},
		{"one, two", 2},
		{"one,,two, ,three", 3},
	}

	for _, tt := range tests {
		if got := countTokens(tt.input); got != tt.want {
			t.Errorf("countTokens(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}
