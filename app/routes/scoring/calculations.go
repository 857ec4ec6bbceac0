package scoring

import (
	"math"
	"strings"
	"time"

	"recruitflow/app/models"
)

// daysPerYear converts summed employment days into years.
const daysPerYear = 365.25

// round1 rounds half-up to one decimal. Scores are rounded only here, at the
// reporting boundary; intermediate category math stays unrounded.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// educationFractions maps each education level to the fraction of the
// education-level cap it earns.
var educationFractions = map[models.EducationLevel]float64{
	models.Postgraduate:        1.0,
	models.HigherComplete:      0.95,
	models.HigherIncomplete:    0.85,
	models.TechnicalComplete:   0.80,
	models.TechnicalIncomplete: 0.70,
	models.SecondaryComplete:   0.60,
	models.SecondaryIncomplete: 0.40,
	models.PrimaryComplete:     0.30,
	models.PrimaryIncomplete:   0.20,
	models.Illiterate:          0.10,
}

// ScoreCandidate computes the weighted profile score for one candidate.
// It is deterministic given its inputs: the candidate row, their employment
// history (most recent first), the average rating across completed
// interviews (nil when none exist), the active rubric, and the clock.
func ScoreCandidate(candidate *models.Candidate, experiences []*models.ProfessionalExperience, avgRating *float64, weights *models.ScoringWeights, now time.Time) *models.ScoreResult {
	breakdown := map[string]float64{
		models.CategoryExperienceSkills:      round1(scoreExperienceSkills(candidate, experiences, weights, now)),
		models.CategoryEducation:             round1(scoreEducation(candidate, weights)),
		models.CategoryAvailabilityLogistics: round1(scoreAvailabilityLogistics(candidate, weights)),
		models.CategoryInterviewPerformance:  round1(scoreInterviewPerformance(avgRating, weights)),
	}

	total := 0.0
	for _, v := range breakdown {
		total += v
	}

	return &models.ScoreResult{
		Total:      round1(total),
		Breakdown:  breakdown,
		Grade:      GradeFor(total),
		ComputedAt: now,
	}
}

// TotalExperienceYears sums the candidate's employment intervals. An open
// interval (no end date) runs up to now. Candidates without interval records
// fall back to their flat years_of_experience field.
func TotalExperienceYears(candidate *models.Candidate, experiences []*models.ProfessionalExperience, now time.Time) float64 {
	if len(experiences) == 0 {
		return float64(candidate.YearsOfExperience)
	}

	totalDays := 0.0
	for _, exp := range experiences {
		if exp.StartDate == nil {
			continue
		}
		end := now
		if exp.EndDate != nil {
			end = *exp.EndDate
		}
		if !end.Before(*exp.StartDate) {
			totalDays += end.Sub(*exp.StartDate).Hours() / 24
		}
	}

	return round1(totalDays / daysPerYear)
}

func scoreExperienceSkills(candidate *models.Candidate, experiences []*models.ProfessionalExperience, w *models.ScoringWeights, now time.Time) float64 {
	score := 0.0

	// Years of experience, non-linear tiers
	yearsCap := float64(w.YearsOfExperience)
	years := TotalExperienceYears(candidate, experiences, now)
	switch {
	case years >= 6:
		score += yearsCap
	case years >= 4:
		score += yearsCap * 0.87
	case years >= 2:
		score += yearsCap * 0.67
	case years >= 1:
		score += yearsCap * 0.33
	default:
		score += yearsCap * 0.13
	}

	score += scoreIdleTime(experiences, float64(w.IdleTime), now)

	// Optional criteria: a zero cap disables them
	if w.WorkedHereBefore > 0 && candidate.WorkedHereBefore == models.Yes {
		score += float64(w.WorkedHereBefore)
	}
	if w.HasRelativesInCompany > 0 && candidate.HasRelativesInCompany == models.Yes {
		score += float64(w.HasRelativesInCompany)
	}
	if w.ReferredBy > 0 && strings.TrimSpace(candidate.ReferredBy) != "" {
		score += float64(w.ReferredBy)
	}

	return score
}

// scoreIdleTime scores the gap since the candidate's last job. Shorter gaps
// score higher; a currently-employed candidate earns the full cap.
func scoreIdleTime(experiences []*models.ProfessionalExperience, cap float64, now time.Time) float64 {
	if len(experiences) == 0 {
		return cap * 0.2
	}

	var latestEnd *time.Time
	for _, exp := range experiences {
		if exp.EndDate == nil {
			// Open interval: still employed
			return cap
		}
		if latestEnd == nil || exp.EndDate.After(*latestEnd) {
			latestEnd = exp.EndDate
		}
	}

	idleDays := 0
	if latestEnd.Before(now) {
		idleDays = int(now.Sub(*latestEnd).Hours() / 24)
	}

	switch {
	case idleDays <= 30:
		return cap
	case idleDays <= 90:
		return cap * 0.8
	case idleDays <= 180:
		return cap * 0.6
	case idleDays <= 365:
		return cap * 0.4
	case idleDays <= 730:
		return cap * 0.2
	default:
		return cap * 0.1
	}
}

func scoreEducation(candidate *models.Candidate, w *models.ScoringWeights) float64 {
	score := educationFractions[candidate.HighestEducation] * float64(w.EducationLevel)

	// Additional courses: half a point each, capped
	if w.Courses > 0 {
		courseCount := countTokens(candidate.AdditionalCourses)
		score += math.Min(float64(courseCount)*0.5, float64(w.Courses))
	}

	if w.Skills > 0 {
		skillsCap := float64(w.Skills)
		switch count := countTokens(candidate.Skills); {
		case count >= 5:
			score += skillsCap
		case count >= 3:
			score += skillsCap * 0.75
		case count >= 1:
			score += skillsCap * 0.5
		}
	}

	if w.Certifications > 0 {
		certCap := float64(w.Certifications)
		switch count := countTokens(candidate.Certifications); {
		case count >= 3:
			score += certCap
		case count >= 2:
			score += certCap * 0.71
		case count >= 1:
			score += certCap * 0.43
		}
	}

	return score
}

func scoreAvailabilityLogistics(candidate *models.Candidate, w *models.ScoringWeights) float64 {
	score := 0.0

	availCap := float64(w.ImmediateAvailability)
	switch candidate.AvailabilityStart {
	case models.AvailabilityImmediate:
		score += availCap
	case models.Availability15Days:
		score += availCap * 0.75
	case models.Availability30Days:
		score += availCap * 0.5
	case "":
		// No declared lead time scores nothing
	default:
		score += availCap * 0.25
	}

	if candidate.HasOwnTransportation == models.Yes {
		score += float64(w.OwnTransportation)
	}

	travelCap := float64(w.TravelAvailability)
	switch candidate.TravelAvailability {
	case models.TravelYes:
		score += travelCap
	case models.TravelOccasionally:
		score += travelCap * 0.5
	}

	if candidate.HeightWork == models.Yes {
		score += float64(w.HeightWork)
	}

	return score
}

// scoreInterviewPerformance scales the 1-5 average rating of completed
// interviews linearly to the cap. No completed interviews means zero.
func scoreInterviewPerformance(avgRating *float64, w *models.ScoringWeights) float64 {
	if avgRating == nil {
		return 0
	}
	return *avgRating / 5.0 * float64(w.AverageRating)
}

// GradeFor converts a 0-100 score to a letter grade.
func GradeFor(score float64) string {
	switch {
	case score >= 95:
		return "A+"
	case score >= 90:
		return "A"
	case score >= 85:
		return "A-"
	case score >= 80:
		return "B+"
	case score >= 75:
		return "B"
	case score >= 70:
		return "B-"
	case score >= 65:
		return "C+"
	case score >= 60:
		return "C"
	case score >= 55:
		return "C-"
	case score >= 50:
		return "D"
	default:
		return "F"
	}
}

// countTokens counts non-empty comma-separated entries in a free-text list.
func countTokens(s string) int {
	count := 0
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) != "" {
			count++
		}
	}
	return count
}
