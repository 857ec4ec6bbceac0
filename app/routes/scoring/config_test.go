package scoring

import (
	"errors"
	"testing"
	"time"

	"recruitflow/app/models"
)

func defaultWeightsMap() map[string]map[string]float64 {
	m := make(map[string]map[string]float64)
	for category, criteria := range models.DefaultScoringWeights().ToMap() {
		m[category] = make(map[string]float64)
		for criterion, value := range criteria {
			m[category][criterion] = float64(value)
		}
	}
	return m
}

func TestFlattenTotal(t *testing.T) {
	if got := FlattenTotal(nil); got != 0 {
		t.Errorf("FlattenTotal(nil) = %v, want 0", got)
	}
	if got := FlattenTotal(defaultWeightsMap()); got != 100 {
		t.Errorf("FlattenTotal(defaults) = %v, want 100", got)
	}
}

func TestValidateWeights(t *testing.T) {
	valid := defaultWeightsMap()
	if err := ValidateWeights(valid); err != nil {
		t.Errorf("ValidateWeights(defaults) = %v, want nil", err)
	}

	// Within the ±0.1 tolerance
	tolerant := defaultWeightsMap()
	tolerant["interview_performance"]["average_rating"] = 30.05
	if err := ValidateWeights(tolerant); err != nil {
		t.Errorf("ValidateWeights(100.05) = %v, want nil", err)
	}

	invalid := defaultWeightsMap()
	invalid["interview_performance"]["average_rating"] = 40
	err := ValidateWeights(invalid)
	if err == nil {
		t.Fatal("ValidateWeights(110) = nil, want error")
	}

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("ValidateWeights error type = %T, want *ValidationError", err)
	}
	if want := "weights must sum to 100, got 110.0"; vErr.Message != want {
		t.Errorf("error message = %q, want %q", vErr.Message, want)
	}
}

func TestInvalidateWeightsCache(t *testing.T) {
	weightsCache.mu.Lock()
	weightsCache.weights = models.DefaultScoringWeights()
	weightsCache.expiresAt = time.Now().Add(weightsCacheTTL)
	weightsCache.mu.Unlock()

	InvalidateWeightsCache()

	weightsCache.mu.RLock()
	defer weightsCache.mu.RUnlock()
	if weightsCache.weights != nil {
		t.Error("cached weights survived invalidation")
	}
}

func TestScoringWeightsFromMap(t *testing.T) {
	m := defaultWeightsMap()
	m["experience_skills"]["years_of_experience"] = 20
	m["experience_skills"]["worked_here_before"] = 7
	m["interview_performance"]["average_rating"] = 30

	w := models.ScoringWeightsFromMap(m)
	if w.YearsOfExperience != 20 {
		t.Errorf("YearsOfExperience = %d, want 20", w.YearsOfExperience)
	}
	if w.WorkedHereBefore != 7 {
		t.Errorf("WorkedHereBefore = %d, want 7", w.WorkedHereBefore)
	}
	// Untouched criteria keep their defaults
	if w.IdleTime != 5 {
		t.Errorf("IdleTime = %d, want 5", w.IdleTime)
	}
}

func TestScoringWeightsFromMapMissingCategories(t *testing.T) {
	// A sparse payload falls back to defaults for everything absent
	w := models.ScoringWeightsFromMap(map[string]map[string]float64{
		"education": {"education_level": 10},
	})
	if w.EducationLevel != 10 {
		t.Errorf("EducationLevel = %d, want 10", w.EducationLevel)
	}
	if w.AverageRating != 30 {
		t.Errorf("AverageRating = %d, want 30", w.AverageRating)
	}
}

func TestScoringWeightsFromMapFractionalValues(t *testing.T) {
	// Validation tolerates fractional payloads, so the conversion must round
	// rather than truncate or the stored total drifts below 100.
	m := defaultWeightsMap()
	m["experience_skills"]["years_of_experience"] = 26.7
	m["experience_skills"]["idle_time"] = 5.3

	w := models.ScoringWeightsFromMap(m)
	if w.YearsOfExperience != 27 {
		t.Errorf("YearsOfExperience = %d, want 27", w.YearsOfExperience)
	}
	if w.IdleTime != 5 {
		t.Errorf("IdleTime = %d, want 5", w.IdleTime)
	}
	if w.Total() != 100 {
		t.Errorf("Total() = %d, want 100", w.Total())
	}
}

func TestDefaultWeightsRoundTrip(t *testing.T) {
	w := models.ScoringWeightsFromMap(defaultWeightsMap())
	if w.Total() != 100 {
		t.Errorf("Total() = %d, want 100", w.Total())
	}
}
