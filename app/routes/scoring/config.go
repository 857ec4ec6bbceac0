package scoring

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"recruitflow/app/models"
)

// weightsCacheTTL bounds how long a loaded rubric is served without hitting
// the database. Writes invalidate the cache before they return.
const weightsCacheTTL = time.Hour

var weightsCache struct {
	mu        sync.RWMutex
	weights   *models.ScoringWeights
	expiresAt time.Time
}

// ValidationError reports a rubric payload whose caps do not sum to 100.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// GetWeights returns the active scoring configuration, serving a cached copy
// when fresh. If no configuration exists the system defaults are created.
func GetWeights(db *sql.DB) (*models.ScoringWeights, error) {
	weightsCache.mu.RLock()
	if weightsCache.weights != nil && time.Now().Before(weightsCache.expiresAt) {
		w := weightsCache.weights
		weightsCache.mu.RUnlock()
		return w, nil
	}
	weightsCache.mu.RUnlock()

	weights, err := loadActiveWeights(db)
	if err != nil {
		return nil, err
	}

	weightsCache.mu.Lock()
	weightsCache.weights = weights
	weightsCache.expiresAt = time.Now().Add(weightsCacheTTL)
	weightsCache.mu.Unlock()

	return weights, nil
}

// InvalidateWeightsCache drops the cached rubric so the next read reloads it.
func InvalidateWeightsCache() {
	weightsCache.mu.Lock()
	weightsCache.weights = nil
	weightsCache.mu.Unlock()
}

// FlattenTotal sums every criterion value in a nested weights payload.
func FlattenTotal(m map[string]map[string]float64) float64 {
	total := 0.0
	for _, criteria := range m {
		for _, v := range criteria {
			total += v
		}
	}
	return total
}

// ValidateWeights checks the sum-to-100 invariant with a ±0.1 tolerance.
func ValidateWeights(m map[string]map[string]float64) error {
	total := FlattenTotal(m)
	if diff := total - 100; diff > 0.1 || diff < -0.1 {
		return &ValidationError{
			Message: fmt.Sprintf("weights must sum to 100, got %.1f", total),
		}
	}
	return nil
}

// SetWeights validates the payload and writes it as a new active
// configuration, superseding the previous one. The cache is invalidated on
// both sides of the write: a GetWeights racing the transaction could re-cache
// the superseded row, so the post-commit invalidation is the one that counts.
func SetWeights(db *sql.DB, m map[string]map[string]float64, createdBy *string) (*models.ScoringWeights, error) {
	if err := ValidateWeights(m); err != nil {
		return nil, err
	}

	weights := models.ScoringWeightsFromMap(m)
	weights.CreatedBy = createdBy

	InvalidateWeightsCache()
	if err := insertActiveWeights(db, weights); err != nil {
		return nil, err
	}
	InvalidateWeightsCache()
	return weights, nil
}

// ResetWeights activates a fresh default configuration.
func ResetWeights(db *sql.DB) (*models.ScoringWeights, error) {
	weights := models.DefaultScoringWeights()

	InvalidateWeightsCache()
	if err := insertActiveWeights(db, weights); err != nil {
		return nil, err
	}
	InvalidateWeightsCache()
	return weights, nil
}
