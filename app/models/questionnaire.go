package models

import "time"

// QuestionnaireTemplate is one ordered step of a position's questionnaire
// flow. Multiple templates may be active per position at the same time; the
// step number orders them.
type QuestionnaireTemplate struct {
	ID          string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	PositionKey string    `json:"position_key" gorm:"not null;index" validate:"required"`
	Title       string    `json:"title" gorm:"not null" validate:"required"`
	Description string    `json:"description"`
	StepNumber  int       `json:"step_number" gorm:"default:1" validate:"gte=1"`
	Version     int       `json:"version" gorm:"default:1"`
	IsActive    bool      `json:"is_active" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Questions []*Question `json:"questions,omitempty" gorm:"foreignKey:TemplateID"`
}

// NominalPoints sums the questions' point values. This is the template's
// maximum score except for fully weighted templates.
func (t *QuestionnaireTemplate) NominalPoints() float64 {
	total := 0.0
	for _, q := range t.Questions {
		total += q.Points
	}
	return total
}

// IsFullyWeighted reports whether every question uses weighted scoring, which
// switches the engine to raw option points.
func (t *QuestionnaireTemplate) IsFullyWeighted() bool {
	if len(t.Questions) == 0 {
		return false
	}
	for _, q := range t.Questions {
		if q.ScoringMode != Weighted {
			return false
		}
	}
	return true
}

// Question is one question within a template.
type Question struct {
	ID          string       `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	TemplateID  string       `json:"template_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Text        string       `json:"text" gorm:"not null" validate:"required"`
	Type        QuestionType `json:"type" gorm:"type:varchar(20);default:'multi_select'"`
	ScoringMode ScoringMode  `json:"scoring_mode" gorm:"type:varchar(20);default:'all_or_nothing'"`
	Points      float64      `json:"points" gorm:"type:decimal(5,2);default:1" validate:"gte=0"`
	SortOrder   int          `json:"sort_order" gorm:"default:0"`
	CreatedAt   time.Time    `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time    `json:"updated_at" gorm:"autoUpdateTime"`

	Options []*QuestionOption `json:"options,omitempty" gorm:"foreignKey:QuestionID"`
}

// CorrectOptionIDs returns the ids of the options flagged correct.
func (q *Question) CorrectOptionIDs() map[string]bool {
	ids := make(map[string]bool)
	for _, opt := range q.Options {
		if opt.IsCorrect {
			ids[opt.ID] = true
		}
	}
	return ids
}

// QuestionOption is one choice offered by a question.
type QuestionOption struct {
	ID         string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	QuestionID string    `json:"question_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Text       string    `json:"text" gorm:"not null" validate:"required"`
	IsCorrect  bool      `json:"is_correct" gorm:"default:false"`
	Points     float64   `json:"points" gorm:"type:decimal(7,2);default:0" validate:"gte=0"` // partial/weighted scoring
	SortOrder  int       `json:"sort_order" gorm:"default:0"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// QuestionnaireResponse is one candidate's graded submission against one
// template. At most one exists per (candidate, template) pair.
type QuestionnaireResponse struct {
	ID          string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	CandidateID string    `json:"candidate_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	TemplateID  string    `json:"template_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	PositionKey string    `json:"position_key" gorm:"not null;index"` // denormalized for completion counting
	Score       float64   `json:"score" gorm:"type:decimal(7,2);default:0"`
	MaxScore    float64   `json:"max_score" gorm:"type:decimal(7,2);default:0"`
	SubmittedAt time.Time `json:"submitted_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	SelectedOptions []*SelectedOption `json:"selected_options,omitempty" gorm:"foreignKey:ResponseID"`
}

// Percentage returns the score as a fraction of the maximum, in percent.
func (r *QuestionnaireResponse) Percentage() float64 {
	if r.MaxScore == 0 {
		return 0
	}
	return r.Score / r.MaxScore * 100
}

// SelectedOption records one option a candidate chose for one question.
type SelectedOption struct {
	ID         string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	ResponseID string    `json:"response_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	QuestionID string    `json:"question_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	OptionID   string    `json:"option_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// Answer is the submission payload for one question.
type Answer struct {
	QuestionID        string   `json:"question_id"`
	SelectedOptionIDs []string `json:"selected_option_ids"`
}
