package models

import "time"

// Candidate is one job applicant and their intake-form profile.
type Candidate struct {
	ID              string `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	FullName        string `json:"full_name" gorm:"not null" validate:"required"`
	Email           string `json:"email" gorm:"index" validate:"omitempty,email"`
	Phone           string `json:"phone"`
	PositionApplied string `json:"position_applied" gorm:"not null;index" validate:"required"`

	// Experience & referrals
	YearsOfExperience     int    `json:"years_of_experience" gorm:"default:0" validate:"gte=0"` // fallback when no experience records exist
	WorkedHereBefore      YesNo  `json:"worked_here_before" gorm:"type:varchar(10)"`
	HasRelativesInCompany YesNo  `json:"has_relatives_in_company" gorm:"type:varchar(10)"`
	ReferredBy            string `json:"referred_by"`

	// Education & qualifications
	HighestEducation  EducationLevel `json:"highest_education" gorm:"type:varchar(30)"`
	AdditionalCourses string         `json:"additional_courses"` // comma-separated
	Skills            string         `json:"skills"`             // comma-separated
	Certifications    string         `json:"certifications"`     // comma-separated

	// Availability & logistics
	AvailabilityStart    AvailabilityStart  `json:"availability_start" gorm:"type:varchar(20)"`
	HasOwnTransportation YesNo              `json:"has_own_transportation" gorm:"type:varchar(10)"`
	TravelAvailability   TravelAvailability `json:"travel_availability" gorm:"type:varchar(20)"`
	HeightWork           YesNo              `json:"height_work" gorm:"type:varchar(10)"`

	// Pipeline & scoring
	Status         CandidateStatus `json:"status" gorm:"type:varchar(20);default:'incomplete';index"`
	Score          float64         `json:"score" gorm:"type:decimal(5,1);default:0"`
	ScoreBreakdown *string         `json:"score_breakdown,omitempty" gorm:"type:json"`
	ScoreUpdatedAt *time.Time      `json:"score_updated_at,omitempty"`
	AccessCode     string          `json:"access_code" gorm:"unique"`

	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" gorm:"index"`

	Experiences []*ProfessionalExperience `json:"experiences,omitempty" gorm:"foreignKey:CandidateID"`
}

// ProfessionalExperience is one employment interval in a candidate's history.
// A nil EndDate means the candidate still holds the position.
type ProfessionalExperience struct {
	ID          string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CandidateID string     `json:"candidate_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Company     string     `json:"company" gorm:"not null" validate:"required"`
	Position    string     `json:"position"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
}

// IdleDays returns the number of days between this interval's end date and
// now, or 0 when the interval is still open or ends in the future.
func (e *ProfessionalExperience) IdleDays(now time.Time) int {
	if e.EndDate == nil {
		return 0
	}
	if e.EndDate.After(now) {
		return 0
	}
	return int(now.Sub(*e.EndDate).Hours() / 24)
}

// ScoreResult is the outcome of one profile-scoring run.
type ScoreResult struct {
	Total      float64            `json:"total"`
	Breakdown  map[string]float64 `json:"breakdown"`
	Grade      string             `json:"grade"`
	ComputedAt time.Time          `json:"computed_at"`
}
