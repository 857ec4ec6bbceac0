package models

import "time"

// Interview is one scheduled interview for a candidate. Only completed
// interviews carry a rating and count toward interview-performance scoring.
type Interview struct {
	ID          string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	CandidateID string          `json:"candidate_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	ScheduledAt time.Time       `json:"scheduled_at" gorm:"not null"`
	Location    string          `json:"location"`
	Interviewer string          `json:"interviewer"`
	Status      InterviewStatus `json:"status" gorm:"type:varchar(20);default:'scheduled';index"`
	Rating      *int            `json:"rating,omitempty" validate:"omitempty,gte=1,lte=5"` // 1-5, set when completed
	Notes       string          `json:"notes"`
	CreatedAt   time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time       `json:"updated_at" gorm:"autoUpdateTime"`

	Candidate *Candidate `json:"candidate,omitempty" gorm:"foreignKey:CandidateID;references:ID"`
}
