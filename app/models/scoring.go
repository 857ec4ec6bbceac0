package models

import (
	"math"
	"time"
)

// Scoring category keys used in weight maps and score breakdowns.
const (
	CategoryExperienceSkills      = "experience_skills"
	CategoryEducation             = "education"
	CategoryAvailabilityLogistics = "availability_logistics"
	CategoryInterviewPerformance  = "interview_performance"
)

// ScoringWeights is one version of the candidate-scoring rubric: the maximum
// points each criterion can contribute. A valid configuration sums to 100.
// Exactly one row is active at a time; writes insert a new active version.
type ScoringWeights struct {
	ID string `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`

	// Experience & skills
	YearsOfExperience     int `json:"years_of_experience" gorm:"default:27" validate:"gte=0"`
	IdleTime              int `json:"idle_time" gorm:"default:5" validate:"gte=0"`
	WorkedHereBefore      int `json:"worked_here_before" gorm:"default:0" validate:"gte=0"`
	HasRelativesInCompany int `json:"has_relatives_in_company" gorm:"default:0" validate:"gte=0"`
	ReferredBy            int `json:"referred_by" gorm:"default:0" validate:"gte=0"`

	// Education & qualifications
	EducationLevel int `json:"education_level" gorm:"default:16" validate:"gte=0"`
	Courses        int `json:"courses" gorm:"default:0" validate:"gte=0"`
	Skills         int `json:"skills" gorm:"default:2" validate:"gte=0"`
	Certifications int `json:"certifications" gorm:"default:0" validate:"gte=0"`

	// Availability & logistics
	ImmediateAvailability int `json:"immediate_availability" gorm:"default:5" validate:"gte=0"`
	OwnTransportation     int `json:"own_transportation" gorm:"default:5" validate:"gte=0"`
	TravelAvailability    int `json:"travel_availability" gorm:"default:5" validate:"gte=0"`
	HeightWork            int `json:"height_work" gorm:"default:5" validate:"gte=0"`

	// Interview performance
	AverageRating int `json:"average_rating" gorm:"default:30" validate:"gte=0"`

	IsActive  bool      `json:"is_active" gorm:"default:true;index"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	CreatedBy *string   `json:"created_by,omitempty" gorm:"type:uuid"`
}

// DefaultScoringWeights returns the system default rubric (total 100).
func DefaultScoringWeights() *ScoringWeights {
	return &ScoringWeights{
		YearsOfExperience:     27,
		IdleTime:              5,
		WorkedHereBefore:      0,
		HasRelativesInCompany: 0,
		ReferredBy:            0,
		EducationLevel:        16,
		Courses:               0,
		Skills:                2,
		Certifications:        0,
		ImmediateAvailability: 5,
		OwnTransportation:     5,
		TravelAvailability:    5,
		HeightWork:            5,
		AverageRating:         30,
		IsActive:              true,
	}
}

// Total sums every criterion cap.
func (w *ScoringWeights) Total() int {
	return w.YearsOfExperience + w.IdleTime + w.WorkedHereBefore +
		w.HasRelativesInCompany + w.ReferredBy +
		w.EducationLevel + w.Courses + w.Skills + w.Certifications +
		w.ImmediateAvailability + w.OwnTransportation +
		w.TravelAvailability + w.HeightWork +
		w.AverageRating
}

// ToMap groups the criterion caps by category for API responses.
func (w *ScoringWeights) ToMap() map[string]map[string]int {
	return map[string]map[string]int{
		CategoryExperienceSkills: {
			"years_of_experience":      w.YearsOfExperience,
			"idle_time":                w.IdleTime,
			"worked_here_before":       w.WorkedHereBefore,
			"has_relatives_in_company": w.HasRelativesInCompany,
			"referred_by":              w.ReferredBy,
		},
		CategoryEducation: {
			"education_level": w.EducationLevel,
			"courses":         w.Courses,
			"skills":          w.Skills,
			"certifications":  w.Certifications,
		},
		CategoryAvailabilityLogistics: {
			"immediate_availability": w.ImmediateAvailability,
			"own_transportation":     w.OwnTransportation,
			"travel_availability":    w.TravelAvailability,
			"height_work":            w.HeightWork,
		},
		CategoryInterviewPerformance: {
			"average_rating": w.AverageRating,
		},
	}
}

// ScoringWeightsFromMap builds a configuration from the nested category map
// accepted by the settings API. Criteria missing from the payload keep their
// default values.
func ScoringWeightsFromMap(m map[string]map[string]float64) *ScoringWeights {
	w := DefaultScoringWeights()
	set := func(category, criterion string, dst *int) {
		if values, ok := m[category]; ok {
			if v, ok := values[criterion]; ok {
				*dst = int(math.Round(v))
			}
		}
	}
	set(CategoryExperienceSkills, "years_of_experience", &w.YearsOfExperience)
	set(CategoryExperienceSkills, "idle_time", &w.IdleTime)
	set(CategoryExperienceSkills, "worked_here_before", &w.WorkedHereBefore)
	set(CategoryExperienceSkills, "has_relatives_in_company", &w.HasRelativesInCompany)
	set(CategoryExperienceSkills, "referred_by", &w.ReferredBy)
	set(CategoryEducation, "education_level", &w.EducationLevel)
	set(CategoryEducation, "courses", &w.Courses)
	set(CategoryEducation, "skills", &w.Skills)
	set(CategoryEducation, "certifications", &w.Certifications)
	set(CategoryAvailabilityLogistics, "immediate_availability", &w.ImmediateAvailability)
	set(CategoryAvailabilityLogistics, "own_transportation", &w.OwnTransportation)
	set(CategoryAvailabilityLogistics, "travel_availability", &w.TravelAvailability)
	set(CategoryAvailabilityLogistics, "height_work", &w.HeightWork)
	set(CategoryInterviewPerformance, "average_rating", &w.AverageRating)
	return w
}
