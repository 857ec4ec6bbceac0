package models

// CandidateStatus defines the pipeline stages a candidate moves through.
type CandidateStatus string

const (
	StatusIncomplete  CandidateStatus = "incomplete"
	StatusPending     CandidateStatus = "pending"
	StatusReviewing   CandidateStatus = "reviewing"
	StatusShortlisted CandidateStatus = "shortlisted"
	StatusInterviewed CandidateStatus = "interviewed"
	StatusAccepted    CandidateStatus = "accepted"
	StatusRejected    CandidateStatus = "rejected"
)

// IsPastReviewing reports whether the status is at or beyond the reviewing
// stage. Submission side effects never downgrade these candidates.
func (s CandidateStatus) IsPastReviewing() bool {
	switch s {
	case StatusReviewing, StatusShortlisted, StatusInterviewed, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// InterviewStatus defines the possible states of a scheduled interview.
type InterviewStatus string

const (
	InterviewScheduled InterviewStatus = "scheduled"
	InterviewCompleted InterviewStatus = "completed"
	InterviewCancelled InterviewStatus = "cancelled"
	InterviewNoShow    InterviewStatus = "no_show"
)

// QuestionType defines how many options a candidate may select.
type QuestionType string

const (
	SingleSelect QuestionType = "single_select"
	MultiSelect  QuestionType = "multi_select"
)

// ScoringMode defines how selected options translate into points.
type ScoringMode string

const (
	AllOrNothing ScoringMode = "all_or_nothing"
	Partial      ScoringMode = "partial"
	Weighted     ScoringMode = "weighted"
)

// EducationLevel defines the candidate's highest completed education.
type EducationLevel string

const (
	Illiterate          EducationLevel = "illiterate"
	PrimaryIncomplete   EducationLevel = "primary_incomplete"
	PrimaryComplete     EducationLevel = "primary_complete"
	SecondaryIncomplete EducationLevel = "secondary_incomplete"
	SecondaryComplete   EducationLevel = "secondary_complete"
	TechnicalIncomplete EducationLevel = "technical_incomplete"
	TechnicalComplete   EducationLevel = "technical_complete"
	HigherIncomplete    EducationLevel = "higher_incomplete"
	HigherComplete      EducationLevel = "higher_complete"
	Postgraduate        EducationLevel = "postgraduate"
)

// YesNo is used for boolean profile questions captured on the intake form.
type YesNo string

const (
	Yes YesNo = "yes"
	No  YesNo = "no"
)

// TravelAvailability is a ternary logistics answer.
type TravelAvailability string

const (
	TravelYes          TravelAvailability = "yes"
	TravelNo           TravelAvailability = "no"
	TravelOccasionally TravelAvailability = "occasionally"
)

// AvailabilityStart defines the candidate's declared starting lead time.
type AvailabilityStart string

const (
	AvailabilityImmediate AvailabilityStart = "immediate"
	Availability15Days    AvailabilityStart = "15_days"
	Availability30Days    AvailabilityStart = "30_days"
	AvailabilityLater     AvailabilityStart = "later"
)
