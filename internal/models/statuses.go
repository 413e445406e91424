package models

type UserRole string
type JobStatus string
type JobType string
type ExperienceLevel string
type ApplicationStatus string
type Availability string

const (
	UserRoleEmployer  UserRole = "employer"
	UserRoleCandidate UserRole = "candidate"
	UserRoleAdmin     UserRole = "admin"

	JobStatusDraft  JobStatus = "draft"
	JobStatusActive JobStatus = "active"
	JobStatusClosed JobStatus = "closed"

	JobTypeFullTime   JobType = "full_time"
	JobTypePartTime   JobType = "part_time"
	JobTypeContract   JobType = "contract"
	JobTypeInternship JobType = "internship"

	ExperienceEntry  ExperienceLevel = "entry"
	ExperienceJunior ExperienceLevel = "junior"
	ExperienceMid    ExperienceLevel = "mid"
	ExperienceSenior ExperienceLevel = "senior"
	ExperienceLead   ExperienceLevel = "lead"

	ApplicationStatusPending     ApplicationStatus = "pending"
	ApplicationStatusReviewing   ApplicationStatus = "reviewing"
	ApplicationStatusShortlisted ApplicationStatus = "shortlisted"
	ApplicationStatusRejected    ApplicationStatus = "rejected"
	ApplicationStatusAccepted    ApplicationStatus = "accepted"

	AvailabilityImmediate   Availability = "immediate"
	AvailabilityTwoWeeks    Availability = "two_weeks"
	AvailabilityOneMonth    Availability = "one_month"
	AvailabilityThreeMonths Availability = "three_months"
	AvailabilityNegotiable  Availability = "negotiable"
)

// AllApplicationStatuses - порядок важен для статистики
var AllApplicationStatuses = []ApplicationStatus{
	ApplicationStatusPending,
	ApplicationStatusReviewing,
	ApplicationStatusShortlisted,
	ApplicationStatusRejected,
	ApplicationStatusAccepted,
}

// applicationTransitions - таблица разрешенных переходов статуса отклика.
// Легальность проверяется на сервере, а не в UI: accepted и rejected -
// терминальные, из них выхода нет.
var applicationTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationStatusPending:     {ApplicationStatusReviewing, ApplicationStatusShortlisted, ApplicationStatusRejected},
	ApplicationStatusReviewing:   {ApplicationStatusShortlisted, ApplicationStatusRejected},
	ApplicationStatusShortlisted: {ApplicationStatusAccepted, ApplicationStatusRejected},
	ApplicationStatusAccepted:    {},
	ApplicationStatusRejected:    {},
}

// AllowedNext возвращает статусы, в которые можно перейти из current
func AllowedNext(current ApplicationStatus) []ApplicationStatus {
	return applicationTransitions[current]
}

// CanTransition проверяет, разрешен ли переход from -> to
func CanTransition(from, to ApplicationStatus) bool {
	for _, s := range applicationTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminal сообщает, терминален ли статус отклика
func (s ApplicationStatus) IsTerminal() bool {
	return len(applicationTransitions[s]) == 0 && (s == ApplicationStatusAccepted || s == ApplicationStatusRejected)
}
