package validator

import (
	"log"

	"worklink_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует все кастомные функции валидации в
// переданном экземпляре валидатора.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Без правила приложение работать не должно -
			// это ошибка времени запуска.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-user-role", validateUserRole)
	mustRegister("is-job-status", validateJobStatus)
	mustRegister("is-job-type", validateJobType)
	mustRegister("is-experience", validateExperience)
	mustRegister("is-application-status", validateApplicationStatus)
	mustRegister("is-availability", validateAvailability)
}

// --- Функции валидации ---

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // пустые проверяет 'required'
	}
	switch models.UserRole(value) {
	case models.UserRoleEmployer, models.UserRoleCandidate, models.UserRoleAdmin:
		return true
	default:
		return false
	}
}

func validateJobStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.JobStatus(value) {
	case models.JobStatusDraft, models.JobStatusActive, models.JobStatusClosed:
		return true
	default:
		return false
	}
}

func validateJobType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.JobType(value) {
	case models.JobTypeFullTime, models.JobTypePartTime, models.JobTypeContract, models.JobTypeInternship:
		return true
	default:
		return false
	}
}

func validateExperience(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.ExperienceLevel(value) {
	case models.ExperienceEntry, models.ExperienceJunior, models.ExperienceMid, models.ExperienceSenior, models.ExperienceLead:
		return true
	default:
		return false
	}
}

func validateApplicationStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.ApplicationStatus(value) {
	case models.ApplicationStatusPending, models.ApplicationStatusReviewing, models.ApplicationStatusShortlisted,
		models.ApplicationStatusRejected, models.ApplicationStatusAccepted:
		return true
	default:
		return false
	}
}

func validateAvailability(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.Availability(value) {
	case models.AvailabilityImmediate, models.AvailabilityTwoWeeks, models.AvailabilityOneMonth,
		models.AvailabilityThreeMonths, models.AvailabilityNegotiable:
		return true
	default:
		return false
	}
}
