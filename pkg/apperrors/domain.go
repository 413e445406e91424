package apperrors

import (
	"net/http"
)

/*
Этот файл содержит фабрики и предопределенные переменные
для общих ошибок бизнес-логики и домена.
*/

// ErrNotFound - фабрика для ошибки "не найдено" (404).
// Используется, когда ошибка репозитория (типа gorm.ErrRecordNotFound)
// должна быть преобразована в AppError.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists - фабрика для ошибки "уже существует" (409)
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict - общая фабрика для конфликтов (409)
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidOperation - фабрика для невалидных операций (400)
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// --- Auth & User Status ---

// ErrInvalidCredentials - неверный email или пароль.
// Одинаков для "нет такого email", "нет пароля" и "пароль не подошел".
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

// ErrAccessTokenRequired - отсутствует заголовок Authorization
var ErrAccessTokenRequired = New(
	CodeUnauthorized,
	"auth",
	"Access token required",
	http.StatusUnauthorized,
)

// ErrTokenExpired - access token просрочен.
// Отдельный код, чтобы клиент мог молча сделать refresh.
var ErrTokenExpired = New(
	CodeTokenExpired,
	"auth",
	"Access token expired",
	http.StatusUnauthorized,
)

// ErrInvalidToken - неверный или просроченный токен (refresh, access)
var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

// ErrUserBlocked - аккаунт заблокирован администратором. Отдается
// только аутентифицированным запросам (middleware); логин и refresh
// для заблокированного отвечают так же, как для неверных кредов
// или невалидного токена
var ErrUserBlocked = New(
	CodeUnauthorized,
	"auth",
	"Account is blocked",
	http.StatusUnauthorized,
)

// ErrEmailAlreadyExists - email уже используется
var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

// ErrWeakPassword - пароль слишком слабый
var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password is too weak. Minimum 6 characters required.",
	http.StatusBadRequest,
)

// ErrCannotModifySelf - админ пытается заблокировать/удалить себя
var ErrCannotModifySelf = New(
	CodeForbidden,
	"business_logic",
	"Operation on self is not allowed",
	http.StatusForbidden,
)

// ErrInsufficientPermissions - роль не входит в allow-list операции
var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// --- Jobs ---

// ErrJobNotFound - вакансия не найдена ЛИБО принадлежит другому работодателю.
// Случаи намеренно не различаются (анти-энумерация).
var ErrJobNotFound = New(
	CodeNotFound,
	"job",
	"Job not found",
	http.StatusNotFound,
)

// ErrJobNotActive - отклик на неактивную вакансию
var ErrJobNotActive = New(
	CodeInvalidOperation,
	"job",
	"Job is not active",
	http.StatusBadRequest,
)

// ErrInvalidJobStatus - операция невозможна в текущем статусе вакансии
var ErrInvalidJobStatus = New(
	CodeInvalidStatus,
	"job",
	"Operation not allowed for the current job status",
	http.StatusConflict,
)

// --- Applications ---

// ErrApplicationNotFound - отклик не найден либо недоступен вызывающему
var ErrApplicationNotFound = New(
	CodeNotFound,
	"application",
	"Application not found",
	http.StatusNotFound,
)

// ErrAlreadyApplied - повторный отклик на ту же вакансию
var ErrAlreadyApplied = New(
	CodeConflict,
	"application",
	"You have already applied to this job",
	http.StatusBadRequest,
)

// ErrCannotApplyToOwnJob - работодатель откликается на свою вакансию
var ErrCannotApplyToOwnJob = New(
	CodeInvalidOperation,
	"application",
	"Cannot apply to your own job",
	http.StatusBadRequest,
)

// ErrInvalidTransition - переход статуса не разрешен таблицей переходов
var ErrInvalidTransition = New(
	CodeInvalidStatus,
	"application",
	"Status transition is not allowed",
	http.StatusConflict,
)

// ErrWithdrawNotPending - отозвать можно только отклик в статусе pending
var ErrWithdrawNotPending = New(
	CodeInvalidOperation,
	"application",
	"Only pending applications can be withdrawn",
	http.StatusBadRequest,
)
