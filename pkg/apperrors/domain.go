package apperrors

import (
	"net/http"
)

/*
Этот файл содержит фабрики и предопределенные переменные
для ошибок домена: гиги, отклики (applications), отзывы, пользователи.
Все конфликты состояния отдаются клиенту как 400.
*/

// =========================================================================
// Фабричные ФУНКЦИИ
// =========================================================================

// ErrNotFound - фабрика для ошибки "не найдено" (404)
// Используется, когда ошибка репозитория (типа gorm.ErrRecordNotFound)
// должна быть преобразована в AppError.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrConflict - общая фабрика для конфликтов состояния (400)
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusBadRequest)
}

func conflict(code ErrorCode, domain, message string) *AppError {
	return New(code, domain, message, http.StatusBadRequest)
}

// =========================================================================
// Not found
// =========================================================================

var ErrUserNotFound = NewNotFoundError("user", "User not found")

var ErrGigNotFound = NewNotFoundError("gig", "Gig not found")

var ErrApplicationNotFound = NewNotFoundError("application", "Application not found")

var ErrNotificationNotFound = NewNotFoundError("notification", "Notification not found")

// =========================================================================
// Forbidden
// =========================================================================

// ErrNotGigOwner - действие доступно только владельцу гига
var ErrNotGigOwner = New(
	CodeForbidden,
	"gig",
	"Only the gig owner can perform this action",
	http.StatusForbidden,
)

// ErrNotGigParticipant - отзыв может оставить только владелец или принятый исполнитель
var ErrNotGigParticipant = New(
	CodeForbidden,
	"review",
	"Only the gig owner or the accepted applicant can review this gig",
	http.StatusForbidden,
)

// ErrApplicationAccessDenied - отклик виден только владельцу гига и автору
var ErrApplicationAccessDenied = New(
	CodeForbidden,
	"application",
	"Not authorized to view this application",
	http.StatusForbidden,
)

// =========================================================================
// Conflict (state-invariant violations)
// =========================================================================

var ErrAlreadyAccepted = conflict(CodeAlreadyAccepted, "application", "Application is already accepted")

var ErrAlreadySelected = conflict(CodeAlreadySelected, "gig", "Another applicant has already been selected for this gig")

var ErrAlreadyRejected = conflict(CodeAlreadyRejected, "application", "Application is already rejected")

// ErrApplicationRejected - отклоненный отклик нельзя принять
var ErrApplicationRejected = conflict(CodeApplicationRejected, "application", "Rejected application cannot be accepted")

var ErrAlreadyCompleted = conflict(CodeAlreadyCompleted, "gig", "Gig is already completed")

var ErrNoAcceptedApplicant = conflict(CodeNoAcceptedApplicant, "gig", "Gig has no accepted applicant")

var ErrGigNotCompleted = conflict(CodeGigNotCompleted, "review", "Cannot review a gig that is not completed")

var ErrGigHasAcceptedApplicant = conflict(CodeGigHasAcceptedApplicant, "gig", "Gig with an accepted applicant cannot be deleted")

var ErrCannotApplyToOwnGig = conflict(CodeCannotApplyToOwnGig, "application", "Cannot apply to your own gig")

var ErrDuplicateApplication = conflict(CodeDuplicateApplication, "application", "You have already applied to this gig")

var ErrDuplicateReview = conflict(CodeDuplicateReview, "review", "You have already reviewed this user for this gig")

var ErrInvalidReviewTarget = conflict(CodeInvalidReviewTarget, "review", "You can only review the other party of this gig")

// =========================================================================
// Validation
// =========================================================================

// ErrInvalidRating - оценка вне диапазона 1..5
var ErrInvalidRating = New(
	CodeInvalidRating,
	"review",
	"Rating must be between 1 and 5",
	http.StatusBadRequest,
)

// ErrCoverLetterTooShort - сопроводительное письмо короче 50 символов
var ErrCoverLetterTooShort = ValidationError(map[string]string{
	"cover_letter": "Must be at least 50 items/characters long",
})

// =========================================================================
// Unauthenticated (из Identity Verifier)
// =========================================================================

var ErrMissingToken = New(
	CodeMissingToken,
	"auth",
	"Authorization header missing or invalid",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid authentication token",
	http.StatusUnauthorized,
)

var ErrTokenExpired = New(
	CodeTokenExpired,
	"auth",
	"Authentication token has expired",
	http.StatusUnauthorized,
)

var ErrCredentialsNotValidated = New(
	CodeUnauthorized,
	"auth",
	"Could not validate credentials",
	http.StatusUnauthorized,
)
