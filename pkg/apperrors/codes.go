package apperrors

// ErrorCode - тип для кодов ошибок
type ErrorCode string

// Общие, не-доменные коды ошибок
const (
	// Системные и неизвестные ошибки
	CodeInternalError        ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError        ErrorCode = "DATABASE_ERROR"
	CodeExternalServiceError ErrorCode = "EXTERNAL_SERVICE_ERROR"

	// Общие ошибки бизнес-логики (используются фабриками)
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeConflict         ErrorCode = "CONFLICT"

	// Аутентификация и Авторизация (они сквозные)
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"
	CodeForbidden    ErrorCode = "FORBIDDEN"
	CodeInvalidToken ErrorCode = "INVALID_TOKEN"
	CodeTokenExpired ErrorCode = "TOKEN_EXPIRED"
	CodeMissingToken ErrorCode = "MISSING_TOKEN"
)

// Коды жизненного цикла гига (все относятся к виду Conflict)
const (
	CodeAlreadyAccepted         ErrorCode = "ALREADY_ACCEPTED"
	CodeAlreadySelected         ErrorCode = "ALREADY_SELECTED"
	CodeAlreadyRejected         ErrorCode = "ALREADY_REJECTED"
	CodeApplicationRejected     ErrorCode = "APPLICATION_REJECTED"
	CodeAlreadyCompleted        ErrorCode = "ALREADY_COMPLETED"
	CodeNoAcceptedApplicant     ErrorCode = "NO_ACCEPTED_APPLICANT"
	CodeGigNotCompleted         ErrorCode = "GIG_NOT_COMPLETED"
	CodeGigHasAcceptedApplicant ErrorCode = "GIG_HAS_ACCEPTED_APPLICANT"
	CodeCannotApplyToOwnGig     ErrorCode = "CANNOT_APPLY_TO_OWN_GIG"
	CodeDuplicateApplication    ErrorCode = "DUPLICATE_APPLICATION"
	CodeDuplicateReview         ErrorCode = "DUPLICATE_REVIEW"
	CodeInvalidReviewTarget     ErrorCode = "INVALID_REVIEW_TARGET"

	CodeInvalidRating ErrorCode = "INVALID_RATING"
)

// Kind - категория ошибки, видимая клиенту
type Kind string

const (
	KindNotFound        Kind = "not_found"
	KindForbidden       Kind = "forbidden"
	KindConflict        Kind = "conflict"
	KindValidation      Kind = "validation"
	KindUnauthenticated Kind = "unauthenticated"
	KindInternal        Kind = "internal"
)

var kindByCode = map[ErrorCode]Kind{
	CodeNotFound:         KindNotFound,
	CodeForbidden:        KindForbidden,
	CodeValidationFailed: KindValidation,
	CodeInvalidRating:    KindValidation,
	CodeUnauthorized:     KindUnauthenticated,
	CodeInvalidToken:     KindUnauthenticated,
	CodeTokenExpired:     KindUnauthenticated,
	CodeMissingToken:     KindUnauthenticated,
	CodeConflict:         KindConflict,

	CodeAlreadyAccepted:         KindConflict,
	CodeAlreadySelected:         KindConflict,
	CodeAlreadyRejected:         KindConflict,
	CodeApplicationRejected:     KindConflict,
	CodeAlreadyCompleted:        KindConflict,
	CodeNoAcceptedApplicant:     KindConflict,
	CodeGigNotCompleted:         KindConflict,
	CodeGigHasAcceptedApplicant: KindConflict,
	CodeCannotApplyToOwnGig:     KindConflict,
	CodeDuplicateApplication:    KindConflict,
	CodeDuplicateReview:         KindConflict,
	CodeInvalidReviewTarget:     KindConflict,
}

// KindOf возвращает категорию кода; неизвестные коды считаются внутренними
func KindOf(code ErrorCode) Kind {
	if k, ok := kindByCode[code]; ok {
		return k
	}
	return KindInternal
}
