// Package lifecycle содержит правила переходов гига и откликов.
//
// Функции пакета чистые: они получают уже загруженные сущности и id
// вызывающего, проверяют предусловия в фиксированном порядке (первая
// ошибка выигрывает) и только после этого меняют переданные сущности.
// При ошибке сущности остаются нетронутыми. Атомарность относительно
// других запросов обеспечивает вызывающий код (транзакция + блокировка).
package lifecycle

import (
	"unicode/utf8"

	"tujitume_backend/internal/models"
	"tujitume_backend/pkg/apperrors"
)

// MinCoverLetterLength - минимальная длина сопроводительного письма (в символах)
const MinCoverLetterLength = 50

// SelectApplicant принимает отклик. accepted - текущий принятый отклик гига
// (nil, если его нет).
func SelectApplicant(gig *models.Gig, app *models.Application, accepted *models.Application, callerID string) error {
	if app == nil || (gig != nil && app.GigID != gig.ID) {
		return apperrors.ErrApplicationNotFound
	}
	if gig == nil {
		return apperrors.ErrGigNotFound
	}
	if callerID != gig.OwnerID {
		return apperrors.ErrNotGigOwner
	}
	if app.Status == models.ApplicationStatusAccepted {
		return apperrors.ErrAlreadyAccepted
	}
	if accepted != nil && accepted.ID != app.ID {
		return apperrors.ErrAlreadySelected
	}
	if app.Status == models.ApplicationStatusRejected {
		return apperrors.ErrApplicationRejected
	}

	app.Status = models.ApplicationStatusAccepted
	return nil
}

// RejectApplicant отклоняет отклик. Отклоненных откликов может быть сколько угодно.
func RejectApplicant(gig *models.Gig, app *models.Application, callerID string) error {
	if app == nil || (gig != nil && app.GigID != gig.ID) {
		return apperrors.ErrApplicationNotFound
	}
	if gig == nil {
		return apperrors.ErrGigNotFound
	}
	if callerID != gig.OwnerID {
		return apperrors.ErrNotGigOwner
	}
	if app.Status == models.ApplicationStatusRejected {
		return apperrors.ErrAlreadyRejected
	}
	if app.Status == models.ApplicationStatusAccepted {
		return apperrors.ErrAlreadyAccepted
	}

	app.Status = models.ApplicationStatusRejected
	return nil
}

// CompleteGig завершает гиг. Переход false -> true происходит ровно один раз.
func CompleteGig(gig *models.Gig, accepted *models.Application, callerID string) error {
	if gig == nil {
		return apperrors.ErrGigNotFound
	}
	if callerID != gig.OwnerID {
		return apperrors.ErrNotGigOwner
	}
	if gig.IsCompleted {
		return apperrors.ErrAlreadyCompleted
	}
	if accepted == nil || accepted.GigID != gig.ID || accepted.Status != models.ApplicationStatusAccepted {
		return apperrors.ErrNoAcceptedApplicant
	}

	gig.IsCompleted = true
	return nil
}

// ApplyToGig строит новый отклик в статусе pending.
// alreadyApplied - существует ли отклик этого пользователя на этот гиг.
func ApplyToGig(gig *models.Gig, applicantID, coverLetter string, alreadyApplied bool) (*models.Application, error) {
	if gig == nil {
		return nil, apperrors.ErrGigNotFound
	}
	if applicantID == gig.OwnerID {
		return nil, apperrors.ErrCannotApplyToOwnGig
	}
	if alreadyApplied {
		return nil, apperrors.ErrDuplicateApplication
	}
	if utf8.RuneCountInString(coverLetter) < MinCoverLetterLength {
		return nil, apperrors.ErrCoverLetterTooShort
	}
	if gig.IsCompleted {
		return nil, apperrors.ErrAlreadyCompleted
	}

	return &models.Application{
		GigID:       gig.ID,
		ApplicantID: applicantID,
		CoverLetter: coverLetter,
		Status:      models.ApplicationStatusPending,
	}, nil
}

// CanEditGig - менять гиг может только владелец и только до завершения
func CanEditGig(gig *models.Gig, callerID string) error {
	if gig == nil {
		return apperrors.ErrGigNotFound
	}
	if callerID != gig.OwnerID {
		return apperrors.ErrNotGigOwner
	}
	if gig.IsCompleted {
		return apperrors.ErrAlreadyCompleted
	}
	return nil
}

// CanDeleteGig - удалить можно, пока нет необратимого состояния:
// гиг не завершен и ни один отклик не принят.
func CanDeleteGig(gig *models.Gig, accepted *models.Application, callerID string) error {
	if gig == nil {
		return apperrors.ErrGigNotFound
	}
	if callerID != gig.OwnerID {
		return apperrors.ErrNotGigOwner
	}
	if gig.IsCompleted {
		return apperrors.ErrAlreadyCompleted
	}
	if accepted != nil {
		return apperrors.ErrGigHasAcceptedApplicant
	}
	return nil
}

// CanListApplications - список откликов гига видит только владелец
func CanListApplications(gig *models.Gig, callerID string) error {
	if gig == nil {
		return apperrors.ErrGigNotFound
	}
	if callerID != gig.OwnerID {
		return apperrors.ErrNotGigOwner
	}
	return nil
}

// CanViewApplication - отклик видят владелец гига и автор отклика
func CanViewApplication(gig *models.Gig, app *models.Application, callerID string) error {
	if app == nil {
		return apperrors.ErrApplicationNotFound
	}
	if gig == nil {
		return apperrors.ErrGigNotFound
	}
	if callerID != gig.OwnerID && callerID != app.ApplicantID {
		return apperrors.ErrApplicationAccessDenied
	}
	return nil
}
