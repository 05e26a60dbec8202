package services

import (
	"context"
	"errors"

	"tujitume_backend/internal/repositories"
	"tujitume_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// mapRepoError переводит sentinel-ошибки репозиториев в ошибки приложения
func mapRepoError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, repositories.ErrUserNotFound):
		return apperrors.ErrUserNotFound
	case errors.Is(err, repositories.ErrGigNotFound):
		return apperrors.ErrGigNotFound
	case errors.Is(err, repositories.ErrApplicationNotFound):
		return apperrors.ErrApplicationNotFound
	case errors.Is(err, repositories.ErrNotificationNotFound):
		return apperrors.ErrNotificationNotFound
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.ErrNotFound(err)

	case errors.Is(err, repositories.ErrApplicationAlreadyExists):
		return apperrors.ErrDuplicateApplication
	case errors.Is(err, repositories.ErrAcceptedAlreadyExists):
		return apperrors.ErrAlreadySelected
	case errors.Is(err, repositories.ErrReviewAlreadyExists):
		return apperrors.ErrDuplicateReview
	case errors.Is(err, repositories.ErrUserAlreadyExists):
		return apperrors.ErrConflict(err, "user", "User with this email already exists")
	}

	return apperrors.DatabaseError(err)
}

// ctxOf - контекст запроса, привязанный хендлером к *gorm.DB
func ctxOf(db *gorm.DB) context.Context {
	if db != nil && db.Statement != nil && db.Statement.Context != nil {
		return db.Statement.Context
	}
	return context.Background()
}
