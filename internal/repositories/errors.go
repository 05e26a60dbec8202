package repositories

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrGigNotFound          = errors.New("gig not found")
	ErrApplicationNotFound  = errors.New("application not found")
	ErrReviewNotFound       = errors.New("review not found")
	ErrNotificationNotFound = errors.New("notification not found")

	ErrUserAlreadyExists        = errors.New("user already exists")
	ErrApplicationAlreadyExists = errors.New("application already exists for this gig")
	ErrAcceptedAlreadyExists    = errors.New("gig already has an accepted application")
	ErrReviewAlreadyExists      = errors.New("review already exists for this gig and user")
)

// isDuplicate - нарушение уникального индекса (TranslateError: true)
func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func notFound(err error, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
