package services

import (
	"errors"

	"tujitume_backend/internal/lifecycle"
	"tujitume_backend/internal/logger"
	"tujitume_backend/internal/models"
	"tujitume_backend/internal/repositories"
	"tujitume_backend/internal/services/dto"
	"tujitume_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ApplicationService interface {
	Apply(db *gorm.DB, userID, gigID string, req *dto.CreateApplicationRequest) (*dto.ApplicationResponse, error)
	GetApplication(db *gorm.DB, userID, applicationID string) (*dto.ApplicationResponse, error)
	ListGigApplications(db *gorm.DB, userID, gigID string) ([]*dto.ApplicationResponse, error)
	GetMyApplications(db *gorm.DB, userID string) ([]*dto.ApplicationResponse, error)
	SelectApplicant(db *gorm.DB, userID, applicationID string) (*dto.ApplicationResponse, error)
	RejectApplicant(db *gorm.DB, userID, applicationID string) (*dto.ApplicationResponse, error)
}

type applicationService struct {
	applicationRepo  repositories.ApplicationRepository
	gigRepo          repositories.GigRepository
	userRepo         repositories.UserRepository
	notificationRepo repositories.NotificationRepository
	notifier         *EmailNotifier
}

func NewApplicationService(
	applicationRepo repositories.ApplicationRepository,
	gigRepo repositories.GigRepository,
	userRepo repositories.UserRepository,
	notificationRepo repositories.NotificationRepository,
	notifier *EmailNotifier,
) ApplicationService {
	return &applicationService{
		applicationRepo:  applicationRepo,
		gigRepo:          gigRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		notifier:         notifier,
	}
}

func (s *applicationService) Apply(db *gorm.DB, userID, gigID string, req *dto.CreateApplicationRequest) (*dto.ApplicationResponse, error) {
	var app *models.Application
	var gig *models.Gig
	var owner, applicant *models.User

	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		// блокировка строки гига: отклик не проскочит параллельное завершение
		gig, err = s.gigRepo.FindByIDForUpdate(tx, gigID)
		if err != nil {
			return mapRepoError(err)
		}

		exists, err := s.applicationRepo.Exists(tx, gigID, userID)
		if err != nil {
			return mapRepoError(err)
		}

		app, err = lifecycle.ApplyToGig(gig, userID, req.CoverLetter, exists)
		if err != nil {
			return err
		}
		if err := s.applicationRepo.CreateApplication(tx, app); err != nil {
			return mapRepoError(err)
		}

		applicant, err = s.userRepo.FindByID(tx, userID)
		if err != nil {
			return mapRepoError(err)
		}
		if err := s.notificationRepo.CreateNewApplicationNotification(tx, gig, app, applicant.Name); err != nil {
			return mapRepoError(err)
		}
		owner, err = s.userRepo.FindByID(tx, gig.OwnerID)
		return mapRepoError(err)
	})
	if err != nil {
		return nil, err
	}

	logger.CtxInfo(ctxOf(db), "Application submitted", "gig_id", gigID, "application_id", app.ID)
	s.notifier.NewApplication(ctxOf(db), owner, gig, applicant.Name)

	app.Applicant = applicant
	return dto.NewApplicationResponse(app), nil
}

func (s *applicationService) GetApplication(db *gorm.DB, userID, applicationID string) (*dto.ApplicationResponse, error) {
	app, gig, err := s.loadApplicationWithGig(db, applicationID, false)
	if err != nil {
		return nil, err
	}
	if err := lifecycle.CanViewApplication(gig, app, userID); err != nil {
		return nil, err
	}

	app.Gig = gig
	return dto.NewApplicationResponse(app), nil
}

func (s *applicationService) ListGigApplications(db *gorm.DB, userID, gigID string) ([]*dto.ApplicationResponse, error) {
	gig, err := s.gigRepo.FindByID(db, gigID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if err := lifecycle.CanListApplications(gig, userID); err != nil {
		return nil, err
	}

	apps, err := s.applicationRepo.FindByGig(db, gigID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return dto.NewApplicationResponses(apps), nil
}

func (s *applicationService) GetMyApplications(db *gorm.DB, userID string) ([]*dto.ApplicationResponse, error) {
	apps, err := s.applicationRepo.FindByApplicant(db, userID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return dto.NewApplicationResponses(apps), nil
}

// SelectApplicant принимает отклик. Строка гига блокируется на время
// транзакции, поэтому параллельные выборы на один гиг выполняются по очереди;
// частичный уникальный индекс ловит все, что прошло мимо блокировки.
func (s *applicationService) SelectApplicant(db *gorm.DB, userID, applicationID string) (*dto.ApplicationResponse, error) {
	var app *models.Application
	var gig *models.Gig

	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		app, gig, err = s.loadApplicationWithGig(tx, applicationID, true)
		if err != nil {
			return err
		}

		accepted, err := s.applicationRepo.FindAcceptedByGig(tx, gig.ID)
		if err != nil {
			return mapRepoError(err)
		}
		if err := lifecycle.SelectApplicant(gig, app, accepted, userID); err != nil {
			return err
		}

		if err := s.applicationRepo.UpdateStatus(tx, app); err != nil {
			return mapRepoError(err)
		}
		return mapRepoError(s.notificationRepo.CreateApplicationStatusNotification(tx, gig, app))
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrAlreadySelected) {
			logger.CtxWarn(ctxOf(db), "Concurrent selection rejected", "application_id", applicationID)
		}
		return nil, err
	}

	logger.CtxInfo(ctxOf(db), "Applicant selected", "gig_id", gig.ID, "application_id", app.ID)
	s.notifier.ApplicationStatus(ctxOf(db), app.Applicant, gig, true)

	app.Gig = gig
	return dto.NewApplicationResponse(app), nil
}

func (s *applicationService) RejectApplicant(db *gorm.DB, userID, applicationID string) (*dto.ApplicationResponse, error) {
	var app *models.Application
	var gig *models.Gig

	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		app, gig, err = s.loadApplicationWithGig(tx, applicationID, true)
		if err != nil {
			return err
		}
		if err := lifecycle.RejectApplicant(gig, app, userID); err != nil {
			return err
		}

		if err := s.applicationRepo.UpdateStatus(tx, app); err != nil {
			return mapRepoError(err)
		}
		return mapRepoError(s.notificationRepo.CreateApplicationStatusNotification(tx, gig, app))
	})
	if err != nil {
		return nil, err
	}

	logger.CtxInfo(ctxOf(db), "Applicant rejected", "gig_id", gig.ID, "application_id", app.ID)
	s.notifier.ApplicationStatus(ctxOf(db), app.Applicant, gig, false)

	app.Gig = gig
	return dto.NewApplicationResponse(app), nil
}

// loadApplicationWithGig загружает отклик и его гиг. С lock гиг блокируется,
// а отклик перечитывается уже под блокировкой, чтобы видеть актуальный статус.
func (s *applicationService) loadApplicationWithGig(db *gorm.DB, applicationID string, lock bool) (*models.Application, *models.Gig, error) {
	app, err := s.applicationRepo.FindByID(db, applicationID)
	if err != nil {
		return nil, nil, mapRepoError(err)
	}

	var gig *models.Gig
	if lock {
		gig, err = s.gigRepo.FindByIDForUpdate(db, app.GigID)
	} else {
		gig, err = s.gigRepo.FindByID(db, app.GigID)
	}
	if err != nil {
		return nil, nil, mapRepoError(err)
	}

	if lock {
		if app, err = s.applicationRepo.FindByID(db, applicationID); err != nil {
			return nil, nil, mapRepoError(err)
		}
	}
	return app, gig, nil
}
