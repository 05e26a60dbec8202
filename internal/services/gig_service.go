package services

import (
	"tujitume_backend/internal/lifecycle"
	"tujitume_backend/internal/logger"
	"tujitume_backend/internal/models"
	"tujitume_backend/internal/repositories"
	"tujitume_backend/internal/services/dto"

	"gorm.io/gorm"
)

type GigService interface {
	CreateGig(db *gorm.DB, ownerID string, req *dto.CreateGigRequest) (*dto.GigResponse, error)
	GetGig(db *gorm.DB, gigID string) (*dto.GigResponse, error)
	ListGigs(db *gorm.DB, query *dto.ListGigsQuery) (*dto.GigListResponse, error)
	GetMyGigs(db *gorm.DB, ownerID string) ([]*dto.GigResponse, error)
	UpdateGig(db *gorm.DB, userID, gigID string, patch *dto.GigPatch) (*dto.GigResponse, error)
	DeleteGig(db *gorm.DB, userID, gigID string) error
	CompleteGig(db *gorm.DB, userID, gigID string) (*dto.GigResponse, error)
}

type gigService struct {
	gigRepo          repositories.GigRepository
	applicationRepo  repositories.ApplicationRepository
	userRepo         repositories.UserRepository
	notificationRepo repositories.NotificationRepository
	notifier         *EmailNotifier
}

func NewGigService(
	gigRepo repositories.GigRepository,
	applicationRepo repositories.ApplicationRepository,
	userRepo repositories.UserRepository,
	notificationRepo repositories.NotificationRepository,
	notifier *EmailNotifier,
) GigService {
	return &gigService{
		gigRepo:          gigRepo,
		applicationRepo:  applicationRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		notifier:         notifier,
	}
}

func (s *gigService) CreateGig(db *gorm.DB, ownerID string, req *dto.CreateGigRequest) (*dto.GigResponse, error) {
	gig := req.ToModel(ownerID)
	if err := s.gigRepo.CreateGig(db, gig); err != nil {
		return nil, mapRepoError(err)
	}

	logger.CtxInfo(ctxOf(db), "Gig created", "gig_id", gig.ID)
	return s.GetGig(db, gig.ID)
}

func (s *gigService) GetGig(db *gorm.DB, gigID string) (*dto.GigResponse, error) {
	gig, err := s.gigRepo.FindByID(db, gigID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return dto.NewGigResponse(gig), nil
}

func (s *gigService) ListGigs(db *gorm.DB, query *dto.ListGigsQuery) (*dto.GigListResponse, error) {
	params := query.ToParams()

	gigs, total, err := s.gigRepo.ListGigs(db, params)
	if err != nil {
		return nil, mapRepoError(err)
	}

	return &dto.GigListResponse{
		Gigs:  dto.NewGigResponses(gigs),
		Total: total,
		Skip:  params.Skip,
		Limit: params.LimitValue(),
	}, nil
}

func (s *gigService) GetMyGigs(db *gorm.DB, ownerID string) ([]*dto.GigResponse, error) {
	gigs, err := s.gigRepo.FindByOwner(db, ownerID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return dto.NewGigResponses(gigs), nil
}

func (s *gigService) UpdateGig(db *gorm.DB, userID, gigID string, patch *dto.GigPatch) (*dto.GigResponse, error) {
	err := db.Transaction(func(tx *gorm.DB) error {
		gig, err := s.gigRepo.FindByIDForUpdate(tx, gigID)
		if err != nil {
			return mapRepoError(err)
		}
		if err := lifecycle.CanEditGig(gig, userID); err != nil {
			return err
		}

		patch.Apply(gig)
		return mapRepoError(s.gigRepo.UpdateGig(tx, gig))
	})
	if err != nil {
		return nil, err
	}
	return s.GetGig(db, gigID)
}

func (s *gigService) DeleteGig(db *gorm.DB, userID, gigID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		gig, err := s.gigRepo.FindByIDForUpdate(tx, gigID)
		if err != nil {
			return mapRepoError(err)
		}
		accepted, err := s.applicationRepo.FindAcceptedByGig(tx, gigID)
		if err != nil {
			return mapRepoError(err)
		}
		if err := lifecycle.CanDeleteGig(gig, accepted, userID); err != nil {
			return err
		}

		if err := s.gigRepo.DeleteGig(tx, gigID); err != nil {
			return mapRepoError(err)
		}
		logger.CtxInfo(ctxOf(tx), "Gig deleted", "gig_id", gigID)
		return nil
	})
}

func (s *gigService) CompleteGig(db *gorm.DB, userID, gigID string) (*dto.GigResponse, error) {
	var gig *models.Gig
	var applicant *models.User

	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		gig, err = s.gigRepo.FindByIDForUpdate(tx, gigID)
		if err != nil {
			return mapRepoError(err)
		}
		accepted, err := s.applicationRepo.FindAcceptedByGig(tx, gigID)
		if err != nil {
			return mapRepoError(err)
		}
		if err := lifecycle.CompleteGig(gig, accepted, userID); err != nil {
			return err
		}

		if err := s.gigRepo.MarkCompleted(tx, gigID); err != nil {
			return mapRepoError(err)
		}
		if err := s.notificationRepo.CreateGigCompletedNotification(tx, gig, accepted.ApplicantID); err != nil {
			return mapRepoError(err)
		}

		applicant, err = s.userRepo.FindByID(tx, accepted.ApplicantID)
		if err != nil {
			return mapRepoError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.CtxInfo(ctxOf(db), "Gig completed", "gig_id", gigID)
	s.notifier.GigCompleted(ctxOf(db), applicant, gig)
	return s.GetGig(db, gigID)
}
