package services

import (
	"tujitume_backend/internal/lifecycle"
	"tujitume_backend/internal/logger"
	"tujitume_backend/internal/models"
	"tujitume_backend/internal/repositories"
	"tujitume_backend/internal/services/dto"

	"gorm.io/gorm"
)

type ReviewService interface {
	SubmitReview(db *gorm.DB, reviewerID string, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error)
	GetUserReviews(db *gorm.DB, userID string) ([]*dto.ReviewResponse, error)
	GetGigReviews(db *gorm.DB, gigID string) ([]*dto.ReviewResponse, error)
	GetUserReviewStats(db *gorm.DB, userID string) (*dto.ReviewStatsResponse, error)
}

type reviewService struct {
	reviewRepo       repositories.ReviewRepository
	gigRepo          repositories.GigRepository
	applicationRepo  repositories.ApplicationRepository
	userRepo         repositories.UserRepository
	notificationRepo repositories.NotificationRepository
}

func NewReviewService(
	reviewRepo repositories.ReviewRepository,
	gigRepo repositories.GigRepository,
	applicationRepo repositories.ApplicationRepository,
	userRepo repositories.UserRepository,
	notificationRepo repositories.NotificationRepository,
) ReviewService {
	return &reviewService{
		reviewRepo:       reviewRepo,
		gigRepo:          gigRepo,
		applicationRepo:  applicationRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
	}
}

func (s *reviewService) SubmitReview(db *gorm.DB, reviewerID string, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	var review *models.Review

	err := db.Transaction(func(tx *gorm.DB) error {
		gig, err := s.gigRepo.FindByID(tx, req.GigID)
		if err != nil {
			return mapRepoError(err)
		}

		accepted, err := s.applicationRepo.FindAcceptedByGig(tx, gig.ID)
		if err != nil {
			return mapRepoError(err)
		}

		exists, err := s.reviewRepo.Exists(tx, gig.ID, reviewerID, req.ReviewedUserID)
		if err != nil {
			return mapRepoError(err)
		}

		review, err = lifecycle.SubmitReview(gig, accepted, lifecycle.ReviewInput{
			ReviewerID:     reviewerID,
			ReviewedUserID: req.ReviewedUserID,
			Rating:         req.Rating,
			Comment:        req.Comment,
		}, exists)
		if err != nil {
			return err
		}

		if err := s.reviewRepo.CreateReview(tx, review); err != nil {
			return mapRepoError(err)
		}
		return mapRepoError(s.notificationRepo.CreateReviewReceivedNotification(tx, review, gig.Title))
	})
	if err != nil {
		return nil, err
	}

	logger.CtxInfo(ctxOf(db), "Review submitted", "gig_id", review.GigID, "reviewed_user_id", review.ReviewedUserID, "rating", review.Rating)
	return dto.NewReviewResponse(review), nil
}

func (s *reviewService) GetUserReviews(db *gorm.DB, userID string) ([]*dto.ReviewResponse, error) {
	if _, err := s.userRepo.FindByID(db, userID); err != nil {
		return nil, mapRepoError(err)
	}

	reviews, err := s.reviewRepo.FindByReviewedUser(db, userID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return dto.NewReviewResponses(reviews), nil
}

func (s *reviewService) GetGigReviews(db *gorm.DB, gigID string) ([]*dto.ReviewResponse, error) {
	if _, err := s.gigRepo.FindByID(db, gigID); err != nil {
		return nil, mapRepoError(err)
	}

	reviews, err := s.reviewRepo.FindByGig(db, gigID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return dto.NewReviewResponses(reviews), nil
}

func (s *reviewService) GetUserReviewStats(db *gorm.DB, userID string) (*dto.ReviewStatsResponse, error) {
	if _, err := s.userRepo.FindByID(db, userID); err != nil {
		return nil, mapRepoError(err)
	}

	reviews, err := s.reviewRepo.FindByReviewedUser(db, userID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	stats := lifecycle.ComputeUserReviewStats(userID, reviews)
	return &dto.ReviewStatsResponse{
		UserID:        stats.UserID,
		AverageRating: stats.AverageRating,
		TotalReviews:  stats.TotalReviews,
	}, nil
}
