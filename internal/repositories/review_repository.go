package repositories

import (
	"tujitume_backend/internal/models"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	CreateReview(db *gorm.DB, review *models.Review) error
	Exists(db *gorm.DB, gigID, reviewerID, reviewedUserID string) (bool, error)
	FindByReviewedUser(db *gorm.DB, userID string) ([]models.Review, error)
	FindByGig(db *gorm.DB, gigID string) ([]models.Review, error)
}

type ReviewRepositoryImpl struct{}

func NewReviewRepository() ReviewRepository {
	return &ReviewRepositoryImpl{}
}

func (r *ReviewRepositoryImpl) CreateReview(db *gorm.DB, review *models.Review) error {
	if err := db.Create(review).Error; err != nil {
		if isDuplicate(err) {
			return ErrReviewAlreadyExists
		}
		return err
	}
	return nil
}

func (r *ReviewRepositoryImpl) Exists(db *gorm.DB, gigID, reviewerID, reviewedUserID string) (bool, error) {
	var count int64
	err := db.Model(&models.Review{}).
		Where("gig_id = ? AND reviewer_id = ? AND reviewed_user_id = ?", gigID, reviewerID, reviewedUserID).
		Count(&count).Error
	return count > 0, err
}

func (r *ReviewRepositoryImpl) FindByReviewedUser(db *gorm.DB, userID string) ([]models.Review, error) {
	var reviews []models.Review
	err := db.Preload("Reviewer").
		Where("reviewed_user_id = ?", userID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *ReviewRepositoryImpl) FindByGig(db *gorm.DB, gigID string) ([]models.Review, error) {
	var reviews []models.Review
	err := db.Preload("Reviewer").
		Where("gig_id = ?", gigID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}
