package lifecycle

import (
	"math"

	"tujitume_backend/internal/models"
	"tujitume_backend/pkg/apperrors"
)

const (
	MinRating = 1
	MaxRating = 5
)

// ReviewInput - данные отзыва от вызывающего
type ReviewInput struct {
	ReviewerID     string
	ReviewedUserID string
	Rating         int
	Comment        *string
}

// SubmitReview проверяет право на отзыв и строит новую запись.
// accepted - принятый отклик гига, alreadyReviewed - есть ли отзыв
// для тройки (gig, reviewer, reviewed user).
func SubmitReview(gig *models.Gig, accepted *models.Application, in ReviewInput, alreadyReviewed bool) (*models.Review, error) {
	if gig == nil {
		return nil, apperrors.ErrGigNotFound
	}
	if !gig.IsCompleted {
		return nil, apperrors.ErrGigNotCompleted
	}
	if accepted == nil || accepted.GigID != gig.ID || accepted.Status != models.ApplicationStatusAccepted {
		return nil, apperrors.ErrNoAcceptedApplicant
	}

	var counterpart string
	switch in.ReviewerID {
	case gig.OwnerID:
		counterpart = accepted.ApplicantID
	case accepted.ApplicantID:
		counterpart = gig.OwnerID
	default:
		return nil, apperrors.ErrNotGigParticipant
	}

	if in.ReviewedUserID != counterpart {
		return nil, apperrors.ErrInvalidReviewTarget
	}
	if alreadyReviewed {
		return nil, apperrors.ErrDuplicateReview
	}
	if in.Rating < MinRating || in.Rating > MaxRating {
		return nil, apperrors.ErrInvalidRating
	}

	return &models.Review{
		GigID:          gig.ID,
		ReviewerID:     in.ReviewerID,
		ReviewedUserID: in.ReviewedUserID,
		Rating:         in.Rating,
		Comment:        in.Comment,
	}, nil
}

// ReviewStats - агрегаты отзывов о пользователе
type ReviewStats struct {
	UserID        string
	AverageRating float64
	TotalReviews  int64
}

// ComputeUserReviewStats считает среднюю оценку по отзывам о userID,
// округленную до двух знаков. Без отзывов - 0.0, а не ошибка.
func ComputeUserReviewStats(userID string, reviews []models.Review) ReviewStats {
	stats := ReviewStats{UserID: userID}

	var sum int64
	for _, r := range reviews {
		if r.ReviewedUserID != userID {
			continue
		}
		sum += int64(r.Rating)
		stats.TotalReviews++
	}

	if stats.TotalReviews > 0 {
		avg := float64(sum) / float64(stats.TotalReviews)
		stats.AverageRating = math.Round(avg*100) / 100
	}
	return stats
}
