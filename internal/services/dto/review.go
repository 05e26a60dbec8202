package dto

import (
	"time"

	"tujitume_backend/internal/models"
)

// --- Review Requests ---

// CreateReviewRequest - диапазон рейтинга проверяет lifecycle.SubmitReview
// (после проверок завершенности гига и дубликата).
type CreateReviewRequest struct {
	GigID          string  `json:"gig_id" validate:"required,uuid"`
	ReviewedUserID string  `json:"reviewed_user_id" validate:"required,max=128"`
	Rating         int     `json:"rating"`
	Comment        *string `json:"comment,omitempty" validate:"omitempty,max=2000"`
}

// --- Review Responses ---

type ReviewResponse struct {
	ID             string       `json:"id"`
	GigID          string       `json:"gig_id"`
	ReviewerID     string       `json:"reviewer_id"`
	ReviewedUserID string       `json:"reviewed_user_id"`
	Rating         int          `json:"rating"`
	Comment        *string      `json:"comment"`
	CreatedAt      time.Time    `json:"created_at"`
	Reviewer       *UserSummary `json:"reviewer,omitempty"`
}

type ReviewStatsResponse struct {
	UserID        string  `json:"user_id"`
	AverageRating float64 `json:"average_rating"`
	TotalReviews  int64   `json:"total_reviews"`
}

func NewReviewResponse(review *models.Review) *ReviewResponse {
	resp := &ReviewResponse{
		ID:             review.ID,
		GigID:          review.GigID,
		ReviewerID:     review.ReviewerID,
		ReviewedUserID: review.ReviewedUserID,
		Rating:         review.Rating,
		Comment:        review.Comment,
		CreatedAt:      review.CreatedAt,
	}
	if review.Reviewer != nil {
		resp.Reviewer = NewUserSummary(review.Reviewer)
	}
	return resp
}

func NewReviewResponses(reviews []models.Review) []*ReviewResponse {
	out := make([]*ReviewResponse, 0, len(reviews))
	for i := range reviews {
		out = append(out, NewReviewResponse(&reviews[i]))
	}
	return out
}
