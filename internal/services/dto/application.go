package dto

import (
	"time"

	"tujitume_backend/internal/models"
)

// --- Application Requests ---

// CreateApplicationRequest - минимальная длина письма проверяется в lifecycle.ApplyToGig,
// чтобы "свой гиг" и "дубликат" выигрывали у валидации длины.
type CreateApplicationRequest struct {
	CoverLetter string `json:"cover_letter" validate:"max=5000"`
}

// --- Application Responses ---

type ApplicationResponse struct {
	ID          string       `json:"id"`
	GigID       string       `json:"gig_id"`
	ApplicantID string       `json:"applicant_id"`
	CoverLetter string       `json:"cover_letter"`
	Status      string       `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	Gig         *GigSummary  `json:"gig,omitempty"`
	Applicant   *UserSummary `json:"applicant,omitempty"`
}

func NewApplicationResponse(app *models.Application) *ApplicationResponse {
	resp := &ApplicationResponse{
		ID:          app.ID,
		GigID:       app.GigID,
		ApplicantID: app.ApplicantID,
		CoverLetter: app.CoverLetter,
		Status:      string(app.Status),
		CreatedAt:   app.CreatedAt,
		UpdatedAt:   app.UpdatedAt,
	}
	if app.Gig != nil {
		resp.Gig = NewGigSummary(app.Gig)
	}
	if app.Applicant != nil {
		resp.Applicant = NewUserSummary(app.Applicant)
	}
	return resp
}

func NewApplicationResponses(apps []models.Application) []*ApplicationResponse {
	out := make([]*ApplicationResponse, 0, len(apps))
	for i := range apps {
		out = append(out, NewApplicationResponse(&apps[i]))
	}
	return out
}
