package dto

import (
	"time"

	"tujitume_backend/internal/lifecycle"
	"tujitume_backend/internal/models"
)

// --- Gig Requests ---

type CreateGigRequest struct {
	Title          string     `json:"title" validate:"required,min=5,max=200"`
	Description    string     `json:"description" validate:"required,min=20,max=5000"`
	Budget         *float64   `json:"budget" validate:"omitempty,gt=0"`
	BudgetType     *string    `json:"budget_type" validate:"omitempty,is-budget-type"` // Кастомное правило
	Location       *string    `json:"location" validate:"omitempty,max=200"`
	SkillsRequired []string   `json:"skills_required" validate:"omitempty,max=30,is-skill-list"`
	Deadline       *time.Time `json:"deadline"`
}

// ToModel строит новый гиг владельца ownerID
func (r *CreateGigRequest) ToModel(ownerID string) *models.Gig {
	gig := &models.Gig{
		OwnerID:        ownerID,
		Title:          r.Title,
		Description:    r.Description,
		Budget:         r.Budget,
		Location:       r.Location,
		SkillsRequired: r.SkillsRequired,
		Deadline:       r.Deadline,
	}
	if r.BudgetType != nil {
		bt := models.BudgetType(*r.BudgetType)
		gig.BudgetType = &bt
	}
	return gig
}

// GigPatch - частичное обновление: nil означает "не менять"
type GigPatch struct {
	Title          *string    `json:"title,omitempty" validate:"omitempty,min=5,max=200"`
	Description    *string    `json:"description,omitempty" validate:"omitempty,min=20,max=5000"`
	Budget         *float64   `json:"budget,omitempty" validate:"omitempty,gt=0"`
	BudgetType     *string    `json:"budget_type,omitempty" validate:"omitempty,is-budget-type"`
	Location       *string    `json:"location,omitempty" validate:"omitempty,max=200"`
	SkillsRequired *[]string  `json:"skills_required,omitempty" validate:"omitempty,max=30,is-skill-list"`
	Deadline       *time.Time `json:"deadline,omitempty"`
}

// IsEmpty - в патче нет ни одного поля
func (r *GigPatch) IsEmpty() bool {
	return r.Title == nil && r.Description == nil && r.Budget == nil && r.BudgetType == nil &&
		r.Location == nil && r.SkillsRequired == nil && r.Deadline == nil
}

// Apply переносит заданные поля патча на гиг, поле за полем
func (r *GigPatch) Apply(gig *models.Gig) {
	if r.Title != nil {
		gig.Title = *r.Title
	}
	if r.Description != nil {
		gig.Description = *r.Description
	}
	if r.Budget != nil {
		budget := *r.Budget
		gig.Budget = &budget
	}
	if r.BudgetType != nil {
		bt := models.BudgetType(*r.BudgetType)
		gig.BudgetType = &bt
	}
	if r.Location != nil {
		location := *r.Location
		gig.Location = &location
	}
	if r.SkillsRequired != nil {
		skills := make([]string, len(*r.SkillsRequired))
		copy(skills, *r.SkillsRequired)
		gig.SkillsRequired = skills
	}
	if r.Deadline != nil {
		deadline := *r.Deadline
		gig.Deadline = &deadline
	}
}

// ListGigsQuery - query-параметры GET /gigs
type ListGigsQuery struct {
	BudgetType string   `form:"budget_type" validate:"omitempty,is-budget-type"`
	Skills     []string `form:"skills"`
	Search     string   `form:"search" validate:"omitempty,max=200"`
	SortBy     string   `form:"sort_by" validate:"omitempty,is-sort-by"`
	SortOrder  string   `form:"sort_order" validate:"omitempty,is-sort-order"`
	Skip       int      `form:"skip"`
	Limit      *int     `form:"limit"`
}

// ToParams переводит query в параметры движка (уже нормализованные)
func (q *ListGigsQuery) ToParams() lifecycle.ListParams {
	params := lifecycle.ListParams{
		Filter: lifecycle.GigFilter{
			Skills: q.Skills,
			Search: q.Search,
		},
		SortBy:    lifecycle.SortBy(q.SortBy),
		SortOrder: lifecycle.SortOrder(q.SortOrder),
		Skip:      q.Skip,
		Limit:     q.Limit,
	}
	if q.BudgetType != "" {
		bt := models.BudgetType(q.BudgetType)
		params.Filter.BudgetType = &bt
	}
	return params.Normalize()
}

// --- Gig Responses ---

type GigResponse struct {
	ID             string       `json:"id"`
	OwnerID        string       `json:"owner_id"`
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	Budget         *float64     `json:"budget"`
	BudgetType     *string      `json:"budget_type"`
	Location       *string      `json:"location"`
	SkillsRequired []string     `json:"skills_required"`
	Deadline       *time.Time   `json:"deadline"`
	IsCompleted    bool         `json:"is_completed"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
	Owner          *UserSummary `json:"owner,omitempty"`
}

type GigListResponse struct {
	Gigs  []*GigResponse `json:"gigs"`
	Total int64          `json:"total"`
	Skip  int            `json:"skip"`
	Limit int            `json:"limit"`
}

// GigSummary - краткая информация о гиге внутри других ответов
type GigSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	OwnerID     string `json:"owner_id"`
	IsCompleted bool   `json:"is_completed"`
}

func NewGigResponse(gig *models.Gig) *GigResponse {
	resp := &GigResponse{
		ID:             gig.ID,
		OwnerID:        gig.OwnerID,
		Title:          gig.Title,
		Description:    gig.Description,
		Budget:         gig.Budget,
		Location:       gig.Location,
		SkillsRequired: []string(gig.SkillsRequired),
		Deadline:       gig.Deadline,
		IsCompleted:    gig.IsCompleted,
		CreatedAt:      gig.CreatedAt,
		UpdatedAt:      gig.UpdatedAt,
	}
	if resp.SkillsRequired == nil {
		resp.SkillsRequired = []string{}
	}
	if gig.BudgetType != nil {
		bt := string(*gig.BudgetType)
		resp.BudgetType = &bt
	}
	if gig.Owner != nil {
		resp.Owner = NewUserSummary(gig.Owner)
	}
	return resp
}

func NewGigSummary(gig *models.Gig) *GigSummary {
	return &GigSummary{
		ID:          gig.ID,
		Title:       gig.Title,
		OwnerID:     gig.OwnerID,
		IsCompleted: gig.IsCompleted,
	}
}

func NewGigResponses(gigs []models.Gig) []*GigResponse {
	out := make([]*GigResponse, 0, len(gigs))
	for i := range gigs {
		out = append(out, NewGigResponse(&gigs[i]))
	}
	return out
}
