package dto

import (
	"time"

	"tujitume_backend/internal/models"
)

// =======================
// User Requests
// =======================

// RegisterUserRequest - необязательные поля поверх данных токена
type RegisterUserRequest struct {
	Email *string `json:"email,omitempty" validate:"omitempty,email,max=320"`
	Name  *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
}

// UserPatch - частичное обновление профиля
type UserPatch struct {
	Name     *string   `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Bio      *string   `json:"bio,omitempty" validate:"omitempty,max=2000"`
	Skills   *[]string `json:"skills,omitempty" validate:"omitempty,max=50,is-skill-list"`
	Phone    *string   `json:"phone,omitempty" validate:"omitempty,max=50"`
	Location *string   `json:"location,omitempty" validate:"omitempty,max=200"`
}

func (p *UserPatch) IsEmpty() bool {
	return p.Name == nil && p.Bio == nil && p.Skills == nil && p.Phone == nil && p.Location == nil
}

// Apply переносит заданные поля на пользователя
func (p *UserPatch) Apply(user *models.User) {
	if p.Name != nil {
		user.Name = *p.Name
	}
	if p.Bio != nil {
		bio := *p.Bio
		user.Bio = &bio
	}
	if p.Skills != nil {
		skills := make([]string, len(*p.Skills))
		copy(skills, *p.Skills)
		user.Skills = skills
	}
	if p.Phone != nil {
		phone := *p.Phone
		user.Phone = &phone
	}
	if p.Location != nil {
		location := *p.Location
		user.Location = &location
	}
}

// =======================
// User Responses
// =======================

// UserResponse - полный профиль (для /users/me и публичного профиля)
type UserResponse struct {
	ID        string    `json:"id"`
	Email     *string   `json:"email"`
	Name      string    `json:"name"`
	Bio       *string   `json:"bio"`
	Skills    []string  `json:"skills"`
	Phone     *string   `json:"phone"`
	Location  *string   `json:"location"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserSummary - вложенный пользователь
type UserSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func NewUserResponse(user *models.User) *UserResponse {
	skills := []string(user.Skills)
	if skills == nil {
		skills = []string{}
	}
	return &UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Bio:       user.Bio,
		Skills:    skills,
		Phone:     user.Phone,
		Location:  user.Location,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// NewPublicUserResponse скрывает контактные данные
func NewPublicUserResponse(user *models.User) *UserResponse {
	resp := NewUserResponse(user)
	resp.Email = nil
	resp.Phone = nil
	return resp
}

func NewUserSummary(user *models.User) *UserSummary {
	return &UserSummary{ID: user.ID, Name: user.Name}
}
