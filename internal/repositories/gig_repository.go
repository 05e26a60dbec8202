package repositories

import (
	"fmt"

	"tujitume_backend/internal/lifecycle"
	"tujitume_backend/internal/models"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GigRepository interface {
	CreateGig(db *gorm.DB, gig *models.Gig) error
	FindByID(db *gorm.DB, id string) (*models.Gig, error)
	// FindByIDForUpdate блокирует строку гига до конца транзакции
	FindByIDForUpdate(db *gorm.DB, id string) (*models.Gig, error)
	FindByOwner(db *gorm.DB, ownerID string) ([]models.Gig, error)
	ListGigs(db *gorm.DB, params lifecycle.ListParams) ([]models.Gig, int64, error)
	UpdateGig(db *gorm.DB, gig *models.Gig) error
	MarkCompleted(db *gorm.DB, gigID string) error
	DeleteGig(db *gorm.DB, id string) error
}

type GigRepositoryImpl struct{}

func NewGigRepository() GigRepository {
	return &GigRepositoryImpl{}
}

func (r *GigRepositoryImpl) CreateGig(db *gorm.DB, gig *models.Gig) error {
	return db.Create(gig).Error
}

func (r *GigRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Gig, error) {
	var gig models.Gig
	if err := db.Preload("Owner").First(&gig, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrGigNotFound)
	}
	return &gig, nil
}

func (r *GigRepositoryImpl) FindByIDForUpdate(db *gorm.DB, id string) (*models.Gig, error) {
	var gig models.Gig
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&gig, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err, ErrGigNotFound)
	}
	return &gig, nil
}

func (r *GigRepositoryImpl) FindByOwner(db *gorm.DB, ownerID string) ([]models.Gig, error) {
	var gigs []models.Gig
	err := db.Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&gigs).Error
	return gigs, err
}

// ListGigs - SQL-форма lifecycle.GigFilter.Matches. params должны быть нормализованы.
func (r *GigRepositoryImpl) ListGigs(db *gorm.DB, params lifecycle.ListParams) ([]models.Gig, int64, error) {
	query := db.Model(&models.Gig{})

	if params.Filter.BudgetType != nil {
		query = query.Where("budget_type = ?", string(*params.Filter.BudgetType))
	}

	if len(params.Filter.Skills) > 0 {
		query = query.Where("skills_required && ?", pq.StringArray(params.Filter.Skills))
	}

	if params.Filter.Search != "" {
		search := "%" + escapeLike(params.Filter.Search) + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ? OR location ILIKE ?", search, search, search)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	direction := "DESC"
	if params.SortOrder == lifecycle.SortAsc {
		direction = "ASC"
	}

	var order string
	switch params.SortBy {
	case lifecycle.SortByBudget:
		// гиги без бюджета всегда в конце
		order = fmt.Sprintf("budget %s NULLS LAST, created_at DESC, id", direction)
	default:
		order = fmt.Sprintf("created_at %s, id", direction)
	}

	var gigs []models.Gig
	err := query.Preload("Owner").
		Order(order).
		Offset(params.Skip).
		Limit(params.LimitValue()).
		Find(&gigs).Error
	return gigs, total, err
}

func (r *GigRepositoryImpl) UpdateGig(db *gorm.DB, gig *models.Gig) error {
	result := db.Model(gig).
		Select("title", "description", "budget", "budget_type", "location", "skills_required", "deadline", "updated_at").
		Updates(gig)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrGigNotFound
	}
	return nil
}

// MarkCompleted переводит is_completed false -> true; повторный вызов ничего не меняет
func (r *GigRepositoryImpl) MarkCompleted(db *gorm.DB, gigID string) error {
	result := db.Model(&models.Gig{}).
		Where("id = ? AND is_completed = ?", gigID, false).
		Update("is_completed", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrGigNotFound
	}
	return nil
}

func (r *GigRepositoryImpl) DeleteGig(db *gorm.DB, id string) error {
	result := db.Delete(&models.Gig{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrGigNotFound
	}
	return nil
}

// escapeLike экранирует спецсимволы LIKE, чтобы поиск был буквальной подстрокой
func escapeLike(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch r {
		case '\\', '%', '_':
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}
