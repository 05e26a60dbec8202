package repositories

import (
	"tujitume_backend/internal/models"

	"gorm.io/gorm"
)

type ApplicationRepository interface {
	CreateApplication(db *gorm.DB, app *models.Application) error
	FindByID(db *gorm.DB, id string) (*models.Application, error)
	// FindAcceptedByGig возвращает nil, nil если принятого отклика нет
	FindAcceptedByGig(db *gorm.DB, gigID string) (*models.Application, error)
	Exists(db *gorm.DB, gigID, applicantID string) (bool, error)
	FindByGig(db *gorm.DB, gigID string) ([]models.Application, error)
	FindByApplicant(db *gorm.DB, applicantID string) ([]models.Application, error)
	UpdateStatus(db *gorm.DB, app *models.Application) error
}

type ApplicationRepositoryImpl struct{}

func NewApplicationRepository() ApplicationRepository {
	return &ApplicationRepositoryImpl{}
}

func (r *ApplicationRepositoryImpl) CreateApplication(db *gorm.DB, app *models.Application) error {
	if err := db.Create(app).Error; err != nil {
		if isDuplicate(err) {
			return ErrApplicationAlreadyExists
		}
		return err
	}
	return nil
}

func (r *ApplicationRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Application, error) {
	var app models.Application
	if err := db.Preload("Applicant").First(&app, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrApplicationNotFound)
	}
	return &app, nil
}

func (r *ApplicationRepositoryImpl) FindAcceptedByGig(db *gorm.DB, gigID string) (*models.Application, error) {
	var apps []models.Application
	err := db.Where("gig_id = ? AND status = ?", gigID, models.ApplicationStatusAccepted).
		Limit(1).
		Find(&apps).Error
	if err != nil {
		return nil, err
	}
	if len(apps) == 0 {
		return nil, nil
	}
	return &apps[0], nil
}

func (r *ApplicationRepositoryImpl) Exists(db *gorm.DB, gigID, applicantID string) (bool, error) {
	var count int64
	err := db.Model(&models.Application{}).
		Where("gig_id = ? AND applicant_id = ?", gigID, applicantID).
		Count(&count).Error
	return count > 0, err
}

func (r *ApplicationRepositoryImpl) FindByGig(db *gorm.DB, gigID string) ([]models.Application, error) {
	var apps []models.Application
	err := db.Preload("Applicant").
		Where("gig_id = ?", gigID).
		Order("created_at DESC").
		Find(&apps).Error
	return apps, err
}

func (r *ApplicationRepositoryImpl) FindByApplicant(db *gorm.DB, applicantID string) ([]models.Application, error) {
	var apps []models.Application
	err := db.Preload("Gig").
		Where("applicant_id = ?", applicantID).
		Order("created_at DESC").
		Find(&apps).Error
	return apps, err
}

// UpdateStatus сохраняет статус. Второй принятый отклик на гиг отсекает
// частичный уникальный индекс ux_applications_one_accepted.
func (r *ApplicationRepositoryImpl) UpdateStatus(db *gorm.DB, app *models.Application) error {
	result := db.Model(app).Select("status", "updated_at").Updates(app)
	if result.Error != nil {
		if isDuplicate(result.Error) {
			return ErrAcceptedAlreadyExists
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}
