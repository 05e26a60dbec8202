package repositories

import (
	"tujitume_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	CreateUser(db *gorm.DB, user *models.User) error
	// CreateIfNotExists вставляет пользователя, если нет конфликта по id или email; true - запись создана
	CreateIfNotExists(db *gorm.DB, user *models.User) (bool, error)
	FindByID(db *gorm.DB, id string) (*models.User, error)
	UpdateUser(db *gorm.DB, user *models.User) error
}

type UserRepositoryImpl struct{}

func NewUserRepository() UserRepository {
	return &UserRepositoryImpl{}
}

func (r *UserRepositoryImpl) CreateUser(db *gorm.DB, user *models.User) error {
	if err := db.Create(user).Error; err != nil {
		if isDuplicate(err) {
			return ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *UserRepositoryImpl) CreateIfNotExists(db *gorm.DB, user *models.User) (bool, error) {
	// конфликт по id (параллельный первый вход) или по email - без ошибки
	result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(user)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *UserRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	return &user, nil
}

func (r *UserRepositoryImpl) UpdateUser(db *gorm.DB, user *models.User) error {
	result := db.Model(user).Select("name", "bio", "skills", "phone", "location", "updated_at").Updates(user)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
