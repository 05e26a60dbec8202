package services

import (
	"errors"

	"tujitume_backend/internal/auth"
	"tujitume_backend/internal/logger"
	"tujitume_backend/internal/models"
	"tujitume_backend/internal/repositories"
	"tujitume_backend/internal/services/dto"
	"tujitume_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type UserService interface {
	// EnsureUser - get-or-create по подтвержденной личности; true - пользователь создан сейчас
	EnsureUser(db *gorm.DB, identity *auth.Identity) (*models.User, bool, error)
	Register(db *gorm.DB, identity *auth.Identity, req *dto.RegisterUserRequest) (*dto.RegisterResponse, error)
	GetUser(db *gorm.DB, userID string) (*dto.UserResponse, error)
	GetPublicProfile(db *gorm.DB, userID string) (*dto.UserResponse, error)
	UpdateUser(db *gorm.DB, userID string, patch *dto.UserPatch) (*dto.UserResponse, error)
}

type userService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) EnsureUser(db *gorm.DB, identity *auth.Identity) (*models.User, bool, error) {
	if identity == nil || identity.UID == "" {
		return nil, false, apperrors.ErrCredentialsNotValidated
	}

	user, err := s.userRepo.FindByID(db, identity.UID)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, false, mapRepoError(err)
	}

	newUser := &models.User{ID: identity.UID, Email: identity.Email, Name: identity.Name}
	created, err := s.userRepo.CreateIfNotExists(db, newUser)
	if err != nil {
		return nil, false, mapRepoError(err)
	}

	if !created && newUser.Email != nil {
		// email уже принадлежит другому uid: заводим пользователя без email
		if _, err := s.userRepo.FindByID(db, identity.UID); errors.Is(err, repositories.ErrUserNotFound) {
			logger.CtxWarn(ctxOf(db), "Email already taken, creating user without email", "uid", identity.UID)
			newUser.Email = nil
			if created, err = s.userRepo.CreateIfNotExists(db, newUser); err != nil {
				return nil, false, mapRepoError(err)
			}
		}
	}

	user, err = s.userRepo.FindByID(db, identity.UID)
	if err != nil {
		return nil, false, mapRepoError(err)
	}
	if created {
		logger.CtxInfo(ctxOf(db), "User created on first sign-in", "uid", user.ID)
	}
	return user, created, nil
}

func (s *userService) Register(db *gorm.DB, identity *auth.Identity, req *dto.RegisterUserRequest) (*dto.RegisterResponse, error) {
	if identity == nil {
		return nil, apperrors.ErrCredentialsNotValidated
	}

	// данные запроса дополняют токен, но не перекрывают его
	merged := *identity
	if merged.Email == nil && req.Email != nil {
		merged.Email = req.Email
	}
	if merged.Name == "" && req.Name != nil {
		merged.Name = *req.Name
	}

	user, created, err := s.EnsureUser(db, &merged)
	if err != nil {
		return nil, err
	}
	return &dto.RegisterResponse{User: dto.NewUserResponse(user), Created: created}, nil
}

func (s *userService) GetUser(db *gorm.DB, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return dto.NewUserResponse(user), nil
}

func (s *userService) GetPublicProfile(db *gorm.DB, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return dto.NewPublicUserResponse(user), nil
}

func (s *userService) UpdateUser(db *gorm.DB, userID string, patch *dto.UserPatch) (*dto.UserResponse, error) {
	var updated *models.User
	err := db.Transaction(func(tx *gorm.DB) error {
		user, err := s.userRepo.FindByID(tx, userID)
		if err != nil {
			return mapRepoError(err)
		}

		patch.Apply(user)
		if err := s.userRepo.UpdateUser(tx, user); err != nil {
			return mapRepoError(err)
		}
		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponse(updated), nil
}
