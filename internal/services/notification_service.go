package services

import (
	"time"

	"tujitume_backend/internal/logger"
	"tujitume_backend/internal/repositories"
	"tujitume_backend/internal/services/dto"
	"tujitume_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const defaultNotificationLimit = 20

type NotificationService interface {
	GetUserNotifications(db *gorm.DB, userID string, query *dto.NotificationListQuery) (*dto.NotificationListResponse, error)
	GetUnreadCount(db *gorm.DB, userID string) (*dto.UnreadCountResponse, error)
	MarkAsRead(db *gorm.DB, userID, notificationID string) error
	MarkAllAsRead(db *gorm.DB, userID string) (int64, error)
	// CleanOldNotifications удаляет прочитанные уведомления старше retention
	CleanOldNotifications(db *gorm.DB, retention time.Duration) (int64, error)
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
}

func NewNotificationService(notificationRepo repositories.NotificationRepository) NotificationService {
	return &notificationService{notificationRepo: notificationRepo}
}

func (s *notificationService) GetUserNotifications(db *gorm.DB, userID string, query *dto.NotificationListQuery) (*dto.NotificationListResponse, error) {
	criteria := repositories.NotificationCriteria{
		UnreadOnly: query.UnreadOnly,
		Offset:     query.Skip,
		Limit:      query.Limit,
	}
	if criteria.Limit <= 0 {
		criteria.Limit = defaultNotificationLimit
	}

	items, total, err := s.notificationRepo.FindUserNotifications(db, userID, criteria)
	if err != nil {
		return nil, mapRepoError(err)
	}

	unread, err := s.notificationRepo.GetUnreadCount(db, userID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	return &dto.NotificationListResponse{
		Notifications: dto.NewNotificationResponses(items),
		Total:         total,
		UnreadCount:   unread,
	}, nil
}

func (s *notificationService) GetUnreadCount(db *gorm.DB, userID string) (*dto.UnreadCountResponse, error) {
	count, err := s.notificationRepo.GetUnreadCount(db, userID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return &dto.UnreadCountResponse{Count: count}, nil
}

// MarkAsRead - чужое уведомление выглядит как несуществующее
func (s *notificationService) MarkAsRead(db *gorm.DB, userID, notificationID string) error {
	notification, err := s.notificationRepo.FindNotificationByID(db, notificationID)
	if err != nil {
		return mapRepoError(err)
	}
	if notification.UserID != userID {
		return apperrors.ErrNotificationNotFound
	}
	if notification.IsRead {
		return nil
	}
	return mapRepoError(s.notificationRepo.MarkAsRead(db, notificationID))
}

func (s *notificationService) MarkAllAsRead(db *gorm.DB, userID string) (int64, error) {
	updated, err := s.notificationRepo.MarkAllAsRead(db, userID)
	if err != nil {
		return 0, mapRepoError(err)
	}
	return updated, nil
}

func (s *notificationService) CleanOldNotifications(db *gorm.DB, retention time.Duration) (int64, error) {
	deleted, err := s.notificationRepo.CleanOldNotifications(db, time.Now().Add(-retention))
	if err != nil {
		return 0, mapRepoError(err)
	}
	if deleted > 0 {
		logger.CtxInfo(ctxOf(db), "Old notifications cleaned", "deleted", deleted)
	}
	return deleted, nil
}
