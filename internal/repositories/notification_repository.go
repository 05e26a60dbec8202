package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tujitume_backend/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrInvalidNotificationData = errors.New("invalid notification data")

type NotificationRepository interface {
	// Notification operations
	CreateNotification(db *gorm.DB, notification *models.Notification) error
	FindNotificationByID(db *gorm.DB, id string) (*models.Notification, error)
	FindUserNotifications(db *gorm.DB, userID string, criteria NotificationCriteria) ([]models.Notification, int64, error)
	MarkAsRead(db *gorm.DB, notificationID string) error
	MarkAllAsRead(db *gorm.DB, userID string) (int64, error)
	GetUnreadCount(db *gorm.DB, userID string) (int64, error)
	// CleanOldNotifications удаляет прочитанные уведомления старше olderThan
	CleanOldNotifications(db *gorm.DB, olderThan time.Time) (int64, error)

	// Factory methods for lifecycle events
	CreateNewApplicationNotification(db *gorm.DB, gig *models.Gig, app *models.Application, applicantName string) error
	CreateApplicationStatusNotification(db *gorm.DB, gig *models.Gig, app *models.Application) error
	CreateGigCompletedNotification(db *gorm.DB, gig *models.Gig, userID string) error
	CreateReviewReceivedNotification(db *gorm.DB, review *models.Review, gigTitle string) error
}

// NotificationCriteria - фильтр списка уведомлений пользователя
type NotificationCriteria struct {
	UnreadOnly bool
	Offset     int
	Limit      int
}

type NotificationRepositoryImpl struct{}

func NewNotificationRepository() NotificationRepository {
	return &NotificationRepositoryImpl{}
}

func (r *NotificationRepositoryImpl) CreateNotification(db *gorm.DB, notification *models.Notification) error {
	if err := r.validateNotification(notification); err != nil {
		return err
	}
	return db.Create(notification).Error
}

func (r *NotificationRepositoryImpl) FindNotificationByID(db *gorm.DB, id string) (*models.Notification, error) {
	var notification models.Notification
	if err := db.First(&notification, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrNotificationNotFound)
	}
	return &notification, nil
}

func (r *NotificationRepositoryImpl) FindUserNotifications(db *gorm.DB, userID string, criteria NotificationCriteria) ([]models.Notification, int64, error) {
	var notifications []models.Notification
	query := db.Model(&models.Notification{}).Where("user_id = ?", userID)

	if criteria.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := criteria.Limit
	if limit <= 0 {
		limit = 20
	}

	err := query.Order("created_at DESC").
		Limit(limit).Offset(criteria.Offset).
		Find(&notifications).Error

	return notifications, total, err
}

func (r *NotificationRepositoryImpl) MarkAsRead(db *gorm.DB, notificationID string) error {
	result := db.Model(&models.Notification{}).Where("id = ?", notificationID).Updates(map[string]interface{}{
		"is_read": true,
		"read_at": time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *NotificationRepositoryImpl) MarkAllAsRead(db *gorm.DB, userID string) (int64, error) {
	result := db.Model(&models.Notification{}).Where("user_id = ? AND is_read = ?", userID, false).Updates(map[string]interface{}{
		"is_read": true,
		"read_at": time.Now(),
	})
	return result.RowsAffected, result.Error
}

func (r *NotificationRepositoryImpl) GetUnreadCount(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *NotificationRepositoryImpl) CleanOldNotifications(db *gorm.DB, olderThan time.Time) (int64, error) {
	result := db.Where("is_read = ? AND created_at < ?", true, olderThan).Delete(&models.Notification{})
	return result.RowsAffected, result.Error
}

// Factory methods

func (r *NotificationRepositoryImpl) CreateNewApplicationNotification(db *gorm.DB, gig *models.Gig, app *models.Application, applicantName string) error {
	if applicantName == "" {
		applicantName = "Someone"
	}
	return r.createWithData(db, gig.OwnerID, models.NotificationTypeNewApplication,
		"New application",
		fmt.Sprintf("%s applied to your gig '%s'", applicantName, gig.Title),
		map[string]interface{}{
			"gig_id":         gig.ID,
			"application_id": app.ID,
			"applicant_id":   app.ApplicantID,
		})
}

func (r *NotificationRepositoryImpl) CreateApplicationStatusNotification(db *gorm.DB, gig *models.Gig, app *models.Application) error {
	var notificationType models.NotificationType
	var title, message string

	switch app.Status {
	case models.ApplicationStatusAccepted:
		notificationType = models.NotificationTypeApplicationAccepted
		title = "Application accepted"
		message = fmt.Sprintf("You have been selected for the gig '%s'", gig.Title)
	case models.ApplicationStatusRejected:
		notificationType = models.NotificationTypeApplicationRejected
		title = "Application rejected"
		message = fmt.Sprintf("Your application for the gig '%s' was not selected", gig.Title)
	default:
		return ErrInvalidNotificationData
	}

	return r.createWithData(db, app.ApplicantID, notificationType, title, message, map[string]interface{}{
		"gig_id":         gig.ID,
		"application_id": app.ID,
		"status":         string(app.Status),
	})
}

func (r *NotificationRepositoryImpl) CreateGigCompletedNotification(db *gorm.DB, gig *models.Gig, userID string) error {
	return r.createWithData(db, userID, models.NotificationTypeGigCompleted,
		"Gig completed",
		fmt.Sprintf("The gig '%s' has been marked as completed. You can now leave a review.", gig.Title),
		map[string]interface{}{
			"gig_id": gig.ID,
		})
}

func (r *NotificationRepositoryImpl) CreateReviewReceivedNotification(db *gorm.DB, review *models.Review, gigTitle string) error {
	return r.createWithData(db, review.ReviewedUserID, models.NotificationTypeReviewReceived,
		"New review",
		fmt.Sprintf("You received a %d-star review for the gig '%s'", review.Rating, gigTitle),
		map[string]interface{}{
			"gig_id":      review.GigID,
			"review_id":   review.ID,
			"reviewer_id": review.ReviewerID,
			"rating":      review.Rating,
		})
}

// Helper methods

func (r *NotificationRepositoryImpl) createWithData(db *gorm.DB, userID string, notificationType models.NotificationType, title, message string, data map[string]interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	return r.CreateNotification(db, &models.Notification{
		UserID:  userID,
		Type:    notificationType,
		Title:   title,
		Message: message,
		Data:    datatypes.JSON(jsonData),
	})
}

func (r *NotificationRepositoryImpl) validateNotification(notification *models.Notification) error {
	if notification.UserID == "" {
		return ErrInvalidNotificationData
	}
	if !notification.Type.IsValid() {
		return ErrInvalidNotificationData
	}
	if notification.Title == "" {
		return ErrInvalidNotificationData
	}
	return nil
}
