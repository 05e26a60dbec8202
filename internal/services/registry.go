package services

import (
	"tujitume_backend/internal/email"
	"tujitume_backend/internal/repositories"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	UserService         UserService
	GigService          GigService
	ApplicationService  ApplicationService
	ReviewService       ReviewService
	NotificationService NotificationService
	EmailService        email.Provider
	Notifier            *EmailNotifier
}

// NewServiceContainer собирает репозитории и сервисы. provider может быть nil:
// тогда письма не отправляются.
func NewServiceContainer(provider email.Provider) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	gigRepo := repositories.NewGigRepository()
	applicationRepo := repositories.NewApplicationRepository()
	reviewRepo := repositories.NewReviewRepository()
	notificationRepo := repositories.NewNotificationRepository()

	var notifier *EmailNotifier
	if provider != nil {
		notifier = NewEmailNotifier(provider)
	}

	return &ServiceContainer{
		UserService:         NewUserService(userRepo),
		GigService:          NewGigService(gigRepo, applicationRepo, userRepo, notificationRepo, notifier),
		ApplicationService:  NewApplicationService(applicationRepo, gigRepo, userRepo, notificationRepo, notifier),
		ReviewService:       NewReviewService(reviewRepo, gigRepo, applicationRepo, userRepo, notificationRepo),
		NotificationService: NewNotificationService(notificationRepo),
		EmailService:        provider,
		Notifier:            notifier,
	}
}
