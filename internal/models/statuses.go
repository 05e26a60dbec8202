package models

type ApplicationStatus string
type BudgetType string
type NotificationType string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"

	BudgetTypeFixed  BudgetType = "fixed"
	BudgetTypeHourly BudgetType = "hourly"

	NotificationTypeNewApplication      NotificationType = "new_application"
	NotificationTypeApplicationAccepted NotificationType = "application_accepted"
	NotificationTypeApplicationRejected NotificationType = "application_rejected"
	NotificationTypeGigCompleted        NotificationType = "gig_completed"
	NotificationTypeReviewReceived      NotificationType = "review_received"
)

// IsValid - статус из допустимого набора
func (s ApplicationStatus) IsValid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusAccepted, ApplicationStatusRejected:
		return true
	}
	return false
}

func (t BudgetType) IsValid() bool {
	return t == BudgetTypeFixed || t == BudgetTypeHourly
}

func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationTypeNewApplication, NotificationTypeApplicationAccepted, NotificationTypeApplicationRejected,
		NotificationTypeGigCompleted, NotificationTypeReviewReceived:
		return true
	}
	return false
}
