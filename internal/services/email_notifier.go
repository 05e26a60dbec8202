package services

import (
	"context"
	"sync"

	"tujitume_backend/internal/email"
	"tujitume_backend/internal/logger"
	"tujitume_backend/internal/models"
)

// EmailNotifier дублирует события жизненного цикла письмами.
// Отправка идет в фоне после коммита; ошибки только логируются.
type EmailNotifier struct {
	provider email.Provider
	wg       sync.WaitGroup
}

func NewEmailNotifier(provider email.Provider) *EmailNotifier {
	return &EmailNotifier{provider: provider}
}

func (n *EmailNotifier) NewApplication(ctx context.Context, owner *models.User, gig *models.Gig, applicantName string) {
	n.send(ctx, owner, "New application for "+gig.Title, email.TemplateNewApplication, email.TemplateData{
		"GigTitle":      gig.Title,
		"ApplicantName": applicantName,
	})
}

func (n *EmailNotifier) ApplicationStatus(ctx context.Context, applicant *models.User, gig *models.Gig, accepted bool) {
	subject := "Update on your application"
	if accepted {
		subject = "You have been selected for " + gig.Title
	}
	n.send(ctx, applicant, subject, email.TemplateApplicationStatus, email.TemplateData{
		"GigTitle": gig.Title,
		"Accepted": accepted,
	})
}

func (n *EmailNotifier) GigCompleted(ctx context.Context, user *models.User, gig *models.Gig) {
	n.send(ctx, user, "Gig completed: "+gig.Title, email.TemplateGigCompleted, email.TemplateData{
		"GigTitle": gig.Title,
	})
}

// Wait дожидается фоновых отправок (graceful shutdown, тесты)
func (n *EmailNotifier) Wait() {
	n.wg.Wait()
}

func (n *EmailNotifier) send(ctx context.Context, to *models.User, subject, templateName string, data email.TemplateData) {
	if n == nil || n.provider == nil || to == nil || to.Email == nil || *to.Email == "" {
		return
	}
	data["RecipientName"] = to.Name
	recipient := *to.Email

	// контекст запроса отменится раньше, чем уйдет письмо
	log := logger.FromContext(ctx)

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		if err := n.provider.SendTemplate([]string{recipient}, subject, templateName, data); err != nil {
			log.Warn("Failed to send email", "template", templateName, "error", err)
			return
		}
		log.Debug("Email sent", "template", templateName)
	}()
}
