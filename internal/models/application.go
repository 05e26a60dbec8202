package models

// Application - отклик пользователя на гиг.
// Уникальность (gig_id, applicant_id) и "не больше одного accepted на гиг"
// обеспечиваются индексами (см. database/migrate.go).
type Application struct {
	BaseModel
	GigID       string            `gorm:"type:uuid;not null;uniqueIndex:ux_applications_gig_applicant,priority:1"`
	ApplicantID string            `gorm:"size:128;not null;uniqueIndex:ux_applications_gig_applicant,priority:2;index"`
	CoverLetter string            `gorm:"type:text;not null"`
	Status      ApplicationStatus `gorm:"size:20;not null;default:'pending';index"`

	// Relations
	Gig       *Gig  `gorm:"foreignKey:GigID;constraint:OnDelete:CASCADE"`
	Applicant *User `gorm:"foreignKey:ApplicantID;constraint:OnDelete:CASCADE"`
}
