package models

// Review - оценка одного участника гига другим. Не изменяется и не удаляется.
type Review struct {
	BaseModel
	GigID          string  `gorm:"type:uuid;not null;uniqueIndex:ux_reviews_gig_reviewer_reviewed,priority:1"`
	ReviewerID     string  `gorm:"size:128;not null;uniqueIndex:ux_reviews_gig_reviewer_reviewed,priority:2"`
	ReviewedUserID string  `gorm:"size:128;not null;uniqueIndex:ux_reviews_gig_reviewer_reviewed,priority:3;index"`
	Rating         int     `gorm:"not null;check:chk_reviews_rating,rating >= 1 AND rating <= 5"`
	Comment        *string `gorm:"type:text"`

	// Relations (без каскадного удаления)
	Gig          *Gig  `gorm:"foreignKey:GigID"`
	Reviewer     *User `gorm:"foreignKey:ReviewerID"`
	ReviewedUser *User `gorm:"foreignKey:ReviewedUserID"`
}
