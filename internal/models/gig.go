package models

import (
	"time"

	"github.com/lib/pq"
)

type Gig struct {
	BaseModel
	OwnerID        string         `gorm:"size:128;not null;index"`
	Title          string         `gorm:"size:200;not null"`
	Description    string         `gorm:"type:text;not null"`
	Budget         *float64       `gorm:"type:numeric(12,2)"`
	BudgetType     *BudgetType    `gorm:"size:20;index"`
	Location       *string        `gorm:"size:200"`
	SkillsRequired pq.StringArray `gorm:"type:text[]"`
	Deadline       *time.Time
	IsCompleted    bool `gorm:"not null;default:false;index"`

	// Relations
	Owner *User `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
}
