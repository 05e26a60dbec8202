package models

import (
	"time"

	"gorm.io/datatypes"
)

type Notification struct {
	BaseModel
	UserID  string           `gorm:"size:128;not null;index"`
	Type    NotificationType `gorm:"size:50;not null"`
	Title   string           `gorm:"not null"`
	Message string
	Data    datatypes.JSON `gorm:"type:jsonb"` // {"gig_id": "...", "application_id": "..."}
	IsRead  bool           `gorm:"not null;default:false;index"`
	ReadAt  *time.Time

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
