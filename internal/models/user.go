package models

import (
	"time"

	"github.com/lib/pq"
)

// User - пользователь, идентифицируемый внешним провайдером (Firebase uid).
// Создается при первой успешной проверке токена.
type User struct {
	ID        string         `gorm:"primaryKey;size:128"`
	Email     *string        `gorm:"uniqueIndex;size:320"`
	Name      string         `gorm:"size:200"`
	Bio       *string        `gorm:"type:text"`
	Skills    pq.StringArray `gorm:"type:text[]"`
	Phone     *string        `gorm:"size:50"`
	Location  *string        `gorm:"size:200"`
	CreatedAt time.Time      `gorm:"not null;default:now()"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
}
