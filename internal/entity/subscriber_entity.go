package entity

import (
	"time"

	"github.com/google/uuid"
)

type Subscriber struct {
	Id        uuid.UUID `gorm:"primaryKey"`
	Email     string    `gorm:"uniqueIndex;size:255;not null"`
	CreatedAt time.Time
}

func (Subscriber) TableName() string {
	return "subscribers"
}
