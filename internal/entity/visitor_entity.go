package entity

import "time"

// VisitorLog records the first contact of a uid. One row per uid; used only
// for the unique-visitor count, never joined with session content.
type VisitorLog struct {
	UID         string    `gorm:"primaryKey;size:64"`
	FirstSeenAt time.Time `gorm:"not null"`
}

func (VisitorLog) TableName() string {
	return "visitor_logs"
}
