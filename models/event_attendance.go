package models

import "time"

// EventAttendance is created exactly once per (user, event), as a side
// effect of a join request being approved.
type EventAttendance struct {
	ID       uint  `gorm:"primaryKey" json:"id"`
	UserID   uint  `gorm:"not null;uniqueIndex:idx_attendance_user_event" json:"user_id"`
	User     User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	EventID  uint  `gorm:"not null;uniqueIndex:idx_attendance_user_event" json:"event_id"`
	Event    Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
	Attended bool  `gorm:"not null;default:false" json:"attended"`

	CreatedAt time.Time `json:"created_at"`
}
