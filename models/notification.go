package models

import "time"

// Notification types.
const (
	NotificationJoinRequest     = "JOIN_REQUEST"
	NotificationRequestApproved = "REQUEST_APPROVED"
	NotificationRequestRejected = "REQUEST_REJECTED"
)

type Notification struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index" json:"user_id"`
	User   User `gorm:"foreignKey:UserID" json:"-"`

	Type    string `gorm:"type:varchar(32);not null;index" json:"type"`
	Title   string `gorm:"type:varchar(100)" json:"title"`
	Message string `gorm:"type:varchar(500);not null" json:"message"`

	EventID   *uint        `gorm:"index" json:"event_id,omitempty"`
	Event     *Event       `gorm:"foreignKey:EventID" json:"event,omitempty"`
	RequestID *uint        `gorm:"index" json:"request_id,omitempty"`
	Request   *JoinRequest `gorm:"foreignKey:RequestID" json:"request,omitempty"`

	// Data carries an optional JSON payload, e.g. {"spotsLeft":1,"totalCapacity":2}
	// on approval notifications for capacity-limited events.
	Data string `gorm:"type:text" json:"data,omitempty"`

	IsRead    bool      `gorm:"not null;default:false" json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}
