package models

import "time"

// JoinRequest status values. PENDING is the only non-terminal state.
const (
	RequestStatusPending  = "PENDING"
	RequestStatusApproved = "APPROVED"
	RequestStatusRejected = "REJECTED"
)

type JoinRequest struct {
	ID      uint  `gorm:"primaryKey" json:"id"`
	UserID  uint  `gorm:"not null;uniqueIndex:idx_request_user_event" json:"user_id"`
	User    User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	EventID uint  `gorm:"not null;uniqueIndex:idx_request_user_event" json:"event_id"`
	Event   Event `gorm:"foreignKey:EventID" json:"event,omitempty"`

	Message string `gorm:"type:varchar(500)" json:"message"`
	Status  string `gorm:"type:varchar(16);not null;default:'PENDING';index" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
