package models

import "time"

type Event struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Date        time.Time `gorm:"not null;index" json:"date"`
	Time        string    `gorm:"type:varchar(20)" json:"time"`
	Location    string    `gorm:"type:varchar(255);not null" json:"location"`
	Category    string    `gorm:"type:varchar(100);index" json:"category"`
	Price       *float64  `gorm:"type:decimal(10,2)" json:"price,omitempty"`
	Capacity    *int      `json:"capacity,omitempty"`
	ImageURL    string    `gorm:"type:varchar(500)" json:"image_url"`
	ExternalURL string    `gorm:"type:varchar(500)" json:"external_url"`
	CreatorID   uint      `gorm:"not null;index" json:"creator_id"`
	Creator     User      `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Attendances []EventAttendance `gorm:"foreignKey:EventID" json:"attendances,omitempty"`
}
