package models

import "time"

type User struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Email           string     `gorm:"type:varchar(255);unique;not null" json:"email"`
	Username        string     `gorm:"type:varchar(100);unique;not null" json:"username"`
	Name            string     `gorm:"type:varchar(255)" json:"name"`
	Password        string     `gorm:"type:varchar(255)" json:"-"` // empty for OAuth-only accounts
	Bio             string     `gorm:"type:text" json:"bio"`
	Age             *int       `json:"age,omitempty"`
	Location        string     `gorm:"type:varchar(255)" json:"location"`
	Avatar          string     `gorm:"type:varchar(500)" json:"avatar"`
	Interests       StringList `gorm:"type:text" json:"interests"`
	Reputation      int        `gorm:"not null;default:0" json:"reputation"`
	ProfileComplete bool       `gorm:"not null;default:false" json:"profile_complete"`
	Provider        string     `gorm:"type:varchar(50)" json:"-"`
	ProviderID      string     `gorm:"type:varchar(255)" json:"-"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// PublicProfile strips fields that should never leave the server for
// other users (credentials, provider identity).
func (u *User) PublicProfile() map[string]interface{} {
	return map[string]interface{}{
		"id":         u.ID,
		"username":   u.Username,
		"name":       u.Name,
		"bio":        u.Bio,
		"location":   u.Location,
		"avatar":     u.Avatar,
		"interests":  u.Interests,
		"reputation": u.Reputation,
	}
}
