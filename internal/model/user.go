package model

import "time"

type User struct {
	Username    string    `gorm:"primaryKey;size:64" json:"username"`
	Password    string    `gorm:"size:255;not null" json:"-"`
	FirstName   string    `gorm:"size:64;not null" json:"first_name"`
	LastName    string    `gorm:"size:64;not null" json:"last_name"`
	Phone       string    `gorm:"size:32;not null" json:"phone"`
	JoinAt      time.Time `json:"join_at"`
	LastLoginAt time.Time `json:"last_login_at"`
}

// UserSummary is the public directory projection of a user. It carries no
// credential or timestamp fields and is safe to embed in message payloads.
type UserSummary struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

func (u User) Summary() UserSummary {
	return UserSummary{
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
	}
}
