package model

import "time"

type Message struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	FromUsername string     `gorm:"size:64;not null;index" json:"from_username"`
	ToUsername   string     `gorm:"size:64;not null;index" json:"to_username"`
	Body         string     `gorm:"type:text;not null" json:"body"`
	SentAt       time.Time  `json:"sent_at"`
	ReadAt       *time.Time `json:"read_at"`

	FromUser *User `gorm:"foreignKey:FromUsername;references:Username" json:"-"`
	ToUser   *User `gorm:"foreignKey:ToUsername;references:Username" json:"-"`
}
