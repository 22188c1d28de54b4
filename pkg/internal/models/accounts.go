package models

import "time"

type Account struct {
	BaseModel

	Email    string  `json:"email" gorm:"uniqueIndex"`
	Password string  `json:"-"`
	Profile  Profile `json:"profile"`
}

// Profile holds the displayable identity of an account.
// Created lazily on the first sign in when absent.
type Profile struct {
	BaseModel

	AccountID uint   `json:"account_id" gorm:"uniqueIndex"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
}

func (v Profile) DisplayName() string {
	if len(v.FullName) > 0 {
		return v.FullName
	}
	return v.Email
}

// MagicToken backs the password reset round-trip.
type MagicToken struct {
	BaseModel

	Token     string    `json:"token" gorm:"uniqueIndex"`
	AccountID uint      `json:"account_id"`
	ExpiredAt time.Time `json:"expired_at"`
}

func (v MagicToken) IsExpired() bool {
	return time.Now().After(v.ExpiredAt)
}
