package models

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// User is the profile of the single person using the expense tracker.
type User struct {
	DefaultModel
	Name   string  `gorm:"size:255;not null"`
	Email  *string `gorm:"size:255"`
	Avatar *string
}

// UserDefaults are the values the profile is provisioned and reset with.
type UserDefaults struct {
	Name  string
	Email string
}

func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = trimOptional(u.Email)
	u.Avatar = trimOptional(u.Avatar)

	if u.Name == "" {
		return ErrUserNameRequired
	}

	return nil
}

// Reset restores the default name and email and removes the avatar.
func (u *User) Reset(defaults UserDefaults) {
	u.Name = defaults.Name
	u.Email = &defaults.Email
	u.Avatar = nil
}

// CurrentUser returns the profile. There is at most one.
func CurrentUser(db *gorm.DB) (User, error) {
	var user User
	err := db.Order("created_at ASC").First(&user).Error
	return user, err
}

// EnsureUser provisions the profile with the default values if it does
// not exist yet. It returns the existing or created profile.
func EnsureUser(db *gorm.DB, defaults UserDefaults) (User, error) {
	user, err := CurrentUser(db)
	if err == nil {
		return user, nil
	}

	if !errors.Is(err, ErrResourceNotFound) {
		return User{}, err
	}

	user.Reset(defaults)
	err = db.Create(&user).Error
	return user, err
}

// trimOptional trims the value. Blank values are nil.
func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}

	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}

	return &trimmed
}
