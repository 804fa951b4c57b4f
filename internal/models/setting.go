package models

import "time"

// Setting is a single value of the key-value settings store.
type Setting struct {
	Key       string `gorm:"size:64;primaryKey"`
	Value     string `gorm:"not null"`
	UpdatedAt time.Time
}
