package models

import (
	"gorm.io/gorm"
)

// DefaultCategories are created by Seed.
var DefaultCategories = []Category{
	{Name: "Groceries", Icon: "🛒", Color: "#FF6B6B"},
	{Name: "Entertainment", Icon: "🎮", Color: "#4ECDC4"},
	{Name: "Transportation", Icon: "🚗", Color: "#45B7D1"},
	{Name: "Shopping", Icon: "🛍️", Color: "#96CEB4"},
	{Name: "Bills & Utilities", Icon: "📄", Color: "#FFEAA7"},
	{Name: "Education", Icon: "🎓", Color: "#DDA0DD"},
	{Name: "Medical", Icon: "🏥", Color: "#FF7675"},
}

// Seed creates the default categories if no category exists yet and
// returns the number of categories created.
func Seed(db *gorm.DB) (int, error) {
	var count int64
	err := db.Model(&Category{}).Count(&count).Error
	if err != nil {
		return 0, err
	}

	if count > 0 {
		return 0, nil
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		for _, c := range DefaultCategories {
			category := c
			if err := tx.Create(&category).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return len(DefaultCategories), nil
}
