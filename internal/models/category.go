package models

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"gorm.io/gorm"
)

type Category struct {
	DefaultModel
	Name  string `gorm:"size:255;not null"`
	Icon  string `gorm:"size:64;not null"`
	Color string `gorm:"size:16;not null"`

	// NameKey is the case folded name. Its unique index makes names unique
	// ignoring case on every SQL dialect.
	NameKey string `json:"-" gorm:"size:255;not null;uniqueIndex"`
}

// NameKey returns the key a category name is compared by.
func NameKey(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

func (c *Category) BeforeSave(tx *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Icon = strings.TrimSpace(c.Icon)
	c.Color = strings.TrimSpace(c.Color)
	c.NameKey = NameKey(c.Name)

	var count int64
	err := tx.Model(&Category{}).Where("name_key = ? AND id <> ?", c.NameKey, c.ID).Count(&count).Error
	if err != nil {
		return err
	}

	if count > 0 {
		return ErrCategoryNameNotUnique
	}

	return nil
}

// BeforeDelete refuses to delete categories that are still referenced
// by expenses.
func (c *Category) BeforeDelete(tx *gorm.DB) error {
	var count int64
	err := tx.Model(&Expense{}).Where(&Expense{CategoryID: c.ID}).Count(&count).Error
	if err != nil {
		return err
	}

	if count > 0 {
		return &CategoryInUseError{ExpenseCount: count}
	}

	return nil
}

// RecentExpenses returns the latest expenses of the category, newest first.
func (c Category) RecentExpenses(db *gorm.DB, limit int) ([]Expense, error) {
	var expenses []Expense

	err := db.
		Where(&Expense{CategoryID: c.ID}).
		Order("date DESC, created_at DESC").
		Limit(limit).
		Find(&expenses).Error
	if err != nil {
		return nil, err
	}

	return expenses, nil
}

// ExpenseCounts returns the number of expenses per category ID. Categories
// without expenses are not contained.
func ExpenseCounts(db *gorm.DB) (map[uuid.UUID]int64, error) {
	var rows []struct {
		CategoryID uuid.UUID
		Count      int64
	}

	err := db.Model(&Expense{}).
		Select("category_id, COUNT(*) AS count").
		Group("category_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uuid.UUID]int64, len(rows))
	for _, r := range rows {
		counts[r.CategoryID] = r.Count
	}

	return counts, nil
}
