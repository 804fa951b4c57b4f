package settings

import (
	"context"
	"errors"

	"github.com/expense-tracker/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DatabaseStore keeps the settings in the settings table.
type DatabaseStore struct {
	db *gorm.DB
}

func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

func (s *DatabaseStore) Get(ctx context.Context) (Budget, error) {
	var setting models.Setting
	err := s.db.WithContext(ctx).Where(&models.Setting{Key: key}).First(&setting).Error
	if errors.Is(err, models.ErrResourceNotFound) {
		return Defaults(), nil
	} else if err != nil {
		return Budget{}, err
	}

	return decode(setting.Value)
}

func (s *DatabaseStore) Put(ctx context.Context, b Budget) error {
	value, err := encode(b)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&models.Setting{Key: key, Value: value}).Error
}

func (s *DatabaseStore) Reset(ctx context.Context) (Budget, error) {
	err := s.db.WithContext(ctx).Delete(&models.Setting{Key: key}).Error
	if err != nil {
		return Budget{}, err
	}

	return Defaults(), nil
}
