// Package settings persists the budget settings, the monthly income and the
// spending limit the dashboard compares spending against.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/expense-tracker/backend/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ErrCorrupt is returned when the stored settings cannot be decoded.
var ErrCorrupt = errors.New("the stored settings could not be read")

// key is the key the budget settings are stored under.
const key = "budget"

// Budget are the settings used to derive budget metrics.
type Budget struct {
	MonthlyIncome decimal.Decimal `json:"monthlyIncome" validate:"nonnegative" example:"50000"` // Income per month
	SpendingLimit decimal.Decimal `json:"spendingLimit" validate:"nonnegative" example:"30000"` // Maximum spending per month
}

// Defaults are returned as long as no settings have been stored.
func Defaults() Budget {
	return Budget{
		MonthlyIncome: decimal.NewFromInt(50000),
		SpendingLimit: decimal.NewFromInt(30000),
	}
}

// Store is a key-value store for the budget settings.
type Store interface {
	// Get returns the stored settings or the defaults.
	Get(ctx context.Context) (Budget, error)

	// Put replaces the stored settings.
	Put(ctx context.Context, b Budget) error

	// Reset removes the stored settings and returns the defaults.
	Reset(ctx context.Context) (Budget, error)
}

func encode(b Budget) (string, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

func decode(value string) (Budget, error) {
	var b Budget
	err := json.Unmarshal([]byte(value), &b)
	if err != nil {
		log.Error().Err(err).Msg("Settings store")
		return Budget{}, fmt.Errorf("%w: %w", models.ErrGeneral, ErrCorrupt)
	}

	return b, nil
}

// general logs errors of the storage backend and replaces them with
// models.ErrGeneral.
func general(err error) error {
	if err == nil {
		return nil
	}

	log.Error().Msgf("%T: %v", err, err.Error())
	return models.ErrGeneral
}
