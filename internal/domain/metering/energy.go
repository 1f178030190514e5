package metering

import (
	"github.com/fintrak/backend/internal/domain/shared"
	"github.com/fintrak/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EnergyReading is a stored meter reading over a billing period
type EnergyReading struct {
	ID         string
	MinReading decimal.Decimal
	MaxReading decimal.Decimal
	Factor     decimal.Decimal
	StartDate  valueobject.Day
	EndDate    valueobject.Day
}

// Identity implements shared.Identified
func (r EnergyReading) Identity() string { return r.ID }

// NewEnergyReading validates and creates a reading.
// The period is optional but when both dates are set the end must not precede the start.
func NewEnergyReading(minReading, maxReading, factor decimal.Decimal, start, end valueobject.Day) (EnergyReading, error) {
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return EnergyReading{}, shared.InvalidInput("end date must not be before start date")
	}
	return EnergyReading{
		ID:         uuid.NewString(),
		MinReading: minReading,
		MaxReading: maxReading,
		Factor:     factor,
		StartDate:  start,
		EndDate:    end,
	}, nil
}

// Consumption is the meter delta for the period
func (r EnergyReading) Consumption() decimal.Decimal {
	return r.MaxReading.Sub(r.MinReading)
}

// Cost is consumption times factor. The factor is the tariff per unit.
func (r EnergyReading) Cost() decimal.Decimal {
	return r.Consumption().Mul(r.Factor)
}

// Consumption is the difference between two meter readings.
// Nothing is stored; a negative result is returned as is.
func Consumption(previous, current decimal.Decimal) decimal.Decimal {
	return current.Sub(previous)
}
