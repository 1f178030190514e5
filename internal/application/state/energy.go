package state

import (
	"context"

	"github.com/fintrak/backend/internal/domain/document"
	"github.com/fintrak/backend/internal/domain/metering"
	"github.com/fintrak/backend/internal/domain/shared"
	"github.com/fintrak/backend/internal/domain/shared/valueobject"
)

// EnergyReadings lists stored meter readings
func (c *Controller) EnergyReadings(ctx context.Context) ([]metering.EnergyReading, error) {
	s, err := c.view(ctx)
	if err != nil {
		return nil, err
	}
	return s.Energy, nil
}

// EnergyInput is the raw form of a meter reading; dates are optional
type EnergyInput struct {
	MinReading string
	MaxReading string
	Factor     string
	StartDate  string
	EndDate    string
}

func (in EnergyInput) parse() (metering.EnergyReading, error) {
	minReading, err := valueobject.ParseAmount(in.MinReading)
	if err != nil {
		return metering.EnergyReading{}, shared.InvalidInput("min reading: " + err.Error())
	}
	maxReading, err := valueobject.ParseAmount(in.MaxReading)
	if err != nil {
		return metering.EnergyReading{}, shared.InvalidInput("max reading: " + err.Error())
	}
	factor, err := valueobject.ParseAmount(in.Factor)
	if err != nil {
		return metering.EnergyReading{}, shared.InvalidInput("factor: " + err.Error())
	}
	r, err := parseRange(in.StartDate, in.EndDate)
	if err != nil {
		return metering.EnergyReading{}, err
	}
	return metering.NewEnergyReading(minReading, maxReading, factor, r.Start, r.End)
}

// AddEnergyReading stores a meter reading
func (c *Controller) AddEnergyReading(ctx context.Context, in EnergyInput) (metering.EnergyReading, error) {
	reading, err := in.parse()
	if err != nil {
		return metering.EnergyReading{}, err
	}
	err = c.mutate(ctx, "add_energy_reading", func(next *document.Snapshot) (string, error) {
		next.Energy = shared.Prepend(next.Energy, reading)
		return document.FieldEnergy, nil
	})
	return reading, err
}

// DeleteEnergyReading removes a stored reading
func (c *Controller) DeleteEnergyReading(ctx context.Context, id string) error {
	return c.mutate(ctx, "delete_energy_reading", func(next *document.Snapshot) (string, error) {
		readings, ok := shared.RemoveByID(next.Energy, id)
		if !ok {
			return "", shared.NotFound("energy reading not found")
		}
		next.Energy = readings
		return document.FieldEnergy, nil
	})
}
