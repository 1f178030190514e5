package models

import "github.com/fintrak/backend/internal/domain/metering"

// EnergyReadingModel is the stored shape of a meter reading
type EnergyReadingModel struct {
	ID         string  `json:"id"`
	MinReading float64 `json:"minReading"`
	MaxReading float64 `json:"maxReading"`
	Factor     float64 `json:"factor"`
	StartDate  string  `json:"startDate"`
	EndDate    string  `json:"endDate"`
}

// ToDomain converts EnergyReadingModel to a domain EnergyReading
func (m *EnergyReadingModel) ToDomain() metering.EnergyReading {
	return metering.EnergyReading{
		ID:         m.ID,
		MinReading: toDecimal(m.MinReading),
		MaxReading: toDecimal(m.MaxReading),
		Factor:     toDecimal(m.Factor),
		StartDate:  toDay(m.StartDate),
		EndDate:    toDay(m.EndDate),
	}
}

// EnergyReadingModelFromDomain creates an EnergyReadingModel from a domain EnergyReading
func EnergyReadingModelFromDomain(r metering.EnergyReading) EnergyReadingModel {
	return EnergyReadingModel{
		ID:         r.ID,
		MinReading: fromDecimal(r.MinReading),
		MaxReading: fromDecimal(r.MaxReading),
		Factor:     fromDecimal(r.Factor),
		StartDate:  r.StartDate.Stored(),
		EndDate:    r.EndDate.Stored(),
	}
}
