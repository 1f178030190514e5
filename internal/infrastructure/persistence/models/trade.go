package models

import "github.com/fintrak/backend/internal/domain/trade"

// ComandaItemModel is the stored shape of a ticket line
type ComandaItemModel struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// ComandaModel is the stored shape of an order ticket
type ComandaModel struct {
	ID         int                `json:"id"`
	ClientName string             `json:"clientName"`
	Items      []ComandaItemModel `json:"items"`
}

// ToDomain converts ComandaModel to a domain Comanda
func (m *ComandaModel) ToDomain() trade.Comanda {
	items := make([]trade.ComandaItem, 0, len(m.Items))
	for _, it := range m.Items {
		items = append(items, trade.ComandaItem{
			ID:       it.ID,
			Name:     it.Name,
			Price:    toDecimal(it.Price),
			Quantity: it.Quantity,
		})
	}
	return trade.Comanda{
		ID:         m.ID,
		ClientName: m.ClientName,
		Items:      items,
	}
}

// ComandaModelFromDomain creates a ComandaModel from a domain Comanda
func ComandaModelFromDomain(c trade.Comanda) ComandaModel {
	items := make([]ComandaItemModel, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, ComandaItemModel{
			ID:       it.ID,
			Name:     it.Name,
			Price:    fromDecimal(it.Price),
			Quantity: it.Quantity,
		})
	}
	return ComandaModel{
		ID:         c.ID,
		ClientName: c.ClientName,
		Items:      items,
	}
}
