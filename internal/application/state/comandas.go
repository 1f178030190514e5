package state

import (
	"context"

	"github.com/fintrak/backend/internal/domain/document"
	"github.com/fintrak/backend/internal/domain/shared"
	"github.com/fintrak/backend/internal/domain/shared/valueobject"
	"github.com/fintrak/backend/internal/domain/trade"
)

// Comandas returns the ticket pool
func (c *Controller) Comandas(ctx context.Context) ([]trade.Comanda, error) {
	s, err := c.view(ctx)
	if err != nil {
		return nil, err
	}
	return s.Comandas, nil
}

// Comanda returns one ticket
func (c *Controller) Comanda(ctx context.Context, id int) (trade.Comanda, error) {
	s, err := c.view(ctx)
	if err != nil {
		return trade.Comanda{}, err
	}
	i, err := trade.FindComanda(s.Comandas, id)
	if err != nil {
		return trade.Comanda{}, err
	}
	return s.Comandas[i], nil
}

func (c *Controller) updateComanda(ctx context.Context, op string, id int, edit func(trade.Comanda) (trade.Comanda, error)) (trade.Comanda, error) {
	var out trade.Comanda
	err := c.mutate(ctx, op, func(next *document.Snapshot) (string, error) {
		i, err := trade.FindComanda(next.Comandas, id)
		if err != nil {
			return "", err
		}
		updated, err := edit(next.Comandas[i])
		if err != nil {
			return "", err
		}
		next.Comandas[i] = updated
		out = updated
		return document.FieldComandas, nil
	})
	return out, err
}

// SetComandaClient names the customer of a ticket
func (c *Controller) SetComandaClient(ctx context.Context, id int, name string) (trade.Comanda, error) {
	return c.updateComanda(ctx, "set_comanda_client", id, func(cm trade.Comanda) (trade.Comanda, error) {
		return cm.WithClient(name), nil
	})
}

// AddComandaItem adds one unit of an item to a ticket
func (c *Controller) AddComandaItem(ctx context.Context, id int, name, price string) (trade.Comanda, error) {
	p, err := valueobject.ParseAmount(price)
	if err != nil {
		return trade.Comanda{}, shared.InvalidInput(err.Error())
	}
	return c.updateComanda(ctx, "add_comanda_item", id, func(cm trade.Comanda) (trade.Comanda, error) {
		return cm.AddItem(name, p)
	})
}

// ModifyComandaQuantity changes an item's quantity by delta
func (c *Controller) ModifyComandaQuantity(ctx context.Context, id int, itemID string, delta int) (trade.Comanda, error) {
	return c.updateComanda(ctx, "modify_comanda_quantity", id, func(cm trade.Comanda) (trade.Comanda, error) {
		return cm.ModifyQuantity(itemID, delta)
	})
}

// ClearComanda empties a ticket. The caller must confirm.
func (c *Controller) ClearComanda(ctx context.Context, id int, confirmed bool) (trade.Comanda, error) {
	if !confirmed {
		return trade.Comanda{}, shared.InvalidInput("clearing a comanda must be confirmed")
	}
	return c.updateComanda(ctx, "clear_comanda", id, func(cm trade.Comanda) (trade.Comanda, error) {
		return cm.Cleared(), nil
	})
}

// ReceiptHTML renders a ticket as printable HTML
func (c *Controller) ReceiptHTML(ctx context.Context, id int) (string, error) {
	cm, err := c.Comanda(ctx, id)
	if err != nil {
		return "", err
	}
	return c.printer.HTML(ctx, cm)
}

// ReceiptPDF renders a ticket as PDF
func (c *Controller) ReceiptPDF(ctx context.Context, id int) ([]byte, error) {
	cm, err := c.Comanda(ctx, id)
	if err != nil {
		return nil, err
	}
	return c.printer.PDF(ctx, cm)
}
