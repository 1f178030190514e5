package state

import (
	"context"
	"io"

	"github.com/fintrak/backend/internal/domain/document"
	"github.com/fintrak/backend/internal/domain/finance"
	"github.com/fintrak/backend/internal/domain/shared"
	"github.com/fintrak/backend/internal/domain/shared/valueobject"
	"github.com/fintrak/backend/internal/infrastructure/export"
)

// TodayView is the entry console: today's row and its live figures
type TodayView struct {
	Entry   finance.FinancialEntry
	Figures finance.DailyFigures
	// Unsaved is true while nothing has been recorded for today
	Unsaved bool
}

func todayView(j *finance.Journal, day valueobject.Day) TodayView {
	entry, created := j.FindOrCreate(day)
	return TodayView{Entry: entry, Figures: finance.FiguresFor(entry), Unsaved: created}
}

// Today returns today's entry. A missing entry is synthesized, not stored.
func (c *Controller) Today(ctx context.Context) (TodayView, error) {
	s, err := c.view(ctx)
	if err != nil {
		return TodayView{}, err
	}
	return todayView(finance.NewJournal(s.Entries), c.today()), nil
}

// AddValue adds amount to a channel of today's entry
func (c *Controller) AddValue(ctx context.Context, channel, amount string) (TodayView, error) {
	ch, err := finance.ParseChannel(channel)
	if err != nil {
		return TodayView{}, err
	}
	value, err := valueobject.ParseAmount(amount)
	if err != nil {
		return TodayView{}, shared.InvalidInput(err.Error())
	}
	return c.updateToday(ctx, "add_value", func(e finance.FinancialEntry) (finance.FinancialEntry, error) {
		return e.AddValue(ch, value)
	})
}

// UpdateMarkup sets today's markup from a whole percentage ("40" means 0.40)
func (c *Controller) UpdateMarkup(ctx context.Context, percent string) (TodayView, error) {
	p, err := valueobject.ParseAmount(percent)
	if err != nil {
		return TodayView{}, shared.InvalidInput(err.Error())
	}
	return c.updateToday(ctx, "update_markup", func(e finance.FinancialEntry) (finance.FinancialEntry, error) {
		return e.WithMarkupPercent(p), nil
	})
}

func (c *Controller) updateToday(ctx context.Context, op string, edit func(finance.FinancialEntry) (finance.FinancialEntry, error)) (TodayView, error) {
	var view TodayView
	err := c.mutate(ctx, op, func(next *document.Snapshot) (string, error) {
		j := finance.NewJournal(next.Entries)
		entry, _ := j.FindOrCreate(c.today())
		entry, err := edit(entry)
		if err != nil {
			return "", err
		}
		if err := j.Put(entry); err != nil {
			return "", err
		}
		next.Entries = j.Entries()
		view = TodayView{Entry: entry, Figures: finance.FiguresFor(entry)}
		return document.FieldEntries, nil
	})
	return view, err
}

// History returns every entry with derived totals, most recent first
func (c *Controller) History(ctx context.Context) ([]finance.CalculatedEntry, error) {
	s, err := c.view(ctx)
	if err != nil {
		return nil, err
	}
	return finance.CalculateAll(s.Entries), nil
}

// DeleteEntry removes a ledger row by id
func (c *Controller) DeleteEntry(ctx context.Context, id string) error {
	return c.mutate(ctx, "delete_entry", func(next *document.Snapshot) (string, error) {
		j := finance.NewJournal(next.Entries)
		if err := j.Remove(id); err != nil {
			return "", err
		}
		next.Entries = j.Entries()
		return document.FieldEntries, nil
	})
}

// ExportHistory writes the history as an XLSX workbook
func (c *Controller) ExportHistory(ctx context.Context, w io.Writer) error {
	history, err := c.History(ctx)
	if err != nil {
		return err
	}
	return export.WriteHistory(w, history)
}

// Vault totals the entries between start and end, inclusive. Both bounds use
// YYYY-MM-DD; the filter only applies when both are given.
func (c *Controller) Vault(ctx context.Context, start, end string) (finance.VaultTotals, error) {
	r, err := parseRange(start, end)
	if err != nil {
		return finance.VaultTotals{}, err
	}
	history, err := c.History(ctx)
	if err != nil {
		return finance.VaultTotals{}, err
	}
	return finance.Vault(history, r), nil
}

func parseRange(start, end string) (finance.Range, error) {
	var r finance.Range
	var err error
	if start != "" {
		if r.Start, err = valueobject.ParseDay(start); err != nil {
			return r, shared.InvalidInput("start: " + err.Error())
		}
	}
	if end != "" {
		if r.End, err = valueobject.ParseDay(end); err != nil {
			return r, shared.InvalidInput("end: " + err.Error())
		}
	}
	return r, nil
}

// Dashboard holds the overview totals and chart series
type Dashboard struct {
	Summary finance.Summary
	Series  []finance.SeriesPoint
}

// Dashboard summarizes every ledger row
func (c *Controller) Dashboard(ctx context.Context) (Dashboard, error) {
	history, err := c.History(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	return Dashboard{
		Summary: finance.Summarize(history),
		Series:  finance.Series(history),
	}, nil
}
