// Package state holds the shared business document in memory and exposes one
// named mutation per user action. Every mutation persists the affected field
// before the in-memory copy is replaced.
package state

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fintrak/backend/internal/domain/document"
	"github.com/fintrak/backend/internal/domain/shared/valueobject"
	"github.com/fintrak/backend/internal/domain/trade"
	"github.com/fintrak/backend/internal/infrastructure/logger"
	"github.com/fintrak/backend/internal/infrastructure/printing"
	"github.com/fintrak/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ReceiptPrinter renders comanda receipts
type ReceiptPrinter interface {
	HTML(ctx context.Context, c trade.Comanda) (string, error)
	PDF(ctx context.Context, c trade.Comanda) ([]byte, error)
}

// Controller is the single state container for the document.
//
// Mutations are serialized by a mutex. Without a WriterLock the process
// assumes it is the only writer: another process writing the same field is
// overwritten by whichever write lands last. With a WriterLock each mutation
// reloads the document under the lock before applying the change.
type Controller struct {
	mu      sync.Mutex
	repo    document.Repository
	lock    document.WriterLock
	snap    *document.Snapshot
	loc     *time.Location
	now     func() time.Time
	printer ReceiptPrinter
	logger  *zap.Logger
}

// Option configures a Controller
type Option func(*Controller)

// WithWriterLock enables cross-process write serialization
func WithWriterLock(lock document.WriterLock) Option {
	return func(c *Controller) { c.lock = lock }
}

// WithLocation sets the timezone that decides which calendar day is "today"
func WithLocation(loc *time.Location) Option {
	return func(c *Controller) { c.loc = loc }
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithReceiptPrinter sets the receipt renderer
func WithReceiptPrinter(p ReceiptPrinter) Option {
	return func(c *Controller) { c.printer = p }
}

// WithLogger sets the fallback logger used when the request context carries none
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// NewController loads the document and returns a ready controller
func NewController(ctx context.Context, repo document.Repository, opts ...Option) (*Controller, error) {
	c := &Controller{
		repo:   repo,
		loc:    time.Local,
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.printer == nil {
		c.printer = printing.NewReceiptPrinter(nil, c.loc)
	}

	snap, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	c.snap = snap
	return c, nil
}

// Refresh reloads the document from the store
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reload(ctx)
}

func (c *Controller) reload(ctx context.Context) error {
	snap, err := c.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}
	c.snap = snap
	return nil
}

// today is the calendar date in the configured timezone
func (c *Controller) today() valueobject.Day {
	return valueobject.DayOf(c.now(), c.loc)
}

func (c *Controller) log(ctx context.Context) *zap.Logger {
	return logger.LOr(ctx, c.logger)
}

// view returns a private copy of the state. In shared mode the document is
// reloaded first so other writers' changes are visible.
func (c *Controller) view(ctx context.Context) (*document.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lock != nil {
		if err := c.reload(ctx); err != nil {
			return nil, err
		}
	}
	return c.snap.Clone(), nil
}

// change edits next in place and names the field it touched. An empty
// field means nothing changed.
type change func(next *document.Snapshot) (field string, err error)

// mutate applies fn to a copy of the state, persists the touched field and
// commits the copy. On any error the in-memory state is left unchanged.
func (c *Controller) mutate(ctx context.Context, op string, fn change) (err error) {
	ctx, span := telemetry.StartSpan(ctx, "state."+op)
	defer func() { telemetry.End(span, err) }()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.lock != nil {
		release, err := c.lock.Acquire(ctx)
		if err != nil {
			return err
		}
		defer func() {
			if rerr := release(context.WithoutCancel(ctx)); rerr != nil {
				c.log(ctx).Warn("failed to release writer lock", zap.Error(rerr))
			}
		}()
		if err := c.reload(ctx); err != nil {
			return err
		}
	}

	next := c.snap.Clone()
	field, err := fn(next)
	if err != nil {
		return err
	}
	if field == "" {
		return nil
	}
	span.SetAttributes(attribute.String("document.field", field))

	if err := c.persist(ctx, next, field); err != nil {
		c.log(ctx).Error("failed to persist document field",
			zap.String("operation", op),
			zap.String("field", field),
			zap.Error(err))
		return err
	}

	c.snap = next
	c.log(ctx).Info("state updated", zap.String("operation", op), zap.String("field", field))
	return nil
}

func (c *Controller) persist(ctx context.Context, s *document.Snapshot, field string) error {
	switch field {
	case document.FieldEntries:
		return c.repo.SaveEntries(ctx, s.Entries)
	case document.FieldBills:
		return c.repo.SaveBills(ctx, s.Bills)
	case document.FieldDebts:
		return c.repo.SaveDebts(ctx, s.Debts)
	case document.FieldEnergy:
		return c.repo.SaveEnergy(ctx, s.Energy)
	case document.FieldComandas:
		return c.repo.SaveComandas(ctx, s.Comandas)
	case document.FieldBudgets:
		return c.repo.SaveBudgets(ctx, s.Budgets)
	}
	return fmt.Errorf("unknown document field %q", field)
}
