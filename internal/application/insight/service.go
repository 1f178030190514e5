// Package insight asks a language model for profit suggestions based on
// recent ledger rows and the product catalogue.
package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fintrak/backend/internal/domain/catalog"
	"github.com/fintrak/backend/internal/domain/finance"
	"github.com/fintrak/backend/internal/domain/shared"
	"github.com/fintrak/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

const (
	// SampleSize caps how many entries and budgets are sent to the model
	SampleSize = 5

	promptPrefix = "Analise os dados financeiros e sugira 2 ações para aumentar o lucro líquido: "

	// MessageUnavailable is returned when the model answers with no text
	MessageUnavailable = "Insights indisponíveis."
	// MessageFailed is returned when the model call fails
	MessageFailed = "Erro ao carregar insights."
)

// ErrNoEntries is returned when there is nothing to analyze
var ErrNoEntries = shared.InvalidInput("add ledger entries before requesting insights")

// Generator produces text for a prompt
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// DataSource supplies the records summarized in the prompt
type DataSource interface {
	History(ctx context.Context) ([]finance.CalculatedEntry, error)
	Budgets(ctx context.Context) ([]catalog.ProductBudget, error)
}

// Result is the outcome of a summary request
type Result struct {
	Text string `json:"text"`
	// Generated is false when Text is one of the fixed fallback messages
	Generated bool `json:"generated"`
}

// Service builds prompts and calls the generator
type Service struct {
	source    DataSource
	generator Generator
	timeout   time.Duration
	logger    *zap.Logger
}

// NewService creates an insight service. A zero timeout means no extra deadline.
func NewService(source DataSource, generator Generator, timeout time.Duration, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{source: source, generator: generator, timeout: timeout, logger: log}
}

type entrySample struct {
	ID         string  `json:"id"`
	Date       string  `json:"date"`
	CashIn     float64 `json:"cashIn"`
	PixIn      float64 `json:"pixIn"`
	CardIn     float64 `json:"cardIn"`
	Exit       float64 `json:"exit"`
	Percentage float64 `json:"percentage"`
	TotalEntry float64 `json:"totalEntry"`
	Balance    float64 `json:"balance"`
	Markup     float64 `json:"markup"`
}

type budgetSample struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Cost          float64 `json:"cost"`
	Price         float64 `json:"price"`
	Profit        float64 `json:"profit"`
	MarginPercent float64 `json:"marginPercent"`
}

type payload struct {
	Entries []entrySample  `json:"entries"`
	Budgets []budgetSample `json:"budgets"`
}

// BuildPrompt embeds the first SampleSize entries and budgets in the fixed prompt
func BuildPrompt(entries []finance.CalculatedEntry, budgets []catalog.ProductBudget) (string, error) {
	p := payload{
		Entries: make([]entrySample, 0, min(len(entries), SampleSize)),
		Budgets: make([]budgetSample, 0, min(len(budgets), SampleSize)),
	}
	for _, e := range entries[:min(len(entries), SampleSize)] {
		p.Entries = append(p.Entries, entrySample{
			ID:         e.ID,
			Date:       e.Date.String(),
			CashIn:     e.CashIn.InexactFloat64(),
			PixIn:      e.PixIn.InexactFloat64(),
			CardIn:     e.CardIn.InexactFloat64(),
			Exit:       e.Exit.InexactFloat64(),
			Percentage: e.Percentage.InexactFloat64(),
			TotalEntry: e.TotalEntry.InexactFloat64(),
			Balance:    e.Balance.InexactFloat64(),
			Markup:     e.Markup.InexactFloat64(),
		})
	}
	for _, b := range budgets[:min(len(budgets), SampleSize)] {
		p.Budgets = append(p.Budgets, budgetSample{
			ID:            b.ID,
			Name:          b.Name,
			Cost:          b.Cost.InexactFloat64(),
			Price:         b.Price.InexactFloat64(),
			Profit:        b.Profit().InexactFloat64(),
			MarginPercent: b.MarginPercent().InexactFloat64(),
		})
	}

	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode insight payload: %w", err)
	}
	return promptPrefix + string(data), nil
}

// Summarize asks the generator for suggestions. Generator failures are logged
// and collapse to MessageFailed instead of being returned.
func (s *Service) Summarize(ctx context.Context) (*Result, error) {
	entries, err := s.source.History(ctx)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}
	budgets, err := s.source.Budgets(ctx)
	if err != nil {
		return nil, err
	}

	prompt, err := BuildPrompt(entries, budgets)
	if err != nil {
		return nil, err
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		logger.L(ctx).Error("insight generation failed", zap.Error(err))
		return &Result{Text: MessageFailed}, nil
	}
	if strings.TrimSpace(text) == "" {
		return &Result{Text: MessageUnavailable}, nil
	}
	return &Result{Text: text, Generated: true}, nil
}
