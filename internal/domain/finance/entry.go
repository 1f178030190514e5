package finance

import (
	"strings"

	"github.com/fintrak/backend/internal/domain/shared"
	"github.com/fintrak/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultMarkupPercentage is the markup fraction given to a freshly opened day
var DefaultMarkupPercentage = decimal.RequireFromString("0.4")

// Channel identifies where money entered or left the till
type Channel string

const (
	ChannelCash Channel = "cash"
	ChannelPix  Channel = "pix"
	ChannelCard Channel = "card"
	ChannelExit Channel = "exit"
)

// ParseChannel converts user input into a Channel
func ParseChannel(s string) (Channel, error) {
	c := Channel(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", shared.InvalidInput("channel must be one of cash, pix, card, exit")
	}
	return c, nil
}

// IsValid checks if the channel is known
func (c Channel) IsValid() bool {
	switch c {
	case ChannelCash, ChannelPix, ChannelCard, ChannelExit:
		return true
	}
	return false
}

// FinancialEntry is one calendar day of till movements
type FinancialEntry struct {
	ID         string
	Date       valueobject.Day
	CashIn     decimal.Decimal
	PixIn      decimal.Decimal
	CardIn     decimal.Decimal
	Exit       decimal.Decimal
	Percentage decimal.Decimal
}

// NewFinancialEntry opens an empty day with the default markup
func NewFinancialEntry(day valueobject.Day) FinancialEntry {
	return FinancialEntry{
		ID:         uuid.NewString(),
		Date:       day,
		Percentage: DefaultMarkupPercentage,
	}
}

// AddValue returns a copy of the entry with amount added to the channel.
// Only strictly positive amounts are accepted.
func (e FinancialEntry) AddValue(channel Channel, amount decimal.Decimal) (FinancialEntry, error) {
	if !channel.IsValid() {
		return e, shared.InvalidInput("unknown channel")
	}
	if !amount.IsPositive() {
		return e, shared.InvalidInput("amount must be greater than zero")
	}
	switch channel {
	case ChannelCash:
		e.CashIn = e.CashIn.Add(amount)
	case ChannelPix:
		e.PixIn = e.PixIn.Add(amount)
	case ChannelCard:
		e.CardIn = e.CardIn.Add(amount)
	case ChannelExit:
		e.Exit = e.Exit.Add(amount)
	}
	return e, nil
}

// WithMarkupPercent returns a copy of the entry with the markup set from a whole
// percentage, so 40 becomes 0.40. No range is enforced.
func (e FinancialEntry) WithMarkupPercent(percent decimal.Decimal) FinancialEntry {
	e.Percentage = percent.Div(decimal.NewFromInt(100))
	return e
}
