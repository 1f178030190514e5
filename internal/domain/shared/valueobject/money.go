package valueobject

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/fintrak/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// CurrencySymbol is the display symbol for the Brazilian real
const CurrencySymbol = "R$"

// MaxAmount bounds every typed amount. Larger values would lose precision
// once stored as JSON numbers.
var MaxAmount = decimal.New(1, 12)

// maxAmountLength caps the typed input before it reaches the decimal parser
const maxAmountLength = 32

var (
	brlStrip  = regexp.MustCompile(`[^\d,.\-]`)
	brlPrefix = regexp.MustCompile(`^-?(\d+\.?\d*|\.\d+)`)
	// plainNumber has no exponent, so parsing never expands the digits
	plainNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)$`)
)

func ptBR() *message.Printer {
	return message.NewPrinter(language.BrazilianPortuguese)
}

// FormatCurrency renders an amount as pt-BR currency, e.g. "R$ 1.234,56"
func FormatCurrency(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	s := CurrencySymbol + " " + ptBR().Sprint(number.Decimal(rounded.Abs().InexactFloat64(), number.Scale(2)))
	if rounded.IsNegative() {
		return "-" + s
	}
	return s
}

// FormatPercent renders a fraction as a pt-BR percentage with two decimals, e.g. 0.4 -> "40,00%"
func FormatPercent(fraction decimal.Decimal) string {
	return ptBR().Sprint(number.Percent(fraction.InexactFloat64(), number.Scale(2)))
}

// ParseBRL leniently reads a typed currency value such as "R$ 12,50".
// Anything that does not start with a number yields zero.
func ParseBRL(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	cleaned := strings.Replace(brlStrip.ReplaceAllString(s, ""), ",", ".", 1)
	match := brlPrefix.FindString(cleaned)
	if match == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.TrimSuffix(match, "."))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseAmount strictly parses a numeric input. Both "50.5" and "50,5" are accepted;
// when a comma is present, dots are treated as thousand separators ("1.234,56").
// Exponent forms and magnitudes above MaxAmount are rejected.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, shared.InvalidInput("amount is empty")
	}
	if len(s) > maxAmountLength {
		return decimal.Zero, shared.InvalidInput("amount is too long")
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	if !plainNumber.MatchString(s) {
		return decimal.Zero, shared.InvalidInput(fmt.Sprintf("amount %q is not a number", s))
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, shared.InvalidInput(fmt.Sprintf("amount %q is not a number", s))
	}
	if d.Abs().GreaterThan(MaxAmount) {
		return decimal.Zero, shared.InvalidInput(fmt.Sprintf("amount %q exceeds %s", s, MaxAmount.String()))
	}
	return d, nil
}

// ParseAmountOrZero parses like ParseAmount but treats unparseable input as zero
func ParseAmountOrZero(s string) decimal.Decimal {
	d, err := ParseAmount(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
