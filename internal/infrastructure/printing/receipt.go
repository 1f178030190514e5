package printing

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/fintrak/backend/internal/domain/shared/valueobject"
	"github.com/fintrak/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var receiptFuncs = template.FuncMap{
	"money": valueobject.FormatCurrency,
	"upper": cases.Upper(language.BrazilianPortuguese).String,
	"datetime": func(t time.Time) string {
		return t.Format("02/01/2006 15:04")
	},
	"truncate": truncate,
}

var receiptTemplate = template.Must(template.New("receipt").Funcs(receiptFuncs).Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="UTF-8">
<title>Comanda {{.Number}}</title>
<style>
body { font-family: "DejaVu Sans Mono", monospace; font-size: 11px; margin: 0; }
h1 { font-size: 14px; text-align: center; margin: 0 0 4px; }
.meta { text-align: center; margin-bottom: 6px; }
table { width: 100%; border-collapse: collapse; }
td.qty, td.num { text-align: right; white-space: nowrap; }
tr.total td { border-top: 1px dashed #000; font-weight: bold; padding-top: 4px; }
</style>
</head>
<body>
<h1>COMANDA {{.Number}}</h1>
<div class="meta">
{{- if .ClientName}}<div>{{upper .ClientName}}</div>{{end}}
<div>{{datetime .PrintedAt}}</div>
</div>
<table>
{{- range .Lines}}
<tr><td>{{truncate .Name 24}}</td><td class="qty">{{.Quantity}}x</td><td class="num">{{money .Price}}</td><td class="num">{{money .Subtotal}}</td></tr>
{{- else}}
<tr><td colspan="4">Sem itens</td></tr>
{{- end}}
<tr class="total"><td colspan="3">TOTAL</td><td class="num">{{money .Total}}</td></tr>
</table>
</body>
</html>
`))

// ReceiptLine is one printed item line
type ReceiptLine struct {
	Name     string
	Quantity int
	Price    decimal.Decimal
	Subtotal decimal.Decimal
}

// ReceiptData is the view model bound to the receipt template
type ReceiptData struct {
	Number     int
	ClientName string
	PrintedAt  time.Time
	Lines      []ReceiptLine
	Total      decimal.Decimal
}

// NewReceiptData builds the view model for a comanda
func NewReceiptData(c trade.Comanda, printedAt time.Time) ReceiptData {
	data := ReceiptData{
		Number:     c.ID,
		ClientName: c.ClientName,
		PrintedAt:  printedAt,
		Total:      c.Total(),
		Lines:      make([]ReceiptLine, 0, len(c.Items)),
	}
	for _, item := range c.Items {
		data.Lines = append(data.Lines, ReceiptLine{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price,
			Subtotal: item.Subtotal(),
		})
	}
	return data
}

// RenderReceiptHTML executes the receipt template
func RenderReceiptHTML(data ReceiptData) (string, error) {
	var buf bytes.Buffer
	if err := receiptTemplate.Execute(&buf, data); err != nil {
		return "", NewRenderError(ErrCodeRenderFailed, "failed to execute receipt template", err)
	}
	return buf.String(), nil
}

// ReceiptPrinter turns comandas into printable documents
type ReceiptPrinter struct {
	renderer PDFRenderer
	loc      *time.Location
	now      func() time.Time
}

// NewReceiptPrinter creates a printer. Timestamps are shown in loc.
func NewReceiptPrinter(renderer PDFRenderer, loc *time.Location) *ReceiptPrinter {
	if renderer == nil {
		renderer = DisabledRenderer{}
	}
	if loc == nil {
		loc = time.Local
	}
	return &ReceiptPrinter{renderer: renderer, loc: loc, now: time.Now}
}

// HTML renders the receipt markup
func (p *ReceiptPrinter) HTML(_ context.Context, c trade.Comanda) (string, error) {
	return RenderReceiptHTML(NewReceiptData(c, p.now().In(p.loc)))
}

// PDF renders the receipt and converts it to PDF
func (p *ReceiptPrinter) PDF(ctx context.Context, c trade.Comanda) ([]byte, error) {
	doc, err := p.HTML(ctx, c)
	if err != nil {
		return nil, err
	}
	result, err := p.renderer.Render(ctx, &RenderRequest{
		HTML:     doc,
		Title:    fmt.Sprintf("Comanda %d", c.ID),
		WidthMM:  ReceiptWidthMM,
		MarginMM: 3,
	})
	if err != nil {
		return nil, err
	}
	return result.PDFData, nil
}

// truncate shortens s to max runes, marking the cut with an ellipsis
func truncate(s string, max int) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= max {
		return string(runes)
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}
