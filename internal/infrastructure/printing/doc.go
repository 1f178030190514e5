// Package printing renders comanda receipts as HTML and converts them to PDF
// through headless Chrome.
//
// Example usage:
//
//	renderer, err := NewChromedpRenderer(&ChromedpConfig{NoSandbox: true})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	printer := NewReceiptPrinter(renderer, time.UTC)
//	pdf, err := printer.PDF(ctx, comanda)
package printing
