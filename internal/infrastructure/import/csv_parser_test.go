package csvimport

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCSVParser(t *testing.T) {
	t.Run("Valid UTF-8 CSV", func(t *testing.T) {
		parser, err := NewCSVParser(strings.NewReader("name,cost,price\nCoffee,2,5"))

		require.NoError(t, err)
		assert.Equal(t, ',', parser.Delimiter())
	})

	t.Run("UTF-8 BOM is stripped", func(t *testing.T) {
		parser, err := NewCSVParser(strings.NewReader("\xEF\xBB\xBFname,price\nCoffee,5"))
		require.NoError(t, err)

		require.NoError(t, parser.ParseHeader())
		assert.Equal(t, "name", parser.Headers()[0])
	})

	t.Run("Empty file returns error", func(t *testing.T) {
		parser, err := NewCSVParser(strings.NewReader("  \n"))

		assert.ErrorIs(t, err, ErrEmptyFile)
		assert.Nil(t, parser)
	})

	t.Run("Invalid encoding returns error", func(t *testing.T) {
		// Latin-1 "preço"
		_, err := NewCSVParser(strings.NewReader("name,pre\xe7o\nCoffee,5"))

		assert.ErrorIs(t, err, ErrInvalidEncoding)
	})

	t.Run("Semicolon delimiter is sniffed", func(t *testing.T) {
		parser, err := NewCSVParser(strings.NewReader("name;cost;price\nCoffee;2,50;5,00"))
		require.NoError(t, err)
		assert.Equal(t, ';', parser.Delimiter())

		require.NoError(t, parser.ParseHeader())
		row, err := parser.ReadRow()
		require.NoError(t, err)
		assert.Equal(t, "2,50", row.Get("cost"))
	})

	t.Run("Forced delimiter", func(t *testing.T) {
		parser, err := NewCSVParser(strings.NewReader("name\tprice\nCoffee\t5"), WithDelimiter('\t'))
		require.NoError(t, err)

		require.NoError(t, parser.ParseHeader())
		assert.Equal(t, []string{"name", "price"}, parser.Headers())
	})
}

func TestParseHeader(t *testing.T) {
	t.Run("Headers are normalized", func(t *testing.T) {
		parser, _ := NewCSVParser(strings.NewReader(" Name , COST,Price\nCoffee,2,5"))

		require.NoError(t, parser.ParseHeader())
		assert.Equal(t, []string{"name", "cost", "price"}, parser.Headers())
		assert.Empty(t, parser.ValidateHeaders([]string{"name", "cost", "price"}))
	})

	t.Run("Aliases map to canonical names", func(t *testing.T) {
		parser, _ := NewCSVParser(strings.NewReader("Produto;Custo;Preço\nCafé;2;5"),
			WithHeaderAliases(map[string]string{"produto": "name", "custo": "cost", "Preço": "price"}))

		require.NoError(t, parser.ParseHeader())
		assert.Equal(t, []string{"name", "cost", "price"}, parser.Headers())
	})

	t.Run("Missing headers are reported", func(t *testing.T) {
		parser, _ := NewCSVParser(strings.NewReader("name,cost\nCoffee,2"))

		require.NoError(t, parser.ParseHeader())
		assert.Equal(t, []string{"price"}, parser.ValidateHeaders([]string{"name", "cost", "price"}))
	})

	t.Run("Blank header row", func(t *testing.T) {
		parser, _ := NewCSVParser(strings.NewReader(",,\nCoffee,2,5"))

		assert.ErrorIs(t, parser.ParseHeader(), ErrMissingHeader)
	})
}

func TestReadRow(t *testing.T) {
	parser, _ := NewCSVParser(strings.NewReader("name,cost,price\nCoffee,2\nTea,1,4,extra"))
	require.NoError(t, parser.ParseHeader())

	row, err := parser.ReadRow()
	require.NoError(t, err)
	assert.Equal(t, 2, row.LineNumber)
	assert.Equal(t, "Coffee", row.Get("name"))
	assert.Equal(t, "", row.Get("price"), "short rows pad with empty values")

	row, err = parser.ReadRow()
	require.NoError(t, err)
	assert.Equal(t, 3, row.LineNumber)
	assert.Equal(t, "4", row.Get("price"))

	_, err = parser.ReadRow()
	assert.Equal(t, io.EOF, err)
}

func TestReadAllRows(t *testing.T) {
	t.Run("Skips empty rows and keeps line numbers", func(t *testing.T) {
		parser, _ := NewCSVParser(strings.NewReader("name,price\nCoffee,5\n,\nTea,4\n"))
		require.NoError(t, parser.ParseHeader())

		rows, err := parser.ReadAllRows()

		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, 2, rows[0].LineNumber)
		assert.Equal(t, 4, rows[1].LineNumber)
		assert.Equal(t, 2, parser.TotalRows())
	})

	t.Run("Header only", func(t *testing.T) {
		parser, _ := NewCSVParser(strings.NewReader("name,price\n"))
		require.NoError(t, parser.ParseHeader())

		_, err := parser.ReadAllRows()

		assert.ErrorIs(t, err, ErrNoDataRows)
	})

	t.Run("Row limit", func(t *testing.T) {
		parser, _ := NewCSVParser(strings.NewReader("name,price\na,1\nb,2\nc,3"), WithMaxRows(2))
		require.NoError(t, parser.ParseHeader())

		rows, err := parser.ReadAllRows()

		assert.ErrorIs(t, err, ErrTooManyRows)
		assert.Len(t, rows, 2)
	})
}
