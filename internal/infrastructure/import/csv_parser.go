package csvimport

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// DefaultMaxRows caps the number of data rows read from one file
const DefaultMaxRows = 1000

// CSVParser reads a spreadsheet export row by row. Headers are matched
// case-insensitively and may be renamed through aliases.
type CSVParser struct {
	delimiter  rune
	maxRows    int
	aliases    map[string]string
	headerMap  map[string]int
	headers    []string
	currentRow int
	totalRows  int
	reader     *csv.Reader
	bufReader  *bufio.Reader
}

// ParserOption is a functional option for CSVParser configuration
type ParserOption func(*CSVParser)

// WithDelimiter forces the field delimiter. Without it the delimiter is
// sniffed from the header line.
func WithDelimiter(d rune) ParserOption {
	return func(p *CSVParser) {
		p.delimiter = d
	}
}

// WithMaxRows sets the row limit
func WithMaxRows(n int) ParserOption {
	return func(p *CSVParser) {
		p.maxRows = n
	}
}

// WithHeaderAliases maps alternative header names to canonical ones,
// e.g. "preço" to "price"
func WithHeaderAliases(aliases map[string]string) ParserOption {
	return func(p *CSVParser) {
		for k, v := range aliases {
			p.aliases[normalizeHeader(k)] = v
		}
	}
}

// NewCSVParser creates a parser over r. A UTF-8 BOM is dropped and the
// content must be valid UTF-8.
func NewCSVParser(r io.Reader, opts ...ParserOption) (*CSVParser, error) {
	parser := &CSVParser{
		maxRows:   DefaultMaxRows,
		aliases:   make(map[string]string),
		headerMap: make(map[string]int),
	}
	for _, opt := range opts {
		opt(parser)
	}

	parser.bufReader = bufio.NewReader(r)

	// UTF-8 BOM: 0xEF, 0xBB, 0xBF
	content, err := parser.bufReader.Peek(3)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(content) >= 3 && content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		_, _ = parser.bufReader.Discard(3)
	}

	sample, err := peekSample(parser.bufReader)
	if err != nil {
		return nil, err
	}
	if parser.delimiter == 0 {
		parser.delimiter = sniffDelimiter(sample)
	}

	parser.reader = csv.NewReader(parser.bufReader)
	parser.reader.Comma = parser.delimiter
	parser.reader.LazyQuotes = true
	parser.reader.TrimLeadingSpace = true
	parser.reader.FieldsPerRecord = -1

	return parser, nil
}

// peekSample returns the start of the content after checking it is
// non-empty UTF-8
func peekSample(r *bufio.Reader) ([]byte, error) {
	const checkSize = 4096
	content, err := r.Peek(checkSize)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("failed to read file for encoding validation: %w", err)
	}
	if len(bytes.TrimSpace(content)) == 0 {
		return nil, ErrEmptyFile
	}
	// the peek window may end inside a multi-byte rune
	if len(content) == checkSize {
		for i := 0; i < utf8.UTFMax && len(content) > 0 && !utf8.Valid(content); i++ {
			content = content[:len(content)-1]
		}
	}
	if !utf8.Valid(content) {
		return nil, ErrInvalidEncoding
	}
	return content, nil
}

// sniffDelimiter picks ';' when the first line has more semicolons than
// commas. Spreadsheets in pt-BR locales export that way because the comma
// is the decimal separator.
func sniffDelimiter(sample []byte) rune {
	line := sample
	if i := bytes.IndexByte(sample, '\n'); i >= 0 {
		line = sample[:i]
	}
	if bytes.Count(line, []byte{';'}) > bytes.Count(line, []byte{','}) {
		return ';'
	}
	return ','
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}

// Delimiter returns the delimiter in use
func (p *CSVParser) Delimiter() rune {
	return p.delimiter
}

// ParseHeader reads the header row
func (p *CSVParser) ParseHeader() error {
	record, err := p.reader.Read()
	if err == io.EOF {
		return ErrMissingHeader
	}
	if err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}

	p.headers = make([]string, len(record))
	for i, h := range record {
		header := normalizeHeader(h)
		if canonical, ok := p.aliases[header]; ok {
			header = canonical
		}
		p.headers[i] = header
		if _, dup := p.headerMap[header]; !dup && header != "" {
			p.headerMap[header] = i
		}
	}
	if len(p.headerMap) == 0 {
		return ErrMissingHeader
	}

	p.currentRow = 1
	return nil
}

// Headers returns the canonical header names in file order
func (p *CSVParser) Headers() []string {
	return p.headers
}

// HasHeader checks if a header exists
func (p *CSVParser) HasHeader(name string) bool {
	_, ok := p.headerMap[name]
	return ok
}

// ValidateHeaders returns the required headers that are missing
func (p *CSVParser) ValidateHeaders(required []string) []string {
	var missing []string
	for _, h := range required {
		if !p.HasHeader(h) {
			missing = append(missing, h)
		}
	}
	return missing
}

// Row is a parsed data row with its 1-based line number in the file
type Row struct {
	LineNumber int
	Data       map[string]string
}

// Get returns the value for a column by header name
func (r *Row) Get(header string) string {
	return r.Data[header]
}

// IsEmpty returns true if the row has no non-empty values
func (r *Row) IsEmpty() bool {
	for _, v := range r.Data {
		if v != "" {
			return false
		}
	}
	return true
}

// ReadRow reads the next row. It returns io.EOF at the end of the file.
func (p *CSVParser) ReadRow() (*Row, error) {
	record, err := p.reader.Read()
	if err == io.EOF {
		return nil, io.EOF
	}
	p.currentRow++
	if err != nil {
		return nil, fmt.Errorf("error reading row %d: %w", p.currentRow, err)
	}

	row := &Row{
		LineNumber: p.currentRow,
		Data:       make(map[string]string, len(p.headerMap)),
	}
	for header, i := range p.headerMap {
		if i < len(record) {
			row.Data[header] = strings.TrimSpace(record[i])
		} else {
			row.Data[header] = ""
		}
	}
	return row, nil
}

// ReadAllRows reads every remaining non-empty row. Reading stops with
// ErrTooManyRows once the row limit is passed.
func (p *CSVParser) ReadAllRows() ([]*Row, error) {
	var rows []*Row
	for {
		row, err := p.ReadRow()
		if err == io.EOF {
			break
		}
		if err != nil {
			return rows, err
		}
		if row.IsEmpty() {
			continue
		}
		p.totalRows++
		if p.maxRows > 0 && p.totalRows > p.maxRows {
			return rows, fmt.Errorf("%w: limit is %d", ErrTooManyRows, p.maxRows)
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, ErrNoDataRows
	}
	return rows, nil
}

// TotalRows returns the number of non-empty data rows read
func (p *CSVParser) TotalRows() int {
	return p.totalRows
}
