package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// ReadOptions controls delimited-text reading.
type ReadOptions struct {
	// Delimiter is the field separator; zero means comma.
	Delimiter rune
	// Encoding is an IANA charset name (e.g. "windows-1252"). Empty or a
	// UTF-8 alias reads the input as-is.
	Encoding string
}

// Read parses delimited text into a Table. The first record is the header;
// every value is kept as text. Short rows are padded to the header width and
// extra unnamed cells are dropped.
func Read(r io.Reader, opts ReadOptions) (*Table, error) {
	var reader io.Reader = r
	if enc := opts.Encoding; enc != "" && !isUTF8(enc) {
		e, err := htmlindex.Get(enc)
		if err != nil {
			return nil, fmt.Errorf("unsupported encoding %q: %w", enc, err)
		}
		reader = transform.NewReader(r, e.NewDecoder())
	}

	cr := csv.NewReader(reader)
	if opts.Delimiter != 0 {
		cr.Comma = opts.Delimiter
	}
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	t := &Table{Columns: header}
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		switch {
		case len(record) < len(header):
			padded := make([]string, len(header))
			copy(padded, record)
			record = padded
		case len(record) > len(header):
			record = record[:len(header)]
		}
		t.Rows = append(t.Rows, record)
	}
	return t, nil
}

// Write serializes the table as delimited text: header first, rows in order,
// same delimiter throughout.
func Write(w io.Writer, t *Table, delimiter rune) error {
	cw := csv.NewWriter(w)
	if delimiter != 0 {
		cw.Comma = delimiter
	}
	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func isUTF8(enc string) bool {
	e := strings.ToLower(strings.ReplaceAll(enc, "-", ""))
	return e == "utf8" || e == ""
}
