package parser

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/leapstack-labs/csvto/pkg/core"
)

// Options configures how records are decoded.
type Options struct {
	// Delimiter separates fields. Defaults to ','.
	Delimiter rune
	// Comment, if set, marks lines to be skipped.
	Comment rune
	// LazyQuotes allows quotes to appear in unquoted fields.
	LazyQuotes bool
	// TrimLeadingSpace ignores leading white space in a field.
	TrimLeadingSpace bool
	// Encoding is the character set of the input (empty means UTF-8).
	Encoding string
}

// Parser is a streaming CSV parser with per-column type inference.
type Parser struct {
	opts   Options
	logger *slog.Logger
}

// New creates a Parser. If logger is nil, a discard logger is used.
func New(opts Options, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}
	return &Parser{opts: opts, logger: logger}
}

// Parse reads the input and returns its schema, rows and row-level errors.
//
// It returns a *core.IOError when the file cannot be opened and a
// *core.HeaderError when no header row can be established. Malformed rows
// never abort the file: they are recorded in ParsedContent.Errors and
// counted in RowsScanned.
func (p *Parser) Parse(ctx context.Context, input core.InputSource) (*core.ParsedContent, error) {
	enc, err := LookupEncoding(p.opts.Encoding)
	if err != nil {
		return nil, &core.IOError{Path: input.Location, Err: err}
	}

	src, err := openSource(input.Location, enc)
	if err != nil {
		return nil, &core.IOError{Path: input.Location, Err: err}
	}
	defer func() {
		if cerr := src.Close(); cerr != nil {
			p.logger.Warn("failed to close input", "path", input.Location, "error", cerr)
		}
	}()

	p.logger.Debug("parsing input", "path", input.Location, "has_headers", input.HasHeaders, "size", input.SizeBytes)

	return p.parseReader(ctx, src, input)
}

func (p *Parser) parseReader(ctx context.Context, r io.Reader, input core.InputSource) (*core.ParsedContent, error) {
	reader := p.newCSVReader(r)
	content := &core.ParsedContent{FileName: input.Location}

	first, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("input is empty")
		}
		return nil, &core.HeaderError{Path: input.Location, Err: err}
	}

	// Without headers the first record only gives the width; it is then
	// replayed as the first data row.
	var replay core.RawRow
	names := make([]string, len(first))
	if input.HasHeaders {
		for i, h := range first {
			names[i] = Normalize(i, h)
		}
	} else {
		for i := range first {
			names[i] = Normalize(i, "")
		}
		replay = first
	}
	names = UniqueNames(names)

	content.Columns = make([]core.ColumnDefinition, len(names))
	for i, n := range names {
		content.Columns[i] = core.NewColumnDefinition(n)
	}
	reader.FieldsPerRecord = len(content.Columns)

	if replay != nil {
		p.accept(content, replay)
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("parse of %s interrupted: %w", input.Location, err)
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			content.RowsScanned++
			rowErr := &core.RowDecodeError{File: input.Location, Row: content.RowsScanned, Err: err}
			content.Errors = append(content.Errors, rowErr.Error())

			var pe *csv.ParseError
			if errors.As(err, &pe) {
				p.logger.Debug("skipping malformed row", "path", input.Location, "line", pe.Line, "error", pe.Err)
				continue
			}

			// Anything other than a decode failure means the stream
			// itself is broken; keep what was read so far.
			p.logger.Warn("input stream failed", "path", input.Location, "error", err)
			break
		}

		p.accept(content, record)
	}

	ResolveAll(content.Columns)

	p.logger.Debug("parsed input",
		"path", input.Location,
		"columns", len(content.Columns),
		"rows", len(content.Rows),
		"rows_scanned", content.RowsScanned,
		"errors", len(content.Errors),
	)

	return content, nil
}

// accept classifies and stores a well-formed row.
func (p *Parser) accept(content *core.ParsedContent, record []string) {
	content.RowsScanned++
	row := core.RawRow(record)
	Infer(content.Columns, row)
	content.Rows = append(content.Rows, row)
}

func (p *Parser) newCSVReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.Comma = p.opts.Delimiter
	reader.Comment = p.opts.Comment
	reader.LazyQuotes = p.opts.LazyQuotes
	reader.TrimLeadingSpace = p.opts.TrimLeadingSpace
	return reader
}
