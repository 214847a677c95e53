package core

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// CSVSource reads each dataset from its own CSV file.
type CSVSource struct {
	paths map[string]string
}

// NewCSVSource maps each dataset name to the path of its CSV file.
func NewCSVSource(providers, receivers, claims, listings string) *CSVSource {
	return &CSVSource{paths: map[string]string{
		TableProviders: providers,
		TableReceivers: receivers,
		TableClaims:    claims,
		TableListings:  listings,
	}}
}

// Path returns the configured path for a dataset.
func (s *CSVSource) Path(table string) string {
	return s.paths[table]
}

// Read implements Source. The file is wrapped for BOM skipping and UTF-8
// sanitization. Rows shorter than the header are kept and padded with nulls
// during conversion; rows longer than the header are rejected.
func (s *CSVSource) Read(ctx context.Context, table string) (*RawTable, error) {
	path, ok := s.paths[table]
	if !ok || path == "" {
		return nil, &LoadError{Table: table, Err: fmt.Errorf("no file configured")}
	}

	if err := ctx.Err(); err != nil {
		return nil, &LoadError{Table: table, Source: path, Err: err}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Table: table, Source: path, Err: err}
	}
	defer f.Close()

	wrapped, counter := WrapForStreaming(f)
	records, err := readCSV(ctx, wrapped)
	if err != nil {
		return nil, &LoadError{Table: table, Source: path, Err: err}
	}

	slog.Debug("csv read", "table", table, "path", path, "bytes", counter.BytesRead, "records", len(records))

	raw := &RawTable{Source: path}
	if len(records) > 0 {
		raw.Header = records[0]
		raw.Rows = records[1:]
	}
	return raw, nil
}

// readCSV parses every record, checking ctx between records.
func readCSV(ctx context.Context, r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var records [][]string
	width := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := cr.Read()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, fmt.Errorf("invalid csv: %w", err)
		}
		if records == nil {
			width = len(rec)
		} else if len(rec) > width {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("invalid csv: record on line %d: %d fields, header has %d", line, len(rec), width)
		}
		records = append(records, rec)
	}
}
