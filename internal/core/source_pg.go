package core

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Querier is the subset of *pgxpool.Pool the Postgres source needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresSource reads each dataset from the table of the same name.
// Column names become headers and every value is read in text form, so
// typing goes through the same FieldSpec conversion as CSV files.
type PostgresSource struct {
	db     Querier
	schema string
}

// NewPostgresSource creates a source over db. An empty schema uses the
// connection's search_path.
func NewPostgresSource(db Querier, schema string) *PostgresSource {
	return &PostgresSource{db: db, schema: schema}
}

// Read implements Source.
func (s *PostgresSource) Read(ctx context.Context, table string) (*RawTable, error) {
	ident := pgx.Identifier{table}
	if s.schema != "" {
		ident = pgx.Identifier{s.schema, table}
	}
	name := ident.Sanitize()

	// The simple protocol returns every column in text format, so RawValues
	// holds exactly what psql would print.
	rows, err := s.db.Query(ctx, "SELECT * FROM "+name, pgx.QueryExecModeSimpleProtocol)
	if err != nil {
		return nil, &LoadError{Table: table, Source: name, Err: fmt.Errorf("query: %w", err)}
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	raw := &RawTable{Source: name, Header: make([]string, len(fields))}
	for i, fd := range fields {
		raw.Header[i] = fd.Name
	}

	for rows.Next() {
		vals := rows.RawValues()
		rec := make([]string, len(vals))
		for i, v := range vals {
			if v != nil {
				rec[i] = string(v)
			}
		}
		raw.Rows = append(raw.Rows, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &LoadError{Table: table, Source: name, Err: fmt.Errorf("read rows: %w", err)}
	}

	return raw, nil
}
