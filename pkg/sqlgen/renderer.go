package sqlgen

import (
	"bufio"
	"fmt"
	"io"

	"github.com/ethanbaker/meetup-seed/pkg/eventlog"
)

const (
	// Timestamp layout accepted by a timestamptz column
	TIMESTAMP_FORMAT = "2006-01-02 15:04:05.000000Z07:00"

	createSchemaTpl = "create schema if not exists %s;\n"
	setSchemaTpl    = "set schema '%s';\n"
	createTableTpl  = `create table if not exists %s (
    id text primary key not null,
    action text not null,
    sid text not null,
    timestamp timestamptz default now());
`
	insertTpl = "insert into %s values ('%s', '%s', '%s', '%s');\n"
)

// Renderer writes the seed script for an event log. Values are not escaped; the output is
// meant for seeding a local test database only
type Renderer struct {
	schema string
	table  string
}

// NewRenderer creates a renderer targeting the given schema and table
func NewRenderer(schema, table string) *Renderer {
	return &Renderer{
		schema: schema,
		table:  table,
	}
}

// Render writes the schema and table DDL followed by one insert per event, in slice order
func (r *Renderer) Render(w io.Writer, events []eventlog.Event) error {
	bw := bufio.NewWriter(w)

	if err := r.WriteSchema(bw); err != nil {
		return err
	}

	if err := r.WriteInserts(bw, events); err != nil {
		return err
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}

	return nil
}

// WriteSchema writes the create schema, set schema and create table statements
func (r *Renderer) WriteSchema(w io.Writer) error {
	if _, err := fmt.Fprintf(w, createSchemaTpl, r.schema); err != nil {
		return fmt.Errorf("failed to write schema statement: %w", err)
	}

	if _, err := fmt.Fprintf(w, setSchemaTpl, r.schema); err != nil {
		return fmt.Errorf("failed to write set schema statement: %w", err)
	}

	if _, err := fmt.Fprintf(w, createTableTpl, r.table); err != nil {
		return fmt.Errorf("failed to write table statement: %w", err)
	}

	return nil
}

// WriteInserts writes one insert statement per event
func (r *Renderer) WriteInserts(w io.Writer, events []eventlog.Event) error {
	for _, e := range events {
		if _, err := io.WriteString(w, r.Insert(e)); err != nil {
			return fmt.Errorf("failed to write insert for event %s: %w", e.ID, err)
		}
	}
	return nil
}

// Insert returns the insert statement for a single event, newline terminated
func (r *Renderer) Insert(e eventlog.Event) string {
	return fmt.Sprintf(insertTpl, r.table, e.ID, e.Action, e.SessionID, FormatTimestamp(e))
}

// FormatTimestamp renders an event's timestamp in UTC
func FormatTimestamp(e eventlog.Event) string {
	return e.Timestamp.UTC().Format(TIMESTAMP_FORMAT)
}
