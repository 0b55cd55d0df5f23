package journal

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"weatherlog/manager"
)

func New() *Log {
	return &Log{
		records: make([]manager.Record, 0, 64),
	}
}

// Log is an append-only sequence of records kept in append order.
type Log struct {
	records []manager.Record
}

func (l *Log) Append(records ...manager.Record) {
	l.records = append(l.records, records...)
}

func (l *Log) Len() int {
	return len(l.records)
}

// Records returns a copy of the logged records.
func (l *Log) Records() []manager.Record {
	out := make([]manager.Record, len(l.records))
	copy(out, l.records)

	return out
}

// Persist writes every record to path as indented JSON, replacing whatever
// the file held before.
func (l *Log) Persist(path string) error {
	data, err := json.MarshalIndent(l.Records(), "", "  ")
	if err != nil {
		return fmt.Errorf("encode weather log: %w", err)
	}

	if err = os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write weather log: %w", err)
	}

	return nil
}
