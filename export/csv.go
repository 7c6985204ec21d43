// Package export writes journalled ledger events to analysis-friendly
// formats (CSV and JSONL) and reads JSONL logs back.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/pflow-xyz/go-tokenledger/journal"
)

// eventFields is the union of Transfer and Approval payload fields; values
// absent from a payload stay empty in the output.
type eventFields struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Owner   string `json:"owner"`
	Spender string `json:"spender"`
	Value   string `json:"value"`
}

var csvHeader = []string{"stream_id", "version", "type", "from", "to", "owner", "spender", "value", "timestamp"}

// WriteCSV writes records as CSV with one row per event.
func WriteCSV(w io.Writer, records []*journal.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("export: write header: %w", err)
	}
	for _, r := range records {
		var fields eventFields
		if err := r.Decode(&fields); err != nil {
			return fmt.Errorf("export: record %s/%d: %w", r.StreamID, r.Version, err)
		}
		row := []string{
			r.StreamID,
			fmt.Sprintf("%d", r.Version),
			r.Type,
			fields.From,
			fields.To,
			fields.Owner,
			fields.Spender,
			fields.Value,
			r.Timestamp.UTC().Format(time.RFC3339Nano),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("export: write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
