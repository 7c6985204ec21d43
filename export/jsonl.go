package export

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/pflow-xyz/go-tokenledger/journal"
)

// WriteJSONL writes records as JSON Lines, one record object per line.
func WriteJSONL(w io.Writer, records []*journal.Record) error {
	enc := json.NewEncoder(w)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("export: encode record %s/%d: %w", r.StreamID, r.Version, err)
		}
	}
	return nil
}

// ReadJSONL parses a JSON Lines stream of records. Empty lines are skipped.
func ReadJSONL(r io.Reader) ([]*journal.Record, error) {
	var records []*journal.Record
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec journal.Record
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("export: line %d: %w", lineNum, err)
		}
		records = append(records, &rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("export: read: %w", err)
	}
	return records, nil
}
