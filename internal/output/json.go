package output

import (
	"encoding/json"

	"schemasynth/internal/core"
)

type jsonFormatter struct{}

type dumpSummary struct {
	Tables    int `json:"tables"`
	NewTables int `json:"newTables"`
	Columns   int `json:"columns"`
}

type dumpPayload struct {
	Format  string        `json:"format"`
	Summary dumpSummary   `json:"summary"`
	Tables  []*core.Table `json:"tables,omitempty"`
}

func (jsonFormatter) Format(tables []*core.Table) (string, error) {
	payload := dumpPayload{Format: string(FormatJSON)}
	for _, t := range tables {
		if t == nil {
			continue
		}
		payload.Tables = append(payload.Tables, t)
		payload.Summary.Tables++
		payload.Summary.Columns += len(t.Columns)
		if t.IsNew {
			payload.Summary.NewTables++
		}
	}
	b, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b) + "\n", nil
}
