package output

import (
	"encoding/json"
	"io"
	"time"

	"github.com/kostyay/basementhq/internal/config"
	"github.com/kostyay/basementhq/internal/model"
)

// JSONSource is one source in JSON output.
type JSONSource struct {
	Source  model.SourceID `json:"source"`
	Status  model.Status   `json:"status"`
	Reason  string         `json:"reason,omitempty"`
	At      time.Time      `json:"at"`
	Payload any            `json:"payload,omitempty"`
}

// JSONSummary counts sources by status.
type JSONSummary struct {
	OK          int `json:"ok"`
	Degraded    int `json:"degraded"`
	Unavailable int `json:"unavailable"`
}

// JSONOutput is the root JSON output structure.
type JSONOutput struct {
	Timestamp time.Time    `json:"timestamp"`
	Title     string       `json:"title"`
	Theme     string       `json:"theme"`
	Summary   JSONSummary  `json:"summary"`
	Sources   []JSONSource `json:"sources"`
}

// JSONEntry is a config entry with secrets masked.
type JSONEntry struct {
	Key    string `json:"key"`
	Value  string `json:"value"`
	Secret bool   `json:"secret,omitempty"`
}

// NewStatus builds the status document for a set of reports.
func NewStatus(reports []model.Report, title, themeName string, now time.Time) JSONOutput {
	out := JSONOutput{
		Timestamp: now,
		Title:     title,
		Theme:     themeName,
		Sources:   make([]JSONSource, 0, len(reports)),
	}
	for _, r := range reports {
		switch r.Status {
		case model.StatusOK:
			out.Summary.OK++
		case model.StatusDegraded:
			out.Summary.Degraded++
		default:
			out.Summary.Unavailable++
		}
		out.Sources = append(out.Sources, JSONSource{
			Source:  r.Source,
			Status:  r.Status,
			Reason:  r.Reason,
			At:      r.At,
			Payload: r.Payload,
		})
	}
	return out
}

// MaskEntries converts entries for display, hiding secret values.
func MaskEntries(entries []config.Entry) []JSONEntry {
	out := make([]JSONEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, JSONEntry{
			Key:    e.Key,
			Value:  config.Mask(e.Key, e.Value),
			Secret: config.IsSecret(e.Key),
		})
	}
	return out
}

// RenderJSON writes the status document as indented JSON to the writer.
func RenderJSON(w io.Writer, status JSONOutput) error {
	return encode(w, status)
}

// RenderEntries writes masked config entries as indented JSON.
func RenderEntries(w io.Writer, entries []config.Entry) error {
	return encode(w, MaskEntries(entries))
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
