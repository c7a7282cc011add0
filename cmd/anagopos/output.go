package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/gitrdm/anagopos/pkg/engine"
)

var (
	newVertexStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	rootStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true)
	retractStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// colorEnabled reports whether w is a terminal that should get styled text.
func colorEnabled(w io.Writer, disabled bool) bool {
	if disabled || os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

// recordLine renders one record as "parent -> id*  label". A trailing star
// marks a vertex seen for the first time.
func recordLine(r engine.Record, color bool) string {
	var head string
	switch {
	case r.IsRoot():
		head = fmt.Sprintf("root %d*", r.ID)
	case r.IsNew:
		head = fmt.Sprintf("%d -> %d*", r.ParentID, r.ID)
	default:
		head = fmt.Sprintf("%d -> %d", r.ParentID, r.ID)
	}
	padded := fmt.Sprintf("%-12s", head)
	if color {
		switch {
		case r.IsRoot():
			padded = rootStyle.Render(padded)
		case r.IsNew:
			padded = newVertexStyle.Render(padded)
		}
	}
	return padded + " " + r.Label
}

type jsonRecord struct {
	ID       int    `json:"id"`
	ParentID int    `json:"parent_id"`
	IsNew    bool   `json:"is_new"`
	Term     string `json:"term"`
	Size     int    `json:"size"`
}

type jsonGraph struct {
	RunID     string       `json:"run_id"`
	Mode      string       `json:"mode"`
	Root      string       `json:"root"`
	Records   []jsonRecord `json:"records"`
	Retracted []jsonRecord `json:"retracted,omitempty"`
	Vertices  int          `json:"vertices"`
	Edges     int          `json:"edges"`
	Exhausted bool         `json:"exhausted"`
}

func toJSONRecords(rs []engine.Record) []jsonRecord {
	out := make([]jsonRecord, len(rs))
	for i, r := range rs {
		out[i] = jsonRecord{ID: r.ID, ParentID: r.ParentID, IsNew: r.IsNew, Term: r.Label, Size: r.Term.Size()}
	}
	return out
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
