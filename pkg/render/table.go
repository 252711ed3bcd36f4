package render

import (
	"github.com/soundprediction/episodegrid/pkg/types"
	"github.com/soundprediction/episodegrid/pkg/view"
)

// cell is a rendered table cell.
type cell struct {
	Chips []types.Chip
}

// tableRow is a row laid out against the schema columns.
type tableRow struct {
	EntityID string
	Label    string
	Cells    []cell
}

// layout lays the projection rows out in schema column order. The episode
// column holds the row entity itself as a single chip.
func layout(snap view.Snapshot) []tableRow {
	if snap.Projection == nil {
		return nil
	}
	rows := make([]tableRow, 0, len(snap.Projection.Rows))
	for _, r := range snap.Projection.Rows {
		tr := tableRow{EntityID: r.EntityID, Label: r.Label, Cells: make([]cell, len(snap.Schema.Columns))}
		for i, col := range snap.Schema.Columns {
			if col.IsEpisode() {
				tr.Cells[i] = cell{Chips: []types.Chip{{
					Label:    r.Label,
					EntityID: r.EntityID,
					IsFocus:  r.EntityID == snap.Projection.FocusID,
				}}}
				continue
			}
			tr.Cells[i] = cell{Chips: r.Cell(col)}
		}
		rows = append(rows, tr)
	}
	return rows
}
