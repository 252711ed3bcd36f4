package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/soundprediction/episodegrid/pkg/types"
	"github.com/soundprediction/episodegrid/pkg/view"
)

// Text writes snap as an aligned terminal table followed by the status line.
// Focus chips are marked as *label*.
func Text(w io.Writer, snap view.Snapshot) error {
	if snap.Error != "" {
		if _, err := fmt.Fprintln(w, snap.Error); err != nil {
			return err
		}
	}
	if !snap.TableVisible {
		if snap.Placeholder != "" {
			_, err := fmt.Fprintln(w, snap.Placeholder)
			return err
		}
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(snap.Schema.Titles(), "\t"))
	for _, row := range layout(snap) {
		cells := make([]string, len(row.Cells))
		for i, c := range row.Cells {
			cells[i] = chipText(c.Chips)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}

	if snap.Status != "" {
		if _, err := fmt.Fprintln(w, snap.Status); err != nil {
			return err
		}
	}
	return nil
}

func chipText(chips []types.Chip) string {
	parts := make([]string, len(chips))
	for i, c := range chips {
		if c.IsFocus {
			parts[i] = "*" + c.Label + "*"
		} else {
			parts[i] = c.Label
		}
	}
	return strings.Join(parts, ", ")
}
