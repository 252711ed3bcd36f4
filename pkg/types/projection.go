package types

// Chip is a single reference to a related entity inside a table cell.
type Chip struct {
	Label    string `json:"label"`
	EntityID string `json:"entity_id"`
	IsFocus  bool   `json:"is_focus"`
}

// Row is one result row, contributed by a single source entity.
type Row struct {
	EntityID string `json:"entity_id"`
	Label    string `json:"label"`
	// Cells is keyed by Column.Key.
	Cells map[string][]Chip `json:"cells"`
}

// Cell returns the chips for col, or nil when the cell is empty.
func (r Row) Cell(col Column) []Chip {
	return r.Cells[col.Key]
}

// Projection is the result of projecting the graph onto a focus entity.
type Projection struct {
	FocusID    string `json:"focus_id"`
	Rows       []Row  `json:"rows"`
	MatchCount int    `json:"match_count"`
}
