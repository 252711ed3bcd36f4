package types

// EpisodeColumnKey identifies the fixed column bound to the row entity's
// label. Empty relTypes never get a column, so no relType column can share it.
const EpisodeColumnKey = ""

// Column describes one table column.
type Column struct {
	// Key is the stable identity: EpisodeColumnKey or the raw relType.
	Key string `json:"key"`
	// Title is the display header.
	Title string `json:"title"`
	// RelType is empty for the episode column.
	RelType string `json:"rel_type,omitempty"`
	// Fixed marks columns that exist regardless of the data.
	Fixed bool `json:"fixed"`
}

// IsEpisode reports whether c is the column holding the row entity itself.
func (c Column) IsEpisode() bool {
	return c.Fixed && c.RelType == "" && c.Key == EpisodeColumnKey
}

// Schema is the ordered list of table columns derived from a dataset.
type Schema struct {
	Columns []Column `json:"columns"`
}

// Titles returns the column titles in order.
func (s Schema) Titles() []string {
	titles := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		titles[i] = c.Title
	}
	return titles
}

// ColumnFor returns the column bound to relType.
func (s Schema) ColumnFor(relType string) (Column, bool) {
	if relType == "" {
		return Column{}, false
	}
	for _, c := range s.Columns {
		if c.RelType == relType {
			return c, true
		}
	}
	return Column{}, false
}

// RelColumns returns every column except the episode column.
func (s Schema) RelColumns() []Column {
	cols := make([]Column, 0, len(s.Columns))
	for _, c := range s.Columns {
		if !c.IsEpisode() {
			cols = append(cols, c)
		}
	}
	return cols
}
