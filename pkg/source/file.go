package source

import (
	"context"
	"fmt"
	"os"

	"github.com/soundprediction/episodegrid/pkg/types"
)

// FileSource reads a dataset document from the local filesystem.
type FileSource struct {
	Path   string
	Repair bool
}

// Fetch reads and decodes the file.
func (s *FileSource) Fetch(ctx context.Context) (*types.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset file: %w", err)
	}
	return Parse(data, formatFor(s.Path, ""), s.Repair)
}

func (s *FileSource) String() string {
	return "file:" + s.Path
}
