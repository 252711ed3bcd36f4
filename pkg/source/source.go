package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	jsonrepair "github.com/kaptinlin/jsonrepair"
	"github.com/soundprediction/episodegrid/pkg/graphstore"
	"github.com/soundprediction/episodegrid/pkg/types"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnsupportedDriver is returned by New for an unknown driver name.
	ErrUnsupportedDriver = errors.New("unsupported dataset driver")
	// ErrEmptyLocation is returned by New when no URI or path is given.
	ErrEmptyLocation = errors.New("dataset location is required")
)

// Drivers understood by New.
const (
	DriverFile   = "file"
	DriverHTTP   = "http"
	DriverNeo4j  = "neo4j"
	DriverSQLite = "sqlite"
)

// Source fetches a dataset document.
type Source interface {
	Fetch(ctx context.Context) (*types.Dataset, error)
	// String describes the source for logs, without credentials.
	String() string
}

// Options selects and configures a Source.
type Options struct {
	// Driver is one of the Driver constants. When empty it is inferred from
	// the URI scheme or file extension.
	Driver   string
	URI      string
	Username string
	Password string
	Database string
	// Repair runs JSON documents through jsonrepair before decoding.
	Repair  bool
	Timeout time.Duration
}

// New builds the Source described by opts.
func New(opts Options) (Source, error) {
	if strings.TrimSpace(opts.URI) == "" {
		return nil, ErrEmptyLocation
	}

	driver := opts.Driver
	if driver == "" {
		driver = inferDriver(opts.URI)
	}

	switch driver {
	case DriverFile:
		return &FileSource{Path: strings.TrimPrefix(opts.URI, "file://"), Repair: opts.Repair}, nil
	case DriverHTTP:
		return NewHTTPSource(opts.URI, opts.Timeout, opts.Repair), nil
	case DriverNeo4j:
		return &Neo4jSource{
			URI:      opts.URI,
			Username: opts.Username,
			Password: opts.Password,
			Database: opts.Database,
		}, nil
	case DriverSQLite:
		return &SQLiteSource{Path: strings.TrimPrefix(opts.URI, "sqlite://")}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDriver, driver)
	}
}

func inferDriver(uri string) string {
	if u, err := url.Parse(uri); err == nil {
		switch u.Scheme {
		case "http", "https":
			return DriverHTTP
		case "neo4j", "neo4j+s", "neo4j+ssc", "bolt", "bolt+s", "bolt+ssc":
			return DriverNeo4j
		case "sqlite":
			return DriverSQLite
		}
	}
	switch strings.ToLower(filepath.Ext(uri)) {
	case ".db", ".sqlite", ".sqlite3":
		return DriverSQLite
	}
	return DriverFile
}

// Format of a serialized dataset document.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// formatFor picks the document format from a file name or media type.
func formatFor(name, contentType string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	}
	if strings.Contains(contentType, "yaml") {
		return FormatYAML
	}
	return FormatJSON
}

// Parse decodes a dataset document. YAML documents are normalized to JSON
// so both formats go through the same shape checks.
func Parse(data []byte, format Format, repair bool) (*types.Dataset, error) {
	switch format {
	case FormatYAML:
		var doc interface{}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, &graphstore.MalformedDatasetError{Index: -1, Reason: fmt.Sprintf("invalid yaml: %v", err)}
		}
		normalized, err := json.Marshal(doc)
		if err != nil {
			return nil, &graphstore.MalformedDatasetError{Index: -1, Reason: fmt.Sprintf("yaml document is not representable as json: %v", err)}
		}
		return graphstore.Decode(normalized)
	default:
		if repair {
			repaired, err := jsonrepair.JSONRepair(string(data))
			if err != nil {
				return nil, &graphstore.MalformedDatasetError{Index: -1, Reason: fmt.Sprintf("unrepairable json: %v", err)}
			}
			data = []byte(repaired)
		}
		return graphstore.Decode(data)
	}
}
