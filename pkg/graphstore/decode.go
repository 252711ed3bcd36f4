package graphstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/soundprediction/episodegrid/pkg/types"
)

// rawDataset mirrors types.Dataset with pointers so that missing keys can be
// told apart from empty values.
type rawDataset struct {
	Nodes *[]rawNode `json:"nodes"`
	Edges *[]rawEdge `json:"edges"`
}

type rawNode struct {
	ID    json.RawMessage `json:"id"`
	Label json.RawMessage `json:"label"`
}

type rawEdge struct {
	Source  json.RawMessage `json:"source"`
	Target  json.RawMessage `json:"target"`
	RelType json.RawMessage `json:"relType"`
}

// Decode parses a JSON dataset document, checking the shape of every record.
// Ids may be JSON strings or numbers; labels and relTypes must be strings.
func Decode(data []byte) (*types.Dataset, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, malformed("", -1, "", "empty document")
	}

	var raw rawDataset
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, decodeError(err)
	}
	if raw.Nodes == nil {
		return nil, malformed("", -1, "nodes", "required field missing")
	}
	if raw.Edges == nil {
		return nil, malformed("", -1, "edges", "required field missing")
	}

	ds := &types.Dataset{
		Nodes: make([]types.Node, 0, len(*raw.Nodes)),
		Edges: make([]types.Edge, 0, len(*raw.Edges)),
	}

	for i, rn := range *raw.Nodes {
		id, err := identifier(rn.ID)
		if err != nil {
			return nil, malformed("nodes", i, "id", err.Error())
		}
		label, err := text(rn.Label)
		if err != nil {
			return nil, malformed("nodes", i, "label", err.Error())
		}
		ds.Nodes = append(ds.Nodes, types.Node{ID: id, Label: label})
	}

	for i, re := range *raw.Edges {
		source, err := identifier(re.Source)
		if err != nil {
			return nil, malformed("edges", i, "source", err.Error())
		}
		target, err := identifier(re.Target)
		if err != nil {
			return nil, malformed("edges", i, "target", err.Error())
		}
		relType, err := text(re.RelType)
		if err != nil {
			return nil, malformed("edges", i, "relType", err.Error())
		}
		ds.Edges = append(ds.Edges, types.Edge{Source: source, Target: target, RelType: relType})
	}

	return ds, nil
}

var errMissing = errors.New("required field missing")

func identifier(raw json.RawMessage) (string, error) {
	if isAbsent(raw) {
		return "", errMissing
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n json.Number
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&n); err == nil {
		return n.String(), nil
	}
	return "", fmt.Errorf("must be a string or number, got %s", kind(raw))
}

func text(raw json.RawMessage) (string, error) {
	if isAbsent(raw) {
		return "", errMissing
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("must be a string, got %s", kind(raw))
	}
	return s, nil
}

func isAbsent(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

func kind(raw json.RawMessage) string {
	switch t := strings.TrimSpace(string(raw)); {
	case strings.HasPrefix(t, "{"):
		return "object"
	case strings.HasPrefix(t, "["):
		return "array"
	case t == "true" || t == "false":
		return "boolean"
	case strings.HasPrefix(t, `"`):
		return "string"
	default:
		return "number"
	}
}

func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			return malformed("", -1, "", fmt.Sprintf("document must be an object, got %s", typeErr.Value))
		}
		return malformed("", -1, field, fmt.Sprintf("wrong type: got %s", typeErr.Value))
	}
	return malformed("", -1, "", err.Error())
}
