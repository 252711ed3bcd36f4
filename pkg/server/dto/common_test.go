package dto

import (
	"strings"
	"testing"

	"github.com/soundprediction/episodegrid/pkg/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     EventRequest
		wantErr error
	}{
		{name: "query", req: EventRequest{Type: "query_changed", Text: "ali"}},
		{name: "empty query is allowed", req: EventRequest{Type: "query_changed"}},
		{name: "candidate", req: EventRequest{Type: "candidate_selected", EntityID: "G1"}},
		{name: "chip", req: EventRequest{Type: "chip_selected", EntityID: "T1"}},
		{name: "missing type", req: EventRequest{Text: "x"}, wantErr: ErrEmptyType},
		{name: "selection without id", req: EventRequest{Type: "chip_selected"}, wantErr: ErrEmptyEntityID},
		{name: "long text", req: EventRequest{Type: "query_changed", Text: strings.Repeat("a", MaxTextLength+1)}, wantErr: ErrTextTooLong},
		{name: "long id", req: EventRequest{Type: "chip_selected", EntityID: strings.Repeat("a", MaxEntityIDLength+1)}, wantErr: ErrIDTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestEventRequestUnknownType(t *testing.T) {
	req := EventRequest{Type: "hover"}
	assert.ErrorContains(t, req.Validate(), "unknown event type")
}

func TestEventRequestEvent(t *testing.T) {
	req := EventRequest{Type: "candidate_selected", EntityID: "G1"}
	ev, err := req.Event()
	require.NoError(t, err)
	assert.Equal(t, view.CandidateSelected("G1"), ev)
}
