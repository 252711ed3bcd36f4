// Package view implements the interactive Idle/Results state machine that
// sits between a presentation surface and the episodegrid explorer.
package view

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/soundprediction/episodegrid"
	"github.com/soundprediction/episodegrid/pkg/types"
)

// State is the presentation state.
type State int

const (
	// StateUninitialized means the dataset has not been loaded yet.
	StateUninitialized State = iota
	// StateLoadFailed means the dataset fetch failed; input is accepted but
	// yields nothing.
	StateLoadFailed
	// StateIdle shows the placeholder and hides the table.
	StateIdle
	// StateResults shows the table and status line.
	StateResults
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoadFailed:
		return "load_failed"
	case StateIdle:
		return "idle"
	case StateResults:
		return "results"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Placeholder messages.
const (
	LoadingMessage = "Loading dataset..."
	IdleMessage    = "Search for a guest, topic or episode to see related episodes."
)

// StatusLine formats the results status text.
func StatusLine(matchCount int, query string) string {
	return fmt.Sprintf("Showing %d results for %s", matchCount, query)
}

// Snapshot is everything a renderer needs to draw the current view.
type Snapshot struct {
	State        State             `json:"-"`
	StateName    string            `json:"state"`
	Query        string            `json:"query"`
	Candidates   []types.Node      `json:"candidates"`
	Schema       types.Schema      `json:"schema"`
	Projection   *types.Projection `json:"projection,omitempty"`
	Status       string            `json:"status,omitempty"`
	Placeholder  string            `json:"placeholder,omitempty"`
	Error        string            `json:"error,omitempty"`
	TableVisible bool              `json:"table_visible"`
}

// Controller applies events to the view state. Each event is applied
// atomically; the latest event wins.
type Controller struct {
	mu         sync.Mutex
	explorer   episodegrid.Explorer
	state      State
	query      string
	candidates []types.Node
	projection *types.Projection
	status     string
	loadErr    error
	logger     *slog.Logger
}

// NewController creates a controller in StateUninitialized.
func NewController(logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		state:      StateUninitialized,
		candidates: []types.Node{},
		logger:     logger,
	}
}

// Attach supplies the loaded explorer. Input typed while loading is
// replayed against it.
func (c *Controller) Attach(explorer episodegrid.Explorer) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.explorer = explorer
	c.loadErr = nil
	c.applyQuery(c.query)
	c.logger.Info("View ready", "state", c.state.String())
	return c.snapshot()
}

// Fail records a dataset load failure.
func (c *Controller) Fail(err error) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.explorer = nil
	c.loadErr = err
	c.state = StateLoadFailed
	c.candidates = []types.Node{}
	c.projection = nil
	c.status = ""
	c.logger.Error("Dataset unavailable, search disabled", "error", err)
	return c.snapshot()
}

// Explorer returns the attached explorer, if any.
func (c *Controller) Explorer() (episodegrid.Explorer, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.explorer, c.explorer != nil
}

// LoadError returns the load failure recorded by Fail.
func (c *Controller) LoadError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadErr
}

// Snapshot returns the current view without changing it.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// Dispatch applies ev and returns the resulting view.
func (c *Controller) Dispatch(ev Event) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch ev.Kind {
	case EventQueryChanged:
		c.applyQuery(ev.Text)
	case EventCandidateSelected, EventChipSelected:
		c.applySelection(ev.EntityID)
	default:
		c.logger.Warn("Ignoring unknown view event", "kind", ev.Kind.String())
	}
	return c.snapshot()
}

func (c *Controller) applyQuery(text string) {
	c.query = text

	if c.explorer == nil {
		// Keep the input, but there is nothing to search yet.
		c.candidates = []types.Node{}
		return
	}

	c.candidates = c.explorer.Search(text)
	if strings.TrimSpace(text) == "" {
		c.state = StateIdle
		return
	}
	c.state = StateResults
}

func (c *Controller) applySelection(entityID string) {
	if c.explorer == nil {
		c.logger.Debug("Selection ignored before dataset load", "entity_id", entityID)
		return
	}

	if node, ok := c.explorer.Entity(entityID); ok {
		c.query = node.Label
	}
	c.candidates = []types.Node{}

	projection := c.explorer.Project(entityID)
	c.projection = &projection
	c.status = StatusLine(projection.MatchCount, c.query)
	c.state = StateResults
}

func (c *Controller) snapshot() Snapshot {
	snap := Snapshot{
		State:        c.state,
		StateName:    c.state.String(),
		Query:        c.query,
		Candidates:   append([]types.Node(nil), c.candidates...),
		TableVisible: c.state == StateResults,
	}
	if snap.Candidates == nil {
		snap.Candidates = []types.Node{}
	}
	if c.explorer != nil {
		snap.Schema = c.explorer.Schema()
	}

	switch c.state {
	case StateUninitialized:
		snap.Placeholder = LoadingMessage
	case StateLoadFailed:
		snap.Placeholder = IdleMessage
		snap.Error = fmt.Sprintf("Failed to load dataset: %v", c.loadErr)
	case StateIdle:
		snap.Placeholder = IdleMessage
	case StateResults:
		snap.Projection = c.projection
		snap.Status = c.status
	}
	return snap
}
