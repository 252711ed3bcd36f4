package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/soundprediction/episodegrid"
	"github.com/soundprediction/episodegrid/pkg/server/dto"
	"github.com/soundprediction/episodegrid/pkg/view"
)

// APIHandler exposes the explorer and the view controller as JSON.
type APIHandler struct {
	controller *view.Controller
	logger     *slog.Logger
}

// NewAPIHandler creates a new API handler
func NewAPIHandler(controller *view.Controller, logger *slog.Logger) *APIHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &APIHandler{controller: controller, logger: logger}
}

// explorer returns the loaded explorer or writes a 503.
func (h *APIHandler) explorer(c *gin.Context) (episodegrid.Explorer, bool) {
	explorer, ok := h.controller.Explorer()
	if ok {
		return explorer, true
	}

	msg := "dataset is still loading"
	if err := h.controller.LoadError(); err != nil {
		msg = err.Error()
	}
	writeError(c, http.StatusServiceUnavailable, "dataset_unavailable", msg)
	return nil, false
}

// matchCounter is implemented by explorers that can count matches past
// their own search cap.
type matchCounter interface {
	Count(query string) int
}

// Schema handles GET /api/v1/schema
func (h *APIHandler) Schema(c *gin.Context) {
	explorer, ok := h.explorer(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.Result{Success: true, Data: explorer.Schema()})
}

// Search handles GET /api/v1/search?q=&limit=
func (h *APIHandler) Search(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || n > dto.MaxSearchLimit {
			writeError(c, http.StatusBadRequest, "invalid_request", "limit must be an integer between 0 and 1000")
			return
		}
		limit = n
	}

	explorer, ok := h.explorer(c)
	if !ok {
		return
	}

	query := c.Query("q")
	nodes := explorer.Search(query)
	total := len(nodes)
	if mc, ok := explorer.(matchCounter); ok {
		total = mc.Count(query)
	}
	if limit > 0 && len(nodes) > limit {
		nodes = nodes[:limit]
	}

	items := make([]dto.CandidateItem, len(nodes))
	for i, n := range nodes {
		items[i] = dto.CandidateItem{ID: n.ID, Label: n.Label}
	}
	c.JSON(http.StatusOK, dto.SearchResponse{Query: query, Candidates: items, Total: total})
}

// Project handles GET /api/v1/project/:id. An unknown id yields an empty
// projection, not an error.
func (h *APIHandler) Project(c *gin.Context) {
	explorer, ok := h.explorer(c)
	if !ok {
		return
	}

	id := c.Param("id")
	projection := explorer.Project(id)
	data := gin.H{
		"schema":     explorer.Schema(),
		"projection": projection,
	}
	if node, found := explorer.Entity(id); found {
		data["status"] = view.StatusLine(projection.MatchCount, node.Label)
	}
	c.JSON(http.StatusOK, dto.Result{Success: true, Data: data})
}

// Entity handles GET /api/v1/entities/:id
func (h *APIHandler) Entity(c *gin.Context) {
	explorer, ok := h.explorer(c)
	if !ok {
		return
	}

	node, found := explorer.Entity(c.Param("id"))
	if !found {
		writeError(c, http.StatusNotFound, "not_found", "entity not found")
		return
	}
	c.JSON(http.StatusOK, dto.Result{Success: true, Data: node})
}

// View handles GET /api/v1/view
func (h *APIHandler) View(c *gin.Context) {
	c.JSON(http.StatusOK, h.controller.Snapshot())
}

// Event handles POST /api/v1/events and returns the resulting snapshot.
func (h *APIHandler) Event(c *gin.Context) {
	var req dto.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	ev, err := req.Event()
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	h.logger.DebugContext(c.Request.Context(), "Handling view event", "kind", ev.Kind.String(), "text", ev.Text, "entity_id", ev.EntityID)
	c.JSON(http.StatusOK, h.controller.Dispatch(ev))
}

func writeError(c *gin.Context, status int, code, message string) {
	c.JSON(status, dto.ErrorResponse{Error: code, Message: message, Code: status})
}
