package handlers

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/soundprediction/episodegrid/pkg/render"
	"github.com/soundprediction/episodegrid/pkg/server/dto"
	"github.com/soundprediction/episodegrid/pkg/view"
)

// ViewHandler serves the HTML page and turns plain links and form
// submissions into view events.
type ViewHandler struct {
	controller *view.Controller
	logger     *slog.Logger
}

// NewViewHandler creates a new view handler
func NewViewHandler(controller *view.Controller, logger *slog.Logger) *ViewHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ViewHandler{controller: controller, logger: logger}
}

// Page handles GET /. A q parameter dispatches QueryChanged first.
func (h *ViewHandler) Page(c *gin.Context) {
	snap := h.controller.Snapshot()
	if q, ok := c.GetQuery("q"); ok {
		snap = h.controller.Dispatch(view.QueryChanged(q))
	}
	h.writePage(c, snap)
}

// Select handles GET /select/:id?kind=candidate|chip and redirects back to
// the page.
func (h *ViewHandler) Select(c *gin.Context) {
	id := c.Param("id")
	var ev view.Event
	switch kind := c.DefaultQuery("kind", render.KindCandidate); kind {
	case render.KindCandidate:
		ev = view.CandidateSelected(id)
	case render.KindChip:
		ev = view.ChipSelected(id)
	default:
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid_request",
			Message: "kind must be candidate or chip",
			Code:    http.StatusBadRequest,
		})
		return
	}

	h.controller.Dispatch(ev)
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *ViewHandler) writePage(c *gin.Context, snap view.Snapshot) {
	var buf bytes.Buffer
	if err := render.HTML(&buf, snap); err != nil {
		h.logger.ErrorContext(c.Request.Context(), "Failed to render page", "error", err)
		c.String(http.StatusInternalServerError, "failed to render page")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
