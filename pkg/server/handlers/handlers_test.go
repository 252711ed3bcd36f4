package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/soundprediction/episodegrid"
	"github.com/soundprediction/episodegrid/pkg/graphstore"
	"github.com/soundprediction/episodegrid/pkg/types"
	"github.com/soundprediction/episodegrid/pkg/view"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func loadedController(t *testing.T) *view.Controller {
	t.Helper()
	return loadedControllerWith(t, nil)
}

func loadedControllerWith(t *testing.T, config *episodegrid.Config) *view.Controller {
	t.Helper()
	store, err := graphstore.Load(&types.Dataset{
		Nodes: []types.Node{
			{ID: "E1", Label: "Episode One"},
			{ID: "E2", Label: "Episode Two"},
			{ID: "G1", Label: "Alice"},
			{ID: "T1", Label: "Space"},
			{ID: "X1", Label: "#internal"},
		},
		Edges: []types.Edge{
			{Source: "E1", Target: "G1", RelType: "has guest"},
			{Source: "E1", Target: "T1", RelType: "discussed topic"},
			{Source: "E2", Target: "G1", RelType: "has guest"},
			{Source: "E2", Target: "ZZ", RelType: "has guest"},
		},
	}, quietLogger())
	require.NoError(t, err)
	client, err := episodegrid.NewClient(store, config, quietLogger())
	require.NoError(t, err)

	c := view.NewController(quietLogger())
	c.Attach(client)
	return c
}

func failedController() *view.Controller {
	c := view.NewController(quietLogger())
	c.Fail(errors.New("connection refused"))
	return c
}

// perform runs h against a fresh gin context built from req.
func perform(h gin.HandlerFunc, req *http.Request, params ...gin.Param) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = params
	h(c)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
