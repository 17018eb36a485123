package web

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ritzau/folia-viewer/pkg/model"
	"github.com/ritzau/folia-viewer/pkg/provider"
	"github.com/ritzau/folia-viewer/pkg/pubsub"
	"github.com/ritzau/folia-viewer/pkg/session"
	"github.com/ritzau/folia-viewer/pkg/viewer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchBody = `{
	"projects": ["p1"],
	"graph_type": "general",
	"general_filters": {"entity_types": ["work", "person"], "relationships": ["work_created_by"]}
}`

func graphData() *model.GraphData {
	return &model.GraphData{
		Nodes: []model.Node{
			{ID: "A", Title: "Hamlet", EntityType: model.EntityWork},
			{ID: "B", Title: "Shakespeare", EntityType: model.EntityPerson},
			{ID: "C", Title: "Page", EntityType: model.EntityPage},
		},
		Edges: []model.Edge{
			{Source: "A", Target: "B", Type: "work_created_by", Direction: model.DirectionOutgoing},
		},
	}
}

func newTestServer(t *testing.T, fetch provider.Func) (*Server, *pubsub.SSEPublisher) {
	t.Helper()
	pub := pubsub.NewViewerPublisher()
	t.Cleanup(func() { pub.Close() })

	opts := session.DefaultOptions()
	opts.Layout.Seed = 3
	return NewServer(viewer.New(fetch, pub, opts), pub), pub
}

func okProvider(ctx context.Context, req provider.Request) (*model.GraphData, error) {
	return graphData(), nil
}

func do(s *Server, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestSearchReady(t *testing.T) {
	s, _ := newTestServer(t, okProvider)

	rec := do(s, http.MethodPost, "/api/graphs/search", searchBody)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	var result viewer.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, viewer.StateReady, result.Status.State)
	require.NotNil(t, result.Frame)
	assert.Len(t, result.Frame.Nodes, 3)
	assert.Len(t, result.Frame.Edges, 1)

	rec = do(s, http.MethodGet, "/api/graph/frame", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var frame session.Frame
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &frame))
	assert.Equal(t, result.Frame.SessionID, frame.SessionID)
}

func TestSearchInvalid(t *testing.T) {
	s, _ := newTestServer(t, okProvider)

	tests := []struct {
		name string
		body string
	}{
		{"malformed", `{`},
		{"unknown field", `{"graph_type": "general", "bogus": 1}`},
		{"missing filters", `{"projects": ["p1"], "graph_type": "general"}`},
		{"bad graph type", `{"projects": ["p1"], "graph_type": "timeline"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(s, http.MethodPost, "/api/graphs/search", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestSearchFetchError(t *testing.T) {
	s, _ := newTestServer(t, func(ctx context.Context, req provider.Request) (*model.GraphData, error) {
		return nil, errors.New("catalog unavailable")
	})

	rec := do(s, http.MethodPost, "/api/graphs/search", searchBody)
	require.Equal(t, http.StatusBadGateway, rec.Code)

	var result viewer.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, viewer.StateError, result.Status.State)
	assert.Contains(t, result.Status.Message, "catalog unavailable")

	rec = do(s, http.MethodGet, "/api/graph/frame", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReload(t *testing.T) {
	s, _ := newTestServer(t, okProvider)

	rec := do(s, http.MethodPost, "/api/graph/reload", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	do(s, http.MethodPost, "/api/graphs/search", searchBody)
	rec = do(s, http.MethodPost, "/api/graph/reload", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestInput(t *testing.T) {
	s, _ := newTestServer(t, okProvider)

	rec := do(s, http.MethodPost, "/api/graph/input", `{"kind": "down", "x": 1, "y": 1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code, "no session yet")

	do(s, http.MethodPost, "/api/graphs/search", searchBody)

	rec = do(s, http.MethodPost, "/api/graph/input", `{"kind": "wheel", "x": 100, "y": 100, "deltaY": -1}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var result viewer.InputResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "idle", result.Mode)
	require.NotNil(t, result.Patch.Viewport)
	assert.NotEqual(t, 0.5, result.Patch.Viewport.Scale)

	rec = do(s, http.MethodPost, "/api/graph/input", `{"kind": "hover", "x": 1, "y": 1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(s, http.MethodPost, "/api/graph/tidy", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStatusAndHealth(t *testing.T) {
	s, _ := newTestServer(t, okProvider)

	rec := do(s, http.MethodGet, "/api/graph/status", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var status pubsub.GraphStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, viewer.StateIdle, status.State)

	assert.Equal(t, http.StatusOK, do(s, http.MethodGet, "/health/live", "").Code)
	assert.Equal(t, http.StatusOK, do(s, http.MethodGet, "/health/ready", "").Code)

	rec = do(s, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "folia_viewer_fetch_duration_seconds")
}

func TestReadyWhileLoading(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	s, _ := newTestServer(t, func(ctx context.Context, req provider.Request) (*model.GraphData, error) {
		close(started)
		<-release
		return graphData(), nil
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		do(s, http.MethodPost, "/api/graphs/search", searchBody)
	}()

	<-started
	assert.Equal(t, http.StatusServiceUnavailable, do(s, http.MethodGet, "/health/ready", "").Code)
	close(release)
	<-done
	assert.Equal(t, http.StatusOK, do(s, http.MethodGet, "/health/ready", "").Code)
}

func TestStaticFiles(t *testing.T) {
	s, _ := newTestServer(t, okProvider)

	rec := do(s, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Folia Viewer")

	rec = do(s, http.MethodGet, "/app.js", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSubscribe(t *testing.T) {
	s, _ := newTestServer(t, okProvider)

	rec := do(s, http.MethodGet, "/api/subscribe/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	do(s, http.MethodPost, "/api/graphs/search", searchBody)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/api/subscribe/"+pubsub.TopicStatus, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		var event pubsub.Event
		require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &event))
		assert.Equal(t, pubsub.TopicStatus, event.Topic)
		assert.Equal(t, viewer.StateReady, event.Type)
		return
	}
	t.Fatalf("no SSE event received: %v", scanner.Err())
}
