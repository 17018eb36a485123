package viewer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ritzau/folia-viewer/pkg/layout"
	"github.com/ritzau/folia-viewer/pkg/model"
	"github.com/ritzau/folia-viewer/pkg/provider"
	"github.com/ritzau/folia-viewer/pkg/pubsub"
	"github.com/ritzau/folia-viewer/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func request(projects ...string) provider.Request {
	return provider.Request{
		Projects:  projects,
		GraphType: model.GraphGeneral,
		GeneralFilters: &provider.GeneralFilter{
			EntityTypes:   []string{"work", "person"},
			Relationships: []string{"work_created_by"},
		},
	}
}

func scenarioData() *model.GraphData {
	return &model.GraphData{
		Nodes: []model.Node{
			{ID: "A", Title: "Hamlet", EntityType: model.EntityWork},
			{ID: "B", Title: "Shakespeare", EntityType: model.EntityPerson},
			{ID: "C", Title: "Page", EntityType: model.EntityPage},
		},
		Edges: []model.Edge{
			{Source: "A", Target: "B", Type: "work_created_by", Direction: model.DirectionOutgoing},
			{Source: "B", Target: "A", Type: "person_created", Direction: model.DirectionIncoming},
			{Source: "A", Target: "Z", Type: "dangling", Direction: model.DirectionOutgoing},
		},
	}
}

func options() session.Options {
	opts := session.DefaultOptions()
	opts.Layout.Seed = 5
	return opts
}

func staticProvider(data *model.GraphData, err error) provider.Provider {
	return provider.Func(func(ctx context.Context, req provider.Request) (*model.GraphData, error) {
		return data, err
	})
}

func TestLoadReady(t *testing.T) {
	pub := pubsub.NewViewerPublisher()
	defer pub.Close()
	v := New(staticProvider(scenarioData(), nil), pub, options())

	result, err := v.Load(context.Background(), request("p"))

	require.NoError(t, err)
	assert.Equal(t, StateReady, result.Status.State)
	require.NotNil(t, result.Frame)
	assert.Len(t, result.Frame.Nodes, 3)
	assert.Len(t, result.Frame.Edges, 1)
	assert.Equal(t, 1, result.Frame.Skipped)
	assert.True(t, v.Ready())

	frame, err := v.Frame()
	require.NoError(t, err)
	assert.Equal(t, result.Frame.SessionID, frame.SessionID)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	sub, err := pub.Subscribe(ctx, pubsub.TopicStatus)
	require.NoError(t, err)
	select {
	case ev := <-sub.Events():
		assert.Equal(t, StateReady, ev.Type)
	case <-ctx.Done():
		t.Fatal("expected replayed status")
	}
}

func TestLoadEmpty(t *testing.T) {
	v := New(staticProvider(&model.GraphData{}, nil), nil, options())

	result, err := v.Load(context.Background(), request())

	require.NoError(t, err)
	assert.Equal(t, StateEmpty, result.Status.State)
	assert.Nil(t, result.Frame)
	_, err = v.Frame()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestLoadError(t *testing.T) {
	boom := errors.New("connection refused")
	calls := 0
	p := provider.Func(func(ctx context.Context, req provider.Request) (*model.GraphData, error) {
		calls++
		if calls == 1 {
			return scenarioData(), nil
		}
		return nil, boom
	})
	v := New(p, nil, options())

	_, err := v.Load(context.Background(), request())
	require.NoError(t, err)

	result, err := v.Load(context.Background(), request())
	require.ErrorIs(t, err, boom)
	assert.Equal(t, StateError, result.Status.State)
	assert.Contains(t, result.Status.Message, "connection refused")
	assert.Equal(t, 2, calls)

	// The previous session is gone.
	_, err = v.Input(InputEvent{Kind: InputDown})
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestLoadInvalidRequest(t *testing.T) {
	v := New(staticProvider(scenarioData(), nil), nil, options())

	req := request()
	req.GeneralFilters = nil
	_, err := v.Load(context.Background(), req)

	assert.ErrorIs(t, err, provider.ErrInvalidRequest)
	assert.Equal(t, StateIdle, v.Status().State)
}

func TestLastFetchWins(t *testing.T) {
	slowRelease := make(chan struct{})
	slowStarted := make(chan struct{})

	p := provider.Func(func(ctx context.Context, req provider.Request) (*model.GraphData, error) {
		if req.Projects[0] == "slow" {
			close(slowStarted)
			<-slowRelease
			return &model.GraphData{Nodes: []model.Node{{ID: "old"}}}, nil
		}
		return &model.GraphData{Nodes: []model.Node{{ID: "new1"}, {ID: "new2"}}}, nil
	})
	v := New(p, nil, options())

	var wg sync.WaitGroup
	var slowErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, slowErr = v.Load(context.Background(), request("slow"))
	}()

	<-slowStarted
	result, err := v.Load(context.Background(), request("fast"))
	require.NoError(t, err)
	require.NotNil(t, result.Frame)

	close(slowRelease)
	wg.Wait()

	assert.ErrorIs(t, slowErr, ErrSuperseded)
	frame, err := v.Frame()
	require.NoError(t, err)
	assert.Len(t, frame.Nodes, 2)
	assert.Equal(t, result.Frame.SessionID, frame.SessionID)
}

func TestReload(t *testing.T) {
	calls := 0
	p := provider.Func(func(ctx context.Context, req provider.Request) (*model.GraphData, error) {
		calls++
		return scenarioData(), nil
	})
	v := New(p, nil, options())

	_, err := v.Reload(context.Background())
	assert.ErrorIs(t, err, ErrNothingToReload)

	first, err := v.Load(context.Background(), request("p"))
	require.NoError(t, err)
	second, err := v.Reload(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
	assert.NotEqual(t, first.Frame.SessionID, second.Frame.SessionID)
}

func TestInputPanAndPublish(t *testing.T) {
	pub := pubsub.NewViewerPublisher()
	defer pub.Close()
	v := New(staticProvider(scenarioData(), nil), pub, options())
	_, err := v.Load(context.Background(), request())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	sub, err := pub.Subscribe(ctx, pubsub.TopicPatch)
	require.NoError(t, err)

	res, err := v.Input(InputEvent{Kind: InputDown, X: -5000, Y: -5000})
	require.NoError(t, err)
	assert.Equal(t, "panning", res.Mode)
	assert.True(t, res.Patch.Empty())

	res, err = v.Input(InputEvent{Kind: InputMove, X: -4990, Y: -4980})
	require.NoError(t, err)
	require.NotNil(t, res.Patch.Viewport)
	assert.Equal(t, 10.0, res.Patch.Viewport.PanX)
	assert.Equal(t, 20.0, res.Patch.Viewport.PanY)

	select {
	case ev := <-sub.Events():
		assert.Equal(t, InputMove, ev.Type)
	case <-ctx.Done():
		t.Fatal("expected published patch")
	}

	res, err = v.Input(InputEvent{Kind: InputUp})
	require.NoError(t, err)
	assert.Equal(t, "idle", res.Mode)

	res, err = v.Input(InputEvent{Kind: InputWheel, X: 100, Y: 100, DeltaY: -1})
	require.NoError(t, err)
	require.NotNil(t, res.Patch.Viewport)
	assert.InDelta(t, 0.55, res.Patch.Viewport.Scale, 1e-9)

	_, err = v.Input(InputEvent{Kind: "pinch"})
	assert.Error(t, err)
}

func TestTidy(t *testing.T) {
	v := New(staticProvider(scenarioData(), nil), nil, options())
	_, err := v.Load(context.Background(), request())
	require.NoError(t, err)

	res, err := v.Tidy()
	require.NoError(t, err)
	// The initial layout already ran the collision pass.
	assert.True(t, res.Patch.Empty())
}

func TestLayoutSeedIsReproducible(t *testing.T) {
	load := func() *session.Frame {
		v := New(staticProvider(scenarioData(), nil), nil, options())
		result, err := v.Load(context.Background(), request())
		require.NoError(t, err)
		return result.Frame
	}

	first, second := load(), load()
	for i := range first.Nodes {
		assert.Equal(t, first.Nodes[i].X, second.Nodes[i].X)
		assert.Equal(t, first.Nodes[i].Y, second.Nodes[i].Y)
	}
	assert.Equal(t, layout.DefaultConfig().NodeSize, first.NodeSize)
}
