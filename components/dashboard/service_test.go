package dashboard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-travelboard/components/storage"
)

type failingStore struct {
	storage.Store
	failWrites bool
	failReads  bool
}

func (f *failingStore) Get(ctx context.Context, key string) (string, bool, error) {
	if f.failReads {
		return "", false, errors.New("quota")
	}
	return f.Store.Get(ctx, key)
}

func (f *failingStore) Set(ctx context.Context, key, value string) error {
	if f.failWrites {
		return errors.New("quota exceeded")
	}
	return f.Store.Set(ctx, key, value)
}

type recordingTelemetry struct {
	events []string
}

func (r *recordingTelemetry) Record(_ context.Context, event string, _ map[string]any) {
	r.events = append(r.events, event)
}

func newServiceWithBlobs(blobs storage.Store, telemetry Telemetry, hook RefreshHook) *Service {
	return NewService(Options{
		OrderStore:  NewStorageOrderStore(blobs, nil),
		Telemetry:   telemetry,
		RefreshHook: hook,
	})
}

func TestServiceMountDefaultsWithoutStoredOrder(t *testing.T) {
	svc := newServiceWithBlobs(storage.NewMemoryStore(), nil, nil)
	assert.Equal(t, PhaseUninitialized, svc.Lifecycle().Phase)
	order := svc.Mount(context.Background())
	assert.Equal(t, DefaultSectionOrder(), order)
	assert.Equal(t, PhaseDefault, svc.Lifecycle().Phase)
}

func TestServiceMountLoadsStoredOrder(t *testing.T) {
	ctx := context.Background()
	blobs := storage.NewMemoryStore()
	require.NoError(t, blobs.Set(ctx, storage.KeySectionOrder, `["news","reviews","messages","bookings"]`))
	svc := newServiceWithBlobs(blobs, nil, nil)
	order := svc.Mount(ctx)
	assert.Equal(t, SectionOrder{SectionNews, SectionReviews, SectionMessages, SectionBookings}, order)
	assert.Equal(t, PhaseLoaded, svc.Lifecycle().Phase)
}

func TestServiceMountDiscardsCorruptedOrder(t *testing.T) {
	ctx := context.Background()
	for _, raw := range []string{`["news","reviews"]`, `{"a":1}`, `garbage`, `["news","news","news","news"]`} {
		blobs := storage.NewMemoryStore()
		require.NoError(t, blobs.Set(ctx, storage.KeySectionOrder, raw))
		telemetry := &recordingTelemetry{}
		svc := newServiceWithBlobs(blobs, telemetry, nil)
		assert.Equal(t, DefaultSectionOrder(), svc.Mount(ctx), raw)
		assert.Equal(t, PhaseDefault, svc.Lifecycle().Phase)
	}
}

func TestServiceMountIgnoresReadFailure(t *testing.T) {
	blobs := &failingStore{Store: storage.NewMemoryStore(), failReads: true}
	svc := newServiceWithBlobs(blobs, nil, nil)
	assert.Equal(t, DefaultSectionOrder(), svc.Mount(context.Background()))
}

func TestServiceDropPersistsAndBroadcasts(t *testing.T) {
	ctx := context.Background()
	blobs := storage.NewMemoryStore()
	hook := NewBroadcastHook()
	events, cancel := hook.Subscribe()
	defer cancel()
	svc := newServiceWithBlobs(blobs, nil, hook)
	svc.Mount(ctx)
	<-events

	require.NoError(t, svc.BeginDrag(SectionReviews))
	svc.DragEnter(SectionNews)
	order, changed := svc.Drop(ctx, SectionNews)
	require.True(t, changed)
	assert.Equal(t, SectionOrder{SectionBookings, SectionMessages, SectionNews, SectionReviews}, order)

	raw, ok, err := blobs.Get(ctx, storage.KeySectionOrder)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `["bookings","messages","news","reviews"]`, raw)

	event := <-events
	assert.Equal(t, "reorder", event.Reason)
	assert.Equal(t, "reviews", event.Source)
	assert.Equal(t, Lifecycle{Phase: PhaseMutated, Mutations: 1}, svc.Lifecycle())
	_, idle := svc.DragState().(Idle)
	assert.True(t, idle)
}

func TestServiceSelfDropLeavesOrder(t *testing.T) {
	ctx := context.Background()
	svc := newServiceWithBlobs(storage.NewMemoryStore(), nil, nil)
	svc.Mount(ctx)
	require.NoError(t, svc.BeginDrag(SectionMessages))
	svc.DragEnter(SectionMessages)
	order, changed := svc.Drop(ctx, SectionMessages)
	assert.False(t, changed)
	assert.Equal(t, DefaultSectionOrder(), order)
	assert.Equal(t, 0, svc.Lifecycle().Mutations)
}

func TestServiceEndDragWithoutDrop(t *testing.T) {
	svc := newServiceWithBlobs(storage.NewMemoryStore(), nil, nil)
	require.NoError(t, svc.BeginDrag(SectionNews))
	svc.DragEnter(SectionBookings)
	svc.EndDrag()
	assert.Equal(t, DefaultSectionOrder(), svc.Order())
	assert.ErrorIs(t, svc.BeginDrag(Section("weather")), ErrUnknownSection)
}

func TestServicePersistFailureKeepsMemoryOrder(t *testing.T) {
	ctx := context.Background()
	blobs := &failingStore{Store: storage.NewMemoryStore(), failWrites: true}
	telemetry := &recordingTelemetry{}
	svc := newServiceWithBlobs(blobs, telemetry, nil)
	svc.Mount(ctx)
	order, changed := svc.Move(ctx, SectionBookings, SectionNews)
	require.True(t, changed)
	assert.Equal(t, order, svc.Order())
	assert.Contains(t, telemetry.events, "dashboard.sections.persist_error")
}

func TestServiceOrderSurvivesRemount(t *testing.T) {
	ctx := context.Background()
	blobs := storage.NewMemoryStore()
	first := newServiceWithBlobs(blobs, nil, nil)
	first.Mount(ctx)
	first.Move(ctx, SectionNews, SectionBookings)

	second := newServiceWithBlobs(blobs, nil, nil)
	assert.Equal(t, SectionOrder{SectionNews, SectionBookings, SectionReviews, SectionMessages}, second.Mount(ctx))
}

type gatedOrderStore struct {
	mu      sync.Mutex
	saves   int
	started chan struct{}
	release chan struct{}
	stored  SectionOrder
}

func (g *gatedOrderStore) LoadOrder(context.Context) (SectionOrder, error) {
	return nil, ErrNoStoredOrder
}

func (g *gatedOrderStore) SaveOrder(_ context.Context, order SectionOrder) error {
	g.mu.Lock()
	g.saves++
	first := g.saves == 1
	g.mu.Unlock()
	if first {
		close(g.started)
		<-g.release
	}
	g.mu.Lock()
	g.stored = order.Clone()
	g.mu.Unlock()
	return nil
}

func TestServiceConcurrentMovesPersistInOrder(t *testing.T) {
	ctx := context.Background()
	store := &gatedOrderStore{started: make(chan struct{}), release: make(chan struct{})}
	hook := NewBroadcastHook()
	svc := NewService(Options{OrderStore: store, RefreshHook: hook})
	svc.Mount(ctx)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		svc.Move(ctx, SectionReviews, SectionNews)
	}()
	<-store.started
	go func() {
		defer wg.Done()
		svc.Move(ctx, SectionBookings, SectionMessages)
	}()
	time.Sleep(20 * time.Millisecond)
	close(store.release)
	wg.Wait()

	store.mu.Lock()
	stored := store.stored.Strings()
	store.mu.Unlock()
	assert.Equal(t, svc.Order().Strings(), stored)

	last, ok := hook.Last()
	require.True(t, ok)
	assert.Equal(t, svc.Order().Strings(), last.Order)
	assert.Equal(t, 2, svc.Lifecycle().Mutations)
}
