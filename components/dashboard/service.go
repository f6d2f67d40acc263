package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrUnknownSection is returned when a drag starts on an unknown card.
var ErrUnknownSection = errors.New("dashboard: unknown section")

// Phase tracks the section order lifecycle.
type Phase string

// Lifecycle phases.
const (
	PhaseUninitialized Phase = "uninitialized"
	PhaseDefault       Phase = "default"
	PhaseLoaded        Phase = "loaded"
	PhaseMutated       Phase = "mutated"
)

// Lifecycle reports the current phase and how many reorders were applied.
type Lifecycle struct {
	Phase     Phase `json:"phase"`
	Mutations int   `json:"mutations"`
}

// Options configures the dashboard Service. Every collaborator is provided via
// interface so applications can swap implementations.
type Options struct {
	OrderStore  OrderStore
	RefreshHook RefreshHook
	Telemetry   Telemetry
}

// Service owns the dashboard section order and its drag interaction.
type Service struct {
	opts Options

	// writeMu serializes apply, SaveOrder and notify across reorders.
	writeMu sync.Mutex

	mu        sync.Mutex
	order     SectionOrder
	drag      *DragMachine
	lifecycle Lifecycle
}

// NewService builds a Service instance with safe defaults. The order starts
// at the default permutation until Mount runs.
func NewService(opts Options) *Service {
	if opts.OrderStore == nil {
		opts.OrderStore = NewStorageOrderStore(nil, nil)
	}
	if opts.RefreshHook == nil {
		opts.RefreshHook = noopRefreshHook{}
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	return &Service{
		opts:      opts,
		order:     DefaultSectionOrder(),
		drag:      NewDragMachine(),
		lifecycle: Lifecycle{Phase: PhaseUninitialized},
	}
}

// Mount rehydrates the order from storage. Missing, unreadable or malformed
// values keep the default order.
func (s *Service) Mount(ctx context.Context) SectionOrder {
	stored, err := s.opts.OrderStore.LoadOrder(ctx)
	s.mu.Lock()
	if err == nil && stored.IsPermutation() {
		s.order = stored.Clone()
		s.lifecycle = Lifecycle{Phase: PhaseLoaded}
	} else {
		s.order = DefaultSectionOrder()
		s.lifecycle = Lifecycle{Phase: PhaseDefault}
	}
	order := s.order.Clone()
	s.mu.Unlock()

	payload := map[string]any{"order": order.Strings()}
	if err != nil && !errors.Is(err, ErrNoStoredOrder) {
		payload["discarded"] = err.Error()
	}
	s.recordTelemetry(ctx, "dashboard.sections.mount", payload)
	s.notify(ctx, SectionEvent{Order: order.Strings(), Reason: "load"})
	return order
}

// Refresh re-broadcasts the current order to the refresh hook.
func (s *Service) Refresh(ctx context.Context) SectionOrder {
	order := s.Order()
	s.notify(ctx, SectionEvent{Order: order.Strings(), Reason: "refresh"})
	return order
}

// Order returns the current order.
func (s *Service) Order() SectionOrder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.Clone()
}

// Lifecycle returns the current lifecycle state.
func (s *Service) Lifecycle() Lifecycle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lifecycle
}

// Move reorders source onto target and persists the result.
func (s *Service) Move(ctx context.Context, source, target Section) (SectionOrder, bool) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.mu.Lock()
	next, changed := Reorder(s.order, source, target)
	if changed {
		s.applyLocked(next)
	}
	s.mu.Unlock()
	if changed {
		s.persist(ctx, next, source, target)
	}
	return next.Clone(), changed
}

// BeginDrag picks up a card.
func (s *Service) BeginDrag(source Section) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.drag.Start(source) {
		return fmt.Errorf("%w: %q", ErrUnknownSection, source)
	}
	return nil
}

// DragEnter hovers target.
func (s *Service) DragEnter(target Section) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drag.Enter(target)
}

// DragLeave removes hover emphasis from target.
func (s *Service) DragLeave(target Section) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drag.Leave(target)
}

// Drop completes the drag on target, applying and persisting the reorder.
func (s *Service) Drop(ctx context.Context, target Section) (SectionOrder, bool) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.mu.Lock()
	source, ok := s.drag.Drop(target)
	if !ok {
		order := s.order.Clone()
		s.mu.Unlock()
		return order, false
	}
	next, changed := Reorder(s.order, source, target)
	if changed {
		s.applyLocked(next)
	}
	s.mu.Unlock()
	if changed {
		s.persist(ctx, next, source, target)
	}
	return next.Clone(), changed
}

// EndDrag cancels an in-flight drag.
func (s *Service) EndDrag() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drag.End()
}

// DragState returns the current drag state.
func (s *Service) DragState() DragState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drag.State()
}

func (s *Service) applyLocked(next SectionOrder) {
	s.order = next.Clone()
	s.lifecycle.Phase = PhaseMutated
	s.lifecycle.Mutations++
}

// persist is fire-and-forget: failures are recorded and the in-memory order
// stays authoritative for the session.
func (s *Service) persist(ctx context.Context, order SectionOrder, source, target Section) {
	if err := s.opts.OrderStore.SaveOrder(ctx, order); err != nil {
		s.recordTelemetry(ctx, "dashboard.sections.persist_error", map[string]any{"error": err.Error()})
	}
	s.recordTelemetry(ctx, "dashboard.sections.reorder", map[string]any{
		"source": string(source),
		"target": string(target),
		"order":  order.Strings(),
	})
	s.notify(ctx, SectionEvent{
		Order:  order.Strings(),
		Source: string(source),
		Target: string(target),
		Reason: "reorder",
	})
}

func (s *Service) notify(ctx context.Context, event SectionEvent) {
	if err := s.opts.RefreshHook.SectionsUpdated(ctx, event); err != nil {
		s.recordTelemetry(ctx, "dashboard.sections.hook_error", map[string]any{"error": err.Error()})
	}
}

func (s *Service) recordTelemetry(ctx context.Context, event string, payload map[string]any) {
	s.opts.Telemetry.Record(ctx, event, payload)
}

type noopRefreshHook struct{}

func (noopRefreshHook) SectionsUpdated(context.Context, SectionEvent) error {
	return nil
}
