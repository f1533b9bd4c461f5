// Package navigator owns the browsing state and maps user intent
// (open, select an entry, go back) onto API paths.
package navigator

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	log "github.com/sirupsen/logrus"
	"go.uber.org/atomic"

	"genshinbook/internal/api"
	"genshinbook/internal/domain"
	"genshinbook/internal/eventbus"
)

var (
	// ErrBusy is returned when another navigation is still in flight
	ErrBusy = errors.New("navigation already in progress")
	// ErrAtRoot is returned by NavigateBack at the root
	ErrAtRoot = errors.New("already at root")
	// ErrEmptySegment is returned by NavigateInto for an empty segment
	ErrEmptySegment = errors.New("empty segment")
	// ErrFetchFailed means the gateway returned no data; state is unchanged
	ErrFetchFailed = errors.New("fetch failed")
	// ErrDiscarded means the result arrived after Cancel and was dropped
	ErrDiscarded = errors.New("navigation result discarded")
)

// Navigator serializes navigation: at most one fetch is in flight and a
// result is only applied if its request id is still the latest.
type Navigator struct {
	gateway api.Gateway
	baseURL string
	bus     eventbus.EventBus

	mu     sync.Mutex
	state  State
	cancel context.CancelFunc

	inFlight *atomic.Bool
	seq      *atomic.Uint64
}

// New creates a navigator at the root with no payload. bus may be nil.
func New(gateway api.Gateway, baseURL string, bus eventbus.EventBus) *Navigator {
	return &Navigator{
		gateway:  gateway,
		baseURL:  baseURL,
		bus:      bus,
		state:    State{ActivePath: []string{}},
		inFlight: atomic.NewBool(false),
		seq:      atomic.NewUint64(0),
	}
}

// State returns a copy of the current state
func (n *Navigator) State() State {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state.clone()
}

// BaseURL returns the API root
func (n *Navigator) BaseURL() string {
	return n.baseURL
}

// Busy reports whether a fetch is outstanding
func (n *Navigator) Busy() bool {
	return n.inFlight.Load()
}

// Initialize loads the root listing
func (n *Navigator) Initialize(ctx context.Context) error {
	return n.run(ctx, domain.OpInitialize, func(State) ([]string, error) {
		return []string{}, nil
	})
}

// NavigateInto opens the child named segment of the current node
func (n *Navigator) NavigateInto(ctx context.Context, segment string) error {
	if segment == "" {
		return ErrEmptySegment
	}
	return n.run(ctx, domain.OpInto, func(s State) ([]string, error) {
		return Forward(s.ActivePath, segment), nil
	})
}

// NavigateBack returns to the parent of the current node
func (n *Navigator) NavigateBack(ctx context.Context) error {
	return n.run(ctx, domain.OpBack, func(s State) ([]string, error) {
		if s.AtRoot() {
			return nil, ErrAtRoot
		}
		return Pop(s.ActivePath), nil
	})
}

// Refresh fetches the current node again
func (n *Navigator) Refresh(ctx context.Context) error {
	return n.run(ctx, domain.OpRefresh, func(s State) ([]string, error) {
		return s.ActivePath, nil
	})
}

// Cancel aborts the outstanding fetch, if any. Its result is discarded.
func (n *Navigator) Cancel() {
	n.seq.Inc()
	n.mu.Lock()
	cancel := n.cancel
	n.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// run executes one navigation step. target computes the new path from the
// state at the time the step starts.
func (n *Navigator) run(ctx context.Context, op domain.Operation, target func(State) ([]string, error)) error {
	if !n.inFlight.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer n.inFlight.Store(false)

	path, err := target(n.State())
	if err != nil {
		return err
	}

	id := n.seq.Inc()
	targetURL := api.URL(n.baseURL, path)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	n.mu.Lock()
	n.cancel = cancel
	n.mu.Unlock()
	defer func() {
		n.mu.Lock()
		n.cancel = nil
		n.mu.Unlock()
	}()

	n.publish(domain.NavigationStartedEvent{RequestID: id, Op: op, Path: slices.Clone(path), URL: targetURL})
	log.WithFields(log.Fields{"op": op, "id": id, "url": targetURL}).Debug("navigating")

	payload, ok := n.gateway.Fetch(ctx, targetURL)

	if latest := n.seq.Load(); latest != id {
		log.WithFields(log.Fields{"op": op, "id": id, "latest": latest}).Info("discarding stale navigation result")
		n.publish(domain.NavigationDiscardedEvent{RequestID: id, Op: op})
		return ErrDiscarded
	}

	if !ok {
		n.publish(domain.NavigationFailedEvent{RequestID: id, Op: op, Path: slices.Clone(path), URL: targetURL})
		return fmt.Errorf("%w: %s", ErrFetchFailed, domain.Breadcrumb(path))
	}

	n.mu.Lock()
	n.state = State{
		ActivePath:   path,
		LastResponse: Resolve(path, payload),
		Version:      n.state.Version + 1,
	}
	kind := n.state.Kind()
	n.mu.Unlock()

	n.publish(domain.NavigationCompletedEvent{RequestID: id, Op: op, Path: slices.Clone(path), Kind: kind})
	return nil
}

func (n *Navigator) publish(event eventbus.DomainEvent) {
	if n.bus != nil {
		n.bus.Publish(event)
	}
}
