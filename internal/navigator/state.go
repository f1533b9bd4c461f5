package navigator

import (
	"slices"

	"genshinbook/internal/domain"
)

// State is the navigation state of one browsing session
type State struct {
	ActivePath   []string // breadcrumb from the root, empty at the root
	LastResponse any      // payload of the last applied fetch, unwrapped at the root
	Version      uint64   // incremented on every applied fetch
}

// AtRoot reports whether the breadcrumb is empty
func (s State) AtRoot() bool {
	return len(s.ActivePath) == 0
}

// Kind classifies LastResponse for rendering
func (s State) Kind() domain.Kind {
	return domain.Classify(s.LastResponse)
}

// Entries returns the navigable entries of a list payload, nil for a leaf
func (s State) Entries() []string {
	if s.Kind() != domain.KindList {
		return nil
	}
	return domain.Labels(s.LastResponse)
}

func (s State) clone() State {
	s.ActivePath = slices.Clone(s.ActivePath)
	if s.ActivePath == nil {
		s.ActivePath = []string{}
	}
	return s
}

// Forward returns path with segment appended, leaving path untouched
func Forward(path []string, segment string) []string {
	next := make([]string, len(path), len(path)+1)
	copy(next, path)
	return append(next, segment)
}

// Pop returns path without its last segment, leaving path untouched
func Pop(path []string) []string {
	if len(path) == 0 {
		return []string{}
	}
	return slices.Clone(path[:len(path)-1])
}

// Resolve returns the value stored as LastResponse for a payload fetched
// at target. Only the root nests its list under the "types" field.
func Resolve(target []string, payload any) any {
	if len(target) == 0 {
		return domain.UnwrapRoot(payload)
	}
	return payload
}
