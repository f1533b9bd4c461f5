package ui

import (
	"genshinbook/internal/domain"
	"genshinbook/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// navigatedMsg carries the outcome of a navigator operation
type navigatedMsg struct {
	op     domain.Operation
	target []string // path the operation tried to reach
	err    error
}

// pagerMsg contains the result of showing a leaf in the pager
type pagerMsg struct {
	err error
}
