package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventNavigationStarted   EventType = "NavigationStarted"
	EventNavigationCompleted EventType = "NavigationCompleted"
	EventNavigationFailed    EventType = "NavigationFailed"
	EventNavigationDiscarded EventType = "NavigationDiscarded"
	EventConfigLoaded        EventType = "ConfigLoaded"
	EventConfigSaved         EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// Operation identifies which navigator operation produced an event
type Operation string

const (
	OpInitialize Operation = "initialize"
	OpInto       Operation = "into"
	OpBack       Operation = "back"
	OpRefresh    Operation = "refresh"
)

// NavigationStartedEvent is emitted when a fetch is issued
type NavigationStartedEvent struct {
	RequestID uint64
	Op        Operation
	Path      []string // target path
	URL       string
}

func (e NavigationStartedEvent) Type() EventType { return EventNavigationStarted }

// NavigationCompletedEvent is emitted after a fetch result has been applied
type NavigationCompletedEvent struct {
	RequestID uint64
	Op        Operation
	Path      []string
	Kind      Kind
}

func (e NavigationCompletedEvent) Type() EventType { return EventNavigationCompleted }

// NavigationFailedEvent is emitted when the gateway returned no data.
// The navigation state is unchanged.
type NavigationFailedEvent struct {
	RequestID uint64
	Op        Operation
	Path      []string
	URL       string
}

func (e NavigationFailedEvent) Type() EventType { return EventNavigationFailed }

// NavigationDiscardedEvent is emitted when a stale result is dropped
type NavigationDiscardedEvent struct {
	RequestID uint64
	Op        Operation
}

func (e NavigationDiscardedEvent) Type() EventType { return EventNavigationDiscarded }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path    string // empty when only defaults were used
	BaseURL string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is written
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
