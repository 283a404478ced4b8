package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventScrollStarted EventType = "ScrollStarted"
	EventScrolled      EventType = "Scrolled"
	EventScrollStopped EventType = "ScrollStopped"
	EventPageChanged   EventType = "PageChanged"
	EventPagerToggled  EventType = "PagerToggled"
	EventDeckLoaded    EventType = "DeckLoaded"
	EventError         EventType = "Error"
	EventConfigLoaded  EventType = "ConfigLoaded"
	EventConfigSaved   EventType = "ConfigSaved"
	EventConfigChanged EventType = "ConfigChanged"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// ScrollStartedEvent is emitted when a scroll session opens
type ScrollStartedEvent struct {
	Percentage float64
	Page       int
}

func (e ScrollStartedEvent) Type() EventType { return EventScrollStarted }

// ScrolledEvent is emitted for every handled wheel event and easing frame
type ScrolledEvent struct {
	Percentage float64
	Page       int
}

func (e ScrolledEvent) Type() EventType { return EventScrolled }

// ScrollStoppedEvent is emitted once scrolling has settled
type ScrollStoppedEvent struct {
	Percentage float64
	Page       int
}

func (e ScrollStoppedEvent) Type() EventType { return EventScrollStopped }

// PageChangedEvent is emitted when the current page changes
type PageChangedEvent struct {
	Previous int
	Current  int
	Title    string // title of the page entered
}

func (e PageChangedEvent) Type() EventType { return EventPageChanged }

// PagerToggledEvent is emitted when input is enabled or disabled
type PagerToggledEvent struct {
	Enabled bool
}

func (e PagerToggledEvent) Type() EventType { return EventPagerToggled }

// DeckLoadedEvent is emitted once the page deck has been read
type DeckLoadedEvent struct {
	Source string
	Pages  int
}

func (e DeckLoadedEvent) Type() EventType { return EventDeckLoaded }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// ConfigChangedEvent is emitted when a runtime toggle needs to be persisted
type ConfigChangedEvent struct {
	Seq        uint64 // increases with every change, starting at 1
	StopAtPage bool
	Momentum   bool
	EaseBack   bool
}

func (e ConfigChangedEvent) Type() EventType { return EventConfigChanged }
