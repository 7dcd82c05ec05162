package solar

type EventType int

const (
	EventFocusChanged EventType = iota
	EventOverviewRequested
	EventSelectionRejected
	EventHighlightToggled
)

type Event struct {
	Type   EventType
	BodyID string
	On     bool // highlight state for EventHighlightToggled
}

type EventHandler func(Event)

type EventBus struct {
	handlers map[EventType][]EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(t EventType, fn EventHandler) {
	eb.handlers[t] = append(eb.handlers[t], fn)
}

func (eb *EventBus) Emit(e Event) {
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
}
