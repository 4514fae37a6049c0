package chat

// EventKind tags every inbound chat event. The relay maps button callbacks
// and free text onto these; the core never sees transport details.
type EventKind string

const (
	// Customer conversation events.
	EventStart       EventKind = "start"
	EventMenuPick    EventKind = "menu_pick"
	EventViewCart    EventKind = "view_cart"
	EventRemoveMenu  EventKind = "remove_menu"
	EventDelete      EventKind = "delete"
	EventCheckout    EventKind = "checkout"
	EventBackToMenu  EventKind = "back_to_menu"
	EventGranolaPick EventKind = "granola_pick"
	EventDrizzlePick EventKind = "drizzle_pick"
	EventFreeText    EventKind = "free_text"
	EventSkipRequest EventKind = "skip_request"

	// Operator commands, allow-list checked before dispatch.
	EventToggleShop   EventKind = "toggle_shop"
	EventQueueRequest EventKind = "queue_request"
	EventServe        EventKind = "serve"
	EventRefreshQueue EventKind = "refresh_queue"
)

// Event is one inbound message, already parsed by the relay.
type Event struct {
	Kind     EventKind `json:"kind" binding:"required"`
	ItemKey  string    `json:"item_key,omitempty"`
	Choice   string    `json:"choice,omitempty"`
	Text     string    `json:"text,omitempty"`
	Index    int       `json:"index,omitempty"`
	OrderRef string    `json:"order_ref,omitempty"`
}

// IsOperatorCommand reports whether the event kind is reserved for the
// operator allow-list.
func (e Event) IsOperatorCommand() bool {
	switch e.Kind {
	case EventToggleShop, EventQueueRequest, EventServe, EventRefreshQueue:
		return true
	}
	return false
}

// Identity is the sender of an inbound event.
type Identity struct {
	ID   int64  `json:"customer_id" binding:"required"`
	Name string `json:"customer_name"`
}

// Action is one labeled button attached to a reply. Data round-trips back as
// the callback payload of a future event.
type Action struct {
	Label string `json:"label"`
	Data  string `json:"data"`
}

// Reply is one outbound prompt.
type Reply struct {
	Text    string   `json:"text"`
	Actions []Action `json:"actions,omitempty"`
}
