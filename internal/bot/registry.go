package bot

// EventKey indexes the registry. An empty Action matches every delivery of
// Event.
type EventKey struct {
	Event  string
	Action string
}

// Registry maps event keys to handlers in registration order.
//
// It is not safe for concurrent writes. All Add calls must happen before the
// app starts serving; Resolve may then be called concurrently.
type Registry struct {
	handlers map[EventKey][]*Handler
	count    int
}

func NewRegistry() *Registry {
	return &Registry{handlers: map[EventKey][]*Handler{}}
}

// Add appends h to the handlers for (event, action).
func (r *Registry) Add(event, action string, h *Handler) {
	key := EventKey{Event: event, Action: action}
	r.handlers[key] = append(r.handlers[key], h)
	r.count++
}

// Resolve returns the event-wide handlers for event followed by the handlers
// registered for (event, action). The returned slice is owned by the caller.
func (r *Registry) Resolve(event, action string) []*Handler {
	wide := r.handlers[EventKey{Event: event}]
	var specific []*Handler
	if action != "" {
		specific = r.handlers[EventKey{Event: event, Action: action}]
	}

	out := make([]*Handler, 0, len(wide)+len(specific))
	out = append(out, wide...)
	out = append(out, specific...)
	return out
}

// Len reports the number of registrations.
func (r *Registry) Len() int {
	return r.count
}
