package events

const (
	SubjectDispatchCompleted = "prubot.dispatch.completed"
)

// DispatchCompleted is published after a delivery has been dispatched and a
// response assembled. It carries no payload.
type DispatchCompleted struct {
	DeliveryID string   `json:"delivery_id"`
	Event      string   `json:"event"`
	Action     string   `json:"action,omitempty"`
	Matched    bool     `json:"matched"`
	Handlers   []string `json:"handlers"`
	StatusCode int      `json:"status_code"`
}
