package websocket

import "github.com/stemsi/chemistry-web/internal/service"

// ─── Actions (Client → Server) ──────────────────────────────────────

// ActionPing keeps idle connections alive. Every other action is a quiz
// command and is passed to the controller unchanged.
const ActionPing service.QuizAction = "ping"

// RequestPayload is one client frame.
type RequestPayload struct {
	Action service.QuizAction `json:"action"`
	Bank   string             `json:"bank,omitempty"`
	Option *int               `json:"option,omitempty"`
}

// Command converts the frame into a controller command. A missing option
// becomes -1 so select_option without one is rejected as out of range.
func (p RequestPayload) Command() service.QuizCommand {
	opt := -1
	if p.Option != nil {
		opt = *p.Option
	}
	return service.QuizCommand{Action: p.Action, Bank: p.Bank, Option: opt}
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventReady Event = "ready"
	EventView  Event = "view"
	EventError Event = "error"
	EventPong  Event = "pong"
)

// ReadyResponse opens every stream with the connection id.
type ReadyResponse struct {
	Event        Event  `json:"event"`
	ConnectionID string `json:"connection_id"`
}

// ViewResponse carries the quiz view after a command, plus its rendered
// HTML fragment.
type ViewResponse struct {
	Event Event            `json:"event"`
	View  service.QuizView `json:"view"`
	HTML  string           `json:"html,omitempty"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Code  string `json:"code,omitempty"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
