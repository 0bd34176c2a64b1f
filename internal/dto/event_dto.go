package dto

// Session event types published on the in-process bus and pushed to
// websocket subscribers.
const (
	EventDocumentReady  = "document.ready"
	EventDocumentFailed = "document.failed"
	EventTurnAppended   = "turn.appended"
	EventSessionCleared = "session.cleared"
)

// PublishSessionEventMessage is the payload carried by the watermill topic.
type PublishSessionEventMessage struct {
	SessionId string        `json:"session_id"`
	Type      string        `json:"type"`
	Status    string        `json:"status,omitempty"`
	Turn      *TurnResponse `json:"turn,omitempty"`
	Error     string        `json:"error,omitempty"`
}
