package store

import "time"

// Document session status values. Transitions per upload attempt are
// monotonic: EMPTY -> UPLOADING -> READY | FAILED.
const (
	StatusEmpty     = "EMPTY"
	StatusUploading = "UPLOADING"
	StatusReady     = "READY"
	StatusFailed    = "FAILED"
)

// Conversation turn roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ConversationTurn is one message in the ordered chat history.
// Turns are append-only; Id is unique and strictly increasing per session.
type ConversationTurn struct {
	Id        int       `json:"id"`
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	Source    string    `json:"source,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// DocumentSession is the active in-memory state of one document Q&A session:
// the extracted text of the currently loaded document, the conversation held
// against it, and the single-pending-question guard.
type DocumentSession struct {
	ID       string `json:"id"`
	Status   string `json:"status"`
	RawText  string `json:"raw_text"`
	FileName string `json:"file_name"`
	FileSize int64  `json:"file_size"`

	Turns           []ConversationTurn `json:"turns"`
	PendingQuestion bool               `json:"pending_question"`

	// NextTurnId keeps turn ids strictly increasing even after a reset.
	NextTurnId int `json:"-"`

	// Epoch counts resets; an in-flight upload compares it on completion to
	// detect that the session was cleared underneath it.
	Epoch int `json:"-"`
}

// NewDocumentSession returns an empty session with no document loaded.
func NewDocumentSession(id string) *DocumentSession {
	return &DocumentSession{
		ID:         id,
		Status:     StatusEmpty,
		NextTurnId: 1,
	}
}

// AppendTurn adds a turn to the history and returns it.
func (s *DocumentSession) AppendTurn(role, text, source string) *ConversationTurn {
	turn := ConversationTurn{
		Id:        s.NextTurnId,
		Role:      role,
		Text:      text,
		Source:    source,
		CreatedAt: time.Now(),
	}
	s.NextTurnId++
	s.Turns = append(s.Turns, turn)
	return &s.Turns[len(s.Turns)-1]
}

// Reset returns the session to its initial state: no document, no
// conversation, no pending question. The turn counter is kept so ids never
// repeat within a session.
func (s *DocumentSession) Reset() {
	s.Status = StatusEmpty
	s.RawText = ""
	s.FileName = ""
	s.FileSize = 0
	s.Turns = nil
	s.PendingQuestion = false
	s.Epoch++
}
