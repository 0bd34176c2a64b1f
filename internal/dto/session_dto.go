package dto

import "time"

type CreateSessionResponse struct {
	Id string `json:"id"`
}

type SessionStateResponse struct {
	Id              string `json:"id"`
	Status          string `json:"status"`
	FileName        string `json:"file_name,omitempty"`
	FileSize        int64  `json:"file_size,omitempty"`
	PendingQuestion bool   `json:"pending_question"`
	TurnCount       int    `json:"turn_count"`
}

type TurnResponse struct {
	Id        int       `json:"id"`
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	Source    string    `json:"source,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type SessionUploadResponse struct {
	SessionId string        `json:"session_id"`
	Status    string        `json:"status"`
	Name      string        `json:"name"`
	Size      int64         `json:"size"`
	Greeting  *TurnResponse `json:"greeting,omitempty"`
}

type SessionAskRequest struct {
	Question string `json:"question" validate:"required"`
}

// SessionAskResponse mirrors the appended turn pair so a client can render
// without refetching history.
type SessionAskResponse struct {
	SessionId string        `json:"session_id"`
	Sent      *TurnResponse `json:"sent"`
	Reply     *TurnResponse `json:"reply"`
}
