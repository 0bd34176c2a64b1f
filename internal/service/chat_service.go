package service

import (
	"context"
	"encoding/json"
	"strings"

	"doc-qna-be/internal/dto"
	"doc-qna-be/internal/pkg/logger"
	"doc-qna-be/internal/repository/memory"
	"doc-qna-be/pkg/qa"
	"doc-qna-be/pkg/store"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// apologyText is the assistant turn appended when the answer call fails, so
// the user is never left looking at a stuck thinking indicator.
const apologyText = "Sorry, I encountered an error while processing your question. Please try again."

type IChatService interface {
	Ask(ctx context.Context, request *dto.AskRequest) (*dto.AskResponse, error)
	AskSession(ctx context.Context, sessionId, question string) (*dto.SessionAskResponse, error)
}

type chatService struct {
	protocol    *qa.Protocol
	sessionRepo *memory.SessionRepository
	publisher   message.Publisher
	topicName   string
	logger      logger.ILogger
}

func NewChatService(
	protocol *qa.Protocol,
	sessionRepo *memory.SessionRepository,
	publisher message.Publisher,
	topicName string,
	sysLogger logger.ILogger,
) IChatService {
	return &chatService{
		protocol:    protocol,
		sessionRepo: sessionRepo,
		publisher:   publisher,
		topicName:   topicName,
		logger:      sysLogger,
	}
}

// Ask serves the legacy stateless /ask endpoint: the caller supplies both the
// question and the document text, and no session state is touched.
func (s *chatService) Ask(ctx context.Context, request *dto.AskRequest) (*dto.AskResponse, error) {
	result, err := s.protocol.Ask(ctx, request.Question, request.PdfText)
	if err != nil {
		s.logger.Error("ChatService", "Ask failed", map[string]interface{}{"error": err.Error()})
		return nil, err
	}
	return decompositionToDTO(result), nil
}

// AskSession runs the submitQuestion transition. The user turn is appended
// and the pending flag raised in one atomic step, so a second question is
// rejected until the in-flight one resolves and turns always appear in
// submission order. Success and failure converge on clearing the flag: a
// failed completion still appends a visible apology turn.
func (s *chatService) AskSession(ctx context.Context, sessionId, question string) (*dto.SessionAskResponse, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}

	var sent *dto.TurnResponse
	var documentText string
	err := s.sessionRepo.Update(sessionId, func(sess *store.DocumentSession) error {
		if sess.Status != store.StatusReady {
			return ErrDocumentNotReady
		}
		if sess.PendingQuestion {
			return ErrQuestionPending
		}
		sess.PendingQuestion = true
		turn := sess.AppendTurn(store.RoleUser, question, "")
		sent = turnToDTO(turn)
		documentText = sess.RawText
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.publish(dto.PublishSessionEventMessage{
		SessionId: sessionId,
		Type:      dto.EventTurnAppended,
		Turn:      sent,
	})

	result, askErr := s.protocol.Ask(ctx, question, documentText)
	if askErr != nil {
		s.logger.Error("ChatService", "Ask failed", map[string]interface{}{
			"session_id": sessionId,
			"error":      askErr.Error(),
		})
	}

	var reply *dto.TurnResponse
	err = s.sessionRepo.Update(sessionId, func(sess *store.DocumentSession) error {
		var turn *store.ConversationTurn
		if askErr != nil {
			turn = sess.AppendTurn(store.RoleAssistant, apologyText, "")
		} else {
			source := ""
			if result.HasSource {
				source = result.Source
			}
			turn = sess.AppendTurn(store.RoleAssistant, result.Answer, source)
		}
		reply = turnToDTO(turn)
		sess.PendingQuestion = false
		return nil
	})
	if err != nil {
		// Session expired while the completion was in flight.
		return nil, err
	}
	s.publish(dto.PublishSessionEventMessage{
		SessionId: sessionId,
		Type:      dto.EventTurnAppended,
		Turn:      reply,
	})

	return &dto.SessionAskResponse{
		SessionId: sessionId,
		Sent:      sent,
		Reply:     reply,
	}, nil
}

func (s *chatService) publish(event dto.PublishSessionEventMessage) {
	if s.publisher == nil {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err := s.publisher.Publish(s.topicName, message.NewMessage(watermill.NewUUID(), payload)); err != nil {
		s.logger.Warn("ChatService", "Failed to publish session event", map[string]interface{}{
			"session_id": event.SessionId,
			"type":       event.Type,
			"error":      err.Error(),
		})
	}
}

func decompositionToDTO(result *qa.Decomposition) *dto.AskResponse {
	response := &dto.AskResponse{Answer: result.Answer}
	if result.HasSource {
		response.Source = result.Source
	}
	return response
}
