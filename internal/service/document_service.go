package service

import (
	"context"
	"encoding/json"
	"fmt"

	"doc-qna-be/internal/dto"
	"doc-qna-be/internal/pkg/logger"
	"doc-qna-be/internal/repository/memory"
	"doc-qna-be/pkg/extract"
	"doc-qna-be/pkg/store"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// readyGreeting is the synthetic assistant turn appended once a document
// finishes extraction.
const readyGreeting = "Perfect! I've successfully processed %q. The document is now ready for analysis. What would you like to know about it?"

type IDocumentService interface {
	CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error)
	Upload(ctx context.Context, sessionId string, file extract.File) (*dto.SessionUploadResponse, error)
	ExtractDocument(ctx context.Context, file extract.File) (*dto.UploadDocumentResponse, error)
	State(ctx context.Context, sessionId string) (*dto.SessionStateResponse, error)
	History(ctx context.Context, sessionId string) ([]dto.TurnResponse, error)
	Clear(ctx context.Context, sessionId string) error
}

type documentService struct {
	sessionRepo *memory.SessionRepository
	extractor   extract.Extractor
	publisher   message.Publisher
	topicName   string
	logger      logger.ILogger
}

func NewDocumentService(
	sessionRepo *memory.SessionRepository,
	extractor extract.Extractor,
	publisher message.Publisher,
	topicName string,
	sysLogger logger.ILogger,
) IDocumentService {
	return &documentService{
		sessionRepo: sessionRepo,
		extractor:   extractor,
		publisher:   publisher,
		topicName:   topicName,
		logger:      sysLogger,
	}
}

func (s *documentService) CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error) {
	session := store.NewDocumentSession(uuid.New().String())
	s.sessionRepo.Save(session)

	s.logger.Info("DocumentService", "Session created", map[string]interface{}{"session_id": session.ID})
	return &dto.CreateSessionResponse{Id: session.ID}, nil
}

// Upload runs the confirmUpload transition: EMPTY/READY/FAILED -> UPLOADING,
// then READY on successful extraction or FAILED otherwise. A new document
// always starts a fresh conversation; a failed upload leaves the existing
// conversation untouched so the user can retry.
func (s *documentService) Upload(ctx context.Context, sessionId string, file extract.File) (*dto.SessionUploadResponse, error) {
	// Fail fast on the allow-list before touching the collaborator.
	if !extract.IsSupported(file.ContentType) {
		return nil, extract.ErrUnsupportedType
	}

	var epoch int
	err := s.sessionRepo.Update(sessionId, func(sess *store.DocumentSession) error {
		if sess.Status == store.StatusUploading {
			return ErrUploadInProgress
		}
		if sess.PendingQuestion {
			return ErrQuestionPending
		}
		sess.Status = store.StatusUploading
		// READY holds iff raw text is present; dropping it here keeps the
		// invariant through the transition.
		sess.RawText = ""
		sess.FileName = file.Name
		sess.FileSize = file.Size
		epoch = sess.Epoch
		return nil
	})
	if err != nil {
		return nil, err
	}

	text, extractErr := s.extractor.Extract(ctx, file)
	if extractErr != nil {
		uerr := s.sessionRepo.Update(sessionId, func(sess *store.DocumentSession) error {
			// A clear issued mid-upload wins; leave the reset state alone.
			if sess.Epoch != epoch {
				return ErrUploadSuperseded
			}
			sess.Status = store.StatusFailed
			return nil
		})
		if uerr != nil {
			return nil, uerr
		}
		s.logger.Error("DocumentService", "Extraction failed", map[string]interface{}{
			"session_id": sessionId,
			"file":       file.Name,
			"error":      extractErr.Error(),
		})
		s.publish(dto.PublishSessionEventMessage{
			SessionId: sessionId,
			Type:      dto.EventDocumentFailed,
			Status:    store.StatusFailed,
			Error:     "Failed to process file",
		})
		return nil, extractErr
	}

	var greeting *dto.TurnResponse
	err = s.sessionRepo.Update(sessionId, func(sess *store.DocumentSession) error {
		if sess.Epoch != epoch {
			return ErrUploadSuperseded
		}
		sess.RawText = text
		sess.Status = store.StatusReady
		sess.Turns = nil // fresh conversation, no cross-document context
		turn := sess.AppendTurn(store.RoleAssistant, fmt.Sprintf(readyGreeting, file.Name), "")
		greeting = turnToDTO(turn)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("DocumentService", "Document ready", map[string]interface{}{
		"session_id": sessionId,
		"file":       file.Name,
		"text_len":   len(text),
	})
	s.publish(dto.PublishSessionEventMessage{
		SessionId: sessionId,
		Type:      dto.EventDocumentReady,
		Status:    store.StatusReady,
	})
	s.publish(dto.PublishSessionEventMessage{
		SessionId: sessionId,
		Type:      dto.EventTurnAppended,
		Turn:      greeting,
	})

	return &dto.SessionUploadResponse{
		SessionId: sessionId,
		Status:    store.StatusReady,
		Name:      file.Name,
		Size:      file.Size,
		Greeting:  greeting,
	}, nil
}

// ExtractDocument serves the legacy stateless /upload endpoint: extraction
// only, with the caller holding the returned text.
func (s *documentService) ExtractDocument(ctx context.Context, file extract.File) (*dto.UploadDocumentResponse, error) {
	if !extract.IsSupported(file.ContentType) {
		return nil, extract.ErrUnsupportedType
	}

	text, err := s.extractor.Extract(ctx, file)
	if err != nil {
		s.logger.Error("DocumentService", "Extraction failed", map[string]interface{}{
			"file":  file.Name,
			"error": err.Error(),
		})
		return nil, err
	}

	return &dto.UploadDocumentResponse{
		Message: "File processed successfully",
		PdfText: text,
		Name:    file.Name,
		Size:    file.Size,
	}, nil
}

func (s *documentService) State(ctx context.Context, sessionId string) (*dto.SessionStateResponse, error) {
	var state *dto.SessionStateResponse
	err := s.sessionRepo.View(sessionId, func(session *store.DocumentSession) {
		state = &dto.SessionStateResponse{
			Id:              session.ID,
			Status:          session.Status,
			FileName:        session.FileName,
			FileSize:        session.FileSize,
			PendingQuestion: session.PendingQuestion,
			TurnCount:       len(session.Turns),
		}
	})
	if err != nil {
		return nil, err
	}
	return state, nil
}

func (s *documentService) History(ctx context.Context, sessionId string) ([]dto.TurnResponse, error) {
	var turns []dto.TurnResponse
	err := s.sessionRepo.View(sessionId, func(session *store.DocumentSession) {
		turns = make([]dto.TurnResponse, len(session.Turns))
		for i := range session.Turns {
			turns[i] = *turnToDTO(&session.Turns[i])
		}
	})
	if err != nil {
		return nil, err
	}
	return turns, nil
}

// Clear runs the clearDocument transition: back to EMPTY with the document
// and the whole conversation discarded in one step.
func (s *documentService) Clear(ctx context.Context, sessionId string) error {
	err := s.sessionRepo.Update(sessionId, func(sess *store.DocumentSession) error {
		sess.Reset()
		return nil
	})
	if err != nil {
		return err
	}
	s.publish(dto.PublishSessionEventMessage{
		SessionId: sessionId,
		Type:      dto.EventSessionCleared,
		Status:    store.StatusEmpty,
	})
	return nil
}

func (s *documentService) publish(event dto.PublishSessionEventMessage) {
	if s.publisher == nil {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err := s.publisher.Publish(s.topicName, message.NewMessage(watermill.NewUUID(), payload)); err != nil {
		s.logger.Warn("DocumentService", "Failed to publish session event", map[string]interface{}{
			"session_id": event.SessionId,
			"type":       event.Type,
			"error":      err.Error(),
		})
	}
}

func turnToDTO(turn *store.ConversationTurn) *dto.TurnResponse {
	return &dto.TurnResponse{
		Id:        turn.Id,
		Role:      turn.Role,
		Text:      turn.Text,
		Source:    turn.Source,
		CreatedAt: turn.CreatedAt,
	}
}
