package service

import (
	"context"
	"time"

	"doc-qna-be/internal/repository/memory"
	"doc-qna-be/pkg/extract"
	"doc-qna-be/pkg/llm"
	"doc-qna-be/pkg/store"
)

// noopLogger satisfies the logging dependency without touching disk.
type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

// stubExtractor returns a scripted result and records how often it ran. When
// block is set, Extract waits on it before returning, so a test can hold an
// upload in flight.
type stubExtractor struct {
	text  string
	err   error
	block chan struct{}
	calls int
}

func (s *stubExtractor) Extract(ctx context.Context, file extract.File) (string, error) {
	s.calls++
	if s.block != nil {
		<-s.block
	}
	return s.text, s.err
}

// stubProvider returns a scripted completion. When block is set, Chat waits
// on it before returning, so a test can hold a question in flight.
type stubProvider struct {
	response string
	err      error
	block    chan struct{}
	calls    int
}

func (s *stubProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	s.calls++
	if s.block != nil {
		<-s.block
	}
	return s.response, s.err
}

func (s *stubProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return s.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

func newTestRepo() *memory.SessionRepository {
	return memory.NewSessionRepository(1 * time.Hour)
}

func seedReadySession(repo *memory.SessionRepository, id, rawText string) {
	session := store.NewDocumentSession(id)
	session.Status = store.StatusReady
	session.RawText = rawText
	session.FileName = "doc.csv"
	session.FileSize = int64(len(rawText))
	repo.Save(session)
}

func csvUpload() extract.File {
	return extract.File{
		Name:        "people.csv",
		Size:        15,
		ContentType: "text/csv",
		Data:        []byte("name,age\nAda,36"),
	}
}
