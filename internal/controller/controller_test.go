package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"doc-qna-be/internal/dto"
	"doc-qna-be/internal/pkg/serverutils"
	"doc-qna-be/internal/repository/memory"
	"doc-qna-be/pkg/extract"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDocumentService scripts per-operation results for handler tests.
type fakeDocumentService struct {
	createResp  *dto.CreateSessionResponse
	uploadResp  *dto.SessionUploadResponse
	uploadErr   error
	extractResp *dto.UploadDocumentResponse
	extractErr  error
	stateResp   *dto.SessionStateResponse
	stateErr    error
	historyResp []dto.TurnResponse
	historyErr  error
	clearErr    error

	gotFile      *extract.File
	gotSessionId string
}

func (f *fakeDocumentService) CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error) {
	return f.createResp, nil
}

func (f *fakeDocumentService) Upload(ctx context.Context, sessionId string, file extract.File) (*dto.SessionUploadResponse, error) {
	f.gotSessionId = sessionId
	f.gotFile = &file
	return f.uploadResp, f.uploadErr
}

func (f *fakeDocumentService) ExtractDocument(ctx context.Context, file extract.File) (*dto.UploadDocumentResponse, error) {
	f.gotFile = &file
	return f.extractResp, f.extractErr
}

func (f *fakeDocumentService) State(ctx context.Context, sessionId string) (*dto.SessionStateResponse, error) {
	f.gotSessionId = sessionId
	return f.stateResp, f.stateErr
}

func (f *fakeDocumentService) History(ctx context.Context, sessionId string) ([]dto.TurnResponse, error) {
	f.gotSessionId = sessionId
	return f.historyResp, f.historyErr
}

func (f *fakeDocumentService) Clear(ctx context.Context, sessionId string) error {
	f.gotSessionId = sessionId
	return f.clearErr
}

type fakeChatService struct {
	askResp        *dto.AskResponse
	askErr         error
	askSessionResp *dto.SessionAskResponse
	askSessionErr  error

	gotQuestion  string
	gotSessionId string
}

func (f *fakeChatService) Ask(ctx context.Context, request *dto.AskRequest) (*dto.AskResponse, error) {
	f.gotQuestion = request.Question
	return f.askResp, f.askErr
}

func (f *fakeChatService) AskSession(ctx context.Context, sessionId, question string) (*dto.SessionAskResponse, error) {
	f.gotSessionId = sessionId
	f.gotQuestion = question
	return f.askSessionResp, f.askSessionErr
}

func newTestApp(docs *fakeDocumentService, chat *fakeChatService) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	api := app.Group("/api")
	if docs != nil {
		NewDocumentController(docs).RegisterRoutes(api)
	}
	if chat != nil {
		NewChatController(chat).RegisterRoutes(api)
	}
	return app
}

func multipartBody(t *testing.T, fieldName, fileName, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="`+fieldName+`"; filename="`+fileName+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out))
}

func TestUploadEndpoint(t *testing.T) {
	docs := &fakeDocumentService{
		extractResp: &dto.UploadDocumentResponse{
			Message: "File processed successfully",
			PdfText: "name age\n Ada  36",
			Name:    "people.csv",
			Size:    15,
		},
	}
	app := newTestApp(docs, nil)

	body, contentType := multipartBody(t, "file", "people.csv", "text/csv", []byte("name,age\nAda,36"))
	req := httptest.NewRequest("POST", "/api/upload", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got dto.UploadDocumentResponse
	decodeBody(t, resp, &got)
	assert.Equal(t, "File processed successfully", got.Message)
	assert.Equal(t, "name age\n Ada  36", got.PdfText)

	require.NotNil(t, docs.gotFile)
	assert.Equal(t, "text/csv", docs.gotFile.ContentType)
	assert.Equal(t, []byte("name,age\nAda,36"), docs.gotFile.Data)
}

func TestUploadEndpointNoFile(t *testing.T) {
	app := newTestApp(&fakeDocumentService{}, nil)

	req := httptest.NewRequest("POST", "/api/upload", bytes.NewReader(nil))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var got serverutils.ErrorBody
	decodeBody(t, resp, &got)
	assert.Equal(t, "No file uploaded", got.Error)
}

func TestUploadEndpointUnsupportedType(t *testing.T) {
	docs := &fakeDocumentService{extractErr: extract.ErrUnsupportedType}
	app := newTestApp(docs, nil)

	body, contentType := multipartBody(t, "file", "notes.txt", "text/plain", []byte("hello"))
	req := httptest.NewRequest("POST", "/api/upload", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)

	var got serverutils.ErrorBody
	decodeBody(t, resp, &got)
	assert.Equal(t, unsupportedTypeMessage, got.Error)
}

func TestUploadEndpointCollaboratorFailure(t *testing.T) {
	docs := &fakeDocumentService{extractErr: &extract.ProcessError{Detail: "broken xref"}}
	app := newTestApp(docs, nil)

	body, contentType := multipartBody(t, "file", "a.pdf", "application/pdf", []byte("%PDF"))
	req := httptest.NewRequest("POST", "/api/upload", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	var got serverutils.ErrorBody
	decodeBody(t, resp, &got)
	assert.Equal(t, "Failed to process file", got.Error, "collaborator detail must not leak to the client")
}

func TestAskEndpoint(t *testing.T) {
	chat := &fakeChatService{askResp: &dto.AskResponse{Answer: "36", Source: "Ada,36"}}
	app := newTestApp(nil, chat)

	payload := []byte(`{"question": "What is Ada's age?", "pdfText": "name,age\nAda,36"}`)
	req := httptest.NewRequest("POST", "/api/ask", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got dto.AskResponse
	decodeBody(t, resp, &got)
	assert.Equal(t, "36", got.Answer)
	assert.Equal(t, "Ada,36", got.Source)
	assert.Equal(t, "What is Ada's age?", chat.gotQuestion)
}

func TestAskEndpointMissingFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty body", `{}`},
		{"question only", `{"question": "q"}`},
		{"text only", `{"pdfText": "doc"}`},
		{"malformed json", `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chat := &fakeChatService{askResp: &dto.AskResponse{Answer: "unused"}}
			app := newTestApp(nil, chat)

			req := httptest.NewRequest("POST", "/api/ask", bytes.NewReader([]byte(tt.body)))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var got serverutils.ErrorBody
			decodeBody(t, resp, &got)
			assert.Equal(t, "No question or PDF text provided", got.Error)
		})
	}
}

func TestCreateSessionEndpoint(t *testing.T) {
	docs := &fakeDocumentService{createResp: &dto.CreateSessionResponse{Id: "sess-1"}}
	app := newTestApp(docs, nil)

	req := httptest.NewRequest("POST", "/api/session", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var got serverutils.Response[dto.CreateSessionResponse]
	decodeBody(t, resp, &got)
	assert.True(t, got.Success)
	assert.Equal(t, "sess-1", got.Data.Id)
}

func TestSessionUploadEndpoint(t *testing.T) {
	docs := &fakeDocumentService{
		uploadResp: &dto.SessionUploadResponse{
			SessionId: "sess-1",
			Status:    "READY",
			Name:      "people.csv",
			Size:      15,
		},
	}
	app := newTestApp(docs, nil)

	body, contentType := multipartBody(t, "file", "people.csv", "text/csv", []byte("name,age\nAda,36"))
	req := httptest.NewRequest("POST", "/api/session/sess-1/upload", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "sess-1", docs.gotSessionId)

	var got serverutils.Response[dto.SessionUploadResponse]
	decodeBody(t, resp, &got)
	assert.Equal(t, "READY", got.Data.Status)
}

func TestAskSessionEndpoint(t *testing.T) {
	chat := &fakeChatService{
		askSessionResp: &dto.SessionAskResponse{
			SessionId: "sess-1",
			Sent:      &dto.TurnResponse{Id: 2, Role: "user", Text: "What is Ada's age?"},
			Reply:     &dto.TurnResponse{Id: 3, Role: "assistant", Text: "36", Source: "Ada,36"},
		},
	}
	app := newTestApp(nil, chat)

	payload := []byte(`{"question": "What is Ada's age?"}`)
	req := httptest.NewRequest("POST", "/api/session/sess-1/ask", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "sess-1", chat.gotSessionId)

	var got serverutils.Response[dto.SessionAskResponse]
	decodeBody(t, resp, &got)
	require.NotNil(t, got.Data.Reply)
	assert.Equal(t, "36", got.Data.Reply.Text)
	assert.Equal(t, "Ada,36", got.Data.Reply.Source)
}

func TestAskSessionEndpointValidation(t *testing.T) {
	app := newTestApp(nil, &fakeChatService{})

	req := httptest.NewRequest("POST", "/api/session/sess-1/ask", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRespondErrorStatusMapping(t *testing.T) {
	docs := &fakeDocumentService{stateErr: memory.ErrSessionNotFound}
	app := newTestApp(docs, nil)

	req := httptest.NewRequest("GET", "/api/session/missing", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var got serverutils.ErrorBody
	decodeBody(t, resp, &got)
	assert.Equal(t, "Session not found", got.Error)
}
