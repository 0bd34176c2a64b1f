package remote

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"doc-qna-be/pkg/extract"

	"github.com/stretchr/testify/assert"
)

func csvFile() extract.File {
	return extract.File{
		Name:        "people.csv",
		Size:        16,
		ContentType: "text/csv",
		Data:        []byte("name,age\nAda,36"),
	}
}

func TestRemoteExtractorSuccess(t *testing.T) {
	var gotName string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/process", r.URL.Path)

		file, header, err := r.FormFile("file")
		if assert.NoError(t, err) {
			defer file.Close()
			gotName = header.Filename
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"output": "name age\n Ada  36"}`))
	}))
	defer server.Close()

	extractor := NewRemoteExtractor(server.URL, 5*time.Second)
	text, err := extractor.Extract(context.Background(), csvFile())

	assert.NoError(t, err)
	assert.Equal(t, "name age\n Ada  36", text)
	assert.Equal(t, "people.csv", gotName)
}

func TestRemoteExtractorServiceFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "reader crashed", http.StatusInternalServerError)
	}))
	defer server.Close()

	extractor := NewRemoteExtractor(server.URL, 5*time.Second)
	_, err := extractor.Extract(context.Background(), csvFile())

	var processErr *extract.ProcessError
	assert.ErrorAs(t, err, &processErr)
}

func TestRemoteExtractorErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"output": "", "error": "PDF read error: broken xref"}`))
	}))
	defer server.Close()

	extractor := NewRemoteExtractor(server.URL, 5*time.Second)
	_, err := extractor.Extract(context.Background(), extract.File{Name: "a.pdf", ContentType: "application/pdf"})

	var processErr *extract.ProcessError
	if assert.ErrorAs(t, err, &processErr) {
		assert.Contains(t, processErr.Detail, "broken xref")
	}
}

func TestRemoteExtractorUnreachable(t *testing.T) {
	// Reserve a port, then close it so the dial fails.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	extractor := NewRemoteExtractor(url, 1*time.Second)
	_, err := extractor.Extract(context.Background(), csvFile())

	var transportErr *extract.TransportError
	assert.ErrorAs(t, err, &transportErr)
}

func TestRemoteExtractorRejectsUnsupportedType(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	extractor := NewRemoteExtractor(server.URL, 5*time.Second)
	_, err := extractor.Extract(context.Background(), extract.File{Name: "a.txt", ContentType: "text/plain"})

	assert.True(t, errors.Is(err, extract.ErrUnsupportedType))
	assert.False(t, called, "unsupported types must be rejected before dispatch")
}
