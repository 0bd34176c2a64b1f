// Package remote calls the document-processing HTTP service (the FastAPI
// /process endpoint) to extract text from an uploaded file.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"doc-qna-be/pkg/extract"
)

type RemoteExtractor struct {
	BaseURL string
	Client  *http.Client
}

var _ extract.Extractor = &RemoteExtractor{}

func NewRemoteExtractor(baseURL string, timeout time.Duration) *RemoteExtractor {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &RemoteExtractor{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: timeout,
		},
	}
}

// processResponse is the extraction service response format.
type processResponse struct {
	Output string `json:"output"`
	Error  string `json:"error,omitempty"`
}

func (r *RemoteExtractor) Extract(ctx context.Context, file extract.File) (string, error) {
	if !extract.IsSupported(file.ContentType) {
		return "", extract.ErrUnsupportedType
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, file.Name))
	header.Set("Content-Type", file.ContentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return "", fmt.Errorf("create multipart: %w", err)
	}
	if _, err := part.Write(file.Data); err != nil {
		return "", fmt.Errorf("write multipart: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", r.BaseURL+"/process", &body)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := r.Client.Do(req)
	if err != nil {
		return "", &extract.TransportError{Err: err}
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &extract.TransportError{Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &extract.ProcessError{Detail: strings.TrimSpace(string(bodyBytes))}
	}

	var result processResponse
	if err := json.Unmarshal(bodyBytes, &result); err != nil {
		return "", &extract.ProcessError{Detail: fmt.Sprintf("malformed response: %v", err)}
	}
	if result.Error != "" {
		return "", &extract.ProcessError{Detail: result.Error}
	}

	return result.Output, nil
}
