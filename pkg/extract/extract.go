// Package extract is the boundary to the external text-extraction
// collaborator. It performs no interpretation of the extracted text: whatever
// the collaborator returns, including an empty string, is passed through and
// the caller decides what counts as a usable document.
package extract

import (
	"context"
	"errors"
	"fmt"
)

// File is an uploaded document handed to an extractor.
type File struct {
	Name        string
	Size        int64
	ContentType string
	Data        []byte
}

// Extractor converts one uploaded file into plain text.
type Extractor interface {
	Extract(ctx context.Context, file File) (string, error)
}

// supportedTypes is the fixed media-type allow-list, mapped to the file
// extension the Python reader dispatches on.
var supportedTypes = map[string]string{
	"application/pdf": ".pdf",
	"text/csv":        ".csv",
	"image/png":       ".png",
	"image/jpeg":      ".jpg",
	"image/bmp":       ".bmp",
	"image/tiff":      ".tiff",
}

// ErrUnsupportedType is returned before any collaborator dispatch when the
// declared media type is not on the allow-list.
var ErrUnsupportedType = errors.New("unsupported file type")

// IsSupported reports allow-list membership for a declared media type.
func IsSupported(contentType string) bool {
	_, ok := supportedTypes[contentType]
	return ok
}

// ExtensionFor returns the extension used for the transient file written for
// the external reader.
func ExtensionFor(contentType string) (string, bool) {
	ext, ok := supportedTypes[contentType]
	return ext, ok
}

// SupportedContentTypes lists the allow-list, for error messages and docs.
func SupportedContentTypes() []string {
	types := make([]string, 0, len(supportedTypes))
	for ct := range supportedTypes {
		types = append(types, ct)
	}
	return types
}

// ProcessError means the collaborator was reached but signaled failure
// (non-zero exit or non-success status). Retryable from the user's side.
type ProcessError struct {
	Detail string
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("extraction process failed: %s", e.Detail)
}

// TransportError means the collaborator could not be reached at all.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("extraction transport failure: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
