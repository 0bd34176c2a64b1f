package service

import "errors"

// State-machine guard violations. Controllers map these to HTTP conflicts;
// none of them mutate session state.
var (
	ErrUploadInProgress = errors.New("an upload is already in progress")
	ErrQuestionPending  = errors.New("a question is already being answered")
	ErrDocumentNotReady = errors.New("no document is ready for questions")
	ErrEmptyQuestion    = errors.New("question must not be empty")
	ErrUploadSuperseded = errors.New("the session was cleared while the upload was processing")
)
