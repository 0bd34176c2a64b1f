package dto

// UploadDocumentResponse is the legacy /upload wire contract. PdfText keeps
// its historical name even though the extractor also handles CSV and images.
type UploadDocumentResponse struct {
	Message string `json:"message"`
	PdfText string `json:"pdfText"`
	Name    string `json:"name"`
	Size    int64  `json:"size"`
}

// AskRequest is the legacy stateless /ask body. Both fields are required;
// a missing one is a client error and no LLM call is made.
type AskRequest struct {
	Question string `json:"question" validate:"required"`
	PdfText  string `json:"pdfText" validate:"required"`
}

// AskResponse carries the decomposed answer. Source is omitted when the
// completion held no usable excerpt.
type AskResponse struct {
	Answer string `json:"answer"`
	Source string `json:"source,omitempty"`
}
