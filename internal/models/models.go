package models

import (
	"errors"
	"time"
)

// DocumentType enumerates the artifact kinds the generation flows produce.
type DocumentType string

const (
	// DocumentTypeCoverLetter is a cover letter tailored to a job posting.
	DocumentTypeCoverLetter DocumentType = "Cover Letter"
	// DocumentTypeTailoredResume is a resume rewritten against a job posting.
	DocumentTypeTailoredResume DocumentType = "Tailored Resume"
	// DocumentTypeInterviewAnswers is a set of prepared interview answers.
	DocumentTypeInterviewAnswers DocumentType = "Interview Answers"
)

// IsValidDocumentType checks if the given document type is supported.
func IsValidDocumentType(dt DocumentType) bool {
	switch dt {
	case DocumentTypeCoverLetter, DocumentTypeTailoredResume, DocumentTypeInterviewAnswers:
		return true
	default:
		return false
	}
}

// Validation constants for input validation
const (
	// MinJobDescriptionLength defines the minimum length for a job description submitted for generation.
	MinJobDescriptionLength = 20
	// MaxFlowNameLength defines the maximum allowed length for a flow name.
	MaxFlowNameLength = 100
)

// Error variables for better error handling and testability
var (
	ErrEmptyFlowName      = errors.New("flow name cannot be empty")
	ErrMissingInput       = errors.New("input value is required")
	ErrEmptyJobTitle      = errors.New("job title cannot be empty")
	ErrEmptyJobText       = errors.New("job description cannot be empty")
	ErrEmptyResumeName    = errors.New("resume name cannot be empty")
	ErrEmptyResumeContent = errors.New("resume content cannot be empty")
)

// Attachment is a binary prompt part extracted from a data-URI field during
// template rendering, delivered to the provider alongside the rendered text.
type Attachment struct {
	MIMEType string `json:"mime_type"`
	Data     []byte `json:"data"`
	Name     string `json:"name,omitempty"`
}

// ProviderConfig bundles the model identifier and generation parameters a
// flow sends with every invocation.
type ProviderConfig struct {
	Model        string  `json:"model"`
	Temperature  float64 `json:"temperature,omitempty"`
	MaxTokens    int64   `json:"max_tokens,omitempty"`
	SystemPrompt string  `json:"system_prompt,omitempty"`
}

// Job represents a stored job posting.
type Job struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company,omitempty"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Resume represents a stored resume. Content holds either plain text or a
// data URI for binary uploads (e.g. application/pdf).
type Resume struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GeneratedDocument represents one persisted generation result.
type GeneratedDocument struct {
	ID        string       `json:"id"`
	JobID     string       `json:"job_id,omitempty"`
	ResumeID  string       `json:"resume_id,omitempty"`
	Type      DocumentType `json:"type"`
	Flow      string       `json:"flow"`
	Content   string       `json:"content"`
	CreatedAt time.Time    `json:"created_at"`
}

// InvokeRequest is the payload for invoking a flow over the API.
type InvokeRequest struct {
	Flow  string         `json:"flow"`
	Input map[string]any `json:"input"`
}

// Validate validates an InvokeRequest.
func (r *InvokeRequest) Validate() error {
	if r.Flow == "" {
		return ErrEmptyFlowName
	}
	if len(r.Flow) > MaxFlowNameLength {
		return errors.New("flow name exceeds maximum length")
	}
	if r.Input == nil {
		return ErrMissingInput
	}
	return nil
}

// JobRequest is the payload for creating a job posting.
type JobRequest struct {
	Title       string `json:"title"`
	Company     string `json:"company,omitempty"`
	Description string `json:"description"`
}

// Validate validates a JobRequest.
func (r *JobRequest) Validate() error {
	if r.Title == "" {
		return ErrEmptyJobTitle
	}
	if r.Description == "" {
		return ErrEmptyJobText
	}
	return nil
}

// ResumeRequest is the payload for creating a resume.
type ResumeRequest struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// Validate validates a ResumeRequest.
func (r *ResumeRequest) Validate() error {
	if r.Name == "" {
		return ErrEmptyResumeName
	}
	if r.Content == "" {
		return ErrEmptyResumeContent
	}
	return nil
}

// GenerateDocumentRequest is the payload for generating and persisting a
// document from a stored job and resume.
type GenerateDocumentRequest struct {
	JobID        string       `json:"job_id"`
	ResumeID     string       `json:"resume_id,omitempty"`
	DocumentType DocumentType `json:"document_type"`
}

// Validate validates a GenerateDocumentRequest.
func (r *GenerateDocumentRequest) Validate() error {
	if r.JobID == "" {
		return errors.New("job_id is required")
	}
	if !IsValidDocumentType(r.DocumentType) {
		return errors.New("invalid document type")
	}
	return nil
}
