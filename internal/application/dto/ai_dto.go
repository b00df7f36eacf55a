package dto

import "github.com/iknmuh/mypos/internal/domain"

// AskAIRequest is the POST /api/tanya-ai body.
type AskAIRequest struct {
	Pertanyaan string `json:"pertanyaan"`
}

// Validate checks shape and keeps prompts within a sane bound.
func (r *AskAIRequest) Validate() error {
	if r.Pertanyaan == "" {
		return domain.NewValidationError("pertanyaan wajib diisi")
	}
	if len(r.Pertanyaan) > 2000 {
		return domain.NewValidationError("pertanyaan maksimal 2000 karakter")
	}
	return nil
}

// AskAIResponse is the assistant's answer.
type AskAIResponse struct {
	Jawaban string `json:"jawaban"`
}
