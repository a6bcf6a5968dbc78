package dto

import "github.com/fadilmartias/resume-screener/internal/model"

type AssessmentRequest struct {
	Prompt   string   `json:"prompt"`
	PdfPaths []string `json:"pdfPaths"`
	IsQA     bool     `json:"isQA"`
	// Optional structured job fields; they win over what is parsed out of Prompt.
	JobTitle       string `json:"jobTitle,omitempty"`
	JobDescription string `json:"jobDescription,omitempty"`
	// ProjectID, when set in batch mode, stores the results as the project's batch.
	ProjectID string `json:"projectId,omitempty"`
}

type AssessmentResponse struct {
	Results []model.AssessmentResult `json:"results"`
}

type AnswerResponse struct {
	Answer string `json:"answer"`
}

type QuestionRequest struct {
	Question string              `json:"question"`
	History  []model.ChatMessage `json:"history,omitempty"`
}

type ConversationResponse struct {
	Answer   string              `json:"answer"`
	Messages []model.ChatMessage `json:"messages"`
}
