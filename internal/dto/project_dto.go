package dto

import "github.com/fadilmartias/resume-screener/internal/model"

type CreateProjectRequest struct {
	Name        string          `json:"name"`
	JobTitle    string          `json:"jobTitle"`
	Description string          `json:"description"`
	Criteria    *model.Criteria `json:"criteria,omitempty"`
}

type UpdateProjectStatusRequest struct {
	Status string `json:"status"`
}
