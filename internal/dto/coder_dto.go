package dto

import (
	"ai-coderagent-be/pkg/coder"
	"ai-coderagent-be/pkg/coder/exemplar"
)

// GenerateCodeQuery carries the identifiers of the database-backed variant.
type GenerateCodeQuery struct {
	ProjectId string `query:"project_id" validate:"required,uuid"`
	UserId    string `query:"user_id" validate:"required,uuid"`
}

// GenerateCodeRequest is the shared form payload of both variants.
type GenerateCodeRequest struct {
	Requirements string `form:"requirements" validate:"required"`
	ProjectType  string `form:"project_type" validate:"required"`
	SessionId    string `form:"session_id"`
}

// GenerateCodeLocalRequest is the standalone variant payload, addressed by
// project name instead of database id.
type GenerateCodeLocalRequest struct {
	ProjectName  string `form:"project_name" validate:"required"`
	Requirements string `form:"requirements" validate:"required"`
	ProjectType  string `form:"project_type" validate:"required"`
	SessionId    string `form:"session_id"`
}

type GenerateCodeResponse struct {
	Success       bool                    `json:"success"`
	Message       string                  `json:"message"`
	ProjectId     string                  `json:"project_id,omitempty"`
	ProjectName   string                  `json:"project_name,omitempty"`
	ExecutionId   string                  `json:"execution_id,omitempty"`
	SessionId     string                  `json:"session_id"`
	Plan          *coder.Plan             `json:"plan,omitempty"`
	ExemplarsUsed []exemplar.Exemplar     `json:"exemplars_used"`
	Code          string                  `json:"code"`
	Validation    *coder.ValidationResult `json:"validation,omitempty"`
}
