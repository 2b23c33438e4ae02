package dto

import (
	"testing"

	"ai-coderagent-be/internal/pkg/serverutils"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCodeRequestRequiresProjectType(t *testing.T) {
	req := GenerateCodeRequest{
		Requirements: "add login",
	}

	err := serverutils.ValidateRequest(req)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ProjectType")

	req.ProjectType = "python"
	assert.NoError(t, serverutils.ValidateRequest(req))
}

func TestGenerateCodeLocalRequestRequiresProjectType(t *testing.T) {
	req := GenerateCodeLocalRequest{
		ProjectName:  "demo",
		Requirements: "add login",
	}

	err := serverutils.ValidateRequest(req)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ProjectType")

	req.ProjectType = "python"
	assert.NoError(t, serverutils.ValidateRequest(req))
}

func TestGenerateCodeRequestSessionIdOptional(t *testing.T) {
	req := GenerateCodeRequest{
		Requirements: "add login",
		ProjectType:  "python",
	}

	assert.NoError(t, serverutils.ValidateRequest(req))
}
