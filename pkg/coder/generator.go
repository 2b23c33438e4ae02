package coder

import (
	"context"
	"fmt"

	"ai-coderagent-be/internal/pkg/logger"
	"ai-coderagent-be/pkg/coder/exemplar"
	"ai-coderagent-be/pkg/coder/prompt"
	"ai-coderagent-be/pkg/llm"
)

// Generator produces the raw code completion. Unlike planning and validation
// there is no safe default to substitute here, so call failures propagate.
type Generator struct {
	provider llm.LLMProvider
	logger   logger.ILogger
}

func NewGenerator(provider llm.LLMProvider, log logger.ILogger) *Generator {
	return &Generator{provider: provider, logger: log}
}

// Generate builds the exemplar-enriched prompt and returns the model output
// verbatim: no post-processing, no code-fence stripping.
func (g *Generator) Generate(
	ctx context.Context,
	requirement string,
	projectType string,
	exemplars []exemplar.Exemplar,
	tribalKB map[string]interface{},
	conversationHistory string,
) (string, error) {
	p := prompt.NewGenerationBuilder(requirement, projectType, exemplars, tribalKB, conversationHistory).Build()

	code, err := g.provider.Generate(ctx, p)
	if err != nil {
		g.logger.Error("GENERATOR", "Code generation LLM call failed", map[string]interface{}{
			"error":        err.Error(),
			"project_type": projectType,
		})
		return "", fmt.Errorf("code generation failed: %w", err)
	}

	return code, nil
}
