package deepsearch

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"ai-coderagent-be/pkg/coder/exemplar"
	"ai-coderagent-be/pkg/knowbase"
	"ai-coderagent-be/pkg/llm"
)

// maxSectionPreview keeps the candidate list inside the model's context.
const maxSectionPreview = 240

// LLMSearcher asks the model to pick the single KB section most relevant to a
// requirement. It fills the relevance-search collaborator slot; swapping in a
// different ranking backend only means implementing exemplar.Searcher.
type LLMSearcher struct {
	provider llm.LLMProvider
}

var _ exemplar.Searcher = &LLMSearcher{}

func NewLLMSearcher(provider llm.LLMProvider) *LLMSearcher {
	return &LLMSearcher{provider: provider}
}

func (s *LLMSearcher) Search(ctx context.Context, requirement string, sections []knowbase.Section) (*exemplar.Result, error) {
	if len(sections) == 0 {
		return &exemplar.Result{}, nil
	}

	prompt := s.composePrompt(requirement, sections)

	response, err := s.provider.Generate(ctx, prompt, llm.WithTemperature(0.1))
	if err != nil {
		return nil, fmt.Errorf("deep search llm call failed: %w", err)
	}

	var result exemplar.Result
	if err := json.Unmarshal([]byte(extractJSON(response)), &result); err != nil {
		return nil, fmt.Errorf("deep search returned unparseable result: %w", err)
	}

	return &result, nil
}

func (s *LLMSearcher) composePrompt(requirement string, sections []knowbase.Section) string {
	var prompt strings.Builder

	prompt.WriteString("You are a relevance ranker for a code-generation assistant.\n")
	prompt.WriteString("Given a user requirement and a numbered list of knowledge-base sections,\n")
	prompt.WriteString("pick the ONE section whose content is the best reference for implementing the requirement.\n\n")

	prompt.WriteString("REQUIREMENT:\n")
	prompt.WriteString(requirement)
	prompt.WriteString("\n\nSECTIONS:\n")

	for i, section := range sections {
		preview := section.Description
		if len(preview) > maxSectionPreview {
			preview = preview[:maxSectionPreview]
		}
		prompt.WriteString(fmt.Sprintf("[%d] %s (artifact=%s, doc=%s): %s\n",
			i, section.SectionName, section.ArtifactName, section.DocumentName, preview))
	}

	prompt.WriteString("\nRespond with ONLY this JSON shape:\n")
	prompt.WriteString("{\"chosen_section_index\": <number>}\n")

	return prompt.String()
}

// extractJSON isolates the JSON object from a chatty model response.
func extractJSON(response string) string {
	startIdx := strings.Index(response, "{")
	endIdx := strings.LastIndex(response, "}")

	if startIdx == -1 || endIdx == -1 || endIdx <= startIdx {
		return response
	}

	return response[startIdx : endIdx+1]
}
