package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"ai-coderagent-be/pkg/coder/exemplar"
)

const (
	// Hard character budgets across the rendered blocks. The cut is a plain
	// character truncation, not exemplar-boundary aware.
	maxExemplarChars = 6000
	maxTribalChars   = 4000

	noExemplarsText = "No exemplars available from the project knowledge base."
	noTribalText    = "No specific tribal knowledge available. Follow general best practices."
)

// GenerationBuilder assembles the single large code-generation prompt.
type GenerationBuilder struct {
	requirement string
	projectType string
	exemplars   []exemplar.Exemplar
	tribalKB    map[string]interface{}
	history     string
}

func NewGenerationBuilder(
	requirement string,
	projectType string,
	exemplars []exemplar.Exemplar,
	tribalKB map[string]interface{},
	history string,
) *GenerationBuilder {
	return &GenerationBuilder{
		requirement: requirement,
		projectType: projectType,
		exemplars:   exemplars,
		tribalKB:    tribalKB,
		history:     history,
	}
}

func (b *GenerationBuilder) Build() string {
	var prompt strings.Builder

	b.writePreamble(&prompt)
	b.writeRequirement(&prompt)
	b.writeExemplars(&prompt)
	b.writeTribalKnowledge(&prompt)
	b.writeHistory(&prompt)
	b.writeInstructions(&prompt)

	return prompt.String()
}

func (b *GenerationBuilder) writePreamble(prompt *strings.Builder) {
	prompt.WriteString("You are an expert software engineer and code generator.\n")
	prompt.WriteString("Generate production-quality code that strictly follows the user requirements,\n")
	prompt.WriteString("reuses patterns from the exemplars where appropriate, and respects the project-type-specific tribal knowledge.\n\n")
	prompt.WriteString(fmt.Sprintf("PROJECT_TYPE: %s\n\n", b.projectType))
}

func (b *GenerationBuilder) writeRequirement(prompt *strings.Builder) {
	prompt.WriteString("USER REQUIREMENTS:\n")
	prompt.WriteString(b.requirement)
	prompt.WriteString("\n\n")
}

func (b *GenerationBuilder) writeExemplars(prompt *strings.Builder) {
	prompt.WriteString("PROJECT EXEMPLARS (from the existing knowledge base):\n")
	prompt.WriteString(FormatExemplars(b.exemplars, maxExemplarChars))
	prompt.WriteString("\n\n")
}

func (b *GenerationBuilder) writeTribalKnowledge(prompt *strings.Builder) {
	prompt.WriteString(fmt.Sprintf("TRIBAL KNOWLEDGE FOR %s:\n", strings.ToUpper(b.projectType)))
	prompt.WriteString(SummarizeTribalKB(b.tribalKB, maxTribalChars))
}

func (b *GenerationBuilder) writeHistory(prompt *strings.Builder) {
	if b.history == "" {
		return
	}
	prompt.WriteString("\n\nRECENT CONVERSATION HISTORY (for additional context, do not echo back):\n")
	prompt.WriteString(b.history)
}

func (b *GenerationBuilder) writeInstructions(prompt *strings.Builder) {
	prompt.WriteString("\n\nInstructions:\n")
	prompt.WriteString("- Return ONLY code and minimal inline comments, no prose explanation.\n")
	prompt.WriteString("- Prefer clear function and module boundaries.\n")
	prompt.WriteString("- Follow clean-code best practices for this project_type.\n")
}

// FormatExemplars renders each exemplar as a header line plus its description
// and truncates the whole block to maxChars.
func FormatExemplars(exemplars []exemplar.Exemplar, maxChars int) string {
	if len(exemplars) == 0 {
		return noExemplarsText
	}

	var lines []string
	for _, ex := range exemplars {
		lines = append(lines, fmt.Sprintf("# Exemplar: %s (artifact=%s, doc=%s)",
			ex.SectionName, ex.ArtifactName, ex.DocumentName))
		lines = append(lines, ex.Description)
		lines = append(lines, "")
	}

	return truncate(strings.Join(lines, "\n"), maxChars)
}

// SummarizeTribalKB serializes the tribal knowledge mapping, truncated to
// maxChars. Empty knowledge yields a fixed generic-best-practices sentence.
func SummarizeTribalKB(tribalKB map[string]interface{}, maxChars int) string {
	if len(tribalKB) == 0 {
		return noTribalText
	}

	data, err := json.MarshalIndent(tribalKB, "", "  ")
	if err != nil {
		return truncate(fmt.Sprintf("%v", tribalKB), maxChars)
	}

	return truncate(string(data), maxChars)
}

func truncate(s string, maxChars int) string {
	if len(s) <= maxChars {
		return s
	}
	return s[:maxChars]
}
