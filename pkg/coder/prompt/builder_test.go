package prompt

import (
	"strings"
	"testing"

	"ai-coderagent-be/pkg/coder/exemplar"

	"github.com/stretchr/testify/assert"
)

func TestBuildContainsAllBlocks(t *testing.T) {
	exemplars := []exemplar.Exemplar{
		{Index: 0, ArtifactName: "Code", DocumentName: "api", SectionName: "handlers", Description: "HTTP handlers"},
	}
	tribalKB := map[string]interface{}{"style": "pep8"}

	got := NewGenerationBuilder("build auth", "python", exemplars, tribalKB, "User: hello").Build()

	assert.Contains(t, got, "PROJECT_TYPE: python")
	assert.Contains(t, got, "USER REQUIREMENTS:\nbuild auth")
	assert.Contains(t, got, "# Exemplar: handlers (artifact=Code, doc=api)")
	assert.Contains(t, got, "TRIBAL KNOWLEDGE FOR PYTHON:")
	assert.Contains(t, got, `"style": "pep8"`)
	assert.Contains(t, got, "RECENT CONVERSATION HISTORY")
	assert.Contains(t, got, "User: hello")
	assert.Contains(t, got, "Return ONLY code")
}

func TestBuildOmitsHistoryBlockWhenEmpty(t *testing.T) {
	got := NewGenerationBuilder("build auth", "python", nil, nil, "").Build()

	assert.NotContains(t, got, "RECENT CONVERSATION HISTORY")
}

func TestFormatExemplarsEmpty(t *testing.T) {
	assert.Equal(t,
		"No exemplars available from the project knowledge base.",
		FormatExemplars(nil, 6000))
}

func TestFormatExemplarsTruncatesHard(t *testing.T) {
	exemplars := []exemplar.Exemplar{
		{SectionName: "big", Description: strings.Repeat("x", 10000)},
	}

	got := FormatExemplars(exemplars, 6000)

	assert.Len(t, got, 6000)
}

func TestSummarizeTribalKBEmpty(t *testing.T) {
	assert.Equal(t,
		"No specific tribal knowledge available. Follow general best practices.",
		SummarizeTribalKB(nil, 4000))
	assert.Equal(t,
		"No specific tribal knowledge available. Follow general best practices.",
		SummarizeTribalKB(map[string]interface{}{}, 4000))
}

func TestSummarizeTribalKBTruncatesHard(t *testing.T) {
	kb := map[string]interface{}{"notes": strings.Repeat("y", 10000)}

	got := SummarizeTribalKB(kb, 4000)

	assert.Len(t, got, 4000)
}
