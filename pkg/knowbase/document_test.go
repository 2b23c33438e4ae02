package knowbase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseProjectRejectsNonObject(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "array", data: `[1, 2]`},
		{name: "string", data: `"hello"`},
		{name: "invalid json", data: `{broken`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseProject("demo", []byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestParseProjectKeepsRawDocument(t *testing.T) {
	project, err := ParseProject("demo", []byte(`{"artifacts": []}`))

	assert.NoError(t, err)
	assert.Equal(t, "demo", project.Name)
	assert.Contains(t, project.Raw, "artifacts")
}

func TestFlattenSectionsNestedLayout(t *testing.T) {
	raw := map[string]interface{}{
		"artifacts": []interface{}{
			map[string]interface{}{
				"artifact_name": "Code",
				"documents": []interface{}{
					map[string]interface{}{
						"document_name": "api",
						"sections": []interface{}{
							map[string]interface{}{"section_name": "handlers", "description": "http"},
							map[string]interface{}{"section_name": "models", "description": "orm"},
						},
					},
				},
			},
			map[string]interface{}{
				"artifact_name": "Design",
				"documents": []interface{}{
					map[string]interface{}{
						"document_name": "arch",
						"sections": []interface{}{
							map[string]interface{}{"section_name": "overview", "description": "c4"},
						},
					},
				},
			},
		},
	}

	sections := FlattenSections(raw)

	assert.Len(t, sections, 3)
	assert.Equal(t, Section{ArtifactName: "Code", DocumentName: "api", SectionName: "handlers", Description: "http"}, sections[0])
	assert.Equal(t, "Design", sections[2].ArtifactName)
}

func TestFlattenSectionsPreFlattenedLayout(t *testing.T) {
	raw := map[string]interface{}{
		"sections": []interface{}{
			map[string]interface{}{"artifact_name": "Code", "section_name": "a"},
			map[string]interface{}{"artifact_name": "Code", "section_name": "b"},
		},
	}

	sections := FlattenSections(raw)

	assert.Len(t, sections, 2)
	assert.Equal(t, "b", sections[1].SectionName)
}

func TestFlattenSectionsSkipsMalformedEntries(t *testing.T) {
	raw := map[string]interface{}{
		"artifacts": []interface{}{
			"not an object",
			map[string]interface{}{"artifact_name": "Code"}, // no documents
			map[string]interface{}{
				"artifact_name": "Code",
				"documents": []interface{}{
					map[string]interface{}{
						"document_name": "api",
						"sections": []interface{}{
							42, // not an object
							map[string]interface{}{"section_name": "kept"},
						},
					},
				},
			},
		},
	}

	sections := FlattenSections(raw)

	assert.Len(t, sections, 1)
	assert.Equal(t, "kept", sections[0].SectionName)
}

func TestFlattenSectionsEmptyInputs(t *testing.T) {
	assert.Nil(t, FlattenSections(nil))
	assert.Empty(t, FlattenSections(map[string]interface{}{}))
	assert.Empty(t, FlattenSections(map[string]interface{}{"artifacts": "oops"}))
}
