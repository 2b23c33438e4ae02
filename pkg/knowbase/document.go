package knowbase

import (
	"encoding/json"
	"fmt"
)

// Section is one flattened knowledge-base section. The KB document itself is
// produced by an external indexer; only these four attributes are contractual.
type Section struct {
	ArtifactName string `json:"artifact_name"`
	DocumentName string `json:"document_name"`
	SectionName  string `json:"section_name"`
	Description  string `json:"description"`
}

// Project wraps a decoded knowledge-base document.
type Project struct {
	Name string
	Raw  map[string]interface{}
}

// ParseProject decodes a raw KB payload. The payload must be a JSON object;
// anything else is a hard error because downstream stages walk its structure.
func ParseProject(name string, data []byte) (*Project, error) {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode KB document for %q: %w", name, err)
	}
	obj, ok := raw.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("KB document for %q is not a JSON object", name)
	}
	return &Project{Name: name, Raw: obj}, nil
}

// FlattenSections walks the KB document in document order and returns every
// section it contains. Two shapes are accepted: the nested
// artifacts→documents→sections layout the indexer emits, and a pre-flattened
// top-level "sections" list. Unknown or malformed entries are skipped.
func FlattenSections(raw map[string]interface{}) []Section {
	if raw == nil {
		return nil
	}

	if flat, ok := raw["sections"].([]interface{}); ok {
		return flattenFlatList(flat)
	}

	artifacts, ok := raw["artifacts"].([]interface{})
	if !ok {
		return nil
	}

	var sections []Section
	for _, a := range artifacts {
		artifact, ok := a.(map[string]interface{})
		if !ok {
			continue
		}
		artifactName := stringField(artifact, "artifact_name")

		documents, ok := artifact["documents"].([]interface{})
		if !ok {
			continue
		}
		for _, d := range documents {
			document, ok := d.(map[string]interface{})
			if !ok {
				continue
			}
			documentName := stringField(document, "document_name")

			secs, ok := document["sections"].([]interface{})
			if !ok {
				continue
			}
			for _, s := range secs {
				section, ok := s.(map[string]interface{})
				if !ok {
					continue
				}
				sections = append(sections, Section{
					ArtifactName: artifactName,
					DocumentName: documentName,
					SectionName:  stringField(section, "section_name"),
					Description:  stringField(section, "description"),
				})
			}
		}
	}
	return sections
}

func flattenFlatList(flat []interface{}) []Section {
	var sections []Section
	for _, s := range flat {
		entry, ok := s.(map[string]interface{})
		if !ok {
			continue
		}
		sections = append(sections, Section{
			ArtifactName: stringField(entry, "artifact_name"),
			DocumentName: stringField(entry, "document_name"),
			SectionName:  stringField(entry, "section_name"),
			Description:  stringField(entry, "description"),
		})
	}
	return sections
}

func stringField(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}
