package exemplar

import (
	"context"

	"ai-coderagent-be/internal/pkg/logger"
	"ai-coderagent-be/pkg/knowbase"
)

// DefaultMaxExemplars is how many sections the generator prompt embeds.
const DefaultMaxExemplars = 3

// Exemplar is a KB section surfaced as a reference pattern for generation.
type Exemplar struct {
	Index        int    `json:"index"`
	ArtifactName string `json:"artifact_name"`
	DocumentName string `json:"document_name"`
	SectionName  string `json:"section_name"`
	Description  string `json:"description"`
}

// Result is the shape the relevance-search collaborator answers with.
// ChosenSectionIndex is nil when the collaborator declined to choose.
type Result struct {
	ChosenSectionIndex *int `json:"chosen_section_index"`
}

// Searcher ranks sections against a requirement. The ranking algorithm is an
// external collaborator; this package only consumes its chosen index.
type Searcher interface {
	Search(ctx context.Context, requirement string, sections []knowbase.Section) (*Result, error)
}

// Finder picks one primary exemplar via the Searcher and pads it with its
// local neighborhood. The extra slots are probed at offsets -1, +1, -2, +2
// from the chosen index, in that fixed order; this is a locality heuristic,
// not a similarity ranking of the neighbors.
type Finder struct {
	searcher Searcher
	logger   logger.ILogger
}

func NewFinder(searcher Searcher, log logger.ILogger) *Finder {
	return &Finder{searcher: searcher, logger: log}
}

func (f *Finder) Find(ctx context.Context, requirement string, sections []knowbase.Section, maxExemplars int) []Exemplar {
	if len(sections) == 0 {
		return []Exemplar{}
	}
	if maxExemplars <= 0 {
		maxExemplars = DefaultMaxExemplars
	}

	result, err := f.searcher.Search(ctx, requirement, sections)
	if err != nil {
		f.logger.Warn("EXEMPLAR", "Relevance search failed, continuing without exemplars", map[string]interface{}{
			"error": err.Error(),
		})
		return []Exemplar{}
	}
	if result == nil || result.ChosenSectionIndex == nil {
		f.logger.Info("EXEMPLAR", "Relevance search did not return a valid chosen_section_index", nil)
		return []Exemplar{}
	}

	idx := *result.ChosenSectionIndex
	if idx < 0 || idx >= len(sections) {
		f.logger.Warn("EXEMPLAR", "Chosen section index out of range", map[string]interface{}{
			"index":    idx,
			"sections": len(sections),
		})
		return []Exemplar{}
	}

	exemplars := []Exemplar{buildExemplar(sections, idx)}

	for _, offset := range []int{-1, 1, -2, 2} {
		if len(exemplars) >= maxExemplars {
			break
		}
		neighbor := idx + offset
		if neighbor >= 0 && neighbor < len(sections) {
			exemplars = append(exemplars, buildExemplar(sections, neighbor))
		}
	}

	return exemplars
}

func buildExemplar(sections []knowbase.Section, idx int) Exemplar {
	entry := sections[idx]
	return Exemplar{
		Index:        idx,
		ArtifactName: entry.ArtifactName,
		DocumentName: entry.DocumentName,
		SectionName:  entry.SectionName,
		Description:  entry.Description,
	}
}
