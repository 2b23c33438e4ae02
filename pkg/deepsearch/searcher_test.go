package deepsearch

import (
	"context"
	"errors"
	"testing"

	"ai-coderagent-be/pkg/knowbase"
	"ai-coderagent-be/pkg/llm"

	"github.com/stretchr/testify/assert"
)

type fakeProvider struct {
	response string
	err      error
	prompt   string
}

func (f *fakeProvider) Chat(_ context.Context, _ []llm.Message, _ ...llm.Option) (string, error) {
	return "", errors.New("not used")
}

func (f *fakeProvider) Generate(_ context.Context, prompt string, _ ...llm.Option) (string, error) {
	f.prompt = prompt
	return f.response, f.err
}

func sections(n int) []knowbase.Section {
	out := make([]knowbase.Section, n)
	for i := range out {
		out[i] = knowbase.Section{SectionName: "s", ArtifactName: "Code", DocumentName: "d", Description: "desc"}
	}
	return out
}

func TestSearchParsesChosenIndexFromChattyResponse(t *testing.T) {
	provider := &fakeProvider{response: "The best match is:\n{\"chosen_section_index\": 2}\nbecause it fits."}
	searcher := NewLLMSearcher(provider)

	result, err := searcher.Search(context.Background(), "req", sections(4))

	assert.NoError(t, err)
	assert.NotNil(t, result.ChosenSectionIndex)
	assert.Equal(t, 2, *result.ChosenSectionIndex)
}

func TestSearchNullIndexStaysNil(t *testing.T) {
	provider := &fakeProvider{response: `{"chosen_section_index": null}`}
	searcher := NewLLMSearcher(provider)

	result, err := searcher.Search(context.Background(), "req", sections(4))

	assert.NoError(t, err)
	assert.Nil(t, result.ChosenSectionIndex)
}

func TestSearchEmptyPoolSkipsModelCall(t *testing.T) {
	provider := &fakeProvider{err: errors.New("should not be called")}
	searcher := NewLLMSearcher(provider)

	result, err := searcher.Search(context.Background(), "req", nil)

	assert.NoError(t, err)
	assert.Nil(t, result.ChosenSectionIndex)
	assert.Empty(t, provider.prompt)
}

func TestSearchProviderErrorPropagates(t *testing.T) {
	provider := &fakeProvider{err: errors.New("model down")}
	searcher := NewLLMSearcher(provider)

	_, err := searcher.Search(context.Background(), "req", sections(2))

	assert.Error(t, err)
}

func TestSearchUnparseableResponseIsError(t *testing.T) {
	provider := &fakeProvider{response: "section two looks good"}
	searcher := NewLLMSearcher(provider)

	_, err := searcher.Search(context.Background(), "req", sections(2))

	assert.Error(t, err)
}

func TestSearchPromptNumbersSections(t *testing.T) {
	provider := &fakeProvider{response: `{"chosen_section_index": 0}`}
	searcher := NewLLMSearcher(provider)

	_, err := searcher.Search(context.Background(), "add login", sections(2))

	assert.NoError(t, err)
	assert.Contains(t, provider.prompt, "[0] ")
	assert.Contains(t, provider.prompt, "[1] ")
	assert.Contains(t, provider.prompt, "add login")
}
