package coder

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmptyCodeShortCircuits(t *testing.T) {
	provider := &fakeProvider{}
	validator := NewValidator(provider, nopLogger{})

	for _, code := range []string{"", "   ", "\n\t"} {
		isValid, result := validator.Validate(context.Background(), code, "python", "req")

		assert.False(t, isValid)
		assert.False(t, result.IsValid)
		assert.Equal(t, []string{"Code generation returned empty output"}, result.Errors)
		assert.Equal(t, 0.0, result.CompletenessScore)
		assert.Equal(t, []string{"Retry generation with simplified requirements"}, result.Suggestions)
	}
	// No model call was made.
	assert.Empty(t, provider.prompts)
}

func TestValidateProviderErrorIsOptimistic(t *testing.T) {
	provider := &fakeProvider{errs: []error{errors.New("timeout")}}
	validator := NewValidator(provider, nopLogger{})

	isValid, result := validator.Validate(context.Background(), "print('hi')", "python", "req")

	assert.True(t, isValid)
	assert.True(t, result.IsValid)
	assert.Equal(t, 0.7, result.CompletenessScore)
	assert.Equal(t, []string{"Validation step failed; treat code as unvalidated."}, result.Warnings)
	assert.Empty(t, result.Errors)
}

func TestValidateUnparseableResponseIsOptimistic(t *testing.T) {
	provider := &fakeProvider{responses: []string{"looks good to me!"}}
	validator := NewValidator(provider, nopLogger{})

	isValid, result := validator.Validate(context.Background(), "print('hi')", "python", "req")

	assert.True(t, isValid)
	assert.Equal(t, 0.7, result.CompletenessScore)
	assert.Equal(t, []string{"Validation response was not parseable; treat as best-effort."}, result.Warnings)
}

func TestValidateParsesFullVerdict(t *testing.T) {
	provider := &fakeProvider{responses: []string{
		`{"is_valid": false, "errors": ["missing import"], "warnings": ["long function"], "completeness_score": 0.4, "suggestions": ["split the function"]}`,
	}}
	validator := NewValidator(provider, nopLogger{})

	isValid, result := validator.Validate(context.Background(), "code", "python", "req")

	assert.False(t, isValid)
	assert.Equal(t, []string{"missing import"}, result.Errors)
	assert.Equal(t, []string{"long function"}, result.Warnings)
	assert.Equal(t, 0.4, result.CompletenessScore)
	assert.Equal(t, []string{"split the function"}, result.Suggestions)
}

func TestValidateAbsentIsValidDefaultsTrue(t *testing.T) {
	provider := &fakeProvider{responses: []string{`{"warnings": ["minor style"]}`}}
	validator := NewValidator(provider, nopLogger{})

	isValid, result := validator.Validate(context.Background(), "code", "python", "req")

	assert.True(t, isValid)
	assert.Equal(t, []string{"minor style"}, result.Warnings)
	assert.NotNil(t, result.Errors)
	assert.NotNil(t, result.Suggestions)
}
