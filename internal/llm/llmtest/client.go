// Package llmtest provides a function-field ChatClient for tests.
package llmtest

import (
	"context"
	"errors"

	"google.golang.org/genai"

	"github.com/FACorreiaa/cohana-api/internal/llm"
)

var _ llm.ChatClient = (*TestLLMClient)(nil)

// TestLLMClient implements llm.ChatClient by delegating to its fields.
// A nil field returns an error so unexpected calls fail loudly.
type TestLLMClient struct {
	GenerateResponseFn           func(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	GenerateMultimodalResponseFn func(ctx context.Context, parts []*genai.Part, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	ModelName                    string
}

func (t *TestLLMClient) GenerateResponse(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	if t.GenerateResponseFn != nil {
		return t.GenerateResponseFn(ctx, prompt, config)
	}
	return nil, errors.New("GenerateResponse not implemented")
}

func (t *TestLLMClient) GenerateMultimodalResponse(ctx context.Context, parts []*genai.Part, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	if t.GenerateMultimodalResponseFn != nil {
		return t.GenerateMultimodalResponseFn(ctx, parts, config)
	}
	return nil, errors.New("GenerateMultimodalResponse not implemented")
}

func (t *TestLLMClient) Model() string {
	if t.ModelName == "" {
		return "test-model"
	}
	return t.ModelName
}

// TextResponse builds a single-candidate response whose only part is text.
func TextResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: genai.NewContentFromText(text, genai.RoleModel),
		}},
	}
}
