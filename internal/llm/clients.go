package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/FACorreiaa/cohana-api/internal/types"
	"github.com/FACorreiaa/cohana-api/pkg/observability"
)

// DefaultModel is fast, multimodal and accepts inline audio and images.
const DefaultModel = "gemini-2.5-flash-lite"

const providerName = "gemini"

// ChatClient abstracts LLM chat capabilities needed by domain services.
type ChatClient interface {
	GenerateResponse(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	GenerateMultimodalResponse(ctx context.Context, parts []*genai.Part, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	Model() string
}

// GeminiChatClient adapts the genai client to the ChatClient interface.
type GeminiChatClient struct {
	client *genai.Client
	model  string
}

var _ ChatClient = (*GeminiChatClient)(nil)

// NewGeminiChatClient creates a ChatClient backed by the Gemini API.
// httpClient may be nil, in which case genai uses its own default.
func NewGeminiChatClient(ctx context.Context, apiKey, model string, httpClient *http.Client) (*GeminiChatClient, error) {
	if model == "" {
		model = DefaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiChatClient{client: client, model: model}, nil
}

func (g *GeminiChatClient) GenerateResponse(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	start := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	observability.ObserveUpstream(providerName, "generate_content", start, err)
	if err != nil {
		return nil, fmt.Errorf("gemini generate content: %w", err)
	}
	return resp, nil
}

func (g *GeminiChatClient) GenerateMultimodalResponse(ctx context.Context, parts []*genai.Part, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	start := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	observability.ObserveUpstream(providerName, "generate_content_multimodal", start, err)
	if err != nil {
		return nil, fmt.Errorf("gemini generate multimodal content: %w", err)
	}
	return resp, nil
}

func (g *GeminiChatClient) Model() string {
	if g == nil {
		return ""
	}
	return g.model
}

// ListModels returns the names of every model visible to the API key,
// without the "models/" prefix.
func (g *GeminiChatClient) ListModels(ctx context.Context) ([]string, error) {
	start := time.Now()
	var names []string
	for m, err := range g.client.Models.All(ctx) {
		if err != nil {
			observability.ObserveUpstream(providerName, "list_models", start, err)
			return nil, fmt.Errorf("list gemini models: %w", err)
		}
		names = append(names, strings.TrimPrefix(m.Name, "models/"))
	}
	observability.ObserveUpstream(providerName, "list_models", start, nil)
	return names, nil
}

// ResponseText joins the text parts of the first candidate, skipping thought
// summaries. An empty reply is an error.
func ResponseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		if resp != nil && resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("%w: prompt blocked: %s", types.ErrEmptyAIResponse, resp.PromptFeedback.BlockReason)
		}
		return "", types.ErrEmptyAIResponse
	}

	candidate := resp.Candidates[0]
	if candidate == nil || candidate.Content == nil {
		return "", types.ErrEmptyAIResponse
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		b.WriteString(part.Text)
	}
	if b.Len() == 0 {
		return "", types.ErrEmptyAIResponse
	}
	return b.String(), nil
}
