package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/FACorreiaa/cohana-api/internal/types"
)

func textResponse(parts ...*genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: parts}},
		},
	}
}

func TestResponseText(t *testing.T) {
	t.Run("joins text parts of first candidate", func(t *testing.T) {
		got, err := ResponseText(textResponse(genai.NewPartFromText("Hello, "), genai.NewPartFromText("traveller")))
		require.NoError(t, err)
		assert.Equal(t, "Hello, traveller", got)
	})

	t.Run("skips thought parts", func(t *testing.T) {
		thought := &genai.Part{Text: "thinking...", Thought: true}
		got, err := ResponseText(textResponse(thought, genai.NewPartFromText("answer")))
		require.NoError(t, err)
		assert.Equal(t, "answer", got)
	})

	t.Run("nil response", func(t *testing.T) {
		_, err := ResponseText(nil)
		require.ErrorIs(t, err, types.ErrEmptyAIResponse)
	})

	t.Run("no candidates", func(t *testing.T) {
		_, err := ResponseText(&genai.GenerateContentResponse{})
		require.ErrorIs(t, err, types.ErrEmptyAIResponse)
	})

	t.Run("blocked prompt", func(t *testing.T) {
		_, err := ResponseText(&genai.GenerateContentResponse{
			PromptFeedback: &genai.GenerateContentResponsePromptFeedback{BlockReason: genai.BlockedReasonSafety},
		})
		require.ErrorIs(t, err, types.ErrEmptyAIResponse)
		assert.Contains(t, err.Error(), "blocked")
	})

	t.Run("empty text", func(t *testing.T) {
		_, err := ResponseText(textResponse(genai.NewPartFromText("")))
		require.ErrorIs(t, err, types.ErrEmptyAIResponse)
	})
}

func TestGeminiChatClient_ModelOnNilReceiver(t *testing.T) {
	var c *GeminiChatClient
	assert.Equal(t, "", c.Model())
}
