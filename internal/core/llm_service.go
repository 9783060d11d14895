package core

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	defaultChatModelName      = "gemini-1.5-flash-latest"
	defaultEmbeddingModelName = "text-embedding-004"
)

// Prompt message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// PromptMessage is one role-tagged entry in an assembled prompt.
type PromptMessage struct {
	Role    string
	Content string
}

// Embedder converts text into a fixed-dimension vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Generator produces a reply for an assembled prompt. Leading system-role
// messages are treated as instructions, the rest as conversation turns.
type Generator interface {
	Generate(ctx context.Context, messages []PromptMessage, temperature float32, maxTokens int) (string, error)
}

// LLMService wraps the Gemini client behind the Embedder and Generator
// interfaces consumed by the rest of the core.
type LLMService struct {
	client *genai.Client
}

func NewLLMService(ctx context.Context, apiKey string) (*LLMService, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &LLMService{client: client}, nil
}

func (s *LLMService) Close() {
	if s.client != nil {
		if err := s.client.Close(); err != nil {
			log.Printf("Error closing GenAI client: %v", err)
		}
	}
}

// Embed returns the embedding vector for the given text.
func (s *LLMService) Embed(ctx context.Context, text string) ([]float32, error) {
	em := s.client.EmbeddingModel(defaultEmbeddingModelName)
	res, err := em.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, &EmbeddingError{Err: err}
	}
	if res.Embedding == nil || len(res.Embedding.Values) == 0 {
		return nil, &EmbeddingError{Err: fmt.Errorf("no embedding data received from gemini")}
	}
	return res.Embedding.Values, nil
}

// Generate sends the assembled prompt to the chat model. Leading
// system-role messages are folded into the model's system instruction;
// the remaining turns become chat history with the final user message as
// the outgoing request.
func (s *LLMService) Generate(ctx context.Context, messages []PromptMessage, temperature float32, maxTokens int) (string, error) {
	system, turns := splitSystemMessages(messages)

	if len(turns) == 0 {
		return "", &GenerationError{Err: fmt.Errorf("prompt contains no conversation turns")}
	}
	last := turns[len(turns)-1]
	if last.Role != RoleUser {
		return "", &GenerationError{Err: fmt.Errorf("last prompt message must be from user, got %q", last.Role)}
	}

	model := s.client.GenerativeModel(defaultChatModelName)
	if system != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(system)},
		}
	}
	maxOut := int32(maxTokens)
	model.GenerationConfig = genai.GenerationConfig{
		Temperature:     &temperature,
		MaxOutputTokens: &maxOut,
	}

	chatSession := model.StartChat()
	for _, turn := range turns[:len(turns)-1] {
		chatSession.History = append(chatSession.History, &genai.Content{
			Role:  geminiRole(turn.Role),
			Parts: []genai.Part{genai.Text(turn.Content)},
		})
	}

	resp, err := chatSession.SendMessage(ctx, genai.Text(last.Content))
	if err != nil {
		return "", &GenerationError{Err: err}
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil ||
		len(resp.Candidates[0].Content.Parts) == 0 {
		return "", &GenerationError{Err: fmt.Errorf("gemini returned no candidates")}
	}

	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			responseText.WriteString(string(txt))
		} else {
			log.Printf("Gemini response part was not text: %T", part)
		}
	}
	if responseText.Len() == 0 {
		return "", &GenerationError{Err: fmt.Errorf("gemini returned an empty text response")}
	}
	return responseText.String(), nil
}

// splitSystemMessages separates the leading system block from the
// conversation turns. System messages are joined with blank lines.
func splitSystemMessages(messages []PromptMessage) (string, []PromptMessage) {
	var system []string
	var turns []PromptMessage
	leading := true
	for _, msg := range messages {
		if leading && msg.Role == RoleSystem {
			system = append(system, msg.Content)
			continue
		}
		leading = false
		turns = append(turns, msg)
	}
	return strings.Join(system, "\n\n"), turns
}

func geminiRole(role string) string {
	if role == RoleAssistant {
		return "model"
	}
	return "user"
}
