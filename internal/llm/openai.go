package llm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/shared"
)

const (
	defaultSystemPrompt = "You are a financial analyst assistant answering questions about a company's quarterly earnings calls.\n" +
		"Answer precisely, using only the provided context.\n" +
		"If the context does not contain the answer, say so."

	defaultAnswerTemplate = "Use the transcript excerpts below to answer.\n\nContext:\n{context}\n\n{question}"
)

// ErrEmptyCompletion is returned when the model server answers without choices.
var ErrEmptyCompletion = errors.New("no choices in response")

// Ping checks that both the chat model and the embedding model are served.
func (c *Client) Ping(ctx context.Context) error {
	for _, model := range []string{c.model, c.embedModel} {
		if _, err := c.client.Models.Get(ctx, model, option.WithMaxRetries(0)); err != nil {
			return fmt.Errorf("model %q is not available: %w", model, err)
		}
	}
	return nil
}

// GenerateAnswer generates an answer using the LLM with context
func (c *Client) GenerateAnswer(ctx context.Context, contextText, question string) (string, error) {
	systemPrompt := promptOrDefault("system_prompt.txt", defaultSystemPrompt)
	answerPromptTemplate := promptOrDefault("answer_prompt.txt", defaultAnswerTemplate)

	// Replace placeholders
	answerPrompt := strings.ReplaceAll(answerPromptTemplate, "{context}", contextText)
	answerPrompt = strings.ReplaceAll(answerPrompt, "{question}", question)

	res, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(answerPrompt),
		},
		Temperature: param.Opt[float64]{Value: c.temperature},
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate completion: %w", err)
	}

	if len(res.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	return strings.TrimSpace(res.Choices[0].Message.Content), nil
}

// GenerateEmbedding generates an embedding for the given text
func (c *Client) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	input := openai.EmbeddingNewParamsInputUnion{
		OfString: param.Opt[string]{Value: text},
	}
	res, err := c.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model: openai.EmbeddingModel(c.embedModel),
		Input: input,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if len(res.Data) == 0 {
		return nil, fmt.Errorf("no embedding data in response")
	}

	// Vector stores take float32
	embedding := make([]float32, len(res.Data[0].Embedding))
	for i, v := range res.Data[0].Embedding {
		embedding[i] = float32(v)
	}

	return embedding, nil
}

// promptOrDefault looks for an override under ./prompts and ../prompts.
func promptOrDefault(name, fallback string) string {
	for _, dir := range []string{"prompts", filepath.Join("..", "prompts")} {
		if p, err := loadPrompt(filepath.Join(dir, name)); err == nil && p != "" {
			return p
		}
	}
	return fallback
}

// loadPrompt loads a prompt from a file
func loadPrompt(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
