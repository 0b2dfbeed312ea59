package llm

import (
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Options configures the model server connection.
type Options struct {
	BaseURL     string
	APIKey      string
	Model       string
	EmbedModel  string
	Timeout     time.Duration
	Temperature float64
}

// Client wraps an OpenAI-compatible client (a local Ollama server by default)
// and provides RAG-specific methods
type Client struct {
	client      *openai.Client
	model       string
	embedModel  string
	temperature float64
}

// NewClient creates a new LLM client
func NewClient(opts Options) *Client {
	reqOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithMaxRetries(1),
	}
	if opts.BaseURL != "" {
		base := opts.BaseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		reqOpts = append(reqOpts, option.WithBaseURL(base))
	}
	if opts.Timeout > 0 {
		reqOpts = append(reqOpts, option.WithRequestTimeout(opts.Timeout))
	}

	client := openai.NewClient(reqOpts...)
	return &Client{
		client:      &client,
		model:       opts.Model,
		embedModel:  opts.EmbedModel,
		temperature: opts.Temperature,
	}
}
