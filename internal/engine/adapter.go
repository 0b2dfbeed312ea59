package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=adapter.go -destination=mock_adapter.go -package=engine

// LLMClient is the model server as seen by the adapter
type LLMClient interface {
	Ping(ctx context.Context) error
	GenerateAnswer(ctx context.Context, contextText, question string) (string, error)
}

// Retriever returns formatted transcript context for a query
type Retriever interface {
	Retrieve(ctx context.Context, query string) (string, error)
	Close() error
}

// IndexOpener loads the persisted index
type IndexOpener interface {
	Open(ctx context.Context) (Retriever, error)
}

var (
	// ErrEngineDisabled is returned by Configure when the engine is switched off.
	ErrEngineDisabled = errors.New("answer engine disabled")
	// ErrModelUnavailable is returned by Configure when the model server cannot serve the models.
	ErrModelUnavailable = errors.New("model unavailable")
	// ErrQueryFailed wraps any failure of a live query.
	ErrQueryFailed = errors.New("query failed")
)

const promptTemplate = `Based on Bajaj Finance's earnings call transcripts (Q1-Q4 FY25), please answer the following question:

%s

Please provide specific data points, financial metrics, and management commentary where relevant.
If the information is not available in the transcripts, please state that clearly.`

// EnhancePrompt wraps a user question in the fixed earnings prompt
func EnhancePrompt(question string) string {
	return fmt.Sprintf(promptTemplate, question)
}

// Status is the kind of outcome of an engine attempt
type Status int

const (
	// StatusOK means the engine answered.
	StatusOK Status = iota
	// StatusUnavailable means the engine could not be configured or loaded.
	StatusUnavailable
	// StatusFailed means the engine loaded but the query failed.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusUnavailable:
		return "unavailable"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Outcome is the result of one engine attempt. Answer is set only for StatusOK.
type Outcome struct {
	Status Status
	Answer string
	Err    error
}

// Adapter runs one question through the model server and the persisted index
type Adapter struct {
	enabled bool
	llm     LLMClient
	opener  IndexOpener
	logger  logrus.FieldLogger
}

// NewAdapter creates an adapter. A disabled adapter never touches llm or opener.
func NewAdapter(enabled bool, llm LLMClient, opener IndexOpener, logger logrus.FieldLogger) *Adapter {
	return &Adapter{
		enabled: enabled,
		llm:     llm,
		opener:  opener,
		logger:  logger,
	}
}

// Configure checks that the engine is enabled and its models are served
func (a *Adapter) Configure(ctx context.Context) error {
	if !a.enabled {
		return ErrEngineDisabled
	}
	if err := a.llm.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
	return nil
}

// LoadIndex opens the persisted index
func (a *Adapter) LoadIndex(ctx context.Context) (Retriever, error) {
	r, err := a.opener.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load index: %w", err)
	}
	return r, nil
}

// Query retrieves context for text and asks the model with the enhanced prompt
func (a *Adapter) Query(ctx context.Context, r Retriever, text string) (string, error) {
	contextText, err := r.Retrieve(ctx, text)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrQueryFailed, err)
	}

	answer, err := a.llm.GenerateAnswer(ctx, contextText, EnhancePrompt(text))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrQueryFailed, err)
	}
	if strings.TrimSpace(answer) == "" {
		return "", fmt.Errorf("%w: empty answer", ErrQueryFailed)
	}
	return answer, nil
}

// Answer runs Configure, LoadIndex and Query. It never panics.
func (a *Adapter) Answer(ctx context.Context, text string) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = Outcome{Status: StatusUnavailable, Err: fmt.Errorf("answer engine panicked: %v", r)}
		}
	}()

	if err := a.Configure(ctx); err != nil {
		return Outcome{Status: StatusUnavailable, Err: err}
	}

	r, err := a.LoadIndex(ctx)
	if err != nil {
		return Outcome{Status: StatusUnavailable, Err: err}
	}
	defer func() {
		if err := r.Close(); err != nil {
			a.logger.WithError(err).Warn("Failed to close index")
		}
	}()

	answer, err := a.Query(ctx, r, text)
	if err != nil {
		return Outcome{Status: StatusFailed, Err: err}
	}
	return Outcome{Status: StatusOK, Answer: answer}
}
