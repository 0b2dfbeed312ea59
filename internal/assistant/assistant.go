// Package assistant answers one earnings question, from the answer engine
// when it works and from the transcript catalog otherwise.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/vokinneberg/earnings-qa/internal/catalog"
	"github.com/vokinneberg/earnings-qa/internal/confidence"
	"github.com/vokinneberg/earnings-qa/internal/engine"
	"github.com/vokinneberg/earnings-qa/internal/types"
)

//go:generate mockgen -source=assistant.go -destination=mock_assistant.go -package=assistant

// Engine produces model answers
type Engine interface {
	Answer(ctx context.Context, text string) engine.Outcome
}

// ErrMissingQuery is returned for an empty or blank query.
var ErrMissingQuery = errors.New("no query provided")

const (
	advancedSuffix   = " (Advanced)"
	transcriptSuffix = " (Transcript-based)"
)

// Assistant routes a query to the engine or the fallback responder
type Assistant struct {
	engine    Engine
	responder *catalog.Responder
	name      string
	logger    logrus.FieldLogger
}

// New creates an assistant. name prefixes the source label of every answer.
func New(eng Engine, responder *catalog.Responder, name string, logger logrus.FieldLogger) *Assistant {
	return &Assistant{
		engine:    eng,
		responder: responder,
		name:      name,
		logger:    logger,
	}
}

// Ask answers query. The only errors are ErrMissingQuery and an engine
// status the assistant does not know.
func (a *Assistant) Ask(ctx context.Context, query string) (*types.AnswerResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrMissingQuery
	}

	out := a.engine.Answer(ctx, query)
	switch out.Status {
	case engine.StatusOK:
		a.logger.Debug("Answered by engine")
		return &types.AnswerResult{
			Response:   out.Answer,
			Confidence: confidence.Score(out.Answer, true),
			Query:      query,
			Source:     a.name + advancedSuffix,
			Mode:       types.ModeAI,
		}, nil
	case engine.StatusUnavailable, engine.StatusFailed:
		a.logger.WithError(out.Err).WithField("status", out.Status).Debug("Engine did not answer, using transcript catalog")
		return a.fallback(query), nil
	default:
		return nil, fmt.Errorf("unknown engine status %s", out.Status)
	}
}

func (a *Assistant) fallback(query string) *types.AnswerResult {
	match := a.responder.Lookup(query)
	if match.Keyword != "" {
		a.logger.WithField("keyword", match.Keyword).Debug("Matched catalog entry")
	} else {
		a.logger.Debug("No catalog entry matched, using default response")
	}

	return &types.AnswerResult{
		Response:   match.Text,
		Confidence: confidence.Score(match.Text, false),
		Query:      query,
		Source:     a.name + transcriptSuffix,
		Mode:       types.ModeFallback,
	}
}
