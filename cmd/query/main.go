package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/vokinneberg/earnings-qa/internal/assistant"
	"github.com/vokinneberg/earnings-qa/internal/catalog"
	"github.com/vokinneberg/earnings-qa/internal/config"
	"github.com/vokinneberg/earnings-qa/internal/engine"
	"github.com/vokinneberg/earnings-qa/internal/logging"
	"github.com/vokinneberg/earnings-qa/internal/output"
)

const (
	missingQueryError   = "No query provided"
	missingQueryMessage = "Please provide a query as a command line argument"
	unexpectedMessage   = "An unexpected error occurred while processing the query"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run answers the question formed by args and returns the exit code.
// Exactly one JSON record is written to stdout.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) (code int) {
	defer func() {
		if r := recover(); r != nil {
			code = unexpected(stdout, fmt.Errorf("%v", r))
		}
	}()

	query := strings.Join(args, " ")
	if strings.TrimSpace(query) == "" {
		return missingQuery(stdout)
	}

	// .env is optional
	_ = godotenv.Load()

	a, logger := newAssistant(stderr)

	result, err := a.Ask(ctx, query)
	if errors.Is(err, assistant.ErrMissingQuery) {
		return missingQuery(stdout)
	}
	if err != nil {
		return unexpected(stdout, err)
	}

	logger.WithField("mode", result.Mode).Info("Answered query")

	if err := output.WriteResult(stdout, result); err != nil {
		logger.WithError(err).Error("Failed to write result")
		return 1
	}
	return 0
}

// newAssistant wires the assistant from configuration. Configuration the
// engine cannot use leaves it disabled, so the catalog still answers.
func newAssistant(stderr io.Writer) (*assistant.Assistant, *logrus.Logger) {
	responder := catalog.NewResponder(catalog.Default())

	cfg, err := config.LoadConfig()
	if err != nil {
		logger := logging.NewWithOutput(stderr, "warn", "text")
		logger.WithError(err).Warn("Invalid configuration, answering from transcript catalog")
		return assistant.New(engine.NewAdapter(false, nil, nil, logger), responder, config.DefaultAssistantName, logger), logger
	}

	logger := logging.NewWithOutput(stderr, cfg.LogLevel, cfg.LogFormat)
	return assistant.New(engine.NewFromConfig(cfg, logger), responder, cfg.AssistantName, logger), logger
}

func missingQuery(stdout io.Writer) int {
	_ = output.WriteError(stdout, missingQueryError, missingQueryMessage)
	return 1
}

func unexpected(stdout io.Writer, err error) int {
	_ = output.WriteError(stdout, fmt.Sprintf("Unexpected error: %v", err), unexpectedMessage)
	return 1
}
