package harness

import (
	"context"
	"errors"
	"os"
	"sync/atomic"

	"github.com/ethereum-optimism/infra/harness-report/exitcodes"
	"github.com/ethereum-optimism/optimism/op-service/cliapp"
)

// service implements the cliapp.Lifecycle interface.
var _ cliapp.Lifecycle = &service{}

// service runs a single report generation and then asks the app to close.
type service struct {
	config    *Config
	version   string
	generator *Generator
	result    *RunResult

	running atomic.Bool

	shutdownCallback func(error) // Callback to signal application shutdown
}

// New creates the report generation service
func New(config *Config, version string, shutdownCallback func(error)) (*service, error) {
	if config == nil {
		return nil, errors.New("config is required")
	}

	config.Log.Debug("Creating report service with config",
		"input", config.Input,
		"output", config.Output,
		"inputFormat", config.InputFormat,
		"summaryFile", config.SummaryFile,
		"failOnTestFailure", config.FailOnTestFailure)

	generator, err := NewGenerator(config, os.Stdout, os.Stderr)
	if err != nil {
		return nil, err
	}

	return &service{
		config:           config,
		version:          version,
		generator:        generator,
		shutdownCallback: shutdownCallback,
	}, nil
}

// Start generates the report and triggers shutdown on success.
// Start implements the cliapp.Lifecycle interface.
func (s *service) Start(ctx context.Context) error {
	// Set up panic recovery to ensure we exit with code 2 for runtime errors
	defer func() {
		if r := recover(); r != nil {
			s.config.Log.Error("Runtime error occurred", "error", r)
			os.Exit(exitcodes.RuntimeErr)
		}
	}()

	s.running.Store(true)
	s.config.Log.Info("Starting harness-report", "version", s.version)

	result, err := s.generator.Run(ctx)
	s.result = result
	if err != nil {
		s.running.Store(false)
		return err
	}

	go func() {
		s.shutdownCallback(nil)
	}()
	return nil
}

// Stop stops the service.
// Stop implements the cliapp.Lifecycle interface.
func (s *service) Stop(ctx context.Context) error {
	if !s.running.Load() {
		s.config.Log.Debug("Service already stopped, nothing to do")
		return nil
	}
	s.running.Store(false)
	s.config.Log.Debug("harness-report stopped")
	return nil
}

// Stopped returns true if the service is stopped.
// Stopped implements the cliapp.Lifecycle interface.
func (s *service) Stopped() bool {
	return !s.running.Load()
}
