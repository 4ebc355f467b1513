package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/arcline/textsweep/config"
	"github.com/arcline/textsweep/pkg/engine"
	"github.com/arcline/textsweep/pkg/flow"
)

func main() {
	configFlag := flag.String("config", "config.yaml", "config file")
	inputFlag := flag.String("input", "", "input image directory (overrides config)")
	outputFlag := flag.String("output", "", "output directory (overrides config)")
	engineFlag := flag.String("engine", "", "engine type (overrides config)")

	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Parse(*configFlag)

	if err != nil {
		logger.Error("cannot read config", "path", *configFlag, "error", err)
		os.Exit(1)
	}

	if *inputFlag != "" {
		cfg.Input = *inputFlag
	}

	if *outputFlag != "" {
		cfg.Output = *outputFlag
	}

	if *engineFlag != "" {
		cfg.Engine.Type = *engineFlag
	}

	options := flow.Options{
		ImageDir:  cfg.Input,
		OutputDir: cfg.Output,

		EngineType: cfg.Engine.Type,

		Engine: flow.EngineOptions{
			URL:   cfg.Engine.URL,
			Token: cfg.Engine.Token,
			Model: cfg.Engine.Model,

			Languages: cfg.Engine.Languages,

			Temperature: cfg.Engine.Temperature,
			MaxTokens:   cfg.Engine.MaxTokens,

			Insecure: cfg.Engine.Insecure,

			Limit: cfg.Engine.Limit,
		},

		MaxRetries: cfg.MaxRetries,
		Extensions: cfg.Extensions,

		Logger: logger,
	}

	if cfg.Engine.Timeout != nil {
		options.Engine.Timeout = time.Duration(*cfg.Engine.Timeout) * time.Second
	}

	report, err := flow.New(options).Run(context.Background())

	if err != nil {
		var validationErr *flow.ValidationError
		var configErr *engine.ConfigurationError

		switch {
		case errors.As(err, &validationErr):
			logger.Error("run aborted", "stage", "initialize", "error", err)

		case errors.As(err, &configErr):
			logger.Error("run aborted", "stage", "create_engine", "error", err)

		default:
			logger.Error("run aborted", "error", err)
		}

		os.Exit(1)
	}

	fmt.Printf("processed %d images: %d successful, %d failed (%.1f%% success rate, %s)\n",
		report.TotalImages, report.Successful, report.Failed, report.SuccessRate()*100, report.Duration)

	for _, result := range report.Results {
		if !result.Success {
			fmt.Printf("  failed: %s (attempts: %d): %s\n", result.ImagePath, result.Attempts, result.Error)
		}
	}
}
