package main

import (
	"flag"
	"os"
	"time"

	"bitbucket.org/sotavant/alexa-aura-skill/internal/completion"
)

// config собирается один раз при старте и дальше не меняется.
type config struct {
	RunAddr  string
	LogLevel string
	SlotName string

	Completion completion.Config
}

func parseFlags(args []string) (config, error) {
	var cfg config

	fs := flag.NewFlagSet("skill", flag.ContinueOnError)
	fs.StringVar(&cfg.RunAddr, "a", ":8080", "address and port")
	fs.StringVar(&cfg.LogLevel, "l", "info", "log level")
	fs.StringVar(&cfg.SlotName, "s", "", "slot carrying the user utterance")
	fs.StringVar(&cfg.Completion.APIKey, "k", "", "completion API key")
	fs.StringVar(&cfg.Completion.BaseURL, "u", completion.DefaultBaseURL, "completion endpoint base URL")
	fs.StringVar(&cfg.Completion.Model, "m", completion.DefaultModel, "completion model")
	fs.DurationVar(&cfg.Completion.Timeout, "t", completion.DefaultTimeout, "completion call timeout")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if envRunAddr := os.Getenv("RUN_ADDR"); envRunAddr != "" {
		cfg.RunAddr = envRunAddr
	}

	if envLogLevel := os.Getenv("LOG_LEVEL"); envLogLevel != "" {
		cfg.LogLevel = envLogLevel
	}

	if envSlot := os.Getenv("UTTERANCE_SLOT"); envSlot != "" {
		cfg.SlotName = envSlot
	}

	if envKey := os.Getenv("OPENROUTER_API_KEY"); envKey != "" {
		cfg.Completion.APIKey = envKey
	}

	if envURL := os.Getenv("COMPLETION_BASE_URL"); envURL != "" {
		cfg.Completion.BaseURL = envURL
	}

	if envModel := os.Getenv("COMPLETION_MODEL"); envModel != "" {
		cfg.Completion.Model = envModel
	}

	if envTimeout := os.Getenv("COMPLETION_TIMEOUT"); envTimeout != "" {
		d, err := time.ParseDuration(envTimeout)
		if err != nil {
			return cfg, err
		}
		cfg.Completion.Timeout = d
	}

	return cfg, nil
}
