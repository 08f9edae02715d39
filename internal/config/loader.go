package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML configuration file at path and returns a validated
// [Config]. It is a convenience wrapper around [LoadFromReader].
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r and validates the result.
// Useful in tests where configs are constructed from string literals.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	// Server
	if cfg.Server.LogLevel != "" && !cfg.Server.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("server.log_level %q is invalid; valid values: debug, info, warn, error", cfg.Server.LogLevel))
	}
	if cfg.Server.TLS != nil {
		if cfg.Server.TLS.CertFile == "" {
			errs = append(errs, errors.New("server.tls.cert_file is required when server.tls is set"))
		}
		if cfg.Server.TLS.KeyFile == "" {
			errs = append(errs, errors.New("server.tls.key_file is required when server.tls is set"))
		}
	}

	// Script
	if cfg.Script.Path == "" {
		errs = append(errs, errors.New("script.path is required"))
	}

	// Similarity weights
	w := cfg.Similarity.Weights
	if !w.IsZero() {
		for _, f := range []struct {
			name  string
			value float64
		}{
			{"word_level", w.WordLevel},
			{"trigram", w.Trigram},
			{"bigram", w.Bigram},
			{"quadgram", w.Quadgram},
			{"character", w.Character},
			{"substring", w.Substring},
		} {
			if f.value < 0 {
				errs = append(errs, fmt.Errorf("similarity.weights.%s %.3f must not be negative", f.name, f.value))
			}
		}
		if sum := w.Sum(); sum > 1.0 {
			errs = append(errs, fmt.Errorf("similarity.weights sum %.3f exceeds 1.0; combined scores would always clamp", sum))
		}
		if w.WordLevel < w.Trigram+w.Bigram+w.Quadgram {
			slog.Warn("similarity.weights.word_level is not the dominant signal; word-level agreement is the most reliable evidence for STT transcripts",
				"word_level", w.WordLevel,
			)
		}
	}

	// Locator
	loc := cfg.Locator
	if loc.WindowWords < 0 {
		errs = append(errs, fmt.Errorf("locator.window_words %d must not be negative", loc.WindowWords))
	}
	if loc.StepWords < 0 {
		errs = append(errs, fmt.Errorf("locator.step_words %d must not be negative", loc.StepWords))
	}
	if loc.TopK < 0 {
		errs = append(errs, fmt.Errorf("locator.top_k %d must not be negative", loc.TopK))
	}
	if loc.WindowWords > 0 && loc.StepWords > loc.WindowWords {
		errs = append(errs, fmt.Errorf("locator.step_words %d exceeds locator.window_words %d; script words between windows would never be indexed", loc.StepWords, loc.WindowWords))
	}

	return errors.Join(errs...)
}
