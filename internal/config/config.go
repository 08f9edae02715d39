// Package config provides the configuration schema and loader for the langdu
// sync server.
package config

import "github.com/langdu/langdu/pkg/fuzzy"

// LogLevel controls log verbosity for the langdu server.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Config is the root configuration structure for the langdu server.
// It is typically loaded from a YAML file using [Load] or [LoadFromReader].
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Script     ScriptConfig     `yaml:"script"`
	Similarity SimilarityConfig `yaml:"similarity"`
	Locator    LocatorConfig    `yaml:"locator"`
}

// ServerConfig holds network and logging settings.
type ServerConfig struct {
	// ListenAddr is the TCP address the server listens on (e.g., ":8080").
	ListenAddr string `yaml:"listen_addr"`

	// LogLevel controls verbosity.
	LogLevel LogLevel `yaml:"log_level"`

	// TLS configures TLS for the server. When nil, the server runs plain HTTP.
	TLS *TLSConfig `yaml:"tls"`
}

// TLSConfig holds TLS certificate paths for enabling HTTPS.
type TLSConfig struct {
	// CertFile is the path to the PEM-encoded TLS certificate.
	CertFile string `yaml:"cert_file"`

	// KeyFile is the path to the PEM-encoded TLS private key.
	KeyFile string `yaml:"key_file"`
}

// ScriptConfig identifies the reference script the server aligns against.
type ScriptConfig struct {
	// Path is a UTF-8 text file containing the full reference script.
	Path string `yaml:"path"`
}

// SimilarityConfig tunes the combined-similarity fusion served on the
// compare endpoint.
type SimilarityConfig struct {
	// Weights scales the individual similarity signals. Omitting the block
	// selects [fuzzy.DefaultWeights].
	Weights WeightsConfig `yaml:"weights"`
}

// WeightsConfig mirrors [fuzzy.Weights] with YAML tags. The weights should
// sum to at most 1.0; [Validate] rejects a larger sum.
type WeightsConfig struct {
	WordLevel float64 `yaml:"word_level"`
	Trigram   float64 `yaml:"trigram"`
	Bigram    float64 `yaml:"bigram"`
	Quadgram  float64 `yaml:"quadgram"`
	Character float64 `yaml:"character"`
	Substring float64 `yaml:"substring"`
}

// IsZero reports whether no weight was configured at all.
func (w WeightsConfig) IsZero() bool {
	return w == WeightsConfig{}
}

// Sum returns the total of all configured weights.
func (w WeightsConfig) Sum() float64 {
	return w.WordLevel + w.Trigram + w.Bigram + w.Quadgram + w.Character + w.Substring
}

// Weights converts the configured block to [fuzzy.Weights], substituting
// [fuzzy.DefaultWeights] when nothing was configured.
func (w WeightsConfig) Weights() fuzzy.Weights {
	if w.IsZero() {
		return fuzzy.DefaultWeights()
	}
	return fuzzy.Weights{
		WordLevel: w.WordLevel,
		Trigram:   w.Trigram,
		Bigram:    w.Bigram,
		Quadgram:  w.Quadgram,
		Character: w.Character,
		Substring: w.Substring,
	}
}

// LocatorConfig tunes the script locator. Zero values select the locator's
// built-in defaults (window 100, step 30, top-K 20).
type LocatorConfig struct {
	// WindowWords is the number of script words per search window.
	WindowWords int `yaml:"window_words"`

	// StepWords is the stride between consecutive windows. Must not exceed
	// WindowWords, or script words between windows would never be indexed.
	StepWords int `yaml:"step_words"`

	// TopK is how many candidate windows are fully aligned per query.
	TopK int `yaml:"top_k"`
}
