package cohesion

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Option configures an Analyzer.
type Option func(*analyzerConfig)

type analyzerConfig struct {
	stopWords     []string
	stopWordFiles []string
	placeholder   rune
	normalize     bool
	logger        *zap.Logger
	registerer    prometheus.Registerer
}

// WithStopWords adds stop words blanked out of every text before measuring.
func WithStopWords(words ...string) Option {
	return func(c *analyzerConfig) {
		c.stopWords = append(c.stopWords, words...)
	}
}

// WithStopWordFile adds the stop words of a file, one per line.
func WithStopWordFile(path string) Option {
	return func(c *analyzerConfig) {
		c.stopWordFiles = append(c.stopWordFiles, path)
	}
}

// WithPlaceholder sets the character that overwrites stop words. Default '_'.
func WithPlaceholder(r rune) Option {
	return func(c *analyzerConfig) {
		c.placeholder = r
	}
}

// WithNormalization matches stop words on the Unicode NFC form. Texts keep their
// original characters and length.
func WithNormalization() Option {
	return func(c *analyzerConfig) {
		c.normalize = true
	}
}

// WithLogger sets the logger. Default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *analyzerConfig) {
		c.logger = l
	}
}

// WithMetrics registers operation counters and durations on reg.
// Analyzers sharing a registry share the collectors.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *analyzerConfig) {
		c.registerer = reg
	}
}
