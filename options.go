package characard

import (
	"github.com/leofalp/characard/core/selection"
	"github.com/leofalp/characard/providers/observability"
)

// Option configures an Extractor.
type Option func(*config)

type config struct {
	observer        observability.Provider
	keyword         string
	base64          bool
	repair          bool
	maxInflatedSize int64
}

// WithObserver routes spans, metrics and logs to p. Without it the
// extractor uses the observer stored in the call's context, if any.
func WithObserver(p observability.Provider) Option {
	return func(c *config) {
		c.observer = p
	}
}

// WithKeyword changes the chunk keyword that marks the card (default
// "chara"). Matching ignores case.
func WithKeyword(keyword string) Option {
	return func(c *config) {
		c.keyword = keyword
	}
}

// WithBase64 also accepts candidates holding base64 encoded JSON.
func WithBase64() Option {
	return func(c *config) {
		c.base64 = true
	}
}

// WithRepair enables the jsonrepair step for text that no exact parse can
// recover. Repaired values may contain content absent from the file.
func WithRepair() Option {
	return func(c *config) {
		c.repair = true
	}
}

// WithMaxInflatedSize bounds the decompressed size of one zTXt or iTXt chunk.
func WithMaxInflatedSize(n int64) Option {
	return func(c *config) {
		c.maxInflatedSize = n
	}
}

func defaultConfig() *config {
	return &config{keyword: selection.ReservedKeyword}
}
