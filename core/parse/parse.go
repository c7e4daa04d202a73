package parse

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// Method records which recovery step produced a value.
type Method string

const (
	// MethodStrict means the whole candidate text was valid JSON.
	MethodStrict Method = "strict"
	// MethodBraces means the span from the first '{' to the last '}' parsed.
	MethodBraces Method = "braces"
	// MethodBase64 means the candidate was base64 encoded JSON.
	MethodBase64 Method = "base64"
	// MethodRepaired means jsonrepair had to rewrite the text.
	MethodRepaired Method = "repaired"
)

var errTrailingData = errors.New("trailing data after JSON value")

// Result is a successfully recovered value.
type Result struct {
	// Value is the decoded JSON. Numbers are json.Number.
	Value any
	// RawText is the full candidate text the value was recovered from,
	// even when only a substring of it was parsed.
	RawText string
	// Method is the step that succeeded.
	Method Method
	// Index is the position of the accepted candidate in the input list.
	Index int
}

// Option configures Recover.
type Option func(*config)

type config struct {
	base64 bool
	repair bool
}

// WithBase64 makes Recover also try candidates that are standard base64
// encoded JSON, which is how most card editors store the payload.
func WithBase64() Option {
	return func(c *config) {
		c.base64 = true
	}
}

// WithRepair enables a last step that runs the text through jsonrepair.
// Repaired values may contain content that was not in the original text.
func WithRepair() Option {
	return func(c *config) {
		c.repair = true
	}
}

// Recover tries each text in order and returns the first value that parses.
//
// For every candidate it attempts, in order: a strict parse of the whole
// text; a strict parse of BraceSpan(text); the base64 and repair steps when
// enabled. An empty list yields ErrNoEmbeddedData; a list where nothing
// parses yields an *UnrecoverableError carrying the first candidate.
func Recover(texts []string, opts ...Option) (*Result, error) {
	if len(texts) == 0 {
		return nil, ErrNoEmbeddedData
	}

	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	for i, text := range texts {
		if value, method, ok := cfg.recoverOne(text); ok {
			return &Result{Value: value, RawText: text, Method: method, Index: i}, nil
		}
	}

	return nil, &UnrecoverableError{RawText: texts[0], Attempts: len(texts)}
}

func (c *config) recoverOne(text string) (any, Method, bool) {
	if v, method, ok := strictOrBraces(text); ok {
		return v, method, true
	}

	if c.base64 {
		if decoded, ok := decodeBase64(text); ok {
			if v, _, ok := strictOrBraces(decoded); ok {
				return v, MethodBase64, true
			}
		}
	}

	if c.repair {
		target := text
		if span, ok := BraceSpan(text); ok {
			target = span
		}
		if repaired, err := jsonrepair.JSONRepair(target); err == nil {
			if v, err := Strict(repaired); err == nil {
				return v, MethodRepaired, true
			}
		}
	}

	return nil, "", false
}

func strictOrBraces(text string) (any, Method, bool) {
	if v, err := Strict(text); err == nil {
		return v, MethodStrict, true
	}
	if span, ok := BraceSpan(text); ok {
		if v, err := Strict(span); err == nil {
			return v, MethodBraces, true
		}
	}
	return nil, "", false
}

// Strict parses text as exactly one JSON value. Surrounding whitespace is
// allowed; anything else after the value is an error. Numbers are decoded as
// json.Number so their literal form is preserved.
func Strict(text string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errTrailingData
	}
	return v, nil
}

// BraceSpan returns text from its first '{' to its last '}' inclusive.
// It reports false when either brace is missing or the last '}' does not
// follow the first '{'.
func BraceSpan(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

func decodeBase64(text string) (string, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", false
	}
	for _, enc := range []*base64.Encoding{base64.StdEncoding, base64.RawStdEncoding} {
		if b, err := enc.DecodeString(trimmed); err == nil {
			return string(b), true
		}
	}
	return "", false
}
