package characard

import (
	"context"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"

	"github.com/leofalp/characard/core/parse"
	"github.com/leofalp/characard/core/pngchunk"
	"github.com/leofalp/characard/core/selection"
	"github.com/leofalp/characard/core/textchunk"
	"github.com/leofalp/characard/internal/utils"
	"github.com/leofalp/characard/providers/observability"
)

// Result is a recovered card.
type Result struct {
	// Parsed is the decoded JSON value: map[string]any, []any, string,
	// bool, json.Number or nil.
	Parsed any
	// RawText is the full text of the chunk the value came from, even when
	// only part of it was parsed.
	RawText string
	// Keyword and Kind describe the chunk RawText was read from.
	Keyword string
	Kind    textchunk.Kind
	// Method is the recovery step that succeeded.
	Method parse.Method
	// Candidates is the number of textual chunks found in the file.
	Candidates int
}

// Extractor runs the extraction pipeline. It is immutable once built and
// safe for concurrent use.
type Extractor struct {
	cfg config
}

// New returns an Extractor configured by opts.
func New(opts ...Option) *Extractor {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.keyword == "" {
		cfg.keyword = selection.ReservedKeyword
	}
	return &Extractor{cfg: *cfg}
}

// Extract recovers the card from data using a default Extractor.
func Extract(data []byte) (*Result, error) {
	return New().Extract(context.Background(), data)
}

// ExtractFile reads the whole file at path and extracts its card.
func (e *Extractor) ExtractFile(ctx context.Context, path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if obs := e.observer(ctx); obs != nil {
		obs.Debug(ctx, "read input", observability.String(observability.AttrInputPath, path),
			observability.Int(observability.AttrInputSize, len(data)))
	}
	return e.Extract(ctx, data)
}

// ExtractReader reads r to the end and extracts the card from its content.
func (e *Extractor) ExtractReader(ctx context.Context, r io.Reader) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return e.Extract(ctx, data)
}

// Extract scans data, selects the card payload and parses it.
//
// It fails with ErrNotAContainer, ErrTruncatedChunk, ErrNoEmbeddedData or
// ErrUnrecoverableData. Textual chunks that cannot be decoded are skipped.
// ctx only carries observability; the call never blocks.
func (e *Extractor) Extract(ctx context.Context, data []byte) (res *Result, err error) {
	obs := e.observer(ctx)
	if obs != nil {
		timer := utils.NewTimer()
		var span observability.Span
		ctx, span = obs.StartSpan(ctx, observability.SpanExtract,
			observability.Int(observability.AttrInputSize, len(data)),
			observability.String(observability.AttrKeyword, e.cfg.keyword),
		)
		ctx = observability.ContextWithObserver(ctx, obs)
		defer func() {
			timer.Stop()
			obs.Histogram(observability.MetricExtractDuration).Record(ctx, timer.Milliseconds())
			if err != nil {
				span.RecordError(err)
				span.SetStatus(observability.StatusError, "extraction failed")
				obs.Counter(observability.MetricExtractFailures).Add(ctx, 1)
			} else {
				span.SetAttributes(
					observability.String(observability.AttrMethod, string(res.Method)),
					observability.Int(observability.AttrRawLength, len(res.RawText)),
				)
				span.SetStatus(observability.StatusOK, "")
			}
			span.End()
		}()
	}

	cands, err := e.decode(ctx, obs, data)
	if err != nil {
		return nil, err
	}

	selected := selection.Select(cands, e.cfg.keyword)
	if obs != nil {
		matched := len(selected) == 1 && strings.EqualFold(selected[0].Keyword, e.cfg.keyword)
		if span := observability.SpanFromContext(ctx); span != nil && len(selected) > 0 && !matched {
			span.AddEvent(observability.EventFallbackSelection,
				observability.Int(observability.AttrSelectedCount, len(selected)))
		}
		obs.Debug(ctx, "candidates selected",
			observability.Int(observability.AttrCandidateCount, len(cands)),
			observability.Int(observability.AttrSelectedCount, len(selected)),
		)
	}

	recovered, err := parse.Recover(selection.Texts(selected), e.parseOptions()...)
	if err != nil {
		return nil, err
	}

	chosen := selected[recovered.Index]
	return &Result{
		Parsed:     recovered.Value,
		RawText:    recovered.RawText,
		Keyword:    chosen.Keyword,
		Kind:       chosen.Kind,
		Method:     recovered.Method,
		Candidates: len(cands),
	}, nil
}

// Candidates returns every textual chunk of data in file order, without
// selecting or parsing anything.
func (e *Extractor) Candidates(ctx context.Context, data []byte) ([]textchunk.Candidate, error) {
	return e.decode(ctx, e.observer(ctx), data)
}

func (e *Extractor) decode(ctx context.Context, obs observability.Provider, data []byte) ([]textchunk.Candidate, error) {
	sc, err := pngchunk.NewScanner(data)
	if err != nil {
		return nil, err
	}

	scanned := 0
	counted := func(yield func(pngchunk.Chunk) bool) {
		for c := range sc.All() {
			scanned++
			if !yield(c) {
				return
			}
		}
	}

	dec := textchunk.Decoder{MaxInflatedSize: e.cfg.maxInflatedSize}
	cands := dec.DecodeAll(iter.Seq[pngchunk.Chunk](counted), func(c pngchunk.Chunk, err error) {
		if obs == nil {
			return
		}
		attrs := []observability.Attribute{
			observability.String(observability.AttrChunkType, c.Type),
			observability.Int(observability.AttrChunkOffset, c.Offset),
			observability.Error(err),
		}
		obs.Debug(ctx, "textual chunk dropped", attrs...)
		obs.Counter(observability.MetricChunksDropped).Add(ctx, 1)
		if span := observability.SpanFromContext(ctx); span != nil {
			span.AddEvent(observability.EventChunkDropped, attrs...)
		}
	})

	if obs != nil {
		obs.Counter(observability.MetricChunksScanned).Add(ctx, int64(scanned))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return cands, nil
}

func (e *Extractor) parseOptions() []parse.Option {
	var opts []parse.Option
	if e.cfg.base64 {
		opts = append(opts, parse.WithBase64())
	}
	if e.cfg.repair {
		opts = append(opts, parse.WithRepair())
	}
	return opts
}

func (e *Extractor) observer(ctx context.Context) observability.Provider {
	if e.cfg.observer != nil {
		return e.cfg.observer
	}
	return observability.ObserverFromContext(ctx)
}
