package characard

import (
	"github.com/leofalp/characard/core/parse"
	"github.com/leofalp/characard/core/pngchunk"
)

// Fatal error kinds. Use errors.Is to tell them apart; every other anomaly
// (a chunk that fails to decode, a candidate that needs brace recovery) is
// absorbed by the extractor.
var (
	// ErrNotAContainer: input shorter than 8 bytes or without the PNG signature.
	ErrNotAContainer = pngchunk.ErrNotAContainer
	// ErrTruncatedChunk: a chunk's declared length runs past the end of the input.
	ErrTruncatedChunk = pngchunk.ErrTruncatedChunk
	// ErrNoEmbeddedData: the container holds no textual chunk.
	ErrNoEmbeddedData = parse.ErrNoEmbeddedData
	// ErrUnrecoverableData: no candidate parsed as JSON. The error is a
	// *parse.UnrecoverableError carrying the first candidate's text.
	ErrUnrecoverableData = parse.ErrUnrecoverableData
)
