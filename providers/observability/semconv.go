package observability

// Semantic conventions for the attributes, spans and metrics recorded while
// extracting a card.

// --- Container Attributes ---

const (
	// AttrInputSize is the size of the scanned input in bytes
	AttrInputSize = "input.size"

	// AttrInputPath is the file the input was read from, when known
	AttrInputPath = "input.path"

	// AttrChunkType is the 4-character PNG chunk tag
	AttrChunkType = "png.chunk.type"

	// AttrChunkOffset is the byte offset of a chunk's length field
	AttrChunkOffset = "png.chunk.offset"

	// AttrChunkCount is the number of chunks scanned
	AttrChunkCount = "png.chunk.count"
)

// --- Card Attributes ---

const (
	// AttrKeyword is the keyword used to select the card chunk
	AttrKeyword = "card.keyword"

	// AttrCandidateCount is the number of decoded textual chunks
	AttrCandidateCount = "card.candidates"

	// AttrSelectedCount is the number of candidates handed to the parser
	AttrSelectedCount = "card.selected"

	// AttrMethod is the recovery step that produced the value
	AttrMethod = "card.method"

	// AttrRawLength is the length of the accepted raw text in bytes
	AttrRawLength = "card.raw.length"
)

// --- General Attributes ---

const (
	// AttrError is the error message
	AttrError = "error"

	// AttrDuration is the operation duration
	AttrDuration = "duration"

	// AttrStatus is the operation status
	AttrStatus = "status"

	// AttrStatusDescription is the status description
	AttrStatusDescription = "status_description"
)

// --- Span Names ---

const (
	// SpanExtract covers one full extraction
	SpanExtract = "characard.extract"
)

// --- Event Names ---

const (
	// EventChunkDropped marks a textual chunk that failed to decode
	EventChunkDropped = "chunk.dropped"

	// EventFallbackSelection marks that no chunk carried the card keyword
	EventFallbackSelection = "selection.fallback"
)

// --- Metric Names ---

const (
	// MetricChunksScanned counts chunks read from the container
	MetricChunksScanned = "characard.chunks.scanned"

	// MetricChunksDropped counts textual chunks dropped on decode failure
	MetricChunksDropped = "characard.chunks.dropped"

	// MetricExtractDuration is the extraction latency in milliseconds
	MetricExtractDuration = "characard.extract.duration_ms"

	// MetricExtractFailures counts extractions ending in a fatal error
	MetricExtractFailures = "characard.extract.failures"
)
