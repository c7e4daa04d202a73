package pngchunk

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"iter"
)

// Signature is the fixed prefix of every PNG file.
var Signature = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

// TypeEnd is the chunk type that terminates the image.
const TypeEnd = "IEND"

const (
	lengthSize = 4
	typeSize   = 4
	crcSize    = 4
	headerSize = lengthSize + typeSize
)

// ErrNotAContainer is returned when the input is shorter than the signature
// or does not start with it.
var ErrNotAContainer = errors.New("characard: not a PNG container")

// ErrTruncatedChunk is returned when a chunk header, its declared data or its
// CRC would read past the end of the buffer.
var ErrTruncatedChunk = errors.New("characard: truncated chunk")

// Chunk is a single record of the container. Data aliases the scanned
// buffer; callers that retain it past the scan must copy it.
type Chunk struct {
	// Type is the 4-character chunk tag (e.g. "tEXt").
	Type string
	// Data holds exactly the declared number of bytes.
	Data []byte
	// Offset is the position of the chunk's length field in the input.
	Offset int
}

// Scanner yields the chunks of a PNG byte stream one at a time.
// It is lazy, finite and cannot be restarted.
type Scanner struct {
	data  []byte
	off   int
	chunk Chunk
	err   error
	done  bool
}

// NewScanner verifies the PNG signature and positions the scanner on the
// first chunk.
func NewScanner(data []byte) (*Scanner, error) {
	if len(data) < len(Signature) {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d", ErrNotAContainer, len(data), len(Signature))
	}
	if !bytes.Equal(data[:len(Signature)], Signature) {
		return nil, fmt.Errorf("%w: signature mismatch % X", ErrNotAContainer, data[:len(Signature)])
	}
	return &Scanner{data: data, off: len(Signature)}, nil
}

// Next advances to the next chunk. It returns false once IEND has been read,
// the buffer is exhausted, or an error occurred; check [Scanner.Err] then.
func (s *Scanner) Next() bool {
	if s.done {
		return false
	}

	remaining := len(s.data) - s.off
	if remaining == 0 {
		s.done = true
		return false
	}
	if remaining < headerSize {
		return s.fail(fmt.Errorf("%w: %d header bytes at offset %d", ErrTruncatedChunk, remaining, s.off))
	}

	start := s.off
	length := uint64(binary.BigEndian.Uint32(s.data[start:]))
	typ := string(s.data[start+lengthSize : start+headerSize])

	if typ == TypeEnd {
		s.chunk = Chunk{}
		s.done = true
		return false
	}

	// length is compared as uint64 so a 32-bit int cannot overflow.
	if uint64(remaining-headerSize) < length+crcSize {
		return s.fail(fmt.Errorf("%w: %s at offset %d declares %d bytes, %d available",
			ErrTruncatedChunk, typ, start, length, remaining-headerSize))
	}

	dataStart := start + headerSize
	dataEnd := dataStart + int(length)
	s.chunk = Chunk{
		Type:   typ,
		Data:   s.data[dataStart:dataEnd:dataEnd],
		Offset: start,
	}
	// CRC is skipped, not verified.
	s.off = dataEnd + crcSize
	return true
}

// Chunk returns the chunk produced by the last successful call to Next.
func (s *Scanner) Chunk() Chunk {
	return s.chunk
}

// Err returns the first error encountered while scanning, if any.
// Reaching IEND or the end of the buffer is not an error.
func (s *Scanner) Err() error {
	return s.err
}

// Offset returns the position of the next unread byte.
func (s *Scanner) Offset() int {
	return s.off
}

// All returns an iterator over the remaining chunks. Errors stop the
// iteration and are reported by [Scanner.Err].
func (s *Scanner) All() iter.Seq[Chunk] {
	return func(yield func(Chunk) bool) {
		for s.Next() {
			if !yield(s.chunk) {
				return
			}
		}
	}
}

func (s *Scanner) fail(err error) bool {
	s.err = err
	s.done = true
	s.chunk = Chunk{}
	return false
}
