package textchunk

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"iter"
	"unicode/utf8"

	"github.com/klauspost/compress/zlib"
	"golang.org/x/text/encoding/charmap"

	"github.com/leofalp/characard/core/pngchunk"
)

// Kind identifies how a chunk's text is encoded.
type Kind int

const (
	// KindOther is any chunk that carries no text.
	KindOther Kind = iota
	// KindPlain is a tEXt chunk.
	KindPlain
	// KindCompressed is a zTXt chunk.
	KindCompressed
	// KindInternational is an iTXt chunk.
	KindInternational
)

// Chunk type tags of the textual kinds.
const (
	TypePlain         = "tEXt"
	TypeCompressed    = "zTXt"
	TypeInternational = "iTXt"
)

// CompressionDeflate is the only compression method defined for zTXt and
// iTXt: a zlib stream.
const CompressionDeflate byte = 0

// DefaultMaxInflatedSize bounds the decompressed size of a single chunk.
const DefaultMaxInflatedSize = 64 << 20

var (
	// ErrNotTextual is returned by Decode for chunk types that carry no text.
	ErrNotTextual = errors.New("characard: not a textual chunk")

	// ErrMalformed is returned when a textual chunk's field layout is broken.
	ErrMalformed = errors.New("characard: malformed textual chunk")

	// ErrUnsupportedCompression is returned for a compression method other
	// than CompressionDeflate.
	ErrUnsupportedCompression = errors.New("characard: unsupported compression method")

	// ErrInflateLimit is returned when a compressed payload grows beyond the
	// configured limit.
	ErrInflateLimit = errors.New("characard: inflated text exceeds limit")
)

// KindOf maps a chunk type tag to its Kind.
func KindOf(tag string) Kind {
	switch tag {
	case TypePlain:
		return KindPlain
	case TypeCompressed:
		return KindCompressed
	case TypeInternational:
		return KindInternational
	default:
		return KindOther
	}
}

// String returns the chunk type tag for textual kinds and "other" otherwise.
func (k Kind) String() string {
	switch k {
	case KindPlain:
		return TypePlain
	case KindCompressed:
		return TypeCompressed
	case KindInternational:
		return TypeInternational
	default:
		return "other"
	}
}

// Candidate is the decoded content of one textual chunk.
type Candidate struct {
	Kind    Kind
	Keyword string
	Text    string

	// Language and TranslatedKeyword are only set for iTXt chunks.
	Language          string
	TranslatedKeyword string
}

// Decoder decodes textual chunks. The zero value uses DefaultMaxInflatedSize.
type Decoder struct {
	// MaxInflatedSize caps the output of a single decompression.
	// Zero or negative means DefaultMaxInflatedSize.
	MaxInflatedSize int64
}

// Decode decodes c using a zero Decoder.
func Decode(c pngchunk.Chunk) (Candidate, error) {
	return Decoder{}.Decode(c)
}

// DecodeAll decodes every chunk of seq using a zero Decoder.
func DecodeAll(seq iter.Seq[pngchunk.Chunk], onDrop func(pngchunk.Chunk, error)) []Candidate {
	return Decoder{}.DecodeAll(seq, onDrop)
}

// Decode turns a single chunk into a Candidate. Non-textual chunks yield
// ErrNotTextual; every other error means the chunk should be dropped.
func (d Decoder) Decode(c pngchunk.Chunk) (Candidate, error) {
	var (
		cand Candidate
		err  error
	)
	switch KindOf(c.Type) {
	case KindPlain:
		cand, err = decodePlain(c.Data)
	case KindCompressed:
		cand, err = d.decodeCompressed(c.Data)
	case KindInternational:
		cand, err = d.decodeInternational(c.Data)
	default:
		return Candidate{}, ErrNotTextual
	}
	if err != nil {
		return Candidate{}, fmt.Errorf("%s at offset %d: %w", c.Type, c.Offset, err)
	}
	return cand, nil
}

// DecodeAll consumes seq and returns the candidates of the textual chunks in
// order. Chunks that fail to decode are reported to onDrop, which may be nil,
// and skipped.
func (d Decoder) DecodeAll(seq iter.Seq[pngchunk.Chunk], onDrop func(pngchunk.Chunk, error)) []Candidate {
	var out []Candidate
	for c := range seq {
		cand, err := d.Decode(c)
		if errors.Is(err, ErrNotTextual) {
			continue
		}
		if err != nil {
			if onDrop != nil {
				onDrop(c, err)
			}
			continue
		}
		out = append(out, cand)
	}
	return out
}

func decodePlain(data []byte) (Candidate, error) {
	keyword, rest, ok := bytes.Cut(data, []byte{0})
	if !ok {
		return Candidate{}, fmt.Errorf("%w: keyword separator missing", ErrMalformed)
	}
	return Candidate{
		Kind:    KindPlain,
		Keyword: latin1(keyword),
		Text:    latin1(rest),
	}, nil
}

func (d Decoder) decodeCompressed(data []byte) (Candidate, error) {
	keyword, rest, ok := bytes.Cut(data, []byte{0})
	if !ok {
		return Candidate{}, fmt.Errorf("%w: keyword separator missing", ErrMalformed)
	}
	if len(rest) < 1 {
		return Candidate{}, fmt.Errorf("%w: compression method missing", ErrMalformed)
	}
	if rest[0] != CompressionDeflate {
		return Candidate{}, fmt.Errorf("%w: %d", ErrUnsupportedCompression, rest[0])
	}
	text, err := d.inflate(rest[1:])
	if err != nil {
		return Candidate{}, err
	}
	return Candidate{
		Kind:    KindCompressed,
		Keyword: latin1(keyword),
		Text:    latin1(text),
	}, nil
}

func (d Decoder) decodeInternational(data []byte) (Candidate, error) {
	keyword, rest, ok := bytes.Cut(data, []byte{0})
	if !ok {
		return Candidate{}, fmt.Errorf("%w: keyword separator missing", ErrMalformed)
	}
	if len(rest) < 2 {
		return Candidate{}, fmt.Errorf("%w: compression fields missing", ErrMalformed)
	}
	flag, method := rest[0], rest[1]
	language, rest, ok := bytes.Cut(rest[2:], []byte{0})
	if !ok {
		return Candidate{}, fmt.Errorf("%w: language tag separator missing", ErrMalformed)
	}
	translated, text, ok := bytes.Cut(rest, []byte{0})
	if !ok {
		return Candidate{}, fmt.Errorf("%w: translated keyword separator missing", ErrMalformed)
	}

	switch flag {
	case 0:
	case 1:
		if method != CompressionDeflate {
			return Candidate{}, fmt.Errorf("%w: %d", ErrUnsupportedCompression, method)
		}
		inflated, err := d.inflate(text)
		if err != nil {
			return Candidate{}, err
		}
		text = inflated
	default:
		return Candidate{}, fmt.Errorf("%w: compression flag %d", ErrMalformed, flag)
	}

	return Candidate{
		Kind:              KindInternational,
		Keyword:           latin1(keyword),
		Text:              utf8String(text),
		Language:          string(language),
		TranslatedKeyword: utf8String(translated),
	}, nil
}

func (d Decoder) inflate(compressed []byte) ([]byte, error) {
	limit := d.MaxInflatedSize
	if limit <= 0 {
		limit = DefaultMaxInflatedSize
	}

	r, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("inflate: %w", err)
	}
	defer r.Close()

	out, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("inflate: %w", err)
	}
	if int64(len(out)) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrInflateLimit, limit)
	}
	return out, nil
}

// latin1 decodes ISO-8859-1 bytes; every byte maps to the rune of the same
// value.
func latin1(b []byte) string {
	s, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err == nil {
		return string(s)
	}
	runes := make([]rune, len(b))
	for i, c := range b {
		runes[i] = rune(c)
	}
	return string(runes)
}

// utf8String decodes b as UTF-8, replacing invalid sequences with U+FFFD.
func utf8String(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	return string(bytes.ToValidUTF8(b, []byte(string(utf8.RuneError))))
}
