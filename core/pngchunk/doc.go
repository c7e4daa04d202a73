// Package pngchunk walks the chunk framing of a PNG-format byte stream.
//
// A PNG file is the fixed 8-byte [Signature] followed by a sequence of
// length-prefixed, typed records ("chunks"). This package only understands
// that framing: it does not validate image headers, pixel data or CRCs, and
// it never writes chunks back.
//
// The main entry point is [NewScanner], which checks the signature and
// returns a [Scanner] that yields one [Chunk] per call to [Scanner.Next]
// until the IEND marker or the end of the buffer is reached:
//
//	sc, err := pngchunk.NewScanner(data)
//	if err != nil {
//	    return err // ErrNotAContainer
//	}
//	for sc.Next() {
//	    c := sc.Chunk()
//	    fmt.Println(c.Type, len(c.Data))
//	}
//	if err := sc.Err(); err != nil {
//	    return err // ErrTruncatedChunk
//	}
package pngchunk
