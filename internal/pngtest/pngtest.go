// Package pngtest builds small in-memory PNG containers for tests.
// Only the chunk framing is produced; the images carry no pixel data.
package pngtest

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"

	"github.com/klauspost/compress/zlib"
)

var signature = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

// Chunk frames data as a single chunk of the given type, CRC included.
func Chunk(typ string, data []byte) []byte {
	buf := make([]byte, 0, 12+len(data))
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(data)))
	buf = append(buf, typ...)
	buf = append(buf, data...)
	crc := crc32.NewIEEE()
	crc.Write([]byte(typ))
	crc.Write(data)
	return binary.BigEndian.AppendUint32(buf, crc.Sum32())
}

// File concatenates the signature, the given chunks and a closing IEND.
func File(chunks ...[]byte) []byte {
	out := append([]byte{}, signature...)
	out = append(out, Chunk("IHDR", make([]byte, 13))...)
	for _, c := range chunks {
		out = append(out, c...)
	}
	return append(out, Chunk("IEND", nil)...)
}

// Raw concatenates the signature and the given chunks without adding
// IHDR or IEND.
func Raw(chunks ...[]byte) []byte {
	out := append([]byte{}, signature...)
	for _, c := range chunks {
		out = append(out, c...)
	}
	return out
}

// Text builds a tEXt chunk. keyword and text are written byte for byte.
func Text(keyword, text string) []byte {
	data := append([]byte(keyword), 0)
	data = append(data, text...)
	return Chunk("tEXt", data)
}

// ZText builds a zTXt chunk with text deflated using compression method 0.
func ZText(keyword, text string) []byte {
	data := append([]byte(keyword), 0, 0)
	data = append(data, Deflate([]byte(text))...)
	return Chunk("zTXt", data)
}

// IText builds an iTXt chunk. When compressed is true the text is deflated
// and the compression flag is set.
func IText(keyword, language, translated, text string, compressed bool) []byte {
	data := append([]byte(keyword), 0)
	payload := []byte(text)
	if compressed {
		data = append(data, 1, 0)
		payload = Deflate(payload)
	} else {
		data = append(data, 0, 0)
	}
	data = append(data, language...)
	data = append(data, 0)
	data = append(data, translated...)
	data = append(data, 0)
	data = append(data, payload...)
	return Chunk("iTXt", data)
}

// Deflate returns b as a zlib stream.
func Deflate(b []byte) []byte {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write(b); err != nil {
		panic(err)
	}
	if err := w.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}
