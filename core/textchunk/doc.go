// Package textchunk decodes the three textual PNG chunk kinds into keyword /
// text pairs.
//
//   - tEXt: keyword NUL text, both ISO-8859-1.
//   - zTXt: keyword NUL method zlib-stream; the inflated text is ISO-8859-1.
//   - iTXt: keyword NUL flag method language NUL translated NUL text; the
//     text is UTF-8 and optionally zlib-compressed.
//
// [Decode] handles a single chunk and reports [ErrNotTextual] for every other
// chunk type. [DecodeAll] is the filtering stage used by the extractor: it
// skips non-textual chunks silently and drops chunks that fail to decode
// without aborting the scan.
package textchunk
