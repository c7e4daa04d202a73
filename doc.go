// Package characard extracts the character card embedded in a PNG image.
//
// Card editors store the persona as JSON text in a textual PNG chunk keyed
// "chara". [Extractor.Extract] scans the chunk framing, decodes the tEXt,
// zTXt and iTXt chunks, picks the authoritative payload (the last "chara"
// chunk, or every textual chunk in file order when there is none) and parses
// it, falling back to the first-brace to last-brace span when the text
// carries noise.
//
//	res, err := characard.New().ExtractFile(ctx, "aria.png")
//	if errors.Is(err, characard.ErrNoEmbeddedData) {
//	    // plain image, no card
//	}
//	fmt.Println(res.RawText)
//
// The pipeline stages live in core/pngchunk, core/textchunk,
// core/selection and core/parse; core/card offers a typed view of the
// recovered value.
package characard
