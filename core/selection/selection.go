// Package selection chooses which decoded textual chunks are tried as the
// embedded character card.
package selection

import (
	"strings"

	"github.com/leofalp/characard/core/textchunk"
)

// ReservedKeyword is the keyword under which character cards are embedded.
const ReservedKeyword = "chara"

// Select returns the candidates to try, in order.
//
// If any candidate's keyword equals keyword (case-insensitively), only the
// last such candidate is returned: a card embedded again later in the file
// replaces the earlier one. Otherwise every candidate is returned in file
// order. That fallback is a heuristic; an unrelated text chunk that happens
// to hold JSON will be accepted as the card.
//
// An empty keyword means ReservedKeyword. The input is not modified.
func Select(cands []textchunk.Candidate, keyword string) []textchunk.Candidate {
	if keyword == "" {
		keyword = ReservedKeyword
	}
	for i := len(cands) - 1; i >= 0; i-- {
		if strings.EqualFold(cands[i].Keyword, keyword) {
			return []textchunk.Candidate{cands[i]}
		}
	}
	if len(cands) == 0 {
		return nil
	}
	return append([]textchunk.Candidate(nil), cands...)
}

// Texts returns the Text field of each candidate.
func Texts(cands []textchunk.Candidate) []string {
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.Text
	}
	return out
}
