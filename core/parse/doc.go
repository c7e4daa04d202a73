// Package parse recovers a JSON value from the text embedded in a character
// card. Embedded text in the wild often carries leading or trailing noise, so
// each candidate goes through a layered strategy (strict parse, then the
// first-brace to last-brace span) before the next candidate is tried.
// Accepted values always come from an exact parse of text that is really
// present; the content-synthesising jsonrepair tier is opt-in via
// [WithRepair].
//
// The main entry point is [Recover]. [Strict] and [BraceSpan] expose the
// individual steps.
package parse
