// Package utils provides small helpers shared by the characard packages:
// JSON rendering that leaves HTML characters alone ([JSONToString]),
// rune-safe truncation for diagnostics ([TruncateString]) and a wall-clock
// [Timer] used to measure extraction latency.
package utils
