// Package textutil provides small text helpers shared by the rider, stage plot
// and lookup code.
//
// The primary use cases are:
//   - Truncating labels to a character budget with an ellipsis
//   - Title casing enum labels for display
//   - Scoring how closely a lookup result matches a search term
//   - Sanitizing band names into safe output filenames
package textutil
