// Package icons supplies the glyph markup the stage plot draws.
//
// Glyphs are looked up by Key through a Fetcher. The embedded defaults can be
// overridden per file from a directory, and LoadSet fetches every key
// concurrently. A glyph that cannot be fetched becomes an empty string, which
// the stage plot renders as blank space.
package icons
