// Package channels derives the mixing console input list from an equipment
// snapshot.
//
// Derive walks the stage cells back to front and left to right, emitting the
// instrument channels of each cell (channel order) followed by its vocal
// channels (member sort order). Instruments and vocals without a stage
// position follow as an unplaced group, and ambient microphones close the
// list. Channel numbers are assigned 1..N afterwards, so the same snapshot
// always produces the same numbering.
package channels
