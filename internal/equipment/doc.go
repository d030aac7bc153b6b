// Package equipment holds the band inventory domain model: members,
// instruments, amplifiers, microphones and PA equipment, plus the repository
// that persists them through the record store.
//
// Snapshot is the read-only view consumed by the channel list deriver, the
// stage layout engine and the rider assembler. Its Index resolves references
// tolerantly: a dangling id behaves exactly like an absent one, so deleting a
// member never breaks microphones that still point at it.
package equipment
