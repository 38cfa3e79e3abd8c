// SPDX-License-Identifier: EPL-2.0

// Package voice plays zones. A Voice renders one triggered instance of a
// zone: it runs the zone's LFOs and envelopes, evaluates its modulation
// matrix, plays the sample and pushes the block through the processor
// chain. A Pool owns a fixed set of voices and handles note events,
// exclusive groups and voice stealing.
//
// Everything reached from Pool.Process, and from NoteOn and NoteOff once the
// pool has been prewarmed for a zone, runs without allocating.
package voice
