// SPDX-License-Identifier: EPL-2.0

// Package engine holds the mapping hierarchy: a Patch of NumParts Parts,
// each Part a list of Groups, each Group a list of Zones. A Zone maps up to
// MaxSamplesPerZone samples onto a key and velocity range and carries the
// processor, modulator and routing settings its voices are built from.
//
// Containers never shift their elements: removing a Group or Zone leaves a
// tombstone so every other index stays valid. Children keep a non-owning
// handle to their parent so voices can reach engine services such as
// tuning and the sample rate.
//
// Everything here is mutated on the control side. The audio side only reads
// zones and adjusts their voice bookkeeping.
package engine
