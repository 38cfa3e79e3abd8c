// SPDX-License-Identifier: EPL-2.0

// Package modulators holds the per-zone LFO and envelope settings and the
// per-voice evaluators that turn them into modulation sources.
//
// Settings (ModulatorStorage, AdsrStorage) are plain values copied into each
// voice so the matrix can modulate them. Evaluators run once per dsp block
// and publish the value at the end of the block in Output; Envelope also
// keeps the value at the start of the block so callers can ramp between
// the two.
package modulators
