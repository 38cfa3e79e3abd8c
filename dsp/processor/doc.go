// SPDX-License-Identifier: EPL-2.0

// Package processor implements the per-zone DSP units and the chain that
// runs them.
//
// The set of processors is closed. Each Type has a stable streaming name,
// which is what persisted configurations refer to, and a Description of its
// parameters. A Processor reads its parameters from a Storage every block,
// so the modulation matrix can write them in place, and blends its output
// with the dry signal by Storage.Mix.
//
//	st := processor.DefaultStorage(processor.TypeCytomicSVF)
//	p, err := processor.New(processor.TypeCytomicSVF, processor.Config{SampleRate: 48000}, &st, false)
//	if err != nil {
//		return err
//	}
//	p.Init()
//	p.Process(&left, &right)
//
// New returns a nil *Processor for TypeNone; a nil Processor passes audio
// through untouched, as does an empty Chain slot.
package processor
