// SPDX-License-Identifier: EPL-2.0

package processor

import (
	"fmt"

	"github.com/ik5/sampler/dsp"
)

// Config is what a processor needs from its host.
type Config struct {
	SampleRate float64
	// Seed feeds noise based processors.
	Seed uint64
}

// unit is one DSP implementation. process runs at the unit's own rate, so
// oversampled units see BlockSizeOS frames per call.
type unit interface {
	reset()
	process(fp *[MaxFloatParams]float32, ip *[MaxIntParams]int32, left, right []float32)
}

// Processor runs one unit over a block, optionally at twice the sample
// rate, and applies the dry/wet mix.
type Processor struct {
	typ         Type
	st          *Storage
	oversampled bool

	u  unit
	os dsp.Oversampler

	dryL, dryR dsp.Block
}

// New builds the processor for t reading its parameters from st. TypeNone
// yields a nil processor and no error.
func New(t Type, cfg Config, st *Storage, oversampled bool) (*Processor, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, int(t))
	}
	if t == TypeNone {
		return nil, nil
	}
	if st == nil {
		return nil, ErrNilStorage
	}
	if cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSampleRate, cfg.SampleRate)
	}

	rate := cfg.SampleRate
	if oversampled {
		rate *= 2
	}
	p := &Processor{
		typ:         t,
		st:          st,
		oversampled: oversampled,
		u:           definitions[t].newUnit(unitConfig{rate: float32(rate), seed: cfg.Seed}),
	}
	p.Init()
	return p, nil
}

func (p *Processor) Type() Type { return p.typ }

func (p *Processor) Oversampled() bool { return p.oversampled }

// Storage is the parameter block the processor reads.
func (p *Processor) Storage() *Storage { return p.st }

// Rebind points the processor at another storage of the same type.
func (p *Processor) Rebind(st *Storage) {
	if st != nil {
		p.st = st
	}
}

// InitParams loads every parameter and the mix to its declared default.
func (p *Processor) InitParams() {
	p.st.Type = p.typ
	p.st.LoadDefaults()
}

// Init clears the processing state.
func (p *Processor) Init() {
	p.u.reset()
	p.os.Reset()
}

// Process runs one block in place. A nil processor leaves the block alone.
func (p *Processor) Process(left, right *dsp.Block) {
	if p == nil {
		return
	}

	mix := dsp.Clamp(p.st.Mix, 0, 1)
	if mix <= 0 {
		return
	}
	p.dryL, p.dryR = *left, *right

	if p.oversampled {
		p.os.Upsample(left[:], right[:])
		p.u.process(&p.st.FloatParams, &p.st.IntParams, p.os.Left[:], p.os.Right[:])
		p.os.Downsample(left[:], right[:])
	} else {
		p.u.process(&p.st.FloatParams, &p.st.IntParams, left[:], right[:])
	}

	dsp.BlendBlock(left[:], p.dryL[:], mix)
	dsp.BlendBlock(right[:], p.dryR[:], mix)
}
