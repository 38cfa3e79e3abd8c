// SPDX-License-Identifier: EPL-2.0

package sampler

import (
	"fmt"

	"github.com/ik5/sampler/dsp"
	"github.com/ik5/sampler/voice"
)

// Config sizes an Engine.
type Config struct {
	SampleRate float64
	// Polyphony is how many voices play before the oldest is stolen.
	Polyphony int
	// Headroom is extra voice slots where stolen voices fade out.
	Headroom   int
	Oversample bool
	Seed       uint64
	// ControlQueue is the capacity of the Post queue.
	ControlQueue int
	// Tuning applies to NoteToPitch. Nil is equal temperament.
	Tuning *dsp.Tuning
}

func DefaultConfig() Config {
	vc := voice.DefaultConfig()
	return Config{
		SampleRate:   vc.SampleRate,
		Polyphony:    vc.Polyphony,
		Headroom:     vc.Headroom,
		ControlQueue: 256,
	}
}

func (c Config) Validate() error {
	if c.SampleRate < 8000 || c.SampleRate > 384000 {
		return fmt.Errorf("%w: sample rate %v", ErrInvalidConfig, c.SampleRate)
	}
	if c.ControlQueue < 1 {
		return fmt.Errorf("%w: control queue %d", ErrInvalidConfig, c.ControlQueue)
	}
	return nil
}

func (c Config) voiceConfig() voice.Config {
	return voice.Config{
		SampleRate: c.SampleRate,
		Polyphony:  c.Polyphony,
		Headroom:   c.Headroom,
		Oversample: c.Oversample,
		Seed:       c.Seed,
	}
}
