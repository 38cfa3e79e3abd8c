// SPDX-License-Identifier: EPL-2.0

package sampler

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/ik5/sampler/dsp"
	"github.com/ik5/sampler/engine"
	"github.com/ik5/sampler/formats"
	"github.com/ik5/sampler/sample"
	"github.com/ik5/sampler/voice"
)

// Engine renders a patch. See the package documentation for which methods
// belong to which goroutine.
type Engine struct {
	cfg      Config
	services *engine.StandardServices
	patch    *engine.Patch
	pool     *voice.Pool
	samples  *sample.Manager

	control chan func(*Engine)
	// posted changes that failed when they ran
	failures atomic.Uint64

	// control side view of the structure, guarded by mu
	mu     sync.Mutex
	zones  map[engine.ZoneID]int
	groups [engine.NumParts]*engine.Group

	busL, busR   [engine.NumParts]dsp.Block
	busUsed      [engine.NumParts]bool
	mainL, mainR dsp.Block
	blocks       uint64
}

// New builds an engine. A nil manager gets one with every built in format.
func New(cfg Config, samples *sample.Manager) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	pool, err := voice.NewPool(cfg.voiceConfig())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	services := &engine.StandardServices{Rate: cfg.SampleRate, Tuning: cfg.Tuning}
	patch, err := engine.NewPatch(services)
	if err != nil {
		return nil, err
	}
	if samples == nil {
		samples = sample.NewManager(formats.NewRegistry())
	}

	return &Engine{
		cfg:      cfg,
		services: services,
		patch:    patch,
		pool:     pool,
		samples:  samples,
		control:  make(chan func(*Engine), cfg.ControlQueue),
		zones:    map[engine.ZoneID]int{},
	}, nil
}

func (e *Engine) Config() Config            { return e.cfg }
func (e *Engine) Services() engine.Services { return e.services }
func (e *Engine) Samples() *sample.Manager  { return e.samples }
func (e *Engine) Patch() *engine.Patch      { return e.patch }
func (e *Engine) Pool() *voice.Pool         { return e.pool }
func (e *Engine) BlocksRendered() uint64    { return e.blocks }

// ControlFailures counts posted structural changes that could not be
// applied when they ran. The control helpers check what they can before
// posting, so this stays at zero unless the patch is edited behind them.
func (e *Engine) ControlFailures() uint64     { return e.failures.Load() }
func (e *Engine) Endpoints() *voice.Endpoints { return e.pool.Endpoints() }

// Post queues fn to run on the audio goroutine before the next block. It
// never blocks; a full queue returns ErrQueueFull.
func (e *Engine) Post(fn func(*Engine)) error {
	select {
	case e.control <- fn:
		return nil
	default:
		return ErrQueueFull
	}
}

// drain runs what was queued when the block started, so a function that
// posts again runs next block.
func (e *Engine) drain() {
	for n := len(e.control); n > 0; n-- {
		select {
		case fn := <-e.control:
			fn(e)
		default:
			return
		}
	}
}

func (e *Engine) part(channel int) *engine.Part {
	p, err := e.patch.Part(channel)
	if err != nil {
		return nil
	}
	return p
}

// NoteOn starts voices for key on a MIDI channel and returns how many.
// Velocity 0 is a note off.
func (e *Engine) NoteOn(channel, key, velocity int) int {
	p := e.part(channel)
	if p == nil {
		return 0
	}
	if velocity == 0 {
		return e.pool.NoteOff(p, key)
	}
	return e.pool.NoteOn(p, key, velocity)
}

// NoteOff releases key and returns how many on-release voices it started.
func (e *Engine) NoteOff(channel, key int) int {
	p := e.part(channel)
	if p == nil {
		return 0
	}
	return e.pool.NoteOff(p, key)
}

// ControlChange sets a controller from its 7 bit MIDI value. Controller
// 123, all notes off, releases every voice.
func (e *Engine) ControlChange(channel, cc, value int) {
	p := e.part(channel)
	if p == nil {
		return
	}
	if cc == 123 {
		e.AllNotesOff()
		return
	}
	p.SetCC(cc, float32(max(0, min(127, value)))/127, false)
}

// PitchBend sets the bend of a channel from the 14 bit MIDI value, 8192
// being centred.
func (e *Engine) PitchBend(channel, value int) {
	if p := e.part(channel); p != nil {
		p.SetPitchBend(float32(value-8192) / 8192)
	}
}

func (e *Engine) AllNotesOff() { e.pool.ReleaseAll() }

// Panic silences every voice at once.
func (e *Engine) Panic() { e.pool.Reset() }

// Process runs queued control functions and renders one block. The
// returned blocks are valid until the next call.
func (e *Engine) Process() (left, right *dsp.Block) {
	e.drain()
	e.patch.ProcessControllers()
	e.pool.Process()
	e.mix()
	e.blocks++
	return &e.mainL, &e.mainR
}

func (e *Engine) mix() {
	dsp.ClearBlock(e.mainL[:], e.mainR[:])
	for ch := range e.busL {
		if e.busUsed[ch] {
			dsp.ClearBlock(e.busL[ch][:], e.busR[ch][:])
			e.busUsed[ch] = false
		}
	}

	for i := range e.pool.Len() {
		v := e.pool.Voice(i)
		if !v.Rendered() || v.Zone() == nil {
			continue
		}
		l, r := v.Output()
		ch := v.Channel()
		if v.Zone().Output.RouteTo == engine.BusMain {
			dsp.AccumulateBlock(e.mainL[:], l[:], 1)
			dsp.AccumulateBlock(e.mainR[:], r[:], 1)
			continue
		}
		dsp.AccumulateBlock(e.busL[ch][:], l[:], 1)
		dsp.AccumulateBlock(e.busR[ch][:], r[:], 1)
		e.busUsed[ch] = true
	}

	for ch := range engine.NumParts {
		p := e.part(ch)
		// effect tails keep running on an empty bus
		if !e.busUsed[ch] && !hasEffects(p) {
			continue
		}
		e.busUsed[ch] = true
		p.ProcessEffects(&e.busL[ch], &e.busR[ch])
		dsp.AccumulateBlock(e.mainL[:], e.busL[ch][:], 1)
		dsp.AccumulateBlock(e.mainR[:], e.busR[ch][:], 1)
	}
}

func hasEffects(p *engine.Part) bool {
	for slot := range engine.MaxPartEffects {
		if _, ok := p.Effect(slot); ok {
			return true
		}
	}
	return false
}
