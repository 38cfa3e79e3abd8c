// SPDX-License-Identifier: EPL-2.0

package voice

import (
	"fmt"
	"sync"

	"github.com/gopxl/beep"

	"github.com/ik5/sampler/dsp/processor"
	"github.com/ik5/sampler/engine"
)

// Config sizes a Pool.
type Config struct {
	SampleRate float64
	// Polyphony is the number of voices that may play before stealing
	// starts.
	Polyphony int
	// Headroom is the number of extra slots for stolen voices that are
	// still fading out.
	Headroom int
	// Oversample runs zone processors at twice the sample rate.
	Oversample bool
	// Seed makes LFO noise and noise processors reproducible.
	Seed uint64
}

func DefaultConfig() Config {
	return Config{
		SampleRate: 48000,
		Polyphony:  64,
		Headroom:   8,
	}
}

// Pool owns every voice and turns note events into voices. It is used from
// the audio goroutine only.
type Pool struct {
	cfg       Config
	rate      beep.SampleRate
	endpoints *Endpoints

	voices []Voice
	active int
	age    uint64

	matches []*engine.Zone
	// held velocity+1 per part and key, 0 when the key is up
	held [engine.NumParts][128]uint8

	// free processors per type, filled by Install
	cache [processor.NumTypes][]*processor.Processor

	warmMu sync.Mutex
	// chain slots per voice covered for each type
	warmed [processor.NumTypes]int
}

func NewPool(cfg Config) (*Pool, error) {
	if cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %v", ErrInvalidConfig, cfg.SampleRate)
	}
	if cfg.Polyphony < 1 || cfg.Headroom < 0 || cfg.Polyphony+cfg.Headroom > engine.MaxVoices {
		return nil, fmt.Errorf("%w: polyphony %d headroom %d", ErrInvalidConfig, cfg.Polyphony, cfg.Headroom)
	}
	ep := NewEndpoints()
	if err := ep.Validate(); err != nil {
		return nil, err
	}

	p := &Pool{
		cfg:       cfg,
		rate:      beep.SampleRate(int(cfg.SampleRate)),
		endpoints: ep,
		voices:    make([]Voice, cfg.Polyphony+cfg.Headroom),
		matches:   make([]*engine.Zone, 0, 64),
	}
	for i := range p.voices {
		p.voices[i].index = i
	}
	return p, nil
}

func (p *Pool) Endpoints() *Endpoints { return p.endpoints }

// Len is the number of voice slots.
func (p *Pool) Len() int { return len(p.voices) }

func (p *Pool) Voice(i int) *Voice { return &p.voices[i] }

// Active is the number of voices that are not idle.
func (p *Pool) Active() int { return p.active }

// Sounding counts voices whose gate is still open.
func (p *Pool) Sounding() int {
	n := 0
	for i := range p.voices {
		if p.voices[i].state == StateSounding {
			n++
		}
	}
	return n
}

// Warm is a batch of processors built off the audio goroutine, ready to be
// handed to a Pool with Install.
type Warm struct {
	procs [processor.NumTypes][]*processor.Processor
	prev  [processor.NumTypes]int
}

// Len is the number of processors in w.
func (w *Warm) Len() int {
	n := 0
	for _, procs := range w.procs {
		n += len(procs)
	}
	return n
}

// Prepare builds, for every type in z's chain, one processor per voice slot
// and chain slot using it that the pool was not prepared for yet. It may
// run on any goroutine; the result goes to the audio goroutine through
// Install, or back through Forget when it never gets there.
func (p *Pool) Prepare(z *engine.Zone) (*Warm, error) {
	var need [processor.NumTypes]int
	for i := range z.Processors {
		if t := z.Processors[i].Type; t != processor.TypeNone && t.Valid() {
			need[t]++
		}
	}

	p.warmMu.Lock()
	defer p.warmMu.Unlock()

	w := &Warm{}
	for t := range need {
		if need[t] <= p.warmed[t] {
			continue
		}
		n := (need[t] - p.warmed[t]) * len(p.voices)
		free := make([]*processor.Processor, 0, processor.MaxSlots*len(p.voices))
		for k := range n {
			proc, err := p.newProcessor(processor.Type(t), k)
			if err != nil {
				return nil, err
			}
			free = append(free, proc)
		}
		w.procs[t] = free
	}
	for t := range w.procs {
		if w.procs[t] != nil {
			w.prev[t] = p.warmed[t]
			p.warmed[t] = need[t]
		}
	}
	return w, nil
}

// Forget undoes a Prepare whose batch was never installed.
func (p *Pool) Forget(w *Warm) {
	if w == nil {
		return
	}
	p.warmMu.Lock()
	defer p.warmMu.Unlock()
	for t := range w.procs {
		if w.procs[t] != nil {
			p.warmed[t] = w.prev[t]
		}
	}
}

// Install moves the processors of w into the pool. It runs on the audio
// goroutine and does not allocate.
func (p *Pool) Install(w *Warm) {
	if w == nil {
		return
	}
	for t, procs := range w.procs {
		if procs == nil {
			continue
		}
		if p.cache[t] == nil {
			p.cache[t] = procs
			continue
		}
		for _, proc := range procs {
			p.putProcessor(proc)
		}
	}
}

// Prewarm is Prepare followed by Install, for callers that own both sides.
func (p *Pool) Prewarm(z *engine.Zone) error {
	w, err := p.Prepare(z)
	if err != nil {
		return err
	}
	p.Install(w)
	return nil
}

func (p *Pool) newProcessor(t processor.Type, n int) (*processor.Processor, error) {
	st := processor.DefaultStorage(t)
	cfg := processor.Config{SampleRate: p.cfg.SampleRate, Seed: p.cfg.Seed + uint64(n)}
	return processor.New(t, cfg, &st, p.cfg.Oversample)
}

// getProcessor takes a free processor of type t. A type that was never
// installed leaves the slot empty, which passes audio through.
func (p *Pool) getProcessor(t processor.Type) *processor.Processor {
	if !t.Valid() {
		return nil
	}
	free := p.cache[t]
	if len(free) == 0 {
		return nil
	}
	proc := free[len(free)-1]
	p.cache[t] = free[:len(free)-1]
	return proc
}

func (p *Pool) putProcessor(proc *processor.Processor) {
	t := proc.Type()
	if free := p.cache[t]; free != nil && len(free) < cap(free) && proc.Oversampled() == p.cfg.Oversample {
		p.cache[t] = append(free, proc)
	}
}

// resolveChain gives v a processor per non-none slot of z, reusing what
// the voice already holds when the type matches.
func (p *Pool) resolveChain(v *Voice, z *engine.Zone) {
	for i := range v.chain.Slots {
		t := z.Processors[i].Type
		proc := v.chain.Slots[i]
		if proc != nil && (proc.Type() != t || proc.Oversampled() != p.cfg.Oversample) {
			p.putProcessor(proc)
			proc = nil
		}
		if proc == nil && t != processor.TypeNone {
			proc = p.getProcessor(t)
		}
		if proc != nil {
			proc.Rebind(&v.live.Processors[i])
		}
		v.chain.Slots[i] = proc
	}
}

func (p *Pool) oldest(state State) int {
	best := -1
	for i := range p.voices {
		v := &p.voices[i]
		if v.state == state && (best < 0 || v.age < p.voices[best].age) {
			best = i
		}
	}
	return best
}

// allocate returns a free slot, stealing when the pool is at its polyphony.
func (p *Pool) allocate() int {
	for p.active >= p.cfg.Polyphony {
		if i := p.oldest(StateSilent); i >= 0 {
			p.reclaim(i)
			continue
		}
		if i := p.oldest(StateReleased); i >= 0 {
			p.reclaim(i)
			continue
		}
		// the stolen voice fades out in a headroom slot
		if i := p.oldest(StateSounding); i >= 0 {
			p.voices[i].FastRelease()
		}
		break
	}
	if i := p.oldest(StateIdle); i >= 0 {
		return i
	}

	// no slot left at all
	i := p.oldest(StateSilent)
	if i < 0 {
		i = p.oldest(StateReleased)
	}
	if i < 0 {
		i = p.oldest(StateSounding)
	}
	p.reclaim(i)
	return i
}

func (p *Pool) reclaim(i int) {
	v := &p.voices[i]
	if v.state == StateIdle {
		return
	}
	v.finish()
	p.active--
}

// chokeGroup fast releases voices of other zones in part sharing group.
func (p *Pool) chokeGroup(part *engine.Part, z *engine.Zone, group int) {
	for i := range p.voices {
		v := &p.voices[i]
		if v.zone == nil || v.zone == z || v.part != part {
			continue
		}
		if v.zone.Mapping.ExclusiveGroup == group {
			v.FastRelease()
		}
	}
}

func (p *Pool) start(part *engine.Part, z *engine.Zone, key, vel int) bool {
	if z.Services() == nil {
		return false
	}
	idx := z.NextSampleIndex()
	if idx < 0 {
		return false
	}
	if g := z.Mapping.ExclusiveGroup; g != 0 {
		p.chokeGroup(part, z, g)
	}

	slot := p.allocate()
	if err := z.AddVoice(slot); err != nil {
		return false
	}
	v := &p.voices[slot]
	p.resolveChain(v, z)

	p.age++
	tr := trigger{
		zone:        z,
		part:        part,
		sampleIndex: idx,
		key:         key,
		vel:         vel,
		age:         p.age,
		rate:        p.rate,
		seed:        p.cfg.Seed + p.age*uint64(engine.LFOsPerZone),
	}
	v.attack(&tr, p.endpoints)
	p.active++
	return true
}

// NoteOn starts a voice for every zone of part that answers key and vel and
// triggers on note on. It returns the number of voices started.
func (p *Pool) NoteOn(part *engine.Part, key, vel int) int {
	if key < 0 || key > 127 || part.Channel < 0 || part.Channel >= engine.NumParts {
		return 0
	}
	vel = max(0, min(127, vel))
	p.held[part.Channel][key] = uint8(vel) + 1

	p.matches = part.MatchingZones(key, vel, p.matches[:0])
	n := 0
	for _, z := range p.matches {
		if z.PlayMode() == engine.PlayOnRelease {
			continue
		}
		if p.start(part, z, key, vel) {
			n++
		}
	}
	return n
}

// NoteOff releases the normal mode voices of part playing key and starts
// the zones that trigger on release with the note on velocity.
func (p *Pool) NoteOff(part *engine.Part, key int) int {
	if key < 0 || key > 127 || part.Channel < 0 || part.Channel >= engine.NumParts {
		return 0
	}
	for i := range p.voices {
		v := &p.voices[i]
		if v.part == part && v.key == key {
			v.Release()
		}
	}

	held := p.held[part.Channel][key]
	p.held[part.Channel][key] = 0
	if held == 0 {
		return 0
	}
	vel := int(held) - 1

	p.matches = part.MatchingZones(key, vel, p.matches[:0])
	n := 0
	for _, z := range p.matches {
		if z.PlayMode() == engine.PlayOnRelease && p.start(part, z, key, vel) {
			n++
		}
	}
	return n
}

// ReleaseAll releases every sounding voice, as on an all notes off.
func (p *Pool) ReleaseAll() {
	for i := range p.voices {
		p.voices[i].Release()
	}
	p.held = [engine.NumParts][128]uint8{}
}

// Reset reclaims every voice at once.
func (p *Pool) Reset() {
	for i := range p.voices {
		p.reclaim(i)
	}
	p.held = [engine.NumParts][128]uint8{}
}

// ReleaseZone reclaims every voice playing z, so it can be removed.
func (p *Pool) ReleaseZone(z *engine.Zone) {
	for i := range p.voices {
		if p.voices[i].zone == z {
			p.reclaim(i)
		}
	}
}

// Process renders every live voice and reclaims those that finished. The
// caller mixes voices whose Rendered reports true.
func (p *Pool) Process() {
	for i := range p.voices {
		v := &p.voices[i]
		if v.state == StateSilent {
			p.reclaim(i)
			continue
		}
		v.rendered = v.Process()
	}
}
