// SPDX-License-Identifier: EPL-2.0

package processor

import "github.com/ik5/sampler/dsp"

// MaxSlots is the number of processors in a zone chain.
const MaxSlots = 4

// RoutingPath selects how chain slots are wired together.
type RoutingPath int

const (
	// RouteLinear runs 1 -> 2 -> 3 -> 4.
	RouteLinear RoutingPath = iota
	// RouteParallel runs every slot on the input and averages them.
	RouteParallel
	// RoutePairs runs 1 -> 2 and 3 -> 4 in parallel and averages the pairs
	// that hold a processor.
	RoutePairs

	numRoutingPaths
)

var routingPathNames = [...]string{"linear", "parallel", "pairs"}

func (r RoutingPath) String() string {
	if r < 0 || r >= numRoutingPaths {
		return "unknown"
	}
	return routingPathNames[r]
}

// Chain runs up to MaxSlots processors over a stereo block. Nil slots pass
// audio through.
type Chain struct {
	Slots [MaxSlots]*Processor
	Path  RoutingPath

	inL, inR   dsp.Block
	accL, accR dsp.Block
	tmpL, tmpR dsp.Block
}

// Empty reports whether no slot holds a processor.
func (c *Chain) Empty() bool {
	for _, p := range c.Slots {
		if p != nil {
			return false
		}
	}
	return true
}

// Init clears the state of every processor in the chain.
func (c *Chain) Init() {
	for _, p := range c.Slots {
		if p != nil {
			p.Init()
		}
	}
}

// Process runs one block in place.
func (c *Chain) Process(left, right *dsp.Block) {
	if c.Empty() {
		return
	}

	switch c.Path {
	case RouteParallel:
		c.inL, c.inR = *left, *right
		dsp.ClearBlock(c.accL[:], c.accR[:])
		n := 0
		for _, p := range c.Slots {
			if p == nil {
				continue
			}
			c.tmpL, c.tmpR = c.inL, c.inR
			p.Process(&c.tmpL, &c.tmpR)
			dsp.AccumulateBlock(c.accL[:], c.tmpL[:], 1)
			dsp.AccumulateBlock(c.accR[:], c.tmpR[:], 1)
			n++
		}
		c.average(left, right, n)
	case RoutePairs:
		c.inL, c.inR = *left, *right
		dsp.ClearBlock(c.accL[:], c.accR[:])
		n := 0
		for pair := 0; pair < MaxSlots; pair += 2 {
			if c.Slots[pair] == nil && c.Slots[pair+1] == nil {
				continue
			}
			c.tmpL, c.tmpR = c.inL, c.inR
			c.Slots[pair].Process(&c.tmpL, &c.tmpR)
			c.Slots[pair+1].Process(&c.tmpL, &c.tmpR)
			dsp.AccumulateBlock(c.accL[:], c.tmpL[:], 1)
			dsp.AccumulateBlock(c.accR[:], c.tmpR[:], 1)
			n++
		}
		c.average(left, right, n)
	default:
		for _, p := range c.Slots {
			p.Process(left, right)
		}
	}
}

func (c *Chain) average(left, right *dsp.Block, n int) {
	g := 1 / float32(n)
	for i := range left {
		left[i] = c.accL[i] * g
		right[i] = c.accR[i] * g
	}
}
