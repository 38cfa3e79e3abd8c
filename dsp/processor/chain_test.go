// SPDX-License-Identifier: EPL-2.0

package processor

import (
	"testing"

	"github.com/ik5/sampler/dsp"
)

func dryProcessor(t *testing.T, typ Type) *Processor {
	t.Helper()
	st := DefaultStorage(typ)
	st.Mix = 0
	p, err := New(typ, testConfig, &st, false)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestChainIdentity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		chain Chain
	}{
		{"empty linear", Chain{}},
		{"empty parallel", Chain{Path: RouteParallel}},
		{"dry linear", Chain{Slots: [MaxSlots]*Processor{nil, dryProcessor(t, TypeWaveShaper)}}},
		{"dry parallel", Chain{Path: RouteParallel, Slots: [MaxSlots]*Processor{dryProcessor(t, TypeSlewer), nil, dryProcessor(t, TypeBiquad)}}},
		{"dry pairs", Chain{Path: RoutePairs, Slots: [MaxSlots]*Processor{nil, nil, dryProcessor(t, TypeEQ3Band)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l, r dsp.Block
			sineInto(&l, &r, 0, 330)
			wantL, wantR := l, r
			tt.chain.Process(&l, &r)
			if l != wantL || r != wantR {
				t.Error("chain changed the signal")
			}
		})
	}
}

func TestChainParallelAverages(t *testing.T) {
	t.Parallel()

	st := DefaultStorage(TypeWaveShaper)
	st.FloatParams[2] = -96 // output gain of zero
	mute, err := New(TypeWaveShaper, testConfig, &st, false)
	if err != nil {
		t.Fatal(err)
	}

	c := Chain{Path: RouteParallel, Slots: [MaxSlots]*Processor{mute, dryProcessor(t, TypeSlewer)}}

	var l, r dsp.Block
	sineInto(&l, &r, 0, 330)
	in := l
	c.Process(&l, &r)
	for i := range l {
		if diff := l[i] - in[i]/2; diff > 1e-6 || diff < -1e-6 {
			t.Fatalf("sample %d = %v, want %v", i, l[i], in[i]/2)
		}
	}
}

func TestChainPairsSkipEmptyPair(t *testing.T) {
	t.Parallel()

	st := DefaultStorage(TypeWaveShaper)
	st.FloatParams[2] = -96
	mute, err := New(TypeWaveShaper, testConfig, &st, false)
	if err != nil {
		t.Fatal(err)
	}

	c := Chain{Path: RoutePairs, Slots: [MaxSlots]*Processor{mute}}
	var l, r dsp.Block
	sineInto(&l, &r, 0, 330)
	c.Process(&l, &r)
	for i := range l {
		if l[i] > 1e-6 || l[i] < -1e-6 {
			t.Fatalf("sample %d = %v, the empty pair leaked dry signal", i, l[i])
		}
	}
}

func TestChainLinearOrder(t *testing.T) {
	t.Parallel()

	// A generator after a filter replaces the signal; before it, the filter
	// shapes the generator.
	gen := DefaultStorage(TypeOscSin)
	g1, _ := New(TypeOscSin, testConfig, &gen, false)
	mute := DefaultStorage(TypeWaveShaper)
	mute.FloatParams[2] = -96
	m1, _ := New(TypeWaveShaper, testConfig, &mute, false)

	c := Chain{Slots: [MaxSlots]*Processor{m1, g1}}
	var l, r dsp.Block
	sineInto(&l, &r, 0, 330)
	c.Process(&l, &r)
	if l == (dsp.Block{}) {
		t.Error("generator after mute should be audible")
	}

	c.Slots = [MaxSlots]*Processor{g1, m1}
	c.Process(&l, &r)
	if l != (dsp.Block{}) {
		t.Error("mute after generator should silence the chain")
	}
}

func TestRoutingPathString(t *testing.T) {
	t.Parallel()

	if RoutePairs.String() != "pairs" || RoutingPath(9).String() != "unknown" {
		t.Error("unexpected routing path names")
	}
}

func TestChain_ZeroAllocs(t *testing.T) {
	for _, path := range []RoutingPath{RouteLinear, RouteParallel, RoutePairs} {
		var c Chain
		c.Path = path
		for i, typ := range []Type{TypeEQ2Band, TypeOscSaw, TypeStaticPhaser, TypeFauxStereo} {
			st := DefaultStorage(typ)
			c.Slots[i], _ = New(typ, testConfig, &st, i%2 == 1)
		}
		var l, r dsp.Block
		allocs := testing.AllocsPerRun(50, func() {
			c.Process(&l, &r)
		})
		if allocs != 0 {
			t.Errorf("%v: %v allocs per block", path, allocs)
		}
	}
}
