// SPDX-License-Identifier: EPL-2.0

package sampler_test

import (
	"context"
	"fmt"

	"github.com/ossrs/go-oryx-lib/logger"

	"github.com/ik5/sampler"
	"github.com/ik5/sampler/engine"
	"github.com/ik5/sampler/internal/audiotest"
	"github.com/ik5/sampler/sample"
)

func Example() {
	ctx := logger.WithContext(context.Background())

	eng, err := sampler.New(sampler.DefaultConfig(), nil)
	if err != nil {
		fmt.Println(err)
		return
	}

	// a one second 440 Hz tone stands in for a file on disk
	s := &sample.Sample{DisplayName: "tone"}
	if err := s.SetMeta(1, 48000, 48000); err != nil {
		fmt.Println(err)
		return
	}
	tone := audiotest.Render(audiotest.Sine(48000, 440, 0.5), 48000, 1)
	if err := s.LoadFloats(0, tone, 0, 1); err != nil {
		fmt.Println(err)
		return
	}
	id := eng.Samples().Add(s)

	z := engine.NewZoneForSample(id)
	z.Mapping.RootKey = 69
	if err := eng.AddZone(ctx, 0, z); err != nil {
		fmt.Println(err)
		return
	}

	out := eng.Bounce([]sampler.Event{
		{Frame: 0, Key: 69, Velocity: 127},
		{Frame: 24000, Key: 69, Off: true},
	}, 48000)

	fmt.Println("frames:", len(out)/2)
	fmt.Println("voices left:", eng.Pool().Active())
	// Output:
	// frames: 48000
	// voices left: 0
}

func ExampleEngine_BounceMono16() {
	eng, _ := sampler.New(sampler.DefaultConfig(), nil)

	pcm, rate, err := eng.BounceMono16(nil, 4800, 8000, 4096)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(len(pcm), "samples at", rate, "Hz")
	// Output: 800 samples at 8000 Hz
}
