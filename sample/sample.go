// SPDX-License-Identifier: EPL-2.0

package sample

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/ik5/sampler/dsp"
)

const (
	// MaxChannels is the largest channel count a Sample can hold.
	MaxChannels = 2

	// GuardFrames of silence surround every channel buffer so interpolation
	// and one block of lookahead never read outside the allocation.
	GuardFrames = dsp.InterpolationTaps + dsp.BlockSize

	scale24 = 1.0 / (1 << 23)
	scale32 = 4.6566128730772e-10
)

// Meta carries mapping hints stored in the source file, such as the loop
// and root key of a WAV smpl chunk.
type Meta struct {
	HasRootKey bool
	RootKey    int

	HasLoop   bool
	LoopStart int
	LoopEnd   int
}

// Sample is normalized PCM audio held in memory. Up to 16-bit sources are
// stored as int16, everything deeper and all float sources as float32. All
// channels share one storage type.
//
// Every channel buffer carries GuardFrames zero frames before and after the
// audio, so frame i of a channel lives at index i+GuardFrames.
type Sample struct {
	ID          ID
	Path        string
	DisplayName string
	// Format is the registry key the sample was decoded with.
	Format string
	Meta   Meta

	channels      int
	sampleRate    float32
	invSampleRate float32
	frames        int
	storage       Storage
	source        Encoding

	i16 [MaxChannels][]int16
	f32 [MaxChannels][]float32
}

// SetMeta declares the layout of the audio about to be loaded and discards
// any buffers from a previous load.
func (s *Sample) SetMeta(channels int, sampleRate float32, frames int) error {
	if channels < 1 || channels > MaxChannels {
		return fmt.Errorf("%w: got %d", ErrTooManyChannels, channels)
	}
	if frames <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidFrames, frames)
	}
	if sampleRate <= 0 {
		return fmt.Errorf("sample: invalid sample rate %v", sampleRate)
	}

	s.channels = channels
	s.sampleRate = sampleRate
	s.invSampleRate = 1 / sampleRate
	s.frames = frames
	s.storage = StorageNone
	s.source = EncodingUnknown
	s.i16 = [MaxChannels][]int16{}
	s.f32 = [MaxChannels][]float32{}

	return nil
}

func (s *Sample) Channels() int                { return s.channels }
func (s *Sample) SampleRate() float32          { return s.sampleRate }
func (s *Sample) InvSampleRate() float32       { return s.invSampleRate }
func (s *Sample) Frames() int                  { return s.frames }
func (s *Sample) Storage() Storage             { return s.storage }
func (s *Sample) SourceEncoding() Encoding     { return s.source }
func (s *Sample) Int16Data(ch int) []int16     { return s.i16[ch] }
func (s *Sample) Float32Data(ch int) []float32 { return s.f32[ch] }

// Loaded reports whether every declared channel has data.
func (s *Sample) Loaded() bool {
	if s.channels == 0 {
		return false
	}
	for ch := range s.channels {
		if s.i16[ch] == nil && s.f32[ch] == nil {
			return false
		}
	}
	return true
}

// Frame returns frame i of channel ch as a float in [-1, 1]. Indices inside
// the guard margins read as silence.
func (s *Sample) Frame(ch, i int) float32 {
	idx := i + GuardFrames
	switch s.storage {
	case StorageInt16:
		buf := s.i16[ch]
		if idx < 0 || idx >= len(buf) {
			return 0
		}
		return dsp.Int16ToFloat32(buf[idx])
	case StorageFloat32:
		buf := s.f32[ch]
		if idx < 0 || idx >= len(buf) {
			return 0
		}
		return buf[idx]
	default:
		return 0
	}
}

// At reads channel ch at frame pos plus a fractional offset using cubic
// interpolation. pos must lie within [0, Frames()).
func (s *Sample) At(ch, pos int, frac float32) float32 {
	idx := pos + GuardFrames
	if s.storage == StorageInt16 {
		return dsp.CubicAtInt16(s.i16[ch], idx, frac)
	}
	return dsp.CubicAtFloat32(s.f32[ch], idx, frac)
}

func (s *Sample) prepare(channel int, st Storage) error {
	if channel < 0 || channel >= s.channels {
		return fmt.Errorf("%w: %d of %d", ErrInvalidChannel, channel, s.channels)
	}
	if st == StorageNone {
		return ErrUnknownEncoding
	}

	other := 1 - channel
	if s.channels == 2 && (s.i16[other] != nil || s.f32[other] != nil) && s.storage != st {
		return fmt.Errorf("%w: have %v, loading %v", ErrMixedStorage, s.storage, st)
	}

	s.storage = st
	size := s.frames + 2*GuardFrames
	if st == StorageInt16 {
		s.i16[channel] = make([]int16, size)
		s.f32[channel] = nil
	} else {
		s.f32[channel] = make([]float32, size)
		s.i16[channel] = nil
	}
	return nil
}

// LoadData normalizes raw PCM for one channel. stride is the byte distance
// between consecutive frames of the channel; 0 means packed mono data. data
// must start at the channel's first value.
func (s *Sample) LoadData(channel int, enc Encoding, data []byte, stride int) error {
	bps := enc.BytesPerSample()
	if bps == 0 {
		return fmt.Errorf("%w: %d", ErrUnknownEncoding, enc)
	}
	if stride == 0 {
		stride = bps
	}
	if stride < bps {
		return fmt.Errorf("%w: stride %d, sample %d", ErrInvalidStride, stride, bps)
	}
	if need := (s.frames-1)*stride + bps; len(data) < need {
		return fmt.Errorf("%w: need %d bytes, have %d", ErrShortData, need, len(data))
	}
	if err := s.prepare(channel, enc.Storage()); err != nil {
		return err
	}
	s.source = enc

	if s.storage == StorageInt16 {
		dst := s.i16[channel][GuardFrames : GuardFrames+s.frames]
		for i := range dst {
			p := data[i*stride:]
			switch enc {
			case U8:
				dst[i] = int16((int(p[0]) - 128) << 8)
			case I8:
				dst[i] = int16(int8(p[0])) << 8
			case I16LE:
				dst[i] = int16(binary.LittleEndian.Uint16(p))
			case I16BE:
				dst[i] = int16(binary.BigEndian.Uint16(p))
			}
		}
		return nil
	}

	dst := s.f32[channel][GuardFrames : GuardFrames+s.frames]
	for i := range dst {
		p := data[i*stride:]
		switch enc {
		case I24LE:
			v := int32(uint32(p[0])<<8|uint32(p[1])<<16|uint32(p[2])<<24) >> 8
			dst[i] = float32(float64(v) * scale24)
		case I24BE:
			v := int32(uint32(p[2])<<8|uint32(p[1])<<16|uint32(p[0])<<24) >> 8
			dst[i] = float32(float64(v) * scale24)
		case I32LE:
			dst[i] = float32(float64(int32(binary.LittleEndian.Uint32(p))) * scale32)
		case I32BE:
			dst[i] = float32(float64(int32(binary.BigEndian.Uint32(p))) * scale32)
		case F32LE:
			dst[i] = math.Float32frombits(binary.LittleEndian.Uint32(p))
		case F32BE:
			dst[i] = math.Float32frombits(binary.BigEndian.Uint32(p))
		case F64LE:
			dst[i] = float32(math.Float64frombits(binary.LittleEndian.Uint64(p)))
		case F64BE:
			dst[i] = float32(math.Float64frombits(binary.BigEndian.Uint64(p)))
		}
	}
	return nil
}

// LoadInts normalizes already decoded signed integers of the given bit depth,
// as handed out by go-audio buffers. Values for the channel are read from
// data[offset], data[offset+stride], ... where stride counts values.
func (s *Sample) LoadInts(channel int, data []int, bitDepth, offset, stride int) error {
	if bitDepth < 1 || bitDepth > 32 {
		return fmt.Errorf("%w: %d", ErrUnsupportedDepth, bitDepth)
	}
	if stride <= 0 {
		stride = 1
	}
	if need := offset + (s.frames-1)*stride + 1; len(data) < need {
		return fmt.Errorf("%w: need %d values, have %d", ErrShortData, need, len(data))
	}

	st, enc := StorageFloat32, I32LE
	switch {
	case bitDepth <= 8:
		st, enc = StorageInt16, I8
	case bitDepth <= 16:
		st, enc = StorageInt16, I16LE
	case bitDepth <= 24:
		enc = I24LE
	}
	if err := s.prepare(channel, st); err != nil {
		return err
	}
	s.source = enc

	if st == StorageInt16 {
		shift := 16 - bitDepth
		dst := s.i16[channel][GuardFrames : GuardFrames+s.frames]
		for i := range dst {
			dst[i] = int16(data[offset+i*stride] << shift)
		}
		return nil
	}

	scale := 1 / math.Exp2(float64(bitDepth-1))
	dst := s.f32[channel][GuardFrames : GuardFrames+s.frames]
	for i := range dst {
		dst[i] = float32(float64(data[offset+i*stride]) * scale)
	}
	return nil
}

// LoadFloats copies decoded float audio for one channel.
func (s *Sample) LoadFloats(channel int, data []float32, offset, stride int) error {
	if stride <= 0 {
		stride = 1
	}
	if need := offset + (s.frames-1)*stride + 1; len(data) < need {
		return fmt.Errorf("%w: need %d values, have %d", ErrShortData, need, len(data))
	}
	if err := s.prepare(channel, StorageFloat32); err != nil {
		return err
	}
	s.source = F32LE

	dst := s.f32[channel][GuardFrames : GuardFrames+s.frames]
	for i := range dst {
		dst[i] = data[offset+i*stride]
	}
	return nil
}
