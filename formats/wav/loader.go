// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	gowav "github.com/go-audio/wav"
	"github.com/ik5/sampler/sample"
)

const (
	formatPCM        = 1
	formatIEEEFloat  = 3
	formatExtensible = 0xFFFE
)

// Loader decodes RIFF/WAVE files into a sample.Sample. Integer PCM of 8 to
// 32 bits and 32/64-bit float are supported. Loop points and the unity note
// of a smpl chunk are copied into the sample's Meta.
type Loader struct{}

func (Loader) Load(r io.ReadSeeker, s *sample.Sample) error {
	dec := gowav.NewDecoder(r)
	dec.ReadInfo()
	if err := dec.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrNotWavFile, err)
	}
	if dec.NumChans == 0 || dec.SampleRate == 0 {
		return ErrUnsupportedWavLayout
	}

	enc, err := encodingFor(dec.WavAudioFormat, dec.BitDepth)
	if err != nil {
		return err
	}

	if err := dec.FwdToPCM(); err != nil {
		return fmt.Errorf("%w: %w", ErrMissingPCM, err)
	}
	if dec.PCMChunk == nil {
		return ErrMissingPCM
	}

	channels := int(dec.NumChans)
	frameBytes := channels * enc.BytesPerSample()
	frames := dec.PCMSize / frameBytes
	if frames == 0 {
		return ErrMissingPCM
	}

	data := make([]byte, frames*frameBytes)
	if _, err := io.ReadFull(dec.PCMChunk, data); err != nil {
		return fmt.Errorf("reading PCM: %w", err)
	}

	if err := s.SetMeta(channels, float32(dec.SampleRate), frames); err != nil {
		return err
	}
	for ch := range channels {
		if err := s.LoadData(ch, enc, data[ch*enc.BytesPerSample():], frameBytes); err != nil {
			return err
		}
	}

	dec.PCMChunk.Drain()
	readSamplerChunk(dec, s)

	return nil
}

func encodingFor(format, bits uint16) (sample.Encoding, error) {
	isFloat := format == formatIEEEFloat || (format == formatExtensible && bits == 64)
	switch {
	case format != formatPCM && format != formatIEEEFloat && format != formatExtensible:
		return sample.EncodingUnknown, fmt.Errorf("%w: format tag %#x", ErrUnsupportedEncoding, format)
	case isFloat && bits == 32:
		return sample.F32LE, nil
	case isFloat && bits == 64:
		return sample.F64LE, nil
	case isFloat:
		return sample.EncodingUnknown, fmt.Errorf("%w: %d-bit float", ErrUnsupportedEncoding, bits)
	case bits == 8:
		return sample.U8, nil
	case bits == 16:
		return sample.I16LE, nil
	case bits == 24:
		return sample.I24LE, nil
	case bits == 32:
		return sample.I32LE, nil
	default:
		return sample.EncodingUnknown, fmt.Errorf("%w: %d-bit PCM", ErrUnsupportedEncoding, bits)
	}
}

// readSamplerChunk walks the chunks after the PCM data looking for smpl.
// Trailing chunks are optional, so errors simply end the walk.
func readSamplerChunk(dec *gowav.Decoder, s *sample.Sample) {
	info := samplerInfo(dec)
	for info == nil {
		ch, err := dec.NextChunk()
		if err != nil || ch == nil {
			break
		}
		if ch.ID == gowav.CIDSmpl {
			if err := gowav.DecodeSamplerChunk(dec, ch); err != nil {
				break
			}
			info = samplerInfo(dec)
			break
		}
		ch.Drain()
	}
	if info == nil {
		return
	}

	if info.MIDIUnityNote > 0 && info.MIDIUnityNote < 128 {
		s.Meta.HasRootKey = true
		s.Meta.RootKey = int(info.MIDIUnityNote)
	}
	if len(info.Loops) > 0 && info.Loops[0] != nil {
		l := info.Loops[0]
		if int(l.Start) < s.Frames() && l.End > l.Start {
			s.Meta.HasLoop = true
			s.Meta.LoopStart = int(l.Start)
			s.Meta.LoopEnd = min(int(l.End), s.Frames()-1)
		}
	}
}

func samplerInfo(dec *gowav.Decoder) *gowav.SamplerInfo {
	if dec.Metadata == nil {
		return nil
	}
	return dec.Metadata.SamplerInfo
}
