// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"encoding/binary"
	"math"
)

func clampUnit(v float32) float64 {
	return math.Max(-1, math.Min(1, float64(v)))
}

// EncodeU8 quantizes to unsigned 8-bit PCM centred at 128.
func EncodeU8(data []float32) []byte {
	out := make([]byte, len(data))
	for i, v := range data {
		out[i] = byte(int(math.Round(clampUnit(v)*127)) + 128)
	}
	return out
}

// EncodeI8 quantizes to signed 8-bit PCM.
func EncodeI8(data []float32) []byte {
	out := make([]byte, len(data))
	for i, v := range data {
		out[i] = byte(int8(math.Round(clampUnit(v) * 127)))
	}
	return out
}

func EncodeI16(data []float32, order binary.ByteOrder) []byte {
	out := make([]byte, 2*len(data))
	for i, v := range data {
		order.PutUint16(out[2*i:], uint16(int16(math.Round(clampUnit(v)*32767))))
	}
	return out
}

// EncodeI24 writes packed 3-byte samples.
func EncodeI24(data []float32, bigEndian bool) []byte {
	out := make([]byte, 3*len(data))
	for i, v := range data {
		x := uint32(int32(math.Round(clampUnit(v) * 8388607)))
		p := out[3*i:]
		if bigEndian {
			p[0], p[1], p[2] = byte(x>>16), byte(x>>8), byte(x)
		} else {
			p[0], p[1], p[2] = byte(x), byte(x>>8), byte(x>>16)
		}
	}
	return out
}

func EncodeI32(data []float32, order binary.ByteOrder) []byte {
	out := make([]byte, 4*len(data))
	for i, v := range data {
		order.PutUint32(out[4*i:], uint32(int32(math.Round(clampUnit(v)*2147483647))))
	}
	return out
}

func EncodeF32(data []float32, order binary.ByteOrder) []byte {
	out := make([]byte, 4*len(data))
	for i, v := range data {
		order.PutUint32(out[4*i:], math.Float32bits(v))
	}
	return out
}

func EncodeF64(data []float32, order binary.ByteOrder) []byte {
	out := make([]byte, 8*len(data))
	for i, v := range data {
		order.PutUint64(out[8*i:], math.Float64bits(float64(v)))
	}
	return out
}
