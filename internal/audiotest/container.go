// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"encoding/binary"
	"math"
)

// WAV format tags.
const (
	WAVFormatPCM   = 1
	WAVFormatFloat = 3
)

// WAVFile wraps little endian interleaved PCM in a minimal RIFF/WAVE file.
func WAVFile(sampleRate, channels, bitsPerSample, format int, pcm []byte) []byte {
	buf := new(bytes.Buffer)

	numChannels := uint16(channels)
	bits := uint16(bitsPerSample)
	blockAlign := numChannels * (bits / 8)
	byteRate := uint32(sampleRate) * uint32(blockAlign)
	dataSize := uint32(len(pcm))
	riffSize := 36 + dataSize + dataSize%2

	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, riffSize)
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, uint16(format))
	binary.Write(buf, binary.LittleEndian, numChannels)
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(buf, binary.LittleEndian, byteRate)
	binary.Write(buf, binary.LittleEndian, blockAlign)
	binary.Write(buf, binary.LittleEndian, bits)

	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, dataSize)
	buf.Write(pcm)
	if dataSize%2 == 1 {
		buf.WriteByte(0)
	}

	return buf.Bytes()
}

// AIFFFile wraps big endian interleaved PCM in a minimal FORM/AIFF file.
func AIFFFile(sampleRate, channels, bitsPerSample int, pcm []byte) []byte {
	frames := len(pcm) / (channels * bitsPerSample / 8)

	comm := new(bytes.Buffer)
	binary.Write(comm, binary.BigEndian, uint16(channels))
	binary.Write(comm, binary.BigEndian, uint32(frames))
	binary.Write(comm, binary.BigEndian, uint16(bitsPerSample))
	comm.Write(extended80(float64(sampleRate)))

	ssnd := new(bytes.Buffer)
	binary.Write(ssnd, binary.BigEndian, uint32(0)) // offset
	binary.Write(ssnd, binary.BigEndian, uint32(0)) // block size
	ssnd.Write(pcm)

	body := new(bytes.Buffer)
	body.WriteString("AIFF")
	body.WriteString("COMM")
	binary.Write(body, binary.BigEndian, uint32(comm.Len()))
	body.Write(comm.Bytes())
	body.WriteString("SSND")
	binary.Write(body, binary.BigEndian, uint32(ssnd.Len()))
	body.Write(ssnd.Bytes())
	if ssnd.Len()%2 == 1 {
		body.WriteByte(0)
	}

	buf := new(bytes.Buffer)
	buf.WriteString("FORM")
	binary.Write(buf, binary.BigEndian, uint32(body.Len()))
	buf.Write(body.Bytes())
	return buf.Bytes()
}

// extended80 encodes a positive integer-valued float as an IEEE 754 80-bit
// extended float, as used by the AIFF sample rate field.
func extended80(v float64) []byte {
	out := make([]byte, 10)
	if v <= 0 {
		return out
	}
	exp := int(math.Floor(math.Log2(v)))
	mant := uint64(v * math.Exp2(float64(63-exp)))
	binary.BigEndian.PutUint16(out, uint16(exp+16383))
	binary.BigEndian.PutUint64(out[2:], mant)
	return out
}
