// SPDX-License-Identifier: EPL-2.0

// Package wav loads and writes WAV files.
//
// # Loading
//
// Loader implements sample.Loader on top of github.com/go-audio/wav. It reads
// the fmt chunk, forwards to the data chunk and hands the raw PCM to
// sample.Sample.LoadData, so every channel is normalized in one pass:
//
//	var s sample.Sample
//	f, _ := os.Open("kick.wav")
//	err := wav.Loader{}.Load(f, &s)
//
// Supported encodings are 8-bit unsigned, 16/24/32-bit signed integer and
// 32/64-bit IEEE float, mono or stereo, at any sample rate. When a smpl chunk
// follows the audio its first loop and unity note end up in s.Meta.
//
// # Writing
//
// WriteWAV16 streams 16-bit PCM to any io.Writer with a single header write
// and chunked data writes. WriteWAV24 uses the go-audio encoder and therefore
// needs an io.WriteSeeker:
//
//	out, _ := os.Create("bounce.wav")
//	err := wav.WriteWAV24(out, 48000, 2, interleaved)
//
// # Errors
//
//   - ErrNotWavFile: the RIFF/WAVE header could not be read
//   - ErrUnsupportedEncoding: format tag or bit depth is not handled
//   - ErrMissingPCM: no data chunk, or an empty one
//   - ErrInvalidChannels: writer input does not divide into frames
package wav
