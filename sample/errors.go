// SPDX-License-Identifier: EPL-2.0

package sample

import "errors"

var (
	ErrTooManyChannels  = errors.New("sample: at most 2 channels are supported")
	ErrInvalidChannel   = errors.New("sample: channel index out of range")
	ErrInvalidFrames    = errors.New("sample: frame count must be positive")
	ErrShortData        = errors.New("sample: not enough data for the declared frames")
	ErrUnknownEncoding  = errors.New("sample: unknown encoding")
	ErrMixedStorage     = errors.New("sample: channels must share the same storage")
	ErrInvalidStride    = errors.New("sample: stride smaller than one sample")
	ErrUnsupportedDepth = errors.New("sample: unsupported bit depth")
	ErrUnknownFormat    = errors.New("sample: unknown file format")
	ErrNotFound         = errors.New("sample: not found")
	ErrSampleInUse      = errors.New("sample: still referenced by zones")
)
