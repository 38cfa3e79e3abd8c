// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("audio: dst size must be a multiple of channels")
	ErrInvalidRate    = errors.New("audio: invalid sample rate")
)
