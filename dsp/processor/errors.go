// SPDX-License-Identifier: EPL-2.0

package processor

import "errors"

var (
	ErrUnknownType          = errors.New("processor: unknown type")
	ErrUnknownStreamingName = errors.New("processor: unknown streaming name")
	ErrNilStorage           = errors.New("processor: nil storage")
	ErrInvalidSampleRate    = errors.New("processor: invalid sample rate")
)
