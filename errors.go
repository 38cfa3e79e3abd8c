// SPDX-License-Identifier: EPL-2.0

package sampler

import "errors"

var (
	ErrInvalidConfig = errors.New("sampler: invalid config")
	ErrQueueFull     = errors.New("sampler: control queue is full")
	ErrZoneNotFound  = errors.New("sampler: zone not found")
	ErrZoneExists    = errors.New("sampler: zone already added")
)
