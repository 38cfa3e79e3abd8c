// SPDX-License-Identifier: EPL-2.0

package engine

import "errors"

var (
	ErrInvalidKeyRange      = errors.New("engine: invalid key range")
	ErrInvalidVelocityRange = errors.New("engine: invalid velocity range")
	ErrInvalidBounds        = errors.New("engine: invalid sample bounds")
	ErrSampleIndex          = errors.New("engine: sample index out of range")
	ErrProcessorIndex       = errors.New("engine: processor index out of range")
	ErrIndex                = errors.New("engine: index out of range")
	ErrRemoved              = errors.New("engine: element was removed")
	ErrZoneActive           = errors.New("engine: zone has sounding voices")
	ErrHasParent            = errors.New("engine: element already has a parent")
	ErrTooManyVoices        = errors.New("engine: zone voice list is full")
	ErrUnknownEffect        = errors.New("engine: unknown part effect")
	ErrNilServices          = errors.New("engine: nil services")
)
