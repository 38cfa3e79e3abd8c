// SPDX-License-Identifier: EPL-2.0

package modulation

import "errors"

var (
	ErrUnsetTarget    = errors.New("modulation: target identifier is unset")
	ErrUnsetSource    = errors.New("modulation: source identifier is unset")
	ErrNilStorage     = errors.New("modulation: nil value storage")
	ErrAliasedStorage = errors.New("modulation: base and output storage must differ")
	ErrTooManyTargets = errors.New("modulation: too many bound targets")
	ErrTooManySources = errors.New("modulation: too many bound sources")
	ErrRoutingIndex   = errors.New("modulation: routing index out of range")
	ErrInvalidFourCC  = errors.New("modulation: code must be exactly four ASCII bytes")
)
