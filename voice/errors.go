// SPDX-License-Identifier: EPL-2.0

package voice

import "errors"

var (
	ErrInvalidConfig     = errors.New("voice: invalid pool config")
	ErrDuplicateEndpoint = errors.New("voice: duplicate endpoint identifier")
	ErrUnsetEndpoint     = errors.New("voice: unset endpoint identifier")
)
