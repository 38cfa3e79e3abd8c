// SPDX-License-Identifier: EPL-2.0

package sample

import (
	"path/filepath"

	"github.com/google/uuid"
)

// ID identifies a sample across the engine and in saved patches.
type ID = uuid.UUID

// NilID is the unset sample id.
var NilID = uuid.Nil

// NewID returns a random id for samples that do not come from a file.
func NewID() ID {
	return uuid.New()
}

// IDFromPath derives a stable id from a file path, so the same file always
// maps to the same sample.
func IDFromPath(path string) ID {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+filepath.ToSlash(path)))
}
