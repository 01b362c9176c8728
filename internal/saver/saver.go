// Package saver puts downloaded podcast audio somewhere the user can reach it.
package saver

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Saver stores the bytes of a downloaded file under the given name.
type Saver interface {
	SaveBytes(filename string, data []byte) error
}

// ErrInvalidFilename is returned for names that do not denote a file.
var ErrInvalidFilename = errors.New("invalid filename")

// CleanFilename returns the name a saver stores filename under. Only the
// final path element is kept, with `\` treated as a separator, so a server
// supplied name can never escape the target directory.
func CleanFilename(filename string) (string, error) {
	name := filepath.Base(strings.ReplaceAll(filename, `\`, "/"))
	switch name {
	case "", ".", "..", "/":
		return "", fmt.Errorf("%w: %q", ErrInvalidFilename, filename)
	}

	return name, nil
}
