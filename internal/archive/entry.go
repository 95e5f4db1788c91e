// Package archive implements the archive's framing: serialising a file
// hierarchy (or an in-memory entry list) into a stream of fixed-width
// headers and payloads, and reversing that framing back into files or
// entries. It has no knowledge of compression; internal/lzw operates on the
// byte stream this package produces.
package archive

import "github.com/distr1/press/internal/header"

// Kind distinguishes a file entry from a directory entry.
type Kind = header.Kind

const (
	File      = header.File
	Directory = header.Directory
)

// Entry is one element of an archive: a file (with data) or a directory
// (data is always empty). Name is a UTF-8 relative path using forward
// slashes, regardless of host platform.
type Entry struct {
	Name string
	Data []byte
	Kind Kind
}
