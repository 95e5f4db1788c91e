// Package header implements the fixed-width entry descriptor that precedes
// every file or directory payload in a press archive.
//
// The on-disk layout is 169 bytes: a 156-byte zero-padded name, a 12-byte
// zero-padded ASCII-octal size field, and a single type-flag byte. There is
// no checksum; a malformed type flag or unparseable size field is fatal, not
// recoverable, matching the rest of the codec (see internal/lzw).
package header

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/xerrors"
)

// Fixed byte widths of the wire format. These never change: the decoder and
// encoder on both sides of an archive must agree on them exactly.
const (
	NameSize  = 156
	SizeField = 12
	TypeField = 1
	EntrySize = NameSize + SizeField + TypeField // 169

	// maxSize is the largest value that fits an 11-digit octal field
	// (8^11 - 1).
	maxSize = 1<<33 - 1
)

// Kind distinguishes a file entry from a directory entry.
type Kind byte

const (
	File      Kind = '0'
	Directory Kind = '1'
)

func (k Kind) String() string {
	switch k {
	case File:
		return "file"
	case Directory:
		return "directory"
	default:
		return fmt.Sprintf("Kind(%#x)", byte(k))
	}
}

// ErrMalformed is returned when a 169-byte block cannot be decoded: an
// unrecognized type flag or an unparseable size field.
var ErrMalformed = xerrors.New("header: malformed entry descriptor")

// Header is the decoded form of one 169-byte wire record.
type Header struct {
	Name string
	Size int64
	Kind Kind
}

// Encode renders name, size and kind as a 169-byte wire record. name is
// silently truncated to NameSize bytes if longer — the packer never refuses
// to archive a path with an overlong name, it just can't round-trip the
// trailing bytes (see internal/archive).
func Encode(name string, size int64, kind Kind) [EntrySize]byte {
	var b [EntrySize]byte

	nb := []byte(name)
	if len(nb) > NameSize {
		nb = nb[:NameSize]
	}
	copy(b[:NameSize], nb)

	sizeField := fmt.Sprintf("%011o\x00", size)
	copy(b[NameSize:NameSize+SizeField], sizeField)

	b[NameSize+SizeField] = byte(kind)

	return b
}

// Decode parses a 169-byte wire record. It returns ErrMalformed if the type
// flag is neither File nor Directory, or if the size field does not parse as
// octal once trailing NULs and whitespace are stripped.
func Decode(b []byte) (Header, error) {
	if len(b) != EntrySize {
		return Header{}, xerrors.Errorf("header: want %d bytes, got %d: %w", EntrySize, len(b), ErrMalformed)
	}

	nameBytes := b[:NameSize]
	if i := bytes.IndexByte(nameBytes, 0); i >= 0 {
		nameBytes = nameBytes[:i]
	}
	name := strings.ToValidUTF8(string(nameBytes), "�")

	sizeField := string(b[NameSize : NameSize+SizeField])
	sizeField = strings.TrimRight(sizeField, "\x00")
	sizeField = strings.TrimSpace(sizeField)
	var size int64
	if sizeField != "" {
		if _, err := fmt.Sscanf(sizeField, "%o", &size); err != nil {
			return Header{}, xerrors.Errorf("header: invalid octal size %q: %w", sizeField, ErrMalformed)
		}
	}

	var kind Kind
	switch Kind(b[NameSize+SizeField]) {
	case File:
		kind = File
	case Directory:
		kind = Directory
	default:
		return Header{}, xerrors.Errorf("header: unknown type flag %#x: %w", b[NameSize+SizeField], ErrMalformed)
	}

	return Header{Name: name, Size: size, Kind: kind}, nil
}

// IsZero reports whether b is a 169-byte all-zero block, i.e. part of the
// end-of-archive sentinel (two consecutive zero blocks; see internal/archive).
func IsZero(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}
