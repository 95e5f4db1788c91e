// Package press implements an archival LZW compressor: it serialises a file
// or a directory tree into a single framed byte stream (internal/archive)
// and reduces that stream's size with a variable-width LZW coder
// (internal/lzw), producing self-contained ".pressrs" archives that a
// paired decoder restores byte for byte.
//
// The package is a thin driver over its two core engines; see
// internal/header, internal/archive and internal/lzw for the actual codecs.
package press

import (
	"io"

	"golang.org/x/exp/mmap"
	"golang.org/x/xerrors"

	"github.com/google/renameio"

	"github.com/distr1/press/internal/archive"
	"github.com/distr1/press/internal/lzw"
)

// Extension is the conventional file extension for a press archive. It is
// informational only — nothing in the archive or compressed-stream format
// depends on it.
const Extension = "pressrs"

// Kind distinguishes a file entry from a directory entry.
type Kind = archive.Kind

const (
	File      = archive.File
	Directory = archive.Directory
)

// Entry is one element of an archive: a file (with data) or a directory.
type Entry = archive.Entry

// CompressRaw compresses an arbitrary byte buffer with the LZW codec. Empty
// input produces empty output.
func CompressRaw(data []byte) []byte {
	return lzw.Encode(data)
}

// DecompressRaw reverses CompressRaw.
func DecompressRaw(compressed []byte) ([]byte, error) {
	out, err := lzw.Decode(compressed)
	if err != nil {
		return nil, xerrors.Errorf("press: decompress: %w", err)
	}
	return out, nil
}

// PackEntries serialises entries into an uncompressed, framed archive
// buffer. It performs no filesystem access and no compression.
func PackEntries(entries []Entry) []byte {
	return archive.PackEntries(entries)
}

// UnpackToEntries parses a framed archive buffer into an ordered slice of
// Entry. It performs no filesystem access and no decompression.
func UnpackToEntries(data []byte) ([]Entry, error) {
	entries, err := archive.UnpackToEntries(data)
	if err != nil {
		return nil, xerrors.Errorf("press: unpack: %w", err)
	}
	return entries, nil
}

// CompressFromPath packages the file or directory tree at path and
// compresses the result, returning a complete archive ready to be written
// to a ".pressrs" file (see WriteArchiveFile).
func CompressFromPath(path string) ([]byte, error) {
	framed, err := archive.PackPath(path)
	if err != nil {
		return nil, xerrors.Errorf("press: pack %s: %w", path, err)
	}
	return lzw.Encode(framed), nil
}

// DecompressToPath reads a compressed archive file and materialises its
// tree under outDir, creating outDir if it does not already exist. The
// archive file is read through a memory map rather than slurped whole.
func DecompressToPath(archivePath, outDir string) error {
	ra, err := mmap.Open(archivePath)
	if err != nil {
		return xerrors.Errorf("press: open %s: %w", archivePath, err)
	}
	defer ra.Close()

	r := io.NewSectionReader(ra, 0, int64(ra.Len()))
	framed, err := lzw.NewDecoder(r).Decode()
	if err != nil {
		return xerrors.Errorf("press: decompress %s: %w", archivePath, err)
	}

	if err := archive.UnpackToPath(framed, outDir); err != nil {
		return xerrors.Errorf("press: unpack into %s: %w", outDir, err)
	}
	return nil
}

// WriteArchiveFile atomically writes a compressed archive to path: either
// the write fully succeeds, or the destination is left untouched, never
// half-written.
func WriteArchiveFile(path string, compressed []byte) error {
	if err := renameio.WriteFile(path, compressed, 0o644); err != nil {
		return xerrors.Errorf("press: write %s: %w", path, err)
	}
	return nil
}
