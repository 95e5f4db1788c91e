package archive

import (
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/xerrors"

	"github.com/distr1/press/internal/header"
)

// parse drives the shared unpacker state machine over an archive buffer:
// Seek (skip or recognize zero blocks), Parse (decode a header), File
// payload (read size bytes then skip padding). Two consecutive all-zero
// blocks end the scan; an input shorter than one header, or one with no end
// sentinel, ends the scan silently rather than faulting.
func parse(data []byte, onDir func(name string) error, onFile func(name string, payload []byte) error) error {
	i := 0
	priorZero := false

	for i+header.EntrySize <= len(data) {
		block := data[i : i+header.EntrySize]

		if header.IsZero(block) {
			if priorZero {
				return nil
			}
			priorZero = true
			i += header.EntrySize
			continue
		}
		priorZero = false

		h, err := header.Decode(block)
		if err != nil {
			return err
		}
		i += header.EntrySize

		switch h.Kind {
		case header.Directory:
			if err := onDir(h.Name); err != nil {
				return err
			}

		case header.File:
			size := int(h.Size)
			if size < 0 || i+size > len(data) {
				return xerrors.Errorf("archive: entry %q declares %d bytes, %d remain: %w", h.Name, size, len(data)-i, ErrTruncated)
			}
			payload := data[i : i+size]
			if err := onFile(h.Name, payload); err != nil {
				return err
			}
			i += size
			if rem := size % header.EntrySize; rem != 0 {
				i += header.EntrySize - rem
			}
		}
	}
	return nil
}

// UnpackToEntries parses a framed archive buffer into an ordered slice of
// Entry, without touching the filesystem.
func UnpackToEntries(data []byte) ([]Entry, error) {
	var entries []Entry
	err := parse(data,
		func(name string) error {
			entries = append(entries, Entry{Name: name, Kind: header.Directory})
			return nil
		},
		func(name string, payload []byte) error {
			entries = append(entries, Entry{
				Name: name,
				Data: append([]byte(nil), payload...),
				Kind: header.File,
			})
			return nil
		},
	)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// UnpackToPath materialises a framed archive buffer onto disk under dir,
// creating dir and any missing parent directories as needed. No
// permissions, timestamps or ownership are preserved.
func UnpackToPath(data []byte, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return xerrors.Errorf("archive: mkdir %s: %w", dir, err)
	}

	return parse(data,
		func(name string) error {
			target, err := safeJoin(dir, name)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(target, 0o755); err != nil {
				return xerrors.Errorf("archive: mkdir %s: %w", target, err)
			}
			return nil
		},
		func(name string, payload []byte) error {
			target, err := safeJoin(dir, name)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return xerrors.Errorf("archive: mkdir %s: %w", filepath.Dir(target), err)
			}
			if err := os.WriteFile(target, payload, 0o644); err != nil {
				return xerrors.Errorf("archive: write %s: %w", target, err)
			}
			return nil
		},
	)
}

// safeJoin joins root and name, refusing to resolve outside root — an
// archive whose entry names contain ".." components could otherwise write
// outside the extraction directory.
func safeJoin(root, name string) (string, error) {
	cleanRoot := filepath.Clean(root)
	target := filepath.Join(cleanRoot, name)
	if target != cleanRoot && !strings.HasPrefix(target, cleanRoot+string(os.PathSeparator)) {
		return "", xerrors.Errorf("archive: entry %q: %w", name, ErrPathEscapesRoot)
	}
	return target, nil
}
