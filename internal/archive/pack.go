package archive

import (
	"os"
	"path/filepath"

	"golang.org/x/xerrors"

	"github.com/distr1/press/internal/header"
)

// PackEntries serialises entries in order into a framed, uncompressed
// archive buffer: one header per entry (with a zero-padded payload for
// files), terminated by two all-zero sentinel blocks. It never touches the
// filesystem.
func PackEntries(entries []Entry) []byte {
	var out []byte
	for _, e := range entries {
		out = append(out, encodeEntry(e)...)
	}
	out = append(out, make([]byte, header.EntrySize*2)...)
	return out
}

func encodeEntry(e Entry) []byte {
	h := header.Encode(e.Name, int64(len(e.Data)), e.Kind)
	out := append([]byte(nil), h[:]...)
	if e.Kind == header.File {
		out = append(out, e.Data...)
		out = append(out, padding(len(e.Data))...)
	}
	return out
}

func padding(size int) []byte {
	if rem := size % header.EntrySize; rem != 0 {
		return make([]byte, header.EntrySize-rem)
	}
	return nil
}

// PackPath walks a filesystem path — a single file or a directory tree —
// and serialises it the same way PackEntries would, terminated by the same
// two-block sentinel. Unreadable paths or metadata are fatal: this is not a
// best-effort archiver.
//
// Symlinks to regular files are followed (the payload is the target's
// bytes); a symlink to a directory is refused with ErrPathEscapesRoot,
// since following it could escape the tree being archived or cycle back
// into it.
func PackPath(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, xerrors.Errorf("archive: stat %s: %w", path, err)
	}

	var out []byte
	if info.IsDir() {
		b, err := packDir(path, path)
		if err != nil {
			return nil, err
		}
		out = b
	} else {
		b, err := packFile(path, path)
		if err != nil {
			return nil, err
		}
		out = b
	}

	out = append(out, make([]byte, header.EntrySize*2)...)
	return out, nil
}

func packDir(root, dir string) ([]byte, error) {
	relName, err := relSlash(root, dir)
	if err != nil {
		return nil, err
	}

	h := header.Encode(relName, 0, header.Directory)
	out := append([]byte(nil), h[:]...)

	children, err := os.ReadDir(dir)
	if err != nil {
		return nil, xerrors.Errorf("archive: readdir %s: %w", dir, err)
	}
	for _, child := range children {
		childPath := filepath.Join(dir, child.Name())

		typ := child.Type()
		if typ&os.ModeSymlink != 0 {
			target, err := os.Stat(childPath) // Stat follows the link.
			if err != nil {
				return nil, xerrors.Errorf("archive: stat %s: %w", childPath, err)
			}
			if target.IsDir() {
				return nil, xerrors.Errorf("archive: %s: %w", childPath, ErrPathEscapesRoot)
			}
			b, err := packFile(root, childPath)
			if err != nil {
				return nil, err
			}
			out = append(out, b...)
			continue
		}

		if typ.IsDir() {
			b, err := packDir(root, childPath)
			if err != nil {
				return nil, err
			}
			out = append(out, b...)
		} else {
			b, err := packFile(root, childPath)
			if err != nil {
				return nil, err
			}
			out = append(out, b...)
		}
	}
	return out, nil
}

func packFile(root, path string) ([]byte, error) {
	var name string
	if root == path {
		name = filepath.Base(path)
	} else {
		var err error
		name, err = relSlash(root, path)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, xerrors.Errorf("archive: read %s: %w", path, err)
	}

	h := header.Encode(name, int64(len(data)), header.File)
	out := append([]byte(nil), h[:]...)
	out = append(out, data...)
	out = append(out, padding(len(data))...)
	return out, nil
}

// relSlash returns path's position relative to root with forward slashes,
// or "" if path is root itself (the archive root directory's own entry).
func relSlash(root, path string) (string, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", xerrors.Errorf("archive: %s not under %s: %w", path, root, err)
	}
	if rel == "." {
		return "", nil
	}
	return filepath.ToSlash(rel), nil
}
