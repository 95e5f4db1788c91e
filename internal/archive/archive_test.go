package archive

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/distr1/press/internal/header"
)

func TestPackUnpackEntriesRoundTrip(t *testing.T) {
	entries := []Entry{
		{Name: "a.txt", Data: []byte("hi"), Kind: header.File},
	}
	packed := PackEntries(entries)

	wantLen := header.EntrySize /* header */ + header.EntrySize /* payload padded to block */ + 2*header.EntrySize /* sentinel */
	if len(packed) != wantLen {
		t.Fatalf("packed length = %d, want %d", len(packed), wantLen)
	}

	got, err := UnpackToEntries(packed)
	if err != nil {
		t.Fatalf("UnpackToEntries: %v", err)
	}
	if diff := cmp.Diff(entries, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestPackUnpackWithDirectory(t *testing.T) {
	entries := []Entry{
		{Name: "dir/", Data: nil, Kind: header.Directory},
		{Name: "dir/x", Data: []byte("k"), Kind: header.File},
	}
	packed := PackEntries(entries)
	got, err := UnpackToEntries(packed)
	if err != nil {
		t.Fatalf("UnpackToEntries: %v", err)
	}
	if diff := cmp.Diff(entries, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestUnpackEmpty(t *testing.T) {
	got, err := UnpackToEntries(nil)
	if err != nil {
		t.Fatalf("UnpackToEntries(nil): %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d entries, want 0", len(got))
	}
}

func TestUnpackShortBuffer(t *testing.T) {
	got, err := UnpackToEntries(make([]byte, 10))
	if err != nil {
		t.Fatalf("UnpackToEntries: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d entries, want 0", len(got))
	}
}

func TestUnpackTruncatedPayloadIsFatal(t *testing.T) {
	h := header.Encode("f", 1000, header.File)
	data := append([]byte(nil), h[:]...)
	data = append(data, []byte("short")...)
	if _, err := UnpackToEntries(data); err == nil {
		t.Fatal("expected error for truncated payload")
	}
}

func TestPackUnpackPathRoundTrip(t *testing.T) {
	src := t.TempDir()
	if err := os.WriteFile(filepath.Join(src, "hello.txt"), []byte("Hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(src, "nested"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, "nested", "world.txt"), []byte("World"), 0o644); err != nil {
		t.Fatal(err)
	}

	packed, err := PackPath(src)
	if err != nil {
		t.Fatalf("PackPath: %v", err)
	}

	dst := filepath.Join(t.TempDir(), "out")
	if err := UnpackToPath(packed, dst); err != nil {
		t.Fatalf("UnpackToPath: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dst, "hello.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "Hello" {
		t.Errorf("hello.txt = %q, want %q", got, "Hello")
	}
	got, err = os.ReadFile(filepath.Join(dst, "nested", "world.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "World" {
		t.Errorf("nested/world.txt = %q, want %q", got, "World")
	}
}

func TestPackPathSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "solo.txt")
	if err := os.WriteFile(path, []byte("solo"), 0o644); err != nil {
		t.Fatal(err)
	}

	packed, err := PackPath(path)
	if err != nil {
		t.Fatalf("PackPath: %v", err)
	}
	entries, err := UnpackToEntries(packed)
	if err != nil {
		t.Fatalf("UnpackToEntries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].Name != "solo.txt" || string(entries[0].Data) != "solo" {
		t.Errorf("got %+v", entries[0])
	}
}

func TestPackPathEmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "empty")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	packed, err := PackPath(dir)
	if err != nil {
		t.Fatalf("PackPath: %v", err)
	}
	entries, err := UnpackToEntries(packed)
	if err != nil {
		t.Fatalf("UnpackToEntries: %v", err)
	}

	found := false
	for _, e := range entries {
		if e.Kind == header.Directory && e.Name == "empty" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a lone directory entry for the empty subdirectory, got %+v", entries)
	}
}

func TestSafeJoinRejectsEscape(t *testing.T) {
	if _, err := safeJoin("/tmp/out", "../../etc/passwd"); err == nil {
		t.Fatal("expected error for path escaping root")
	}
}
