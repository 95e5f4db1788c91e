package header

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		size int64
		kind Kind
	}{
		{"a.txt", 0, File},
		{"dir/", 0, Directory},
		{"x", 1, File},
		{"x", 7, File},
		{"x", 8, File},
		{"x", 511, File},
		{"x", 4096, File},
		{"x", 999_999, File},
		{"x", 1<<33 - 1, File},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Encode(tt.name, tt.size, tt.kind)
			got, err := Decode(b[:])
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			want := Header{Name: tt.name, Size: tt.size, Kind: tt.kind}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNameTruncation(t *testing.T) {
	long := strings.Repeat("a", NameSize+50)
	b := Encode(long, 0, File)
	got, err := Decode(b[:])
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(got.Name) != NameSize {
		t.Fatalf("got name length %d, want %d", len(got.Name), NameSize)
	}
	if got.Name != long[:NameSize] {
		t.Errorf("got %q, want prefix %q", got.Name, long[:NameSize])
	}
}

func TestEntrySize(t *testing.T) {
	if EntrySize != 169 {
		t.Fatalf("EntrySize = %d, want 169", EntrySize)
	}
	b := Encode("x", 0, File)
	if len(b) != 169 {
		t.Fatalf("Encode produced %d bytes, want 169", len(b))
	}
}

func TestDecodeMalformedType(t *testing.T) {
	b := Encode("x", 0, File)
	b[NameSize+SizeField] = 'Z'
	if _, err := Decode(b[:]); err == nil {
		t.Fatal("expected error for unknown type flag")
	}
}

func TestDecodeWrongLength(t *testing.T) {
	if _, err := Decode(make([]byte, 10)); err == nil {
		t.Fatal("expected error for short buffer")
	}
}

func TestIsZero(t *testing.T) {
	var zero [EntrySize]byte
	if !IsZero(zero[:]) {
		t.Fatal("all-zero block should report IsZero")
	}
	nonZero := Encode("x", 0, File)
	if IsZero(nonZero[:]) {
		t.Fatal("non-zero block should not report IsZero")
	}
}
