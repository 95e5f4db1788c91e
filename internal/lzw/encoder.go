// Package lzw implements a bit-packed, variable-code-width LZW codec with a
// bounded dictionary, an explicit clear marker, an end-of-information
// marker, and the KwKwK decode-time edge case. It operates on fully
// materialized byte buffers (or, on the decode side, a file-backed
// io.Reader) per the codec's non-streaming contract — it never speculates
// about input it hasn't seen yet.
package lzw

const (
	// initialCodeWidth is the bit width of the raw byte alphabet (root
	// codes 0..255); the first code width actually written, W, starts one
	// bit wider so the clear and end-of-information codes fit.
	initialCodeWidth = 8
	maxCodeWidth     = 12

	clearCode     = 1 << initialCodeWidth // 256
	eoiCode       = clearCode + 1         // 257
	firstFreeCode = clearCode + 2         // 258

	// maxEntryCount is the encoder's table ceiling: the dictionary's node
	// count (1-indexed ceiling for the yet-unassigned next code) is never
	// allowed to exceed this before a clear is forced.
	maxEntryCount = 4097
)

// Encode compresses data into a self-contained, variable-width LZW stream:
// one clear code, the coded symbols, and a terminating end-of-information
// code, LSB-first bit packed. An empty input produces an empty output with
// no markers at all.
func Encode(data []byte) []byte {
	if len(data) == 0 {
		return nil
	}

	w := newBitWriter()
	dict := newEncodeDict()

	width := uint8(initialCodeWidth + 1) // 9
	threshold := uint16(1) << width

	w.write(clearCode, width)

	prefix := uint16(data[0])
	for _, b := range data[1:] {
		if child, ok := dict.find(prefix, b); ok {
			prefix = child
			continue
		}

		newIndex := dict.add(prefix, b)
		w.write(prefix, width)
		prefix = uint16(b)

		if newIndex == threshold {
			if width < maxCodeWidth {
				width++
			} else {
				w.write(clearCode, maxCodeWidth)
				width = initialCodeWidth + 1
				dict.reset()
			}
			threshold = uint16(1) << width
		}
	}

	w.write(prefix, width)
	w.write(eoiCode, width)
	w.flush()

	return w.out
}
