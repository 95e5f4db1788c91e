package lzw

import (
	"bytes"
	"io"

	"golang.org/x/xerrors"
)

// ErrInvalidCode is returned when the decoder reads a code larger than the
// next index it is about to assign — a corrupt or truncated-mid-code
// stream. There is no recovery: decoding of that stream stops here.
var ErrInvalidCode = xerrors.New("lzw: invalid code in compressed stream")

// Decoder drives the LZW decode state machine: a current code width, the
// next index to learn, the previous code (used to grow the dictionary and
// to resolve the KwKwK case), and a decode scratch stack reused across
// iterations.
type Decoder struct {
	r    *bitReader
	dict *decodeDict

	width        uint8
	threshold    uint16
	nextIndex    uint16
	previousCode int32 // -1 means "no previous code" (just cleared)

	stack [decodeTableSize]byte
}

// NewDecoder returns a Decoder reading a variable-width LZW stream from r.
// r may be backed by an in-memory buffer or a file (the codec has no
// streaming contract beyond "a reader it can pull bytes from").
func NewDecoder(r io.Reader) *Decoder {
	d := &Decoder{r: newBitReader(r), dict: newDecodeDict()}
	d.resetState()
	return d
}

func (d *Decoder) resetState() {
	d.width = initialCodeWidth + 1
	d.threshold = uint16(1) << d.width
	d.nextIndex = firstFreeCode
	d.previousCode = -1
}

// Decode runs the decoder to completion, returning the decompressed bytes.
// End-of-information (257) ends the stream normally; so does an EOF from
// the underlying reader encountered between codes, which accommodates
// streams that were flushed and zero-padded without an explicit end marker.
func (d *Decoder) Decode() ([]byte, error) {
	var output []byte

	for {
		code, err := d.r.read(d.width)
		if err != nil {
			if err == errEndOfInput {
				return output, nil
			}
			return nil, err
		}

		if code == clearCode {
			d.resetState()
			continue
		}
		if code == eoiCode {
			return output, nil
		}

		if d.previousCode < 0 {
			b := d.dict.suffix[code]
			output = append(output, b)
			d.stack[0] = b
			d.previousCode = int32(code)
			continue
		}

		length, err := d.buildString(code)
		if err != nil {
			return nil, err
		}
		output = append(output, d.stack[:length]...)

		if d.nextIndex < decodeTableSize {
			prev := uint16(d.previousCode)
			d.dict.prefix[d.nextIndex] = prev
			d.dict.suffix[d.nextIndex] = d.stack[0]
			d.dict.length[d.nextIndex] = d.dict.length[prev] + 1
			d.nextIndex++
			if d.nextIndex == d.threshold && d.width < maxCodeWidth {
				d.width++
				d.threshold = uint16(1) << d.width
			}
		}

		d.previousCode = int32(code)
	}
}

// buildString materializes the string referenced by code into d.stack,
// returning its length. It handles the KwKwK corner case (code equal to the
// not-yet-assigned next index): the string is only known by construction,
// as the previous string plus its own first byte, which depends on d.stack
// still holding the previous iteration's string in its low bytes.
func (d *Decoder) buildString(code uint16) (int, error) {
	if code > d.nextIndex {
		return 0, xerrors.Errorf("lzw: code %d exceeds next index %d: %w", code, d.nextIndex, ErrInvalidCode)
	}

	if code == d.nextIndex {
		length := d.dict.length[d.previousCode] + 1
		d.stack[length-1] = d.stack[0]
		return length, nil
	}

	length := d.dict.length[code]
	stackTop := length
	temp := code
	for temp >= clearCode {
		stackTop--
		if stackTop == 0 {
			break
		}
		d.stack[stackTop] = d.dict.suffix[temp]
		temp = d.dict.prefix[temp]
	}
	d.stack[0] = byte(temp)
	return length, nil
}

// Decode decompresses a complete LZW stream held in memory. Empty input
// yields empty output with no error.
func Decode(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	return NewDecoder(bytes.NewReader(data)).Decode()
}
