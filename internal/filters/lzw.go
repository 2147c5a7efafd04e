package filters

import (
	"bytes"
	"fmt"
)

// LZW code points reserved by the PDF variant: 256 clears the table and
// 257 marks end of data. Compressed codes start at 9 bits and grow to 12.
const (
	lzwClearCode = 256
	lzwEODCode   = 257
	lzwMaxWidth  = 12
)

// LZWDecode decompresses LZW compressed data as used by PDF streams:
// variable-width codes from 9 to 12 bits, packed most significant bit
// first. The EarlyChange parameter (default 1) controls whether the code
// width grows one code early, which is the PDF default. The standard
// library's compress/lzw only implements the late-change timing, so the
// bit-level decoding is done here. Like FlateDecode, an optional
// predictor is applied afterwards.
func LZWDecode(data []byte, params Params) ([]byte, error) {
	earlyChange := getIntParam(params, "EarlyChange", 1)

	decompressed, err := lzwDecompress(data, earlyChange == 1)
	if err != nil {
		return nil, fmt.Errorf("lzw decompression failed: %w", err)
	}

	decompressed, err = applyPredictorParams(decompressed, params)
	if err != nil {
		return nil, fmt.Errorf("predictor failed: %w", err)
	}

	return decompressed, nil
}

// lzwDecompress runs the LZW decoder over data. Codes 0-255 stand for
// literal bytes; the table grows by one entry per decoded code until a
// clear code resets it.
func lzwDecompress(data []byte, earlyChange bool) ([]byte, error) {
	var result bytes.Buffer

	table := make([][]byte, 258, 1<<lzwMaxWidth)
	for i := 0; i < 256; i++ {
		table[i] = []byte{byte(i)}
	}

	width := 9
	bitPos := 0
	var prev []byte

	readCode := func() (int, bool) {
		if bitPos+width > len(data)*8 {
			return 0, false
		}
		code := 0
		for i := 0; i < width; i++ {
			b := data[bitPos>>3]
			code = code<<1 | int(b>>(7-bitPos&7)&1)
			bitPos++
		}
		return code, true
	}

	for {
		code, ok := readCode()
		if !ok {
			// Ran out of bits before the EOD code. Tolerated, some
			// writers omit the marker.
			return result.Bytes(), nil
		}

		switch {
		case code == lzwClearCode:
			table = table[:258]
			width = 9
			prev = nil
			continue

		case code == lzwEODCode:
			return result.Bytes(), nil

		case code < len(table) && table[code] != nil:
			entry := table[code]
			result.Write(entry)
			if prev != nil {
				next := make([]byte, len(prev)+1)
				copy(next, prev)
				next[len(prev)] = entry[0]
				table = append(table, next)
			}
			prev = entry

		case code == len(table) && prev != nil:
			// The code being defined by this very step: it must be
			// the previous string extended with its own first byte.
			entry := make([]byte, len(prev)+1)
			copy(entry, prev)
			entry[len(prev)] = prev[0]
			result.Write(entry)
			table = append(table, entry)
			prev = entry

		default:
			return nil, fmt.Errorf("invalid LZW code %d", code)
		}

		// Widen once the table fills the current code space. With early
		// change the width grows one code sooner.
		limit := len(table)
		if earlyChange {
			limit++
		}
		if limit >= 1<<width && width < lzwMaxWidth {
			width++
		}
	}
}
