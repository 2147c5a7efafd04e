package filters

import (
	"bytes"
	"fmt"
)

// ASCIIHexDecode decodes ASCII hexadecimal encoded data.
// Each pair of hexadecimal digits (0-9, A-F, a-f) represents one byte.
// Whitespace is ignored, and > marks end of data. An odd trailing digit
// behaves as if it were followed by 0.
func ASCIIHexDecode(data []byte) ([]byte, error) {
	var result bytes.Buffer

	var high byte
	haveHigh := false
	for _, c := range data {
		if isWhitespace(c) {
			continue
		}
		if c == '>' {
			break
		}

		v, err := hexDigitToByte(c)
		if err != nil {
			return nil, err
		}
		if haveHigh {
			result.WriteByte(high<<4 | v)
			haveHigh = false
		} else {
			high = v
			haveHigh = true
		}
	}

	if haveHigh {
		result.WriteByte(high << 4)
	}

	return result.Bytes(), nil
}

// ASCII85Decode decodes ASCII base-85 (Ascii85) encoded data.
// Each group of 5 ASCII characters (! to u, values 33-117) represents 4
// bytes. The special character 'z' stands for four zero bytes and may only
// appear between groups. The sequence ~> marks end of data; a missing
// marker is tolerated.
func ASCII85Decode(data []byte) ([]byte, error) {
	var result bytes.Buffer

	digits := make([]byte, 0, 5)

	// flush decodes the pending group. A short final group of k digits
	// yields k-1 bytes and is padded with 'u' before conversion.
	flush := func() {
		if len(digits) == 0 {
			return
		}
		n := len(digits) - 1
		if n > 4 {
			n = 4
		}
		for len(digits) < 5 {
			digits = append(digits, 84) // 'u' - '!'
		}

		value := uint32(0)
		for _, d := range digits {
			value = value*85 + uint32(d)
		}
		for j := 0; j < n; j++ {
			result.WriteByte(byte(value >> (24 - j*8)))
		}
		digits = digits[:0]
	}

	for i := 0; i < len(data); i++ {
		c := data[i]
		switch {
		case isWhitespace(c):
			continue

		case c == '~' && i+1 < len(data) && data[i+1] == '>':
			flush()
			return result.Bytes(), nil

		case c == 'z' && len(digits) == 0:
			result.Write([]byte{0, 0, 0, 0})

		case c >= '!' && c <= 'u':
			digits = append(digits, c-'!')
			if len(digits) == 5 {
				flush()
			}

		default:
			return nil, fmt.Errorf("invalid ASCII85 character: %c", c)
		}
	}

	flush()
	return result.Bytes(), nil
}

// hexDigitToByte converts a hexadecimal character to its numeric value (0-15).
func hexDigitToByte(c byte) (byte, error) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', nil
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, nil
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, nil
	default:
		return 0, fmt.Errorf("invalid hex digit: %c", c)
	}
}

// isWhitespace reports whether c is a PDF whitespace character.
func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f' || c == 0
}
