package filters

import (
	"bytes"
	"testing"
)

// TestASCIIHexDecodeBasic tests basic ASCII hex decoding
func TestASCIIHexDecodeBasic(t *testing.T) {
	// "Hello" = 48 65 6C 6C 6F
	encoded := []byte("48656C6C6F>")
	expected := []byte("Hello")

	decoded, err := ASCIIHexDecode(encoded)
	if err != nil {
		t.Fatalf("ASCIIHexDecode failed: %v", err)
	}

	if !bytes.Equal(decoded, expected) {
		t.Errorf("decoded data doesn't match\ngot:  %s\nwant: %s", decoded, expected)
	}
}

// TestASCIIHexDecodeWithWhitespace tests decoding with whitespace
func TestASCIIHexDecodeWithWhitespace(t *testing.T) {
	encoded := []byte("48 65 6C 6C 6F>")
	expected := []byte("Hello")

	decoded, err := ASCIIHexDecode(encoded)
	if err != nil {
		t.Fatalf("ASCIIHexDecode failed: %v", err)
	}

	if !bytes.Equal(decoded, expected) {
		t.Errorf("decoded data doesn't match")
	}
}

// TestASCIIHexDecodeSplitPair tests a hex pair interrupted by whitespace
func TestASCIIHexDecodeSplitPair(t *testing.T) {
	encoded := []byte("4\n8>")
	expected := []byte("H")

	decoded, err := ASCIIHexDecode(encoded)
	if err != nil {
		t.Fatalf("ASCIIHexDecode failed: %v", err)
	}

	if !bytes.Equal(decoded, expected) {
		t.Errorf("decoded data doesn't match\ngot:  %v\nwant: %v", decoded, expected)
	}
}

// TestASCIIHexDecodeOddDigits tests decoding with an odd number of digits
func TestASCIIHexDecodeOddDigits(t *testing.T) {
	// The final digit is treated as if followed by 0
	encoded := []byte("48656C6C6>") // Missing final F
	expected := []byte("Hell`")     // 6 becomes 60

	decoded, err := ASCIIHexDecode(encoded)
	if err != nil {
		t.Fatalf("ASCIIHexDecode failed: %v", err)
	}

	if !bytes.Equal(decoded, expected) {
		t.Errorf("decoded data doesn't match\ngot:  %v\nwant: %v", decoded, expected)
	}
}

// TestASCIIHexDecodeNoEOD tests decoding without the > marker
func TestASCIIHexDecodeNoEOD(t *testing.T) {
	encoded := []byte("48656C6C6F")
	expected := []byte("Hello")

	decoded, err := ASCIIHexDecode(encoded)
	if err != nil {
		t.Fatalf("ASCIIHexDecode failed: %v", err)
	}

	if !bytes.Equal(decoded, expected) {
		t.Errorf("decoded data doesn't match")
	}
}

// TestASCIIHexDecodeInvalidChar tests error handling for invalid characters
func TestASCIIHexDecodeInvalidChar(t *testing.T) {
	encoded := []byte("48G5")

	_, err := ASCIIHexDecode(encoded)
	if err == nil {
		t.Error("expected error for invalid hex character")
	}
}

// TestASCII85DecodeBasic tests basic ASCII85 decoding
func TestASCII85DecodeBasic(t *testing.T) {
	// "Hello" encoded in ASCII85
	encoded := []byte("87cURDZ~>")
	expected := []byte("Hello")

	decoded, err := ASCII85Decode(encoded)
	if err != nil {
		t.Fatalf("ASCII85Decode failed: %v", err)
	}

	if !bytes.Equal(decoded, expected) {
		t.Errorf("decoded data doesn't match\ngot:  %s\nwant: %s", decoded, expected)
	}
}

// TestASCII85DecodeZero tests the z shorthand for four zero bytes
func TestASCII85DecodeZero(t *testing.T) {
	encoded := []byte("z~>")
	expected := []byte{0, 0, 0, 0}

	decoded, err := ASCII85Decode(encoded)
	if err != nil {
		t.Fatalf("ASCII85Decode failed: %v", err)
	}

	if !bytes.Equal(decoded, expected) {
		t.Errorf("decoded data doesn't match\ngot:  %v\nwant: %v", decoded, expected)
	}
}

// TestASCII85DecodeWithWhitespace tests decoding with embedded whitespace
func TestASCII85DecodeWithWhitespace(t *testing.T) {
	encoded := []byte("87cU RDZ ~>")
	expected := []byte("Hello")

	decoded, err := ASCII85Decode(encoded)
	if err != nil {
		t.Fatalf("ASCII85Decode failed: %v", err)
	}

	if !bytes.Equal(decoded, expected) {
		t.Errorf("decoded data doesn't match")
	}
}

// TestASCII85DecodeMultipleGroups tests decoding across 5-character groups
func TestASCII85DecodeMultipleGroups(t *testing.T) {
	// "Hello World" encoded
	encoded := []byte("87cURD]i,\"Ebo7~>")
	expected := []byte("Hello World")

	decoded, err := ASCII85Decode(encoded)
	if err != nil {
		t.Fatalf("ASCII85Decode failed: %v", err)
	}

	if !bytes.Equal(decoded, expected) {
		t.Errorf("decoded data doesn't match\ngot:  %s\nwant: %s", decoded, expected)
	}
}

// TestASCII85DecodeInvalidChar tests error handling for invalid characters
func TestASCII85DecodeInvalidChar(t *testing.T) {
	encoded := []byte("87\xFFcURD~>")

	_, err := ASCII85Decode(encoded)
	if err == nil {
		t.Error("expected error for invalid ASCII85 character")
	}
}

// TestASCII85DecodeNoEOD tests decoding without the ~> marker
func TestASCII85DecodeNoEOD(t *testing.T) {
	encoded := []byte("87cURDZ")
	expected := []byte("Hello")

	decoded, err := ASCII85Decode(encoded)
	if err != nil {
		t.Fatalf("ASCII85Decode failed: %v", err)
	}

	if !bytes.Equal(decoded, expected) {
		t.Errorf("decoded data doesn't match")
	}
}

// TestHexDigitToByte tests the hex conversion helper
func TestHexDigitToByte(t *testing.T) {
	tests := []struct {
		input    byte
		expected byte
		hasError bool
	}{
		{'0', 0, false},
		{'9', 9, false},
		{'A', 10, false},
		{'F', 15, false},
		{'a', 10, false},
		{'f', 15, false},
		{'G', 0, true},
		{'g', 0, true},
		{'@', 0, true},
	}

	for _, tt := range tests {
		result, err := hexDigitToByte(tt.input)
		if tt.hasError {
			if err == nil {
				t.Errorf("hexDigitToByte(%c) expected error", tt.input)
			}
		} else {
			if err != nil {
				t.Errorf("hexDigitToByte(%c) unexpected error: %v", tt.input, err)
			}
			if result != tt.expected {
				t.Errorf("hexDigitToByte(%c) = %d, want %d", tt.input, result, tt.expected)
			}
		}
	}
}

// TestIsWhitespace tests the whitespace check helper
func TestIsWhitespace(t *testing.T) {
	whitespaceChars := []byte{' ', '\t', '\r', '\n', '\f', 0}
	for _, c := range whitespaceChars {
		if !isWhitespace(c) {
			t.Errorf("isWhitespace(%d) should be true", c)
		}
	}

	nonWhitespaceChars := []byte{'a', 'Z', '0', '!', '\x01'}
	for _, c := range nonWhitespaceChars {
		if isWhitespace(c) {
			t.Errorf("isWhitespace(%c) should be false", c)
		}
	}
}
