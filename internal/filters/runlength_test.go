package filters

import (
	"bytes"
	"testing"
)

// TestRunLengthDecodeBasic tests a mix of runs and literal copies
func TestRunLengthDecodeBasic(t *testing.T) {
	// 0xFD repeats the next byte 257-253=4 times, 2 copies three bytes
	// literally, 0x80 ends the data
	encoded := []byte{0xFD, 'A', 2, 'B', 'C', 'D', 0x80}
	expected := []byte("AAAABCD")

	decoded, err := RunLengthDecode(encoded)
	if err != nil {
		t.Fatalf("RunLengthDecode failed: %v", err)
	}

	if !bytes.Equal(decoded, expected) {
		t.Errorf("decoded data doesn't match\ngot:  %q\nwant: %q", decoded, expected)
	}
}

// TestRunLengthDecodeLiteralOnly tests plain literal copies
func TestRunLengthDecodeLiteralOnly(t *testing.T) {
	// Length byte 4 copies the next five bytes
	encoded := []byte{4, 'H', 'e', 'l', 'l', 'o', 0x80}
	expected := []byte("Hello")

	decoded, err := RunLengthDecode(encoded)
	if err != nil {
		t.Fatalf("RunLengthDecode failed: %v", err)
	}

	if !bytes.Equal(decoded, expected) {
		t.Errorf("decoded data doesn't match\ngot:  %q\nwant: %q", decoded, expected)
	}
}

// TestRunLengthDecodeLongRun tests the maximum run length
func TestRunLengthDecodeLongRun(t *testing.T) {
	// 0x81 repeats the next byte 257-129=128 times
	encoded := []byte{0x81, 'x', 0x80}

	decoded, err := RunLengthDecode(encoded)
	if err != nil {
		t.Fatalf("RunLengthDecode failed: %v", err)
	}

	if len(decoded) != 128 {
		t.Fatalf("expected 128 bytes, got %d", len(decoded))
	}
	for i, b := range decoded {
		if b != 'x' {
			t.Fatalf("byte %d is %c, want x", i, b)
		}
	}
}

// TestRunLengthDecodeNoEOD tests data that stops without the 0x80 marker
func TestRunLengthDecodeNoEOD(t *testing.T) {
	encoded := []byte{1, 'A', 'B'}
	expected := []byte("AB")

	decoded, err := RunLengthDecode(encoded)
	if err != nil {
		t.Fatalf("RunLengthDecode failed: %v", err)
	}

	if !bytes.Equal(decoded, expected) {
		t.Errorf("decoded data doesn't match\ngot:  %q\nwant: %q", decoded, expected)
	}
}

// TestRunLengthDecodeTruncatedLiteral tests a literal copy that runs past
// the end of the data
func TestRunLengthDecodeTruncatedLiteral(t *testing.T) {
	// Length byte promises four bytes but only two follow
	encoded := []byte{3, 'A', 'B'}

	_, err := RunLengthDecode(encoded)
	if err == nil {
		t.Error("expected error for truncated literal run")
	}
}

// TestRunLengthDecodeTruncatedRun tests a repeat with no byte to repeat
func TestRunLengthDecodeTruncatedRun(t *testing.T) {
	encoded := []byte{0xFD}

	_, err := RunLengthDecode(encoded)
	if err == nil {
		t.Error("expected error for truncated repeat run")
	}
}

// TestRunLengthDecodeEmpty tests decoding empty input
func TestRunLengthDecodeEmpty(t *testing.T) {
	decoded, err := RunLengthDecode([]byte{})
	if err != nil {
		t.Fatalf("RunLengthDecode failed: %v", err)
	}

	if len(decoded) != 0 {
		t.Errorf("expected empty output, got %d bytes", len(decoded))
	}
}
