package core

import (
	"bytes"
	"compress/zlib"
	"strings"
	"testing"
)

// zlibCompress compresses data for testing
func zlibCompress(data []byte) []byte {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	w.Write(data)
	w.Close()
	return buf.Bytes()
}

// TestStream tests basic stream properties
func TestStream(t *testing.T) {
	stream := &Stream{
		Dict: Dict{"Length": Int(5)},
		Data: []byte("Hello"),
	}

	if stream.Type() != ObjStream {
		t.Error("Stream should have ObjStream type")
	}

	s := stream.String()
	if !strings.Contains(s, "stream") {
		t.Error("Stream string should contain 'stream'")
	}
	if !strings.Contains(s, "5 bytes") {
		t.Error("Stream string should contain byte count")
	}
}

// TestNewStream tests that NewStream fills in the Length entry
func TestNewStream(t *testing.T) {
	stream := NewStream(Dict{"Filter": Name("FlateDecode")}, []byte("12345678"))

	length, ok := stream.Dict.GetInt("Length")
	if !ok {
		t.Fatal("NewStream should set Length")
	}
	if length != 8 {
		t.Errorf("Length = %d, want 8", length)
	}

	// A nil dict is allocated
	stream = NewStream(nil, []byte("xy"))
	if length, ok := stream.Dict.GetInt("Length"); !ok || length != 2 {
		t.Errorf("Length = %d (present %v), want 2", length, ok)
	}
}

// TestStreamDecodeNoFilter tests stream with no filter
func TestStreamDecodeNoFilter(t *testing.T) {
	data := []byte("Raw stream data")
	stream := &Stream{
		Dict: Dict{},
		Data: data,
	}

	decoded, err := stream.Decode()
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if !bytes.Equal(decoded, data) {
		t.Error("decoded data should equal original when no filter")
	}
}

// TestStreamDecodeFlateDecode tests FlateDecode filter
func TestStreamDecodeFlateDecode(t *testing.T) {
	original := []byte("This is test data for FlateDecode")
	compressed := zlibCompress(original)

	stream := &Stream{
		Dict: Dict{
			"Filter": Name("FlateDecode"),
		},
		Data: compressed,
	}

	decoded, err := stream.Decode()
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if !bytes.Equal(decoded, original) {
		t.Errorf("decoded data doesn't match\ngot:  %s\nwant: %s", decoded, original)
	}
}

// TestStreamDecodeFlateDecodeAbbrev tests FlateDecode with abbreviation
func TestStreamDecodeFlateDecodeAbbrev(t *testing.T) {
	original := []byte("Test data")
	compressed := zlibCompress(original)

	stream := &Stream{
		Dict: Dict{
			"Filter": Name("Fl"), // Abbreviation
		},
		Data: compressed,
	}

	decoded, err := stream.Decode()
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if !bytes.Equal(decoded, original) {
		t.Error("decoded data doesn't match")
	}
}

// TestStreamDecodeFlateDecodeWithParams tests FlateDecode with DecodeParms
func TestStreamDecodeFlateDecodeWithParams(t *testing.T) {
	// Create data with predictor
	data := []byte{
		0, 10, 20, 30, // Row with predictor=0 (None)
	}
	compressed := zlibCompress(data)

	stream := &Stream{
		Dict: Dict{
			"Filter": Name("FlateDecode"),
			"DecodeParms": Dict{
				"Predictor":        Int(10),
				"Columns":          Int(3),
				"Colors":           Int(1),
				"BitsPerComponent": Int(8),
			},
		},
		Data: compressed,
	}

	decoded, err := stream.Decode()
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	expected := []byte{10, 20, 30}
	if !bytes.Equal(decoded, expected) {
		t.Errorf("decoded data doesn't match\ngot:  %v\nwant: %v", decoded, expected)
	}
}

// TestStreamDecodeASCIIHexDecode tests ASCIIHexDecode filter
func TestStreamDecodeASCIIHexDecode(t *testing.T) {
	// "Hello" = 48 65 6C 6C 6F
	encoded := []byte("48656C6C6F>")

	stream := &Stream{
		Dict: Dict{
			"Filter": Name("ASCIIHexDecode"),
		},
		Data: encoded,
	}

	decoded, err := stream.Decode()
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	expected := []byte("Hello")
	if !bytes.Equal(decoded, expected) {
		t.Errorf("decoded data doesn't match")
	}
}

// TestStreamDecodeASCII85Decode tests ASCII85Decode filter
func TestStreamDecodeASCII85Decode(t *testing.T) {
	// "Hello" encoded in ASCII85
	encoded := []byte("87cURDZ~>")

	stream := &Stream{
		Dict: Dict{
			"Filter": Name("ASCII85Decode"),
		},
		Data: encoded,
	}

	decoded, err := stream.Decode()
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	expected := []byte("Hello")
	if !bytes.Equal(decoded, expected) {
		t.Errorf("decoded data doesn't match")
	}
}

// TestStreamDecodeLZWDecode tests LZWDecode filter
func TestStreamDecodeLZWDecode(t *testing.T) {
	// The worked example from the PDF specification
	encoded := []byte{0x80, 0x0B, 0x60, 0x50, 0x22, 0x0C, 0x0C, 0x85, 0x01}

	stream := &Stream{
		Dict: Dict{
			"Filter": Name("LZWDecode"),
		},
		Data: encoded,
	}

	decoded, err := stream.Decode()
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	expected := []byte("-----A---B")
	if !bytes.Equal(decoded, expected) {
		t.Errorf("decoded data doesn't match\ngot:  %q\nwant: %q", decoded, expected)
	}
}

// TestStreamDecodeRunLengthDecode tests RunLengthDecode filter
func TestStreamDecodeRunLengthDecode(t *testing.T) {
	encoded := []byte{0xFD, 'A', 2, 'B', 'C', 'D', 0x80}

	stream := &Stream{
		Dict: Dict{
			"Filter": Name("RunLengthDecode"),
		},
		Data: encoded,
	}

	decoded, err := stream.Decode()
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	expected := []byte("AAAABCD")
	if !bytes.Equal(decoded, expected) {
		t.Errorf("decoded data doesn't match\ngot:  %q\nwant: %q", decoded, expected)
	}
}

// TestStreamDecodeFilterChain tests multiple filters in sequence
func TestStreamDecodeFilterChain(t *testing.T) {
	// Apply ASCIIHexDecode then FlateDecode
	// 1. Original data
	original := []byte("Test data")

	// 2. Compress with FlateDecode
	compressed := zlibCompress(original)

	// 3. Encode with ASCIIHexDecode
	var hexEncoded bytes.Buffer
	for _, b := range compressed {
		hexEncoded.WriteString(string([]byte{hexDigit(b >> 4), hexDigit(b & 0xF)}))
	}
	hexEncoded.WriteByte('>')

	stream := &Stream{
		Dict: Dict{
			"Filter": Array{
				Name("ASCIIHexDecode"),
				Name("FlateDecode"),
			},
		},
		Data: hexEncoded.Bytes(),
	}

	decoded, err := stream.Decode()
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if !bytes.Equal(decoded, original) {
		t.Errorf("decoded data doesn't match")
	}
}

// TestStreamDecodeFilterChainWithParams tests filter chain with params
func TestStreamDecodeFilterChainWithParams(t *testing.T) {
	// Create simple test data
	original := []byte("AB")
	compressed := zlibCompress(original)

	// Hex encode
	var hexEncoded bytes.Buffer
	for _, b := range compressed {
		hexEncoded.WriteString(string([]byte{hexDigit(b >> 4), hexDigit(b & 0xF)}))
	}
	hexEncoded.WriteByte('>')

	stream := &Stream{
		Dict: Dict{
			"Filter": Array{
				Name("ASCIIHexDecode"),
				Name("FlateDecode"),
			},
			"DecodeParms": Array{
				Null{},                    // No params for ASCIIHexDecode
				Dict{"Predictor": Int(1)}, // No predictor for FlateDecode
			},
		},
		Data: hexEncoded.Bytes(),
	}

	decoded, err := stream.Decode()
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if !bytes.Equal(decoded, original) {
		t.Errorf("decoded data doesn't match")
	}
}

// TestStreamDecodeDCTDecode tests DCTDecode (JPEG) - should return as-is
func TestStreamDecodeDCTDecode(t *testing.T) {
	jpegData := []byte("\xFF\xD8\xFF...") // Fake JPEG header

	stream := &Stream{
		Dict: Dict{
			"Filter": Name("DCTDecode"),
		},
		Data: jpegData,
	}

	decoded, err := stream.Decode()
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	// DCTDecode should return data as-is (for now)
	if !bytes.Equal(decoded, jpegData) {
		t.Error("DCTDecode should return data as-is")
	}
}

// TestStreamDecodeUnknownFilter tests error handling for unknown filter
func TestStreamDecodeUnknownFilter(t *testing.T) {
	stream := &Stream{
		Dict: Dict{
			"Filter": Name("UnknownFilter"),
		},
		Data: []byte("data"),
	}

	_, err := stream.Decode()
	if err == nil {
		t.Error("expected error for unknown filter")
	}
}

// TestStreamDecodeInvalidFilterType tests error handling for invalid Filter type
func TestStreamDecodeInvalidFilterType(t *testing.T) {
	stream := &Stream{
		Dict: Dict{
			"Filter": Int(123), // Invalid type
		},
		Data: []byte("data"),
	}

	_, err := stream.Decode()
	if err == nil {
		t.Error("expected error for invalid filter type")
	}
}

// TestStreamDecodedCaching tests that Decoded computes once and reuses
func TestStreamDecodedCaching(t *testing.T) {
	original := []byte("cache me")
	stream := &Stream{
		Dict: Dict{"Filter": Name("FlateDecode")},
		Data: zlibCompress(original),
	}

	first, err := stream.Decoded()
	if err != nil {
		t.Fatalf("Decoded failed: %v", err)
	}
	if !bytes.Equal(first, original) {
		t.Fatalf("decoded data doesn't match\ngot:  %q\nwant: %q", first, original)
	}

	// Clobber the raw data; the cached result must survive
	stream.Data = []byte("garbage")
	second, err := stream.Decoded()
	if err != nil {
		t.Fatalf("Decoded failed on second call: %v", err)
	}
	if !bytes.Equal(second, original) {
		t.Error("Decoded should return the cached result")
	}
}

// TestParamsObjToDict tests the parameter conversion helper
func TestParamsObjToDict(t *testing.T) {
	// Dict
	dict := Dict{"Key": Int(123)}
	result := paramsObjToDict(dict)
	if result == nil {
		t.Error("expected dict to return as-is")
	}

	// Null
	result = paramsObjToDict(Null{})
	if result != nil {
		t.Error("expected Null to return nil")
	}

	// nil
	result = paramsObjToDict(nil)
	if result != nil {
		t.Error("expected nil to return nil")
	}

	// Other type
	result = paramsObjToDict(Int(123))
	if result != nil {
		t.Error("expected non-dict to return nil")
	}
}

// TestDictToParams tests PDF object to primitive conversion
func TestDictToParams(t *testing.T) {
	dict := Dict{
		"Predictor": Int(12),
		"Gamma":     Real(2.2),
		"BlackIs1":  Bool(true),
		"Name":      Name("DeviceGray"),
	}

	params := dictToParams(dict)

	if v, ok := params["Predictor"].(int); !ok || v != 12 {
		t.Errorf("Predictor = %v, want int 12", params["Predictor"])
	}
	if v, ok := params["Gamma"].(float64); !ok || v != 2.2 {
		t.Errorf("Gamma = %v, want float64 2.2", params["Gamma"])
	}
	if v, ok := params["BlackIs1"].(bool); !ok || !v {
		t.Errorf("BlackIs1 = %v, want true", params["BlackIs1"])
	}
	if v, ok := params["Name"].(string); !ok || v != "DeviceGray" {
		t.Errorf("Name = %v, want DeviceGray", params["Name"])
	}

	if dictToParams(nil) != nil {
		t.Error("nil dict should produce nil params")
	}
}

// hexDigit converts a 4-bit value to a hex digit
func hexDigit(b byte) byte {
	if b < 10 {
		return '0' + b
	}
	return 'A' + (b - 10)
}
