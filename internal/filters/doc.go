// Package filters provides PDF stream decompression filters.
//
// PDF streams can be compressed using various algorithms. This package
// implements the standard PDF decompression filters for regular streams
// and for inline image data embedded in content streams.
//
// # Dispatch
//
// Decode selects a filter by its PDF name:
//
//	decoded, err := filters.Decode(data, "FlateDecode", params)
//
// Inline image abbreviations (Fl, AHx, A85, LZW, RL, CCF, DCT) are
// accepted alongside the full names.
//
// # Supported Filters
//
// FlateDecode (zlib/deflate):
//
//	decoded, err := filters.FlateDecode(data, params)
//
// FlateDecode supports PNG predictors for improved compression of image data.
// The Predictor parameter specifies the algorithm:
//   - 1: No prediction (default)
//   - 2: TIFF Predictor 2
//   - 10-15: PNG predictors (None, Sub, Up, Average, Paeth)
//
// LZWDecode:
//
//	decoded, err := filters.LZWDecode(data, params)
//
// Decodes variable-width LZW with the PDF EarlyChange timing. Accepts the
// same predictor parameters as FlateDecode.
//
// ASCIIHexDecode:
//
//	decoded, err := filters.ASCIIHexDecode(data)
//
// Decodes hexadecimal-encoded data. Whitespace is ignored.
//
// ASCII85Decode:
//
//	decoded, err := filters.ASCII85Decode(data)
//
// Decodes ASCII base-85 encoded data (also known as Ascii85).
//
// RunLengthDecode:
//
//	decoded, err := filters.RunLengthDecode(data)
//
// Decodes byte-oriented run-length encoded data.
//
// CCITTFaxDecode:
//
//	decoded, err := filters.CCITTFaxDecode(data, params)
//
// Decodes CCITT Group 3/4 fax data for bi-level images.
//
// # Decode Parameters
//
// Filters accept a Params map for additional parameters:
//
//	params := filters.Params{
//	    "Predictor": 12,
//	    "Columns":   100,
//	    "Colors":    3,
//	}
//	decoded, err := filters.FlateDecode(data, params)
package filters
