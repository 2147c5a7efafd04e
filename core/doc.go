// Package core provides low-level PDF parsing primitives and object types.
//
// This package implements the fundamental building blocks for working with
// PDF syntax, including all eight PDF object types (null, boolean, integer,
// real, string, name, array, and dictionary), as well as streams and
// indirect references.
//
// # Object Types
//
// PDF defines eight basic object types, all implemented as types satisfying
// the Object interface:
//
//   - [Null] - represents the PDF null object
//   - [Bool] - represents PDF boolean values (true/false)
//   - [Int] - represents PDF integers
//   - [Real] - represents PDF real numbers (floating point)
//   - [String] - represents PDF string objects (literal or hexadecimal)
//   - [Name] - represents PDF name objects (e.g., /Type, /Font)
//   - [Array] - represents PDF arrays
//   - [Dict] - represents PDF dictionaries
//
// Additionally, [Stream] represents a PDF stream (dictionary + binary data),
// and [IndirectRef] represents a reference to an indirect object.
//
// Every object's String method renders the exact wire syntax, with strings
// escaped, names #-escaped, and dictionary keys in sorted order, so that
// formatting an object and parsing it back yields the same value.
//
// # Lexing and Parsing
//
// The [Lexer] tokenizes a byte slice and exposes its position, which can be
// saved and restored. Content-stream parsing depends on that: an attempt to
// parse a value that fails because the next token is an operator is undone
// by rewinding, and the token is re-read raw with [Lexer.ReadToken].
//
// The [Parser] type parses complete objects from a lexer. It can parse
// individual values or whole indirect object definitions, and accepts a
// [ReferenceResolver] for streams whose Length is an indirect reference.
//
// # Stream Decoding
//
// Streams can be compressed using various filters. The [Stream.Decoded]
// method handles decompression, supporting FlateDecode, LZWDecode,
// ASCIIHexDecode, ASCII85Decode, RunLengthDecode, and CCITTFaxDecode,
// including filter chains with per-filter decode parameters.
package core
