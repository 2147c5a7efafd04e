// Package pagestream converts PDF content streams between raw bytes and a
// typed operation sequence, in both directions.
//
// Basic usage:
//
//	ops, err := pagestream.Parse(data)
//	if err != nil {
//	    // handle error
//	}
//	data = pagestream.Serialize(ops)
//
// The content entry of a page dictionary may be a single stream, an array
// of streams, or an indirect reference to either; Content loads all three
// forms, decoding stream filters along the way:
//
//	content, err := pagestream.ContentFromObject(obj, pagestream.WithResolver(r))
//
// For advanced use cases, the lower-level contentstream and core packages
// are also available.
package pagestream

import (
	"github.com/tsawler/pagestream/contentstream"
)

// Parse parses decoded content-stream bytes into a typed operation
// sequence. The data must already be filter-decoded; ContentFromObject
// does both steps for stream objects.
//
// Example:
//
//	ops, err := pagestream.Parse(data)
func Parse(data []byte) ([]contentstream.Operation, error) {
	return contentstream.Parse(data)
}

// Serialize writes an operation sequence back to content-stream bytes.
// Parsing the result yields the sequence back, and the byte form is
// stable under repeated parse and serialize round trips.
//
// Example:
//
//	data := pagestream.Serialize(ops)
func Serialize(ops []contentstream.Operation) []byte {
	return contentstream.Serialize(ops)
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	ops := pagestream.Must(pagestream.Parse(data))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
