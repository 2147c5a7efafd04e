package core

import (
	"fmt"

	"github.com/tsawler/pagestream/internal/filters"
)

// Stream represents a PDF stream object: a dictionary plus raw data.
type Stream struct {
	Dict    Dict
	Data    []byte
	decoded []byte
}

func (s *Stream) Type() ObjectType { return ObjStream }
func (s *Stream) String() string {
	return fmt.Sprintf("stream %s (%d bytes)", s.Dict.String(), len(s.Data))
}

// NewStream creates a stream over raw (already encoded) data, setting the
// Length entry to match.
func NewStream(dict Dict, data []byte) *Stream {
	if dict == nil {
		dict = Dict{}
	}
	dict.Set("Length", Int(len(data)))
	return &Stream{Dict: dict, Data: data}
}

// Decoded returns the decoded stream data, computing and caching it on
// first use.
func (s *Stream) Decoded() ([]byte, error) {
	if s.decoded != nil {
		return s.decoded, nil
	}
	data, err := s.Decode()
	if err != nil {
		return nil, err
	}
	s.decoded = data
	return data, nil
}

// Decode decodes the stream data according to the Filter entry in the
// stream dictionary, applying a single filter or a filter chain in order.
// DecodeParms may be a single dictionary shared by all filters or an array
// parallel to the filter array.
func (s *Stream) Decode() ([]byte, error) {
	filterObj := s.Dict.Get("Filter")
	if filterObj == nil {
		// No filter - return raw data
		return s.Data, nil
	}

	paramsObj := s.Dict.Get("DecodeParms")

	// Handle single filter
	if filterName, ok := filterObj.(Name); ok {
		return filters.Decode(s.Data, string(filterName), dictToParams(paramsObjToDict(paramsObj)))
	}

	// Handle filter array (chain of filters)
	if filterArray, ok := filterObj.(Array); ok {
		data := s.Data

		for i, filter := range filterArray {
			filterName, ok := filter.(Name)
			if !ok {
				return nil, fmt.Errorf("filter %d is not a name: %T", i, filter)
			}

			// Get corresponding decode params if array
			var params Dict
			if paramsArray, ok := paramsObj.(Array); ok {
				if i < len(paramsArray) {
					params = paramsObjToDict(paramsArray[i])
				}
			} else {
				// Single params for all filters
				params = paramsObjToDict(paramsObj)
			}

			var err error
			data, err = filters.Decode(data, string(filterName), dictToParams(params))
			if err != nil {
				return nil, fmt.Errorf("filter %d (%s) failed: %w", i, filterName, err)
			}
		}

		return data, nil
	}

	return nil, fmt.Errorf("invalid Filter type: %T", filterObj)
}

// paramsObjToDict converts a DecodeParms object to a Dict.
// Returns nil if the object is nil, Null, or not a Dict.
func paramsObjToDict(obj Object) Dict {
	if obj == nil {
		return nil
	}
	if dict, ok := obj.(Dict); ok {
		return dict
	}
	return nil
}

// dictToParams converts a core.Dict to filters.Params, translating PDF
// object types to Go primitive types (Int->int, Real->float64, and so on).
func dictToParams(dict Dict) filters.Params {
	if dict == nil {
		return nil
	}

	params := make(filters.Params)
	for k, v := range dict {
		switch obj := v.(type) {
		case Int:
			params[k] = int(obj)
		case Real:
			params[k] = float64(obj)
		case Bool:
			params[k] = bool(obj)
		case String:
			params[k] = string(obj)
		case Name:
			params[k] = string(obj)
		default:
			// Keep other types as-is
			params[k] = v
		}
	}
	return params
}
