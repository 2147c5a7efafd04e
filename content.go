package pagestream

import (
	"errors"
	"fmt"

	"github.com/tsawler/pagestream/contentstream"
	"github.com/tsawler/pagestream/core"
	"github.com/tsawler/pagestream/model"
)

// ErrNoResolver is returned when content loading meets an indirect
// reference and no resolver was supplied via WithResolver.
var ErrNoResolver = errors.New("indirect reference requires a resolver")

// maxRefChain is the longest reference chain followed before assuming
// a cycle.
const maxRefChain = 32

// Content is the drawing description of a page: one or more decoded
// stream parts plus the flattened operation sequence parsed from them.
//
// Operations is always derivable from Parts by parsing. Content built
// from operations gets a single synthetic part holding their serialized
// form, so the two representations agree by construction.
type Content struct {
	// Parts holds the decoded data of each content stream part, in
	// document order. Usually one, but page dictionaries may split
	// content across any number of streams.
	Parts [][]byte

	// Operations is the parsed operation sequence across all parts.
	Operations []contentstream.Operation
}

// ContentFromObject loads content from its object form. A stream becomes
// single-part content; an array yields one part per element, with the
// operations of later parts following earlier ones; an indirect reference
// is resolved and retried. The parts of an array parse as one logical
// stream, so parser state such as an open compatibility section carries
// across part boundaries.
func ContentFromObject(obj core.Object, opts ...Option) (*Content, error) {
	o := buildOptions(opts)

	obj, err := o.followRefs(obj)
	if err != nil {
		return nil, fmt.Errorf("content: %w", err)
	}

	switch v := obj.(type) {
	case *core.Stream:
		data, err := v.Decoded()
		if err != nil {
			return nil, fmt.Errorf("content: %w", err)
		}
		ops, err := contentstream.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("content: %w", err)
		}
		return &Content{Parts: [][]byte{data}, Operations: ops}, nil

	case core.Array:
		content := &Content{}
		var parser *contentstream.Parser
		for i, elem := range v {
			data, err := o.partData(elem)
			if err != nil {
				return nil, fmt.Errorf("content part %d: %w", i, err)
			}
			content.Parts = append(content.Parts, data)
			if parser == nil {
				parser = contentstream.NewParser(data)
				content.Operations, err = parser.Parse()
			} else {
				content.Operations, err = parser.ParseNext(data)
			}
			if err != nil {
				return nil, fmt.Errorf("content part %d: %w", i, err)
			}
		}
		return content, nil

	default:
		return nil, fmt.Errorf("content: cannot load from %T", obj)
	}
}

// ContentFromOperations builds content whose single part is the
// serialized form of ops.
func ContentFromOperations(ops []contentstream.Operation) *Content {
	return &Content{
		Parts:      [][]byte{contentstream.Serialize(ops)},
		Operations: ops,
	}
}

// Object converts the content back to object form: single-part content
// becomes one stream object, multi-part content an array of streams.
// Parts hold decoded data, so the streams carry no filters.
func (c *Content) Object() core.Object {
	if len(c.Parts) == 1 {
		return core.NewStream(nil, c.Parts[0])
	}
	arr := make(core.Array, len(c.Parts))
	for i, part := range c.Parts {
		arr[i] = core.NewStream(nil, part)
	}
	return arr
}

// partData resolves one content array element to its decoded stream data.
func (o options) partData(obj core.Object) ([]byte, error) {
	obj, err := o.followRefs(obj)
	if err != nil {
		return nil, err
	}
	stream, ok := obj.(*core.Stream)
	if !ok {
		return nil, fmt.Errorf("expected a stream, got %T", obj)
	}
	return stream.Decoded()
}

// followRefs chases a reference chain to its target object.
func (o options) followRefs(obj core.Object) (core.Object, error) {
	for hops := 0; hops < maxRefChain; hops++ {
		ref, ok := obj.(core.IndirectRef)
		if !ok {
			return obj, nil
		}
		resolved, err := o.resolve(ref)
		if err != nil {
			return nil, err
		}
		obj = resolved
	}
	return nil, fmt.Errorf("reference chain longer than %d links", maxRefChain)
}

// FormXObject is a self-contained drawing description: a single stream
// whose dictionary describes the form and whose data is a content stream.
type FormXObject struct {
	// Dict is the stream dictionary, carrying entries such as BBox,
	// Matrix and Resources.
	Dict core.Dict

	// Data is the decoded content stream.
	Data []byte

	// Operations is the parsed operation sequence.
	Operations []contentstream.Operation
}

// NewFormXObject decodes and parses a form XObject stream.
func NewFormXObject(stream *core.Stream) (*FormXObject, error) {
	data, err := stream.Decoded()
	if err != nil {
		return nil, fmt.Errorf("form xobject: %w", err)
	}
	ops, err := contentstream.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("form xobject: %w", err)
	}
	return &FormXObject{Dict: stream.Dict, Data: data, Operations: ops}, nil
}

// BBox returns the form's bounding box in form space. The dictionary
// stores it as the four numbers [llx lly urx ury]; the returned rectangle
// uses the lower-left corner and extent.
func (f *FormXObject) BBox() (model.Rect, bool) {
	arr, ok := f.Dict.GetArray("BBox")
	if !ok || len(arr) != 4 {
		return model.Rect{}, false
	}
	var n [4]float64
	for i, obj := range arr {
		v, ok := objNumber(obj)
		if !ok {
			return model.Rect{}, false
		}
		n[i] = v
	}
	return model.Rect{X: n[0], Y: n[1], Width: n[2] - n[0], Height: n[3] - n[1]}, true
}

// Matrix returns the form matrix mapping form space to the space of the
// content that places the form, or the identity when the dictionary has
// none.
func (f *FormXObject) Matrix() model.Matrix {
	arr, ok := f.Dict.GetArray("Matrix")
	if !ok || len(arr) != 6 {
		return model.Identity()
	}
	var m model.Matrix
	for i, obj := range arr {
		v, ok := objNumber(obj)
		if !ok {
			return model.Identity()
		}
		m[i] = v
	}
	return m
}

// Resources returns the form's resource dictionary, if present.
func (f *FormXObject) Resources() (core.Dict, bool) {
	return f.Dict.GetDict("Resources")
}

// objNumber reads an integer or real object as a float64.
func objNumber(obj core.Object) (float64, bool) {
	switch v := obj.(type) {
	case core.Int:
		return float64(v), true
	case core.Real:
		return float64(v), true
	}
	return 0, false
}
