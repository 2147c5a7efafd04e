package contentstream

import (
	"errors"
	"fmt"
	"io"

	"github.com/tsawler/pagestream/core"
)

// Inline image dictionaries may abbreviate their keys and several of their
// values. The parser expands everything to canonical form so downstream
// code sees a single spelling.
var inlineKeyNames = map[string]string{
	"BPC": "BitsPerComponent",
	"CS":  "ColorSpace",
	"D":   "Decode",
	"DP":  "DecodeParms",
	"F":   "Filter",
	"H":   "Height",
	"IM":  "ImageMask",
	"I":   "Interpolate",
	"W":   "Width",
}

var inlineColorSpaceNames = map[string]string{
	"G":    "DeviceGray",
	"RGB":  "DeviceRGB",
	"CMYK": "DeviceCMYK",
	"I":    "Indexed",
}

var inlineFilterNames = map[string]string{
	"AHx": "ASCIIHexDecode",
	"A85": "ASCII85Decode",
	"LZW": "LZWDecode",
	"Fl":  "FlateDecode",
	"RL":  "RunLengthDecode",
	"CCF": "CCITTFaxDecode",
	"DCT": "DCTDecode",
}

// expandName maps an abbreviated name to its canonical form, passing
// through names that are not abbreviations.
func expandName(name core.Name, table map[string]string) core.Name {
	if full, ok := table[string(name)]; ok {
		return core.Name(full)
	}
	return name
}

// expandNames expands name abbreviations in obj, descending into arrays.
// Values of other types pass through unchanged.
func expandNames(obj core.Object, table map[string]string) core.Object {
	switch v := obj.(type) {
	case core.Name:
		return expandName(v, table)
	case core.Array:
		out := make(core.Array, len(v))
		for i, elem := range v {
			out[i] = expandNames(elem, table)
		}
		return out
	}
	return obj
}

// Filter is one entry in an inline image's decode chain.
type Filter struct {
	Name   core.Name
	Params core.Dict // nil when the image declares no DecodeParms
}

// InlineImage is the payload of a BI .. ID .. EI sequence: the metadata
// dictionary with keys and values in canonical form, the still-encoded
// payload bytes, and the filter chain declared for them.
type InlineImage struct {
	Dict    core.Dict
	Data    []byte
	Filters []Filter
}

// Width returns the image width in samples.
func (img InlineImage) Width() int {
	n, _ := img.Dict.GetInt("Width")
	return int(n)
}

// Height returns the image height in samples.
func (img InlineImage) Height() int {
	n, _ := img.Dict.GetInt("Height")
	return int(n)
}

// BitsPerComponent returns the bits per color component.
func (img InlineImage) BitsPerComponent() int {
	n, _ := img.Dict.GetInt("BitsPerComponent")
	return int(n)
}

// ColorSpace returns the canonical color space entry: a name such as
// /DeviceGray, or an array for Indexed spaces.
func (img InlineImage) ColorSpace() core.Object {
	return img.Dict.Get("ColorSpace")
}

// Decode returns the component decode array, if the image declares one.
func (img InlineImage) Decode() (core.Array, bool) {
	return img.Dict.GetArray("Decode")
}

// ImageMask reports whether the image is a stencil mask. Absent means false.
func (img InlineImage) ImageMask() bool {
	b, _ := img.Dict.GetBool("ImageMask")
	return bool(b)
}

// Interpolate reports whether interpolation is requested. Absent means
// false.
func (img InlineImage) Interpolate() bool {
	b, _ := img.Dict.GetBool("Interpolate")
	return bool(b)
}

// Intent returns the rendering intent override, if the image declares one.
func (img InlineImage) Intent() (RenderingIntent, bool) {
	name, ok := img.Dict.GetName("Intent")
	if !ok {
		return 0, false
	}
	return ParseRenderingIntent(string(name))
}

// DecodedData applies the declared filter chain to the payload and returns
// the raw samples.
func (img InlineImage) DecodedData() ([]byte, error) {
	s := &core.Stream{Dict: img.Dict, Data: img.Data}
	return s.Decode()
}

// parseInlineImage reads everything after a BI operator: the metadata as
// bare key/value pairs, the ID marker, and the payload bytes up to the
// newline-EI terminator.
//
// The payload length is not declared anywhere, so its end is found by
// scanning for the first "\nEI". A payload containing that byte sequence
// cannot be represented inline.
func parseInlineImage(lexer *core.Lexer, parser *core.Parser) (InlineImage, error) {
	dict := make(core.Dict)
	for {
		save := lexer.Pos()
		obj, err := parser.ParseObject()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return InlineImage{}, fmt.Errorf("%w: data ended inside image dictionary", ErrUnterminatedImage)
			}
			// Not a value, so it should be the ID marker.
			lexer.SetPos(save)
			break
		}
		key, ok := obj.(core.Name)
		if !ok {
			return InlineImage{}, fmt.Errorf("%w: image dictionary key is %T, want name", ErrOperandType, obj)
		}
		value, err := parser.ParseObject()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return InlineImage{}, fmt.Errorf("%w: data ended inside image dictionary", ErrUnterminatedImage)
			}
			return InlineImage{}, fmt.Errorf("image dictionary value for %s: %w", key, err)
		}
		dict[string(expandName(key, inlineKeyNames))] = value
	}

	tok, err := lexer.ReadToken()
	if err != nil {
		return InlineImage{}, err
	}
	if string(tok.Value) != "ID" {
		return InlineImage{}, fmt.Errorf("expected ID after image dictionary, got %q", tok.Value)
	}
	// A single whitespace byte separates ID from the payload.
	dataStart := lexer.Pos() + 1

	img := InlineImage{Dict: dict}
	if err := img.normalize(); err != nil {
		return InlineImage{}, err
	}

	end, ok := lexer.SeekSubstring([]byte("\nEI"))
	if !ok {
		return InlineImage{}, ErrUnterminatedImage
	}
	img.Data = lexer.Substring(dataStart, end)
	return img, nil
}

// normalize validates the required metadata, expands value abbreviations in
// place, and assembles the filter chain.
func (img *InlineImage) normalize() error {
	for _, key := range []string{"Width", "Height", "BitsPerComponent"} {
		obj, err := img.Dict.Require("inline image", key)
		if err != nil {
			return err
		}
		if _, ok := obj.(core.Int); !ok {
			return fmt.Errorf("%w: /%s is %T, want integer", ErrOperandType, key, obj)
		}
	}

	cs, err := img.Dict.Require("inline image", "ColorSpace")
	if err != nil {
		return err
	}
	img.Dict["ColorSpace"] = expandNames(cs, inlineColorSpaceNames)

	filter, err := img.Dict.Require("inline image", "Filter")
	if err != nil {
		return err
	}
	filter = expandNames(filter, inlineFilterNames)
	img.Dict["Filter"] = filter

	var params core.Dict
	if obj, ok := img.Dict["DecodeParms"]; ok {
		d, isDict := obj.(core.Dict)
		if !isDict {
			return fmt.Errorf("%w: /DecodeParms is %T, want dictionary", ErrOperandType, obj)
		}
		params = d
	}

	// Every filter in a chain shares the one DecodeParms dictionary.
	switch f := filter.(type) {
	case core.Name:
		img.Filters = []Filter{{Name: f, Params: params}}
	case core.Array:
		img.Filters = make([]Filter, 0, len(f))
		for _, elem := range f {
			name, ok := elem.(core.Name)
			if !ok {
				return fmt.Errorf("%w: /Filter entry is %T, want name", ErrOperandType, elem)
			}
			img.Filters = append(img.Filters, Filter{Name: name, Params: params})
		}
	default:
		return fmt.Errorf("%w: /Filter is %T, want name or array", ErrOperandType, filter)
	}

	if obj, ok := img.Dict["Decode"]; ok {
		if _, isArray := obj.(core.Array); !isArray {
			return fmt.Errorf("%w: /Decode is %T, want array", ErrOperandType, obj)
		}
	}
	for _, key := range []string{"ImageMask", "Interpolate"} {
		if obj, ok := img.Dict[key]; ok {
			if _, isBool := obj.(core.Bool); !isBool {
				return fmt.Errorf("%w: /%s is %T, want boolean", ErrOperandType, key, obj)
			}
		}
	}
	if obj, ok := img.Dict["Intent"]; ok {
		name, isName := obj.(core.Name)
		if !isName {
			return fmt.Errorf("%w: /Intent is %T, want name", ErrOperandType, obj)
		}
		if _, known := ParseRenderingIntent(string(name)); !known {
			return fmt.Errorf("%w: rendering intent %s", ErrOperandValue, name)
		}
	}
	return nil
}
