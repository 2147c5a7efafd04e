package filters

import "fmt"

// Params represents decode parameters from PDF stream dictionaries.
// Common parameters include Predictor, Columns, Colors, and BitsPerComponent.
type Params map[string]interface{}

// Decode applies the named decompression filter to data. Both the full
// filter names and the abbreviations used in inline image dictionaries are
// accepted (for example "FlateDecode" and "Fl").
//
// DCTDecode and JPXDecode streams hold complete JPEG and JPEG2000 files,
// so their data is returned as-is for downstream image consumers.
func Decode(data []byte, filterName string, params Params) ([]byte, error) {
	switch filterName {
	case "FlateDecode", "Fl":
		return FlateDecode(data, params)

	case "LZWDecode", "LZW":
		return LZWDecode(data, params)

	case "ASCIIHexDecode", "AHx":
		return ASCIIHexDecode(data)

	case "ASCII85Decode", "A85":
		return ASCII85Decode(data)

	case "RunLengthDecode", "RL":
		return RunLengthDecode(data)

	case "CCITTFaxDecode", "CCF":
		return CCITTFaxDecode(data, params)

	case "DCTDecode", "DCT":
		return data, nil

	case "JPXDecode":
		return data, nil

	case "JBIG2Decode":
		return nil, fmt.Errorf("JBIG2Decode not yet implemented")

	case "Crypt":
		return nil, fmt.Errorf("Crypt filter not yet implemented")

	default:
		return nil, fmt.Errorf("unknown filter: %s", filterName)
	}
}

// getIntParam extracts an integer parameter from Params, returning defaultValue
// if the parameter is missing or cannot be converted to an integer.
func getIntParam(params Params, key string, defaultValue int) int {
	if params == nil {
		return defaultValue
	}

	obj, ok := params[key]
	if !ok {
		return defaultValue
	}

	// Handle various integer types
	switch v := obj.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case int32:
		return int(v)
	case float64:
		return int(v)
	default:
		return defaultValue
	}
}

// getBoolParam extracts a boolean parameter from Params, returning defaultValue
// if the parameter is missing or cannot be converted to a boolean.
func getBoolParam(params Params, key string, defaultValue bool) bool {
	if params == nil {
		return defaultValue
	}

	obj, ok := params[key]
	if !ok {
		return defaultValue
	}

	switch v := obj.(type) {
	case bool:
		return v
	default:
		return defaultValue
	}
}
