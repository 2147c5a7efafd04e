package filters

import (
	"bytes"
	"fmt"
)

// RunLengthDecode decompresses run-length encoded data. Each run starts
// with a length byte: 0-127 means copy the next length+1 bytes literally,
// 129-255 means repeat the next byte 257-length times, and 128 marks end
// of data.
func RunLengthDecode(data []byte) ([]byte, error) {
	var result bytes.Buffer

	i := 0
	for i < len(data) {
		length := data[i]
		i++

		switch {
		case length == 128:
			// EOD
			return result.Bytes(), nil

		case length < 128:
			n := int(length) + 1
			if i+n > len(data) {
				return nil, fmt.Errorf("run length literal of %d bytes overruns data", n)
			}
			result.Write(data[i : i+n])
			i += n

		default:
			if i >= len(data) {
				return nil, fmt.Errorf("run length repeat overruns data")
			}
			n := 257 - int(length)
			for j := 0; j < n; j++ {
				result.WriteByte(data[i])
			}
			i++
		}
	}

	// Missing EOD marker is tolerated.
	return result.Bytes(), nil
}
