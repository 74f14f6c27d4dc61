package codec

import (
	"encoding/json"
)

// JSON is the standard-library JSON codec.
//
// Decoded values follow encoding/json's defaults for untyped targets:
// objects become map[string]any, arrays []any, numbers float64.
type JSON struct{}

// Encode encodes the value to JSON.
func (JSON) Encode(v any) ([]byte, error) { return json.Marshal(v) }

// Decode decodes the JSON data into an untyped value.
func (JSON) Decode(data []byte) (any, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }

// Default is the codec seeded into new buckets for JSON content types.
var Default Codec = GoJSON{}
