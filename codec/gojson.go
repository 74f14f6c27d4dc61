package codec

import gojson "github.com/goccy/go-json"

// GoJSON is a JSON codec backed by github.com/goccy/go-json.
//
// Wire-compatible with JSON; kept separate so callers can pin either
// implementation explicitly.
type GoJSON struct{}

// Encode encodes the value to JSON.
func (GoJSON) Encode(v any) ([]byte, error) { return gojson.Marshal(v) }

// Decode decodes the JSON data into an untyped value.
func (GoJSON) Decode(data []byte) (any, error) {
	var v any
	if err := gojson.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// Name returns the unique name of the codec ("go-json").
func (GoJSON) Name() string { return "go-json" }
