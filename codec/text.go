package codec

import "fmt"

// Text is a pass-through codec for textual content types.
//
// Encode accepts string, []byte and fmt.Stringer values; Decode returns the
// bytes as a string.
type Text struct{}

// Encode converts a textual value to bytes.
func (Text) Encode(v any) ([]byte, error) {
	switch s := v.(type) {
	case string:
		return []byte(s), nil
	case []byte:
		return s, nil
	case fmt.Stringer:
		return []byte(s.String()), nil
	default:
		return nil, fmt.Errorf("text codec: cannot encode %T", v)
	}
}

// Decode returns the bytes as a string.
func (Text) Decode(data []byte) (any, error) {
	return string(data), nil
}

// Name returns the unique name of the codec ("text").
func (Text) Name() string { return "text" }
