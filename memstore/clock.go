package memstore

import (
	gojson "github.com/goccy/go-json"
)

// clock is a vector clock: one counter per writing actor. Its JSON encoding
// serves as the opaque causality token carried by records; nothing outside
// this package interprets it.
type clock map[string]uint64

func parseClock(b []byte) (clock, error) {
	if len(b) == 0 {
		return clock{}, nil
	}
	var c clock
	if err := gojson.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	return c, nil
}

func (c clock) bytes() []byte {
	b, _ := gojson.Marshal(c)
	return b
}

// descends reports whether c is a causal descendant of other, i.e. c has
// seen every event other has.
func (c clock) descends(other clock) bool {
	for actor, n := range other {
		if c[actor] < n {
			return false
		}
	}
	return true
}

// merge returns the component-wise maximum of both clocks.
func (c clock) merge(other clock) clock {
	out := make(clock, len(c)+len(other))
	for actor, n := range c {
		out[actor] = n
	}
	for actor, n := range other {
		if n > out[actor] {
			out[actor] = n
		}
	}
	return out
}

func (c clock) tick(actor string) {
	c[actor]++
}
