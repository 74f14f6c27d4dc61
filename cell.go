package keva

// cellState tags which representation a value cell currently holds.
type cellState uint8

const (
	cellEmpty cellState = iota
	cellDecoded
	cellEncoded
)

// valueCell holds exactly one representation of a record's value at a time:
// the decoded application value or the encoded wire bytes. Converting to the
// other representation discards the one converted away from, and setting
// either side invalidates the other immediately.
type valueCell struct {
	state   cellState
	decoded any
	encoded []byte
}

func (c *valueCell) setDecoded(v any) {
	c.state = cellDecoded
	c.decoded = v
	c.encoded = nil
}

func (c *valueCell) setEncoded(b []byte) {
	c.state = cellEncoded
	c.decoded = nil
	c.encoded = b
}

func (c *valueCell) reset() {
	c.state = cellEmpty
	c.decoded = nil
	c.encoded = nil
}

func (c *valueCell) empty() bool {
	return c.state == cellEmpty
}
