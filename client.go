package keva

// Client binds a Transport to the ambient concerns shared by every record it
// hands out: logging and metrics. It is cheap and safe to share.
type Client struct {
	transport Transport
	logger    *Logger
	metrics   MetricsCollector
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithLogger sets the logger used by record operations.
// If nil is passed, logging is disabled.
func WithLogger(l *Logger) ClientOption {
	return func(c *Client) {
		if l == nil {
			l = NoopLogger()
		}
		c.logger = l
	}
}

// WithMetricsCollector sets the metrics collector for record operations.
// If nil is passed, metrics collection is disabled.
func WithMetricsCollector(m MetricsCollector) ClientOption {
	return func(c *Client) {
		if m == nil {
			m = NoopMetricsCollector{}
		}
		c.metrics = m
	}
}

// NewClient creates a client on top of the given transport.
func NewClient(t Transport, opts ...ClientOption) *Client {
	c := &Client{
		transport: t,
		logger:    NoopLogger(),
		metrics:   NoopMetricsCollector{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Transport returns the underlying transport.
func (c *Client) Transport() Transport {
	return c.transport
}
