package proc

import (
	"bytes"
	stderrors "errors"
	"sync"
)

// errMaxOutput marks a capture that breached its configured ceiling. Its
// text is what the classifier's message rules recognize as the
// buffer-size-exceeded indicator.
var errMaxOutput = stderrors.New("max output buffer exceeded")

// captureBuffer accumulates stream bytes up to a ceiling. Bytes past the
// ceiling are consumed and discarded so the child never blocks on a full
// pipe; the breach itself is recorded and surfaced by the wrappers as a
// KindMaxBufferExceeded failure.
type captureBuffer struct {
	mu       sync.Mutex
	buf      bytes.Buffer
	limit    int
	exceeded bool
}

func newCaptureBuffer(limit int) *captureBuffer {
	return &captureBuffer{limit: limit}
}

// Write retains up to the remaining capacity and reports all bytes as
// consumed to avoid short-write errors from the copier.
func (c *captureBuffer) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	remaining := c.limit - c.buf.Len()
	if remaining <= 0 {
		c.exceeded = true
		return len(p), nil
	}
	if len(p) > remaining {
		c.exceeded = true
		c.buf.Write(p[:remaining])
		return len(p), nil
	}
	return c.buf.Write(p)
}

// Bytes returns a copy of the captured bytes.
func (c *captureBuffer) Bytes() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]byte, c.buf.Len())
	copy(out, c.buf.Bytes())
	return out
}

// String returns the captured bytes decoded as text.
func (c *captureBuffer) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.String()
}

// Exceeded reports whether the ceiling was breached.
func (c *captureBuffer) Exceeded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.exceeded
}
