package api

import (
	"bufio"
	"context"
	"net/url"
	"strings"
)

// streamScanBuffer sizes the line scanner; a single ndjson event can
// carry a full assistant message.
const streamScanBuffer = 1 << 20

// StreamLines opens an ndjson response stream and returns a LineStream
// over its non-empty, whitespace-trimmed lines.
//
// Auth and retry semantics match Do, with two differences: the status
// check happens before any body bytes are consumed, so stream content
// is never misreported as an error body, and retries only cover the
// setup phase. Once StreamLines returns, the stream is forward-only;
// no retry is attempted that could deliver duplicate events.
func (c *Client) StreamLines(ctx context.Context, method, path string, query url.Values, body any) (*LineStream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp, err := c.send(ctx, method, path, query, body, "application/x-ndjson", false)
	if err != nil {
		return nil, err
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), streamScanBuffer)

	return &LineStream{
		ctx:     ctx,
		body:    resp.Body,
		scanner: scanner,
	}, nil
}

// LineStream iterates over the trimmed non-empty lines of a streaming
// response, in the manner of bufio.Scanner. It is finite for a
// terminating stream and not restartable. Close releases the
// underlying connection and is safe to call at any point, including
// after an early break.
type LineStream struct {
	ctx     context.Context
	body    interface{ Close() error }
	scanner *bufio.Scanner

	line   string
	err    error
	closed bool
}

// Next advances to the next non-empty line. It returns false when the
// stream ends, fails, or the context is cancelled; Err distinguishes
// the cases.
func (s *LineStream) Next() bool {
	if s.closed {
		return false
	}

	for {
		if err := s.ctx.Err(); err != nil {
			s.err = err
			s.Close()
			return false
		}
		if !s.scanner.Scan() {
			s.err = s.scanner.Err()
			s.Close()
			return false
		}
		line := strings.TrimSpace(s.scanner.Text())
		if line == "" {
			continue
		}
		s.line = line
		return true
	}
}

// Text returns the line read by the last successful call to Next.
func (s *LineStream) Text() string {
	return s.line
}

// Err returns the error that terminated the stream, if any. A stream
// that reached its natural end returns nil.
func (s *LineStream) Err() error {
	return s.err
}

// Close releases the underlying connection. Subsequent Next calls
// return false.
func (s *LineStream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.body.Close()
}
