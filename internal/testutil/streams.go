package testutil

import (
	"io"
)

// ChunkReader hands out one chunk per Read call, splitting a chunk further
// only when the caller's buffer is smaller.
type ChunkReader struct {
	chunks []string
	cur    string
}

// NewChunkReader returns a reader that delivers the given chunks in order.
func NewChunkReader(chunks ...string) *ChunkReader {
	return &ChunkReader{chunks: chunks}
}

func (c *ChunkReader) Read(p []byte) (int, error) {
	for c.cur == "" {
		if len(c.chunks) == 0 {
			return 0, io.EOF
		}
		c.cur, c.chunks = c.chunks[0], c.chunks[1:]
	}
	n := copy(p, c.cur)
	c.cur = c.cur[n:]
	return n, nil
}

// Close makes ChunkReader usable as an io.ReadCloser.
func (c *ChunkReader) Close() error { return nil }

// ErrReader yields Data first and then fails every Read with Err.
type ErrReader struct {
	Data   string
	Err    error
	Closed bool
}

func (e *ErrReader) Read(p []byte) (int, error) {
	if e.Data != "" {
		n := copy(p, e.Data)
		e.Data = e.Data[n:]
		return n, nil
	}
	return 0, e.Err
}

// Close records that the reader was released.
func (e *ErrReader) Close() error {
	e.Closed = true
	return nil
}

// FailingWriter rejects every write with Err.
type FailingWriter struct {
	Err    error
	Closed bool
}

func (f *FailingWriter) Write(p []byte) (int, error) {
	return 0, f.Err
}

// Close records that the writer was released.
func (f *FailingWriter) Close() error {
	f.Closed = true
	return nil
}

// BufferCloser collects writes in memory and records Close.
type BufferCloser struct {
	Data     []byte
	Closed   bool
	CloseErr error
}

func (b *BufferCloser) Write(p []byte) (int, error) {
	b.Data = append(b.Data, p...)
	return len(p), nil
}

// Close records that the buffer was released and returns CloseErr.
func (b *BufferCloser) Close() error {
	b.Closed = true
	return b.CloseErr
}

// String returns everything written so far.
func (b *BufferCloser) String() string {
	return string(b.Data)
}
