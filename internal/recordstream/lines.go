package recordstream

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/preston-bernstein/nba-roster-service/internal/records"
)

// LineReader reads line-delimited JSON: one object per line, "\n" or "\r\n"
// terminated. Blank lines are skipped.
type LineReader struct {
	buf  *bufio.Reader
	line int
	err  error
}

// NewLineReader returns a LineReader consuming r.
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{buf: bufio.NewReader(r)}
}

// Next returns the record on the next non-blank line, or io.EOF at the end of input.
func (l *LineReader) Next() (records.Record, error) {
	if l.err != nil {
		return records.Record{}, l.err
	}
	for {
		data, readErr := l.buf.ReadBytes('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			l.err = ioFailure(readErr)
			return records.Record{}, l.err
		}
		l.line++

		data = bytes.TrimSpace(data)
		if len(data) > 0 {
			var rec records.Record
			if err := json.Unmarshal(data, &rec); err != nil {
				l.err = malformed(fmt.Errorf("line %d: %w", l.line, err))
				return records.Record{}, l.err
			}
			return rec, nil
		}
		if readErr != nil {
			l.err = io.EOF
			return records.Record{}, io.EOF
		}
	}
}

// ReadAll drains the reader and returns every record in order.
func (l *LineReader) ReadAll() ([]records.Record, error) {
	var out []records.Record
	for {
		rec, err := l.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
}
