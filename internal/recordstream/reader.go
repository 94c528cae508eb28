package recordstream

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/preston-bernstein/nba-roster-service/internal/records"
)

// Reader decodes a single top-level JSON array of objects one element at a
// time, so the first record is available before the whole input is read.
type Reader struct {
	src     *trackingReader
	dec     *json.Decoder
	started bool
	done    bool
	err     error
}

// NewReader returns a Reader consuming r.
func NewReader(r io.Reader) *Reader {
	src := &trackingReader{r: r}
	return &Reader{src: src, dec: json.NewDecoder(src)}
}

// Next returns the next array element. It returns io.EOF once the closing
// bracket has been read and nothing but whitespace follows. Any other error is
// sticky and wraps ErrMalformedInput or ErrIOFailure.
func (r *Reader) Next() (records.Record, error) {
	if r.err != nil {
		return records.Record{}, r.err
	}
	if r.done {
		return records.Record{}, io.EOF
	}

	if !r.started {
		if err := r.expectDelim('['); err != nil {
			return records.Record{}, r.fail(err)
		}
		r.started = true
	}

	if !r.dec.More() {
		if err := r.finish(); err != nil {
			return records.Record{}, r.fail(err)
		}
		r.done = true
		return records.Record{}, io.EOF
	}

	var rec records.Record
	if err := r.dec.Decode(&rec); err != nil {
		return records.Record{}, r.fail(err)
	}
	return rec, nil
}

// ReadAll drains the reader and returns every element in order.
func (r *Reader) ReadAll() ([]records.Record, error) {
	var out []records.Record
	for {
		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
}

func (r *Reader) expectDelim(want json.Delim) error {
	tok, err := r.dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return io.ErrUnexpectedEOF
		}
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

func (r *Reader) finish() error {
	if err := r.expectDelim(']'); err != nil {
		return err
	}
	tok, err := r.dec.Token()
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return err
	}
	return fmt.Errorf("unexpected data after array: %v", tok)
}

// fail classifies err: anything the underlying stream reported is an i/o
// failure, everything else is malformed input.
func (r *Reader) fail(err error) error {
	if r.src.err != nil {
		r.err = ioFailure(r.src.err)
	} else {
		r.err = malformed(err)
	}
	return r.err
}

// trackingReader remembers the first non-EOF error of the wrapped reader.
type trackingReader struct {
	r   io.Reader
	err error
}

func (t *trackingReader) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if err != nil && !errors.Is(err, io.EOF) && t.err == nil {
		t.err = err
	}
	return n, err
}
