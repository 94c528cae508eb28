package recordstream

import (
	"bufio"
	"io"

	"github.com/preston-bernstein/nba-roster-service/internal/records"
)

// Writer writes records as line-delimited JSON: each record is one JSON
// document followed by LineSeparator, with no enclosing array.
type Writer struct {
	buf   *bufio.Writer
	count int
	err   error
}

// NewWriter returns a buffered Writer on w. Call Flush when done.
func NewWriter(w io.Writer) *Writer {
	return &Writer{buf: bufio.NewWriter(w)}
}

// Write serializes rec as-is and appends the line separator. Errors from the
// destination are sticky and wrap ErrIOFailure.
func (w *Writer) Write(rec records.Record) error {
	if w.err != nil {
		return w.err
	}
	data, err := rec.MarshalJSON()
	if err != nil {
		return err
	}
	if _, err := w.buf.Write(data); err != nil {
		return w.fail(err)
	}
	if _, err := w.buf.WriteString(LineSeparator); err != nil {
		return w.fail(err)
	}
	w.count++
	return nil
}

// Flush pushes buffered data to the destination.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	if err := w.buf.Flush(); err != nil {
		return w.fail(err)
	}
	return nil
}

// Count returns the number of records accepted so far.
func (w *Writer) Count() int {
	return w.count
}

func (w *Writer) fail(err error) error {
	w.err = ioFailure(err)
	return w.err
}
