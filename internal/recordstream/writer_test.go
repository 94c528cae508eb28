package recordstream

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/preston-bernstein/nba-roster-service/internal/providers/fixture"
	"github.com/preston-bernstein/nba-roster-service/internal/records"
	"github.com/preston-bernstein/nba-roster-service/internal/testutil"
)

func TestWriterWritesOneDocumentPerLine(t *testing.T) {
	players := fixture.CelticsPlayers()
	var buf bytes.Buffer
	w := NewWriter(&buf)

	for _, p := range players {
		if err := w.Write(p); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("flush failed: %v", err)
	}

	var want strings.Builder
	for _, p := range players {
		data, _ := p.MarshalJSON()
		want.Write(data)
		want.WriteString(LineSeparator)
	}
	if buf.String() != want.String() {
		t.Fatalf("unexpected output\n got: %q\nwant: %q", buf.String(), want.String())
	}
	if w.Count() != len(players) {
		t.Fatalf("expected count %d, got %d", len(players), w.Count())
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), LineSeparator), LineSeparator)
	if len(lines) != len(players) {
		t.Fatalf("expected %d lines, got %d", len(players), len(lines))
	}
	for i, line := range lines {
		var rec records.Record
		if err := rec.UnmarshalJSON([]byte(line)); err != nil {
			t.Fatalf("line %d is not valid JSON: %v", i, err)
		}
		if rec.Len() != 12 || !rec.Equal(players[i]) {
			t.Fatalf("line %d does not match input record", i)
		}
	}
}

func TestWriterNoRecordsWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.Flush(); err != nil {
		t.Fatalf("flush failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected empty output, got %q", buf.String())
	}
}

func TestWriterSurfacesDestinationErrors(t *testing.T) {
	writeErr := errors.New("an error occurred when writing stream")
	w := NewWriter(&testutil.FailingWriter{Err: writeErr})

	// Buffered writes succeed until the buffer is pushed to the destination.
	if err := w.Write(records.NewRecord("a", "1")); err != nil {
		t.Fatalf("expected buffered write to succeed, got %v", err)
	}
	err := w.Flush()
	if !errors.Is(err, ErrIOFailure) || !errors.Is(err, writeErr) {
		t.Fatalf("expected wrapped write error, got %v", err)
	}
	if again := w.Write(records.NewRecord("b", "2")); again != err {
		t.Fatalf("expected sticky error after failure, got %v", again)
	}
}

func TestWriterFailsMidStreamWhenBufferFills(t *testing.T) {
	writeErr := errors.New("disk full")
	w := NewWriter(&testutil.FailingWriter{Err: writeErr})
	big := records.NewRecord("blob", strings.Repeat("x", 8192))

	if err := w.Write(big); !errors.Is(err, writeErr) {
		t.Fatalf("expected write error once the buffer overflows, got %v", err)
	}
}

func TestLineReaderRoundTripsWriterOutput(t *testing.T) {
	players := fixture.CelticsPlayers()
	var buf bytes.Buffer
	w := NewWriter(&buf)
	for _, p := range players {
		_ = w.Write(p)
	}
	_ = w.Flush()

	got, err := NewLineReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("line reader failed: %v", err)
	}
	testutil.AssertRecordsEqual(t, got, players)
	for i := range got {
		if strings.Join(got[i].Keys(), ",") != strings.Join(players[i].Keys(), ",") {
			t.Fatalf("record %d lost key order: %v", i, got[i].Keys())
		}
	}
}

func TestLineReaderHandlesCRLFBlankLinesAndMissingTerminator(t *testing.T) {
	input := "{\"a\":\"1\"}\r\n\r\n\n{\"a\":\"2\"}"
	got, err := NewLineReader(strings.NewReader(input)).ReadAll()
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if v, _ := got[1].Get("a"); v != "2" {
		t.Fatalf("unexpected last record value %q", v)
	}
}

func TestLineReaderErrors(t *testing.T) {
	_, err := NewLineReader(strings.NewReader("{\"a\":\"1\"}\n[1]\n")).ReadAll()
	if !errors.Is(err, ErrMalformedInput) {
		t.Fatalf("expected malformed error, got %v", err)
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("expected line number in error, got %v", err)
	}

	readErr := errors.New("boom")
	_, err = NewLineReader(&testutil.ErrReader{Err: readErr}).ReadAll()
	if !errors.Is(err, ErrIOFailure) || !errors.Is(err, readErr) {
		t.Fatalf("expected wrapped read error, got %v", err)
	}
}
