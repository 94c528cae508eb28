package testutil

import (
	"testing"

	"github.com/preston-bernstein/nba-roster-service/internal/records"
)

// AssertRecordsEqual fails the test unless got and want hold equal records in the same order.
func AssertRecordsEqual(t *testing.T, got, want []records.Record) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(got))
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			a, _ := got[i].MarshalJSON()
			b, _ := want[i].MarshalJSON()
			t.Fatalf("record %d mismatch\n got: %s\nwant: %s", i, a, b)
		}
	}
}
