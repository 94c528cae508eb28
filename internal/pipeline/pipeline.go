// Package pipeline moves player records between files and memory: historic
// JSON arrays in, line-delimited JSON out.
package pipeline

import (
	"io"
	"os"
)

// Opener opens a named record source for reading.
type Opener func(name string) (io.ReadCloser, error)

// Creator creates or truncates a named record destination.
type Creator func(name string) (io.WriteCloser, error)

func openFile(name string) (io.ReadCloser, error) {
	return os.Open(name)
}

func createFile(name string) (io.WriteCloser, error) {
	return os.Create(name)
}
