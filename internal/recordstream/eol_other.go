//go:build !windows

package recordstream

// LineSeparator terminates every record written by Writer.
const LineSeparator = "\n"
