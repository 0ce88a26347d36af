// Package stream plans the byte windows served for HTTP range requests and
// resolves quality labels to rendition files on disk.
package stream

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// MaxChunkSize caps a single 206 response even when the client asked
	// for a larger span.
	MaxChunkSize = 4 * 1024 * 1024

	// DefaultWindowSize is served when the client sent no Range header.
	DefaultWindowSize = 1024 * 1024
)

var ErrMalformedRange = errors.New("malformed range header")

// Window is the concrete byte span for one response.
// Invariant: 0 <= Start <= End < file size, ChunkSize = End - Start + 1.
type Window struct {
	Start     int64
	End       int64
	ChunkSize int64
}

// Plan translates a "bytes=<start>-<end>" header and a file size into a
// window. The <end> token may be omitted and defaults to the last byte.
// The window is clamped to MaxChunkSize and to the end of the file. A
// Start at or past the end of the file is the caller's problem (416);
// Plan reports it as-is.
func Plan(rangeHeader string, fileSize int64) (Window, error) {
	spec, ok := strings.CutPrefix(strings.TrimSpace(rangeHeader), "bytes=")
	if !ok {
		return Window{}, ErrMalformedRange
	}

	startStr, endStr, ok := strings.Cut(spec, "-")
	if !ok {
		return Window{}, ErrMalformedRange
	}

	start, err := strconv.ParseInt(strings.TrimSpace(startStr), 10, 64)
	if err != nil || start < 0 {
		return Window{}, ErrMalformedRange
	}

	end := fileSize - 1
	if trimmed := strings.TrimSpace(endStr); trimmed != "" {
		end, err = strconv.ParseInt(trimmed, 10, 64)
		if err != nil || end < start {
			return Window{}, ErrMalformedRange
		}
	}

	if end > fileSize-1 {
		end = fileSize - 1
	}
	if end-start+1 > MaxChunkSize {
		end = start + MaxChunkSize - 1
	}

	return Window{Start: start, End: end, ChunkSize: end - start + 1}, nil
}

// DefaultWindow is the first DefaultWindowSize bytes of the file, or the
// whole file when it is smaller than that.
func DefaultWindow(fileSize int64) Window {
	return mustPlan(fmt.Sprintf("bytes=0-%d", DefaultWindowSize-1), fileSize)
}

func mustPlan(rangeHeader string, fileSize int64) Window {
	w, err := Plan(rangeHeader, fileSize)
	if err != nil {
		panic(err)
	}
	return w
}
