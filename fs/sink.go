// Package fs provides file-based storage for scraped page data.
package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/fwojciec/crawld"
)

// Ensure Sink implements crawld.ContentSink at compile time.
var _ crawld.ContentSink = (*Sink)(nil)

// Sink appends scraped page data as JSON lines to a single file. Writes are
// serialized with a mutex so concurrent workers never interleave records.
type Sink struct {
	mu   sync.Mutex
	path string
}

// NewSink creates a Sink writing to path. The file is created on first
// append.
func NewSink(path string) *Sink {
	return &Sink{path: path}
}

// Append writes one page record as a JSON line. The file is opened and
// closed per append so a crash never loses more than the record in flight.
func (s *Sink) Append(ctx context.Context, data crawld.PageData) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	line, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode page data for %s: %w", data.URL, err)
	}
	line = append(line, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", s.path, err)
	}

	if _, err := f.Write(line); err != nil {
		f.Close()
		return fmt.Errorf("failed to write page data to %s: %w", s.path, err)
	}
	return f.Close()
}
