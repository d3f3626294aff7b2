package turnlog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// Recorder appends TurnRecords as compressed JSON lines. Nothing is
// guaranteed to be on disk until Close.
type Recorder struct {
	mu   sync.Mutex
	f    io.Closer
	enc  *zstd.Encoder
	w    *bufio.Writer
	rows int
}

// Create opens path for writing, creating parent directories.
func Create(path string) (*Recorder, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	r, err := NewRecorder(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	r.f = f
	return r, nil
}

// NewRecorder writes to w. Close does not close w.
func NewRecorder(w io.Writer) (*Recorder, error) {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, fmt.Errorf("zstd writer: %w", err)
	}
	return &Recorder{
		enc: enc,
		w:   bufio.NewWriterSize(enc, 64*1024),
	}, nil
}

func (r *Recorder) Write(rec TurnRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.w == nil {
		return fmt.Errorf("recorder closed")
	}

	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if _, err := r.w.Write(b); err != nil {
		return err
	}
	if err := r.w.WriteByte('\n'); err != nil {
		return err
	}
	r.rows++
	return nil
}

// Rows returns how many records were written.
func (r *Recorder) Rows() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rows
}

func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var err1 error
	if r.w != nil {
		err1 = r.w.Flush()
		r.w = nil
	}
	if r.enc != nil {
		if err := r.enc.Close(); err1 == nil {
			err1 = err
		}
		r.enc = nil
	}
	if r.f != nil {
		if err := r.f.Close(); err1 == nil {
			err1 = err
		}
		r.f = nil
	}
	return err1
}
