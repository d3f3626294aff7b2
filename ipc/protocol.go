package ipc

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrGameOver is returned when the engine closes its end of the pipe at a
// frame boundary, which is how a match ends.
var ErrGameOver = errors.New("game over")

// lineReader reads the engine's newline-terminated text frames.
// The engine writes whole lines, so a line is never split across reads.
type lineReader struct {
	r    *bufio.Reader
	line int
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{r: bufio.NewReaderSize(r, 1<<16)}
}

// next returns the next non-empty line without its terminator.
func (lr *lineReader) next() (string, error) {
	for {
		s, err := lr.r.ReadString('\n')
		if err != nil && (err != io.EOF || s == "") {
			return "", err
		}
		lr.line++
		s = strings.TrimRight(s, "\r\n")
		if strings.TrimSpace(s) != "" {
			return s, nil
		}
		if err == io.EOF {
			return "", io.EOF
		}
	}
}

// ints reads one line and parses exactly n integers from it.
func (lr *lineReader) ints(n int) ([]int, error) {
	s, err := lr.next()
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(s)
	if len(fields) != n {
		return nil, fmt.Errorf("line %d: want %d fields, got %d: %q", lr.line, n, len(fields), s)
	}
	out := make([]int, n)
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("line %d: field %d: %w", lr.line, i, err)
		}
		out[i] = v
	}
	return out, nil
}

// row reads one line of at least n integers. Map rows are the only lines
// whose length depends on earlier input.
func (lr *lineReader) row(n int) ([]int, error) {
	s, err := lr.next()
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(s)
	if len(fields) < n {
		return nil, fmt.Errorf("line %d: want %d values, got %d", lr.line, n, len(fields))
	}
	out := make([]int, n)
	for i := range out {
		v, err := strconv.Atoi(fields[i])
		if err != nil {
			return nil, fmt.Errorf("line %d: value %d: %w", lr.line, i, err)
		}
		out[i] = v
	}
	return out, nil
}

// unexpectedEOF turns a mid-frame EOF into a real error.
func unexpectedEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
