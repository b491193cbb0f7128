package backend

import (
	"bufio"
	"errors"
	"io"
)

// lineReader only yields entire newline-delimited lines. A trailing partial
// line is held back and reported as io.EOF until its newline arrives, so a
// data file that is still being written never yields half a record.
type lineReader struct {
	r *bufio.Reader
	// partial is the unterminated tail read so far.
	partial []byte
	// line is the remainder of a complete line not yet returned.
	line []byte
}

var _ io.Reader = (*lineReader)(nil)

func NewLineReader(r io.Reader) *lineReader {
	return &lineReader{
		r: bufio.NewReader(r),
	}
}

func (l *lineReader) Read(b []byte) (int, error) {
	if len(l.line) == 0 {
		data, err := l.r.ReadBytes('\n')
		l.partial = append(l.partial, data...)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return 0, io.EOF
			}
			return 0, err
		}
		l.line, l.partial = l.partial, nil
	}
	n := copy(b, l.line)
	l.line = l.line[n:]
	return n, nil
}
