package scenario

import (
	"bufio"
	"io"
)

// Reader hands out input lines one at a time and can tell whether more remain.
// Line terminators, including a trailing "\r", are stripped.
type Reader struct {
	sc   *bufio.Scanner
	line int

	peeked  bool
	hasNext bool
	next    string
}

// NewReader wraps r.
func NewReader(r io.Reader) *Reader {
	return &Reader{sc: bufio.NewScanner(r)}
}

func (r *Reader) fill() {
	if r.peeked {
		return
	}
	r.peeked = true
	r.hasNext = r.sc.Scan()
	if r.hasNext {
		r.next = r.sc.Text()
	}
}

// Next returns the next line. ok is false once the input is exhausted.
func (r *Reader) Next() (line string, ok bool) {
	r.fill()
	if !r.hasNext {
		return "", false
	}
	r.peeked = false
	r.line++
	return r.next, true
}

// More reports whether another line is available, including an empty one.
func (r *Reader) More() bool {
	r.fill()
	return r.hasNext
}

// Line returns the number of the line most recently returned by Next.
func (r *Reader) Line() int {
	return r.line
}

// Err returns the first non-EOF read error.
func (r *Reader) Err() error {
	return r.sc.Err()
}
