package parser

import (
	"bufio"
	"io"
	"strings"
)

const byteOrderMark = "\ufeff"

// maxLineLength bounds a single catalog line; card texts are wrapped so
// real lines are far shorter.
const maxLineLength = 1024 * 1024

// Line is one logical line of the catalog
type Line struct {
	Text   string
	Number int
	// EOF marks the synthetic terminator yielded after the real input.
	EOF bool
}

// LineSource yields catalog lines one at a time
type LineSource struct {
	scanner *bufio.Scanner
	number  int
	done    bool
}

// NewLineSource wraps r in a line source.
func NewLineSource(r io.Reader) *LineSource {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	return &LineSource{scanner: scanner}
}

// Next returns the next line. After the real input is exhausted it returns
// one terminator line with EOF set, then io.EOF.
func (s *LineSource) Next() (Line, error) {
	if s.done {
		return Line{}, io.EOF
	}

	if s.scanner.Scan() {
		s.number++
		text := strings.TrimRight(s.scanner.Text(), "\r")
		if s.number == 1 {
			text = strings.TrimPrefix(text, byteOrderMark)
		}
		return Line{Text: text, Number: s.number}, nil
	}

	if err := s.scanner.Err(); err != nil {
		return Line{}, err
	}

	s.done = true
	return Line{Number: s.number + 1, EOF: true}, nil
}
