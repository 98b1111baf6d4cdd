package services

import (
	"bufio"
	"errors"
	"io"
	"iter"
	"strings"
	"unicode/utf8"
)

// Line is one physical line of a source, without its line terminator.
type Line struct {
	// Number is the 1-based position of the line in the source.
	Number int
	// Text is the content of the line with "\n" or "\r\n" removed.
	Text string
}

// Lines returns an iterator over the lines of r. Lines are terminated by
// "\n" or "\r\n"; a final line without terminator is also yielded.
//
// A read failure, including a line that is not valid UTF-8, is yielded once
// together with the number of the line being read, and ends the iteration.
func Lines(r io.Reader) iter.Seq2[Line, error] {
	return func(yield func(Line, error) bool) {
		br := bufio.NewReader(r)

		for n := 1; ; n++ {
			text, err := br.ReadString('\n')
			if err != nil && !errors.Is(err, io.EOF) {
				yield(Line{Number: n}, err)

				return
			}

			if text == "" && err != nil {
				return
			}

			text = strings.TrimSuffix(text, "\n")
			text = strings.TrimSuffix(text, "\r")

			if !utf8.ValidString(text) {
				yield(Line{Number: n}, errInvalidUTF8)

				return
			}

			if !yield(Line{Number: n, Text: text}, nil) || err != nil {
				return
			}
		}
	}
}

var errInvalidUTF8 = errors.New("stream did not contain valid UTF-8")
