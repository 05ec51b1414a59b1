package runk

import (
	"bufio"
	"io"
)

// Source hands out physical lines of runk code one at a time. depth is the
// number of brackets and quotes the scanner is still waiting to see closed,
// which lets interactive sources pick a continuation prompt. ReadLine returns
// io.EOF once the input is exhausted.
type Source interface {
	ReadLine(depth int) (string, error)
}

// ReaderSource reads lines from an io.Reader.
type ReaderSource struct {
	reader *bufio.Reader
}

func NewReaderSource(r io.Reader) *ReaderSource {
	return &ReaderSource{bufio.NewReader(r)}
}

// ReadLine returns the next line including its terminator. The last line of
// the input is returned even if it is not terminated.
func (src *ReaderSource) ReadLine(depth int) (string, error) {
	line, err := src.reader.ReadString('\n')
	if err == io.EOF && line != "" {
		return line, nil
	}
	return line, err
}
