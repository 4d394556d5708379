package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrInputClosed is returned once the input stream reached EOF.
var ErrInputClosed = errors.New("input closed")

// Prompter reads answers line by line. Every prompt is written to Out before
// the read, so a scripted input can drive the whole session.
type Prompter struct {
	in  *bufio.Reader
	Out io.Writer

	// Messages used when ReadChoice rejects an answer.
	NotANumber string
	OutOfRange string
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:         bufio.NewReader(in),
		Out:        out,
		NotANumber: "Please enter a number.",
		OutOfRange: "Invalid input, please try again.",
	}
}

// ReadLine prints prompt and returns the next line with surrounding
// whitespace removed. A last line without newline is still returned; after
// that ErrInputClosed.
func (p *Prompter) ReadLine(prompt string) (string, error) {
	_, _ = fmt.Fprint(p.Out, prompt)

	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			_, _ = fmt.Fprintln(p.Out)
			return "", ErrInputClosed
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// ReadChoice keeps asking until the answer is an integer in [0, max].
func (p *Prompter) ReadChoice(prompt string, max int) (int, error) {
	for {
		line, err := p.ReadLine(prompt)
		if err != nil {
			return 0, err
		}

		n, err := strconv.Atoi(line)
		if err != nil {
			PrintWarning(p.Out, p.NotANumber)
			continue
		}
		if n < 0 || n > max {
			PrintWarning(p.Out, p.OutOfRange)
			continue
		}
		return n, nil
	}
}
