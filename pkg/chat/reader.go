package chat

import (
	"bufio"
	"fmt"
	"io"

	"github.com/chzyer/readline"
)

// Prompt is shown before each line of input.
const Prompt = "\nEnter your request: "

// NewTerminalReader returns a line editor with history for interactive use.
func NewTerminalReader(historyFile string) (LineReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          Prompt,
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}
	return rl, nil
}

// PlainReader reads lines from a non-interactive source such as a pipe.
type PlainReader struct {
	scanner *bufio.Scanner
	prompt  io.Writer
}

// NewPlainReader reads from in and, when prompt is non-nil, echoes the
// prompt there before each line.
func NewPlainReader(in io.Reader, prompt io.Writer) *PlainReader {
	return &PlainReader{scanner: bufio.NewScanner(in), prompt: prompt}
}

// Readline returns the next line or io.EOF.
func (r *PlainReader) Readline() (string, error) {
	if r.prompt != nil {
		fmt.Fprint(r.prompt, Prompt)
	}
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.scanner.Text(), nil
}

// Close is a no-op; the underlying reader belongs to the caller.
func (r *PlainReader) Close() error {
	return nil
}
