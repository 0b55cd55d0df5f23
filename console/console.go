package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var ErrInvalidNumber = errors.New("invalid number")

func New(in io.Reader, out io.Writer) *prompter {
	return &prompter{
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

type prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func (p *prompter) ReadFloat(prompt string) (float64, error) {
	line, err := p.readLine(prompt)
	if err != nil {
		return 0, err
	}

	value, err := strconv.ParseFloat(line, 64)
	if err != nil {
		return 0, fmt.Errorf("%w %q", ErrInvalidNumber, line)
	}

	return value, nil
}

func (p *prompter) ReadInt(prompt string) (int, error) {
	line, err := p.readLine(prompt)
	if err != nil {
		return 0, err
	}

	value, err := strconv.Atoi(line)
	if err != nil {
		return 0, fmt.Errorf("%w %q", ErrInvalidNumber, line)
	}

	return value, nil
}

func (p *prompter) readLine(prompt string) (string, error) {
	if _, err := fmt.Fprint(p.out, prompt); err != nil {
		return "", err
	}

	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", fmt.Errorf("read input: %w", io.ErrUnexpectedEOF)
	}

	return strings.TrimSpace(p.scanner.Text()), nil
}
