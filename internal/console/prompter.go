// ABOUTME: Line-oriented prompts over an io.Reader/io.Writer pair.
// ABOUTME: Numeric, date, and yes/no prompts re-ask until the input is valid.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/harperreed/vetclinic/internal/clinic"
	"github.com/harperreed/vetclinic/internal/models"
	"github.com/rs/zerolog"
)

var _ clinic.Prompter = (*Prompter)(nil)

// Prompter reads answers from in and writes prompts to out.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	log zerolog.Logger

	ctx   context.Context
	start sync.Once
	lines chan readResult
}

type readResult struct {
	line string
	err  error
}

// NewPrompter creates a Prompter.
func NewPrompter(in io.Reader, out io.Writer, logger zerolog.Logger) *Prompter {
	return &Prompter{
		in:    bufio.NewReader(in),
		out:   out,
		log:   logger.With().Str("component", "console").Logger(),
		ctx:   context.Background(),
		lines: make(chan readResult),
	}
}

// WithContext makes pending and future reads give up with ctx.Err() once ctx is done.
func (p *Prompter) WithContext(ctx context.Context) *Prompter {
	p.ctx = ctx
	return p
}

// readLines feeds lines to Ask one at a time until the reader fails.
func (p *Prompter) readLines() {
	defer close(p.lines)
	for {
		line, err := p.in.ReadString('\n')
		p.lines <- readResult{line: line, err: err}
		if err != nil {
			return
		}
	}
}

// Ask prints prompt and returns the next line with surrounding spaces removed.
// It returns io.EOF once input is exhausted and ctx.Err() when the context
// set by WithContext is done, even while waiting for input.
func (p *Prompter) Ask(prompt string) (string, error) {
	if err := p.ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(p.out, prompt)
	p.start.Do(func() { go p.readLines() })

	select {
	case <-p.ctx.Done():
		p.log.Info().Msg("input interrupted")
		return "", p.ctx.Err()
	case r, ok := <-p.lines:
		if !ok {
			return "", io.EOF
		}
		if r.err != nil {
			if errors.Is(r.err, io.EOF) && r.line != "" {
				return strings.TrimSpace(r.line), nil
			}
			return "", r.err
		}
		return strings.TrimSpace(r.line), nil
	}
}

// AskInt asks until the answer parses as an integer.
func (p *Prompter) AskInt(prompt, errMsg string) (int, error) {
	for {
		answer, err := p.Ask(prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(answer)
		if err == nil {
			return n, nil
		}
		p.log.Warn().Str("prompt", strings.TrimSpace(prompt)).Str("input", answer).Msg("non-numeric input")
		p.problem(errMsg)
	}
}

// AskNonNegativeInt asks until the answer is an integer >= 0.
func (p *Prompter) AskNonNegativeInt(prompt string) (int, error) {
	for {
		n, err := p.AskInt(prompt, "Invalid input. Please enter a number.")
		if err != nil {
			return 0, err
		}
		if n >= 0 {
			return n, nil
		}
		p.problem("The value cannot be negative.")
	}
}

// AskID asks for a record id.
func (p *Prompter) AskID(prompt, kind string) (int64, error) {
	n, err := p.AskInt(prompt, fmt.Sprintf("Invalid %s ID.", kind))
	return int64(n), err
}

// AskDate asks until the answer is a DD-MM-YYYY date.
func (p *Prompter) AskDate(prompt string) (time.Time, error) {
	for {
		answer, err := p.Ask(prompt)
		if err != nil {
			return time.Time{}, err
		}
		d, err := models.ParseDisplayDate(answer)
		if err == nil {
			return d, nil
		}
		p.log.Warn().Str("input", answer).Msg("invalid date input")
		p.problem("Incorrect date format. Use DD-MM-YYYY, for example 05-06-2025.")
	}
}

// Confirm asks a yes/no question. "y" or "s" means yes, "n" means no.
func (p *Prompter) Confirm(prompt string) (bool, error) {
	for {
		answer, err := p.Ask(prompt + " (y/n): ")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "y", "s":
			return true, nil
		case "n":
			return false, nil
		}
		p.problem("Invalid answer. Please enter 'y' or 'n'.")
	}
}

// Notify prints an informational message.
func (p *Prompter) Notify(msg string) {
	fmt.Fprintf(p.out, "\n * %s\n", msg)
}

func (p *Prompter) problem(msg string) {
	warning.Fprintln(p.out, msg)
}
