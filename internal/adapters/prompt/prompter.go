// Package prompt implements the decision port as line-oriented terminal questions.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.trai.ch/ppac/internal/core/domain"
	"go.trai.ch/ppac/internal/core/ports"
	"go.trai.ch/ppac/internal/ui/style"
	"go.trai.ch/zerr"
)

var _ ports.Prompter = (*Terminal)(nil)

// Terminal asks questions on out and reads one answer line per question from in.
type Terminal struct {
	in   *bufio.Reader
	out  io.Writer
	echo bool
}

// Option configures a Terminal.
type Option func(*Terminal)

// WithEcho writes every answer read back to out. Answers piped from a file or
// another process are not shown by a terminal, so echoing keeps transcripts readable.
func WithEcho(echo bool) Option {
	return func(t *Terminal) {
		t.echo = echo
	}
}

// New creates a Terminal prompter.
func New(in io.Reader, out io.Writer, opts ...Option) *Terminal {
	t := &Terminal{
		in:  bufio.NewReader(in),
		out: out,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Confirm asks whether the installation should proceed. Only an explicit "n" or
// "no" declines; an empty answer accepts. End of input declines.
func (t *Terminal) Confirm(ctx context.Context, req domain.ConfirmRequest) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	if len(req.Plan) > 1 {
		_, _ = fmt.Fprintf(t.out, "%s %s\n",
			style.Muted.Render("Packages to install:"), strings.Join(req.Plan, ", "))
	}
	_, _ = fmt.Fprintf(t.out, "%s ",
		style.Question.Render(fmt.Sprintf("%s v%s found! Do you want to install it? (y/n)", req.Package, req.Version)))

	answer, err := t.readLine()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, err
	}

	switch strings.ToLower(answer) {
	case "n", "no":
		return false, nil
	default:
		return true, nil
	}
}

// Choose lists the offering repositories 1-indexed followed by a cancel entry and
// returns the number the user typed.
func (t *Terminal) Choose(ctx context.Context, req domain.ChoiceRequest) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	_, _ = fmt.Fprintf(t.out, "Package %s is available in multiple repositories:\n", req.Package)
	for i, repo := range req.Options {
		_, _ = fmt.Fprintf(t.out, "%s %s\n", style.Name.Render(fmt.Sprintf("%d.", i+1)), repo.Label())
	}
	_, _ = fmt.Fprintf(t.out, "%s %s\n",
		style.Name.Render(fmt.Sprintf("%d.", req.CancelIndex())), style.Muted.Render("Cancel installation"))
	_, _ = fmt.Fprint(t.out, style.Question.Render("Enter your choice:")+" ")

	answer, err := t.readLine()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return req.CancelIndex(), nil
		}
		return 0, err
	}

	choice, err := strconv.Atoi(answer)
	if err != nil {
		return 0, zerr.With(zerr.Wrap(domain.ErrInvalidChoice, "not a number"), "input", answer)
	}
	return choice, nil
}

// readLine returns the next trimmed line. A final line without a newline is
// returned as is; io.EOF is reported only when nothing was read.
func (t *Terminal) readLine() (string, error) {
	line, err := t.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		if t.echo {
			_, _ = fmt.Fprintln(t.out)
		}
		return "", err
	}
	answer := strings.TrimSpace(line)
	if t.echo {
		_, _ = fmt.Fprintln(t.out, answer)
	}
	return answer, nil
}
