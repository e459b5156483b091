// Package shell runs the storefront as a line-oriented terminal session.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/common-nighthawk/go-figure"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

const helpText = `commands:
  add <id> [qty]       add a product, opens the cart
  set <id> <qty>       set a quantity, 0 removes
  inc <id> | dec <id>  change a quantity by one
  rm <id>              remove a product
  category <name|all>  filter by category
  search [text]        filter by name or description
  sort <order>         featured, price-asc or price-desc
  clear                reset filters
  open | close | toggle  cart panel
  checkout | confirm | cancel  demo checkout
  esc                  close checkout and cart
  view                 redraw
  help                 this text
  quit                 leave
`

type Storefront interface {
	port.CommandDispatcher
	port.ViewReader
	Start(context.Context) domain.View
}

type Opt func(*Shell)

// WithPrompt prints a prompt before each line. Useful on a terminal only.
func WithPrompt(prompt string) Opt {
	return func(s *Shell) {
		s.prompt = prompt
	}
}

// WithBanner prints an ASCII art title when the session starts.
func WithBanner(title string) Opt {
	return func(s *Shell) {
		s.banner = title
	}
}

type Shell struct {
	sf       Storefront
	renderer port.Renderer
	in       io.Reader
	out      io.Writer
	prompt   string
	banner   string
}

func New(
	sf Storefront, renderer port.Renderer, in io.Reader, out io.Writer, opts ...Opt,
) Shell {
	s := Shell{sf: sf, renderer: renderer, in: in, out: out}
	for _, o := range opts {
		o(&s)
	}
	return s
}

// Run starts the storefront, then reads lines until quit, end of input or
// ctx is done. Bad input is reported on out and the session goes on.
func (s Shell) Run(ctx context.Context) error {
	const op = "Shell.Run"
	log := slog.With("op", op)

	if s.banner != "" {
		fmt.Fprintln(s.out, figure.NewFigure(s.banner, "small", true).String())
		fmt.Fprintln(s.out, `type "help" for commands`)
	}
	s.sf.Start(ctx)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	lines, scanErr := s.scan(ctx)

	for {
		s.printPrompt()

		var line string
		select {
		case <-ctx.Done():
			return nil
		case l, ok := <-lines:
			if !ok {
				if err := <-scanErr; err != nil {
					return fmt.Errorf("%s: %w", op, err)
				}
				return nil
			}
			line = l
		}

		in, err := Parse(line)
		if err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
			continue
		}

		switch in.Kind {
		case InputNone:
		case InputQuit:
			return nil
		case InputHelp:
			fmt.Fprint(s.out, helpText)
		case InputView:
			if err := s.renderer.Render(ctx, s.sf.View()); err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}
		case InputCommand:
			if _, err := s.sf.Dispatch(ctx, in.Cmd); err != nil {
				fmt.Fprintf(s.out, "error: %v\n", err)
				log.Debug("command rejected", "type", in.Cmd.Type, "err", err)
			}
		}
	}
}

// scan reads input lines in the background so a blocked read does not hold
// Run past ctx. The error channel gets exactly one value once lines is
// closed.
func (s Shell) scan(ctx context.Context) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)

	go func() {
		defer close(lines)
		sc := bufio.NewScanner(s.in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				errc <- nil
				return
			}
		}
		errc <- sc.Err()
	}()
	return lines, errc
}

func (s Shell) printPrompt() {
	if s.prompt != "" {
		fmt.Fprint(s.out, s.prompt)
	}
}
