package shell

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/niksmo/storefront/internal/core/domain"
)

var (
	ErrUnknownInput    = errors.New("unknown input")
	ErrMissingArgument = errors.New("missing argument")
	ErrInvalidQuantity = errors.New("quantity must be a whole number")
)

type InputKind int

const (
	InputNone InputKind = iota
	InputCommand
	InputView
	InputHelp
	InputQuit
)

// Input is one parsed shell line. Cmd is set for InputCommand only.
type Input struct {
	Kind InputKind
	Cmd  domain.Command
}

var simpleCommands = map[string]domain.CommandType{
	"clear":    domain.CmdClearFilters,
	"open":     domain.CmdOpenCart,
	"close":    domain.CmdCloseCart,
	"toggle":   domain.CmdToggleCart,
	"checkout": domain.CmdBeginCheckout,
	"confirm":  domain.CmdConfirmCheckout,
	"cancel":   domain.CmdCancelCheckout,
	"esc":      domain.CmdEscape,
}

var productCommands = map[string]domain.CommandType{
	"inc": domain.CmdIncrement,
	"dec": domain.CmdDecrement,
	"rm":  domain.CmdRemoveFromCart,
}

// Parse turns a line into an Input. Verbs are case-insensitive, search
// text keeps its spacing between words.
func Parse(line string) (Input, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Input{Kind: InputNone}, nil
	}

	verb, args := strings.ToLower(fields[0]), fields[1:]

	if t, ok := simpleCommands[verb]; ok {
		return command(domain.Command{Type: t}), nil
	}
	if t, ok := productCommands[verb]; ok {
		if len(args) < 1 {
			return Input{}, fmt.Errorf("%s <id>: %w", verb, ErrMissingArgument)
		}
		return command(domain.Command{Type: t, ProductID: args[0]}), nil
	}

	switch verb {
	case "view", "ls":
		return Input{Kind: InputView}, nil
	case "help", "?":
		return Input{Kind: InputHelp}, nil
	case "quit", "exit", "q":
		return Input{Kind: InputQuit}, nil

	case "add":
		if len(args) < 1 {
			return Input{}, fmt.Errorf("add <id> [qty]: %w", ErrMissingArgument)
		}
		qty := 1
		if len(args) > 1 {
			n, err := parseQuantity(args[1])
			if err != nil {
				return Input{}, err
			}
			qty = n
		}
		return command(domain.Command{
			Type: domain.CmdAddToCart, ProductID: args[0], Quantity: qty,
		}), nil

	case "set":
		if len(args) < 2 {
			return Input{}, fmt.Errorf("set <id> <qty>: %w", ErrMissingArgument)
		}
		qty, err := parseQuantity(args[1])
		if err != nil {
			return Input{}, err
		}
		return command(domain.Command{
			Type: domain.CmdSetQuantity, ProductID: args[0], Quantity: qty,
		}), nil

	case "category", "cat":
		if len(args) < 1 {
			return Input{}, fmt.Errorf("category <name|all>: %w", ErrMissingArgument)
		}
		return command(domain.Command{
			Type: domain.CmdSetCategory, Value: strings.Join(args, " "),
		}), nil

	case "search":
		return command(domain.Command{
			Type: domain.CmdSetSearch, Value: strings.Join(args, " "),
		}), nil

	case "sort":
		if len(args) < 1 {
			return Input{}, fmt.Errorf("sort <order>: %w", ErrMissingArgument)
		}
		return command(domain.Command{Type: domain.CmdSetSort, Value: args[0]}), nil
	}

	return Input{}, fmt.Errorf("%q: %w", fields[0], ErrUnknownInput)
}

func command(cmd domain.Command) Input {
	return Input{Kind: InputCommand, Cmd: cmd}
}

func parseQuantity(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidQuantity)
	}
	return n, nil
}
