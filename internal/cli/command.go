// Package cli implements hrctl, the terminal client of the HR console.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/pflag"
)

// Command is one hrctl subcommand.
type Command struct {
	Name    string
	Summary string
	Usage   string

	// Flags returns the command's flag set. Nil means no flags.
	Flags func() *pflag.FlagSet

	// Run executes the command with the positional args left after flag
	// parsing.
	Run func(ctx context.Context, args []string) error
}

// ErrUsage reports a malformed command line.
var ErrUsage = errors.New("usage")

// UsageError is a command line the command cannot run.
type UsageError struct {
	Usage   string
	Message string
}

func (e *UsageError) Error() string {
	if e.Message == "" {
		return "usage: " + e.Usage
	}
	return e.Message + "\nusage: " + e.Usage
}

func (e *UsageError) Unwrap() error { return ErrUsage }

// Dispatch finds the command named by args[0], parses its flags and runs it.
func Dispatch(ctx context.Context, commands []*Command, args []string, stderr io.Writer) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		PrintHelp(stderr, commands)
		if len(args) == 0 {
			return &UsageError{Usage: "hrctl <command> [flags]"}
		}
		return nil
	}

	var cmd *Command
	for _, c := range commands {
		if c.Name == args[0] {
			cmd = c
			break
		}
	}
	if cmd == nil {
		return &UsageError{Usage: "hrctl <command> [flags]", Message: fmt.Sprintf("unknown command %q", args[0])}
	}

	rest := args[1:]
	if cmd.Flags != nil {
		fs := cmd.Flags()
		fs.SetOutput(io.Discard)
		if err := fs.Parse(rest); err != nil {
			if errors.Is(err, pflag.ErrHelp) {
				fmt.Fprintf(stderr, "usage: %s\n%s", cmd.Usage, fs.FlagUsages())
				return nil
			}
			return &UsageError{Usage: cmd.Usage, Message: err.Error()}
		}
		rest = fs.Args()
	}
	return cmd.Run(ctx, rest)
}

// PrintHelp lists the commands.
func PrintHelp(w io.Writer, commands []*Command) {
	fmt.Fprintln(w, "hrctl drives the HR console from the terminal.")
	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
	for _, c := range commands {
		fmt.Fprintf(tw, "  %s\t%s\n", c.Name, c.Summary)
	}
	_ = tw.Flush()
}
