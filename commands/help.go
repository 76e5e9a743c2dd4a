package commands

import (
	"context"
	"flag"
	"fmt"
)

// Help lists the commands, or shows the detailed help for one of them.
type Help struct {
	cli     []Command
	flagset *flag.FlagSet
}

func NewHelp(cli []Command) *Help {
	return &Help{
		cli:     cli,
		flagset: flag.NewFlagSet("help", flag.ExitOnError),
	}
}

func (h *Help) Name() string {
	return "help"
}

func (h *Help) Description() string {
	return "Displays the help for a command"
}

func (h *Help) Usage() string {
	return "<command>"
}

func (h *Help) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s help <command>\n", APP)
	fmt.Println()
	fmt.Println("  Displays the detailed help for the command")
	fmt.Println()
}

func (h *Help) FlagSet() *flag.FlagSet {
	return h.flagset
}

func (h *Help) Execute(ctx context.Context, options *Options) error {
	if args := h.flagset.Args(); len(args) > 0 {
		if args[0] == h.Name() {
			h.Help()
			return nil
		}

		for _, c := range h.cli {
			if c.Name() == args[0] {
				c.Help()
				return nil
			}
		}

		return fmt.Errorf("unknown command '%v'", args[0])
	}

	h.usage()

	return nil
}

func (h *Help) usage() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] <command> [options]\n", APP)
	fmt.Println()
	fmt.Println("  Commands:")
	fmt.Println()

	for _, c := range h.cli {
		fmt.Printf("    %-18s %s\n", c.Name(), c.Description())
	}
	fmt.Printf("    %-18s %s\n", h.Name(), h.Description())

	fmt.Println()
	fmt.Printf("  Use '%s help <command>' for the command options\n", APP)
	fmt.Println()
}

// Parse finds the command named by args[0] and parses the remaining arguments with its flag set.
// It returns nil if args is empty.
func Parse(cli []Command, help *Help, args []string) (Command, error) {
	if len(args) == 0 {
		return nil, nil
	}

	if args[0] == help.Name() {
		return help, help.flagset.Parse(args[1:])
	}

	for _, c := range cli {
		if c.Name() == args[0] {
			if err := c.FlagSet().Parse(args[1:]); err != nil {
				return nil, err
			}

			return c, nil
		}
	}

	return nil, fmt.Errorf("invalid command '%v'", args[0])
}
