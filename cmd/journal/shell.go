package main

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"
)

// splitArgs splits a line on whitespace, keeping double-quoted text together.
func splitArgs(line string) ([]string, error) {
	var (
		args    []string
		current strings.Builder
		quoted  bool
		started bool
	)

	for _, r := range line {
		switch {
		case r == '"':
			quoted = !quoted
			started = true
		case !quoted && (r == ' ' || r == '\t'):
			if started {
				args = append(args, current.String())
				current.Reset()
				started = false
			}
		default:
			current.WriteRune(r)
			started = true
		}
	}

	if quoted {
		return nil, fmt.Errorf("unterminated quote")
	}

	if started {
		args = append(args, current.String())
	}

	return args, nil
}

func shellCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:  "shell",
		Usage: "Run journal commands read line by line from stdin in one session",
		Action: a.action(func(ctx context.Context, cmd *cli.Command) error {
			root := cmd.Root()
			scanner := bufio.NewScanner(root.Reader)

			for scanner.Scan() {
				line := strings.TrimSpace(scanner.Text())
				if line == "" || strings.HasPrefix(line, "#") {
					continue
				}

				if line == "exit" || line == "quit" {
					return nil
				}

				args, err := splitArgs(line)
				if err != nil {
					fmt.Fprintln(root.ErrWriter, ErrorStyle.Render(err.Error()))
					continue
				}

				if args[0] == "shell" {
					continue
				}

				sub := newRootCommand(a)
				sub.Reader = root.Reader
				sub.Writer = root.Writer
				sub.ErrWriter = root.ErrWriter
				sub.ExitErrHandler = func(context.Context, *cli.Command, error) {}

				if err := sub.Run(ctx, append([]string{root.Name}, args...)); err != nil {
					fmt.Fprintln(root.ErrWriter, ErrorStyle.Render(err.Error()))
				}
			}

			return scanner.Err()
		}),
	}
}
