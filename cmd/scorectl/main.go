// Command scorectl is an interactive console for the scoreboard control API.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	rl "github.com/chzyer/readline"
)

const defaultURL = "http://localhost:3000"

func main() {
	baseURL := os.Getenv("SCOREBOARD_URL")
	if baseURL == "" {
		baseURL = defaultURL
	}

	l, err := rl.NewEx(&rl.Config{
		Prompt:            "score» ",
		AutoComplete:      completer(),
		InterruptPrompt:   "^C",
		EOFPrompt:         "quit",
		HistorySearchFold: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "readline: %v\n", err)
		os.Exit(1)
	}
	defer l.Close()

	fmt.Fprintf(l.Stdout(), "connected to %s, type help for commands\n", baseURL)
	repl(context.Background(), l, l.Stdout(), newAPIClient(baseURL))
}

func completer() *rl.PrefixCompleter {
	items := make([]rl.PrefixCompleterInterface, 0, len(commands)+2)
	for _, c := range commands {
		if c.name == "pp" {
			items = append(items, rl.PcItem("pp", rl.PcItem("home"), rl.PcItem("away"), rl.PcItem("clear")))
			continue
		}
		items = append(items, rl.PcItem(c.name))
	}
	items = append(items, rl.PcItem("help"), rl.PcItem("quit"))
	return rl.NewPrefixCompleter(items...)
}

type lineReader interface {
	Readline() (string, error)
}

func repl(ctx context.Context, in lineReader, out io.Writer, api *apiClient) {
	for {
		line, err := in.Readline()
		if errors.Is(err, rl.ErrInterrupt) {
			if len(line) == 0 {
				return
			}
			continue
		} else if err != nil {
			return
		}

		line = strings.TrimSpace(line)
		switch line {
		case "":
			continue
		case "quit", "exit":
			return
		case "help", "?":
			fmt.Fprint(out, helpText())
			continue
		}

		c, err := parseLine(line)
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		res, err := api.do(ctx, c)
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		fmt.Fprintln(out, res)
	}
}
