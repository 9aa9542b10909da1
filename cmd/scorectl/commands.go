package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/betterscore/scoreboard-service/internal/format"
)

var errUsage = errors.New("usage")

// call is one control API request.
type call struct {
	Method string
	Path   string
	Body   map[string]int
}

type command struct {
	name  string
	usage string
	parse func(args []string) (call, error)
}

func post(path string) func([]string) (call, error) {
	return func(args []string) (call, error) {
		if len(args) != 0 {
			return call{}, errUsage
		}
		return call{Method: http.MethodPost, Path: path}, nil
	}
}

func get(path string) func([]string) (call, error) {
	return func(args []string) (call, error) {
		if len(args) != 0 {
			return call{}, errUsage
		}
		return call{Method: http.MethodGet, Path: path}, nil
	}
}

var commands = []command{
	{name: "state", usage: "state", parse: get("/state")},
	{name: "ready", usage: "ready", parse: get("/ready")},
	{name: "home", usage: "home", parse: post("/score/home")},
	{name: "away", usage: "away", parse: post("/score/away")},
	{name: "reset-score", usage: "reset-score", parse: post("/score/reset")},
	{name: "next-period", usage: "next-period", parse: post("/period/next")},
	{name: "reset-period", usage: "reset-period", parse: post("/period/reset")},
	{name: "pp", usage: "pp home|away|clear", parse: parsePowerPlay},
	{name: "start", usage: "start", parse: post("/clock/start")},
	{name: "stop", usage: "stop", parse: post("/clock/stop")},
	{name: "reset-clock", usage: "reset-clock", parse: post("/clock/reset")},
	{name: "set-score", usage: "set-score HOME AWAY (- keeps a side)", parse: parseSetScore},
	{name: "set-period", usage: "set-period N", parse: parseSetPeriod},
	{name: "set-time", usage: "set-time M:SS|SECONDS", parse: parseClockArg("/set/time")},
	{name: "set-pp-time", usage: "set-pp-time M:SS|SECONDS", parse: parseClockArg("/set/pp/time")},
}

func lookup(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

// parseLine turns one console line into a control API call.
func parseLine(line string) (call, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return call{}, errUsage
	}
	cmd, ok := lookup(fields[0])
	if !ok {
		return call{}, fmt.Errorf("unknown command %q", fields[0])
	}
	c, err := cmd.parse(fields[1:])
	if errors.Is(err, errUsage) {
		return call{}, fmt.Errorf("%w: %s", errUsage, cmd.usage)
	}
	return c, err
}

func parsePowerPlay(args []string) (call, error) {
	if len(args) != 1 {
		return call{}, errUsage
	}
	switch args[0] {
	case "home", "away", "clear":
		return call{Method: http.MethodPost, Path: "/pp/" + args[0]}, nil
	default:
		return call{}, errUsage
	}
}

func parseSetScore(args []string) (call, error) {
	if len(args) != 2 {
		return call{}, errUsage
	}
	body := map[string]int{}
	for i, key := range []string{"home", "away"} {
		if args[i] == "-" {
			continue
		}
		n, err := strconv.Atoi(args[i])
		if err != nil || n < 0 {
			return call{}, fmt.Errorf("invalid %s score %q", key, args[i])
		}
		body[key] = n
	}
	return call{Method: http.MethodPost, Path: "/set/score", Body: body}, nil
}

func parseSetPeriod(args []string) (call, error) {
	if len(args) != 1 {
		return call{}, errUsage
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return call{}, fmt.Errorf("invalid period %q", args[0])
	}
	return call{Method: http.MethodPost, Path: "/set/period", Body: map[string]int{"period": n}}, nil
}

func parseClockArg(path string) func([]string) (call, error) {
	return func(args []string) (call, error) {
		if len(args) != 1 {
			return call{}, errUsage
		}
		seconds, err := format.ParseClock(args[0])
		if err != nil {
			return call{}, err
		}
		return call{Method: http.MethodPost, Path: path, Body: map[string]int{"seconds": seconds}}, nil
	}
}

func helpText() string {
	var b strings.Builder
	b.WriteString("commands:\n")
	for _, c := range commands {
		b.WriteString("  " + c.usage + "\n")
	}
	b.WriteString("  help\n  quit\n")
	return b.String()
}
