package console

import (
	"bufio"
	"context"
	"fmt"
	"frsmenu/lib/menu"
	"io"
	"log/slog"
	"strings"
)

const Prompt = "دستور → "

type command int

const (
	commandUnknown command = iota
	commandQuit
	commandNext
	commandPrev
	commandCurrent
	commandDetails
)

var commandAliases = map[string]command{
	"":        commandQuit,
	"q":       commandQuit,
	"quit":    commandQuit,
	"exit":    commandQuit,
	"خروج":    commandQuit,
	"n":       commandNext,
	"next":    commandNext,
	"بعدی":    commandNext,
	"p":       commandPrev,
	"prev":    commandPrev,
	"قبلی":    commandPrev,
	"c":       commandCurrent,
	"current": commandCurrent,
	"جاری":    commandCurrent,
	"d":       commandDetails,
	"day":     commandDetails,
	"جزئیات":  commandDetails,
}

func parseCommand(line string) (command, string) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return commandQuit, ""
	}
	cmd, ok := commandAliases[fields[0]]
	if !ok {
		return commandUnknown, ""
	}
	return cmd, strings.Join(fields[1:], " ")
}

func showWeek(ctx context.Context, out io.Writer, nav *menu.Navigator) {
	days, err := nav.Load(ctx)
	if err != nil {
		slog.WarnContext(ctx, "failed to load week", "offset", nav.Offset(), "err", err)
		renderError(out, "خطا در دریافت داده", err)
		return
	}
	RenderWeek(out, days, nav.Offset())
}

// Loop runs the interactive console until the user quits, the input ends
// or ctx is cancelled. Fetch errors are reported and the loop goes on.
func Loop(ctx context.Context, in io.Reader, out io.Writer, nav *menu.Navigator) error {
	showWeek(ctx, out, nav)

	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(out, Prompt)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		cmd, arg := parseCommand(scanner.Text())
		switch cmd {
		case commandQuit:
			return nil
		case commandNext:
			nav.Next()
			showWeek(ctx, out, nav)
		case commandPrev:
			nav.Prev()
			showWeek(ctx, out, nav)
		case commandCurrent:
			nav.Current()
			showWeek(ctx, out, nav)
		case commandDetails:
			if arg == "" {
				fmt.Fprintln(out, "تاریخ روز را وارد کنید، مثلا: d 1403/01/04")
				continue
			}
			day, ok := menu.FindDay(nav.Days(), arg)
			if !ok {
				fmt.Fprintf(out, "روز %s در این هفته نیست\n", arg)
				continue
			}
			RenderDetails(out, day)
		default:
			fmt.Fprintln(out, "دستور نامعتبر! (n, p, c, d <تاریخ>, q)")
		}
	}
}
