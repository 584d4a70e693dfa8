package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/zephyrtronium/scicalc"
	"github.com/zephyrtronium/scicalc/internal/console"
)

const replHelp = `Expressions are evaluated and recorded in the history.

| command | effect |
| --- | --- |
| ` + "`:deg`, `:rad`" + ` | set the trig mode |
| ` + "`:mode`" + ` | toggle the trig mode |
| ` + "`:m+ [EXPR]`" + ` | add EXPR, or the last result, to memory |
| ` + "`:m- [EXPR]`" + ` | subtract EXPR, or the last result, from memory |
| ` + "`:mr`" + ` | show memory |
| ` + "`:mc`" + ` | clear memory |
| ` + "`:history`" + ` | list the history |
| ` + "`:recall N`" + ` | evaluate history entry N again |
| ` + "`:clear`" + ` | clear the history |
| ` + "`:quit`" + ` | exit |`

// help returns the REPL help text with the names available to expressions.
func help(calc *scicalc.Calculator) string {
	return replHelp + "\n\nNames: `" + strings.Join(calc.Names(), "`, `") + "`"
}

// repl reads lines from in until EOF or :quit. Evaluation errors are reported
// and never end the loop.
func repl(in io.Reader, con *console.Console, calc *scicalc.Calculator) error {
	rd := bufio.NewReader(in)
	for {
		con.Prompt(calc.Mode())
		line, err := readLine(rd)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, ":"):
			if command(line, con, calc) {
				return nil
			}
		default:
			evaluate(line, con, calc)
		}
	}
}

// readLine reads a line of any length and trims surrounding space. The error
// is io.EOF only when no input remains.
func readLine(rd *bufio.Reader) (string, error) {
	line, err := rd.ReadString('\n')
	if errors.Is(err, io.EOF) && line != "" {
		err = nil
	}
	return strings.TrimSpace(line), err
}

func evaluate(line string, con *console.Console, calc *scicalc.Calculator) {
	r, err := calc.Evaluate(line)
	if err != nil {
		con.Error(err)
		return
	}
	con.Result(r)
}

var errNoResult = errors.New("no result to use")

// operand evaluates the argument of a memory command, or uses the last
// result if there is none.
func operand(arg string, calc *scicalc.Calculator) (scicalc.Number, error) {
	if arg != "" {
		return calc.Compute(arg)
	}
	h := calc.History()
	if len(h) == 0 {
		return scicalc.Number{}, errNoResult
	}
	return h[len(h)-1].Result, nil
}

// command runs a REPL command and returns whether the loop should end.
func command(line string, con *console.Console, calc *scicalc.Calculator) bool {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	switch name {
	case ":quit", ":q", ":exit":
		return true
	case ":help", ":h":
		con.Markdown(help(calc))
	case ":deg":
		calc.SetMode(scicalc.Degrees)
		con.Info("mode %v", calc.Mode())
	case ":rad":
		calc.SetMode(scicalc.Radians)
		con.Info("mode %v", calc.Mode())
	case ":mode":
		con.Info("mode %v", calc.ToggleMode())
	case ":m+", ":m-":
		n, err := operand(arg, calc)
		if err != nil {
			con.Error(err)
			return false
		}
		if name == ":m+" {
			calc.AddToMemory(n)
		} else {
			calc.SubtractFromMemory(n)
		}
		con.Info("M = %v", calc.ReadMemory())
	case ":mr":
		con.Result(calc.ReadMemory())
	case ":mc":
		calc.ClearMemory()
		con.Info("M = %v", calc.ReadMemory())
	case ":history":
		if calc.HistoryLen() == 0 {
			con.Info("history empty")
		}
		for i, e := range calc.History() {
			con.Plain(strconv.Itoa(i+1) + ": " + e.String())
		}
	case ":recall":
		i, err := strconv.Atoi(arg)
		if err != nil {
			con.Error(fmt.Errorf("recall needs an entry number: %w", err))
			return false
		}
		expr, ok := calc.Recall(i - 1)
		if !ok {
			con.Error(fmt.Errorf("no history entry %d", i))
			return false
		}
		con.Plain(expr)
		evaluate(expr, con, calc)
	case ":clear":
		calc.ClearHistory()
		con.Info("history cleared")
	default:
		con.Error(fmt.Errorf("unknown command %s (try :help)", name))
	}
	return false
}
