package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/scicalc"
	"github.com/zephyrtronium/scicalc/internal/console"
)

var evalCmd = &cobra.Command{
	Use:   "eval [EXPR...]",
	Short: "Evaluate expressions and print their results",
	Long: `Evaluates each argument as a separate expression. With --in, each line of
the file is also an expression; "-" reads standard input.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		inname, _ := cmd.Flags().GetString("in")
		echo, _ := cmd.Flags().GetBool("echo")
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		exprs := args
		if inname != "" {
			lines, err := readLines(inname, cmd.InOrStdin())
			if err != nil {
				return err
			}
			exprs = append(lines, exprs...)
		}
		if failed := evalAll(exprs, echo, a.con, a.calc); failed > 0 {
			return fmt.Errorf("%d of %d expressions failed", failed, len(exprs))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(evalCmd)

	evalCmd.Flags().String("in", "", "file of expressions, one per line")
	evalCmd.Flags().Bool("echo", false, "print the parsed form of each expression")
}

// evalAll evaluates each expression in order and returns the number that
// failed.
func evalAll(exprs []string, echo bool, con *console.Console, calc *scicalc.Calculator) int {
	failed := 0
	for _, src := range exprs {
		if echo {
			if canon, err := scicalc.Normalize(src); err == nil {
				if e, err := scicalc.ParseString(canon); err == nil {
					con.Plain(e.String() + " :")
				}
			}
		}
		r, err := calc.Evaluate(src)
		if err != nil {
			con.Error(err)
			failed++
			continue
		}
		con.Result(r)
	}
	return failed
}

func readLines(name string, stdin io.Reader) ([]string, error) {
	in := stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return nil, fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		in = f
	}
	var lines []string
	rd := bufio.NewReader(in)
	for {
		line, err := readLine(rd)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return lines, nil
			}
			return nil, fmt.Errorf("failed to read input: %w", err)
		}
		if line != "" {
			lines = append(lines, line)
		}
	}
}
