package main

import (
	"bufio"
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/scicalc"
	"github.com/zephyrtronium/scicalc/internal/console"
)

var simpleCmd = &cobra.Command{
	Use:   "simple",
	Short: "Run the four-function calculator",
	Long: `Reads one expression per line and prints its value, or "Error" if it can't be
evaluated. A line containing only C clears the display.

Unlike a plain four-function calculator, lines go through the same pipeline
as the REPL, so scientific functions and shorthand such as 5! and 2^3 are
accepted and results are rounded to 12 decimal places.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.close()
		return simple(cmd.InOrStdin(), a.con, a.calc)
	},
}

func init() {
	rootCmd.AddCommand(simpleCmd)
}

// simple runs the four-function calculator loop. Results are not recorded
// in the history.
func simple(in io.Reader, con *console.Console, calc *scicalc.Calculator) error {
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
		switch line {
		case "":
			continue
		case "C", "c":
			con.Plain("")
			continue
		}
		r, err := calc.Compute(line)
		if err != nil {
			con.Plain("Error")
			continue
		}
		con.Result(r)
	}
}
