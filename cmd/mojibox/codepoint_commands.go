package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mojibox/internal/codepoint"
)

type ordView struct {
	Char      string `json:"char"`
	CodePoint string `json:"codepoint"`
}

func newOrdCommand(ctx *commandContext) *cobra.Command {
	var opts codepoint.Options
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "ord [input]",
		Short: "Print the code point of every character",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args, 0, false)
			if err != nil {
				return err
			}
			tokens := codepoint.Ord(string(input), opts)
			if asJSON {
				views := make([]ordView, 0, len(tokens))
				i := 0
				for _, r := range string(input) {
					views = append(views, ordView{Char: string(r), CodePoint: tokens[i]})
					i++
				}
				return writeJSON(cmd, views)
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(tokens, " "))
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.Lower, "lower", false, "Use lowercase hex digits")
	cmd.Flags().BoolVar(&opts.NoPrefix, "no-0x", false, "Omit the 0x prefix")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newChrCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "chr <codepoint>...",
		Short: "Print the characters for hexadecimal code points (0x or U+ prefix optional)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var tokens []string
			for _, arg := range args {
				tokens = append(tokens, strings.Fields(arg)...)
			}
			s, err := codepoint.Chr(tokens)
			if err != nil {
				return fmt.Errorf("chr: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), s)
			return nil
		},
	}
}
