package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mojibox/internal/escape"
	"mojibox/internal/logging"
	"mojibox/internal/scrub"
)

type escapeView struct {
	Format  string `json:"format"`
	Escaped string `json:"escaped"`
}

type replacementView struct {
	Kind   string `json:"kind"`
	Offset int    `json:"offset"`
	Token  string `json:"token"`
}

type unescapeView struct {
	Text         string            `json:"text"`
	Replacements []replacementView `json:"replacements"`
}

func newEscapeCommand(ctx *commandContext) *cobra.Command {
	var format string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "escape [input]",
		Short: `Render the input as \u escape tokens`,
		Long: "Render every code point of the input as an escape token.\n\n" +
			"The default format writes \\u{1F363}; the json format writes UTF-16\n" +
			"code units such as \\uD83C\\uDF63. Ill-formed UTF-8 is escaped as U+FFFD.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") {
				format = ctx.configValue().Escape.Format
			}
			f, err := escape.ParseFormat(format)
			if err != nil {
				return err
			}
			input, err := readInput(cmd, args, 0, false)
			if err != nil {
				return err
			}
			clean, replaced := scrub.Report(input)
			if len(replaced) > 0 {
				ctx.componentLogger("escape").Warn("input contained ill-formed UTF-8; escaped as U+FFFD",
					logging.Int("replacements", len(replaced)),
				)
			}
			escaped := escape.EscapeString(string(clean), f)
			if asJSON {
				return writeJSON(cmd, escapeView{Format: f.String(), Escaped: escaped})
			}
			fmt.Fprintln(cmd.OutOrStdout(), escaped)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "default", "Token format: default or json")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newUnescapeCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	var strict bool

	cmd := &cobra.Command{
		Use:   "unescape [input]",
		Short: "Decode \\u escape tokens, repairing malformed ones with U+FFFD",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args, 0, false)
			if err != nil {
				return err
			}
			text := string(input)
			units := escape.Unescape(text)
			problems := escape.Problems(text, units)

			logger := ctx.componentLogger("escape")
			for _, p := range problems {
				logger.Debug("replaced escape token",
					logging.String("kind", p.Kind.String()),
					logging.Int(logging.FieldOffset, p.Offset),
					logging.String("token", p.Token),
				)
			}
			if strict && len(problems) > 0 {
				return fmt.Errorf("unescape: %w", problems[0])
			}

			decoded := escape.String(units)
			if asJSON {
				view := unescapeView{Text: decoded, Replacements: make([]replacementView, 0, len(problems))}
				for _, p := range problems {
					view.Replacements = append(view.Replacements, replacementView{
						Kind:   p.Kind.String(),
						Offset: p.Offset,
						Token:  p.Token,
					})
				}
				return writeJSON(cmd, view)
			}
			fmt.Fprintln(cmd.OutOrStdout(), decoded)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON, listing every replacement")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail on the first malformed token instead of replacing it")
	return cmd
}
