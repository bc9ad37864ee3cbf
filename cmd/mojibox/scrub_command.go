package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/transform"

	"mojibox/internal/hexcodec"
	"mojibox/internal/logging"
	"mojibox/internal/scrub"
)

func newScrubCommand(ctx *commandContext) *cobra.Command {
	var inputFormat string

	cmd := &cobra.Command{
		Use:   "scrub [input]",
		Short: "Replace ill-formed UTF-8 with U+FFFD",
		Long: "Replace every maximal ill-formed UTF-8 subsequence with one U+FFFD.\n\n" +
			"With --input-format hex the input is hex text in any layout accepted by hex2bin.\n" +
			"Binary stdin is processed byte for byte, including trailing newlines.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recorder := &scrub.Recorder{}
			var out []byte
			switch strings.ToLower(strings.TrimSpace(inputFormat)) {
			case "binary", "bin", "":
				scrubbed, err := scrubBinary(cmd, args, recorder)
				if err != nil {
					return err
				}
				out = scrubbed
			case "hex":
				text, err := readInput(cmd, args, 0, false)
				if err != nil {
					return err
				}
				decoded, err := hexcodec.Decode(string(text))
				if err != nil {
					return fmt.Errorf("scrub: %w", err)
				}
				scrubbed, _, err := transform.Bytes(recorder, decoded)
				if err != nil {
					return fmt.Errorf("scrub: %w", err)
				}
				out = scrubbed
			default:
				return fmt.Errorf("unknown input format %q (expected binary or hex)", inputFormat)
			}

			replaced := recorder.Spans
			logger := ctx.componentLogger("scrub")
			for _, span := range replaced {
				logger.Debug("replaced ill-formed UTF-8", logging.Span(span.Start, span.End))
			}
			if len(replaced) > 0 {
				logger.Info("scrubbed input", logging.Int("replacements", len(replaced)))
			}
			return writeLine(cmd, out)
		},
	}

	cmd.Flags().StringVarP(&inputFormat, "input-format", "i", "binary", "Input format: binary or hex")
	return cmd
}

// scrubBinary repairs the positional argument, or stdin read through the
// scrubber. Stdin is taken as is, trailing newline included.
func scrubBinary(cmd *cobra.Command, args []string, recorder *scrub.Recorder) ([]byte, error) {
	if len(args) > 0 && args[0] != "-" {
		out, _, err := transform.Bytes(recorder, []byte(args[0]))
		if err != nil {
			return nil, fmt.Errorf("scrub: %w", err)
		}
		return out, nil
	}
	if err := cmd.Context().Err(); err != nil {
		return nil, err
	}
	out, err := io.ReadAll(transform.NewReader(cmd.InOrStdin(), recorder))
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return out, nil
}
