package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mojibox/internal/hexcodec"
	"mojibox/internal/logging"
)

func newBin2HexCommand(ctx *commandContext) *cobra.Command {
	var format string
	var lower bool

	cmd := &cobra.Command{
		Use:   "bin2hex [input]",
		Short: "Convert the input bytes to hexadecimal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			if !cmd.Flags().Changed("format") {
				format = cfg.Hex.Format
			}
			if !cmd.Flags().Changed("lower") {
				lower = cfg.Hex.Lowercase
			}
			f, err := hexcodec.ParseFormat(format)
			if err != nil {
				return err
			}
			c := hexcodec.Upper
			if lower {
				c = hexcodec.Lower
			}
			input, err := readInput(cmd, args, 0, false)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hexcodec.Encode(input, f, c))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "default", "Layout: default, spaced or escaped")
	cmd.Flags().BoolVar(&lower, "lower", false, "Use lowercase hex digits")
	return cmd
}

func newHex2BinCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "hex2bin [hex]",
		Short: "Convert hexadecimal text (any layout) back to bytes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args, 0, false)
			if err != nil {
				return err
			}
			logger := ctx.componentLogger("hexcodec")
			logger.Debug("decoding hex",
				logging.String("format", hexcodec.Detect(string(text)).String()),
			)
			decoded, err := hexcodec.Decode(string(text))
			if err != nil {
				logger.Debug("hex decode failed", logging.Error(err))
				return fmt.Errorf("hex2bin: %w", err)
			}
			return writeLine(cmd, decoded)
		},
	}
}
