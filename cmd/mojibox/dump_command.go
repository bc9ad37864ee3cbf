package main

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"mojibox/internal/config"
	"mojibox/internal/inspect"
)

func newDumpCommand(ctx *commandContext) *cobra.Command {
	var format string
	var engine string

	cmd := &cobra.Command{
		Use:   "dump [input]",
		Short: "Describe every grapheme cluster and its code points",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			if !cmd.Flags().Changed("format") {
				format = cfg.Dump.Format
			}
			format = strings.ToLower(strings.TrimSpace(format))
			if !slices.Contains(config.DumpFormats, format) {
				return fmt.Errorf("unknown dump format %q (expected text, json or jsonl)", format)
			}
			if !cmd.Flags().Changed("engine") {
				engine = cfg.Segment.Engine
			}

			input, err := readInput(cmd, args, 0, false)
			if err != nil {
				return err
			}
			clusters, err := inspect.Dump(input, engine)
			if err != nil {
				return fmt.Errorf("dump: %w", err)
			}

			switch format {
			case "json":
				return writeJSON(cmd, clusters)
			case "jsonl":
				return writeJSONLines(cmd, clusters)
			default:
				if len(clusters) == 0 {
					return nil
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, renderDumpTable(clusters, shouldColorize(out)))
				return nil
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json or jsonl")
	cmd.Flags().StringVarP(&engine, "engine", "e", "uniseg", "Grapheme segmentation engine")
	return cmd
}

// renderDumpTable lists one row per code point; the cluster columns are only
// filled on the first row of each cluster.
func renderDumpTable(clusters []inspect.Cluster, colorize bool) string {
	headers := []string{"#", "Grapheme", "Bytes", "Code Point", "Char", "Name"}
	aligns := []columnAlignment{alignRight, alignLeft, alignRight, alignLeft, alignLeft, alignLeft}
	rows := make([][]string, 0, len(clusters))
	for _, c := range clusters {
		for i, cp := range c.CodePoints {
			row := []string{"", "", "", cp.CodePoint, printable(cp.Char), cp.Name}
			if i == 0 {
				row[0] = strconv.Itoa(c.Index)
				row[1] = printable(c.Grapheme)
				row[2] = fmt.Sprintf("%d-%d", c.Span.Start, c.Span.End)
			}
			rows = append(rows, row)
		}
	}
	return renderTable(headers, rows, aligns, colorize)
}

// printable keeps control characters from breaking the table layout.
func printable(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r < 0x20 || r == 0x7F || (r >= 0x80 && r < 0xA0) {
			fmt.Fprintf(&b, "\\x%02X", r)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
