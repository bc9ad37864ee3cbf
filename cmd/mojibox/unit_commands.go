package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"mojibox/internal/logging"
	"mojibox/internal/segment"
)

type unitView struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

type unitListView struct {
	Mode   string     `json:"mode"`
	Engine string     `json:"engine"`
	Units  []unitView `json:"units"`
}

type lengthView struct {
	Mode   string `json:"mode"`
	Engine string `json:"engine"`
	Length int    `json:"length"`
}

type unitFlags struct {
	mode   string
	engine string
	json   bool
}

func (f *unitFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.mode, "mode", "m", "grapheme", "Unit granularity: byte, codepoint or grapheme")
	cmd.Flags().StringVarP(&f.engine, "engine", "e", "uniseg", "Grapheme segmentation engine")
	cmd.Flags().BoolVar(&f.json, "json", false, "Output as JSON")
}

func newUnitCommands(ctx *commandContext) []*cobra.Command {
	return []*cobra.Command{
		newIterCommand(ctx),
		newLenCommand(ctx),
		newTakeCommand(ctx),
		newDropCommand(ctx),
	}
}

func newIterCommand(ctx *commandContext) *cobra.Command {
	var flags unitFlags
	cmd := &cobra.Command{
		Use:   "iter [input]",
		Short: "Print the input one unit per line",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seg, engine, err := newSegmenter(ctx, cmd, &flags, args, 0)
			if err != nil {
				return err
			}
			units, err := seg.Units()
			if err != nil {
				return fmt.Errorf("iter: %w", err)
			}
			collected := make([]segment.Unit, 0)
			for u := range units {
				collected = append(collected, u)
			}
			return renderUnits(cmd, flags.json, seg.Kind(), engine, collected)
		},
	}
	flags.register(cmd)
	return cmd
}

func newLenCommand(ctx *commandContext) *cobra.Command {
	var flags unitFlags
	cmd := &cobra.Command{
		Use:   "len [input]",
		Short: "Count the units of the input",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seg, engine, err := newSegmenter(ctx, cmd, &flags, args, 0)
			if err != nil {
				return err
			}
			n, err := seg.Len()
			if err != nil {
				return fmt.Errorf("len: %w", err)
			}
			if flags.json {
				return writeJSON(cmd, lengthView{Mode: seg.Kind().String(), Engine: engine, Length: n})
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newTakeCommand(ctx *commandContext) *cobra.Command {
	var flags unitFlags
	cmd := &cobra.Command{
		Use:   "take <n> [input]",
		Short: "Print the first n units of the input",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseCount(args[0])
			if err != nil {
				return err
			}
			seg, engine, err := newSegmenter(ctx, cmd, &flags, args, 1)
			if err != nil {
				return err
			}
			units, err := seg.Take(n)
			if err != nil {
				return fmt.Errorf("take: %w", err)
			}
			return renderUnits(cmd, flags.json, seg.Kind(), engine, units)
		},
	}
	flags.register(cmd)
	return cmd
}

func newDropCommand(ctx *commandContext) *cobra.Command {
	var flags unitFlags
	cmd := &cobra.Command{
		Use:   "drop <n> [input]",
		Short: "Print the units left after skipping the first n",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseCount(args[0])
			if err != nil {
				return err
			}
			seg, engine, err := newSegmenter(ctx, cmd, &flags, args, 1)
			if err != nil {
				return err
			}
			units, err := seg.Drop(n)
			if err != nil {
				return fmt.Errorf("drop: %w", err)
			}
			return renderUnits(cmd, flags.json, seg.Kind(), engine, units)
		},
	}
	flags.register(cmd)
	return cmd
}

func newSegmenter(ctx *commandContext, cmd *cobra.Command, flags *unitFlags, args []string, inputIndex int) (*segment.Segmenter, string, error) {
	kind, engine, err := ctx.segmentOptions(cmd, flags.mode, flags.engine)
	if err != nil {
		return nil, "", err
	}
	input, err := readInput(cmd, args, inputIndex, false)
	if err != nil {
		return nil, "", err
	}
	seg, err := segment.New(input, kind, engine)
	if err != nil {
		return nil, "", err
	}
	ctx.componentLogger("segment").Debug("segmenting input",
		logging.String(logging.FieldMode, kind.String()),
		logging.String(logging.FieldEngine, engine),
		logging.Int("bytes", len(input)),
	)
	return seg, engine, nil
}

func parseCount(value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid unit count %q: must be an integer", value)
	}
	if n < 0 {
		return 0, segment.ErrNegativeCount
	}
	return n, nil
}

func renderUnits(cmd *cobra.Command, asJSON bool, kind segment.Kind, engine string, units []segment.Unit) error {
	if asJSON {
		view := unitListView{Mode: kind.String(), Engine: engine, Units: make([]unitView, 0, len(units))}
		for i, u := range units {
			view.Units = append(view.Units, unitView{Index: i, Text: u.Display(), Start: u.Span.Start, End: u.Span.End})
		}
		return writeJSON(cmd, view)
	}
	out := cmd.OutOrStdout()
	for _, u := range units {
		fmt.Fprintln(out, u.Display())
	}
	return nil
}
