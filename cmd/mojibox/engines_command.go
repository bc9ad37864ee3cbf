package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mojibox/internal/grapheme"
)

type engineView struct {
	Name       string `json:"name"`
	Available  bool   `json:"available"`
	Default    bool   `json:"default"`
	Configured bool   `json:"configured"`
}

func newEnginesCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "engines",
		Short: "List grapheme segmentation engines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configured := ctx.configValue().Segment.Engine
			infos := grapheme.Engines()
			views := make([]engineView, 0, len(infos))
			for _, info := range infos {
				views = append(views, engineView{
					Name:       string(info.Name),
					Available:  info.Available,
					Default:    info.Default,
					Configured: string(info.Name) == configured,
				})
			}
			if asJSON {
				return writeJSON(cmd, views)
			}

			rows := make([][]string, 0, len(views))
			for _, v := range views {
				rows = append(rows, []string{v.Name, yesNo(v.Available), yesNo(v.Default), yesNo(v.Configured)})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Engine", "Available", "Default", "Configured"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
				shouldColorize(out),
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}
