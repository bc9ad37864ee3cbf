package main

import (
	"bytes"

	"github.com/spf13/cobra"
)

// writeLine writes data to stdout followed by a newline unless data already
// ends with one.
func writeLine(cmd *cobra.Command, data []byte) error {
	out := cmd.OutOrStdout()
	if _, err := out.Write(data); err != nil {
		return err
	}
	if bytes.HasSuffix(data, []byte("\n")) {
		return nil
	}
	_, err := out.Write([]byte("\n"))
	return err
}
