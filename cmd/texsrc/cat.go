package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newCatCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "cat ID [NAME]",
		Short: "Print one file of a source archive",
		Long:  "Print the named entry, or the primary source when NAME is omitted.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 2 {
				name = args[1]
			}
			return runCat(cmd.Context(), cmd.OutOrStdout(), root, args[0], name)
		},
	}
}

func runCat(ctx context.Context, w io.Writer, root *rootOptions, id, name string) error {
	client, err := root.client()
	if err != nil {
		return err
	}
	archive, err := client.Fetch(ctx, id)
	if err != nil {
		return err
	}

	entry, ok := archive.Primary()
	if name != "" {
		entry, ok = archive.Lookup(name)
	}
	if !ok {
		if name == "" {
			return fmt.Errorf("%s: %w: archive has no primary source", id, errNoEntry)
		}
		return fmt.Errorf("%s: %w: %s", id, errNoEntry, name)
	}

	if entry.IsText {
		_, err = io.WriteString(w, entry.Content)
	} else {
		_, err = w.Write(entry.Data)
	}
	return err
}
