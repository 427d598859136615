package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/cobra"

	"github.com/meigma/texsrc"
)

func newLsCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ls ID [DIR]",
		Short: "List the files of a source archive in presentation order",
		Long:  "List every entry of the archive, or only the immediate children of DIR.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := ""
			if len(args) == 2 {
				dir = args[1]
			}
			return runLs(cmd.Context(), cmd.OutOrStdout(), root, args[0], dir)
		},
	}
}

func runLs(ctx context.Context, w io.Writer, root *rootOptions, id, dir string) error {
	client, err := root.client()
	if err != nil {
		return err
	}
	archive, err := client.Fetch(ctx, id)
	if err != nil {
		return err
	}
	if dir != "" {
		return printDir(w, archive, dir)
	}
	return printArchive(w, archive)
}

// printDir writes the immediate children of dir, one per line.
// Directories carry a trailing slash.
func printDir(w io.Writer, archive *texsrc.Archive, dir string) error {
	children := archive.ReadDir(dir)
	if len(children) == 0 {
		return fmt.Errorf("%w: %s", errNoEntry, dir)
	}
	for _, c := range children {
		name := c.Name
		if c.IsDir {
			name += "/"
		}
		if _, err := fmt.Fprintln(w, name); err != nil {
			return err
		}
	}
	return nil
}

// printArchive writes a summary line followed by one row per entry.
// Primary sources are marked with '*'.
func printArchive(w io.Writer, archive *texsrc.Archive) error {
	fmt.Fprintf(w, "%s  %s  %s\n", archive.Kind(), humanize.Bytes(uint64(archive.Size())), archive.Digest()) //nolint:gosec // size is non-negative

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\tNAME\tSIZE\tTYPE\tDETECTED")
	for _, e := range archive.Entries() {
		mark := ""
		if e.IsPrimarySource {
			mark = "*"
		}
		typ, detected := e.Language, "-"
		if e.IsBinary() {
			typ = e.MIMEType
			detected = mimetype.Detect(e.Data).String()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			mark, e.Name, humanize.Bytes(uint64(e.Size())), typ, detected) //nolint:gosec // size is non-negative
	}
	return tw.Flush()
}
