package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/cobra"

	"github.com/meigma/texsrc"
)

type sniffOptions struct {
	*rootOptions
	mediaType string
	list      bool
}

func newSniffCmd(root *rootOptions) *cobra.Command {
	opts := &sniffOptions{rootOptions: root}

	cmd := &cobra.Command{
		Use:   "sniff FILE...",
		Short: "Decode local payload files without fetching",
		Long: "Run the container sniffer and decoder on files already on disk and report\n" +
			"the detected format. No network access is made.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSniff(cmd.OutOrStdout(), opts, args)
		},
	}
	cmd.Flags().StringVar(&opts.mediaType, "media-type", "", "Declared media type to sniff with")
	cmd.Flags().BoolVarP(&opts.list, "list", "l", false, "List entries of each payload")
	return cmd
}

func runSniff(w io.Writer, opts *sniffOptions, paths []string) error {
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read payload: %w", err)
		}
		id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		archive := texsrc.Decode(texsrc.Payload{
			Data:      data,
			Length:    int64(len(data)),
			MediaType: opts.mediaType,
		}, id, texsrc.DecodeWithLogger(opts.log()))

		fmt.Fprintf(w, "%s: %s, %d entries, detected %s\n",
			path, archive.Kind(), archive.Len(), mimetype.Detect(data).String())
		if opts.list {
			if err := printArchive(w, archive); err != nil {
				return err
			}
		}
	}
	return nil
}
