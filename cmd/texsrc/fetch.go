package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/meigma/texsrc"
)

type fetchOptions struct {
	*rootOptions
	outDir      string
	concurrency int
	progress    bool
}

func newFetchCmd(root *rootOptions) *cobra.Command {
	opts := &fetchOptions{rootOptions: root}

	cmd := &cobra.Command{
		Use:   "fetch ID...",
		Short: "Download sources and write their files to disk",
		Long: "Download the source archive of each identifier and write its entries under\n" +
			"<output>/<id>/. Identifiers are fetched concurrently.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), opts, args)
		},
	}
	cmd.Flags().StringVarP(&opts.outDir, "output", "o", ".", "Directory to write sources into")
	cmd.Flags().IntVarP(&opts.concurrency, "concurrency", "j", 4, "Maximum concurrent downloads")
	cmd.Flags().BoolVar(&opts.progress, "progress", false, "Report download progress to stderr")
	return cmd
}

func runFetch(ctx context.Context, stdout, stderr io.Writer, opts *fetchOptions, ids []string) error {
	client, err := opts.client()
	if err != nil {
		return err
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.concurrency, 1))
	for _, id := range ids {
		g.Go(func() error {
			var fetchOpts []texsrc.FetchOption
			if opts.progress {
				fetchOpts = append(fetchOpts, texsrc.FetchWithProgress(newProgressPrinter(stderr, &mu, id)))
			}
			archive, err := client.Fetch(ctx, id, fetchOpts...)
			if err != nil {
				return fmt.Errorf("%s: %w", id, err)
			}
			dir := filepath.Join(opts.outDir, texsrc.SanitizeID(id))
			written, err := writeArchive(opts, dir, archive)
			if err != nil {
				return fmt.Errorf("%s: %w", id, err)
			}

			mu.Lock()
			defer mu.Unlock()
			fmt.Fprintf(stdout, "%s: %d files, %s (%s) -> %s\n",
				id, written, humanize.Bytes(uint64(archive.Size())), archive.Kind(), dir) //nolint:gosec // size is non-negative
			return nil
		})
	}
	return g.Wait()
}

// writeArchive writes each entry below dir and returns the number written.
// Entries whose names would escape dir are skipped.
func writeArchive(opts *fetchOptions, dir string, archive *texsrc.Archive) (int, error) {
	written := 0
	for _, e := range archive.Entries() {
		name := filepath.FromSlash(e.Name)
		if !filepath.IsLocal(name) {
			opts.log().Warn("skipping entry outside output directory", "name", e.Name)
			continue
		}
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return written, fmt.Errorf("create directory: %w", err)
		}
		data := e.Data
		if e.IsText {
			data = []byte(e.Content)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // source files are not secret
			return written, fmt.Errorf("write %s: %w", e.Name, err)
		}
		written++
	}
	return written, nil
}

// newProgressPrinter reports phase changes and every tenth percent.
// Downloads of unknown length report only their first chunk.
func newProgressPrinter(w io.Writer, mu *sync.Mutex, id string) texsrc.ProgressFunc {
	var (
		started   bool
		lastPhase texsrc.Phase
		lastStep  int
	)
	return func(ev texsrc.ProgressEvent) {
		step := ev.Percent / 10
		if started && ev.Phase == lastPhase && step == lastStep {
			return
		}
		started, lastPhase, lastStep = true, ev.Phase, step

		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(w, "%s: %s %s/%s (%d%%)\n",
			id, ev.Phase, humanize.Bytes(ev.BytesLoaded), humanize.Bytes(ev.BytesTotal), ev.Percent)
	}
}
