package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"impgraph/internal/analysis"
	"impgraph/internal/git"
	"impgraph/internal/preflight"

	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render SNAPSHOT OUTPUT",
	Short: "Render a saved JSON or SQLite snapshot to another format",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		g, err := loadSnapshot(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to load snapshot: %w", err)
		}

		format, err := outputFormat(cfg.Render.Format, args[1])
		if err != nil {
			return err
		}
		output, err := preflight.ResolveOutputPath(args[1])
		if err != nil {
			return err
		}
		if err := preflight.CheckWritable(output); err != nil {
			return err
		}

		if err := writeOutput(ctx, g, output, format); err != nil {
			return err
		}
		logg.Info("written", "output", output, "format", format, "nodes", len(g.Nodes))
		return nil
	},
}

var sinceRef string

var impactCmd = &cobra.Command{
	Use:   "impact SNAPSHOT [FILE...]",
	Short: "List the files that import the given files, directly or transitively",
	Long: `impact reads a saved snapshot and lists the files that import the given
files. With --since, the files changed in the git working tree since that
revision are added to the list.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		idx, closeIndex, err := openImportIndex(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to load snapshot: %w", err)
		}
		defer closeIndex()

		changed := make([]string, 0, len(args)-1)
		if sinceRef != "" {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			files, err := git.ChangedFiles(ctx, wd, sinceRef)
			if err != nil {
				return err
			}
			changed = append(changed, files...)
		}
		if len(changed) == 0 && len(args) == 1 {
			return errors.New("no changed files given")
		}
		for _, p := range args[1:] {
			abs, err := filepath.Abs(p)
			if err != nil {
				return err
			}
			changed = append(changed, abs)
		}

		report, err := analysis.Impact(ctx, idx, changed)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, n := range report.DirectlyAffected {
			fmt.Fprintf(out, "direct\t%s\t%s\n", n.Label, n.ID)
		}
		for _, n := range report.IndirectlyAffected {
			fmt.Fprintf(out, "indirect\t%s\t%s\n", n.Label, n.ID)
		}
		return nil
	},
}

// openImportIndex queries a SQLite snapshot in place and loads a JSON snapshot
// into memory.
func openImportIndex(ctx context.Context, path string) (analysis.ImportIndex, func() error, error) {
	if isSQLite(path) {
		store, err := openExistingStore(path)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	}
	g, err := loadSnapshot(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	return analysis.NewAnalyzer(g), func() error { return nil }, nil
}

func init() {
	impactCmd.Flags().StringVar(&sinceRef, "since", "", "Also treat files changed since this git revision as changed")
}
