package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"impgraph/internal/analysis"
	"impgraph/internal/config"
	"impgraph/internal/crawler"
	"impgraph/internal/extractor"
	"impgraph/internal/graph"
	"impgraph/internal/index"
	"impgraph/internal/logger"
	"impgraph/internal/preflight"
	"impgraph/internal/render"
	"impgraph/internal/storage"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

type runFlags struct {
	noExternal  bool
	noLabel     bool
	projectName string
	format      string
	configPath  string
	workers     int
	view        bool
	seed        int64
	logLevel    string
	policy      string
	report      bool
}

var (
	flags   runFlags
	rootCmd = &cobra.Command{
		Use:   "impgraph PROJECT_DIR OUTPUT",
		Short: "Draw the import graph of a Python project",
		Long: `impgraph scans every Python file under PROJECT_DIR, matches the names each
file imports against the names the other files export, and renders the result.
The output format follows the OUTPUT extension unless --format is given.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runGraph,
	}
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	f := rootCmd.Flags()
	f.BoolVarP(&flags.noExternal, "no-external", "e", false, "Do not draw external imports")
	f.BoolVarP(&flags.noLabel, "no-label", "l", false, "Do not label edges")
	f.StringVarP(&flags.projectName, "project-name", "p", "", "Project name (defaults to the directory name)")
	f.IntVar(&flags.workers, "workers", 0, "Number of files parsed in parallel")
	f.BoolVar(&flags.view, "view", false, "Open the output after rendering")
	f.Int64Var(&flags.seed, "seed", 0, "Seed for edge colours (0 picks a new one each run)")
	f.StringVar(&flags.policy, "definition-policy", "", "Which functions count as definitions: method-aware or legacy")
	f.BoolVar(&flags.report, "report", false, "Print a summary of the graph")

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "Path to the YAML config file (default impgraph.yaml)")
	pf.StringVarP(&flags.format, "format", "f", "", "Output format: dot, svg, png, pdf, mmd, json or sqlite")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(impactCmd)
}

// loadConfig reads the config file and applies the flags that override it.
func loadConfig() (*config.Config, *log.Logger, error) {
	cfg, err := config.LoadConfig(flags.configPath)
	if err != nil {
		return nil, nil, err
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	if flags.projectName != "" {
		cfg.Project.Name = flags.projectName
	}
	if flags.format != "" {
		cfg.Render.Format = flags.format
	}
	if flags.workers > 0 {
		cfg.Analysis.Workers = flags.workers
	}
	if flags.view {
		cfg.Render.View = true
	}
	if flags.seed != 0 {
		cfg.Style.Seed = flags.seed
	}
	if flags.policy != "" {
		cfg.Analysis.DefinitionPolicy = flags.policy
	}
	return cfg, logger.New(cfg.Log.Level, os.Stderr), nil
}

func runGraph(cmd *cobra.Command, args []string) error {
	cfg, logg, err := loadConfig()
	if err != nil {
		return err
	}

	// The format is settled before the output file is touched.
	format, err := outputFormat(cfg.Render.Format, args[1])
	if err != nil {
		return err
	}

	root, output, err := checkInputs(args[0], args[1])
	if err != nil {
		return err
	}

	projectName := cfg.Project.Name
	if projectName == "" {
		projectName = preflight.ProjectName(root)
	}

	policy, err := extractor.PolicyByName(cfg.Analysis.DefinitionPolicy)
	if err != nil {
		return err
	}
	ext, err := extractor.NewExtractor(cfg.Scan.Language, policy)
	if err != nil {
		return fmt.Errorf("failed to create extractor: %w", err)
	}

	seed := cfg.Style.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	opts := graph.Options{
		ShowExternal: !flags.noExternal,
		ShowLabels:   !flags.noLabel,
		Style:        graph.NewRandomStyle(seed),
	}

	ctx := cmd.Context()
	idx := index.NewIndexer(crawler.NewCrawler(ext, cfg.Scan.Ignore), ext, logg, cfg.Analysis.Workers)

	logg.Debug("building graph", "root", root, "project", projectName, "seed", seed)
	start := time.Now()
	g, _, err := idx.BuildGraph(ctx, root, projectName, opts)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}
	logg.Info("graph built", "nodes", len(g.Nodes), "edges", len(g.Edges), "skipped", len(g.Skipped), "took", time.Since(start))

	if err := writeOutput(ctx, g, output, format); err != nil {
		return err
	}
	logg.Info("written", "output", output, "format", format)

	if flags.report {
		if err := analysis.Summarize(g).Write(cmd.OutOrStdout()); err != nil {
			return err
		}
	}
	if cfg.Render.View {
		if err := render.View(output); err != nil {
			logg.Warn("could not open the output", "err", err)
		}
	}
	return nil
}

// checkInputs runs every precondition that must hold before analysis starts.
func checkInputs(dir, output string) (string, string, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", preflight.ErrFatalPrecondition, err)
	}
	if err := preflight.CheckDirectory(root); err != nil {
		return "", "", err
	}
	output, err = preflight.ResolveOutputPath(output)
	if err != nil {
		return "", "", err
	}
	if err := preflight.CheckWritable(output); err != nil {
		return "", "", err
	}
	return root, output, nil
}

func outputFormat(name, output string) (render.Format, error) {
	if name == "" {
		return render.FormatFromPath(output), nil
	}
	return render.ParseFormat(name)
}

func writeOutput(ctx context.Context, g *graph.Graph, output string, format render.Format) error {
	switch format {
	case render.FormatJSON:
		return index.SaveGraph(g, output)
	case render.FormatSQLite:
		return saveSQLite(ctx, g, output)
	default:
		return render.WriteFile(ctx, g, output, format)
	}
}

func saveSQLite(ctx context.Context, g *graph.Graph, output string) error {
	store, err := openStore(output)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()
	return store.SaveGraph(ctx, g)
}

func openStore(path string) (storage.GraphStore, error) {
	return storage.NewSQLiteStore(path)
}

// openExistingStore opens a saved SQLite snapshot without creating one.
func openExistingStore(path string) (storage.GraphStore, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	return openStore(path)
}

func isSQLite(path string) bool {
	return render.FormatFromPath(path) == render.FormatSQLite
}

// loadSnapshot reads a graph saved as JSON or SQLite, chosen by extension.
func loadSnapshot(ctx context.Context, path string) (*graph.Graph, error) {
	switch render.FormatFromPath(path) {
	case render.FormatJSON:
		return index.LoadGraph(path)
	case render.FormatSQLite:
		store, err := openExistingStore(path)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		return store.LoadGraph(ctx)
	default:
		return nil, errors.New("a snapshot must be a .json or .db file")
	}
}
