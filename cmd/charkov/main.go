package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	"github.com/CTAG07/charkov/pkg/corpus"
	"github.com/CTAG07/charkov/pkg/markov"
)

// fixedSeed is the sampling seed used when generation is not random.
const fixedSeed = 20

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// app carries the state shared by every command: the loaded configuration
// and the logger built from it.
type app struct {
	configPath string
	logLevel   string
	config     *Config
	logger     *slog.Logger
}

// modelSource names where a model's training text comes from. Exactly one
// field must be set.
type modelSource struct {
	file       string
	corpusName string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:           "charkov",
		Short:         "Character-level Markov text generator",
		Version:       fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildDate),
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "./charkov.json", "path to a JSON or TOML config file")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(newGenerateCmd(a))
	rootCmd.AddCommand(newRunCmd(a))
	rootCmd.AddCommand(newInspectCmd(a))
	rootCmd.AddCommand(newCorpusCmd(a))

	return rootCmd
}

// init loads the configuration and builds the logger.
func (a *app) init(cmd *cobra.Command) error {
	config, err := LoadConfig(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if a.logLevel != "" {
		config.LogLevel = a.logLevel
	}
	a.config = config
	a.logger = newLogger(cmd.ErrOrStderr(), config.LogLevel)
	return nil
}

// openStore opens the corpus database named by the configuration. The
// returned function releases the store and closes the database.
func (a *app) openStore() (*corpus.Store, func(), error) {
	if dir := filepath.Dir(a.config.DatabasePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := initDB(a.config.DatabasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if err = corpus.SetupSchema(db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to setup corpus schema: %w", err)
	}
	store, err := corpus.NewStore(db)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("error creating corpus store: %w", err)
	}
	store.SetLogger(a.logger)

	closeFn := func() {
		store.Close()
		if err := db.Close(); err != nil {
			a.logger.Error("Failed to close database", "error", err)
		}
	}
	return store, closeFn, nil
}

// buildModel creates a model, trains it from src and prunes it when pruneMin
// is positive. Non-random models are seeded with seed.
func (a *app) buildModel(ctx context.Context, windowLength int, random bool, seed uint64, src modelSource, pruneMin int) (*markov.Model, error) {
	var opts []markov.Option
	if !random {
		opts = append(opts, markov.WithSeed(seed))
	}
	m, err := markov.New(windowLength, opts...)
	if err != nil {
		return nil, err
	}
	m.SetLogger(a.logger)

	switch {
	case src.file != "" && src.corpusName != "":
		return nil, fmt.Errorf("use either a corpus file or a stored corpus, not both")
	case src.file != "":
		file, err := os.Open(src.file)
		if err != nil {
			return nil, fmt.Errorf("failed to open corpus file: %w", err)
		}
		defer func(file *os.File) {
			_ = file.Close()
		}(file)
		if err = m.TrainReader(ctx, file); err != nil {
			return nil, fmt.Errorf("failed to train on %s: %w", src.file, err)
		}
	case src.corpusName != "":
		store, closeStore, err := a.openStore()
		if err != nil {
			return nil, err
		}
		defer closeStore()
		if err = store.TrainModel(ctx, m, src.corpusName); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("no training text: pass a corpus file or a stored corpus name")
	}

	if pruneMin > 0 {
		m.Prune(pruneMin)
	}
	return m, nil
}

// writeOutput prints text, or writes it atomically to path when path is set.
// Either way the text is terminated by a single newline.
func (a *app) writeOutput(cmd *cobra.Command, path, text string) error {
	text += "\n"
	if path == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), text)
		return err
	}
	if err := atomic.WriteFile(path, strings.NewReader(text)); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	a.logger.Info("Output written", slog.String("path", path), slog.Int("bytes", len(text)))
	return nil
}

func applyIntConfig(cmd *cobra.Command, name string, target *int, value int) {
	if !cmd.Flags().Changed(name) {
		*target = value
	}
}

func applyUintConfig(cmd *cobra.Command, name string, target *uint64, value uint64) {
	if !cmd.Flags().Changed(name) {
		*target = value
	}
}

func applyBoolConfig(cmd *cobra.Command, name string, target *bool, value bool) {
	if !cmd.Flags().Changed(name) {
		*target = value
	}
}
