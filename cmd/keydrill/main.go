// Package main provides the CLI entrypoint for keydrill.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/keydrill/internal/config"
	"github.com/verte-zerg/keydrill/internal/controller"
	"github.com/verte-zerg/keydrill/internal/generator"
	"github.com/verte-zerg/keydrill/internal/lexicon"
	"github.com/verte-zerg/keydrill/internal/logging"
	"github.com/verte-zerg/keydrill/internal/model"
	"github.com/verte-zerg/keydrill/internal/session"
	"github.com/verte-zerg/keydrill/internal/stats"
	"github.com/verte-zerg/keydrill/internal/theme"
	"github.com/verte-zerg/keydrill/internal/tui"
)

const (
	defaultMode      = "freeplay"
	defaultLogLevel  = "info"
	defaultLogFormat = "text"
)

var errNoTerminal = errors.New("keydrill needs an interactive terminal")

var (
	practiceKeys          string
	practiceMode          string
	practiceTime          int
	practiceTheme         string
	practiceDict          string
	practiceSynthetic     bool
	practiceMinWordLen    int
	practiceMaxLength     int
	practiceSyntheticSize int

	logFile   string
	logLevel  string
	logFormat string
	logDebug  bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "keydrill",
		Short:         "Terminal typing trainer for a chosen key set",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&practiceKeys, "keys", model.DefaultKeys, "keys to practise")
	pf.StringVar(&practiceDict, "dict", config.DefaultDictionaryPath, "dictionary file, one word per line")
	pf.BoolVar(&practiceSynthetic, "synthetic", false, "generate random letter groups instead of dictionary words")
	pf.IntVar(&practiceMinWordLen, "min-word-len", lexicon.DefaultMinWordLen, "shortest dictionary word to use")
	pf.IntVar(&practiceMaxLength, "max-length", generator.DefaultMaxLength, "maximum length of dictionary text")
	pf.IntVar(&practiceSyntheticSize, "synthetic-size", generator.MinTextLen, "minimum letters of synthetic text")

	rootCmd.Flags().StringVar(&practiceMode, "mode", defaultMode, "session mode: freeplay, 1min, 5min, custom")
	rootCmd.Flags().IntVar(&practiceTime, "time", 0, "seconds for --mode custom")
	rootCmd.Flags().StringVar(&practiceTheme, "theme", string(theme.Default), "colour theme: light or dark")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file")
	rootCmd.Flags().StringVar(&logLevel, "log-level", defaultLogLevel, "log level: debug, info, warn, error")
	rootCmd.Flags().StringVar(&logFormat, "log-format", defaultLogFormat, "log format: text or json")
	rootCmd.Flags().BoolVar(&logDebug, "debug", false, "debug logging to the state directory")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newWordsCmd())
	rootCmd.AddCommand(newSampleCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg, err := resolvePracticeConfig(cmd, fileCfg)
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.New(resolveLogOptions(cmd, fileCfg))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeLog(); cerr != nil {
			logErrf("failed to close log file: %v\n", cerr)
		}
	}()

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNoTerminal
	}

	lex := lexicon.Open(cfg.Dictionary,
		lexicon.WithMinWordLen(cfg.MinWordLen),
		lexicon.WithLogger(logger),
	)
	logger.Info("lexicon loaded",
		slog.String("path", cfg.Dictionary),
		slog.Int("words", lex.Size()),
		slog.Bool("fallback", lex.UsingFallback()),
	)
	source := generator.NewSentences(generator.New(), lex, generator.Options{
		Synthetic: cfg.Synthetic,
		MaxLength: cfg.MaxLength,
		MinLength: cfg.SyntheticSize,
	})
	ctrl := controller.New(session.New(source, nil), nil,
		controller.WithLogger(logger),
		controller.WithKeys(cfg.Keys),
		controller.WithMode(cfg.Mode),
	)
	ui := tui.NewModel(ctrl, tui.Options{Theme: theme.Name(cfg.Theme), Logger: logger})
	program := tea.NewProgram(ui, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	if results, ok := ui.Results(); ok {
		if err := stats.RenderResults(cmd.OutOrStdout(), results); err != nil {
			return fmt.Errorf("failed to write results: %w", err)
		}
	}
	return nil
}

// resolvePracticeConfig merges config file values under explicitly set
// flags and validates the result.
func resolvePracticeConfig(cmd *cobra.Command, fileCfg config.FileConfig) (model.Config, error) {
	p := fileCfg.Practice
	applyStringConfig(cmd, "keys", &practiceKeys, p.Keys)
	applyStringConfig(cmd, "mode", &practiceMode, p.Mode)
	applyIntConfig(cmd, "time", &practiceTime, p.Time)
	applyStringConfig(cmd, "theme", &practiceTheme, p.Theme)
	applyStringConfig(cmd, "dict", &practiceDict, p.Dictionary)
	applyBoolConfig(cmd, "synthetic", &practiceSynthetic, p.Synthetic)
	applyIntConfig(cmd, "min-word-len", &practiceMinWordLen, p.MinWordLen)
	applyIntConfig(cmd, "max-length", &practiceMaxLength, p.MaxLength)
	applyIntConfig(cmd, "synthetic-size", &practiceSyntheticSize, p.SyntheticSize)

	keys, err := model.ValidateKeys(practiceKeys)
	if err != nil {
		return model.Config{}, fmt.Errorf("--keys: %w", err)
	}
	mode := model.ModeFreeplay
	if cmd.Flags().Lookup("mode") != nil {
		mode, err = model.ParseMode(practiceMode, practiceTime)
		if err != nil {
			return model.Config{}, fmt.Errorf("--mode: %w", err)
		}
	}
	name := theme.Default
	if cmd.Flags().Lookup("theme") != nil {
		name, err = theme.Parse(practiceTheme)
		if err != nil {
			return model.Config{}, fmt.Errorf("--theme: %w", err)
		}
	}
	cfg := model.Config{
		Keys:          keys,
		Mode:          mode,
		Theme:         string(name),
		Dictionary:    practiceDict,
		Synthetic:     practiceSynthetic,
		MinWordLen:    practiceMinWordLen,
		MaxLength:     practiceMaxLength,
		SyntheticSize: practiceSyntheticSize,
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func resolveLogOptions(cmd *cobra.Command, fileCfg config.FileConfig) logging.Options {
	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)
	applyStringConfig(cmd, "log-format", &logFormat, fileCfg.Log.Format)
	applyStringConfig(cmd, "log-file", &logFile, fileCfg.Log.File)
	opts := logging.Options{Path: logFile, Level: logLevel, Format: logFormat}
	if logDebug {
		opts.Level = "debug"
		if opts.Path == "" {
			opts.Path = config.DefaultLogPath()
		}
	}
	return opts
}

func validateConfig(cfg model.Config) error {
	if cfg.MinWordLen <= 0 {
		return fmt.Errorf("--min-word-len must be > 0")
	}
	if cfg.MaxLength <= 0 {
		return fmt.Errorf("--max-length must be > 0")
	}
	if cfg.SyntheticSize <= 0 {
		return fmt.Errorf("--synthetic-size must be > 0")
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
